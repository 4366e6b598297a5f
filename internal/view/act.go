package view

import (
	"strings"

	"github.com/roach88/kmap/internal/ir"
)

// ToFetchSet evaluates t.
func ToFetchSet(ctx FetchContext, t *Tether) (FetchSet, error) {
	return t.eval(ctx)
}

// ToSet evaluates t into a NodeSet.
func ToSet(ctx FetchContext, t *Tether) (ir.NodeSet, error) {
	fs, err := t.eval(ctx)
	if err != nil {
		return nil, err
	}
	return fs.Set(), nil
}

// ToVector evaluates t into ids in result order.
func ToVector(ctx FetchContext, t *Tether) ([]ir.NodeID, error) {
	fs, err := t.eval(ctx)
	if err != nil {
		return nil, err
	}
	return fs.IDs(), nil
}

// FetchNode evaluates t and returns its only result. Fails with NotFound
// when t matches nothing and AmbiguousPredicate when it matches more than
// one node.
func FetchNode(ctx FetchContext, t *Tether) (ir.NodeID, error) {
	fs, err := t.eval(ctx)
	if err != nil {
		return ir.Nil, err
	}
	return single(t, fs)
}

func single(t *Tether, fs FetchSet) (ir.NodeID, error) {
	switch fs.Len() {
	case 0:
		return ir.Nil, ir.NewNotFound("%s matched nothing", t)
	case 1:
		return fs.items[0].ID, nil
	default:
		return ir.Nil, ir.NewAmbiguous("%s matched %d nodes", t, fs.Len())
	}
}

// Exists reports whether t matches at least one node.
func Exists(ctx FetchContext, t *Tether) (bool, error) {
	fs, err := t.eval(ctx)
	if err != nil {
		return false, err
	}
	return !fs.Empty(), nil
}

// Count returns the number of nodes t matches.
func Count(ctx FetchContext, t *Tether) (int, error) {
	fs, err := t.eval(ctx)
	if err != nil {
		return 0, err
	}
	return fs.Len(), nil
}

// Erase erases every node t matches and returns how many were erased.
// Nodes already removed by an earlier erasure in the same call are
// skipped.
func Erase(ctx CreateContext, t *Tether) (int, error) {
	fs, err := t.eval(ctx.Fetch())
	if err != nil {
		return 0, err
	}
	n := 0
	for _, id := range fs.IDs() {
		if !ctx.Net.Exists(id) {
			continue
		}
		if err := ctx.Net.EraseNode(id); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Create applies the last Link of t in create mode and returns the single
// resulting node. If t already matches exactly one node that node is
// returned. Every stage before the last must resolve to exactly one
// existing node.
func Create(ctx CreateContext, t *Tether) (ir.NodeID, error) {
	fctx := ctx.Fetch()
	if fs, err := t.eval(fctx); err != nil {
		return ir.Nil, err
	} else if fs.Len() == 1 {
		return fs.items[0].ID, nil
	}

	prefix, last := t.Prefix()
	if last == nil {
		return ir.Nil, ir.NewAmbiguous("%s: nothing to create", t)
	}
	parent, err := FetchNode(fctx, prefix)
	if err != nil {
		return ir.Nil, err
	}
	created, err := last.Create(ctx, parent)
	if err != nil {
		return ir.Nil, err
	}
	return singleCreated(t, created)
}

// FetchOrCreate walks t stage by stage and creates each stage that matches
// nothing. A stage can only be created from exactly one input node.
func FetchOrCreate(ctx CreateContext, t *Tether) (ir.NodeID, error) {
	fctx := ctx.Fetch()
	if fs, err := t.eval(fctx); err != nil {
		return ir.Nil, err
	} else if fs.Len() == 1 {
		return fs.items[0].ID, nil
	}

	cur := t.anchor.Fetch(fctx)
	for _, l := range t.links {
		next, err := stage(fctx, l, cur)
		if err != nil {
			return ir.Nil, err
		}
		if next.Empty() {
			parent, err := single(t, cur)
			if err != nil {
				return ir.Nil, err
			}
			created, err := l.Create(ctx, parent)
			if err != nil {
				return ir.Nil, err
			}
			next = fromIDs(parent, created.Sorted())
		}
		cur = next
	}
	return single(t, cur)
}

func singleCreated(t *Tether, created ir.NodeSet) (ir.NodeID, error) {
	if created.Len() != 1 {
		return ir.Nil, ir.NewAmbiguous("%s: create yielded %d nodes", t, created.Len())
	}
	return created.Sorted()[0], nil
}

// FetchHeading returns the heading of the node t matches.
func FetchHeading(ctx FetchContext, t *Tether) (string, error) {
	id, err := FetchNode(ctx, t)
	if err != nil {
		return "", err
	}
	return ctx.Net.FetchHeading(id)
}

// FetchTitle returns the title of the node t matches.
func FetchTitle(ctx FetchContext, t *Tether) (string, error) {
	id, err := FetchNode(ctx, t)
	if err != nil {
		return "", err
	}
	return ctx.Net.FetchTitle(id)
}

// FetchBody returns the body of the node t matches.
func FetchBody(ctx FetchContext, t *Tether) (string, error) {
	id, err := FetchNode(ctx, t)
	if err != nil {
		return "", err
	}
	return ctx.Net.FetchBody(id)
}

// UpdateHeading renames the node t matches.
func UpdateHeading(ctx CreateContext, t *Tether, heading string) error {
	id, err := FetchNode(ctx.Fetch(), t)
	if err != nil {
		return err
	}
	return ctx.Net.UpdateHeading(id, heading)
}

// UpdateTitle sets the title of the node t matches.
func UpdateTitle(ctx CreateContext, t *Tether, title string) error {
	id, err := FetchNode(ctx.Fetch(), t)
	if err != nil {
		return err
	}
	return ctx.Net.UpdateTitle(id, title)
}

// UpdateBody sets the body of the node t matches.
func UpdateBody(ctx CreateContext, t *Tether, body string) error {
	id, err := FetchNode(ctx.Fetch(), t)
	if err != nil {
		return err
	}
	return ctx.Net.UpdateBody(id, body)
}

// AbsPath returns the heading path of the node t matches, such as
// "/meta.tag". The root is "/".
func AbsPath(ctx FetchContext, t *Tether) (string, error) {
	id, err := FetchNode(ctx, t)
	if err != nil {
		return "", err
	}
	return HeadingPath(ctx.Net, id)
}

// HeadingPath renders the lineage of id as an absolute heading path.
func HeadingPath(net Reader, id ir.NodeID) (string, error) {
	lineage, err := net.FetchLineage(id)
	if err != nil {
		return "", err
	}
	headings := make([]string, 0, len(lineage)-1)
	for _, n := range lineage[1:] {
		h, err := net.FetchHeading(n)
		if err != nil {
			return "", err
		}
		headings = append(headings, h)
	}
	return "/" + strings.Join(headings, "."), nil
}
