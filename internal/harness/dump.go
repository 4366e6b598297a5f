package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/view"
)

// Dump renders the network as an indented heading tree in child order.
// Aliases print as "heading -> /source.path" and are not descended into.
// Tags follow a real node's heading as "#tag", sorted.
//
//	/
//	  notes
//	    todo #urgent
//	  inbox
//	    todo -> /notes.todo
func Dump(net view.Reader) (string, error) {
	return DumpFrom(net, net.Root())
}

// DumpFrom renders the subtree under id, headed by id's absolute path.
func DumpFrom(net view.Reader, id ir.NodeID) (string, error) {
	head, err := view.HeadingPath(net, net.Resolve(id))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(head)
	b.WriteByte('\n')
	if err := dumpChildren(&b, net, id, 1); err != nil {
		return "", err
	}
	return b.String(), nil
}

func dumpChildren(b *strings.Builder, net view.Reader, parent ir.NodeID, depth int) error {
	kids, err := net.FetchChildrenOrdered(parent)
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)
	for _, c := range kids {
		heading, err := net.FetchHeading(c)
		if err != nil {
			return err
		}
		b.WriteString(indent)
		b.WriteString(heading)

		if net.IsAlias(c) {
			target, err := view.HeadingPath(net, net.Resolve(c))
			if err != nil {
				return err
			}
			fmt.Fprintf(b, " -> %s\n", target)
			continue
		}

		tags, err := tagHeadings(net, c)
		if err != nil {
			return err
		}
		for _, t := range tags {
			b.WriteString(" #")
			b.WriteString(t)
		}
		b.WriteByte('\n')

		if err := dumpChildren(b, net, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func headings(net view.Reader, ids []ir.NodeID) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		h, err := net.FetchHeading(id)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// tagHeadings returns the sorted headings of the tags id carries.
func tagHeadings(net view.Reader, id ir.NodeID) ([]string, error) {
	tags, err := view.ToVector(view.FetchContext{Net: net}, view.From(view.Node(id), view.Tag()))
	if err != nil {
		return nil, err
	}
	out, err := headings(net, tags)
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}
