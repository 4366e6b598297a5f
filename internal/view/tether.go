package view

import (
	"slices"

	"github.com/roach88/kmap/internal/ir"
)

// Tether is an anchored chain of Links. Tethers are immutable; Then
// returns a new Tether.
type Tether struct {
	anchor Anchor
	links  []Link
}

// From builds a Tether.
func From(anchor Anchor, links ...Link) *Tether {
	return &Tether{anchor: anchor, links: slices.Clone(links)}
}

// Then returns a Tether extended by links.
func (t *Tether) Then(links ...Link) *Tether {
	out := make([]Link, 0, len(t.links)+len(links))
	out = append(append(out, t.links...), links...)
	return &Tether{anchor: t.anchor, links: out}
}

// Anchor returns the starting point.
func (t *Tether) Anchor() Anchor {
	return t.anchor
}

// Links returns the stages.
func (t *Tether) Links() []Link {
	return slices.Clone(t.links)
}

// Prefix returns the Tether without its last Link, and that Link.
// A Tether with no Links returns itself and nil.
func (t *Tether) Prefix() (*Tether, Link) {
	if len(t.links) == 0 {
		return t, nil
	}
	n := len(t.links) - 1
	return &Tether{anchor: t.anchor, links: t.links[:n:n]}, t.links[n]
}

// String renders the Tether as "anchor | link | link".
func (t *Tether) String() string {
	if len(t.links) == 0 {
		return t.anchor.String()
	}
	return t.anchor.String() + " | " + joinLinks(t.links, " | ")
}

// Compare is the strict weak order used for cache keys: anchor first, then
// the Links compared pairwise.
func (t *Tether) Compare(o *Tether) int {
	if c := t.anchor.Compare(o.anchor); c != 0 {
		return c
	}
	return compareLinkLists(t.links, o.links)
}

// Less reports whether t sorts before o.
func (t *Tether) Less(o *Tether) bool {
	return t.Compare(o) < 0
}

// eval evaluates t, consulting and filling ctx.Memo when set.
func (t *Tether) eval(ctx FetchContext) (FetchSet, error) {
	if ctx.Memo == nil {
		return t.run(ctx)
	}
	if fs, visited, ok := ctx.Memo.Lookup(t); ok {
		if ctx.visited != nil {
			ctx.visited.Union(visited)
		}
		return fs.Clone(), nil
	}

	inner := ctx
	inner.visited = ir.NewNodeSet()
	fs, err := t.run(inner)
	if err != nil {
		return FetchSet{}, err
	}
	ctx.Memo.Store(t, fs.Clone(), inner.visited)
	if ctx.visited != nil {
		ctx.visited.Union(inner.visited)
	}
	return fs, nil
}

func (t *Tether) run(ctx FetchContext) (FetchSet, error) {
	// Missing anchors count as visited so creating them is noticed.
	ctx.see(t.anchor.ids...)
	cur := t.anchor.Fetch(ctx)
	ctx.see(cur.IDs()...)
	for _, l := range t.links {
		next, err := stage(ctx, l, cur)
		if err != nil {
			return FetchSet{}, err
		}
		ctx.see(next.IDs()...)
		cur = next
	}
	return cur, nil
}

// stage feeds every item of in through l and unions the results in
// ascending id order. Set stages see the whole input at once.
func stage(ctx FetchContext, l Link, in FetchSet) (FetchSet, error) {
	if s, ok := l.(setStage); ok {
		return s.fetchSet(ctx, in)
	}
	var out FetchSet
	for _, it := range in.items {
		fs, err := l.Fetch(ctx, it.ID)
		if err != nil {
			return FetchSet{}, err
		}
		out.Merge(fs)
	}
	return out.Sorted(), nil
}
