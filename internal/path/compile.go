package path

import (
	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/view"
)

// Tether compiles the path. Relative paths start at from.
func (a *AST) Tether(from ir.NodeID) *view.Tether {
	anchor := view.AbsRoot()
	if !a.absolute {
		anchor = view.Node(from)
	}
	var links []view.Link
	for i := a.head; i != none; i = a.nodes[i].next {
		links = append(links, a.link(i))
	}
	return view.From(anchor, links...)
}

func (a *AST) link(i int) view.Link {
	n := a.nodes[i]
	var preds []view.Predicate
	if n.heading != "" {
		preds = append(preds, view.Heading(n.heading))
	}
	for t := n.tags; t != none; t = a.nodes[t].next {
		preds = append(preds, view.Where(view.Tag(view.Heading(a.nodes[t].heading))))
	}
	if n.kind == StepParent {
		return view.Parent(preds...)
	}
	return view.Child(preds...)
}

// Compile parses raw and compiles it against from.
func Compile(raw string, from ir.NodeID) (*view.Tether, error) {
	a, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return a.Tether(from), nil
}
