package network

import (
	"github.com/roach88/kmap/internal/ir"
)

// FetchHeading returns the heading of id. Aliases report the heading of
// their resolved node.
func (nw *Network) FetchHeading(id ir.NodeID) (string, error) {
	n, err := nw.real(id)
	if err != nil {
		return "", err
	}
	return n.heading, nil
}

// FetchTitle returns the display title of id.
func (nw *Network) FetchTitle(id ir.NodeID) (string, error) {
	n, err := nw.real(id)
	if err != nil {
		return "", err
	}
	return n.title, nil
}

// FetchBody returns the body text of id.
func (nw *Network) FetchBody(id ir.NodeID) (string, error) {
	n, err := nw.real(id)
	if err != nil {
		return "", err
	}
	return n.body, nil
}

// UpdateHeading renames the node behind id.
//
// The new heading must be unique under the node's parent and under every
// destination currently aliasing it.
func (nw *Network) UpdateHeading(id ir.NodeID, heading string) error {
	rid := nw.Resolve(id)
	n, err := nw.real(rid)
	if err != nil {
		return err
	}
	if rid == nw.root {
		return ir.NewInvalidNode(rid, "root heading is fixed")
	}
	h, err := ir.ValidateHeading(heading)
	if err != nil {
		return err
	}
	if h == n.heading {
		return nil
	}

	parents := nw.aliases.FetchAliasesDsts(rid)
	if n.rel == RelChild {
		parents.Add(n.parent)
	}
	for _, p := range parents.Sorted() {
		if nw.IsChild(p, h) {
			return ir.NewInvalidHeading(h, "duplicate heading under %s", p)
		}
	}

	touched := nw.affected(rid)
	n.heading = h
	nw.logger.Debug("heading updated", "node", rid, "heading", h)
	nw.notify(touched)
	return nil
}

// UpdateTitle sets the display title of the node behind id.
func (nw *Network) UpdateTitle(id ir.NodeID, title string) error {
	n, err := nw.real(id)
	if err != nil {
		return err
	}
	n.title = title
	nw.notify(nw.affected(nw.Resolve(id)))
	return nil
}

// UpdateBody sets the body text of the node behind id.
func (nw *Network) UpdateBody(id ir.NodeID, body string) error {
	n, err := nw.real(id)
	if err != nil {
		return err
	}
	n.body = body
	nw.notify(nw.affected(nw.Resolve(id)))
	return nil
}
