package network

import (
	"github.com/roach88/kmap/internal/ir"
)

// Subscribe registers fn to receive the nodes touched by each mutation: the
// mutated nodes, their lineages and every alias exposing them, with those
// aliases' lineages. The returned func cancels the subscription.
//
// Callbacks run synchronously after the mutation completes and must not
// mutate the network.
func (nw *Network) Subscribe(fn func(ir.NodeSet)) (cancel func()) {
	key := nw.nextSub
	nw.nextSub++
	nw.subs[key] = fn
	return func() {
		delete(nw.subs, key)
	}
}

func (nw *Network) notify(touched ir.NodeSet) {
	for _, fn := range nw.subs {
		fn(touched)
	}
}

// affected collects ids, their lineages and every alias exposing them.
func (nw *Network) affected(ids ...ir.NodeID) ir.NodeSet {
	out := ir.NewNodeSet()
	for _, id := range ids {
		nw.addLineage(out, id)
		for a := range nw.aliases.FetchAliasesTo(nw.Resolve(id)) {
			nw.addLineage(out, a)
		}
	}
	return out
}

func (nw *Network) addLineage(out ir.NodeSet, id ir.NodeID) {
	out.Add(id)
	lineage, err := nw.FetchLineage(id)
	if err != nil {
		return
	}
	out.Add(lineage...)
}
