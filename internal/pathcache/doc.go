// Package pathcache memoizes Tether evaluations.
//
// A Cache implements view.Memo. Each entry remembers the nodes visited while
// it was computed; any mutation touching one of them drops the entry.
// Attach a Cache to a network so mutations invalidate it automatically:
//
//	c := pathcache.New(pathcache.WithCapacity(512))
//	detach := c.Attach(nw)
//	defer detach()
//	ids, err := c.Vector(ctx, nw, tether)
//
// A Cache is not safe for concurrent use, matching the network it serves.
package pathcache
