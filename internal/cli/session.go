package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/network"
	"github.com/roach88/kmap/internal/path"
	"github.com/roach88/kmap/internal/pathcache"
	"github.com/roach88/kmap/internal/store"
	"github.com/roach88/kmap/internal/view"
)

// session is an opened database with its network loaded. Fetches go
// through a path cache that is invalidated by every mutation.
type session struct {
	store  *store.Store
	nw     *network.Network
	cache  *pathcache.Cache
	detach func()
	logger *slog.Logger
}

func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.cfg.Database, store.WithLogger(opts.Logger()))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("open database %s", opts.cfg.Database), err)
	}
	return st, nil
}

func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	logger := opts.Logger()
	st, err := openStore(opts)
	if err != nil {
		return nil, err
	}

	nw, err := st.Load(ctx, network.WithLogger(logger))
	if errors.Is(err, store.ErrEmpty) {
		st.Close()
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("no network in %s: run kmap init", opts.cfg.Database))
	}
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "load network", err)
	}

	cache, err := pathcache.New(
		pathcache.WithCapacity(opts.cfg.CacheCapacity),
		pathcache.WithLogger(logger),
	)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "create path cache", err)
	}

	return &session{
		store:  st,
		nw:     nw,
		cache:  cache,
		detach: cache.Attach(nw),
		logger: logger,
	}, nil
}

func (s *session) Close() error {
	s.detach()
	st := s.cache.Stats()
	s.logger.Debug("session closed", "cache_hits", st.Hits, "cache_misses", st.Misses)
	return s.store.Close()
}

func (s *session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.nw); err != nil {
		return WrapExitError(ExitCommandError, "save network", err)
	}
	return nil
}

func (s *session) fetchCtx() view.FetchContext {
	return view.FetchContext{Net: s.nw, Memo: s.cache}
}

func (s *session) createCtx() view.CreateContext {
	return view.CreateContext{Net: s.nw, Memo: s.cache}
}

// tether compiles raw. Relative paths start at the root.
func (s *session) tether(raw string) (*view.Tether, error) {
	t, err := path.Compile(raw, s.nw.Root())
	if err != nil {
		return nil, graphError("parse path", err)
	}
	return t, nil
}

// node fetches the single node raw addresses.
func (s *session) node(raw string) (ir.NodeID, error) {
	t, err := s.tether(raw)
	if err != nil {
		return ir.Nil, err
	}
	id, err := view.FetchNode(s.fetchCtx(), t)
	if err != nil {
		return ir.Nil, graphError(fmt.Sprintf("fetch %s", raw), err)
	}
	return id, nil
}

// ensure fetches raw, creating missing steps.
func (s *session) ensure(raw string) (ir.NodeID, error) {
	t, err := s.tether(raw)
	if err != nil {
		return ir.Nil, err
	}
	id, err := view.FetchOrCreate(s.createCtx(), t)
	if err != nil {
		return ir.Nil, graphError(fmt.Sprintf("create %s", raw), err)
	}
	return id, nil
}

func (s *session) describe(id ir.NodeID) (nodeView, error) {
	p, err := view.HeadingPath(s.nw, id)
	if err != nil {
		return nodeView{}, graphError("describe node", err)
	}
	heading, err := s.nw.FetchHeading(id)
	if err != nil {
		return nodeView{}, graphError("describe node", err)
	}
	title, err := s.nw.FetchTitle(id)
	if err != nil {
		return nodeView{}, graphError("describe node", err)
	}
	v := nodeView{ID: id.String(), Path: p, Heading: heading, Title: title}
	if s.nw.IsAlias(id) {
		target, err := view.HeadingPath(s.nw, s.nw.Resolve(id))
		if err != nil {
			return nodeView{}, graphError("describe alias", err)
		}
		v.Alias = true
		v.Target = target
	}
	return v, nil
}
