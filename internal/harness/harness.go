package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/network"
	"github.com/roach88/kmap/internal/path"
	"github.com/roach88/kmap/internal/store"
	"github.com/roach88/kmap/internal/view"
)

// Harness holds the state of one scenario run.
type Harness struct {
	nw     *network.Network
	gen    ir.IDGenerator
	store  *store.Store
	logger *slog.Logger
}

// Option configures a run.
type Option func(*Harness)

// WithLogger routes network and store logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Run executes scenario against a fresh network backed by an in-memory
// store and returns the result. The error is reserved for failures of the
// harness itself; step and expectation mismatches land in Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	h := &Harness{
		gen:    ir.NewSequentialGenerator(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	st, err := store.Open(":memory:", store.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()
	h.store = st
	h.nw = network.New(network.WithGenerator(h.gen), network.WithLogger(h.logger))

	ctx := context.Background()
	result := NewResult(scenario.Name)
	for i, step := range scenario.Steps {
		err := h.execute(ctx, step)
		code := codeOf(err)
		result.Steps = append(result.Steps, StepResult{Index: i + 1, Summary: summarize(step), Code: code})
		switch {
		case code == step.Error:
		case step.Error == "":
			result.AddError(fmt.Sprintf("step %d (%s): %v", i+1, step.Op, err))
		case err == nil:
			result.AddError(fmt.Sprintf("step %d (%s): succeeded, want %s", i+1, step.Op, step.Error))
		default:
			result.AddError(fmt.Sprintf("step %d (%s): got %v, want %s", i+1, step.Op, err, step.Error))
		}
	}

	for i, e := range scenario.Expect {
		if msg := h.check(e); msg != "" {
			result.AddError(fmt.Sprintf("expect %d (%s %s): %s", i+1, e.Type, e.Path, msg))
		}
	}

	tree, err := Dump(h.nw)
	if err != nil {
		return nil, fmt.Errorf("failed to dump network: %w", err)
	}
	result.Tree = tree
	return result, nil
}

func codeOf(err error) string {
	if err == nil {
		return ""
	}
	if code := ir.CodeOf(err); code != "" {
		return string(code)
	}
	return "ERROR"
}

func (h *Harness) fetchCtx() view.FetchContext {
	return view.FetchContext{Net: h.nw}
}

func (h *Harness) createCtx() view.CreateContext {
	return view.CreateContext{Net: h.nw}
}

func (h *Harness) compile(raw string) (*view.Tether, error) {
	return path.Compile(raw, h.nw.Root())
}

func (h *Harness) node(raw string) (ir.NodeID, error) {
	t, err := h.compile(raw)
	if err != nil {
		return ir.Nil, err
	}
	return view.FetchNode(h.fetchCtx(), t)
}

func (h *Harness) execute(ctx context.Context, st Step) error {
	switch st.Op {
	case OpReload:
		return h.reload(ctx)

	case OpCreate:
		t, err := h.compile(st.Path)
		if err != nil {
			return err
		}
		_, err = view.FetchOrCreate(h.createCtx(), t)
		return err

	case OpErase:
		t, err := h.compile(st.Path)
		if err != nil {
			return err
		}
		_, err = view.Erase(h.createCtx(), t)
		return err

	case OpAlias:
		src, err := h.node(st.Path)
		if err != nil {
			return err
		}
		t, err := h.compile(st.To)
		if err != nil {
			return err
		}
		dst, err := view.FetchOrCreate(h.createCtx(), t)
		if err != nil {
			return err
		}
		_, err = h.nw.CreateAlias(src, dst)
		return err

	case OpMove:
		id, err := h.node(st.Path)
		if err != nil {
			return err
		}
		parent, err := h.node(st.To)
		if err != nil {
			return err
		}
		return h.nw.MoveNode(id, parent)

	case OpTag:
		id, err := h.node(st.Path)
		if err != nil {
			return err
		}
		_, err = view.Create(h.createCtx(), view.From(view.Node(id), view.Tag(view.Heading(st.Tag))))
		return err

	case OpReorder:
		parent, err := h.node(st.Path)
		if err != nil {
			return err
		}
		ids := make([]ir.NodeID, 0, len(st.Order))
		for _, heading := range st.Order {
			c, ok := h.nw.FetchChild(parent, heading)
			if !ok {
				return ir.NewNotFound("no child %q under %s", heading, st.Path)
			}
			ids = append(ids, c)
		}
		return h.nw.ReorderChildren(parent, ids)

	case OpTitle, OpBody:
		t, err := h.compile(st.Path)
		if err != nil {
			return err
		}
		if st.Op == OpTitle {
			return view.UpdateTitle(h.createCtx(), t, st.Text)
		}
		return view.UpdateBody(h.createCtx(), t, st.Text)
	}
	return fmt.Errorf("unknown op %q", st.Op)
}

// reload round-trips the network through the store.
func (h *Harness) reload(ctx context.Context) error {
	if err := h.store.Save(ctx, h.nw); err != nil {
		return err
	}
	nw, err := h.store.Load(ctx, network.WithGenerator(h.gen), network.WithLogger(h.logger))
	if err != nil {
		return err
	}
	h.nw = nw
	return nil
}

// check evaluates e and returns a mismatch description, or "".
func (h *Harness) check(e Expectation) string {
	if e.Type == ExpectExists {
		t, err := h.compile(e.Path)
		if err != nil {
			return err.Error()
		}
		ok, err := view.Exists(h.fetchCtx(), t)
		if err != nil {
			return err.Error()
		}
		if ok != *e.Value {
			return fmt.Sprintf("exists = %t, want %t", ok, *e.Value)
		}
		return ""
	}

	id, err := h.node(e.Path)
	if err != nil {
		return err.Error()
	}
	switch e.Type {
	case ExpectChildren:
		kids, err := h.nw.FetchChildrenOrdered(id)
		if err != nil {
			return err.Error()
		}
		got, err := headings(h.nw, kids)
		if err != nil {
			return err.Error()
		}
		if !slices.Equal(got, e.Equals) {
			return fmt.Sprintf("children = %v, want %v", got, e.Equals)
		}

	case ExpectTags:
		got, err := tagHeadings(h.nw, id)
		if err != nil {
			return err.Error()
		}
		want := slices.Sorted(slices.Values(e.Equals))
		if !slices.Equal(got, want) {
			return fmt.Sprintf("tags = %v, want %v", got, want)
		}

	case ExpectResolve:
		want, err := h.node(e.To)
		if err != nil {
			return err.Error()
		}
		if got := h.nw.Resolve(id); got != h.nw.Resolve(want) {
			p, _ := view.HeadingPath(h.nw, got)
			return fmt.Sprintf("resolves to %s, want %s", p, e.To)
		}

	case ExpectTitle:
		got, err := h.nw.FetchTitle(id)
		if err != nil {
			return err.Error()
		}
		if got != e.Text {
			return fmt.Sprintf("title = %q, want %q", got, e.Text)
		}
	}
	return ""
}
