package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/view"
)

func TestExactly(t *testing.T) {
	f := newFixture(t)
	a := f.n["a"]
	both := view.From(view.Node(a), view.Exactly(view.ChildOf("a1"), view.ChildOf("a2")))

	assert.Equal(t, ids(a), f.set(t, both))
	assert.Empty(t, f.set(t, view.From(view.Node(a), view.Exactly(view.ChildOf("a1")))))
	assert.Empty(t, f.set(t, view.From(view.Node(a), view.Exactly(view.ChildOf("a1"), view.ChildOf("zz")))))

	a3, err := f.nw.CreateChild(a, "a3")
	require.NoError(t, err)
	assert.Empty(t, f.set(t, both))

	require.NoError(t, f.nw.EraseNode(a3))
	assert.Equal(t, ids(a), f.set(t, both))
}

func TestExactlyMatchesThroughAlias(t *testing.T) {
	f := newFixture(t)

	got := f.set(t, view.From(view.Node(f.x), view.Exactly(view.ChildOf("a1"), view.ChildOf("a2"))))
	assert.Equal(t, ids(f.x), got)
}

func TestExactlyAsStageFilter(t *testing.T) {
	f := newFixture(t)

	got := f.set(t, view.From(view.AbsRoot(), view.Child(), view.Exactly(view.Alias(view.ID(f.n["a"])))))
	assert.Equal(t, ids(f.n["b"]), got)
}

func TestAllOf(t *testing.T) {
	f := newFixture(t)
	a := f.n["a"]

	got := f.set(t, view.From(view.Node(a), view.AllOf(view.ChildOf("a1"), view.ChildOf("a2"))))
	assert.Equal(t, ids(f.n["a.a1"], f.n["a.a2"]), got)

	assert.Empty(t, f.set(t, view.From(view.Node(a), view.AllOf(view.ChildOf("a1"), view.ChildOf("zz")))))
}

func TestAllOfCreateCreatesEveryMember(t *testing.T) {
	f := newFixture(t)
	tt := view.From(view.Node(f.n["c"]), view.AllOf(view.ChildOf("p"), view.ChildOf("q")))

	_, err := view.Create(f.create(), tt)
	assert.Error(t, err, "two nodes is not a single result")

	assert.Len(t, f.set(t, tt), 2)
	assert.Len(t, f.set(t, view.From(view.Node(f.n["c"]), view.Child())), 2)
}

func TestAnyOf(t *testing.T) {
	f := newFixture(t)

	got := f.set(t, view.From(view.AbsRoot(), view.AnyOf(view.ChildOf("a"), view.ChildOf("c"), view.ChildOf("zz"))))
	assert.Equal(t, ids(f.n["a"], f.n["c"]), got)

	assert.Empty(t, f.set(t, view.From(view.AbsRoot(), view.AnyOf())))
}

func TestNoneOf(t *testing.T) {
	f := newFixture(t)

	got := f.set(t, view.From(view.Node(f.n["a"]), view.NoneOf(view.ChildOf("a1"))))
	assert.Equal(t, ids(f.n["a.a2"]), got)

	got = f.set(t, view.From(view.AbsRoot(), view.NoneOf(view.ChildOf("a"), view.ChildOf("b"))))
	assert.Equal(t, ids(f.n["c"]), got)
}

func TestCombinatorsCannotCreateOpenRelations(t *testing.T) {
	f := newFixture(t)

	for _, l := range []view.Link{
		view.Exactly(view.ChildOf("a1")),
		view.AnyOf(view.ChildOf("n")),
		view.NoneOf(view.ChildOf("n")),
		view.AllOf(),
	} {
		_, err := view.Create(f.create(), view.From(view.Node(f.n["c"]), l))
		assert.Error(t, err, l.String())
	}
}
