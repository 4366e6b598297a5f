package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/testutil"
	"github.com/roach88/kmap/internal/view"
)

func TestTokenize(t *testing.T) {
	toks := Tokenize("/notes.todo,#urgent")
	want := []Token{
		{Kind: TokenRoot, Pos: 0},
		{Kind: TokenHeading, Value: "notes", Pos: 1},
		{Kind: TokenFwd, Pos: 6},
		{Kind: TokenHeading, Value: "todo", Pos: 7},
		{Kind: TokenBwd, Pos: 11},
		{Kind: TokenTag, Pos: 12},
		{Kind: TokenHeading, Value: "urgent", Pos: 13},
	}
	assert.Equal(t, want, toks)
	assert.Equal(t, "/notes.todo,#urgent", Join(toks))
}

func TestTokenizeInnerSlashIsHeadingText(t *testing.T) {
	toks := Tokenize("a/b")
	require.Len(t, toks, 2)
	assert.Equal(t, "/b", toks[1].Value)
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		absolute bool
		steps    int
		canon    string
	}{
		{"/", true, 0, "/"},
		{".", true, 0, "/"},
		{"/a", true, 1, "/a"},
		{".a.b", true, 2, "/a.b"},
		{"a.b.c", false, 3, "a.b.c"},
		{"a,", false, 2, "a,"},
		{",", false, 1, ","},
		{",,b", false, 2, ",,b"},
		{"a#x#y.b", false, 2, "a#x#y.b"},
		{"a,b", false, 2, "a,b"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			a, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.absolute, a.Absolute())
			assert.Equal(t, tt.steps, a.Len())
			assert.Equal(t, tt.canon, a.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, raw := range []string{
		"",
		"a.",
		"a..b",
		"a#",
		"a##b",
		"#x",
		"A",
		"a b",
		"a/b",
		"/.a",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			assert.Equal(t, ir.CodeInvalidHeading, ir.CodeOf(err))
		})
	}
}

func TestCompileString(t *testing.T) {
	cur := ir.MustParseNodeID("00000000-0000-4000-8000-000000000002")

	tests := []struct {
		raw  string
		want string
	}{
		{"/", "abs_root"},
		{"/notes.todo", "abs_root | child('notes') | child('todo')"},
		{"todo,", "node(" + cur.String() + ") | child('todo') | parent"},
		{".notes.todo#urgent", "abs_root | child('notes') | child('todo', tag('urgent'))"},
		{",notes", "node(" + cur.String() + ") | parent('notes')"},
	}
	for _, tt := range tests {
		tether, err := Compile(tt.raw, cur)
		require.NoError(t, err)
		assert.Equal(t, tt.want, tether.String())
	}
}

func TestCompileEvaluates(t *testing.T) {
	nw := testutil.NewNetwork(t)
	n := testutil.Build(t, nw, "notes.todo", "notes.done", "misc")
	ctx := view.FetchContext{Net: nw}

	fetch := func(raw string, from ir.NodeID) ir.NodeID {
		t.Helper()
		tether, err := Compile(raw, from)
		require.NoError(t, err)
		id, err := view.FetchNode(ctx, tether)
		require.NoError(t, err)
		return id
	}

	assert.Equal(t, n["notes.todo"], fetch("/notes.todo", ir.Nil))
	assert.Equal(t, n["notes.done"], fetch("done", n["notes"]))
	assert.Equal(t, n["notes"], fetch(",", n["notes.todo"]))
	assert.Equal(t, n["notes.done"], fetch(",notes.done", n["notes.todo"]))
	assert.Equal(t, nw.Root(), fetch("/", ir.Nil))

	tether, err := Compile(",misc", n["notes.todo"])
	require.NoError(t, err)
	_, err = view.FetchNode(ctx, tether)
	assert.True(t, ir.IsNotFound(err))
}

func TestCompileTagFilter(t *testing.T) {
	nw := testutil.NewNetwork(t)
	n := testutil.Build(t, nw, "notes.todo", "notes.done")
	_, err := view.Create(view.CreateContext{Net: nw}, view.From(view.Node(n["notes.todo"]), view.Tag(view.Heading("urgent"))))
	require.NoError(t, err)

	tether, err := Compile("/notes.todo#urgent", ir.Nil)
	require.NoError(t, err)
	id, err := view.FetchNode(view.FetchContext{Net: nw}, tether)
	require.NoError(t, err)
	assert.Equal(t, n["notes.todo"], id)

	tether, err = Compile("/notes.done#urgent", ir.Nil)
	require.NoError(t, err)
	ok, err := view.Exists(view.FetchContext{Net: nw}, tether)
	require.NoError(t, err)
	assert.False(t, ok)
}
