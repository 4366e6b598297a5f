package path

import (
	"fmt"
	"strings"

	"github.com/roach88/kmap/internal/ir"
)

// StepKind is the relation a step follows.
type StepKind int

const (
	// StepChild descends to a child.
	StepChild StepKind = iota

	// StepParent ascends to the parent.
	StepParent

	// stepTag narrows the owning step.
	stepTag
)

// none marks the end of an index chain.
const none = -1

// node is one arena slot. Steps chain through next; a step's tags chain
// from tags through their own next.
type node struct {
	kind    StepKind
	heading string
	pos     int
	next    int
	tags    int
}

// AST is a parsed path. Nodes live in one slice and refer to each other by
// index.
type AST struct {
	absolute bool
	nodes    []node
	head     int
}

// Absolute reports whether the path starts at the network root.
func (a *AST) Absolute() bool {
	return a.absolute
}

// Len returns the number of steps.
func (a *AST) Len() int {
	n := 0
	for i := a.head; i != none; i = a.nodes[i].next {
		n++
	}
	return n
}

// String renders the path in canonical form.
func (a *AST) String() string {
	var b strings.Builder
	if a.absolute {
		b.WriteByte('/')
	}
	for i, first := a.head, true; i != none; i, first = a.nodes[i].next, false {
		n := a.nodes[i]
		switch {
		case n.kind == StepParent:
			b.WriteByte(',')
		case !first:
			b.WriteByte('.')
		}
		b.WriteString(n.heading)
		for t := n.tags; t != none; t = a.nodes[t].next {
			b.WriteByte('#')
			b.WriteString(a.nodes[t].heading)
		}
	}
	return b.String()
}

func (a *AST) push(n node) int {
	n.next, n.tags = none, none
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// parser walks a token slice.
type parser struct {
	raw  string
	toks []Token
	i    int
	ast  *AST
}

// Parse tokenizes and parses raw. Malformed input fails with
// InvalidHeading.
func Parse(raw string) (*AST, error) {
	p := &parser{raw: raw, toks: Tokenize(raw), ast: &AST{head: none}}
	if len(p.toks) == 0 {
		return nil, ir.NewInvalidHeading(raw, "empty path")
	}
	if err := p.parse(); err != nil {
		return nil, fmt.Errorf("parse path %q: %w", raw, err)
	}
	return p.ast, nil
}

func (p *parser) peek() (Token, bool) {
	if p.i >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.i], true
}

func (p *parser) parse() error {
	if t, _ := p.peek(); t.Kind == TokenRoot || t.Kind == TokenFwd {
		p.ast.absolute = true
		p.i++
	}
	if _, ok := p.peek(); !ok {
		return nil
	}

	kind := StepChild
	if t, _ := p.peek(); t.Kind == TokenBwd {
		kind = StepParent
		p.i++
	}
	last := none
	for {
		step, err := p.step(kind)
		if err != nil {
			return err
		}
		if last == none {
			p.ast.head = step
		} else {
			p.ast.nodes[last].next = step
		}
		last = step

		t, ok := p.peek()
		if !ok {
			return nil
		}
		switch t.Kind {
		case TokenFwd:
			kind = StepChild
		case TokenBwd:
			kind = StepParent
		default:
			return ir.NewInvalidHeading(p.raw, "unexpected %s at offset %d", t.Kind, t.Pos)
		}
		p.i++
	}
}

// step parses one step of the given kind and its tags.
func (p *parser) step(kind StepKind) (int, error) {
	t, ok := p.peek()
	pos := len(p.raw)
	if ok {
		pos = t.Pos
	}

	var heading string
	switch {
	case ok && t.Kind == TokenHeading:
		h, err := ir.ValidateHeading(t.Value)
		if err != nil {
			return none, err
		}
		heading = h
		p.i++
	case kind == StepParent:
		// "," may stand alone.
	default:
		return none, ir.NewInvalidHeading(p.raw, "missing heading at offset %d", pos)
	}

	step := p.ast.push(node{kind: kind, heading: heading, pos: pos})
	last := none
	for {
		t, ok := p.peek()
		if !ok || t.Kind != TokenTag {
			return step, nil
		}
		p.i++
		h, ok := p.peek()
		if !ok || h.Kind != TokenHeading {
			return none, ir.NewInvalidHeading(p.raw, "missing tag after '#' at offset %d", t.Pos)
		}
		tagHeading, err := ir.ValidateHeading(h.Value)
		if err != nil {
			return none, err
		}
		p.i++

		tag := p.ast.push(node{kind: stepTag, heading: tagHeading, pos: t.Pos})
		if last == none {
			p.ast.nodes[step].tags = tag
		} else {
			p.ast.nodes[last].next = tag
		}
		last = tag
	}
}
