package path

import (
	"fmt"
	"strings"
)

// TokenKind classifies a token.
type TokenKind int

const (
	// TokenHeading is a run of heading characters.
	TokenHeading TokenKind = iota

	// TokenFwd is '.'.
	TokenFwd

	// TokenBwd is ','.
	TokenBwd

	// TokenTag is '#'.
	TokenTag

	// TokenRoot is a leading '/'.
	TokenRoot
)

// String implements fmt.Stringer.
func (k TokenKind) String() string {
	switch k {
	case TokenHeading:
		return "heading"
	case TokenFwd:
		return "fwd"
	case TokenBwd:
		return "bwd"
	case TokenTag:
		return "tag"
	case TokenRoot:
		return "root"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one lexical element of a path.
type Token struct {
	Kind  TokenKind
	Value string

	// Pos is the byte offset of the token in the input.
	Pos int
}

// String implements fmt.Stringer.
func (t Token) String() string {
	if t.Kind == TokenHeading {
		return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Value, t.Pos)
	}
	return fmt.Sprintf("%s@%d", t.Kind, t.Pos)
}

// Tokenize splits raw into tokens. Heading text is not validated here.
func Tokenize(raw string) []Token {
	var (
		toks  []Token
		start = -1
	)
	flush := func(end int) {
		if start >= 0 {
			toks = append(toks, Token{Kind: TokenHeading, Value: raw[start:end], Pos: start})
			start = -1
		}
	}
	for i, r := range raw {
		kind, delim := delimiter(r)
		if !delim {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		if kind == TokenRoot && i != 0 {
			// A '/' past the start is not a delimiter; let validation reject it.
			if start < 0 {
				start = i
			}
			continue
		}
		toks = append(toks, Token{Kind: kind, Pos: i})
	}
	flush(len(raw))
	return toks
}

func delimiter(r rune) (TokenKind, bool) {
	switch r {
	case '.':
		return TokenFwd, true
	case ',':
		return TokenBwd, true
	case '#':
		return TokenTag, true
	case '/':
		return TokenRoot, true
	default:
		return 0, false
	}
}

// Join renders tokens back into path text.
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		switch t.Kind {
		case TokenHeading:
			b.WriteString(t.Value)
		case TokenFwd:
			b.WriteByte('.')
		case TokenBwd:
			b.WriteByte(',')
		case TokenTag:
			b.WriteByte('#')
		case TokenRoot:
			b.WriteByte('/')
		}
	}
	return b.String()
}
