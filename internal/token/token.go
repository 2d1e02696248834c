package token

import "fmt"

type Kind int

const (
	TYPE Kind = iota
	SPECIFIER
	IDENTIFIER
	ARRAY
	POINTER
	LEFTPAREN
	RIGHTPAREN
	END
)

var kindNames = [...]string{
	TYPE:       "TYPE",
	SPECIFIER:  "SPECIFIER",
	IDENTIFIER: "IDENTIFIER",
	ARRAY:      "ARRAY",
	POINTER:    "POINTER",
	LEFTPAREN:  "LBRACE",
	RIGHTPAREN: "RBRACE",
	END:        "END",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// HasText reports whether tokens of this kind carry their source text.
func (k Kind) HasText() bool {
	return k == TYPE || k == SPECIFIER || k == IDENTIFIER
}

// Pos is a location in the input. Line is 1-based, Column counts the
// characters consumed on the current line.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind Kind
	Text string // empty unless Kind.HasText
	Pos  Pos
}

func (t Token) Pretty() string {
	if t.Kind.HasText() {
		return t.Text
	}
	return t.Kind.String()
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %v}", t.Kind, t.Text, t.Pos)
}
