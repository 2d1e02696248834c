// Package resolve pronounces a C declaration by the right-left rule: starting
// at the identifier, read what stands to its right until a closing
// parenthesis or the end, then what stands to its left until an opening
// parenthesis or the beginning, and repeat.
package resolve

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/takoeight0821/cdecl/internal/stack"
	"github.com/takoeight0821/cdecl/internal/token"
	"github.com/takoeight0821/cdecl/utils"
)

var (
	ErrDeclarationTooLong = errors.New("too long declaration, can't proceed")
	ErrStackUnderflow     = errors.New("stack underflow, invalid declaration")
	ErrUnexpectedToken    = errors.New("unexpected token")
)

// TokenSource is pulled for tokens one at a time. SkipParameters discards
// the rest of a parameter list after its opening parenthesis was returned.
type TokenSource interface {
	Next() (token.Token, error)
	SkipParameters() error
	Pos() token.Pos
}

type Resolver struct {
	maxDepth int
	src      TokenSource
	left     *stack.Stack[token.Token]
	out      strings.Builder
}

func NewResolver(maxDepth int) *Resolver {
	return &Resolver{maxDepth: maxDepth}
}

// Pronounce reads one declaration from src and returns its description,
// terminated by a newline. Nothing is returned on error.
func (r *Resolver) Pronounce(src TokenSource) (string, error) {
	r.src = src
	r.left = stack.New[token.Token](r.maxDepth)
	r.out.Reset()

	name, err := r.collectLeft()
	if err != nil {
		return "", err
	}
	r.out.WriteString(name)
	r.out.WriteString(" is ")

	rightFinished, leftFinished := false, false
	for !rightFinished || !leftFinished {
		if !rightFinished {
			if rightFinished, err = r.rightPass(); err != nil {
				return "", err
			}
		}
		if !leftFinished {
			if leftFinished, err = r.leftPass(); err != nil {
				return "", err
			}
		}
	}

	if !r.left.IsEmpty() {
		log.Panicf("left side not drained: %v", r.left.Items())
	}

	r.out.WriteString("\n")

	return r.out.String(), nil
}

func (r *Resolver) errorAt(err error) error {
	return utils.At(r.src.Pos(), err)
}

func (r *Resolver) push(tok token.Token) error {
	if err := r.left.Push(tok); err != nil {
		if errors.Is(err, stack.ErrOverflow) {
			return r.errorAt(ErrDeclarationTooLong)
		}
		return r.errorAt(err)
	}
	return nil
}

func (r *Resolver) pop() (token.Token, error) {
	tok, err := r.left.Pop()
	if err != nil {
		if errors.Is(err, stack.ErrUnderflow) {
			return tok, r.errorAt(ErrStackUnderflow)
		}
		return tok, r.errorAt(err)
	}
	return tok, nil
}

// collectLeft stacks everything up to and including the identifier, then
// takes the identifier back off and returns its name.
func (r *Resolver) collectLeft() (string, error) {
	for {
		tok, err := r.src.Next()
		if err != nil {
			return "", err
		}
		if tok.Kind == token.END {
			return "", r.errorAt(fmt.Errorf("%w: %v before identifier", ErrUnexpectedToken, tok.Kind))
		}
		if err := r.push(tok); err != nil {
			return "", err
		}
		if tok.Kind == token.IDENTIFIER {
			break
		}
	}

	ident, err := r.pop()
	if err != nil {
		return "", err
	}

	return ident.Text, nil
}

// rightPass reports whether the end of the declaration was reached. It
// returns false when it stopped at a closing parenthesis.
func (r *Resolver) rightPass() (bool, error) {
	for {
		tok, err := r.src.Next()
		if err != nil {
			return false, err
		}

		switch tok.Kind {
		case token.END:
			return true, nil
		case token.RIGHTPAREN:
			return false, nil
		case token.LEFTPAREN:
			r.out.WriteString(functionReturning)
			if err := r.src.SkipParameters(); err != nil {
				return false, err
			}
		default:
			if err := r.say(tok); err != nil {
				return false, err
			}
		}
	}
}

// leftPass reports whether the left side is exhausted. An opening
// parenthesis ends the pass without being spoken.
func (r *Resolver) leftPass() (bool, error) {
	for {
		tok, err := r.pop()
		if err != nil {
			return false, err
		}
		if tok.Kind == token.LEFTPAREN {
			break
		}
		if tok.Kind == token.TYPE {
			err = r.sayBaseType(tok)
		} else {
			err = r.say(tok)
		}
		if err != nil {
			return false, err
		}
		if r.left.IsEmpty() {
			break
		}
	}

	return r.left.IsEmpty(), nil
}

// sayBaseType speaks the run of type keywords and qualifiers that starts at
// typ and continues down the stack. Qualifiers in the run apply to the base
// type and are spoken before it: "const char" is "read-only char".
func (r *Resolver) sayBaseType(typ token.Token) error {
	types := []token.Token{typ}
	var qualifiers []token.Token
	for {
		top, ok := r.left.Peek()
		if !ok || (top.Kind != token.TYPE && top.Kind != token.SPECIFIER) {
			break
		}
		if _, err := r.pop(); err != nil {
			return err
		}
		if top.Kind == token.TYPE {
			types = append(types, top)
		} else {
			qualifiers = append(qualifiers, top)
		}
	}

	for _, tok := range append(qualifiers, types...) {
		if err := r.say(tok); err != nil {
			return err
		}
	}

	return nil
}

func (r *Resolver) say(tok token.Token) error {
	phrase, err := Phrase(tok)
	if err != nil {
		return utils.At(tok.Pos, err)
	}
	r.out.WriteString(phrase)

	return nil
}

const functionReturning = "function returning "

// Phrase translates a single token into its fragment of the description.
// Closing parentheses and the end marker are silent.
func Phrase(tok token.Token) (string, error) {
	switch tok.Kind {
	case token.TYPE:
		return tok.Text + " ", nil
	case token.SPECIFIER:
		if tok.Text == "const" {
			return "read-only ", nil
		}
		return tok.Text + " ", nil
	case token.ARRAY:
		return "array of ", nil
	case token.POINTER:
		return "pointer to ", nil
	case token.LEFTPAREN:
		return functionReturning, nil
	case token.RIGHTPAREN, token.END:
		return "", nil
	case token.IDENTIFIER:
		return "", fmt.Errorf("%w: %v %q", ErrUnexpectedToken, tok.Kind, tok.Pretty())
	}

	return "", fmt.Errorf("%w: %v", ErrUnexpectedToken, tok.Kind)
}
