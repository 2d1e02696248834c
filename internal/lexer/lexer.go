// Package lexer turns a character stream into C declaration tokens.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/takoeight0821/cdecl/internal/source"
	"github.com/takoeight0821/cdecl/internal/token"
	"github.com/takoeight0821/cdecl/utils"
)

const DefaultMaxTokenLen = 64

var (
	ErrUnexpectedEOF          = errors.New("unexpected end of file")
	ErrTokenTooLong           = errors.New("too long token occurred, can't proceed")
	ErrUnrecognizedCharacter  = errors.New("unrecognized character")
	errNonPositiveTokenLength = errors.New("maximum token length must be positive")
)

// Lexer produces one token per call to Next. It keeps no lookahead of its
// own beyond the single character of pushback offered by the source.
type Lexer struct {
	src         *source.Reader
	maxTokenLen int
}

func New(r io.Reader, maxTokenLen int) (*Lexer, error) {
	if maxTokenLen <= 0 {
		return nil, fmt.Errorf("%w: %d", errNonPositiveTokenLength, maxTokenLen)
	}
	return &Lexer{src: source.New(r), maxTokenLen: maxTokenLen}, nil
}

func (l *Lexer) Pos() token.Pos {
	return l.src.Pos()
}

func (l *Lexer) errorAt(err error) error {
	return utils.At(l.src.Pos(), err)
}

// read consumes one character and turns end of input into ErrUnexpectedEOF:
// a declaration is never allowed to end before its semicolon.
func (l *Lexer) read() (rune, error) {
	c, err := l.src.ReadRune()
	if errors.Is(err, io.EOF) {
		return 0, l.errorAt(ErrUnexpectedEOF)
	}
	if err != nil {
		return 0, l.errorAt(err)
	}
	return c, nil
}

func (l *Lexer) unread() error {
	if err := l.src.UnreadRune(); err != nil {
		return l.errorAt(err)
	}
	return nil
}

func (l *Lexer) skipSpaces() error {
	for {
		c, err := l.read()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(c) {
			return l.unread()
		}
	}
}

// Next returns the next token of the declaration.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipSpaces(); err != nil {
		return token.Token{}, err
	}

	c, err := l.read()
	if err != nil {
		return token.Token{}, err
	}
	start := l.src.Pos()

	switch {
	case c == ';':
		return token.Token{Kind: token.END, Pos: start}, nil
	case isAlpha(c):
		if err := l.unread(); err != nil {
			return token.Token{}, err
		}
		return l.word()
	case c == '[':
		// Array sizes are not kept.
		if err := l.skipGroup('[', ']'); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.ARRAY, Pos: start}, nil
	case c == '(':
		return token.Token{Kind: token.LEFTPAREN, Pos: start}, nil
	case c == ')':
		return token.Token{Kind: token.RIGHTPAREN, Pos: start}, nil
	case c == '*':
		return token.Token{Kind: token.POINTER, Pos: start}, nil
	}

	return token.Token{}, l.errorAt(fmt.Errorf("%w: %q", ErrUnrecognizedCharacter, c))
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c)
}

func isWordChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func (l *Lexer) word() (token.Token, error) {
	var b strings.Builder
	n := 0
	for {
		c, err := l.read()
		if err != nil {
			return token.Token{}, err
		}
		if !isWordChar(c) {
			if err := l.unread(); err != nil {
				return token.Token{}, err
			}
			break
		}
		if n >= l.maxTokenLen {
			return token.Token{}, l.errorAt(ErrTokenTooLong)
		}
		n++
		b.WriteRune(c)
	}

	text := b.String()
	pos := l.src.Pos()
	pos.Column -= n - 1

	return token.Token{Kind: classify(text), Text: text, Pos: pos}, nil
}

func classify(word string) token.Kind {
	if _, ok := types[word]; ok {
		return token.TYPE
	}
	if _, ok := specifiers[word]; ok {
		return token.SPECIFIER
	}
	return token.IDENTIFIER
}

var types = map[string]struct{}{
	"int":      {},
	"char":     {},
	"void":     {},
	"signed":   {},
	"unsigned": {},
	"short":    {},
	"long":     {},
	"float":    {},
	"double":   {},
}

var specifiers = map[string]struct{}{
	"const":    {},
	"volatile": {},
}

// SkipParameters discards a function parameter list whose opening
// parenthesis has already been returned by Next, up to and including the
// matching closing parenthesis.
func (l *Lexer) SkipParameters() error {
	return l.skipGroup('(', ')')
}

// skipGroup consumes characters until the right delimiter that balances an
// already consumed left one.
func (l *Lexer) skipGroup(left, right rune) error {
	depth := 1
	for {
		c, err := l.read()
		if err != nil {
			return err
		}
		switch c {
		case left:
			depth++
		case right:
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

// Tokens lexes a whole declaration, up to and including its END token.
// Parameter lists are lexed like any other input, not skipped.
func (l *Lexer) Tokens() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.END {
			return tokens, nil
		}
	}
}
