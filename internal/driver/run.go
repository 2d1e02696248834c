package driver

import (
	"io"
	"strings"

	"github.com/takoeight0821/cdecl/internal/lexer"
	"github.com/takoeight0821/cdecl/internal/resolve"
	"github.com/takoeight0821/cdecl/internal/stack"
	"github.com/takoeight0821/cdecl/internal/token"
)

type Config struct {
	MaxTokenLen int
	MaxDepth    int
}

func DefaultConfig() Config {
	return Config{
		MaxTokenLen: lexer.DefaultMaxTokenLen,
		MaxDepth:    stack.DefaultMaxDepth,
	}
}

// Runner pronounces declarations. Every call starts a fresh session: a new
// position tracker and an empty stack.
type Runner struct {
	config Config
}

func NewRunner(config Config) *Runner {
	return &Runner{config: config}
}

// Run reads one declaration from in. Input after its semicolon is left
// unread.
func (r *Runner) Run(in io.Reader) (string, error) {
	lex, err := lexer.New(in, r.config.MaxTokenLen)
	if err != nil {
		return "", err
	}

	return resolve.NewResolver(r.config.MaxDepth).Pronounce(lex)
}

func (r *Runner) RunSource(source string) (string, error) {
	return r.Run(strings.NewReader(source))
}

// Trace is Run that also returns every token the resolver pulled, in order.
// Parameter lists skipped by the resolver do not appear.
func (r *Runner) Trace(in io.Reader) ([]token.Token, string, error) {
	lex, err := lexer.New(in, r.config.MaxTokenLen)
	if err != nil {
		return nil, "", err
	}

	rec := &recorder{TokenSource: lex}
	phrase, err := resolve.NewResolver(r.config.MaxDepth).Pronounce(rec)

	return rec.tokens, phrase, err
}

type recorder struct {
	resolve.TokenSource
	tokens []token.Token
}

func (r *recorder) Next() (token.Token, error) {
	tok, err := r.TokenSource.Next()
	if err == nil {
		r.tokens = append(r.tokens, tok)
	}
	return tok, err
}
