package resolve_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/cdecl/internal/driver"
	"github.com/takoeight0821/cdecl/internal/lexer"
	"github.com/takoeight0821/cdecl/internal/resolve"
	"github.com/takoeight0821/cdecl/internal/token"
	"github.com/takoeight0821/cdecl/utils"
)

func TestPronounceFromTestData(t *testing.T) {
	t.Parallel()
	s, err := os.ReadFile("../../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)
	for _, testcase := range testcases {
		completePronounce(t, testcase)
	}
}

func BenchmarkFromTestData(b *testing.B) {
	s, err := os.ReadFile("../../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)

	for _, testcase := range testcases {
		b.Run(testcase.Label, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = driver.NewRunner(driver.DefaultConfig()).RunSource(testcase.Input)
			}
		})
	}
}

type reporter interface {
	Errorf(format string, args ...interface{})
}

func completePronounce(test reporter, testcase utils.TestData) {
	actual, err := driver.NewRunner(driver.DefaultConfig()).RunSource(testcase.Input)

	if testcase.Error != "" {
		if err == nil {
			test.Errorf("Pronounce %s returned %q, want error %q", testcase.Label, actual, testcase.Error)
			return
		}
		if diff := cmp.Diff(testcase.Error, err.Error()); diff != "" {
			test.Errorf("Pronounce %s error mismatch (-want +got):\n%s", testcase.Label, diff)
		}
		if actual != "" {
			test.Errorf("Pronounce %s returned partial output %q", testcase.Label, actual)
		}
		return
	}

	if err != nil {
		test.Errorf("Pronounce %s returned error: %v", testcase.Label, err)
		return
	}
	if diff := cmp.Diff(testcase.Expected, actual); diff != "" {
		test.Errorf("Pronounce %s mismatch (-want +got):\n%s", testcase.Label, diff)
	}
}

func pronounce(t *testing.T, input string, maxDepth int) (string, error) {
	t.Helper()

	lex, err := lexer.New(strings.NewReader(input), lexer.DefaultMaxTokenLen)
	if err != nil {
		t.Fatalf("lexer.New returned error: %v", err)
	}

	return resolve.NewResolver(maxDepth).Pronounce(lex)
}

func TestDeclarationDepth(t *testing.T) {
	t.Parallel()

	// int, the pointers and the identifier all go on the stack.
	fits := "int " + strings.Repeat("*", 126) + "x;"
	phrase, err := pronounce(t, fits, 128)
	if err != nil {
		t.Fatalf("Pronounce returned error: %v", err)
	}
	want := "x is " + strings.Repeat("pointer to ", 126) + "int \n"
	if diff := cmp.Diff(want, phrase); diff != "" {
		t.Errorf("Pronounce mismatch (-want +got):\n%s", diff)
	}

	tooDeep := "int " + strings.Repeat("*", 127) + "x;"
	if _, err := pronounce(t, tooDeep, 128); !errors.Is(err, resolve.ErrDeclarationTooLong) {
		t.Errorf("Pronounce returned %v, want %v", err, resolve.ErrDeclarationTooLong)
	}
}

func TestSmallDepth(t *testing.T) {
	t.Parallel()

	if _, err := pronounce(t, "int * * * x;", 4); !errors.Is(err, resolve.ErrDeclarationTooLong) {
		t.Errorf("Pronounce returned %v, want %v", err, resolve.ErrDeclarationTooLong)
	}
	if _, err := pronounce(t, "int * * x;", 4); err != nil {
		t.Errorf("Pronounce returned error: %v", err)
	}
}

func TestStackUnderflow(t *testing.T) {
	t.Parallel()

	_, err := pronounce(t, "x;", 128)
	if !errors.Is(err, resolve.ErrStackUnderflow) {
		t.Fatalf("Pronounce returned %v, want %v", err, resolve.ErrStackUnderflow)
	}

	var at utils.ErrorAt
	if !errors.As(err, &at) {
		t.Fatalf("Pronounce returned %T, want utils.ErrorAt", err)
	}
	if diff := cmp.Diff(token.Pos{Line: 1, Column: 2}, at.Where); diff != "" {
		t.Errorf("error position mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverIsReusable(t *testing.T) {
	t.Parallel()

	r := resolve.NewResolver(128)
	for _, input := range []string{"char *a;", "x;", "int b[];"} {
		lex, err := lexer.New(strings.NewReader(input), lexer.DefaultMaxTokenLen)
		if err != nil {
			t.Fatalf("lexer.New returned error: %v", err)
		}
		_, _ = r.Pronounce(lex)
	}

	lex, err := lexer.New(strings.NewReader("int c;"), lexer.DefaultMaxTokenLen)
	if err != nil {
		t.Fatalf("lexer.New returned error: %v", err)
	}
	phrase, err := r.Pronounce(lex)
	if err != nil {
		t.Fatalf("Pronounce returned error: %v", err)
	}
	if phrase != "c is int \n" {
		t.Errorf("Pronounce returned %q, want %q", phrase, "c is int \n")
	}
}

func TestPhrase(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		tok      token.Token
		expected string
	}{
		{token.Token{Kind: token.TYPE, Text: "double"}, "double "},
		{token.Token{Kind: token.SPECIFIER, Text: "const"}, "read-only "},
		{token.Token{Kind: token.SPECIFIER, Text: "volatile"}, "volatile "},
		{token.Token{Kind: token.ARRAY}, "array of "},
		{token.Token{Kind: token.POINTER}, "pointer to "},
		{token.Token{Kind: token.LEFTPAREN}, "function returning "},
		{token.Token{Kind: token.RIGHTPAREN}, ""},
		{token.Token{Kind: token.END}, ""},
	}
	for _, testcase := range testcases {
		actual, err := resolve.Phrase(testcase.tok)
		if err != nil {
			t.Errorf("Phrase(%v) returned error: %v", testcase.tok, err)
			continue
		}
		if actual != testcase.expected {
			t.Errorf("Phrase(%v) returned %q, want %q", testcase.tok, actual, testcase.expected)
		}
	}

	if _, err := resolve.Phrase(token.Token{Kind: token.IDENTIFIER, Text: "x"}); !errors.Is(err, resolve.ErrUnexpectedToken) {
		t.Errorf("Phrase(IDENTIFIER) returned %v, want %v", err, resolve.ErrUnexpectedToken)
	}
}
