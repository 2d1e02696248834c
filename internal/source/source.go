// Package source reads characters from a stream while keeping track of the
// current line and column.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/takoeight0821/cdecl/internal/token"
)

var ErrIO = errors.New("unrecoverable IO error occurred")

type Reader struct {
	brdr    *bufio.Reader
	pos     token.Pos
	lastPos token.Pos
}

func New(r io.Reader) *Reader {
	return &Reader{
		brdr: bufio.NewReader(r),
		pos:  token.Pos{Line: 1, Column: 0},
	}
}

// Pos returns the position after the last consumed character.
func (s *Reader) Pos() token.Pos {
	return s.pos
}

// ReadRune consumes one character. It returns io.EOF once the stream is
// exhausted; any other read failure is reported as ErrIO.
func (s *Reader) ReadRune() (rune, error) {
	r, _, err := s.brdr.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	s.lastPos = s.pos
	if r == '\n' {
		s.pos.Line++
		s.pos.Column = 0
	} else {
		s.pos.Column++
	}

	return r, nil
}

// UnreadRune pushes the last consumed character back. Only one character of
// pushback is available between reads.
func (s *Reader) UnreadRune() error {
	if err := s.brdr.UnreadRune(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	s.pos = s.lastPos

	return nil
}
