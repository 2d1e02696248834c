// Package stack provides a last-in-first-out container with a hard depth
// limit.
package stack

import "errors"

const DefaultMaxDepth = 128

var (
	ErrOverflow  = errors.New("stack overflow")
	ErrUnderflow = errors.New("stack underflow")
)

type Stack[T any] struct {
	items    []T
	maxDepth int
}

func New[T any](maxDepth int) *Stack[T] {
	return &Stack[T]{maxDepth: maxDepth}
}

// Push fails with ErrOverflow instead of growing past the depth limit.
func (s *Stack[T]) Push(item T) error {
	if len(s.items) >= s.maxDepth {
		return ErrOverflow
	}
	s.items = append(s.items, item)

	return nil
}

func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrUnderflow
	}
	item := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]

	return item, nil
}

func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns the contents from bottom to top.
func (s *Stack[T]) Items() []T {
	return append([]T(nil), s.items...)
}
