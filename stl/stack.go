package stl

import (
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/internal/options"
)

// Stack is a Vector restricted to push and pop at the tail.
type Stack[T Element] struct {
	data *Vector[T]
}

// NewStack creates an empty stack. Options are those accepted by New.
func NewStack[T Element](opts ...options.Option[*Vector[T]]) *Stack[T] {
	return &Stack[T]{data: New[T](0, opts...)}
}

// Kind returns the element kind of the stack.
func (s *Stack[T]) Kind() format.Kind {
	return s.data.Kind()
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int {
	return s.data.Len()
}

// Push adds val on top of the stack.
func (s *Stack[T]) Push(val T) {
	s.data.Add(val)
}

// Pop removes and returns the top element; ownership moves to the caller.
func (s *Stack[T]) Pop() (T, error) {
	return s.data.Pop()
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	return s.data.Get(s.data.Len() - 1)
}

// Free drops the backing storage without releasing elements.
func (s *Stack[T]) Free() error {
	return s.data.Free()
}

// FreeDeep releases every element and drops the backing storage.
func (s *Stack[T]) FreeDeep() error {
	return s.data.FreeDeep()
}
