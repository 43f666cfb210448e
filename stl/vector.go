// Package stl provides the typed, growable containers that carry column values
// between the key/value server and the persistent store.
//
// A Vector holds elements of exactly one kind, fixed when it is created. It grows
// by InitVectorSize slots at a time, compacts on every Delete so the remaining
// elements keep their order, and distinguishes a shallow Free, which drops only
// the backing array, from a FreeDeep, which releases every live element first.
//
// Vectors are not safe for concurrent use.
package stl

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/internal/hash"
	"github.com/hanseungsung/addb/logging"
	"github.com/hanseungsung/addb/internal/options"
	"github.com/hanseungsung/addb/object"
)

// InitVectorSize is the initial capacity of a lazily allocated vector and the
// number of slots added on every growth.
const InitVectorSize = 8

// Container is the kind-erased view of a Vector used by the text codec and by
// callers that only learn the element kind at run time.
type Container interface {
	Kind() format.Kind
	Len() int
	Cap() int
	// TextAt returns the text form of the element at index i.
	TextAt(i int) (string, bool)
	// AppendText parses s according to the container kind and appends it.
	AppendText(s string) error
	Free() error
	FreeDeep() error
	String() string
}

// Vector is a growable, index-addressable sequence of elements of type T.
type Vector[T Element] struct {
	kind     format.Kind
	data     []T // len(data) is the capacity
	count    int
	releaser func(T)
}

var _ Container = (*Vector[string])(nil)

// WithReleaser installs fn as the release hook for owned elements.
//
// The hook runs once for every element the vector destroys: on Delete and on
// FreeDeep. It never runs for long elements, which own nothing. For object
// elements it runs after the vector has dropped its reference.
func WithReleaser[T Element](fn func(T)) options.Option[*Vector[T]] {
	return options.NoError(func(v *Vector[T]) {
		v.releaser = fn
	})
}

// New creates a vector for elements of type T with room for size elements.
// A size of zero defers allocation to the first Add.
func New[T Element](size int, opts ...options.Option[*Vector[T]]) *Vector[T] {
	if size < 0 {
		panic(fmt.Sprintf("stl: negative vector size %d", size))
	}

	v := &Vector[T]{kind: KindOf[T]()}
	if size > 0 {
		v.data = make([]T, size)
	}
	if err := options.Apply(v, opts...); err != nil {
		panic(err)
	}

	return v
}

// Create creates an empty vector of the given kind behind the Container interface.
// It panics if kind is not a known element kind.
func Create(kind format.Kind, size int) Container {
	switch kind {
	case format.KindPointer:
		return New[[]byte](size)
	case format.KindText:
		return New[string](size)
	case format.KindLong:
		return New[int64](size)
	case format.KindObject:
		return New[*object.Object](size)
	default:
		panic(fmt.Sprintf("stl: wrong vector type [%d]", kind))
	}
}

// Kind returns the element kind fixed at creation.
func (v *Vector[T]) Kind() format.Kind {
	return v.kind
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return v.count
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	return len(v.data)
}

// Add appends val, growing the backing array by InitVectorSize if it is full.
// Object elements gain a reference held by the vector; a nil object panics.
func (v *Vector[T]) Add(val T) {
	val = v.retain(val)
	v.growIfNeeded()
	v.data[v.count] = val
	v.count++
}

// Set overwrites the element at index i. The previous occupant is not released;
// that stays the caller's responsibility. A nil object panics.
func (v *Vector[T]) Set(i int, val T) error {
	if err := v.checkIndex("set", i); err != nil {
		return err
	}
	v.data[i] = v.retain(val)

	return nil
}

// Get returns the element at index i. The second result is false when i is out of bounds.
// The vector keeps ownership of the returned element.
func (v *Vector[T]) Get(i int) (T, bool) {
	if i < 0 || i >= v.count {
		logging.Default().LogOutOfBounds("get", i, v.count)

		var zero T

		return zero, false
	}

	return v.data[i], true
}

// Delete releases the element at index i and compacts the vector into a new
// backing array of exactly Len()-1 slots. Relative order is preserved.
func (v *Vector[T]) Delete(i int) error {
	if err := v.checkIndex("delete", i); err != nil {
		return err
	}

	target := v.data[i]
	v.compact(i)
	v.release(target)

	return nil
}

// Unlink removes the element at index i like Delete but hands it to the caller
// instead of releasing it. For objects the vector's reference moves to the caller.
func (v *Vector[T]) Unlink(i int) (T, error) {
	if err := v.checkIndex("unlink", i); err != nil {
		var zero T
		return zero, err
	}

	target := v.data[i]
	v.compact(i)

	return target, nil
}

// Pop removes and returns the last element without reallocating.
// Ownership moves to the caller.
func (v *Vector[T]) Pop() (T, error) {
	var zero T
	if v.count == 0 {
		return zero, errs.ErrEmptyContainer
	}

	v.count--
	target := v.data[v.count]
	v.data[v.count] = zero

	return target, nil
}

// Free drops the backing array without releasing any element.
// It returns errs.ErrNotAllocated when there is no backing array.
func (v *Vector[T]) Free() error {
	if v.data == nil {
		return errs.ErrNotAllocated
	}

	v.data = nil
	v.count = 0

	return nil
}

// FreeDeep releases every live element according to its kind, then drops the backing array.
func (v *Vector[T]) FreeDeep() error {
	if v.data == nil {
		return errs.ErrNotAllocated
	}

	for i := 0; i < v.count; i++ {
		v.release(v.data[i])
	}

	return v.Free()
}

// All iterates over the live elements in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.count; i++ {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// Values returns a copy of the live elements.
func (v *Vector[T]) Values() []T {
	out := make([]T, v.count)
	copy(out, v.data[:v.count])

	return out
}

// TextAt returns the text form of the element at index i.
func (v *Vector[T]) TextAt(i int) (string, bool) {
	val, ok := v.Get(i)
	if !ok {
		return "", false
	}

	return FormatElement(val), true
}

// AppendText parses s as an element of type T and appends it.
func (v *Vector[T]) AppendText(s string) error {
	val, err := ParseElement[T](s)
	if err != nil {
		return err
	}
	v.Add(val)

	// The parsed object was created with its own reference, which Add duplicated.
	if o, ok := any(val).(*object.Object); ok {
		o.DecrRef()
	}

	return nil
}

// String joins the text forms of all elements with a single space.
// It is meant for diagnostics; the wire format is produced by the encoding package.
func (v *Vector[T]) String() string {
	var sb strings.Builder
	for i := 0; i < v.count; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(FormatElement(v.data[i]))
	}

	return sb.String()
}

// LogValue implements slog.LogValuer.
func (v *Vector[T]) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", v.kind.String()),
		slog.Int("count", v.count),
		slog.Int("capacity", len(v.data)),
		slog.String("values", v.String()),
	)
}

// Digest returns an xxHash64 fingerprint of the kind and element text forms.
func (v *Vector[T]) Digest() uint64 {
	d := hash.NewDigest()
	d.WriteElement(v.kind.String())
	for i := 0; i < v.count; i++ {
		d.WriteElement(FormatElement(v.data[i]))
	}

	return d.Sum64()
}

func (v *Vector[T]) checkIndex(op string, i int) error {
	if i < 0 || i >= v.count {
		logging.Default().LogOutOfBounds(op, i, v.count)
		return fmt.Errorf("%s index %d with length %d: %w", op, i, v.count, errs.ErrOutOfBounds)
	}

	return nil
}

func (v *Vector[T]) growIfNeeded() {
	if len(v.data) == 0 {
		v.data = make([]T, InitVectorSize)
		return
	}

	if len(v.data) <= v.count {
		grown := make([]T, len(v.data)+InitVectorSize)
		copy(grown, v.data)
		v.data = grown
	}
}

// compact rebuilds the backing array without index i.
func (v *Vector[T]) compact(i int) {
	rebuilt := make([]T, v.count-1)
	copy(rebuilt, v.data[:i])
	copy(rebuilt[i:], v.data[i+1:v.count])
	v.data = rebuilt
	v.count--
}

// retain takes the vector's reference on object elements. A nil object has no
// text form that decodes back to nil, so it is rejected.
func (v *Vector[T]) retain(val T) T {
	if o, ok := any(val).(*object.Object); ok {
		if o == nil {
			panic("stl: nil object element")
		}
		o.IncrRef()
	}

	return val
}

func (v *Vector[T]) release(val T) {
	switch x := any(val).(type) {
	case int64:
		return
	case *object.Object:
		if x != nil {
			x.DecrRef()
		}
	}

	if v.releaser != nil {
		v.releaser(val)
	}
}
