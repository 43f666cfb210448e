// Package protovec provides ProtoVector, the schema-typed container that the
// binary codec packs for write-back to the persistent store.
//
// A ProtoVector holds either longs or text. Each slot is a boxed Entry that is
// allocated the first time the slot is written; slots past the length stay nil.
// Text payloads are owned by the container: Set replaces and releases the
// previous payload, Get and Pop hand out copies.
//
// ProtoVectors are not safe for concurrent use.
package protovec

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/logging"
	"github.com/hanseungsung/addb/internal/options"
)

// InitProtoVectorSize is the initial number of entry slots and the growth increment.
const InitProtoVectorSize = 8

// ProtoVector is a growable sequence of boxed long or text entries.
type ProtoVector struct {
	kind     format.Kind
	values   []*Entry // len(values) is the number of allocated slots
	count    int
	releaser func([]byte)
}

// Option configures a ProtoVector.
type Option = options.Option[*ProtoVector]

// WithTextReleaser installs fn as the release hook for text payloads.
// It runs once per payload the container destroys: on Set over an existing
// payload, on Delete, on Pop and on FreeDeep.
func WithTextReleaser(fn func([]byte)) Option {
	return options.NoError(func(v *ProtoVector) {
		v.releaser = fn
	})
}

// New creates an empty ProtoVector. It panics unless kind is format.KindLong or format.KindText.
func New(kind format.Kind, opts ...Option) *ProtoVector {
	if !kind.IsSchemaKind() {
		panic(fmt.Sprintf("protovec: kind %s is not supported, only Long and Text", kind))
	}

	v := &ProtoVector{kind: kind}
	if err := options.Apply(v, opts...); err != nil {
		panic(err)
	}

	return v
}

// FromEntries builds a ProtoVector that takes ownership of entries.
// Every entry must be non-nil and carry the discriminant matching kind.
func FromEntries(kind format.Kind, entries []*Entry, opts ...Option) (*ProtoVector, error) {
	if !kind.IsSchemaKind() {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedKind, kind)
	}

	want := caseFor(kind)
	for i, e := range entries {
		if e == nil || e.Case != want {
			return nil, fmt.Errorf("%w: entry %d does not hold a %s value", errs.ErrTypeMismatch, i, kind)
		}
	}

	v := New(kind, opts...)
	v.values = entries
	v.count = len(entries)

	return v, nil
}

// Kind returns the element kind.
func (v *ProtoVector) Kind() format.Kind {
	return v.kind
}

// Len returns the number of elements.
func (v *ProtoVector) Len() int {
	return v.count
}

// Cap returns the number of allocated entry slots.
func (v *ProtoVector) Cap() int {
	return len(v.values)
}

// Add appends value. Long containers accept int64, int and int32; text
// containers accept string and []byte. Any other value returns
// errs.ErrTypeMismatch and leaves the container unchanged.
func (v *ProtoVector) Add(value any) error {
	entry, err := v.newEntry(value)
	if err != nil {
		return err
	}

	v.growIfNeeded()
	v.values[v.count] = entry
	v.count++

	return nil
}

// AddLong appends a long value.
func (v *ProtoVector) AddLong(n int64) error {
	return v.Add(n)
}

// AddText appends a text value.
func (v *ProtoVector) AddText(s string) error {
	return v.Add(s)
}

// Set replaces the value at index i. For text containers the previous payload is released.
func (v *ProtoVector) Set(i int, value any) error {
	if err := v.checkIndex("set", i); err != nil {
		return err
	}

	entry, err := v.newEntry(value)
	if err != nil {
		return err
	}

	if prev := v.values[i]; prev != nil {
		v.release(prev)
		*prev = *entry

		return nil
	}
	v.values[i] = entry

	return nil
}

// Get returns the value at index i as an int64 or a string.
// Text values are copies owned by the caller.
func (v *ProtoVector) Get(i int) (any, error) {
	if err := v.checkIndex("get", i); err != nil {
		return nil, err
	}

	e := v.values[i]
	if v.kind == format.KindLong {
		return e.Long, nil
	}

	return string(e.Text), nil
}

// GetLong returns the long value at index i.
func (v *ProtoVector) GetLong(i int) (int64, error) {
	if v.kind != format.KindLong {
		return 0, fmt.Errorf("%w: %s container read as Long", errs.ErrTypeMismatch, v.kind)
	}
	if err := v.checkIndex("get", i); err != nil {
		return 0, err
	}

	return v.values[i].Long, nil
}

// GetText returns a copy of the text value at index i.
func (v *ProtoVector) GetText(i int) (string, error) {
	if v.kind != format.KindText {
		return "", fmt.Errorf("%w: %s container read as Text", errs.ErrTypeMismatch, v.kind)
	}
	if err := v.checkIndex("get", i); err != nil {
		return "", err
	}

	return string(v.values[i].Text), nil
}

// Delete releases the entry at index i and compacts the remaining entries into
// a new slot array of exactly Len()-1 slots, preserving their order.
func (v *ProtoVector) Delete(i int) error {
	if err := v.checkIndex("delete", i); err != nil {
		return err
	}

	if target := v.values[i]; target != nil {
		v.release(target)
	}

	// [0 .. i-1] | i | [i+1 .. count-1]
	//  first copy   x   second copy
	compacted := make([]*Entry, v.count-1)
	if i != 0 {
		copy(compacted, v.values[:i])
	}
	if i != v.count-1 {
		copy(compacted[i:], v.values[i+1:v.count])
	}
	v.values = compacted
	v.count--

	return nil
}

// Pop copies the last value, deletes it, and returns the copy.
func (v *ProtoVector) Pop() (any, error) {
	if v.count == 0 {
		return nil, errs.ErrEmptyContainer
	}

	last := v.count - 1
	val, err := v.Get(last)
	if err != nil {
		return nil, err
	}
	if err := v.Delete(last); err != nil {
		return nil, err
	}

	return val, nil
}

// Fit shrinks the slot array to exactly Len() slots, dropping the nil tail left by growth.
func (v *ProtoVector) Fit() {
	if len(v.values) == v.count {
		return
	}

	fitted := make([]*Entry, v.count)
	copy(fitted, v.values[:v.count])
	v.values = fitted
}

// Entries returns the live entries in order. The slice aliases the container's
// storage and is valid until the next mutation.
func (v *ProtoVector) Entries() []*Entry {
	return v.values[:v.count]
}

// All iterates over the values in order, yielding int64 or string values.
func (v *ProtoVector) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := 0; i < v.count; i++ {
			val, _ := v.Get(i)
			if !yield(i, val) {
				return
			}
		}
	}
}

// Free drops every entry without releasing text payloads. Use it when the
// payloads were handed off elsewhere.
func (v *ProtoVector) Free() {
	v.values = nil
	v.count = 0
}

// FreeDeep releases every text payload and then drops every entry.
func (v *ProtoVector) FreeDeep() {
	for i := 0; i < v.count; i++ {
		if e := v.values[i]; e != nil {
			v.release(e)
		}
	}
	v.Free()
}

// LogValue implements slog.LogValuer.
func (v *ProtoVector) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", v.kind.String()),
		slog.Int("count", v.count),
		slog.Int("slots", len(v.values)),
	)
}

func (v *ProtoVector) newEntry(value any) (*Entry, error) {
	switch v.kind {
	case format.KindLong:
		n, err := toLong(value)
		if err != nil {
			return nil, err
		}

		return &Entry{Case: EntryLong, Long: n}, nil
	default:
		b, err := toText(value)
		if err != nil {
			return nil, err
		}

		return &Entry{Case: EntryText, Text: b}, nil
	}
}

func (v *ProtoVector) release(e *Entry) {
	if e.Case != EntryText {
		return
	}
	if v.releaser != nil {
		v.releaser(e.Text)
	}
	e.Case = EntryNotSet
	e.Text = nil
}

func (v *ProtoVector) growIfNeeded() {
	if len(v.values) == 0 {
		v.values = make([]*Entry, InitProtoVectorSize)
		return
	}

	if len(v.values) <= v.count {
		grown := make([]*Entry, len(v.values)+InitProtoVectorSize)
		copy(grown, v.values)
		v.values = grown
	}
}

func (v *ProtoVector) checkIndex(op string, i int) error {
	if i < 0 || i >= v.count {
		logging.Default().LogOutOfBounds(op, i, v.count)
		return fmt.Errorf("%s index %d with length %d: %w", op, i, v.count, errs.ErrOutOfBounds)
	}

	return nil
}
