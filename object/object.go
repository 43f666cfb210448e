// Package object provides the reference-counted value handle stored by
// containers of kind format.KindObject.
//
// An Object starts with a reference count of one, owned by its creator. Every
// holder that keeps the object calls IncrRef and later DecrRef; the object is
// released when the count drops to zero.
package object

import (
	"fmt"
	"sync/atomic"

	"github.com/hanseungsung/addb/internal/options"
)

// Object is a shared string value with an explicit reference count.
type Object struct {
	refs   atomic.Int32
	val    string
	onFree func(*Object)
}

// Option configures an Object at creation.
type Option = options.Option[*Object]

// WithFreeHook registers fn to be called once when the last reference is dropped.
func WithFreeHook(fn func(*Object)) Option {
	return options.NoError(func(o *Object) {
		o.onFree = fn
	})
}

// New creates an Object holding val with a reference count of one.
func New(val string, opts ...Option) *Object {
	o := &Object{val: val}
	o.refs.Store(1)
	_ = options.Apply(o, opts...)

	return o
}

// IncrRef adds a reference and returns o for chaining.
// It panics if the object was already released.
// A released object stays released: the count is never raised from zero.
func (o *Object) IncrRef() *Object {
	for {
		n := o.refs.Load()
		if n <= 0 {
			panic("object: IncrRef on released object")
		}
		if o.refs.CompareAndSwap(n, n+1) {
			return o
		}
	}
}

// DecrRef drops a reference. It reports whether this call released the object.
// It panics when called on an object whose count is already zero.
func (o *Object) DecrRef() bool {
	n := o.refs.Add(-1)
	switch {
	case n > 0:
		return false
	case n == 0:
		if o.onFree != nil {
			o.onFree(o)
		}

		return true
	default:
		panic(fmt.Sprintf("object: DecrRef against refcount %d", n+1))
	}
}

// RefCount returns the current number of references.
func (o *Object) RefCount() int {
	return int(o.refs.Load())
}

// Released reports whether the last reference has been dropped.
func (o *Object) Released() bool {
	return o.refs.Load() <= 0
}

// String returns the object's value.
func (o *Object) String() string {
	return o.val
}
