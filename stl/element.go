package stl

import (
	"fmt"
	"strconv"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/object"
)

// Element is the set of Go types a Vector can hold, one per format.Kind.
//
//   - []byte: format.KindPointer, an opaque raw buffer
//   - string: format.KindText
//   - int64: format.KindLong
//   - *object.Object: format.KindObject
type Element interface {
	[]byte | string | int64 | *object.Object
}

// KindOf returns the element kind that corresponds to T.
func KindOf[T Element]() format.Kind {
	var zero T
	switch any(zero).(type) {
	case []byte:
		return format.KindPointer
	case string:
		return format.KindText
	case int64:
		return format.KindLong
	default:
		return format.KindObject
	}
}

// FormatElement returns the text form of v used by the text wire format and by String.
// A nil object formats as the empty string; vectors reject nil objects, so it never
// reaches the wire from one.
func FormatElement[T Element](v T) string {
	switch x := any(v).(type) {
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case *object.Object:
		if x == nil {
			return ""
		}

		return x.String()
	default:
		panic(fmt.Sprintf("stl: unexpected element type %T", v))
	}
}

// ParseElement converts a text form back into an element of type T.
//
// Objects are created with a reference count of one owned by the caller.
func ParseElement[T Element](s string) (T, error) {
	var zero T
	var out any

	switch any(zero).(type) {
	case []byte:
		out = []byte(s)
	case string:
		out = s
	case int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, fmt.Errorf("%w: %q is not a long value", errs.ErrMalformedInput, s)
		}
		out = n
	case *object.Object:
		out = object.New(s)
	}

	return out.(T), nil
}
