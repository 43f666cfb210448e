package protovec

import (
	"fmt"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
)

// EntryCase is the discriminant of an Entry. Its values are the field numbers
// of the oneof in the packed schema.
type EntryCase uint8

const (
	EntryNotSet EntryCase = 0
	EntryLong   EntryCase = 1
	EntryText   EntryCase = 2
)

func (c EntryCase) String() string {
	switch c {
	case EntryLong:
		return "Long"
	case EntryText:
		return "Text"
	default:
		return "NotSet"
	}
}

// Entry is the envelope around one element of a ProtoVector.
type Entry struct {
	Case EntryCase
	Long int64
	Text []byte
}

// caseFor returns the entry discriminant used by containers of kind k.
func caseFor(k format.Kind) EntryCase {
	switch k {
	case format.KindLong:
		return EntryLong
	case format.KindText:
		return EntryText
	default:
		return EntryNotSet
	}
}

// toLong converts a caller value into a long payload.
func toLong(value any) (int64, error) {
	switch x := value.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	default:
		return 0, fmt.Errorf("%w: long slot given %T", errs.ErrTypeMismatch, value)
	}
}

// toText converts a caller value into an owned text payload.
func toText(value any) ([]byte, error) {
	switch x := value.(type) {
	case string:
		return []byte(x), nil
	case []byte:
		if x == nil {
			return nil, fmt.Errorf("%w: text slot given nil bytes", errs.ErrTypeMismatch)
		}

		return append([]byte{}, x...), nil
	default:
		return nil, fmt.Errorf("%w: text slot given %T", errs.ErrTypeMismatch, value)
	}
}
