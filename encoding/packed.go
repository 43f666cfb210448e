package encoding

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/protovec"
)

// Field numbers of the packed schema.
const (
	vectorKindField    protowire.Number = 1
	vectorEntriesField protowire.Number = 2
	vectorCountField   protowire.Number = 3

	entryLongField protowire.Number = 1
	entryTextField protowire.Number = 2

	textBufField protowire.Number = 1
)

// PackedSize returns the number of bytes the packed form of v occupies, without
// the length prefix.
func PackedSize(v *protovec.ProtoVector) int {
	n := 0
	if k := uint64(v.Kind()); k != 0 {
		n += protowire.SizeTag(vectorKindField) + protowire.SizeVarint(k)
	}
	for _, e := range v.Entries() {
		n += protowire.SizeTag(vectorEntriesField) + protowire.SizeBytes(entrySize(e))
	}
	if c := uint64(v.Len()); c != 0 {
		n += protowire.SizeTag(vectorCountField) + protowire.SizeVarint(c)
	}

	return n
}

func entrySize(e *protovec.Entry) int {
	switch e.Case {
	case protovec.EntryLong:
		return protowire.SizeTag(entryLongField) + protowire.SizeVarint(uint64(e.Long))
	case protovec.EntryText:
		return protowire.SizeTag(entryTextField) + protowire.SizeBytes(textSize(e.Text))
	default:
		return 0
	}
}

func textSize(b []byte) int {
	if len(b) == 0 {
		return 0
	}

	return protowire.SizeTag(textBufField) + protowire.SizeBytes(len(b))
}

// appendPacked appends the packed form of v to dst.
func appendPacked(dst []byte, v *protovec.ProtoVector) []byte {
	if k := uint64(v.Kind()); k != 0 {
		dst = protowire.AppendTag(dst, vectorKindField, protowire.VarintType)
		dst = protowire.AppendVarint(dst, k)
	}

	for _, e := range v.Entries() {
		dst = protowire.AppendTag(dst, vectorEntriesField, protowire.BytesType)
		dst = protowire.AppendVarint(dst, uint64(entrySize(e)))

		switch e.Case {
		case protovec.EntryLong:
			dst = protowire.AppendTag(dst, entryLongField, protowire.VarintType)
			dst = protowire.AppendVarint(dst, uint64(e.Long))
		case protovec.EntryText:
			dst = protowire.AppendTag(dst, entryTextField, protowire.BytesType)
			dst = protowire.AppendVarint(dst, uint64(textSize(e.Text)))
			if len(e.Text) > 0 {
				dst = protowire.AppendTag(dst, textBufField, protowire.BytesType)
				dst = protowire.AppendBytes(dst, e.Text)
			}
		}
	}

	if c := uint64(v.Len()); c != 0 {
		dst = protowire.AppendTag(dst, vectorCountField, protowire.VarintType)
		dst = protowire.AppendVarint(dst, c)
	}

	return dst
}

// unpack parses a packed container. Text payloads are copied out of b.
// Unknown fields are skipped.
func unpack(b []byte, opts ...protovec.Option) (*protovec.ProtoVector, error) {
	var (
		kind     uint64
		count    uint64
		hasCount bool
		entries  []*protovec.Entry
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == vectorKindField && typ == protowire.VarintType:
			kind, n = protowire.ConsumeVarint(b)
		case num == vectorEntriesField && typ == protowire.BytesType:
			var raw []byte
			raw, n = protowire.ConsumeBytes(b)
			if n >= 0 {
				e, err := unpackEntry(raw)
				if err != nil {
					return nil, fmt.Errorf("entry %d: %w", len(entries), err)
				}
				entries = append(entries, e)
			}
		case num == vectorCountField && typ == protowire.VarintType:
			count, n = protowire.ConsumeVarint(b)
			hasCount = true
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]
	}

	if kind > uint64(format.KindObject) || !format.Kind(kind).IsSchemaKind() {
		return nil, fmt.Errorf("%w: %w: kind %d", errs.ErrMalformedInput, errs.ErrUnsupportedKind, kind)
	}
	if hasCount && count != uint64(len(entries)) {
		return nil, fmt.Errorf("%w: count field %d, %d entries", errs.ErrLengthMismatch, count, len(entries))
	}

	v, err := protovec.FromEntries(format.Kind(kind), entries, opts...)
	if err != nil {
		return nil, malformed(err)
	}

	return v, nil
}

func unpackEntry(b []byte) (*protovec.Entry, error) {
	e := &protovec.Entry{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == entryLongField && typ == protowire.VarintType:
			var u uint64
			u, n = protowire.ConsumeVarint(b)
			e.Case, e.Long, e.Text = protovec.EntryLong, int64(u), nil
		case num == entryTextField && typ == protowire.BytesType:
			var raw []byte
			raw, n = protowire.ConsumeBytes(b)
			if n >= 0 {
				text, err := unpackText(raw)
				if err != nil {
					return nil, err
				}
				e.Case, e.Long, e.Text = protovec.EntryText, 0, text
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]
	}

	return e, nil
}

func unpackText(b []byte) ([]byte, error) {
	text := []byte{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		if num == textBufField && typ == protowire.BytesType {
			var raw []byte
			raw, n = protowire.ConsumeBytes(b)
			if n >= 0 {
				text = append(text[:0], raw...)
			}
		} else {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]
	}

	return text, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
}
