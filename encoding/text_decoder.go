package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/logging"
	"github.com/hanseungsung/addb/stl"
)

// maxLoggedInput bounds how much of a rejected input is written to the log.
const maxLoggedInput = 64

// TextDecoder rebuilds a container from its text form.
//
// NewTextDecoder parses only the header; the body is parsed by Decode. A decoder
// is not reusable and not safe for concurrent use.
type TextDecoder struct {
	input string
	kind  format.Kind
	count int
	body  string // everything after the opening '['
}

// NewTextDecoder parses the header of s and prepares to decode its body.
func NewTextDecoder(s string) (*TextDecoder, error) {
	d := &TextDecoder{input: s}
	if err := d.parseHeader(); err != nil {
		return nil, d.fail(err)
	}

	return d, nil
}

// Kind returns the element kind named by the header.
func (d *TextDecoder) Kind() format.Kind {
	return d.kind
}

// Count returns the element count named by the header.
func (d *TextDecoder) Count() int {
	return d.count
}

// Decode creates a container of the header's kind and appends every element.
// On error the partially built container is released.
func (d *TextDecoder) Decode() (stl.Container, error) {
	c := stl.Create(d.kind, d.count)
	if err := d.decodeInto(c); err != nil {
		_ = c.FreeDeep()
		return nil, d.fail(err)
	}

	return c, nil
}

func (d *TextDecoder) decodeInto(c stl.Container) error {
	rest := d.body
	logger := logging.Default()
	debug := logger.DebugEnabled()

	if d.count == 0 {
		if rest != string(format.VectorDataSuffix) {
			return fmt.Errorf("%w: empty vector must close with %q", errs.ErrMalformedInput, format.VectorDataSuffix)
		}

		return nil
	}

	for i := range d.count {
		sep := byte(format.Delimiter)
		if i == d.count-1 {
			sep = format.VectorDataSuffix
		}

		end := strings.IndexByte(rest, sep)
		if end < 0 {
			return fmt.Errorf("%w: element %d of %d is not terminated by %q", errs.ErrMalformedInput, i, d.count, sep)
		}
		if err := c.AppendText(rest[:end]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		if debug {
			logger.LogDecodeElement("text", i, rest[:end])
		}
		rest = rest[end+1:]
	}

	if rest != "" {
		return fmt.Errorf("%w: %d trailing bytes after vector data", errs.ErrMalformedInput, len(rest))
	}

	return nil
}

// parseHeader reads V{T<kind>:C<count>}:D:[ from the front of the input.
func (d *TextDecoder) parseHeader() error {
	rest, ok := strings.CutPrefix(d.input, format.TextHeaderPrefix)
	if !ok {
		return fmt.Errorf("%w: missing %q header", errs.ErrMalformedInput, format.TextHeaderPrefix)
	}

	kindText, rest, ok := strings.Cut(rest, string(format.FieldSeparator))
	if !ok {
		return fmt.Errorf("%w: kind is not terminated by %q", errs.ErrMalformedInput, format.FieldSeparator)
	}
	kind, err := strconv.ParseUint(kindText, 10, 8)
	if err != nil {
		return fmt.Errorf("%w: invalid kind %q", errs.ErrMalformedInput, kindText)
	}
	d.kind = format.Kind(kind)
	if !d.kind.IsValid() {
		return fmt.Errorf("%w: %w: %s", errs.ErrMalformedInput, errs.ErrUnsupportedKind, d.kind)
	}

	rest, ok = strings.CutPrefix(rest, format.CountPrefix)
	if !ok {
		return fmt.Errorf("%w: missing %q before count", errs.ErrMalformedInput, format.CountPrefix)
	}
	end := strings.IndexByte(rest, format.BraceClose)
	if end < 0 {
		return fmt.Errorf("%w: count is not terminated by %q", errs.ErrMalformedInput, format.BraceClose)
	}
	countText := rest[:end]
	parsed, err := strconv.ParseUint(countText, 10, 63)
	if err != nil {
		return fmt.Errorf("%w: invalid count %q", errs.ErrMalformedInput, countText)
	}

	rest, ok = strings.CutPrefix(rest[end:], format.TextDataPrefix)
	if !ok {
		return fmt.Errorf("%w: missing %q before data", errs.ErrMalformedInput, format.TextDataPrefix)
	}

	// Every element needs at least its terminator.
	if parsed > uint64(len(rest)) {
		return fmt.Errorf("%w: count %d exceeds remaining input of %d bytes", errs.ErrMalformedInput, parsed, len(rest))
	}

	d.count = int(parsed)
	d.body = rest
	logging.Default().LogDecodeHeader("text", d.kind, d.count)

	return nil
}

func (d *TextDecoder) fail(err error) error {
	input := d.input
	if len(input) > maxLoggedInput {
		input = input[:maxLoggedInput] + "..."
	}
	logging.Default().LogMalformed("text", input, err)

	return err
}

// DecodeText decodes the text form s into a container of the kind named by its header.
func DecodeText(s string) (stl.Container, error) {
	d, err := NewTextDecoder(s)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}

// DecodeTextAs decodes s into a Vector[T]. It returns errs.ErrTypeMismatch when
// the header names a kind other than the one T maps to.
func DecodeTextAs[T stl.Element](s string) (*stl.Vector[T], error) {
	d, err := NewTextDecoder(s)
	if err != nil {
		return nil, err
	}
	if want := stl.KindOf[T](); d.kind != want {
		return nil, fmt.Errorf("%w: input holds %s, want %s", errs.ErrTypeMismatch, d.kind, want)
	}

	v := stl.New[T](d.count)
	if err := d.decodeInto(v); err != nil {
		_ = v.FreeDeep()
		return nil, d.fail(err)
	}

	return v, nil
}
