package encoding

import (
	"strconv"

	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/internal/pool"
	"github.com/hanseungsung/addb/stl"
)

// EncodeText renders c in the delimited text form.
//
// Element text must not contain '|' or ']'; the format has no escaping and such
// values will not decode back to the same container.
func EncodeText(c stl.Container) string {
	buf := pool.GetCellBuffer()
	defer pool.PutCellBuffer(buf)

	writeText(buf, c)

	return string(buf.Bytes())
}

// AppendText appends the text form of c to dst and returns the extended slice.
func AppendText(dst []byte, c stl.Container) []byte {
	buf := &pool.ByteBuffer{B: dst}
	writeText(buf, c)

	return buf.Bytes()
}

func writeText(buf *pool.ByteBuffer, c stl.Container) {
	n := c.Len()

	buf.WriteString(format.TextHeaderPrefix)
	buf.B = strconv.AppendUint(buf.B, uint64(c.Kind()), 10)
	_ = buf.WriteByte(format.FieldSeparator)
	buf.WriteString(format.CountPrefix)
	buf.B = strconv.AppendInt(buf.B, int64(n), 10)
	buf.WriteString(format.TextDataPrefix)

	for i := range n {
		if i > 0 {
			_ = buf.WriteByte(format.Delimiter)
		}
		s, _ := c.TextAt(i)
		buf.WriteString(s)
	}

	_ = buf.WriteByte(format.VectorDataSuffix)
}
