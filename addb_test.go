package addb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/object"
	"github.com/hanseungsung/addb/protovec"
	"github.com/hanseungsung/addb/stl"
)

func TestTextRoundTrip(t *testing.T) {
	v := stl.New[*object.Object](0)
	for _, s := range []string{"2018", "Kim", "Yonsei"} {
		o := object.New(s)
		v.Add(o)
		o.DecrRef()
	}

	s := EncodeText(v)
	require.Equal(t, "V{T3:C3}:D:[2018|Kim|Yonsei]", s)

	c, err := DecodeText(s)
	require.NoError(t, err)
	require.Equal(t, format.KindObject, c.Kind())
	require.Equal(t, v.String(), c.String())

	require.NoError(t, c.FreeDeep())
	require.NoError(t, v.FreeDeep())
}

func TestBinaryRoundTrip(t *testing.T) {
	pv := protovec.New(format.KindLong)
	for _, n := range []int64{10, 20, 30} {
		require.NoError(t, pv.AddLong(n))
	}

	blob, err := EncodeBinary(pv)
	require.NoError(t, err)

	got, err := DecodeBinary(blob)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	for i, want := range []int64{10, 20, 30} {
		n, err := got.GetLong(i)
		require.NoError(t, err)
		require.Equal(t, want, n)
	}
}

func TestDecodeBinary_Truncated(t *testing.T) {
	_, err := DecodeBinary([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestDigest(t *testing.T) {
	a := protovec.New(format.KindText)
	b := protovec.New(format.KindText)
	require.NoError(t, a.AddText("Kim"))
	require.NoError(t, b.AddText("Kim"))

	blobA, err := EncodeBinary(a)
	require.NoError(t, err)
	blobB, err := EncodeBinary(b)
	require.NoError(t, err)
	require.Equal(t, Digest(blobA), Digest(blobB))

	require.NoError(t, b.AddText("Yonsei"))
	blobB, err = EncodeBinary(b)
	require.NoError(t, err)
	require.NotEqual(t, Digest(blobA), Digest(blobB))

	require.Equal(t, DigestText("V{T1:C1}:D:[solo]"), Digest([]byte("V{T1:C1}:D:[solo]")))
}
