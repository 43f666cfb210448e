package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesMatchesString(t *testing.T) {
	require.Equal(t, String("V{T1:C1}:D:[solo]"), Bytes([]byte("V{T1:C1}:D:[solo]")))
	require.NotEqual(t, String("a"), String("b"))
}

func TestDigest_ElementBoundaries(t *testing.T) {
	d1 := NewDigest()
	d1.WriteElement("ab")
	d1.WriteElement("c")

	d2 := NewDigest()
	d2.WriteElement("a")
	d2.WriteElement("bc")

	require.NotEqual(t, d1.Sum64(), d2.Sum64())

	d3 := NewDigest()
	d3.WriteElement("ab")
	d3.WriteElement("c")
	require.Equal(t, d1.Sum64(), d3.Sum64())
}
