// Package hash computes xxHash64 fingerprints of container contents and encoded cells.
package hash

import "github.com/cespare/xxhash/v2"

// Bytes returns the xxHash64 of data.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String returns the xxHash64 of s.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Digest accumulates a fingerprint over a sequence of element text forms.
// Each element is followed by a zero byte so that ["ab","c"] and ["a","bc"] differ.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates an empty Digest.
func NewDigest() Digest {
	return Digest{d: xxhash.New()}
}

// WriteElement adds one element to the fingerprint.
func (d Digest) WriteElement(s string) {
	_, _ = d.d.WriteString(s)
	_, _ = d.d.Write([]byte{0})
}

// Sum64 returns the fingerprint of all elements written so far.
func (d Digest) Sum64() uint64 {
	return d.d.Sum64()
}
