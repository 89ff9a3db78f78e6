package core

// Bytes serializes e into its minimal little-endian byte representation:
// ceil(2^level / 8) bytes, e.g. a single byte at level 3 and sixteen bytes
// at level 7. This is the wire/hash-input encoding used throughout the
// commitment and transcript layers.
func (e Element) Bytes() []byte {
	width := Bitwidth(e.Level)
	n := (width + 7) / 8
	buf := make([]byte, n)
	for i := 0; i < n && i < 8; i++ {
		buf[i] = byte(e.Lo >> uint(8*i))
	}
	for i := 8; i < n; i++ {
		buf[i] = byte(e.Hi >> uint(8*(i-8)))
	}
	return buf
}

// ElementFromBytes is the inverse of Bytes for a given tower level.
func ElementFromBytes(level uint8, b []byte) Element {
	var lo, hi uint64
	for i := 0; i < len(b) && i < 8; i++ {
		lo |= uint64(b[i]) << uint(8*i)
	}
	for i := 8; i < len(b); i++ {
		hi |= uint64(b[i]) << uint(8*(i-8))
	}
	return NewElement(level, lo, hi)
}
