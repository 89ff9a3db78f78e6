package core

import "fmt"

// PackedField is a fixed-width 128-bit SIMD word interpreted as W =
// 128/bitwidth(Level) independent scalars ("lanes") of F_Level, lane 0 in
// the low-order bits. It is the bit-cast counterpart of a []Element slice
// of length W: PackLanes/Lane convert between the two representations
// without loss, and FromUnderlier/ToUnderlier convert to and from the raw
// 128-bit word a SIMD instruction set would operate on directly.
type PackedField struct {
	Level uint8
	Lo    uint64
	Hi    uint64
}

// PackedWidth returns W, the number of F_level lanes that fit in one
// 128-bit packed word.
func PackedWidth(level uint8) int {
	return 128 / Bitwidth(level)
}

// FromUnderlier bit-casts a raw 128-bit word (lo, hi) into a packed word of
// F_level lanes, performing no validation: every bit pattern is a valid
// packed word.
func FromUnderlier(level uint8, lo, hi uint64) PackedField {
	return PackedField{Level: level, Lo: lo, Hi: hi}
}

// ToUnderlier bit-casts p back to its raw 128-bit word.
func (p PackedField) ToUnderlier() (lo, hi uint64) {
	return p.Lo, p.Hi
}

// Broadcast replicates scalar into every lane of a new packed word.
func Broadcast(scalar Element) PackedField {
	if scalar.Level == 7 {
		return PackedField{Level: 7, Lo: scalar.Lo, Hi: scalar.Hi}
	}
	width := Bitwidth(scalar.Level)
	w := PackedWidth(scalar.Level)
	lane := scalar.Lo & mask(width)
	var lo, hi uint64
	for i := 0; i < w; i++ {
		bitPos := i * width
		if bitPos < 64 {
			lo |= lane << uint(bitPos)
		} else {
			hi |= lane << uint(bitPos-64)
		}
	}
	return PackedField{Level: scalar.Level, Lo: lo, Hi: hi}
}

// Lane extracts the i-th scalar lane (0 = least significant) from p.
func (p PackedField) Lane(i int) Element {
	if p.Level == 7 {
		if i != 0 {
			panic(fmt.Sprintf("tensorpcs/core: lane index %d out of range for level 7", i))
		}
		return Element{Level: 7, Lo: p.Lo, Hi: p.Hi}
	}
	w := PackedWidth(p.Level)
	if i < 0 || i >= w {
		panic(fmt.Sprintf("tensorpcs/core: lane index %d out of range [0,%d)", i, w))
	}
	width := Bitwidth(p.Level)
	bitPos := i * width
	if bitPos < 64 {
		return Element{Level: p.Level, Lo: (p.Lo >> uint(bitPos)) & mask(width)}
	}
	return Element{Level: p.Level, Lo: (p.Hi >> uint(bitPos-64)) & mask(width)}
}

// PackLanes is the inverse of Lane applied to a whole packed word: it packs
// exactly PackedWidth(level) scalars of F_level, lane 0 first, into one
// packed word.
func PackLanes(level uint8, lanes []Element) (PackedField, error) {
	w := PackedWidth(level)
	if len(lanes) != w {
		return PackedField{}, fmt.Errorf("tensorpcs/core: PackLanes requires exactly %d lanes at level %d, got %d", w, level, len(lanes))
	}
	if level == 7 {
		return PackedField{Level: 7, Lo: lanes[0].Lo, Hi: lanes[0].Hi}, nil
	}
	width := Bitwidth(level)
	var lo, hi uint64
	for i, e := range lanes {
		if e.Level != level {
			return PackedField{}, fmt.Errorf("tensorpcs/core: PackLanes expected level %d lane, got %d", level, e.Level)
		}
		v := e.Lo & mask(width)
		bitPos := i * width
		if bitPos < 64 {
			lo |= v << uint(bitPos)
		} else {
			hi |= v << uint(bitPos-64)
		}
	}
	return PackedField{Level: level, Lo: lo, Hi: hi}, nil
}

// getBlock reads a block of `length` bits (length <= 64) starting at bit
// offset `start` out of the 128-bit value (lo, hi). It is only ever called
// with blocks that do not straddle the lo/hi boundary, which holds
// whenever length divides 64, guaranteed by Interleave's caller.
func getBlock(lo, hi uint64, start, length int) uint64 {
	if start < 64 {
		return (lo >> uint(start)) & mask(length)
	}
	return (hi >> uint(start-64)) & mask(length)
}

// writeBlock writes a `length`-bit value into a 256-bit buffer (four
// 64-bit words) starting at bit offset `pos`, advancing pos by length.
// Like getBlock, it relies on length dividing 64 so no write straddles a
// word boundary.
func writeBlock(words *[4]uint64, pos *int, value uint64, length int) {
	wordIdx := *pos / 64
	bitIdx := *pos % 64
	words[wordIdx] |= (value & mask(length)) << uint(bitIdx)
	*pos += length
}

// Interleave shuffles the lanes of a and b by a power-of-two block width:
// each word is split into blocks of 2^logBlockLen consecutive lanes; the
// first result takes the even-numbered blocks (a's block 0, b's block 0,
// a's block 2, b's block 2, ...) and the second result the odd-numbered
// ones (a's block 1, b's block 1, a's block 3, ...). Applying it twice
// with the same block length returns the original pair. A block as wide
// as the whole word returns a and b unchanged. The scalar Mul in tower.go
// does not use it.
func Interleave(a, b PackedField, logBlockLen int) (PackedField, PackedField) {
	if a.Level != b.Level {
		panic(fmt.Sprintf("tensorpcs/core: interleave operands at different levels: %d vs %d", a.Level, b.Level))
	}
	level := a.Level
	w := PackedWidth(level)
	blockLen := 1 << uint(logBlockLen)
	if blockLen > w {
		panic(fmt.Sprintf("tensorpcs/core: interleave block length %d exceeds packed width %d", blockLen, w))
	}
	bits := Bitwidth(level)
	blockBits := blockLen * bits
	if blockBits >= 128 {
		return PackedField{Level: level, Lo: a.Lo, Hi: a.Hi}, PackedField{Level: level, Lo: b.Lo, Hi: b.Hi}
	}

	n := w / blockLen
	var words [4]uint64
	pos, pos2 := 0, 128
	for i := 0; i < n; i += 2 {
		writeBlock(&words, &pos, getBlock(a.Lo, a.Hi, i*blockBits, blockBits), blockBits)
		writeBlock(&words, &pos, getBlock(b.Lo, b.Hi, i*blockBits, blockBits), blockBits)
		writeBlock(&words, &pos2, getBlock(a.Lo, a.Hi, (i+1)*blockBits, blockBits), blockBits)
		writeBlock(&words, &pos2, getBlock(b.Lo, b.Hi, (i+1)*blockBits, blockBits), blockBits)
	}
	return PackedField{Level: level, Lo: words[0], Hi: words[1]}, PackedField{Level: level, Lo: words[2], Hi: words[3]}
}
