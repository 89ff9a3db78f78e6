package core

// Grøstl-256 permutation and compression, used as the mandated hash for
// vector commitment digests and Merkle tree nodes (Section 4.3/6): its
// internals are AES-based and stay cheap to arithmetize in the field this
// module already works in, which is the whole reason the construction
// picks it over a generic hash.
//
// This implements the P permutation over an 8x8 byte state (512 bits),
// the compress(left, right) -> 32 bytes primitive built from it exactly as
// used for Merkle tree nodes, and a Merkle-Damgard style streaming Hash
// built by chaining that compression function.

const groestlRounds = 10

var groestlShiftsP = [8]int{0, 1, 2, 3, 4, 5, 6, 7}

// sBox is the AES S-box, reused by Grøstl's SubBytes step.
var sBox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

func xtime(b byte) byte {
	if b&0x80 != 0 {
		return (b << 1) ^ 0x1B
	}
	return b << 1
}

// mixBytesColumn applies the Grøstl/AES-style MDS matrix (2,2,3,4,5,3,5,7)
// to one column of the state.
func mixBytesColumn(col [8]byte) [8]byte {
	coeffs := [8]byte{2, 2, 3, 4, 5, 3, 5, 7}
	var out [8]byte
	for i := 0; i < 8; i++ {
		var acc byte
		for j := 0; j < 8; j++ {
			c := coeffs[(j-i+8)%8]
			acc ^= gMul(c, col[j])
		}
		out[i] = acc
	}
	return out
}

func gMul(a, b byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			result ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return result
}

// permuteP runs the Grøstl P permutation on a 64-byte state laid out as
// an 8x8 column-major byte matrix.
func permuteP(state *[64]byte) {
	var m [8][8]byte
	for c := 0; c < 8; c++ {
		for r := 0; r < 8; r++ {
			m[r][c] = state[c*8+r]
		}
	}
	for round := 0; round < groestlRounds; round++ {
		// AddRoundConstant: XOR round index into the top row.
		for c := 0; c < 8; c++ {
			m[0][c] ^= byte(c<<4) ^ byte(round)
		}
		// SubBytes.
		for r := 0; r < 8; r++ {
			for c := 0; c < 8; c++ {
				m[r][c] = sBox[m[r][c]]
			}
		}
		// ShiftBytes (P variant): row r shifted left by groestlShiftsP[r].
		for r := 0; r < 8; r++ {
			s := groestlShiftsP[r]
			var row [8]byte
			for c := 0; c < 8; c++ {
				row[c] = m[r][(c+s)%8]
			}
			m[r] = row
		}
		// MixBytes.
		for c := 0; c < 8; c++ {
			var col [8]byte
			for r := 0; r < 8; r++ {
				col[r] = m[r][c]
			}
			col = mixBytesColumn(col)
			for r := 0; r < 8; r++ {
				m[r][c] = col[r]
			}
		}
	}
	for c := 0; c < 8; c++ {
		for r := 0; r < 8; r++ {
			state[c*8+r] = m[r][c]
		}
	}
}

// Compress implements the Merkle tree node primitive: P(left||right) XOR
// (left||right), truncated to the last 32 bytes.
func Compress(left, right [32]byte) [32]byte {
	var state [64]byte
	copy(state[:32], left[:])
	copy(state[32:], right[:])
	orig := state
	permuteP(&state)
	for i := range state {
		state[i] ^= orig[i]
	}
	var out [32]byte
	copy(out[:], state[32:])
	return out
}

// Hash computes a streaming 32-byte digest of data by chaining Compress
// over 32-byte message blocks after length padding, Merkle-Damgard style.
func Hash(data []byte) [32]byte {
	padded := append([]byte(nil), data...)
	padded = append(padded, 0x80)
	for len(padded)%32 != 24 {
		padded = append(padded, 0)
	}
	bitLen := uint64(len(data)) * 8
	for i := 0; i < 8; i++ {
		padded = append(padded, byte(bitLen>>(56-8*i)))
	}

	var state [32]byte
	for off := 0; off < len(padded); off += 32 {
		var block [32]byte
		copy(block[:], padded[off:off+32])
		state = Compress(state, block)
	}
	return state
}
