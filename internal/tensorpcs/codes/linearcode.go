// Package codes implements the linear error-correcting codes used as the
// alphabet-field encoding step of the tensor polynomial commitment scheme.
package codes

import "github.com/diamondtower/tensorpcs/internal/tensorpcs/core"

// LinearCode is the abstract interface the PCS layer encodes matrix rows
// through: a systematic linear code over some tower field level, with a
// batched in-place encoder so a whole matrix of rows can be expanded in
// one call.
type LinearCode interface {
	// Dim is the message length in scalars.
	Dim() int
	// Len is the codeword length in scalars.
	Len() int
	// MinDist is the code's minimum Hamming distance.
	MinDist() int
	// DimBits is log2(Dim()); the code's dimension must be a power of two.
	DimBits() int
	// Level is the tower level of the code's alphabet field.
	Level() uint8
	// EncodeBatchInplace treats buf as 2^logBatch messages of Dim()
	// scalars each, concatenated, and returns a new buffer holding the
	// 2^logBatch corresponding codewords of Len() scalars each. The first
	// Dim() scalars of each codeword are unchanged from the input
	// (systematic encoding).
	EncodeBatchInplace(buf []core.Element, logBatch int) ([]core.Element, error)
}
