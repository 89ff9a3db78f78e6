package codes

import (
	"fmt"

	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
)

// ReedSolomonCode is a systematic Reed-Solomon code over a binary tower
// field: a message of Dim() scalars is read as the evaluations of a
// degree-<Dim() polynomial at the first Dim() points of a fixed
// evaluation domain, and the codeword extends that polynomial's
// evaluations to the remaining Len()-Dim() domain points. Because the
// first Dim() domain points are exactly the message's own evaluation
// points, the code is systematic by construction: the first Dim() entries
// of every codeword equal the input message verbatim.
//
// This mirrors the Lagrange-interpolation approach of the teacher's own
// reed_solomon.go, generalized from a prime
// field to a binary tower field and rebuilt as a systematic code per
// Section 4.2.
type ReedSolomonCode struct {
	level   uint8
	dim     int
	length  int
	dimBits int
	domain  []core.Element // length Len(); domain[:Dim()] are the message points
}

// NewReedSolomonCode builds a systematic Reed-Solomon code with the given
// message dimension and codeword length over F_level, using the first
// `length` elements of F_level (in ascending underlier order, skipping
// none) as the evaluation domain. dim must be a power of two and length
// must not exceed the size of F_level.
func NewReedSolomonCode(level uint8, dim, length int) (*ReedSolomonCode, error) {
	if dim <= 0 || dim&(dim-1) != 0 {
		return nil, fmt.Errorf("tensorpcs/codes: dimension must be a power of two, got %d", dim)
	}
	if length < dim {
		return nil, fmt.Errorf("tensorpcs/codes: length %d smaller than dimension %d", length, dim)
	}
	if width := core.Bitwidth(level); width < 63 {
		fieldSize := uint64(1) << uint(width)
		if uint64(length) > fieldSize {
			return nil, fmt.Errorf("tensorpcs/codes: length %d exceeds field size %d at level %d", length, fieldSize, level)
		}
	}
	domain := make([]core.Element, length)
	for i := 0; i < length; i++ {
		domain[i] = core.NewElement(level, uint64(i), 0)
	}
	dimBits := 0
	for (1 << dimBits) < dim {
		dimBits++
	}
	return &ReedSolomonCode{level: level, dim: dim, length: length, dimBits: dimBits, domain: domain}, nil
}

func (c *ReedSolomonCode) Dim() int     { return c.dim }
func (c *ReedSolomonCode) Len() int     { return c.length }
func (c *ReedSolomonCode) DimBits() int { return c.dimBits }
func (c *ReedSolomonCode) Level() uint8 { return c.level }

// MinDist is the Singleton bound, which Reed-Solomon codes meet exactly.
func (c *ReedSolomonCode) MinDist() int {
	return c.length - c.dim + 1
}

// lagrangeExtend interpolates the polynomial defined by (domain[:dim],
// values) and evaluates it at domain[dim:], appending those evaluations
// after a copy of values.
func (c *ReedSolomonCode) lagrangeExtend(values []core.Element) []core.Element {
	out := make([]core.Element, c.length)
	copy(out, values)
	msgPoints := c.domain[:c.dim]
	for i := c.dim; i < c.length; i++ {
		x := c.domain[i]
		out[i] = lagrangeEval(msgPoints, values, x)
	}
	return out
}

// lagrangeEval evaluates the unique polynomial of degree < len(xs) through
// (xs[i], ys[i]) at point x, via the standard Lagrange formula adapted to
// binary field arithmetic (subtraction is XOR, i.e. Add).
func lagrangeEval(xs, ys []core.Element, x core.Element) core.Element {
	level := x.Level
	sum := core.Zero(level)
	for i := range xs {
		term := ys[i]
		for j := range xs {
			if i == j {
				continue
			}
			num := core.Add(x, xs[j])
			den := core.Add(xs[i], xs[j])
			term = core.Mul(term, core.Mul(num, core.InvertOrZero(den)))
		}
		sum = core.Add(sum, term)
	}
	return sum
}

// EncodeBatchInplace encodes 2^logBatch messages of Dim() scalars each,
// concatenated in buf, into 2^logBatch codewords of Len() scalars each.
func (c *ReedSolomonCode) EncodeBatchInplace(buf []core.Element, logBatch int) ([]core.Element, error) {
	batch := 1 << logBatch
	if len(buf) != batch*c.dim {
		return nil, fmt.Errorf("tensorpcs/codes: expected %d scalars (%d messages of dim %d), got %d", batch*c.dim, batch, c.dim, len(buf))
	}
	out := make([]core.Element, 0, batch*c.length)
	for m := 0; m < batch; m++ {
		msg := buf[m*c.dim : (m+1)*c.dim]
		out = append(out, c.lagrangeExtend(msg)...)
	}
	return out, nil
}
