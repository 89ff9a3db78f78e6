package core

import "fmt"

// MultilinearExtension is the evaluation-vector representation of a
// multilinear polynomial over the boolean hypercube: Evals[i] is the
// polynomial's value at the point whose bits are the binary digits of i,
// variable 0 in the least-significant bit (lexicographic order).
type MultilinearExtension struct {
	Level int // tower level of the coefficients
	Evals []Element
}

// NewMultilinearExtension wraps an evaluation vector, requiring its length
// to be a power of two.
func NewMultilinearExtension(level int, evals []Element) (*MultilinearExtension, error) {
	n := len(evals)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("tensorpcs/core: multilinear extension needs a power-of-two length, got %d", n)
	}
	return &MultilinearExtension{Level: level, Evals: evals}, nil
}

// NVars returns the number of boolean variables, log2(len(Evals)).
func (m *MultilinearExtension) NVars() int {
	n := 0
	for (1 << n) < len(m.Evals) {
		n++
	}
	return n
}

// MultilinearQuery is the tensor expansion tensor(r) of a query point r, so
// that evaluating a multilinear extension at r is the inner product of
// Evals and Expansion.
type MultilinearQuery struct {
	Point     []Element
	Expansion []Element
}

// NewMultilinearQuery builds tensor(r) for r = point, processing variables
// in order 0..len(point)-1 so that bit i of an expansion index corresponds
// to variable i (least-significant first), matching the evaluation vector
// layout used throughout this package.
func NewMultilinearQuery(point []Element) *MultilinearQuery {
	expansion := []Element{One(levelOf(point))}
	for _, r := range point {
		next := make([]Element, len(expansion)*2)
		oneMinusR := Add(One(r.Level), r)
		for i, e := range expansion {
			next[i] = Mul(e, oneMinusR)
			next[i+len(expansion)] = Mul(e, r)
		}
		expansion = next
	}
	return &MultilinearQuery{Point: point, Expansion: expansion}
}

func levelOf(point []Element) uint8 {
	if len(point) == 0 {
		return 0
	}
	return point[0].Level
}

// Evaluate computes the inner product of m's evaluations with q's tensor
// expansion: the value of the multilinear extension at q.Point.
func (m *MultilinearExtension) Evaluate(q *MultilinearQuery) (Element, error) {
	if len(m.Evals) != len(q.Expansion) {
		return Element{}, fmt.Errorf("tensorpcs/core: evaluate size mismatch: %d evals vs %d expansion terms", len(m.Evals), len(q.Expansion))
	}
	level := uint8(m.Level)
	if len(q.Expansion) > 0 {
		level = q.Expansion[0].Level
	}
	sum := Zero(level)
	for i, e := range m.Evals {
		term := e
		if term.Level != level {
			term = embed(term, level)
		}
		sum = Add(sum, Mul(term, q.Expansion[i]))
	}
	return sum, nil
}

// embed lifts a scalar from a smaller tower level into a larger one by
// zero-extension: F_a embeds into F_b (a <= b) as the subfield of elements
// whose high bits are all zero.
func embed(x Element, level uint8) Element {
	if x.Level == level {
		return x
	}
	return NewElement(level, x.Lo, x.Hi)
}

// EvaluatePartialHigh fixes the last len(q.Point) variables (the
// most-significant ones) at q.Point, returning the resulting multilinear
// extension over the remaining low variables.
func (m *MultilinearExtension) EvaluatePartialHigh(q *MultilinearQuery) (*MultilinearExtension, error) {
	k := len(q.Expansion)
	if len(m.Evals)%k != 0 {
		return nil, fmt.Errorf("tensorpcs/core: partial-high size mismatch: %d evals not divisible by %d", len(m.Evals), k)
	}
	lowLen := len(m.Evals) / k
	level := q.Expansion[0].Level
	result := make([]Element, lowLen)
	for i := 0; i < lowLen; i++ {
		sum := Zero(level)
		for j := 0; j < k; j++ {
			sum = Add(sum, Mul(embed(m.Evals[i+j*lowLen], level), q.Expansion[j]))
		}
		result[i] = sum
	}
	return &MultilinearExtension{Level: int(level), Evals: result}, nil
}

// EvaluatePartialLow is the symmetric operation on the first (least
// significant) variables.
func (m *MultilinearExtension) EvaluatePartialLow(q *MultilinearQuery) (*MultilinearExtension, error) {
	k := len(q.Expansion)
	if len(m.Evals)%k != 0 {
		return nil, fmt.Errorf("tensorpcs/core: partial-low size mismatch: %d evals not divisible by %d", len(m.Evals), k)
	}
	highLen := len(m.Evals) / k
	level := q.Expansion[0].Level
	result := make([]Element, highLen)
	for i := 0; i < highLen; i++ {
		sum := Zero(level)
		for j := 0; j < k; j++ {
			sum = Add(sum, Mul(embed(m.Evals[i*k+j], level), q.Expansion[j]))
		}
		result[i] = sum
	}
	return &MultilinearExtension{Level: int(level), Evals: result}, nil
}
