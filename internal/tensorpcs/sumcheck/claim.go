// Package sumcheck implements the batched multilinear sum-check verifier
// (Section 4.6): many claims of differing arity are folded into one
// round-by-round check, newly-arriving claims weighted by increasing
// powers of a single sampled batching challenge (Horner-style, the
// opposite convention from the tensor PCS's own tensor-product mixing —
// see DESIGN.md for why the two are deliberately not unified).
package sumcheck

import (
	"fmt"

	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
)

// CompositionPoly is an arithmetic combination of several multilinear
// polynomials' pointwise values, evaluated once all of its inputs have
// been reduced to scalars. It mirrors the original's
// MultilinearComposite/CompositionPoly split: the sum-check claim names a
// composition, and the prover supplies the final per-multilinear
// evaluations for the verifier to run it on.
type CompositionPoly interface {
	// NVars is the number of multilinear inputs the composition expects.
	NVars() int
	// Degree is the composition's total degree, which bounds the degree
	// of each round's univariate polynomial.
	Degree() int
	// Evaluate computes the composition's value given one scalar per
	// input multilinear (len(vars) must equal NVars()).
	Evaluate(vars []core.Element) (core.Element, error)
}

// IdentityComposition is the trivial single-input composition used when a
// sum-check claim is about one multilinear polynomial directly rather
// than a combination of several.
type IdentityComposition struct{}

func (IdentityComposition) NVars() int  { return 1 }
func (IdentityComposition) Degree() int { return 1 }
func (IdentityComposition) Evaluate(vars []core.Element) (core.Element, error) {
	if len(vars) != 1 {
		return core.Element{}, fmt.Errorf("tensorpcs/sumcheck: identity composition expects 1 input, got %d", len(vars))
	}
	return vars[0], nil
}

// SumcheckClaim is one of the claims a batched sum-check run verifies: the
// assertion that the composition applied to some n-variate multilinear
// polynomials sums to Sum over the boolean hypercube {0,1}^NVars.
type SumcheckClaim struct {
	NVars       int
	Composition CompositionPoly
	Sum         core.Element
}

// RoundProof is one round's univariate polynomial, given as its full
// coefficient vector (constant term first). Sections 4.6's transmission
// optimization of omitting the constant term does not apply in
// characteristic 2 (P(0) XOR P(1) cancels the constant term entirely), so
// this implementation sends every coefficient and checks P(0) XOR P(1)
// against the running sum directly.
type RoundProof struct {
	Coeffs []core.Element
}

// EvaluateUnivariate evaluates a round polynomial given by its
// coefficients (constant term first) at x, via Horner's method.
func EvaluateUnivariate(coeffs []core.Element, x core.Element) core.Element {
	if len(coeffs) == 0 {
		return core.Zero(x.Level)
	}
	result := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = core.Add(core.Mul(result, x), coeffs[i])
	}
	return result
}

// Order controls whether the verifier's sampled challenges are reported
// in the order they were sampled (LowToHigh, variable 0 first) or
// reversed to match a HighToLow-numbered variable convention.
type Order int

const (
	LowToHigh Order = iota
	HighToLow
)
