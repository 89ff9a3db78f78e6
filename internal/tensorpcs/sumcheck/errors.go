package sumcheck

import "fmt"

// The sum-check verifier's own error taxonomy: failures here are distinct
// from the tensor PCS's (Section 6), per Section 7's note that
// ClaimsOutOfOrder is a caller error reported separately from any
// soundness failure.

// ClaimsOutOfOrderError reports that BatchVerify's claims argument was not
// sorted by strictly non-increasing NVars.
type ClaimsOutOfOrderError struct{}

func (e *ClaimsOutOfOrderError) Error() string {
	return "tensorpcs/sumcheck: claims must be sorted by decreasing number of variables"
}

// IncorrectBatchEvaluationError reports that the batched round polynomial
// or the final composition evaluation did not match the running sum.
type IncorrectBatchEvaluationError struct{}

func (e *IncorrectBatchEvaluationError) Error() string {
	return "tensorpcs/sumcheck: batched composite evaluation does not match the round proofs"
}

// FinalEvalCountMismatchError reports that the prover supplied a different
// number of final per-claim evaluation vectors than the number of claims
// active after the last join, a shape error distinct from the PCS's own
// batched-polynomial-count check.
type FinalEvalCountMismatchError struct{ Expected, Got int }

func (e *FinalEvalCountMismatchError) Error() string {
	return fmt.Sprintf("tensorpcs/sumcheck: expected %d final evaluation vectors, got %d", e.Expected, e.Got)
}
