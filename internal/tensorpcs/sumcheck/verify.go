package sumcheck

import (
	"fmt"

	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/transcript"
)

// BatchVerify runs the batched sum-check verifier described in Section
// 4.6. claims must be sorted by strictly non-increasing NVars (claims
// sharing an arity may appear in any relative order); roundProofs must
// have exactly claims[0].NVars entries; finalEvals[i] is the prover's
// claimed evaluation vector for the i-th claim in join order (claims with
// more variables join earlier, so this is claims sorted by NVars
// descending, tie-broken by input order, including any zero-variate
// claims which join only after the last round). On success it returns the
// sampled challenge point, ordered per order.
func BatchVerify(claims []SumcheckClaim, roundProofs []RoundProof, finalEvals [][]core.Element, challenger *transcript.Challenger, level uint8, order Order) ([]core.Element, error) {
	for i := 1; i < len(claims); i++ {
		if claims[i].NVars > claims[i-1].NVars {
			return nil, &ClaimsOutOfOrderError{}
		}
	}
	if len(claims) == 0 {
		return nil, nil
	}
	N := claims[0].NVars
	if len(roundProofs) != N {
		return nil, fmt.Errorf("tensorpcs/sumcheck: expected %d round proofs, got %d", N, len(roundProofs))
	}

	allSums := make([]core.Element, len(claims))
	for i, c := range claims {
		allSums[i] = c.Sum
	}
	challenger.ObserveElements(allSums)
	beta, err := challenger.Sample(level)
	if err != nil {
		return nil, err
	}
	betaPower := core.One(level)

	var active []SumcheckClaim
	var activeCoeffs []core.Element
	claimIdx := 0
	currentSum := core.Zero(level)
	challenges := make([]core.Element, 0, N)

	join := func(n int) {
		for claimIdx < len(claims) && claims[claimIdx].NVars == n {
			coeff := betaPower
			betaPower = core.Mul(betaPower, beta)
			activeCoeffs = append(activeCoeffs, coeff)
			currentSum = core.Add(currentSum, core.Mul(coeff, claims[claimIdx].Sum))
			active = append(active, claims[claimIdx])
			claimIdx++
		}
	}

	for round := 0; round < N; round++ {
		n := N - round
		join(n)

		rp := roundProofs[round]
		p0 := EvaluateUnivariate(rp.Coeffs, core.Zero(level))
		p1 := EvaluateUnivariate(rp.Coeffs, core.One(level))
		if !core.Add(p0, p1).Equal(currentSum) {
			return nil, &IncorrectBatchEvaluationError{}
		}

		challenger.ObserveElements(rp.Coeffs)
		r, err := challenger.Sample(level)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, r)
		currentSum = EvaluateUnivariate(rp.Coeffs, r)
	}
	join(0)

	if len(finalEvals) != len(active) {
		return nil, &FinalEvalCountMismatchError{Expected: len(active), Got: len(finalEvals)}
	}
	expected := core.Zero(level)
	for i, claim := range active {
		v, err := claim.Composition.Evaluate(finalEvals[i])
		if err != nil {
			return nil, err
		}
		expected = core.Add(expected, core.Mul(activeCoeffs[i], v))
	}
	if !expected.Equal(currentSum) {
		return nil, &IncorrectBatchEvaluationError{}
	}

	if order == HighToLow {
		for i, j := 0, len(challenges)-1; i < j; i, j = i+1, j-1 {
			challenges[i], challenges[j] = challenges[j], challenges[i]
		}
	}
	return challenges, nil
}
