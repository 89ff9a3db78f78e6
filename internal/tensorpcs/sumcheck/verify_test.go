package sumcheck

import (
	"testing"

	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/transcript"
)

const testLevel = 7

// foldProve is a minimal honest prover for a single identity-composition
// claim: it folds the evaluation vector one variable at a time (always the
// lowest-index remaining variable), producing the degree-1 round
// polynomial and consuming challenges from ch exactly as BatchVerify's
// single-claim path does, so the two stay in lockstep.
func foldProve(vec []core.Element, ch *transcript.Challenger) ([]RoundProof, core.Element) {
	cur := append([]core.Element(nil), vec...)
	var proofs []RoundProof
	for len(cur) > 1 {
		half := len(cur) / 2
		p0 := core.Zero(testLevel)
		p1 := core.Zero(testLevel)
		for i := 0; i < half; i++ {
			p0 = core.Add(p0, cur[2*i])
			p1 = core.Add(p1, cur[2*i+1])
		}
		rp := RoundProof{Coeffs: []core.Element{p0, core.Add(p1, p0)}}
		proofs = append(proofs, rp)
		ch.ObserveElements(rp.Coeffs)
		r, _ := ch.Sample(testLevel)
		next := make([]core.Element, half)
		for i := 0; i < half; i++ {
			diff := core.Add(cur[2*i+1], cur[2*i])
			next[i] = core.Add(cur[2*i], core.Mul(r, diff))
		}
		cur = next
	}
	return proofs, cur[0]
}

func vectorSum(vec []core.Element) core.Element {
	s := core.Zero(testLevel)
	for _, v := range vec {
		s = core.Add(s, v)
	}
	return s
}

func TestBatchVerifyRoundTripWithTrailingZeroVariateClaim(t *testing.T) {
	seed := uint64(99)
	big := make([]core.Element, 8)
	for i := range big {
		big[i] = randElement3(&seed)
	}
	sumBig := vectorSum(big)

	zeroVal := randElement3(&seed)

	claims := []SumcheckClaim{
		{NVars: 3, Composition: IdentityComposition{}, Sum: sumBig},
		{NVars: 0, Composition: IdentityComposition{}, Sum: zeroVal},
	}

	proveCh := transcript.New("sumcheck-round-trip")
	allSums := []core.Element{sumBig, zeroVal}
	proveCh.ObserveElements(allSums)
	_, _ = proveCh.Sample(testLevel) // beta, consumed in lockstep with BatchVerify

	roundProofs, finalBig := foldProve(big, proveCh)

	verifyCh := transcript.New("sumcheck-round-trip")
	finalEvals := [][]core.Element{{finalBig}, {zeroVal}}
	_, err := BatchVerify(claims, roundProofs, finalEvals, verifyCh, testLevel, LowToHigh)
	if err != nil {
		t.Fatalf("BatchVerify: %v", err)
	}
}

func TestBatchVerifyRejectsOutOfOrderClaims(t *testing.T) {
	claims := []SumcheckClaim{
		{NVars: 2, Composition: IdentityComposition{}, Sum: core.Zero(testLevel)},
		{NVars: 4, Composition: IdentityComposition{}, Sum: core.Zero(testLevel)},
	}
	ch := transcript.New("out-of-order")
	_, err := BatchVerify(claims, nil, nil, ch, testLevel, LowToHigh)
	if err == nil {
		t.Fatalf("expected ClaimsOutOfOrderError for claims not sorted by decreasing NVars")
	}
}

func TestBatchVerifyRejectsWrongSum(t *testing.T) {
	seed := uint64(5)
	vec := make([]core.Element, 4)
	for i := range vec {
		vec[i] = randElement3(&seed)
	}
	claims := []SumcheckClaim{
		{NVars: 2, Composition: IdentityComposition{}, Sum: core.Add(vectorSum(vec), core.One(testLevel))},
	}
	proveCh := transcript.New("wrong-sum")
	proveCh.ObserveElements([]core.Element{vectorSum(vec)})
	_, _ = proveCh.Sample(testLevel)
	roundProofs, final := foldProve(vec, proveCh)

	verifyCh := transcript.New("wrong-sum")
	_, err := BatchVerify(claims, roundProofs, [][]core.Element{{final}}, verifyCh, testLevel, LowToHigh)
	if err == nil {
		t.Fatalf("expected BatchVerify to reject a claim whose sum does not match the round proofs")
	}
}

// foldProveBatch is foldProve generalized to several claims of possibly
// different arity, sorted by decreasing NVars same as BatchVerify expects:
// it mirrors BatchVerify's own join/fold loop exactly (same beta powers,
// same transcript order) so an honest multi-claim proof stays in lockstep
// with the verifier, including claims that join only after the last round
// (NVars == 0).
func foldProveBatch(claims []SumcheckClaim, vecs [][]core.Element, ch *transcript.Challenger) ([]RoundProof, [][]core.Element) {
	N := claims[0].NVars

	allSums := make([]core.Element, len(claims))
	for i, c := range claims {
		allSums[i] = c.Sum
	}
	ch.ObserveElements(allSums)
	beta, _ := ch.Sample(testLevel)
	betaPower := core.One(testLevel)

	var activeCoeffs []core.Element
	var activeCur [][]core.Element
	claimIdx := 0
	join := func(n int) {
		for claimIdx < len(claims) && claims[claimIdx].NVars == n {
			activeCoeffs = append(activeCoeffs, betaPower)
			activeCur = append(activeCur, append([]core.Element(nil), vecs[claimIdx]...))
			betaPower = core.Mul(betaPower, beta)
			claimIdx++
		}
	}

	var roundProofs []RoundProof
	for round := 0; round < N; round++ {
		join(N - round)

		p0, p1 := core.Zero(testLevel), core.Zero(testLevel)
		for i, vec := range activeCur {
			half := len(vec) / 2
			cp0, cp1 := core.Zero(testLevel), core.Zero(testLevel)
			for j := 0; j < half; j++ {
				cp0 = core.Add(cp0, vec[2*j])
				cp1 = core.Add(cp1, vec[2*j+1])
			}
			p0 = core.Add(p0, core.Mul(activeCoeffs[i], cp0))
			p1 = core.Add(p1, core.Mul(activeCoeffs[i], cp1))
		}
		rp := RoundProof{Coeffs: []core.Element{p0, core.Add(p1, p0)}}
		roundProofs = append(roundProofs, rp)

		ch.ObserveElements(rp.Coeffs)
		r, _ := ch.Sample(testLevel)
		for i, vec := range activeCur {
			half := len(vec) / 2
			next := make([]core.Element, half)
			for j := 0; j < half; j++ {
				diff := core.Add(vec[2*j+1], vec[2*j])
				next[j] = core.Add(vec[2*j], core.Mul(r, diff))
			}
			activeCur[i] = next
		}
	}
	join(0)

	finalEvals := make([][]core.Element, len(activeCur))
	for i, vec := range activeCur {
		finalEvals[i] = []core.Element{vec[0]}
	}
	return roundProofs, finalEvals
}

// TestBatchVerifyFoldsTwoCoArityClaims exercises the join loop's core
// feature: several claims sharing the same NVars batched into the same
// rounds, weighted by increasing powers of beta, alongside claims of
// other arities. Mirrors the n_vars = {8, 8, 4, 0} shape from Section 8's
// worked batching scenario.
func TestBatchVerifyFoldsTwoCoArityClaims(t *testing.T) {
	seed := uint64(4242)
	vecA := make([]core.Element, 256)
	vecB := make([]core.Element, 256)
	vecC := make([]core.Element, 16)
	for i := range vecA {
		vecA[i] = randElement3(&seed)
	}
	for i := range vecB {
		vecB[i] = randElement3(&seed)
	}
	for i := range vecC {
		vecC[i] = randElement3(&seed)
	}
	zeroVal := randElement3(&seed)

	claims := []SumcheckClaim{
		{NVars: 8, Composition: IdentityComposition{}, Sum: vectorSum(vecA)},
		{NVars: 8, Composition: IdentityComposition{}, Sum: vectorSum(vecB)},
		{NVars: 4, Composition: IdentityComposition{}, Sum: vectorSum(vecC)},
		{NVars: 0, Composition: IdentityComposition{}, Sum: zeroVal},
	}
	vecs := [][]core.Element{vecA, vecB, vecC, {zeroVal}}

	proveCh := transcript.New("sumcheck-co-arity")
	roundProofs, finalEvals := foldProveBatch(claims, vecs, proveCh)

	verifyCh := transcript.New("sumcheck-co-arity")
	_, err := BatchVerify(claims, roundProofs, finalEvals, verifyCh, testLevel, LowToHigh)
	if err != nil {
		t.Fatalf("BatchVerify: %v", err)
	}
}

func randElement3(seed *uint64) core.Element {
	x := *seed
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*seed = x
	return core.NewElement(testLevel, x, x>>3)
}
