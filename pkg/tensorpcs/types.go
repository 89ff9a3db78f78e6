package tensorpcs

import (
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/codes"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/pcs"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/sumcheck"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/transcript"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/vcs"
)

// Element is a binary tower field value, re-exported for callers that
// build or consume witness data.
type Element = core.Element

// Digest is a 32-byte Grøstl-256 commitment digest.
type Digest = vcs.Digest

// LinearCode is the alphabet-field error-correcting code interface the
// scheme encodes matrix rows through.
type LinearCode = codes.LinearCode

// ReedSolomonCode is the concrete systematic Reed-Solomon code.
type ReedSolomonCode = codes.ReedSolomonCode

// Params configures a TensorPCS instance.
type Params = pcs.Params

// TensorPCS is the tensor polynomial commitment scheme.
type TensorPCS = pcs.TensorPCS

// ProverState is the retained state between Commit and ProveEvaluation.
type ProverState = pcs.ProverState

// Proof is an evaluation proof produced by ProveEvaluation.
type Proof = pcs.Proof

// Challenger is the Fiat-Shamir transcript both prover and verifier drive.
type Challenger = transcript.Challenger

// SumcheckClaim, CompositionPoly and RoundProof are the batched sum-check
// verifier's building blocks.
type SumcheckClaim = sumcheck.SumcheckClaim
type CompositionPoly = sumcheck.CompositionPoly
type RoundProof = sumcheck.RoundProof
type SumcheckOrder = sumcheck.Order

const (
	LowToHigh = sumcheck.LowToHigh
	HighToLow = sumcheck.HighToLow
)

// NewReedSolomonCode, NewTensorPCS, NewChallenger and BatchVerifySumcheck
// forward to their internal implementations so callers never need to
// import internal/tensorpcs directly.
func NewReedSolomonCode(level uint8, dim, length int) (*ReedSolomonCode, error) {
	return codes.NewReedSolomonCode(level, dim, length)
}

func NewTensorPCS(params Params) (*TensorPCS, error) {
	return pcs.New(params)
}

func NewChallenger(label string) *Challenger {
	return transcript.New(label)
}

func BatchVerifySumcheck(claims []SumcheckClaim, roundProofs []RoundProof, finalEvals [][]Element, challenger *Challenger, level uint8, order SumcheckOrder) ([]Element, error) {
	return sumcheck.BatchVerify(claims, roundProofs, finalEvals, challenger, level, order)
}
