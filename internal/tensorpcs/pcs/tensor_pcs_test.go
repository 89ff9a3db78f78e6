package pcs

import (
	"testing"

	"github.com/diamondtower/tensorpcs/internal/tensorpcs/codes"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/transcript"
)

func newTestScheme(t *testing.T, nTestQueries int) *TensorPCS {
	t.Helper()
	code, err := codes.NewReedSolomonCode(6, 2, 8)
	if err != nil {
		t.Fatalf("NewReedSolomonCode: %v", err)
	}
	scheme, err := New(Params{
		LevelF:       6,
		LevelFE:      7,
		LogRows:      2,
		Code:         code,
		NTestQueries: nTestQueries,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return scheme
}

func evalPoint(level uint8, vals ...uint64) []core.Element {
	out := make([]core.Element, len(vals))
	for i, v := range vals {
		out[i] = core.NewElement(level, v, 0)
	}
	return out
}

func TestCommitProveVerifyRoundTrip(t *testing.T) {
	scheme := newTestScheme(t, 4)

	poly := make([]core.Element, 8)
	for i := range poly {
		poly[i] = core.NewElement(6, uint64(i*3+1), 0)
	}

	root, state, err := scheme.Commit([][]core.Element{poly})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	point := evalPoint(7, 11, 22, 33)
	mle, err := core.NewMultilinearExtension(6, poly)
	if err != nil {
		t.Fatalf("NewMultilinearExtension: %v", err)
	}
	wantEval, err := mle.Evaluate(core.NewMultilinearQuery(point))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	proveChallenger := transcript.New("round-trip")
	proveChallenger.Observe(root[:])
	proof, err := scheme.ProveEvaluation(state, point, proveChallenger)
	if err != nil {
		t.Fatalf("ProveEvaluation: %v", err)
	}

	verifyChallenger := transcript.New("round-trip")
	verifyChallenger.Observe(root[:])
	if err := scheme.VerifyEvaluation(root, point, []core.Element{wantEval}, proof, verifyChallenger); err != nil {
		t.Fatalf("VerifyEvaluation: %v", err)
	}
}

func TestVerifyRejectsTamperedEvaluation(t *testing.T) {
	scheme := newTestScheme(t, 4)
	poly := make([]core.Element, 8)
	for i := range poly {
		poly[i] = core.NewElement(6, uint64(i+1), 0)
	}
	root, state, err := scheme.Commit([][]core.Element{poly})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	point := evalPoint(7, 1, 2, 3)
	proveChallenger := transcript.New("tamper")
	proveChallenger.Observe(root[:])
	proof, err := scheme.ProveEvaluation(state, point, proveChallenger)
	if err != nil {
		t.Fatalf("ProveEvaluation: %v", err)
	}

	wrongEval := []core.Element{core.NewElement(7, 0xDEAD, 0)}
	verifyChallenger := transcript.New("tamper")
	verifyChallenger.Observe(root[:])
	if err := scheme.VerifyEvaluation(root, point, wrongEval, proof, verifyChallenger); err == nil {
		t.Fatalf("expected VerifyEvaluation to reject a wrong claimed evaluation")
	}
}

func TestVerifyRejectsTamperedColumn(t *testing.T) {
	scheme := newTestScheme(t, 4)
	poly := make([]core.Element, 8)
	for i := range poly {
		poly[i] = core.NewElement(6, uint64(i+1), 0)
	}
	root, state, err := scheme.Commit([][]core.Element{poly})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	point := evalPoint(7, 4, 5, 6)
	mle, _ := core.NewMultilinearExtension(6, poly)
	wantEval, _ := mle.Evaluate(core.NewMultilinearQuery(point))

	proveChallenger := transcript.New("column-tamper")
	proveChallenger.Observe(root[:])
	proof, err := scheme.ProveEvaluation(state, point, proveChallenger)
	if err != nil {
		t.Fatalf("ProveEvaluation: %v", err)
	}
	// Flip a byte in the first opened column of the first query.
	proof.Queries[0].Columns[0][0] = core.Add(proof.Queries[0].Columns[0][0], core.One(6))

	verifyChallenger := transcript.New("column-tamper")
	verifyChallenger.Observe(root[:])
	if err := scheme.VerifyEvaluation(root, point, []core.Element{wantEval}, proof, verifyChallenger); err == nil {
		t.Fatalf("expected VerifyEvaluation to reject a tampered opened column")
	}
}

func TestCommitRejectsWrongPolynomialSize(t *testing.T) {
	scheme := newTestScheme(t, 1)
	if _, _, err := scheme.Commit([][]core.Element{make([]core.Element, 5)}); err == nil {
		t.Fatalf("expected an IncorrectPolynomialSizeError")
	}
}
