package core

import "testing"

func TestMultilinearExtensionEvaluateAtCorner(t *testing.T) {
	// f(x0,x1) with evaluations [f(0,0), f(1,0), f(0,1), f(1,1)] = [1,2,3,4]
	// at level 3 (byte field), indices treated as raw small values.
	evals := []Element{
		NewElement(3, 1, 0),
		NewElement(3, 2, 0),
		NewElement(3, 3, 0),
		NewElement(3, 4, 0),
	}
	mle, err := NewMultilinearExtension(3, evals)
	if err != nil {
		t.Fatalf("NewMultilinearExtension: %v", err)
	}
	if mle.NVars() != 2 {
		t.Fatalf("expected 2 vars, got %d", mle.NVars())
	}

	// Evaluating at the corner (0,0) should reproduce evals[0] exactly.
	q := NewMultilinearQuery([]Element{Zero(3), Zero(3)})
	got, err := mle.Evaluate(q)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got.Equal(evals[0]) {
		t.Fatalf("evaluate at (0,0) = %+v, want %+v", got, evals[0])
	}

	q11 := NewMultilinearQuery([]Element{One(3), One(3)})
	got11, err := mle.Evaluate(q11)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got11.Equal(evals[3]) {
		t.Fatalf("evaluate at (1,1) = %+v, want %+v", got11, evals[3])
	}
}

func TestEvaluatePartialHighThenLowMatchesFullEvaluation(t *testing.T) {
	seed := uint64(7)
	n := 8
	evals := make([]Element, n)
	for i := range evals {
		evals[i] = randElement(&seed, 3)
	}
	mle, err := NewMultilinearExtension(3, evals)
	if err != nil {
		t.Fatalf("NewMultilinearExtension: %v", err)
	}
	point := []Element{NewElement(3, 5, 0), NewElement(3, 9, 0), NewElement(3, 200, 0)}

	full, err := mle.Evaluate(NewMultilinearQuery(point))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	partial, err := mle.EvaluatePartialHigh(NewMultilinearQuery(point[1:]))
	if err != nil {
		t.Fatalf("EvaluatePartialHigh: %v", err)
	}
	got, err := partial.Evaluate(NewMultilinearQuery(point[:1]))
	if err != nil {
		t.Fatalf("Evaluate after partial: %v", err)
	}
	if !got.Equal(full) {
		t.Fatalf("partial-high then full eval mismatch: got %+v want %+v", got, full)
	}
}
