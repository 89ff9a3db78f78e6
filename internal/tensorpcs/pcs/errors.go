package pcs

import "fmt"

// The error taxonomy below follows Section 6 except for UnalignedMessage,
// which this Basic-variant implementation has no path to raise (see
// DESIGN.md): every tagged failure mode the tensor PCS's constructor,
// commit, prove and verify paths can report, each as its own type so
// callers can distinguish them with errors.As.

type CodeLengthPowerOfTwoRequiredError struct{ Got int }

func (e *CodeLengthPowerOfTwoRequiredError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: code length must be a power of two, got %d", e.Got)
}

type ExtensionDegreePowerOfTwoRequiredError struct{ Got int }

func (e *ExtensionDegreePowerOfTwoRequiredError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: extension degree must be a power of two, got %d", e.Got)
}

type PackingWidthMustDivideNumberOfRowsError struct{ Width, Rows int }

func (e *PackingWidthMustDivideNumberOfRowsError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: packing width %d must divide number of rows %d", e.Width, e.Rows)
}

type PackingWidthMustDivideCodeDimensionError struct{ Width, Dim int }

func (e *PackingWidthMustDivideCodeDimensionError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: packing width %d must divide code dimension %d", e.Width, e.Dim)
}

type IncorrectPolynomialSizeError struct{ Expected int }

func (e *IncorrectPolynomialSizeError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: incorrect polynomial size, expected %d", e.Expected)
}

type EncodeError struct{ Err error }

func (e *EncodeError) Error() string { return fmt.Sprintf("tensorpcs/pcs: encode error: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

type VectorCommitError struct{ Err error }

func (e *VectorCommitError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: vector commit error: %v", e.Err)
}
func (e *VectorCommitError) Unwrap() error { return e.Err }

type NumBatchedMismatchError struct{ Expected, Got int }

func (e *NumBatchedMismatchError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: batched polynomial count mismatch: expected %d, got %d", e.Expected, e.Got)
}

type ParameterError struct{ Reason string }

func (e *ParameterError) Error() string { return fmt.Sprintf("tensorpcs/pcs: parameter error: %s", e.Reason) }

type NumberOfOpeningProofsError struct{ Expected, Got int }

func (e *NumberOfOpeningProofsError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: expected %d opening proofs, got %d", e.Expected, e.Got)
}

type OpenedColumnSizeError struct{ Expected, Got int }

func (e *OpenedColumnSizeError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: expected opened column of size %d, got %d", e.Expected, e.Got)
}

type PartialEvaluationSizeError struct{ Expected, Got int }

func (e *PartialEvaluationSizeError) Error() string {
	return fmt.Sprintf("tensorpcs/pcs: expected partial evaluation of size %d, got %d", e.Expected, e.Got)
}

type IncorrectEvaluationError struct{}

func (e *IncorrectEvaluationError) Error() string {
	return "tensorpcs/pcs: claimed evaluation does not match the partial evaluation t'"
}

type IncorrectPartialEvaluationError struct{}

func (e *IncorrectPartialEvaluationError) Error() string {
	return "tensorpcs/pcs: partial evaluation is inconsistent with the opened columns"
}

