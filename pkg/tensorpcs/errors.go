package tensorpcs

import (
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/pcs"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/sumcheck"
)

// Error types re-exported so callers can use errors.As without importing
// internal/tensorpcs/pcs or internal/tensorpcs/sumcheck directly.
type (
	CodeLengthPowerOfTwoRequiredError        = pcs.CodeLengthPowerOfTwoRequiredError
	ExtensionDegreePowerOfTwoRequiredError    = pcs.ExtensionDegreePowerOfTwoRequiredError
	PackingWidthMustDivideNumberOfRowsError   = pcs.PackingWidthMustDivideNumberOfRowsError
	PackingWidthMustDivideCodeDimensionError = pcs.PackingWidthMustDivideCodeDimensionError
	IncorrectPolynomialSizeError             = pcs.IncorrectPolynomialSizeError
	EncodeError                              = pcs.EncodeError
	VectorCommitError                        = pcs.VectorCommitError
	NumBatchedMismatchError                  = pcs.NumBatchedMismatchError
	ParameterError                           = pcs.ParameterError
	NumberOfOpeningProofsError               = pcs.NumberOfOpeningProofsError
	OpenedColumnSizeError                    = pcs.OpenedColumnSizeError
	PartialEvaluationSizeError               = pcs.PartialEvaluationSizeError
	IncorrectEvaluationError                 = pcs.IncorrectEvaluationError
	IncorrectPartialEvaluationError          = pcs.IncorrectPartialEvaluationError
	ClaimsOutOfOrderError                    = sumcheck.ClaimsOutOfOrderError
	IncorrectBatchEvaluationError            = sumcheck.IncorrectBatchEvaluationError
	FinalEvalCountMismatchError              = sumcheck.FinalEvalCountMismatchError
)
