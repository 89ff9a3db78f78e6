// Package tensorpcs is the public façade over the binary tower field
// Tensor Polynomial Commitment Scheme and batched sum-check verifier
// implemented under internal/tensorpcs. It re-exports the pieces a caller
// needs to commit to multilinear polynomials over binary tower fields,
// prove and verify evaluations, and run the batched sum-check protocol on
// top of those commitments, without reaching into internal packages.
package tensorpcs
