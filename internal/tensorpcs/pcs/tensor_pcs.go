// Package pcs implements the Diamond-Posen tensor polynomial commitment
// scheme over binary tower fields (Section 4.4): commit packs a
// multilinear polynomial's evaluations into a matrix, encodes each row
// with a linear code, and commits to the encoded matrix's columns with a
// Merkle vector commitment; ProveEvaluation and VerifyEvaluation run the
// tensor-product-mixed batch opening protocol on top of that commitment.
package pcs

import (
	"fmt"

	"github.com/diamondtower/tensorpcs/internal/tensorpcs/codes"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/transcript"
	"github.com/diamondtower/tensorpcs/internal/tensorpcs/vcs"
)

// Params fixes the field levels and code the scheme runs over. This
// implementation specializes the general four-field (F, FA, FI, FE)
// construction to F == FA (the witness field doubles as the code's
// alphabet field, matching Binius's "Basic" tensor PCS type alias) while
// keeping FE fully general; see DESIGN.md for why.
type Params struct {
	LevelF       uint8 // witness / alphabet field
	LevelFE      uint8 // challenge / extension field, must be >= LevelF
	LogRows      int
	Code         codes.LinearCode // must operate over LevelF
	NTestQueries int
}

func packingWidth(level uint8) int {
	return 128 / core.Bitwidth(level)
}

// Validate checks the parameter combination against Section 6's tagged
// error taxonomy.
func (p Params) Validate() error {
	n := p.Code.Len()
	if n == 0 || n&(n-1) != 0 {
		return &CodeLengthPowerOfTwoRequiredError{Got: n}
	}
	if p.LevelFE < p.LevelF {
		return &ExtensionDegreePowerOfTwoRequiredError{Got: int(p.LevelFE) - int(p.LevelF)}
	}
	if p.Code.Level() != p.LevelF {
		return &ParameterError{Reason: "code alphabet level must equal LevelF in this Basic-variant implementation"}
	}
	nRows := 1 << p.LogRows
	wF := packingWidth(p.LevelF)
	if nRows%wF != 0 {
		return &PackingWidthMustDivideNumberOfRowsError{Width: wF, Rows: nRows}
	}
	if p.Code.Dim()%wF != 0 {
		return &PackingWidthMustDivideCodeDimensionError{Width: wF, Dim: p.Code.Dim()}
	}
	if p.NTestQueries <= 0 {
		return &ParameterError{Reason: "n_test_queries must be positive"}
	}
	return nil
}

// TensorPCS is the commitment scheme itself, once its parameters have been
// validated.
type TensorPCS struct {
	params Params
}

// New validates params and returns a ready-to-use scheme.
func New(params Params) (*TensorPCS, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &TensorPCS{params: params}, nil
}

func (t *TensorPCS) nVars() int {
	return t.params.LogRows + t.params.Code.DimBits()
}

// ProverState is the retained data a prover needs between Commit and
// ProveEvaluation: the raw and encoded matrices and the Merkle tree state.
type ProverState struct {
	polys     [][]core.Element
	encoded   [][]core.Element // encoded[p] is nRows*codeLen scalars, row-major
	nRows     int
	codeLen   int
	dim       int
	treeState *vcs.CommittedState
}

func columnOf(rowMajor []core.Element, nRows, codeLen, col int) []core.Element {
	out := make([]core.Element, nRows)
	for r := 0; r < nRows; r++ {
		out[r] = rowMajor[r*codeLen+col]
	}
	return out
}

func hashColumn(col []core.Element) vcs.Digest {
	buf := make([]byte, 0, len(col)*2)
	for _, e := range col {
		buf = append(buf, e.Bytes()...)
	}
	return core.Hash(buf)
}

// Commit commits to a batch of multilinear polynomials, all sharing the
// same number of variables (t.nVars()), returning the Merkle root and the
// prover-side state needed to later open evaluations.
func (t *TensorPCS) Commit(polys [][]core.Element) (vcs.Digest, *ProverState, error) {
	if len(polys) == 0 {
		return vcs.Digest{}, nil, fmt.Errorf("tensorpcs/pcs: commit requires at least one polynomial")
	}
	dim := t.params.Code.Dim()
	nRows := 1 << t.params.LogRows
	expected := dim * nRows
	codeLen := t.params.Code.Len()

	encoded := make([][]core.Element, len(polys))
	columnDigests := make([][]vcs.Digest, len(polys))
	for p, poly := range polys {
		if len(poly) != expected {
			return vcs.Digest{}, nil, &IncorrectPolynomialSizeError{Expected: expected}
		}
		enc, err := t.params.Code.EncodeBatchInplace(poly, t.params.LogRows)
		if err != nil {
			return vcs.Digest{}, nil, &EncodeError{Err: err}
		}
		encoded[p] = enc
		digests := make([]vcs.Digest, codeLen)
		for j := 0; j < codeLen; j++ {
			digests[j] = hashColumn(columnOf(enc, nRows, codeLen, j))
		}
		columnDigests[p] = digests
	}

	root, state, err := vcs.CommitBatch(columnDigests)
	if err != nil {
		return vcs.Digest{}, nil, &VectorCommitError{Err: err}
	}
	return root, &ProverState{polys: polys, encoded: encoded, nRows: nRows, codeLen: codeLen, dim: dim, treeState: state}, nil
}

// QueryOpening is one test query's opened data: the columns (one per
// polynomial) at the challenged index, and the Merkle authentication path
// shared by all of them (they were committed as one combined leaf).
type QueryOpening struct {
	Index   int
	Columns [][]core.Element
	Path    []vcs.Digest
}

// Proof is everything ProveEvaluation outputs besides the claimed
// per-polynomial evaluations, which the caller tracks separately.
type Proof struct {
	NPolys      int
	MixedTPrime []core.Element
	Queries     []QueryOpening
}

func mixingCoeffs(challenger *transcript.Challenger, level uint8, nPolys int) ([]core.Element, error) {
	logN := 0
	for (1 << logN) < nPolys {
		logN++
	}
	if logN == 0 {
		return []core.Element{core.One(level)}, nil
	}
	chals := make([]core.Element, logN)
	for i := range chals {
		c, err := challenger.Sample(level)
		if err != nil {
			return nil, err
		}
		chals[i] = c
	}
	q := core.NewMultilinearQuery(chals)
	return q.Expansion[:nPolys], nil
}

// ProveEvaluation proves that each polynomial committed in state evaluates,
// at the shared point (length t.nVars(), level LevelFE), to the value the
// verifier will separately be told.
func (t *TensorPCS) ProveEvaluation(state *ProverState, point []core.Element, challenger *transcript.Challenger) (*Proof, error) {
	if len(point) != t.nVars() {
		return nil, &PartialEvaluationSizeError{Expected: t.nVars(), Got: len(point)}
	}
	logCols := t.params.Code.DimBits()
	rRow := point[logCols:]
	qRow := core.NewMultilinearQuery(rRow)

	nPolys := len(state.polys)
	tPrimes := make([][]core.Element, nPolys)
	for p, poly := range state.polys {
		mle, err := core.NewMultilinearExtension(int(t.params.LevelF), poly)
		if err != nil {
			return nil, err
		}
		partial, err := mle.EvaluatePartialHigh(qRow)
		if err != nil {
			return nil, err
		}
		tPrimes[p] = partial.Evals
	}

	mixCoeff, err := mixingCoeffs(challenger, t.params.LevelFE, nPolys)
	if err != nil {
		return nil, err
	}
	mixedTPrime := make([]core.Element, state.dim)
	for i := 0; i < state.dim; i++ {
		sum := core.Zero(t.params.LevelFE)
		for p := 0; p < nPolys; p++ {
			term := core.Mul(mixCoeff[p], core.NewElement(t.params.LevelFE, tPrimes[p][i].Lo, tPrimes[p][i].Hi))
			sum = core.Add(sum, term)
		}
		mixedTPrime[i] = sum
	}

	logCodeLen := 0
	for (1 << logCodeLen) < state.codeLen {
		logCodeLen++
	}
	queries := make([]QueryOpening, t.params.NTestQueries)
	for q := 0; q < t.params.NTestQueries; q++ {
		idxBits, err := challenger.SampleBits(logCodeLen)
		if err != nil {
			return nil, err
		}
		idx := int(idxBits) % state.codeLen
		cols := make([][]core.Element, nPolys)
		for p := 0; p < nPolys; p++ {
			cols[p] = columnOf(state.encoded[p], state.nRows, state.codeLen, idx)
		}
		path, err := state.treeState.ProveBatchOpening(idx)
		if err != nil {
			return nil, err
		}
		queries[q] = QueryOpening{Index: idx, Columns: cols, Path: path}
	}

	return &Proof{NPolys: nPolys, MixedTPrime: mixedTPrime, Queries: queries}, nil
}

// EncodeExtension encodes a vector of extension-field (level out) scalars
// through a code defined over a smaller base level, by splitting each
// scalar into its base-level coordinates (a "square transpose"), encoding
// each coordinate stream independently, and repacking the results column
// by column. This is the block-encoding technique Section 9 and
// tensor_pcs.rs's encode_ext use to run a fixed alphabet-field code on
// values from any field it embeds into.
func EncodeExtension(code codes.LinearCode, vec []core.Element) ([]core.Element, error) {
	if len(vec) == 0 {
		return nil, fmt.Errorf("tensorpcs/pcs: cannot encode an empty vector")
	}
	outLevel := vec[0].Level
	baseLevel := code.Level()
	d := int(outLevel) - int(baseLevel)
	if d < 0 {
		return nil, fmt.Errorf("tensorpcs/pcs: encode extension level %d smaller than code alphabet level %d", outLevel, baseLevel)
	}
	factor := 1 << d
	if len(vec) != code.Dim() {
		return nil, &IncorrectPolynomialSizeError{Expected: code.Dim()}
	}

	coordStreams := make([][]core.Element, factor)
	for c := range coordStreams {
		coordStreams[c] = make([]core.Element, len(vec))
	}
	for i, e := range vec {
		bases, err := core.IntoBases(e, d)
		if err != nil {
			return nil, err
		}
		for c, b := range bases {
			coordStreams[c][i] = b
		}
	}

	flat := make([]core.Element, 0, factor*len(vec))
	for c := 0; c < factor; c++ {
		flat = append(flat, coordStreams[c]...)
	}
	logFactor := d
	encodedFlat, err := code.EncodeBatchInplace(flat, logFactor)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	codeLen := code.Len()
	out := make([]core.Element, codeLen)
	for j := 0; j < codeLen; j++ {
		bases := make([]core.Element, factor)
		for c := 0; c < factor; c++ {
			bases[c] = encodedFlat[c*codeLen+j]
		}
		packed, err := core.FromBases(outLevel, bases)
		if err != nil {
			return nil, err
		}
		out[j] = packed
	}
	return out, nil
}

// VerifyEvaluation checks proof against a previously-observed commitment
// root and the prover's claimed per-polynomial evaluations at point.
func (t *TensorPCS) VerifyEvaluation(root vcs.Digest, point []core.Element, claimedEvals []core.Element, proof *Proof, challenger *transcript.Challenger) error {
	if len(point) != t.nVars() {
		return &PartialEvaluationSizeError{Expected: t.nVars(), Got: len(point)}
	}
	dim := t.params.Code.Dim()
	nRows := 1 << t.params.LogRows
	codeLen := t.params.Code.Len()
	nPolys := proof.NPolys
	if len(claimedEvals) != nPolys {
		return &NumBatchedMismatchError{Expected: nPolys, Got: len(claimedEvals)}
	}
	if len(proof.MixedTPrime) != dim {
		return &PartialEvaluationSizeError{Expected: dim, Got: len(proof.MixedTPrime)}
	}
	if len(proof.Queries) != t.params.NTestQueries {
		return &NumberOfOpeningProofsError{Expected: t.params.NTestQueries, Got: len(proof.Queries)}
	}

	logCols := t.params.Code.DimBits()
	rCol, rRow := point[:logCols], point[logCols:]

	mixCoeff, err := mixingCoeffs(challenger, t.params.LevelFE, nPolys)
	if err != nil {
		return err
	}
	mixedY := core.Zero(t.params.LevelFE)
	for p := 0; p < nPolys; p++ {
		mixedY = core.Add(mixedY, core.Mul(mixCoeff[p], core.NewElement(t.params.LevelFE, claimedEvals[p].Lo, claimedEvals[p].Hi)))
	}

	qCol := core.NewMultilinearQuery(rCol)
	tPrimeMLE := &core.MultilinearExtension{Level: int(t.params.LevelFE), Evals: proof.MixedTPrime}
	computedY, err := tPrimeMLE.Evaluate(qCol)
	if err != nil {
		return err
	}
	if !computedY.Equal(mixedY) {
		return &IncorrectEvaluationError{}
	}

	expectedEncodedRow, err := EncodeExtension(t.params.Code, proof.MixedTPrime)
	if err != nil {
		return err
	}

	logCodeLen := 0
	for (1 << logCodeLen) < codeLen {
		logCodeLen++
	}
	qRow := core.NewMultilinearQuery(rRow)

	for qi, q := range proof.Queries {
		idxBits, err := challenger.SampleBits(logCodeLen)
		if err != nil {
			return err
		}
		idx := int(idxBits) % codeLen
		if idx != q.Index {
			return fmt.Errorf("tensorpcs/pcs: query %d index mismatch: transcript says %d, proof says %d", qi, idx, q.Index)
		}
		if len(q.Columns) != nPolys {
			return &NumBatchedMismatchError{Expected: nPolys, Got: len(q.Columns)}
		}
		leafDigests := make([]vcs.Digest, nPolys)
		for p := 0; p < nPolys; p++ {
			if len(q.Columns[p]) != nRows {
				return &OpenedColumnSizeError{Expected: nRows, Got: len(q.Columns[p])}
			}
			leafDigests[p] = hashColumn(q.Columns[p])
		}
		if err := vcs.VerifyBatchOpening(root, q.Index, q.Path, leafDigests); err != nil {
			return &VectorCommitError{Err: err}
		}

		mixedColumn := make([]core.Element, nRows)
		for r := 0; r < nRows; r++ {
			sum := core.Zero(t.params.LevelFE)
			for p := 0; p < nPolys; p++ {
				v := q.Columns[p][r]
				sum = core.Add(sum, core.Mul(mixCoeff[p], core.NewElement(t.params.LevelFE, v.Lo, v.Hi)))
			}
			mixedColumn[r] = sum
		}
		mixedColMLE := &core.MultilinearExtension{Level: int(t.params.LevelFE), Evals: mixedColumn}
		val, err := mixedColMLE.Evaluate(qRow)
		if err != nil {
			return err
		}
		if !val.Equal(expectedEncodedRow[q.Index]) {
			return &IncorrectPartialEvaluationError{}
		}
	}
	return nil
}

// ProofSize estimates the serialized proof size in bytes for nPolys
// batched polynomials under t's parameters.
func (t *TensorPCS) ProofSize(nPolys int) int {
	dim := t.params.Code.Dim()
	scalarBytesFE := (core.Bitwidth(t.params.LevelFE) + 7) / 8
	scalarBytesF := (core.Bitwidth(t.params.LevelF) + 7) / 8
	logCodeLen := 0
	for (1 << logCodeLen) < t.params.Code.Len() {
		logCodeLen++
	}
	tPrime := dim * scalarBytesFE
	perQuery := nPolys*(1<<t.params.LogRows)*scalarBytesF + logCodeLen*32
	return 8 + tPrime + t.params.NTestQueries*perQuery
}
