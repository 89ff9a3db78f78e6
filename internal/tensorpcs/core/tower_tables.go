package core

// alphaConst[k] holds alpha_k, the designated element of F_k used to build
// F_{k+1} as F_k[X]/(X^2+X+alpha_k). It is found at init time by searching
// for the smallest nonzero candidate with trace 1 over GF(2), which is
// exactly the condition for X^2+X+alpha_k to be irreducible.
var alphaConst [MaxLevel]Element

// byteMulTable, squareByteTableData, invertByteTableData and
// mulAlphaByteTableData are the level-3 (byte) lookup tables described in
// Section 4.1, all derived at init time from mulRecursive so that the
// fast path and the generic recursive definition can never disagree.
var (
	byteMulTable          [256][256]Element
	squareByteTableData   [256]Element
	invertByteTableData   [256]Element
	mulAlphaByteTableData [256]Element

	towerGen             byte // a generator of F_3^*, order 255
	towerLog             [256]int
	towerExp             [256]Element
	aesExp               [256]byte
	aesLog               [256]int
	towerToAESTableData   [256]byte
	aesToTowerTableData   [256]byte
)

func init() {
	buildAlphaConsts()
	buildByteTables()
	buildDiscreteLogTables()
	buildAESIsomorphism()
}

// trace computes Tr_{F_level/GF(2)}(x) = sum_{i=0}^{2^level - 1} x^(2^i),
// which is 1 iff X^2+X+x is irreducible over F_level.
func trace(level uint8, x Element) Element {
	sum := Zero(level)
	cur := x
	n := 1 << level
	for i := 0; i < n; i++ {
		sum = Add(sum, cur)
		cur = mulRecursive(cur, cur)
	}
	return sum
}

func buildAlphaConsts() {
	alphaConst[0] = One(0)
	for k := uint8(1); k <= MaxLevel; k++ {
		level := k - 1
		found := false
		// a0 + a1*X in F_level has the same trace as a1 in F_{level-1},
		// so the smallest trace-1 element is alpha_{level-1}*X and the
		// search starts there.
		start := uint64(1)
		if level > 0 {
			start = alphaConst[level-1].Lo << uint(Bitwidth(level)/2)
		}
		for v := start; v < start+1<<20; v++ {
			cand := NewElement(level, v, 0)
			if cand.IsZero() {
				continue
			}
			if trace(level, cand).IsOne() {
				alphaConst[level] = cand
				found = true
				break
			}
		}
		if !found {
			panic("tensorpcs/core: could not find irreducible alpha constant")
		}
	}
}

func buildByteTables() {
	for a := 0; a < 256; a++ {
		ea := NewElement(3, uint64(a), 0)
		squareByteTableData[a] = mulRecursive(ea, ea)
		mulAlphaByteTableData[a] = mulRecursive(ea, alphaConst[3])
		for b := 0; b < 256; b++ {
			eb := NewElement(3, uint64(b), 0)
			byteMulTable[a][b] = mulRecursive(ea, eb)
		}
	}
	for a := 0; a < 256; a++ {
		invertByteTableData[a] = invertOrZeroGeneric(NewElement(3, uint64(a), 0))
	}
}

// invertOrZeroGeneric mirrors InvertOrZero's recursive structure but never
// calls into the byte table, so it is safe to use while that table is
// still being built.
func invertOrZeroGeneric(x Element) Element {
	if x.IsZero() {
		return Zero(x.Level)
	}
	if x.Level == 0 {
		return x
	}
	k := x.Level
	alpha := alphaConst[k-1]
	a0, a1 := halves(x)
	delta := Add(Add(mulRecursive(a0, a0), mulRecursive(a0, a1)), mulRecursive(mulRecursive(a1, a1), alpha))
	deltaInv := invertOrZeroGeneric(delta)
	r0 := Add(a0, a1)
	r1 := a1
	return combine(k, mulRecursive(r0, deltaInv), mulRecursive(r1, deltaInv))
}

func mulByteTable(a, b byte) Element    { return byteMulTable[a][b] }
func squareByteTable(a byte) Element    { return squareByteTableData[a] }
func invertByteTable(a byte) Element    { return invertByteTableData[a] }
func mulAlphaByteTable(a byte) Element  { return mulAlphaByteTableData[a] }

// order255 checks whether candidate has multiplicative order exactly 255
// in F_3^*, i.e. it is a primitive element.
func order255(level uint8, candidate Element, mulFn func(a, b Element) Element) bool {
	one := One(level)
	for _, p := range []int{3, 5, 17} {
		e := 255 / p
		v := candidate
		result := one
		for i := 0; i < e; i++ {
			result = mulFn(result, candidate)
		}
		_ = v
		if result.Equal(one) {
			return false
		}
	}
	return true
}

func buildDiscreteLogTables() {
	for g := 2; g < 256; g++ {
		cand := NewElement(3, uint64(g), 0)
		if order255(3, cand, func(a, b Element) Element { return mulByteTable(byte(a.Lo), byte(b.Lo)) }) {
			towerGen = byte(g)
			break
		}
	}
	cur := One(3)
	for i := 0; i < 255; i++ {
		towerExp[i] = cur
		towerLog[byte(cur.Lo)] = i
		cur = mulByteTable(byte(cur.Lo), towerGen)
	}
	towerLog[0] = -1
}

// aesMul multiplies two bytes as elements of the AES polynomial-basis
// field GF(2)[x]/(x^8+x^4+x^3+x+1), used only to build the tower<->AES
// isomorphism tables.
func aesMul(a, b byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			result ^= a
		}
		hiBit := a & 0x80
		a <<= 1
		if hiBit != 0 {
			a ^= 0x1B
		}
		b >>= 1
	}
	return result
}

func buildAESIsomorphism() {
	const aesGen = 0x03
	cur := byte(1)
	for i := 0; i < 255; i++ {
		aesExp[i] = cur
		aesLog[cur] = i
		cur = aesMul(cur, aesGen)
	}
	aesLog[0] = -1

	towerToAESTableData[0] = 0
	aesToTowerTableData[0] = 0
	for v := 1; v < 256; v++ {
		l := towerLog[v]
		towerToAESTableData[v] = aesExp[l]
	}
	for v := 1; v < 256; v++ {
		l := aesLog[v]
		aesToTowerTableData[v] = byte(towerExp[l].Lo)
	}
}

// ToAES maps a level-3 tower element into the AES polynomial-basis field
// GF(2)[x]/(x^8+x^4+x^3+x+1), preserving multiplicative structure (it
// sends the tower generator's k-th power to the AES generator's k-th
// power, and 0 to 0).
func ToAES(x Element) (byte, error) {
	if x.Level != 3 {
		return 0, errLevelThree("ToAES", x.Level)
	}
	return towerToAESTableData[byte(x.Lo)], nil
}

// FromAES is the inverse of ToAES.
func FromAES(b byte) Element {
	return NewElement(3, uint64(aesToTowerTableData[b]), 0)
}

// Generator returns a generator of F_3's multiplicative group (order 255).
func Generator() Element {
	return NewElement(3, uint64(towerGen), 0)
}
