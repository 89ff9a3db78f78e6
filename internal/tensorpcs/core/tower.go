// Package core implements the binary tower field arithmetic backbone:
// the family of fields F_k = GF(2^(2^k)), k = 0..7, built as iterated
// quadratic extensions, plus the multilinear extension and Grøstl-256
// hash that sit on top of it.
package core

import "fmt"

// MaxLevel is the highest supported tower level: F_7 = GF(2^128).
const MaxLevel = 7

// Element is a value of F_k for some k in [0, MaxLevel]. The bit pattern is
// stored exactly as the tower construction lays it out: an element of F_k
// (k >= 1) is the concatenation of two F_{k-1} halves, low half in the
// low-order bits. For k <= 6 the whole value fits in Lo; for k == 7 (128
// bits) Lo holds the low F_6 half and Hi holds the high F_6 half.
type Element struct {
	Level uint8
	Lo    uint64
	Hi    uint64
}

// Bitwidth returns 2^level, the number of bits needed to represent an
// element of F_level.
func Bitwidth(level uint8) int {
	return 1 << level
}

func mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

// NewElement builds an element of F_level from raw bits, masking off any
// bits beyond the field's width.
func NewElement(level uint8, lo, hi uint64) Element {
	if level < 7 {
		return Element{Level: level, Lo: lo & mask(Bitwidth(level))}
	}
	return Element{Level: level, Lo: lo, Hi: hi}
}

// Zero returns the additive identity of F_level.
func Zero(level uint8) Element {
	return Element{Level: level}
}

// One returns the multiplicative identity of F_level.
func One(level uint8) Element {
	return Element{Level: level, Lo: 1}
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.Lo == 0 && e.Hi == 0
}

// IsOne reports whether e is the multiplicative identity.
func (e Element) IsOne() bool {
	return e.Lo == 1 && e.Hi == 0
}

// Equal reports whether e and o represent the same field element.
func (e Element) Equal(o Element) bool {
	return e.Level == o.Level && e.Lo == o.Lo && e.Hi == o.Hi
}

func requireSameLevel(a, b Element) {
	if a.Level != b.Level {
		panic(fmt.Sprintf("tensorpcs/core: operands at different tower levels: %d vs %d", a.Level, b.Level))
	}
}

// Add is field addition, which is bitwise XOR at every tower level.
func Add(a, b Element) Element {
	requireSameLevel(a, b)
	return Element{Level: a.Level, Lo: a.Lo ^ b.Lo, Hi: a.Hi ^ b.Hi}
}

// halves splits an element of F_k (k >= 1) into its two F_{k-1} components,
// low half first, matching the (a0, a1) representation a0 + a1*X.
func halves(e Element) (a0, a1 Element) {
	k := e.Level
	if k == 0 {
		panic("tensorpcs/core: cannot split a level-0 element")
	}
	h := k - 1
	if k == 7 {
		return Element{Level: 6, Lo: e.Lo}, Element{Level: 6, Lo: e.Hi}
	}
	halfWidth := Bitwidth(h)
	m := mask(halfWidth)
	return Element{Level: h, Lo: e.Lo & m}, Element{Level: h, Lo: (e.Lo >> uint(halfWidth)) & m}
}

// combine is the inverse of halves: builds an F_k element from its two
// F_{k-1} halves.
func combine(k uint8, a0, a1 Element) Element {
	h := k - 1
	if k == 7 {
		return Element{Level: 7, Lo: a0.Lo, Hi: a1.Lo}
	}
	halfWidth := Bitwidth(h)
	return Element{Level: k, Lo: a0.Lo | (a1.Lo << uint(halfWidth))}
}

// mulRecursive implements the Karatsuba-like tower multiplication identity
// directly from first principles (no lookup tables), bottoming out at
// level 0 where multiplication is a single AND. It is used to bootstrap
// the level-3 lookup tables in tower_tables.go, and as the fallback path
// for levels 1 and 2 which are too small to benefit from tables.
func mulRecursive(a, b Element) Element {
	requireSameLevel(a, b)
	if a.Level == 0 {
		return Element{Level: 0, Lo: a.Lo & b.Lo}
	}
	k := a.Level
	alpha := alphaConst[k-1]
	a0, a1 := halves(a)
	b0, b1 := halves(b)
	p00 := mulRecursive(a0, b0)
	p11 := mulRecursive(a1, b1)
	psum := mulRecursive(Add(a0, a1), Add(b0, b1))
	constTerm := Add(p00, mulRecursive(p11, alpha))
	xTerm := Add(psum, p00)
	return combine(k, constTerm, xTerm)
}

// Mul is field multiplication. Level 3 is a lookup in the full 256x256
// byte product table; levels 4-7 recurse through the same identity as
// mulRecursive but bottom out at the level-3 table instead of level 0, so
// each multiplication above a byte splits into three multiplications one
// level down plus one MulAlpha. Levels 1 and 2 are cheap enough to use the
// unoptimized recursion directly.
func Mul(a, b Element) Element {
	requireSameLevel(a, b)
	switch {
	case a.Level == 0:
		return Element{Level: 0, Lo: a.Lo & b.Lo}
	case a.Level == 3:
		return mulByteTable(byte(a.Lo), byte(b.Lo))
	case a.Level < 3:
		return mulRecursive(a, b)
	default:
		k := a.Level
		a0, a1 := halves(a)
		b0, b1 := halves(b)
		p00 := Mul(a0, b0)
		p11 := Mul(a1, b1)
		psum := Mul(Add(a0, a1), Add(b0, b1))
		constTerm := Add(p00, MulAlpha(p11))
		xTerm := Add(psum, p00)
		return combine(k, constTerm, xTerm)
	}
}

// MulAlpha multiplies x by alpha_level, the designated constant of F_level
// used to build F_{level+1}. This is the primitive the Mul recursion uses
// to fold the a1*b1 cross term back into the constant term.
func MulAlpha(x Element) Element {
	if x.Level == 3 {
		return mulAlphaByteTable(byte(x.Lo))
	}
	return Mul(x, alphaConst[x.Level])
}

// Square computes x*x. At level 3 this is a direct table lookup.
func Square(x Element) Element {
	if x.Level == 3 {
		return squareByteTable(byte(x.Lo))
	}
	return Mul(x, x)
}

// InvertOrZero returns the multiplicative inverse of x, or zero if x is
// zero, using the closed-form recursive identity for X^2 = X + alpha:
// 1/(a0 + a1*X) = (a0 + a1 + a1*X) * Delta^-1 where
// Delta = a0^2 + a0*a1 + a1^2*alpha is an F_{level-1} element.
func InvertOrZero(x Element) Element {
	if x.IsZero() {
		return Zero(x.Level)
	}
	if x.Level == 0 {
		return x // the only nonzero element of GF(2) is 1, self-inverse
	}
	if x.Level == 3 {
		return invertByteTable(byte(x.Lo))
	}
	k := x.Level
	alpha := alphaConst[k-1]
	a0, a1 := halves(x)
	delta := Add(Add(Mul(a0, a0), Mul(a0, a1)), Mul(Mul(a1, a1), alpha))
	deltaInv := InvertOrZero(delta)
	r0 := Add(a0, a1)
	r1 := a1
	return combine(k, Mul(r0, deltaInv), Mul(r1, deltaInv))
}

// FromBases packs a slice of 2^d elements at level `level-d` into a single
// element of F_level, matching the ExtensionField::from_bases convention:
// index i (little-endian in the bases slice) occupies the i-th basis slot.
func FromBases(level uint8, bases []Element) (Element, error) {
	n := len(bases)
	if n == 0 || n&(n-1) != 0 {
		return Element{}, fmt.Errorf("tensorpcs/core: FromBases requires a power-of-two number of bases, got %d", n)
	}
	d := 0
	for (1 << d) < n {
		d++
	}
	if int(level)-d < 0 {
		return Element{}, fmt.Errorf("tensorpcs/core: level %d too small to hold %d bases", level, n)
	}
	baseLevel := level - uint8(d)
	for _, b := range bases {
		if b.Level != baseLevel {
			return Element{}, fmt.Errorf("tensorpcs/core: FromBases expected level %d bases, got %d", baseLevel, b.Level)
		}
	}
	cur := append([]Element(nil), bases...)
	curLevel := baseLevel
	for len(cur) > 1 {
		next := make([]Element, len(cur)/2)
		for i := range next {
			next[i] = combine(curLevel+1, cur[2*i], cur[2*i+1])
		}
		cur = next
		curLevel++
	}
	return cur[0], nil
}

// IntoBases unpacks e into 2^d elements at level (e.Level - d), the
// inverse of FromBases.
func IntoBases(e Element, d int) ([]Element, error) {
	if d == 0 {
		return []Element{e}, nil
	}
	if int(e.Level)-d < 0 {
		return nil, fmt.Errorf("tensorpcs/core: cannot split level %d element into %d levels", e.Level, d)
	}
	cur := []Element{e}
	for i := 0; i < d; i++ {
		next := make([]Element, 0, len(cur)*2)
		for _, c := range cur {
			a0, a1 := halves(c)
			next = append(next, a0, a1)
		}
		cur = next
	}
	return cur, nil
}
