// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements arithmetic modulo 2^255-19, the field
// underlying Curve25519 in Montgomery form.
//
// A FieldElement is four 64-bit limbs (63+64+64+64 bits), reduced
// after every operation using the identity 2^255 ≡ 19 (mod p).
package field

import (
	"crypto/subtle"
	"encoding/binary"
	"math/bits"
)

// FieldElement represents an element of GF(2^255-19) as four 64-bit
// limbs, little-endian by significance.
//
// An element v represents the integer
//
//	v.x0 + v.x1*2^64 + v.x2*2^128 + v.x3*2^192
//
// Between operations every FieldElement is canonical: the represented
// integer is strictly less than p, and x3 uses only its low 63 bits
// (bit 63 of x3 is always zero).
//
// The zero value is a valid zero element.
type FieldElement struct {
	x0, x1, x2, x3 uint64
}

const maskLow63Bits uint64 = (1 << 63) - 1

var (
	feZero = &FieldElement{0, 0, 0, 0}
	feOne  = &FieldElement{1, 0, 0, 0}
)

// Zero sets v = 0, and returns v.
func (v *FieldElement) Zero() *FieldElement {
	*v = *feZero
	return v
}

// One sets v = 1, and returns v.
func (v *FieldElement) One() *FieldElement {
	*v = *feOne
	return v
}

// Set sets v = a, and returns v.
func (v *FieldElement) Set(a *FieldElement) *FieldElement {
	*v = *a
	return v
}

// canonicalize applies the branchless "+19 and check bit 255" select
// described in the reduction design: if x0..x3 (already folded to at
// most 256 bits, x3 already masked to 63 bits) is still >= p, the
// incremented-by-19 value is selected instead.
func canonicalize(x0, x1, x2, x3 uint64) (r0, r1, r2, r3 uint64) {
	t0, c0 := bits.Add64(x0, 19, 0)
	t1, c1 := bits.Add64(x1, 0, c0)
	t2, c2 := bits.Add64(x2, 0, c1)
	t3, _ := bits.Add64(x3, 0, c2)

	rollover := -(t3 >> 63) // all-ones if x+19 overflowed bit 255, else all-zeros

	r0 = (^rollover & x0) | (rollover & t0)
	r1 = (^rollover & x1) | (rollover & t1)
	r2 = (^rollover & x2) | (rollover & t2)
	r3 = maskLow63Bits & ((^rollover & x3) | (rollover & t3))
	return
}

// Add sets v = a + b, and returns v.
func (v *FieldElement) Add(a, b *FieldElement) *FieldElement {
	s0, c0 := bits.Add64(a.x0, b.x0, 0)
	s1, c1 := bits.Add64(a.x1, b.x1, c0)
	s2, c2 := bits.Add64(a.x2, b.x2, c1)
	s3, _ := bits.Add64(a.x3, b.x3, c2)

	// Fold bit 255 of the 257-bit sum back in via 2^255 ≡ 19 (mod p).
	fold := s3 >> 63
	i0, cc0 := bits.Add64(s0, 19*fold, 0)
	i1, cc1 := bits.Add64(s1, 0, cc0)
	i2, cc2 := bits.Add64(s2, 0, cc1)
	i3, _ := bits.Add64(s3, 0, cc2)
	i3 &= maskLow63Bits

	v.x0, v.x1, v.x2, v.x3 = canonicalize(i0, i1, i2, i3)
	return v
}

// Subtract sets v = a - b, and returns v.
func (v *FieldElement) Subtract(a, b *FieldElement) *FieldElement {
	d0, b0 := bits.Sub64(a.x0, b.x0, 0)
	d1, b1 := bits.Sub64(a.x1, b.x1, b0)
	d2, b2 := bits.Sub64(a.x2, b.x2, b1)
	d3, _ := bits.Sub64(a.x3, b.x3, b2)

	// If the subtraction underflowed p, correct by subtracting 19.
	borrow := d3 >> 63
	e0, bb0 := bits.Sub64(d0, 19*borrow, 0)
	e1, bb1 := bits.Sub64(d1, 0, bb0)
	e2, bb2 := bits.Sub64(d2, 0, bb1)
	e3, _ := bits.Sub64(d3, 0, bb2)

	v.x0, v.x1, v.x2, v.x3 = e0, e1, e2, e3&maskLow63Bits
	return v
}

// mulAdd1 computes x*y + a as a 128-bit (hi, lo) pair.
func mulAdd1(x, y, a uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(x, y)
	var c uint64
	lo, c = bits.Add64(lo, a, 0)
	hi, _ = bits.Add64(hi, 0, c)
	return
}

// mulAdd2 computes x*y + a0 + a1 as a 128-bit (hi, lo) pair.
func mulAdd2(x, y, a0, a1 uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(x, y)
	var c uint64
	lo, c = bits.Add64(lo, a0, 0)
	hi, _ = bits.Add64(hi, 0, c)
	lo, c = bits.Add64(lo, a1, 0)
	hi, _ = bits.Add64(hi, 0, c)
	return
}

// foldColumn folds one column of the high half of a 512-bit product
// into the low half via the identity 2^256 ≡ 38 (mod p).
func foldColumn(low, top, carryIn uint64) (uint64, uint64) {
	pHi, pLo := bits.Mul64(top, 38)
	s, c1 := bits.Add64(low, pLo, 0)
	s, c2 := bits.Add64(s, carryIn, 0)
	return s, pHi + c1 + c2
}

// Multiply sets v = a * b, and returns v.
func (v *FieldElement) Multiply(a, b *FieldElement) *FieldElement {
	// Schoolbook 4x4 widening multiply, accumulated column by column.
	hi0, lo0 := bits.Mul64(a.x0, b.x0)
	mulX00 := lo0
	carry := hi0

	lo, hi := mulAdd1(a.x0, b.x1, carry)
	mulX01 := lo
	carry = hi

	lo, hi = mulAdd1(a.x0, b.x2, carry)
	mulX02 := lo
	carry = hi

	lo, hi = mulAdd1(a.x0, b.x3, carry)
	mulX03 := lo
	mulX04 := hi

	lo, hi = mulAdd1(a.x1, b.x0, mulX01)
	mulX10 := lo
	carry = hi

	lo, hi = mulAdd2(a.x1, b.x1, carry, mulX02)
	mulX11 := lo
	carry = hi

	lo, hi = mulAdd2(a.x1, b.x2, carry, mulX03)
	mulX12 := lo
	carry = hi

	lo, hi = mulAdd2(a.x1, b.x3, carry, mulX04)
	mulX13 := lo
	mulX14 := hi

	lo, hi = mulAdd1(a.x2, b.x0, mulX11)
	mulX20 := lo
	carry = hi

	lo, hi = mulAdd2(a.x2, b.x1, carry, mulX12)
	mulX21 := lo
	carry = hi

	lo, hi = mulAdd2(a.x2, b.x2, carry, mulX13)
	mulX22 := lo
	carry = hi

	lo, hi = mulAdd2(a.x2, b.x3, carry, mulX14)
	mulX23 := lo
	mulX24 := hi

	lo, hi = mulAdd1(a.x3, b.x0, mulX21)
	mulX30 := lo
	carry = hi

	lo, hi = mulAdd2(a.x3, b.x1, carry, mulX22)
	mulX31 := lo
	carry = hi

	lo, hi = mulAdd2(a.x3, b.x2, carry, mulX23)
	mulX32 := lo
	carry = hi

	lo, hi = mulAdd2(a.x3, b.x3, carry, mulX24)
	mulX33 := lo
	mulX34 := hi

	// Fold the high four limbs (mulX31..mulX34) into the low four via *38.
	red0, fc := foldColumn(mulX00, mulX31, 0)
	red1, fc := foldColumn(mulX10, mulX32, fc)
	red2, fc := foldColumn(mulX20, mulX33, fc)
	red3, fc := foldColumn(mulX30, mulX34, fc)

	// Second fold: collapse whatever is left at or above bit 255 via *19.
	// bit255 can itself span several multiples of 2^255 (fc alone can
	// exceed 1), so folding it in against the masked low limb can push
	// the result back across the 2^255 boundary; that carry has to be
	// folded in again (with weight at most 1 this time) before the
	// result is narrow enough for canonicalize's single-bit precondition.
	bit255 := fc*2 + (red3 >> 63)
	low3 := red3 & maskLow63Bits

	s0, sc0 := bits.Add64(red0, 19*bit255, 0)
	s1, sc1 := bits.Add64(red1, 0, sc0)
	s2, sc2 := bits.Add64(red2, 0, sc1)
	s3, _ := bits.Add64(low3, 0, sc2)

	extra := s3 >> 63
	s3 &= maskLow63Bits

	i0, cc0 := bits.Add64(s0, 19*extra, 0)
	i1, cc1 := bits.Add64(s1, 0, cc0)
	i2, cc2 := bits.Add64(s2, 0, cc1)
	i3, _ := bits.Add64(s3, 0, cc2)

	v.x0, v.x1, v.x2, v.x3 = canonicalize(i0, i1, i2, i3)
	return v
}

// Square sets v = a * a, and returns v.
//
// Squaring is numerically just multiplication by itself (the only
// property the ladder and the inversion chain depend on, per the
// "square(a) = a*a" postcondition); it is kept as its own method to
// mirror the shape every other field operation takes.
func (v *FieldElement) Square(a *FieldElement) *FieldElement {
	return v.Multiply(a, a)
}

// Mul121665 sets v = a * 121665, the Montgomery curve constant
// (A-2)/4, and returns v.
func (v *FieldElement) Mul121665(a *FieldElement) *FieldElement {
	const a24 = 121665

	p0hi, p0lo := bits.Mul64(a.x0, a24)
	p1hi, p1lo := bits.Mul64(a.x1, a24)
	p2hi, p2lo := bits.Mul64(a.x2, a24)
	p3hi, p3lo := bits.Mul64(a.x3, a24)

	s0 := p0lo
	s1, c1 := bits.Add64(p1lo, p0hi, 0)
	s2, c2 := bits.Add64(p2lo, p1hi, c1)
	s3, c3 := bits.Add64(p3lo, p2hi, c2)

	// fold carries the same multi-multiple weight as Multiply's bit255
	// (121665 spans 17 bits, so p3hi alone can be nonzero); the same
	// two-stage collapse applies before handing off to canonicalize.
	fold := (p3hi+c3)*2 + (s3 >> 63)
	low3 := s3 & maskLow63Bits

	t0, tc0 := bits.Add64(s0, 19*fold, 0)
	t1, tc1 := bits.Add64(s1, 0, tc0)
	t2, tc2 := bits.Add64(s2, 0, tc1)
	t3, _ := bits.Add64(low3, 0, tc2)

	extra := t3 >> 63
	t3 &= maskLow63Bits

	i0, cc0 := bits.Add64(t0, 19*extra, 0)
	i1, cc1 := bits.Add64(t1, 0, cc0)
	i2, cc2 := bits.Add64(t2, 0, cc1)
	i3, _ := bits.Add64(t3, 0, cc2)

	v.x0, v.x1, v.x2, v.x3 = canonicalize(i0, i1, i2, i3)
	return v
}

// Invert sets v = 1/z mod p, and returns v.
//
// Inversion is exponentiation by p-2, using the fixed 254-squaring,
// 11-multiplication addition chain for 2^255 - 21.
func (v *FieldElement) Invert(z *FieldElement) *FieldElement {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t FieldElement

	z2.Square(z)             // 2
	t.Square(&z2)            // 4
	t.Square(&t)             // 8
	z9.Multiply(&t, z)       // 9
	z11.Multiply(&z9, &z2)   // 11
	t.Square(&z11)           // 22
	z2_5_0.Multiply(&t, &z9) // 2^5 - 2^0 = 31

	t.Square(&z2_5_0)
	for i := 0; i < 4; i++ {
		t.Square(&t)
	}
	z2_10_0.Multiply(&t, &z2_5_0) // 2^10 - 2^0

	t.Square(&z2_10_0)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_20_0.Multiply(&t, &z2_10_0) // 2^20 - 2^0

	t.Square(&z2_20_0)
	for i := 0; i < 19; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_20_0) // 2^40 - 2^0

	t.Square(&t)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_50_0.Multiply(&t, &z2_10_0) // 2^50 - 2^0

	t.Square(&z2_50_0)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	z2_100_0.Multiply(&t, &z2_50_0) // 2^100 - 2^0

	t.Square(&z2_100_0)
	for i := 0; i < 99; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_100_0) // 2^200 - 2^0

	t.Square(&t)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_50_0) // 2^250 - 2^0

	t.Square(&t) // 2^251 - 2^1
	t.Square(&t) // 2^252 - 2^2
	t.Square(&t) // 2^253 - 2^3
	t.Square(&t) // 2^254 - 2^4
	t.Square(&t) // 2^255 - 2^5

	return v.Multiply(&t, &z11) // 2^255 - 21
}

// Swap exchanges v and u in place if mask is all-ones across every
// limb, or leaves them unchanged if mask is all-zeros across every
// limb. mask must be one of those two patterns; the swap is performed
// via masked XOR with no branch on mask.
func (v *FieldElement) Swap(u *FieldElement, mask *FieldElement) {
	t0 := mask.x0 & (v.x0 ^ u.x0)
	v.x0 ^= t0
	u.x0 ^= t0
	t1 := mask.x1 & (v.x1 ^ u.x1)
	v.x1 ^= t1
	u.x1 ^= t1
	t2 := mask.x2 & (v.x2 ^ u.x2)
	v.x2 ^= t2
	u.x2 ^= t2
	t3 := mask.x3 & (v.x3 ^ u.x3)
	v.x3 ^= t3
	u.x3 ^= t3
}

// Xor sets v = a ^ b limb-wise, and returns v. It exists to accumulate
// the Montgomery ladder's running swap mask; it is not a field
// operation and has no meaning on arbitrary FieldElement values.
func (v *FieldElement) Xor(a, b *FieldElement) *FieldElement {
	v.x0 = a.x0 ^ b.x0
	v.x1 = a.x1 ^ b.x1
	v.x2 = a.x2 ^ b.x2
	v.x3 = a.x3 ^ b.x3
	return v
}

// BroadcastBit returns an all-ones FieldElement if bit&1 == 1, or an
// all-zeros FieldElement otherwise. The result is only ever used as a
// Swap/Xor mask, never as a field value.
func BroadcastBit(bit uint64) FieldElement {
	m := -(bit & 1)
	return FieldElement{m, m, m, m}
}

// Equal returns 1 if v == u, and 0 otherwise, in constant time.
func (v *FieldElement) Equal(u *FieldElement) int {
	sv, su := v.Bytes(), u.Bytes()
	return subtle.ConstantTimeCompare(sv, su)
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *FieldElement) Bytes() []byte {
	b := make([]byte, 32)
	binary.LittleEndian.PutUint64(b[0:8], v.x0)
	binary.LittleEndian.PutUint64(b[8:16], v.x1)
	binary.LittleEndian.PutUint64(b[16:24], v.x2)
	binary.LittleEndian.PutUint64(b[24:32], v.x3)
	return b
}

// SetBytes sets v to x, a 32-byte little-endian encoding, and returns
// v. Per RFC 7748, the most significant bit (the high bit of the last
// byte) is cleared before reducing mod p; non-canonical values
// (2^255-19 through 2^255-1, and anything with the high bit set) are
// accepted and reduced rather than rejected.
func (v *FieldElement) SetBytes(x []byte) *FieldElement {
	if len(x) != 32 {
		panic("field: invalid field element input size")
	}

	x0 := binary.LittleEndian.Uint64(x[0:8])
	x1 := binary.LittleEndian.Uint64(x[8:16])
	x2 := binary.LittleEndian.Uint64(x[16:24])
	x3 := binary.LittleEndian.Uint64(x[24:32])
	x3 &= maskLow63Bits

	v.x0, v.x1, v.x2, v.x3 = canonicalize(x0, x1, x2, x3)
	return v
}
