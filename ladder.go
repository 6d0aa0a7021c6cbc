// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x25519

import "curve25519.dev/x25519/internal/field"

// ladder runs the RFC 7748 Montgomery ladder: 255 steps of constant-
// time conditional swap, differential addition, and doubling in XZ
// projective coordinates, descending from bit 254 to bit 0 of the
// clamped scalar.
func ladder(k *ScalarBits, u *field.FieldElement) *field.FieldElement {
	x1 := new(field.FieldElement).Set(u)

	x2 := new(field.FieldElement).One()
	z2 := new(field.FieldElement).Zero()
	x3 := new(field.FieldElement).Set(u)
	z3 := new(field.FieldElement).One()

	swap := field.BroadcastBit(0)

	var a, aa, b, bb, e, c, d, da, cb, t0, t1 field.FieldElement

	for t := 254; t >= 0; t-- {
		kt := field.BroadcastBit(k.Bit(t))
		swap.Xor(&swap, &kt)

		x2.Swap(x3, &swap)
		z2.Swap(z3, &swap)

		swap = kt

		a.Add(x2, z2)
		aa.Square(&a)
		b.Subtract(x2, z2)
		bb.Square(&b)
		e.Subtract(&aa, &bb)
		c.Add(x3, z3)
		d.Subtract(x3, z3)
		da.Multiply(&d, &a)
		cb.Multiply(&c, &b)

		t0.Add(&da, &cb)
		x3.Square(&t0)

		t1.Subtract(&da, &cb)
		t1.Square(&t1)
		z3.Multiply(x1, &t1)

		x2.Multiply(&aa, &bb)

		t0.Mul121665(&e)
		t0.Add(&aa, &t0)
		z2.Multiply(&e, &t0)
	}

	x2.Swap(x3, &swap)
	z2.Swap(z3, &swap)

	var zInv field.FieldElement
	zInv.Invert(z2)
	out := new(field.FieldElement).Multiply(x2, &zInv)
	return out
}
