// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field_test

import (
	"testing"

	"curve25519.dev/x25519/internal/field"
)

func BenchmarkAdd(b *testing.B) {
	var x, y field.FieldElement
	x.One()
	y.Add(x.One(), x.One())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Add(&x, &y)
	}
}

func BenchmarkMultiply(b *testing.B) {
	var x, y field.FieldElement
	x.One()
	y.Add(x.One(), x.One())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Multiply(&x, &y)
	}
}

func BenchmarkSquare(b *testing.B) {
	var x field.FieldElement
	x.One()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Square(&x)
	}
}

func BenchmarkInvert(b *testing.B) {
	var x, y field.FieldElement
	x.One()
	y.Add(x.One(), x.One())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Invert(&y)
	}
}
