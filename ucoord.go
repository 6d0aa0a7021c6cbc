// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x25519

import "curve25519.dev/x25519/internal/field"

// UCoordinate is the 32-byte little-endian encoding of a Montgomery
// u-coordinate, before it has been decoded into a field.FieldElement.
// It exists as a distinct type from field.FieldElement because the
// wire encoding and the reduced field value are different things: the
// encoding may carry a non-canonical value (2^255-19 .. 2^255-1, or
// any value with the high bit set) that DecodeUCoordinate reduces.
type UCoordinate struct {
	b [32]byte
}

// NewUCoordinate copies the 32 input bytes into a UCoordinate.
func NewUCoordinate(u []byte) (*UCoordinate, error) {
	if len(u) != 32 {
		return nil, ErrInvalidUCoordinateLength
	}
	c := new(UCoordinate)
	copy(c.b[:], u)
	return c, nil
}

// Decode masks the high bit of the encoding (per RFC 7748) and
// reduces the result mod p, returning the corresponding field element.
func (u *UCoordinate) Decode() *field.FieldElement {
	masked := u.b
	masked[31] &= 127
	return new(field.FieldElement).SetBytes(masked[:])
}
