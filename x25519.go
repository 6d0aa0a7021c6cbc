// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x25519 implements the X25519 function, the Diffie-Hellman
// function over Curve25519, as defined in RFC 7748.
package x25519

import "errors"

// ErrInvalidScalarLength is returned by X25519 when scalar is not
// exactly 32 bytes.
var ErrInvalidScalarLength = errors.New("x25519: invalid scalar length, expected 32 bytes")

// ErrInvalidUCoordinateLength is returned by X25519 when point is not
// exactly 32 bytes.
var ErrInvalidUCoordinateLength = errors.New("x25519: invalid u-coordinate length, expected 32 bytes")

// X25519 performs the X25519 Diffie-Hellman function defined in
// RFC 7748: it clamps scalar per §5, decodes point as a Montgomery
// u-coordinate, runs the Montgomery ladder, and returns the resulting
// u-coordinate encoded as 32 little-endian bytes.
//
// Both scalar and point must be exactly 32 bytes; any other length
// returns an error. This matches both the RFC 7748 test vectors (where
// point is the base point u = 9 encoded as 32 bytes, or a previous output)
// and the Diffie-Hellman shared-secret use case (where point is a
// peer's public key).
func X25519(scalar, point []byte) ([]byte, error) {
	k, err := ClampScalar(scalar)
	if err != nil {
		return nil, err
	}
	u, err := NewUCoordinate(point)
	if err != nil {
		return nil, err
	}

	result := ladder(k, u.Decode())
	return result.Bytes(), nil
}
