// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

// Package device fabricates client device fingerprints for the Venmo API.
//
// The upstream service correlates a device identifier across the two
// phases of a login attempt and expects each client installation to
// present a distinct-looking identity. Generate produces values with the
// same shape as a real identifier but unpredictable content.
package device

import "math/rand"

// identityTemplate fixes the shape of a generated identity: five
// hyphen-separated groups mixing letters and digits. Letter slots are
// filled with random uppercase letters, digit slots with random digits,
// and separators are kept verbatim.
const identityTemplate = "88884260-05O3-8U81-58I1-2WA76F300008"

const (
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
)

// Generate mints a fresh device identity. Two calls return different
// values with overwhelming probability; a collision is harmless because
// the identifier is only a fingerprint, never a key.
func Generate() string {
	out := []byte(identityTemplate)
	for i, c := range out {
		switch {
		case isLetter(c):
			out[i] = upperLetters[rand.Intn(len(upperLetters))]
		case isDigit(c):
			out[i] = digits[rand.Intn(len(digits))]
		}
	}
	return string(out)
}

// Template returns the identity template, exposing the expected length
// and character-class layout of generated values.
func Template() string {
	return identityTemplate
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
