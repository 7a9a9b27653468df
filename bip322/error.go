// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bip322

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrMalformedWitness is returned when a signature does not decode as
	// a serialized witness stack.
	ErrMalformedWitness = ErrorKind("ErrMalformedWitness")

	// ErrUnsupportedWitness is returned when a witness stack decodes but
	// does not have the shape of a single-key spend of the target script.
	ErrUnsupportedWitness = ErrorKind("ErrUnsupportedWitness")

	// ErrInvalidSigHashType is returned when a witness signature carries
	// an undefined sighash type.
	ErrInvalidSigHashType = ErrorKind("ErrInvalidSigHashType")

	// ErrInvalidSigLength is returned when a witness signature has a length
	// that no encoding allows.
	ErrInvalidSigLength = ErrorKind("ErrInvalidSigLength")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a BIP-322 encoding error.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// bip322Error creates an Error given a set of arguments.
func bip322Error(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
