// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrmatch

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrMalformedAddress is returned when an address does not decode for
	// any of the configured networks, for example because of a bad
	// checksum or invalid bech32 encoding.
	ErrMalformedAddress = ErrorKind("ErrMalformedAddress")

	// ErrUnsupportedAddress is returned when an address decodes but is not
	// one of the supported templates.
	ErrUnsupportedAddress = ErrorKind("ErrUnsupportedAddress")

	// ErrUnsupportedTemplate is returned when derivation is requested for
	// an unknown template.
	ErrUnsupportedTemplate = ErrorKind("ErrUnsupportedTemplate")

	// ErrInvalidPubKey is returned when a serialized public key cannot be
	// used with the requested template.
	ErrInvalidPubKey = ErrorKind("ErrInvalidPubKey")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an address decoding or derivation error.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
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

// addressError creates an Error given a set of arguments.
func addressError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
