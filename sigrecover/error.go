// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigrecover

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrSigTooShort is returned when a compact signature is shorter than
	// the 65 bytes a header byte plus R and S require.
	ErrSigTooShort = ErrorKind("ErrSigTooShort")

	// ErrSigTooLong is returned when a compact signature is longer than 65
	// bytes.
	ErrSigTooLong = ErrorKind("ErrSigTooLong")

	// ErrInvalidHeader is returned when the first byte of a compact
	// signature is outside every known BIP-137 range.
	ErrInvalidHeader = ErrorKind("ErrInvalidHeader")

	// ErrSigRTooBig is returned when R is greater than or equal to the
	// group order.
	ErrSigRTooBig = ErrorKind("ErrSigRTooBig")

	// ErrSigRIsZero is returned when R is zero.
	ErrSigRIsZero = ErrorKind("ErrSigRIsZero")

	// ErrSigSTooBig is returned when S is greater than or equal to the
	// group order.
	ErrSigSTooBig = ErrorKind("ErrSigSTooBig")

	// ErrSigSIsZero is returned when S is zero.
	ErrSigSIsZero = ErrorKind("ErrSigSIsZero")

	// ErrInvalidDigest is returned when the digest to recover against is
	// not 32 bytes.
	ErrInvalidDigest = ErrorKind("ErrInvalidDigest")

	// ErrRecoveryFailed is returned when no valid public key can be
	// recovered for the requested recovery id.
	ErrRecoveryFailed = ErrorKind("ErrRecoveryFailed")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to signature decoding or key recovery.
// It has full support for errors.Is and errors.As, so the caller can
// ascertain the specific reason for the error by checking the underlying
// error.
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

// signatureError creates an Error given a set of arguments.
func signatureError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
