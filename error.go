// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrSignatureEncoding indicates the signature string is neither
	// base64 nor hex.
	ErrSignatureEncoding = ErrorKind("ErrSignatureEncoding")

	// ErrNoApplicableScheme indicates no signing scheme accepts the
	// combination of signature shape and address type.
	ErrNoApplicableScheme = ErrorKind("ErrNoApplicableScheme")

	// ErrAddressMismatch indicates the signing key was recovered but does
	// not control the target address.
	ErrAddressMismatch = ErrorKind("ErrAddressMismatch")

	// ErrKeyMismatch indicates no key recovered from a BIP-322 ECDSA
	// signature equals the public key carried in the witness.
	ErrKeyMismatch = ErrorKind("ErrKeyMismatch")

	// ErrInvalidSignature indicates a signature is well formed but fails
	// verification, or violates an encoding rule such as low S.
	ErrInvalidSignature = ErrorKind("ErrInvalidSignature")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a verification failure.  It has full support for
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

// verifyError creates an Error given a set of arguments.
func verifyError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// StrategyError ties the reason a scheme failed to the scheme that
// reported it.
type StrategyError struct {
	Method Method
	Err    error
}

// Error satisfies the error interface and prints human-readable errors.
func (e StrategyError) Error() string {
	return string(e.Method) + ": " + e.Err.Error()
}

// Unwrap returns the underlying wrapped error.
func (e StrategyError) Unwrap() error {
	return e.Err
}
