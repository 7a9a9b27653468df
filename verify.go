// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/msgverify/addrmatch"
)

// Result is the verdict of verifying one signed message.
type Result struct {
	// Valid reports whether the signature proves control of the address.
	Valid bool

	// Method is the scheme that verified the signature.  It is empty
	// when Valid is false.
	Method Method

	// PubKey is the serialized key that produced the signature when Valid
	// is true.  It is the x-only output key for BIP-322 taproot
	// signatures.
	PubKey []byte

	// Diagnostics lists why verification failed, in the order the
	// schemes were tried.  It is empty when Valid is true.
	Diagnostics []error
}

// String returns a short human-readable form of the result.
func (r Result) String() string {
	if r.Valid {
		return fmt.Sprintf("valid (%s)", r.Method)
	}
	return "invalid"
}

// Verifier verifies signed messages against addresses of a fixed set of
// networks.  It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	nets []*chaincfg.Params
}

// NewVerifier returns a Verifier that accepts addresses of the passed
// networks, or of mainnet, testnet3, regtest and signet when none are
// passed.  A nil network is a programming error and panics.
func NewVerifier(nets ...*chaincfg.Params) *Verifier {
	if len(nets) == 0 {
		nets = addrmatch.DefaultNetworks
	}
	for _, net := range nets {
		if net == nil {
			panic("msgverify: nil network params")
		}
	}
	return &Verifier{nets: append([]*chaincfg.Params(nil), nets...)}
}

// defaultVerifier backs VerifyMessage.
var defaultVerifier = NewVerifier()

// VerifyMessage verifies message, signed as signature, against address
// using the default networks.  See Verifier.Verify.
func VerifyMessage(message, signature, address string) Result {
	return defaultVerifier.Verify(message, signature, address)
}

// Verify reports whether signature, a base64 or hex string, proves that
// the key controlling address signed message.  The message is used
// byte-for-byte exactly as given.
//
// Each scheme is tried in the order Legacy, BIP-137, BIP-322 and Loose
// BIP-137, skipping schemes that cannot interpret the signature for the
// address type, and the first scheme to match decides the result.
func (v *Verifier) Verify(message, signature, address string) Result {
	sig, err := DecodeSignature(signature)
	if err != nil {
		log.Debugf("Rejecting signature for %s: %v", address, err)
		return Result{Diagnostics: []error{err}}
	}

	addr, err := addrmatch.Decode(address, v.nets...)
	if err != nil {
		log.Debugf("Rejecting address %q: %v", address, err)
		return Result{Diagnostics: []error{err}}
	}

	in := newInput([]byte(message), sig, addr)
	var diags []error
	for _, s := range strategies {
		if !s.applicable(in) {
			log.Tracef("%s: %v for %d-byte signature and %s address",
				s.method, inapplicable, len(sig), addr.Template)
			continue
		}

		outcome, pubKey, err := s.verify(in)
		log.Tracef("%s: %v for %s", s.method, outcome, addr.Encoded)
		if outcome == matched {
			log.Debugf("Verified signature for %s via %s", addr.Encoded,
				s.method)
			return Result{
				Valid:  true,
				Method: s.method,
				PubKey: pubKey,
			}
		}
		diags = append(diags, StrategyError{Method: s.method, Err: err})
	}

	if len(diags) == 0 {
		str := fmt.Sprintf("no scheme accepts a %d-byte signature for a "+
			"%s address", len(sig), addr.Template)
		diags = append(diags, verifyError(ErrNoApplicableScheme, str))
	}
	log.Debugf("Signature for %s did not verify: %v", addr.Encoded, diags)
	return Result{Diagnostics: diags}
}

// DecodeSignature decodes a signature string as base64 or hex.  Padded and
// unpadded standard base64 are accepted.  A string made up entirely of an
// even number of hex digits is decoded as hex even though it may also be
// valid base64; a base64 encoded compact signature always ends in padding
// and is never mistaken for hex.
func DecodeSignature(s string) ([]byte, error) {
	if s == "" {
		return nil, verifyError(ErrSignatureEncoding, "empty signature")
	}

	if b, err := hex.DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.StdEncoding.Strict().DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.Strict().DecodeString(s); err == nil {
		return b, nil
	}

	str := fmt.Sprintf("signature %q is neither base64 nor hex", s)
	return nil, verifyError(ErrSignatureEncoding, str)
}
