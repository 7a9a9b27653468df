// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

import (
	"fmt"

	"github.com/btcsuite/msgverify/addrmatch"
	"github.com/btcsuite/msgverify/msghash"
	"github.com/btcsuite/msgverify/sigrecover"
)

// Method names the signing scheme a signature was verified under.
type Method string

// These constants identify each supported signing scheme.  The zero value
// indicates no scheme verified the signature.
const (
	MethodLegacy      Method = "Legacy"
	MethodBIP137      Method = "BIP-137"
	MethodBIP322      Method = "BIP-322"
	MethodLooseBIP137 Method = "Loose BIP-137"
)

// verdict is the result of running a single signing scheme.
type verdict uint8

const (
	// inapplicable means the scheme cannot interpret the signature for
	// the target address at all.
	inapplicable verdict = iota

	// noMatch means the scheme interpreted the signature, but it does not
	// prove control of the target address.
	noMatch

	// matched means the signature proves control of the target address.
	matched
)

// Map of verdict values back to their constant names for pretty printing.
var verdictStrings = map[verdict]string{
	inapplicable: "Inapplicable",
	noMatch:      "NoMatch",
	matched:      "Match",
}

// String returns the verdict as a human-readable name.
func (v verdict) String() string {
	if s := verdictStrings[v]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown verdict (%d)", uint8(v))
}

// strategy is one signing scheme.  A strategy is only verified once
// applicable has reported that it can interpret the input.  On a match,
// verify returns the serialized signing key; on a mismatch it returns the
// reason.
type strategy struct {
	method     Method
	applicable func(in *input) bool
	verify     func(in *input) (verdict, []byte, error)
}

// strategies is the fixed order signing schemes are tried in.  The first
// match wins, so stricter schemes must precede the compatibility scheme.
var strategies = []strategy{
	{MethodLegacy, legacyApplicable, verifyLegacy},
	{MethodBIP137, bip137Applicable, verifyBIP137},
	{MethodBIP322, bip322Applicable, verifyBIP322},
	{MethodLooseBIP137, looseApplicable, verifyLoose},
}

// input is the decoded form of a single verification request shared by
// all strategies.  Recovery from a compact signature is performed at most
// once and reused by every compact scheme.
type input struct {
	message []byte
	sig     []byte
	addr    *addrmatch.Address

	// compact is the parsed 65-byte signature, or nil when sig has any
	// other shape.  compactErr holds the reason it did not parse.
	compact    *sigrecover.CompactSig
	compactErr error

	recovered  bool
	candidates []sigrecover.Candidate
	recoverErr error
}

// newInput decodes the parts of a request every strategy needs.
func newInput(message, sig []byte, addr *addrmatch.Address) *input {
	in := &input{
		message: message,
		sig:     sig,
		addr:    addr,
	}
	if len(sig) == sigrecover.CompactSigSize {
		in.compact, in.compactErr = sigrecover.ParseCompact(sig)
	}
	return in
}

// isCompact reports whether the signature is a 65-byte record with a valid
// header byte.  Range errors on R or S still count, so the compact schemes
// report the mismatch rather than leaving the input to BIP-322.
func (in *input) isCompact() bool {
	return len(in.sig) == sigrecover.CompactSigSize &&
		sigrecover.IsHeader(in.sig[0])
}

// compactCandidates returns the key recovered from the compact signature
// over the legacy message digest.
func (in *input) compactCandidates() ([]sigrecover.Candidate, error) {
	if in.recovered {
		return in.candidates, in.recoverErr
	}
	in.recovered = true

	if in.compactErr != nil {
		in.recoverErr = in.compactErr
		return nil, in.recoverErr
	}

	digest := msghash.LegacyMessageDigest(in.message)
	in.candidates, in.recoverErr = sigrecover.RecoverFromHeader(
		digest, in.compact,
	)
	return in.candidates, in.recoverErr
}

// matchCandidates matches each candidate against the target address under
// the passed templates, hint first, and returns the first key that
// matches.
func (in *input) matchCandidates(candidates []sigrecover.Candidate,
	hint addrmatch.Template, templates ...addrmatch.Template) (verdict,
	[]byte, error) {

	for _, c := range candidates {
		t, ok := addrmatch.Match(c.PubKey, c.Compressed, in.addr, hint,
			templates...)
		if !ok {
			continue
		}
		log.Tracef("Recovered key %x matches %s address %s", c.Serialize(),
			t, in.addr.Encoded)
		return matched, c.Serialize(), nil
	}

	str := fmt.Sprintf("recovered key does not control %s address %s",
		in.addr.Template, in.addr.Encoded)
	return noMatch, nil, verifyError(ErrAddressMismatch, str)
}

// hintTemplate maps the address hint of a BIP-137 header to the address
// template it names.
func hintTemplate(h sigrecover.AddressHint) addrmatch.Template {
	switch h {
	case sigrecover.HintP2SHP2WPKH:
		return addrmatch.P2SHP2WPKH
	case sigrecover.HintP2WPKH:
		return addrmatch.P2WPKH
	}
	return addrmatch.P2PKH
}
