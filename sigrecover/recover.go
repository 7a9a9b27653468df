// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigrecover

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// CompactSigSize is the size of a compact signature.  It consists of
	// a header byte followed by the R and S components serialized as
	// 32-byte big-endian values.  1+32*2 = 65.
	CompactSigSize = 65

	// scalarSize is the size of an encoded big-endian scalar.
	scalarSize = 32

	// maxRecoveryID is the largest recovery id.  Ids 2 and 3 select an
	// R whose x coordinate overflowed the group order.
	maxRecoveryID = 3
)

// CompactSig is a parsed 65-byte legacy or BIP-137 signature.
type CompactSig struct {
	Header Header
	R      [scalarSize]byte
	S      [scalarSize]byte
}

// ParseCompact parses a 65-byte compact signature, decoding its header and
// ensuring that both R and S are in [1, N-1].
func ParseCompact(sig []byte) (*CompactSig, error) {
	if len(sig) < CompactSigSize {
		str := fmt.Sprintf("malformed compact signature: too short: %d < %d",
			len(sig), CompactSigSize)
		return nil, signatureError(ErrSigTooShort, str)
	}
	if len(sig) > CompactSigSize {
		str := fmt.Sprintf("malformed compact signature: too long: %d > %d",
			len(sig), CompactSigSize)
		return nil, signatureError(ErrSigTooLong, str)
	}

	header, err := DecodeHeader(sig[0])
	if err != nil {
		return nil, err
	}

	var c CompactSig
	c.Header = header
	copy(c.R[:], sig[1:1+scalarSize])
	copy(c.S[:], sig[1+scalarSize:])
	if err := checkScalars(c.R, c.S); err != nil {
		return nil, err
	}

	return &c, nil
}

// checkScalars fails if r or s is not in [1, N-1].
func checkScalars(r, s [scalarSize]byte) error {
	var rs, ss secp.ModNScalar
	if overflow := rs.SetBytes(&r); overflow != 0 {
		return signatureError(ErrSigRTooBig, "invalid signature: R >= group order")
	}
	if rs.IsZero() {
		return signatureError(ErrSigRIsZero, "invalid signature: R is 0")
	}
	if overflow := ss.SetBytes(&s); overflow != 0 {
		return signatureError(ErrSigSTooBig, "invalid signature: S >= group order")
	}
	if ss.IsZero() {
		return signatureError(ErrSigSIsZero, "invalid signature: S is 0")
	}
	return nil
}

// IsLowS reports whether s is at most half the group order, as required by
// the standardness rules for segwit signatures.
func IsLowS(s [scalarSize]byte) bool {
	var ss secp.ModNScalar
	if overflow := ss.SetBytes(&s); overflow != 0 {
		return false
	}
	return !ss.IsOverHalfOrder()
}

// Candidate is a public key recovered from a signature together with the
// serialization the signer is assumed to have used for it.
type Candidate struct {
	PubKey     *btcec.PublicKey
	Compressed bool
	RecoveryID byte
}

// Serialize returns the candidate key in the serialization selected by its
// compression flag.
func (c Candidate) Serialize() []byte {
	if c.Compressed {
		return c.PubKey.SerializeCompressed()
	}
	return c.PubKey.SerializeUncompressed()
}

// recoverKey performs a single point recovery for the given recovery id.
func recoverKey(digest []byte, r, s [scalarSize]byte, id byte,
	compressed bool) (*btcec.PublicKey, error) {

	var compact [CompactSigSize]byte
	compact[0] = recoveryCode(id, compressed)
	copy(compact[1:], r[:])
	copy(compact[1+scalarSize:], s[:])

	pubKey, _, err := ecdsa.RecoverCompact(compact[:], digest)
	if err != nil {
		str := fmt.Sprintf("unable to recover key for id %d: %v", id, err)
		return nil, signatureError(ErrRecoveryFailed, str)
	}
	if pubKey == nil || !pubKey.IsOnCurve() {
		str := fmt.Sprintf("recovered key for id %d is not on the curve", id)
		return nil, signatureError(ErrRecoveryFailed, str)
	}
	return pubKey, nil
}

// RecoverFromHeader recovers the single public key selected by the
// signature's header byte.  The segwit header ranges are normalized to the
// compressed P2PKH range before recovery since they carry the same recovery
// id.
func RecoverFromHeader(digest []byte, sig *CompactSig) ([]Candidate, error) {
	if len(digest) != chainhash.HashSize {
		str := fmt.Sprintf("digest must be %d bytes, got %d",
			chainhash.HashSize, len(digest))
		return nil, signatureError(ErrInvalidDigest, str)
	}

	h := sig.Header
	pubKey, err := recoverKey(digest, sig.R, sig.S, h.RecoveryID, h.Compressed)
	if err != nil {
		return nil, err
	}

	return []Candidate{{
		PubKey:     pubKey,
		Compressed: h.Compressed,
		RecoveryID: h.RecoveryID,
	}}, nil
}

// RecoverAll returns every public key consistent with the (r, s) signature
// over digest when no recovery id is known.  All four recovery ids are tried
// and each recovered point is returned in both compressed and uncompressed
// form, so at most eight candidates are produced.  Ids that fail to recover
// are skipped.
func RecoverAll(digest []byte, r, s [scalarSize]byte) []Candidate {
	if len(digest) != chainhash.HashSize || checkScalars(r, s) != nil {
		return nil
	}

	candidates := make([]Candidate, 0, 2*(maxRecoveryID+1))
	for id := byte(0); id <= maxRecoveryID; id++ {
		pubKey, err := recoverKey(digest, r, s, id, true)
		if err != nil {
			continue
		}
		candidates = append(candidates,
			Candidate{PubKey: pubKey, Compressed: true, RecoveryID: id},
			Candidate{PubKey: pubKey, Compressed: false, RecoveryID: id},
		)
	}
	return candidates
}
