// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bip322

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

const (
	// witnessProtoVer is the protocol version used to read and write the
	// CompactSize fields of a witness stack.
	witnessProtoVer uint32 = 0

	// maxWitnessItems is the maximum number of stack items accepted when
	// decoding an untrusted signature.
	maxWitnessItems = 100

	// maxWitnessItemSize is the maximum size of a single stack item
	// accepted when decoding an untrusted signature.
	maxWitnessItemSize = txscript.MaxScriptSize

	// schnorrSigSize is the size of a BIP-340 signature without a sighash
	// type.
	schnorrSigSize = 64

	// annexTag is the first byte of a taproot annex.
	annexTag = 0x50
)

// ParseWitness decodes a BIP-322 "simple" signature: a CompactSize item
// count followed by CompactSize length-prefixed items.  An empty stack or
// trailing bytes are rejected.
func ParseWitness(b []byte) (wire.TxWitness, error) {
	r := bytes.NewReader(b)

	count, err := wire.ReadVarInt(r, witnessProtoVer)
	if err != nil {
		str := fmt.Sprintf("unable to read witness item count: %v", err)
		return nil, bip322Error(ErrMalformedWitness, str)
	}
	if count == 0 {
		return nil, bip322Error(ErrMalformedWitness, "empty witness stack")
	}
	if count > maxWitnessItems {
		str := fmt.Sprintf("too many witness items: %d > %d", count,
			maxWitnessItems)
		return nil, bip322Error(ErrMalformedWitness, str)
	}

	witness := make(wire.TxWitness, 0, count)
	for i := uint64(0); i < count; i++ {
		item, err := wire.ReadVarBytes(
			r, witnessProtoVer, maxWitnessItemSize, "witness item",
		)
		if err != nil {
			str := fmt.Sprintf("unable to read witness item %d: %v", i,
				err)
			return nil, bip322Error(ErrMalformedWitness, str)
		}
		witness = append(witness, item)
	}

	if r.Len() != 0 {
		str := fmt.Sprintf("%d trailing bytes after witness stack", r.Len())
		return nil, bip322Error(ErrMalformedWitness, str)
	}

	return witness, nil
}

// SerializeWitness encodes a witness stack in the format ParseWitness
// reads.
func SerializeWitness(witness wire.TxWitness) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(witness.SerializeSize())

	err := wire.WriteVarInt(&buf, witnessProtoVer, uint64(len(witness)))
	if err != nil {
		return nil, err
	}
	for _, item := range witness {
		if err := wire.WriteVarBytes(&buf, witnessProtoVer, item); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// isStandardHashType reports whether the sighash type is one of the types a
// signature may carry explicitly.
func isStandardHashType(hashType txscript.SigHashType) bool {
	switch hashType &^ txscript.SigHashAnyOneCanPay {
	case txscript.SigHashAll, txscript.SigHashNone, txscript.SigHashSingle:
		return true
	}
	return false
}

// SplitECDSASig separates a witness ECDSA signature into its DER encoding
// and trailing sighash type.
func SplitECDSASig(sig []byte) ([]byte, txscript.SigHashType, error) {
	if len(sig) < 2 {
		str := fmt.Sprintf("ecdsa witness signature too short: %d bytes",
			len(sig))
		return nil, 0, bip322Error(ErrInvalidSigLength, str)
	}

	hashType := txscript.SigHashType(sig[len(sig)-1])
	if !isStandardHashType(hashType) {
		str := fmt.Sprintf("invalid sighash type 0x%02x", byte(hashType))
		return nil, 0, bip322Error(ErrInvalidSigHashType, str)
	}
	return sig[:len(sig)-1], hashType, nil
}

// SplitSchnorrSig separates a witness BIP-340 signature into the 64-byte
// signature and its sighash type.  A 64-byte signature uses
// SIGHASH_DEFAULT; a 65-byte one carries an explicit type that may not be
// SIGHASH_DEFAULT.
func SplitSchnorrSig(sig []byte) ([]byte, txscript.SigHashType, error) {
	switch len(sig) {
	case schnorrSigSize:
		return sig, txscript.SigHashDefault, nil

	case schnorrSigSize + 1:
		hashType := txscript.SigHashType(sig[schnorrSigSize])
		if hashType == txscript.SigHashDefault ||
			!isStandardHashType(hashType) {

			str := fmt.Sprintf("invalid taproot sighash type 0x%02x",
				byte(hashType))
			return nil, 0, bip322Error(ErrInvalidSigHashType, str)
		}
		return sig[:schnorrSigSize], hashType, nil
	}

	str := fmt.Sprintf("schnorr witness signature must be %d or %d bytes, "+
		"got %d", schnorrSigSize, schnorrSigSize+1, len(sig))
	return nil, 0, bip322Error(ErrInvalidSigLength, str)
}

// HasAnnex reports whether the last element of a witness with at least
// two elements is a taproot annex.
func HasAnnex(witness wire.TxWitness) bool {
	if len(witness) < 2 {
		return false
	}
	last := witness[len(witness)-1]
	return len(last) > 0 && last[0] == annexTag
}

// DERScalars returns the big-endian R and S values of a strictly encoded
// DER signature, left padded to 32 bytes.  The caller must have already
// validated the encoding, for example with ecdsa.ParseDERSignature, since
// secp256k1 signatures do not expose their scalars once parsed.
func DERScalars(der []byte) (r, s [32]byte, err error) {
	input := cryptobyte.String(der)
	var seq, rRaw, sRaw cryptobyte.String
	if !input.ReadASN1(&seq, asn1.SEQUENCE) || !input.Empty() {
		return r, s, bip322Error(ErrUnsupportedWitness, "malformed DER "+
			"signature")
	}
	if !seq.ReadASN1(&rRaw, asn1.INTEGER) {
		return r, s, bip322Error(ErrUnsupportedWitness, "malformed DER "+
			"signature R")
	}
	if !seq.ReadASN1(&sRaw, asn1.INTEGER) || !seq.Empty() {
		return r, s, bip322Error(ErrUnsupportedWitness, "malformed DER "+
			"signature S")
	}

	rBytes := bytes.TrimLeft(rRaw, "\x00")
	sBytes := bytes.TrimLeft(sRaw, "\x00")
	if len(rBytes) > 32 || len(sBytes) > 32 {
		return r, s, bip322Error(ErrUnsupportedWitness, "DER scalar "+
			"exceeds 32 bytes")
	}
	copy(r[32-len(rBytes):], rBytes)
	copy(s[32-len(sBytes):], sBytes)
	return r, s, nil
}
