// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bip322

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

const (
	// testPubKey is the compressed key behind testAddress.
	testPubKey = "02c7f12003196442943d8588e01aee840423cc54fc1521526a3b85c2b0cbd58872"

	// testTaprootAddress is the P2TR address used by the BIP-322 test
	// vectors.
	testTaprootAddress = "bc1ppv609nr0vr25u07u95waq5lucwfm6tde4nydujnu8npg4q75mr5sxq8lt3"
)

// hexToBytes converts the passed hex string into bytes and will panic if
// there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected.  It will only (and must only)
// be called with hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// b64ToBytes is the base64 counterpart of hexToBytes.
func b64ToBytes(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic("invalid base64 in source file: " + s)
	}
	return b
}

// segwitVectors are the P2WPKH signatures of the BIP-322 test vectors for
// testAddress.
var segwitVectors = []struct {
	message string
	sig     string
}{{
	message: "",
	sig:     "AkcwRAIgM2gBAQqvZX15ZiysmKmQpDrG83avLIT492QBzLnQIxYCIBaTpOaD20qRlEylyxFSeEA2ba9YOixpX8z46TSDtS40ASECx/EgAxlkQpQ9hYjgGu6EBCPMVPwVIVJqO4XCsMvViHI=",
}, {
	message: "",
	sig:     "AkgwRQIhAPkJ1Q4oYS0htvyuSFHLxRQpFAY56b70UvE7Dxazen0ZAiAtZfFz1S6T6I23MWI2lK/pcNTWncuyL8UL+oMdydVgzAEhAsfxIAMZZEKUPYWI4BruhAQjzFT8FSFSajuFwrDL1Yhy",
}, {
	message: "Hello World",
	sig:     "AkcwRAIgZRfIY3p7/DoVTty6YZbWS71bc5Vct9p9Fia83eRmw2QCICK/ENGfwLtptFluMGs2KsqoNSk89pO7F29zJLUx9a/sASECx/EgAxlkQpQ9hYjgGu6EBCPMVPwVIVJqO4XCsMvViHI=",
}, {
	message: "Hello World",
	sig:     "AkgwRQIhAOzyynlqt93lOKJr+wmmxIens//zPzl9tqIOua93wO6MAiBi5n5EyAcPScOjf1lAqIUIQtr3zKNeavYabHyR8eGhowEhAsfxIAMZZEKUPYWI4BruhAQjzFT8FSFSajuFwrDL1Yhy",
}}

// TestSegwitVectors decodes each P2WPKH vector and checks the signature
// against the BIP-143 hash of its to_sign transaction.
func TestSegwitVectors(t *testing.T) {
	t.Parallel()

	pkScript := pkScriptFor(t, testAddress)
	wantKey := hexToBytes(testPubKey)

	for i, test := range segwitVectors {
		raw := b64ToBytes(test.sig)
		witness, err := ParseWitness(raw)
		require.NoError(t, err, "vector %d", i)
		require.Len(t, witness, 2, "vector %d: %v", i, spew.Sdump(witness))
		require.Equal(t, wantKey, witness[1])

		// Encoding the parsed stack must reproduce the signature.
		reserialized, err := SerializeWitness(witness)
		require.NoError(t, err)
		require.Equal(t, raw, reserialized)

		der, hashType, err := SplitECDSASig(witness[0])
		require.NoError(t, err)
		require.Equal(t, txscript.SigHashAll, hashType)

		sig, err := ecdsa.ParseDERSignature(der)
		require.NoError(t, err)
		pubKey, err := btcec.ParsePubKey(witness[1])
		require.NoError(t, err)

		toSpend, err := BuildToSpend([]byte(test.message), pkScript)
		require.NoError(t, err)
		toSign := BuildToSign(toSpend, nil, witness)
		sigHash, err := WitnessV0SigHash(toSign, pkScript, pkScript, hashType)
		require.NoError(t, err)
		require.True(t, sig.Verify(sigHash, pubKey), "vector %d", i)

		// The same witness must not verify for the other message.
		other, err := BuildToSpend([]byte(test.message+"!"), pkScript)
		require.NoError(t, err)
		otherHash, err := WitnessV0SigHash(
			BuildToSign(other, nil, witness), pkScript, pkScript, hashType,
		)
		require.NoError(t, err)
		require.False(t, sig.Verify(otherHash, pubKey), "vector %d", i)
	}
}

// TestTaprootVector decodes the P2TR vector and checks it against the
// BIP-341 hash of its to_sign transaction.
func TestTaprootVector(t *testing.T) {
	t.Parallel()

	const sig = "AUHd69PrJQEv+oKTfZ8l+WROBHuy9HKrbFCJu7U1iK2iiEy1vMU5EfMtjc+VSHM7aU0SDbak5IUZRVno2P5mjSafAQ=="

	pkScript := pkScriptFor(t, testTaprootAddress)
	witness, err := ParseWitness(b64ToBytes(sig))
	require.NoError(t, err)
	require.Len(t, witness, 1)
	require.False(t, HasAnnex(witness))

	rawSig, hashType, err := SplitSchnorrSig(witness[0])
	require.NoError(t, err)
	require.Equal(t, txscript.SigHashAll, hashType)

	schnorrSig, err := schnorr.ParseSignature(rawSig)
	require.NoError(t, err)
	outputKey, err := schnorr.ParsePubKey(pkScript[2:])
	require.NoError(t, err)

	toSpend, err := BuildToSpend([]byte("Hello World"), pkScript)
	require.NoError(t, err)
	toSign := BuildToSign(toSpend, nil, witness)
	sigHash, err := TaprootSigHash(toSign, pkScript, hashType)
	require.NoError(t, err)
	require.True(t, schnorrSig.Verify(sigHash, outputKey))

	sigHash, err = TaprootSigHash(toSign, pkScript, txscript.SigHashDefault)
	require.NoError(t, err)
	require.False(t, schnorrSig.Verify(sigHash, outputKey))
}

// TestParseWitnessErrors ensures malformed stacks are rejected with the
// expected error kind.
func TestParseWitnessErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		kind ErrorKind
	}{{
		name: "empty input",
		raw:  "",
		kind: ErrMalformedWitness,
	}, {
		name: "zero items",
		raw:  "00",
		kind: ErrMalformedWitness,
	}, {
		name: "too many items",
		raw:  "65",
		kind: ErrMalformedWitness,
	}, {
		name: "truncated item length",
		raw:  "01fd",
		kind: ErrMalformedWitness,
	}, {
		name: "truncated item",
		raw:  "0102aa",
		kind: ErrMalformedWitness,
	}, {
		name: "missing second item",
		raw:  "0201aa",
		kind: ErrMalformedWitness,
	}, {
		name: "trailing bytes",
		raw:  "0101aabb",
		kind: ErrMalformedWitness,
	}, {
		name: "oversized item",
		raw:  "01fe01000100",
		kind: ErrMalformedWitness,
	}}

	for _, test := range tests {
		_, err := ParseWitness(hexToBytes(test.raw))
		require.Error(t, err, test.name)
		require.True(t, errors.Is(err, test.kind), "%s: got %v",
			test.name, err)
	}
}

// TestParseWitnessEmptyItems ensures zero-length items are preserved.
func TestParseWitnessEmptyItems(t *testing.T) {
	t.Parallel()

	witness, err := ParseWitness(hexToBytes("030001aa00"))
	require.NoError(t, err)
	require.Equal(t, wire.TxWitness{{}, {0xaa}, {}}, witness)
}

// TestSplitECDSASig exercises the sighash type validation of ECDSA
// witness signatures.
func TestSplitECDSASig(t *testing.T) {
	t.Parallel()

	der := []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01}
	tests := []struct {
		hashType byte
		kind     error
	}{
		{0x01, nil},
		{0x02, nil},
		{0x03, nil},
		{0x81, nil},
		{0x82, nil},
		{0x83, nil},
		{0x00, ErrInvalidSigHashType},
		{0x04, ErrInvalidSigHashType},
		{0x80, ErrInvalidSigHashType},
		{0x41, ErrInvalidSigHashType},
	}

	for _, test := range tests {
		sig := append(append([]byte{}, der...), test.hashType)
		gotDER, hashType, err := SplitECDSASig(sig)
		if test.kind != nil {
			require.True(t, errors.Is(err, test.kind),
				"type 0x%02x: got %v", test.hashType, err)
			continue
		}
		require.NoError(t, err, "type 0x%02x", test.hashType)
		require.Equal(t, der, gotDER)
		require.EqualValues(t, test.hashType, hashType)
	}

	_, _, err := SplitECDSASig([]byte{0x01})
	require.True(t, errors.Is(err, ErrInvalidSigLength))
}

// TestSplitSchnorrSig exercises the length and sighash type rules of
// taproot key path signatures.
func TestSplitSchnorrSig(t *testing.T) {
	t.Parallel()

	sig64 := make([]byte, 64)
	got, hashType, err := SplitSchnorrSig(sig64)
	require.NoError(t, err)
	require.Equal(t, sig64, got)
	require.Equal(t, txscript.SigHashDefault, hashType)

	got, hashType, err = SplitSchnorrSig(append(sig64, 0x83))
	require.NoError(t, err)
	require.Len(t, got, 64)
	require.Equal(t, txscript.SigHashSingle|txscript.SigHashAnyOneCanPay,
		hashType)

	// An explicit SIGHASH_DEFAULT byte is invalid.
	_, _, err = SplitSchnorrSig(append(sig64, 0x00))
	require.True(t, errors.Is(err, ErrInvalidSigHashType))

	_, _, err = SplitSchnorrSig(append(sig64, 0x04))
	require.True(t, errors.Is(err, ErrInvalidSigHashType))

	for _, size := range []int{0, 63, 66, 71} {
		_, _, err := SplitSchnorrSig(make([]byte, size))
		require.True(t, errors.Is(err, ErrInvalidSigLength), "size %d",
			size)
	}
}

// TestHasAnnex ensures only a trailing 0x50-prefixed element of a
// multi-element stack is treated as an annex.
func TestHasAnnex(t *testing.T) {
	t.Parallel()

	require.False(t, HasAnnex(nil))
	require.False(t, HasAnnex(wire.TxWitness{{annexTag}}))
	require.False(t, HasAnnex(wire.TxWitness{{0x01}, {}}))
	require.False(t, HasAnnex(wire.TxWitness{{0x01}, {0x51}}))
	require.True(t, HasAnnex(wire.TxWitness{{0x01}, {annexTag, 0x00}}))
}

// TestDERScalars ensures R and S are extracted and left padded.
func TestDERScalars(t *testing.T) {
	t.Parallel()

	// The second segwit vector has a 33-byte R with a leading zero.
	witness, err := ParseWitness(b64ToBytes(segwitVectors[1].sig))
	require.NoError(t, err)
	der, _, err := SplitECDSASig(witness[0])
	require.NoError(t, err)

	r, s, err := DERScalars(der)
	require.NoError(t, err)
	require.Equal(t, hexToBytes(
		"f909d50e28612d21b6fcae4851cbc51429140639e9bef452f13b0f16b37a7d19",
	), r[:])
	require.EqualValues(t, 0x2d, s[0])

	// Short scalars are left padded with zeros.
	r, s, err = DERScalars([]byte{0x30, 0x06, 0x02, 0x01, 0x07, 0x02, 0x01, 0x09})
	require.NoError(t, err)
	require.EqualValues(t, 0x07, r[31])
	require.EqualValues(t, 0x09, s[31])
	require.Equal(t, make([]byte, 31), r[:31])

	// A 34-byte R is well formed DER but not a secp256k1 scalar.
	oversizedR := []byte{0x30, 0x27, 0x02, 0x22, 0x01}
	oversizedR = append(oversizedR, make([]byte, 33)...)
	oversizedR = append(oversizedR, 0x02, 0x01, 0x09)

	malformed := [][]byte{
		nil,
		{0x31, 0x06, 0x02, 0x01, 0x07, 0x02, 0x01, 0x09},
		{0x30, 0x06, 0x02, 0x09, 0x07, 0x02, 0x01, 0x09},
		{0x30, 0x06, 0x02, 0x01, 0x07, 0x02, 0x02, 0x09},
		{0x30, 0x06, 0x02, 0x01, 0x07, 0x02, 0x01, 0x09, 0x00},
		{0x30, 0x07, 0x02, 0x01, 0x07, 0x02, 0x01, 0x09, 0x00},
		oversizedR,
	}
	for i, der := range malformed {
		_, _, err := DERScalars(der)
		require.True(t, errors.Is(err, ErrUnsupportedWitness),
			"case %d: got %v", i, err)
	}
}
