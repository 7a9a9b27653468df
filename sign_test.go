// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

import (
	"encoding/base64"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/msgverify/addrmatch"
	"github.com/btcsuite/msgverify/bip322"
	"github.com/btcsuite/msgverify/msghash"
	"github.com/stretchr/testify/require"
)

// Header offsets from the compressed P2PKH range to the segwit ranges.
const (
	headerOffsetP2SHP2WPKH = 4
	headerOffsetP2WPKH     = 8
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

// testKey returns the private key with the passed hex scalar.
func testKey(scalar string) *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(hexToBytes(scalar))
	return priv
}

// randomKey returns a private key drawn from rng.
func randomKey(rng *rand.Rand) *btcec.PrivateKey {
	var scalar [32]byte
	for {
		rng.Read(scalar[:])
		priv, _ := btcec.PrivKeyFromBytes(scalar[:])
		if priv.Key.IsZero() {
			continue
		}
		return priv
	}
}

// addressFor returns the mainnet address of priv under template t.
func addressFor(t *testing.T, priv *btcec.PrivateKey, compressed bool,
	tmpl addrmatch.Template) *addrmatch.Address {

	t.Helper()

	derived, err := addrmatch.Derive(priv.PubKey(), compressed, tmpl,
		&chaincfg.MainNetParams)
	require.NoError(t, err)
	addr, err := addrmatch.Decode(derived.EncodeAddress())
	require.NoError(t, err)
	return addr
}

// signCompact produces a base64 compact signature over the legacy message
// digest.  The header byte is moved up by offset to select a segwit hint.
func signCompact(t *testing.T, priv *btcec.PrivateKey, message string,
	compressed bool, offset byte) string {

	t.Helper()

	digest := msghash.LegacyMessageDigest([]byte(message))
	sig := ecdsa.SignCompact(priv, digest, compressed)
	sig[0] += offset
	return base64.StdEncoding.EncodeToString(sig)
}

// signBIP322 produces a base64 BIP-322 simple signature of message for
// addr, which must be a P2WPKH, P2SH-P2WPKH or P2TR address of priv.
func signBIP322(t *testing.T, priv *btcec.PrivateKey, message string,
	addr *addrmatch.Address, hashType txscript.SigHashType) string {

	t.Helper()

	pkScript, err := addr.PkScript()
	require.NoError(t, err)
	toSpend, err := bip322.BuildToSpend([]byte(message), pkScript)
	require.NoError(t, err)

	pubKey := priv.PubKey().SerializeCompressed()
	scriptCode := pkScript
	var sigScript []byte
	if addr.Template == addrmatch.P2SHP2WPKH {
		scriptCode, err = addrmatch.WitnessPubKeyHashScript(
			msghash.Hash160(pubKey),
		)
		require.NoError(t, err)
		sigScript, err = txscript.NewScriptBuilder().AddData(scriptCode).
			Script()
		require.NoError(t, err)
	}

	toSign := bip322.BuildToSign(toSpend, sigScript, nil)
	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, 0)
	sigHashes := txscript.NewTxSigHashes(toSign, fetcher)

	var witness [][]byte
	if addr.Template == addrmatch.P2TR {
		sig, err := txscript.RawTxInTaprootSignature(
			toSign, sigHashes, 0, 0, pkScript, nil, hashType, priv,
		)
		require.NoError(t, err)
		witness = [][]byte{sig}
	} else {
		sig, err := txscript.RawTxInWitnessSignature(
			toSign, sigHashes, 0, 0, scriptCode, hashType, priv,
		)
		require.NoError(t, err)
		witness = [][]byte{sig, pubKey}
	}

	raw, err := bip322.SerializeWitness(witness)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}
