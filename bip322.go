// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/msgverify/addrmatch"
	"github.com/btcsuite/msgverify/bip322"
	"github.com/btcsuite/msgverify/msghash"
	"github.com/btcsuite/msgverify/sigrecover"
	"github.com/davecgh/go-spew/spew"
)

// bip322Applicable accepts any signature that is not a compact signature
// against the witness address types a single key can spend.  Legacy P2PKH
// addresses have no witness and are only provable with compact
// signatures.
func bip322Applicable(in *input) bool {
	if in.isCompact() {
		return false
	}
	switch in.addr.Template {
	case addrmatch.P2WPKH, addrmatch.P2SHP2WPKH, addrmatch.P2TR:
		return true
	}
	return false
}

func verifyBIP322(in *input) (verdict, []byte, error) {
	witness, err := bip322.ParseWitness(in.sig)
	if err != nil {
		return noMatch, nil, err
	}
	log.Tracef("BIP-322 witness for %s: %v", in.addr.Encoded,
		newLogClosure(func() string {
			return spew.Sdump(witness)
		}))

	pkScript, err := in.addr.PkScript()
	if err != nil {
		return noMatch, nil, err
	}
	toSpend, err := bip322.BuildToSpend(in.message, pkScript)
	if err != nil {
		return noMatch, nil, err
	}

	if in.addr.Template == addrmatch.P2TR {
		return verifyTaprootWitness(in, toSpend, pkScript, witness)
	}
	return verifyWitnessV0(in, toSpend, pkScript, witness)
}

// verifyWitnessV0 checks a [signature, pubkey] witness spending a P2WPKH
// output, or a P2SH-P2WPKH output when the target is a script hash.
func verifyWitnessV0(in *input, toSpend *wire.MsgTx, pkScript []byte,
	witness wire.TxWitness) (verdict, []byte, error) {

	if len(witness) != 2 {
		str := fmt.Sprintf("witness v0 key spend needs 2 items, got %d",
			len(witness))
		return noMatch, nil, bip322Unsupported(str)
	}
	sigBytes, pubKeyBytes := witness[0], witness[1]

	der, hashType, err := bip322.SplitECDSASig(sigBytes)
	if err != nil {
		return noMatch, nil, err
	}
	if _, err := ecdsa.ParseDERSignature(der); err != nil {
		return noMatch, nil, err
	}
	r, s, err := bip322.DERScalars(der)
	if err != nil {
		return noMatch, nil, err
	}
	if !sigrecover.IsLowS(s) {
		return noMatch, nil, verifyError(ErrInvalidSignature,
			"witness signature S is not low")
	}

	if len(pubKeyBytes) != btcec.PubKeyBytesLenCompressed {
		str := fmt.Sprintf("witness public key must be %d bytes "+
			"compressed, got %d", btcec.PubKeyBytesLenCompressed,
			len(pubKeyBytes))
		return noMatch, nil, verifyError(ErrInvalidSignature, str)
	}
	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return noMatch, nil, err
	}

	// The scriptCode of a P2WPKH spend is the witness program.  A
	// P2SH-P2WPKH spend additionally reveals it as the redeem script.
	scriptCode := pkScript
	var sigScript []byte
	if in.addr.Template == addrmatch.P2SHP2WPKH {
		scriptCode, err = addrmatch.WitnessPubKeyHashScript(
			msghash.Hash160(pubKeyBytes),
		)
		if err != nil {
			return noMatch, nil, err
		}
		sigScript, err = txscript.NewScriptBuilder().
			AddData(scriptCode).
			Script()
		if err != nil {
			return noMatch, nil, err
		}
	}

	toSign := bip322.BuildToSign(toSpend, sigScript, witness)
	sigHash, err := bip322.WitnessV0SigHash(
		toSign, pkScript, scriptCode, hashType,
	)
	if err != nil {
		return noMatch, nil, err
	}

	// The signature is valid exactly when one of the keys it recovers to
	// is the witness key.
	var signer *btcec.PublicKey
	for _, c := range sigrecover.RecoverAll(sigHash, r, s) {
		if c.Compressed && bytes.Equal(c.Serialize(), pubKeyBytes) {
			signer = c.PubKey
			break
		}
	}
	if signer == nil {
		return noMatch, nil, verifyError(ErrKeyMismatch, "signature does "+
			"not recover to the witness public key")
	}

	if _, ok := addrmatch.Match(pubKey, true, in.addr, in.addr.Template,
		in.addr.Template); !ok {

		str := fmt.Sprintf("witness public key does not control %s "+
			"address %s", in.addr.Template, in.addr.Encoded)
		return noMatch, nil, verifyError(ErrAddressMismatch, str)
	}

	return matched, pubKeyBytes, nil
}

// verifyTaprootWitness checks a single-signature key path spend of a P2TR
// output against the output key the address commits to.
func verifyTaprootWitness(in *input, toSpend *wire.MsgTx, pkScript []byte,
	witness wire.TxWitness) (verdict, []byte, error) {

	if bip322.HasAnnex(witness) {
		return noMatch, nil, bip322Unsupported("taproot witness with an " +
			"annex is not supported")
	}
	if len(witness) != 1 {
		str := fmt.Sprintf("taproot key path spend needs 1 item, got %d "+
			"(script path spends are not supported)", len(witness))
		return noMatch, nil, bip322Unsupported(str)
	}

	rawSig, hashType, err := bip322.SplitSchnorrSig(witness[0])
	if err != nil {
		return noMatch, nil, err
	}
	sig, err := schnorr.ParseSignature(rawSig)
	if err != nil {
		return noMatch, nil, err
	}
	outputKey, err := schnorr.ParsePubKey(in.addr.Program)
	if err != nil {
		return noMatch, nil, err
	}

	toSign := bip322.BuildToSign(toSpend, nil, witness)
	sigHash, err := bip322.TaprootSigHash(toSign, pkScript, hashType)
	if err != nil {
		return noMatch, nil, err
	}
	if !sig.Verify(sigHash, outputKey) {
		return noMatch, nil, verifyError(ErrInvalidSignature, "schnorr "+
			"signature does not verify against the output key")
	}

	return matched, schnorr.SerializePubKey(outputKey), nil
}

// bip322Unsupported wraps a witness shape this package cannot verify.
func bip322Unsupported(desc string) error {
	return bip322.Error{Err: bip322.ErrUnsupportedWitness, Description: desc}
}
