// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bip322

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/msgverify/msghash"
)

// BuildToSpend creates the virtual to_spend transaction committing to the
// message and paying to pkScript:
//
//	version 0, locktime 0
//	input:  0000...0000:0xFFFFFFFF, sequence 0,
//	        scriptSig OP_0 PUSH32[BIP322MessageCommitment(message)]
//	output: value 0, pkScript
func BuildToSpend(message, pkScript []byte) (*wire.MsgTx, error) {
	sigScript, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(msghash.BIP322MessageCommitment(message)).
		Script()
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(0)
	prevOut := wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex)
	txIn := wire.NewTxIn(prevOut, sigScript, nil)
	txIn.Sequence = 0
	tx.AddTxIn(txIn)
	tx.AddTxOut(wire.NewTxOut(0, pkScript))

	return tx, nil
}

// BuildToSign creates the virtual to_sign transaction spending the sole
// output of toSpend with the given scriptSig and witness:
//
//	version 0, locktime 0
//	input:  to_spend:0, sequence 0
//	output: value 0, OP_RETURN
func BuildToSign(toSpend *wire.MsgTx, sigScript []byte,
	witness wire.TxWitness) *wire.MsgTx {

	toSpendHash := toSpend.TxHash()

	tx := wire.NewMsgTx(0)
	txIn := wire.NewTxIn(wire.NewOutPoint(&toSpendHash, 0), sigScript, witness)
	txIn.Sequence = 0
	tx.AddTxIn(txIn)
	tx.AddTxOut(wire.NewTxOut(0, []byte{txscript.OP_RETURN}))

	return tx
}

// WitnessV0SigHash returns the BIP-143 signature hash of the to_sign input
// spending pkScript, using scriptCode as the witness program script.  For
// P2WPKH scriptCode equals pkScript; for P2SH-P2WPKH it is the redeem
// script.
func WitnessV0SigHash(toSign *wire.MsgTx, pkScript, scriptCode []byte,
	hashType txscript.SigHashType) ([]byte, error) {

	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, 0)
	sigHashes := txscript.NewTxSigHashes(toSign, fetcher)
	return txscript.CalcWitnessSigHash(
		scriptCode, sigHashes, hashType, toSign, 0, 0,
	)
}

// TaprootSigHash returns the BIP-341 key path signature hash of the to_sign
// input spending the taproot pkScript.
func TaprootSigHash(toSign *wire.MsgTx, pkScript []byte,
	hashType txscript.SigHashType) ([]byte, error) {

	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, 0)
	sigHashes := txscript.NewTxSigHashes(toSign, fetcher)
	return txscript.CalcTaprootSignatureHash(
		sigHashes, hashType, toSign, 0, fetcher,
	)
}
