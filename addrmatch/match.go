// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrmatch

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/msgverify/msghash"
)

// WitnessPubKeyHashScript returns the version 0 witness program script
// OP_0 <20-byte hash>.  It is the redeem script of a P2SH-P2WPKH address and
// the output script of a P2WPKH address.
func WitnessPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(pubKeyHash).
		Script()
}

// Derive returns the address of the public key under template t for the
// given network.  Segwit templates require compressed keys, so compressed
// only selects the serialization used for P2PKH.  For P2TR the key is
// treated as a BIP-86 internal key and the key-path-only output key is
// derived from it.
func Derive(pubKey *btcec.PublicKey, compressed bool, t Template,
	params *chaincfg.Params) (btcutil.Address, error) {

	if pubKey == nil || !pubKey.IsOnCurve() {
		return nil, addressError(ErrInvalidPubKey, "public key is not on "+
			"the curve")
	}

	serialized := pubKey.SerializeUncompressed()
	if compressed || t.IsSegwit() {
		serialized = pubKey.SerializeCompressed()
	}
	keyHash := msghash.Hash160(serialized)

	switch t {
	case P2PKH:
		return btcutil.NewAddressPubKeyHash(keyHash, params)

	case P2SHP2WPKH:
		redeemScript, err := WitnessPubKeyHashScript(keyHash)
		if err != nil {
			return nil, err
		}
		return btcutil.NewAddressScriptHashFromHash(
			msghash.Hash160(redeemScript), params,
		)

	case P2WPKH:
		return btcutil.NewAddressWitnessPubKeyHash(keyHash, params)

	case P2TR:
		outputKey := txscript.ComputeTaprootKeyNoScript(pubKey)
		return btcutil.NewAddressTaproot(
			schnorr.SerializePubKey(outputKey), params,
		)
	}

	str := fmt.Sprintf("cannot derive address for template %v", t)
	return nil, addressError(ErrUnsupportedTemplate, str)
}

// matchOrder returns the templates to try with the hint first, followed by
// the remaining templates in their given order.
func matchOrder(hint Template, templates []Template) []Template {
	order := make([]Template, 0, len(templates))
	for _, t := range templates {
		if t == hint {
			order = append(order, t)
			break
		}
	}
	for _, t := range templates {
		if t != hint {
			order = append(order, t)
		}
	}
	return order
}

// Match reports whether the public key controls the target address under
// any of the passed templates, and if so which one.  The hinted template is
// tried first, but a wrong hint never causes a mismatch on its own since
// several wallets emit a header hinting the wrong template.  Passing no
// templates tries AllTemplates.
//
// A P2TR target matches when its witness program equals either the x-only
// form of the key itself or the BIP-86 output key derived from it.
func Match(pubKey *btcec.PublicKey, compressed bool, target *Address,
	hint Template, templates ...Template) (Template, bool) {

	if pubKey == nil || target == nil {
		return 0, false
	}
	if len(templates) == 0 {
		templates = AllTemplates
	}

	for _, t := range matchOrder(hint, templates) {
		// An address of one template can never encode the same string as
		// an address of another, so only the target's own template can
		// succeed.
		if t != target.Template {
			continue
		}

		if t == P2TR && bytes.Equal(schnorr.SerializePubKey(pubKey),
			target.Program) {

			return t, true
		}

		derived, err := Derive(pubKey, compressed, t, target.Params)
		if err != nil {
			continue
		}
		if bytes.Equal(derived.ScriptAddress(), target.Program) {
			return t, true
		}
	}

	return 0, false
}
