// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrmatch

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Template identifies one of the address templates a signing key can be
// proven against.
type Template uint8

const (
	// P2PKH is a base58check pay-to-pubkey-hash address.
	P2PKH Template = iota

	// P2SHP2WPKH is a base58check pay-to-script-hash address whose redeem
	// script is a version 0 witness pubkey hash program.
	P2SHP2WPKH

	// P2WPKH is a bech32 version 0 witness pubkey hash address.
	P2WPKH

	// P2TR is a bech32m version 1 taproot address.
	P2TR
)

// Map of Template values back to their constant names for pretty printing.
var templateStrings = map[Template]string{
	P2PKH:      "p2pkh",
	P2SHP2WPKH: "p2sh-p2wpkh",
	P2WPKH:     "p2wpkh",
	P2TR:       "p2tr",
}

// String returns the Template as a human-readable name.
func (t Template) String() string {
	if s := templateStrings[t]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown Template (%d)", uint8(t))
}

// IsSegwit reports whether addresses of the template commit to a witness
// program and therefore require compressed keys.
func (t Template) IsSegwit() bool {
	return t == P2SHP2WPKH || t == P2WPKH || t == P2TR
}

var (
	// AllTemplates lists every supported template in matching order.
	AllTemplates = []Template{P2PKH, P2SHP2WPKH, P2WPKH, P2TR}

	// PreTaprootTemplates lists the templates a BIP-137 signature can
	// prove.
	PreTaprootTemplates = []Template{P2PKH, P2SHP2WPKH, P2WPKH}

	// DefaultNetworks are the networks addresses are decoded against when
	// the caller does not restrict them.  Testnet3, regtest and signet
	// share base58 versions, so a base58 test address is reported against
	// the earliest of them.
	DefaultNetworks = []*chaincfg.Params{
		&chaincfg.MainNetParams,
		&chaincfg.TestNet3Params,
		&chaincfg.RegressionNetParams,
		&chaincfg.SigNetParams,
	}
)

// Address is a decoded target address.
type Address struct {
	// Encoded is the address string exactly as supplied by the caller.
	Encoded string

	// Template is the address template.
	Template Template

	// Params is the network the address decoded for.
	Params *chaincfg.Params

	// Program is the payload the address commits to: the pubkey hash for
	// P2PKH, the script hash for P2SH and the witness program for segwit
	// addresses.
	Program []byte

	addr btcutil.Address
}

// PkScript returns the output script paying to the address.
func (a *Address) PkScript() ([]byte, error) {
	return txscript.PayToAddrScript(a.addr)
}

// String returns the canonical encoding of the address.
func (a *Address) String() string {
	return a.addr.EncodeAddress()
}

// Decode parses an address string against each of the passed networks in
// turn, or DefaultNetworks when none are passed.  A malformed address, or
// one that belongs to none of the networks, returns ErrMalformedAddress.  A
// well-formed address outside the four supported templates returns
// ErrUnsupportedAddress.
//
// A nil network is a programming error and panics.
func Decode(encoded string, nets ...*chaincfg.Params) (*Address, error) {
	if len(nets) == 0 {
		nets = DefaultNetworks
	}

	var lastErr error
	for _, net := range nets {
		if net == nil {
			panic("addrmatch: nil network params")
		}

		addr, err := btcutil.DecodeAddress(encoded, net)
		if err != nil {
			lastErr = err
			continue
		}
		if !addr.IsForNet(net) {
			lastErr = fmt.Errorf("address is not for network %s", net.Name)
			continue
		}

		a := &Address{
			Encoded: encoded,
			Params:  net,
			addr:    addr,
		}
		switch addr := addr.(type) {
		case *btcutil.AddressPubKeyHash:
			a.Template = P2PKH
			a.Program = addr.ScriptAddress()

		case *btcutil.AddressScriptHash:
			a.Template = P2SHP2WPKH
			a.Program = addr.ScriptAddress()

		case *btcutil.AddressWitnessPubKeyHash:
			a.Template = P2WPKH
			a.Program = addr.WitnessProgram()

		case *btcutil.AddressTaproot:
			a.Template = P2TR
			a.Program = addr.WitnessProgram()

		default:
			str := fmt.Sprintf("address %q of type %T is not supported",
				encoded, addr)
			return nil, addressError(ErrUnsupportedAddress, str)
		}

		return a, nil
	}

	names := make([]string, 0, len(nets))
	for _, net := range nets {
		names = append(names, net.Name)
	}
	str := fmt.Sprintf("address %q does not decode for networks [%s]: %v",
		encoded, strings.Join(names, ", "), lastErr)
	return nil, addressError(ErrMalformedAddress, str)
}
