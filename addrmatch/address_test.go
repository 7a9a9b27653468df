// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrmatch

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
)

// hexToBytes converts the passed hex string into bytes and will panic if
// there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// TestDecode exercises template detection, network detection and the two
// decode error kinds.
func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		addr     string
		nets     []*chaincfg.Params
		template Template
		net      *chaincfg.Params
		program  string
		err      error
	}{{
		name:     "mainnet p2pkh",
		addr:     "19QWXpMXeLkoEKEJv2xo9rn8wkPCyxACSX",
		template: P2PKH,
		net:      &chaincfg.MainNetParams,
	}, {
		name:     "mainnet p2sh",
		addr:     "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy",
		template: P2SHP2WPKH,
		net:      &chaincfg.MainNetParams,
	}, {
		name:     "mainnet p2wpkh",
		addr:     "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		template: P2WPKH,
		net:      &chaincfg.MainNetParams,
		program:  "751e76e8199196d454941c45d1b3a323f1433bd6",
	}, {
		name:     "mainnet p2wpkh upper case",
		addr:     "BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4",
		template: P2WPKH,
		net:      &chaincfg.MainNetParams,
		program:  "751e76e8199196d454941c45d1b3a323f1433bd6",
	}, {
		name:     "mainnet p2tr",
		addr:     "bc1p5cyxnuxmeuwuvkwfem96lqzszd02n6xdcjrs20cac6yqjjwudpxqkedrcr",
		template: P2TR,
		net:      &chaincfg.MainNetParams,
	}, {
		name:     "testnet p2wpkh",
		addr:     "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx",
		template: P2WPKH,
		net:      &chaincfg.TestNet3Params,
		program:  "751e76e8199196d454941c45d1b3a323f1433bd6",
	}, {
		name: "bad base58 checksum",
		addr: "19QWXpMXeLkoEKEJv2xo9rn8wkPCyxACSY",
		err:  ErrMalformedAddress,
	}, {
		name: "bad bech32 checksum",
		addr: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t5",
		err:  ErrMalformedAddress,
	}, {
		name: "empty",
		addr: "",
		err:  ErrMalformedAddress,
	}, {
		name: "mainnet address restricted to testnet",
		addr: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		nets: []*chaincfg.Params{&chaincfg.TestNet3Params},
		err:  ErrMalformedAddress,
	}, {
		name: "p2wsh unsupported",
		addr: "bc1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3qccfmv3",
		err:  ErrUnsupportedAddress,
	}}

	for _, test := range tests {
		a, err := Decode(test.addr, test.nets...)
		if test.err != nil {
			require.Truef(t, errors.Is(err, test.err), "%s: got %v",
				test.name, err)
			continue
		}

		require.NoError(t, err, test.name)
		require.Equal(t, test.addr, a.Encoded)
		require.Equal(t, test.template, a.Template, test.name)
		require.Equal(t, test.net.Name, a.Params.Name, test.name)
		if test.program != "" {
			require.Equal(t, test.program, hex.EncodeToString(a.Program))
		}

		pkScript, err := a.PkScript()
		require.NoError(t, err)
		require.NotEmpty(t, pkScript)
	}
}

// TestDecodeNilNetwork ensures a nil network is treated as a programming
// error.
func TestDecodeNilNetwork(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_, _ = Decode("19QWXpMXeLkoEKEJv2xo9rn8wkPCyxACSX", nil)
	})
}

// TestTemplateStringer tests the stringized output for the Template type.
func TestTemplateStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Template
		want string
	}{
		{P2PKH, "p2pkh"},
		{P2SHP2WPKH, "p2sh-p2wpkh"},
		{P2WPKH, "p2wpkh"},
		{P2TR, "p2tr"},
		{0xff, "Unknown Template (255)"},
	}

	for i, test := range tests {
		require.Equal(t, test.want, test.in.String(), "#%d", i)
	}
}

// TestTemplateIsSegwit ensures only P2PKH commits to a key of either
// serialization.
func TestTemplateIsSegwit(t *testing.T) {
	t.Parallel()

	require.False(t, P2PKH.IsSegwit())
	require.True(t, P2SHP2WPKH.IsSegwit())
	require.True(t, P2WPKH.IsSegwit())
	require.True(t, P2TR.IsSegwit())
}
