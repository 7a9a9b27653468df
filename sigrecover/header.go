// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigrecover

import "fmt"

// AddressHint is the address template a BIP-137 header byte claims the
// signing key is used with.
type AddressHint uint8

const (
	// HintP2PKH is signalled by header bytes 27 through 34.
	HintP2PKH AddressHint = iota

	// HintP2SHP2WPKH is signalled by header bytes 35 through 38.
	HintP2SHP2WPKH

	// HintP2WPKH is signalled by header bytes 39 through 42.
	HintP2WPKH
)

// Map of AddressHint values back to their constant names for pretty
// printing.
var hintStrings = map[AddressHint]string{
	HintP2PKH:      "p2pkh",
	HintP2SHP2WPKH: "p2sh-p2wpkh",
	HintP2WPKH:     "p2wpkh",
}

// String returns the AddressHint as a human-readable name.
func (h AddressHint) String() string {
	if s := hintStrings[h]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown AddressHint (%d)", uint8(h))
}

const (
	// compactSigMagicOffset is a value used when creating the compact
	// signature recovery code inherited from Bitcoin and has no meaning,
	// but has been retained for compatibility.
	compactSigMagicOffset = 27

	// compactSigCompPubKey is a value used when creating the compact
	// signature recovery code to indicate the original public key was
	// compressed.
	compactSigCompPubKey = 4

	// Header byte ranges.  Each range holds four recovery ids.
	headerUncompressedP2PKH = compactSigMagicOffset
	headerCompressedP2PKH   = headerUncompressedP2PKH + 4
	headerP2SHP2WPKH        = headerCompressedP2PKH + 4
	headerP2WPKH            = headerP2SHP2WPKH + 4
	headerMax               = headerP2WPKH + 3
)

// Header is the decoded form of the first byte of a 65-byte compact
// signature.
type Header struct {
	// Byte is the raw header byte.
	Byte byte

	// RecoveryID selects which of the candidate points R the signature's
	// r value corresponds to.
	RecoveryID byte

	// Compressed reports whether the signing key is serialized in compressed
	// form for address derivation.
	Compressed bool

	// Hint is the address template the signer claims to have used.
	Hint AddressHint
}

// IsHeader returns whether b falls in any known header byte range.
func IsHeader(b byte) bool {
	return b >= headerUncompressedP2PKH && b <= headerMax
}

// DecodeHeader maps a header byte to its recovery id, compression flag and
// address hint.  The mapping is total over [27, 42]; any other byte returns
// ErrInvalidHeader.
func DecodeHeader(b byte) (Header, error) {
	h := Header{Byte: b}
	switch {
	case b >= headerUncompressedP2PKH && b < headerCompressedP2PKH:
		h.RecoveryID = b - headerUncompressedP2PKH
		h.Hint = HintP2PKH

	case b >= headerCompressedP2PKH && b < headerP2SHP2WPKH:
		h.RecoveryID = b - headerCompressedP2PKH
		h.Compressed = true
		h.Hint = HintP2PKH

	case b >= headerP2SHP2WPKH && b < headerP2WPKH:
		h.RecoveryID = b - headerP2SHP2WPKH
		h.Compressed = true
		h.Hint = HintP2SHP2WPKH

	case b >= headerP2WPKH && b <= headerMax:
		h.RecoveryID = b - headerP2WPKH
		h.Compressed = true
		h.Hint = HintP2WPKH

	default:
		str := fmt.Sprintf("header byte %d is outside every known range "+
			"[%d, %d]", b, headerUncompressedP2PKH, headerMax)
		return Header{}, signatureError(ErrInvalidHeader, str)
	}

	return h, nil
}

// IsUncompressedLegacy reports whether the header is in the original
// Bitcoin-Qt range for uncompressed keys, 27 through 30.
func (h Header) IsUncompressedLegacy() bool {
	return h.Byte >= headerUncompressedP2PKH && h.Byte < headerCompressedP2PKH
}

// recoveryCode returns the header byte in the 27 through 34 range that
// the compact recovery routine understands.
func recoveryCode(id byte, compressed bool) byte {
	code := compactSigMagicOffset + id
	if compressed {
		code += compactSigCompPubKey
	}
	return code
}
