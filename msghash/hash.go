// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msghash

import (
	"bytes"
	"crypto/sha256"
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/crypto/ripemd160"
)

const (
	// MessageMagic is the prefix every legacy and BIP-137 signed message
	// is framed with before hashing.
	MessageMagic = "Bitcoin Signed Message:\n"

	// BIP322Tag is the BIP-340 tag used for the BIP-322 message
	// commitment.
	BIP322Tag = "BIP0322-signed-message"

	// varIntProtoVer is the protocol version used when serializing the
	// CompactSize length prefixes.  The encoding does not vary by
	// version.
	varIntProtoVer uint32 = 0
)

// Calculate the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return calcHash(calcHash(buf, sha256.New()), ripemd160.New())
}

// SerializeMagicMessage returns the preimage that legacy and BIP-137
// signatures are computed over:
//
//	varint(len(magic)) || magic || varint(len(message)) || message
func SerializeMagicMessage(message []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(wire.VarIntSerializeSize(uint64(len(MessageMagic))) +
		len(MessageMagic) + wire.VarIntSerializeSize(uint64(len(message))) +
		len(message))

	// Writes to a bytes.Buffer can only fail by panicking on allocation
	// failure, so the errors are not checked.
	_ = wire.WriteVarString(&buf, varIntProtoVer, MessageMagic)
	_ = wire.WriteVarBytes(&buf, varIntProtoVer, message)
	return buf.Bytes()
}

// LegacyMessageDigest returns the 32-byte double SHA-256 digest of the
// magic-prefixed message.  This is the value both legacy and BIP-137
// signatures sign.
func LegacyMessageDigest(message []byte) []byte {
	return chainhash.DoubleHashB(SerializeMagicMessage(message))
}

// BIP322MessageCommitment returns the BIP-322 message hash, which is
// SHA256(SHA256(tag) || SHA256(tag) || message) with tag BIP322Tag.
func BIP322MessageCommitment(message []byte) []byte {
	h := chainhash.TaggedHash([]byte(BIP322Tag), message)
	return h[:]
}
