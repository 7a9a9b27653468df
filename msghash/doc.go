// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package msghash builds the exact digests that Bitcoin message signing
schemes commit to.

Two framings are provided.  The first is the one used by Bitcoin-Qt's
original "signmessage" RPC and inherited by BIP-137: the message is
prefixed with the magic string "Bitcoin Signed Message:\n", both parts are
length-prefixed with a CompactSize varint, and the result is hashed with
double SHA-256.  The second is the BIP-322 message commitment, a BIP-340
tagged hash of the raw message bytes using the tag
"BIP0322-signed-message".

The message bytes are never normalized.  Callers must pass the exact bytes
that were signed.
*/
package msghash
