// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package msgverify verifies Bitcoin signed messages produced under any of the
signing conventions wallets have used over the years.

A signed message is a triple of the exact message text, a signature encoded
as base64 or hex, and the address of the key that is claimed to have
produced the signature.  The following schemes are understood, and they are
tried in this order for every verification:

	Legacy         65-byte compact signature with an uncompressed key
	               header (27-30) proving a P2PKH address, as produced by
	               the original Bitcoin-Qt client.
	BIP-137        65-byte compact signature with any header in 27-42
	               proving a P2PKH, P2SH-P2WPKH or P2WPKH address.
	BIP-322        "simple" signature: a serialized witness stack that
	               spends a virtual output paying to a P2WPKH, P2SH-P2WPKH
	               or P2TR address.
	Loose BIP-137  65-byte compact signature proving a P2TR address.  This
	               is not defined by any standard, but is produced by some
	               hardware wallets when signing with a taproot key.

The first scheme that succeeds decides the result, so a caller can always
tell from Result.Method which convention the signer used.  In particular a
pass via MethodLooseBIP137 is reported separately and callers may wish to
treat it with less confidence.

Invalid input is not an error.  A signature or address that fails to decode,
or a signature that is well formed but does not verify, yields a Result with
Valid set to false and the reasons listed in Result.Diagnostics.

# Usage

	res := msgverify.VerifyMessage(message, signature, address)
	if !res.Valid {
		return fmt.Errorf("bad signature: %v", res.Diagnostics)
	}
	fmt.Printf("verified via %s\n", res.Method)

A Verifier restricted to particular networks can be created with
NewVerifier.  Verifiers hold no mutable state and are safe for concurrent
use, and VerifyBatch verifies many messages at once on a bounded pool of
goroutines.
*/
package msgverify
