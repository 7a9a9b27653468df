// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package bip322 implements the transaction and witness plumbing for the
"simple" variant of BIP-322 generic signed messages.

A BIP-322 signature proves control of an address by producing a witness
that would spend a virtual output paying to that address.  The output is
created by a virtual to_spend transaction whose sole input commits to the
tagged hash of the message, and it is spent by a virtual to_sign
transaction that has a single OP_RETURN output.  Neither transaction is
valid on the network.

The simple signature format is the consensus serialization of the witness
stack of the to_sign input: a CompactSize item count followed by each
item prefixed with its CompactSize length.

This package only builds the virtual transactions, computes their
signature hashes, and decodes the witness.  Deciding whether a witness
satisfies a particular address is up to the caller.
*/
package bip322
