// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

import (
	"github.com/btcsuite/msgverify/addrmatch"
)

// looseApplicable accepts compact signatures against taproot addresses.
// Some hardware wallets, Ledger among them, sign taproot messages inside
// the BIP-137 envelope even though BIP-137 has no taproot header.
func looseApplicable(in *input) bool {
	return in.isCompact() && in.addr.Template == addrmatch.P2TR
}

// verifyLoose matches the key recovered from the compact signature against
// the taproot witness program, either directly as an x-only key or as the
// BIP-86 internal key of the output key.
func verifyLoose(in *input) (verdict, []byte, error) {
	candidates, err := in.compactCandidates()
	if err != nil {
		return noMatch, nil, err
	}
	return in.matchCandidates(candidates, addrmatch.P2TR, addrmatch.P2TR)
}
