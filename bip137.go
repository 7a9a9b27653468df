// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

import (
	"github.com/btcsuite/msgverify/addrmatch"
	"github.com/btcsuite/msgverify/sigrecover"
)

// bip137Applicable accepts compact signatures against any address type
// BIP-137 defines a header for.  Taproot postdates BIP-137 and is left to
// BIP-322 and the loose scheme.
func bip137Applicable(in *input) bool {
	return in.isCompact() && in.addr.Template != addrmatch.P2TR
}

// verifyBIP137 tries the template the header names first and then every
// other pre-taproot template, since several wallets emit headers naming the
// wrong one.
func verifyBIP137(in *input) (verdict, []byte, error) {
	candidates, err := in.compactCandidates()
	if err != nil {
		return noMatch, nil, err
	}

	h, err := sigrecover.DecodeHeader(in.sig[0])
	if err != nil {
		return noMatch, nil, err
	}
	return in.matchCandidates(candidates, hintTemplate(h.Hint),
		addrmatch.PreTaprootTemplates...)
}
