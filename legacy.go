// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

import (
	"github.com/btcsuite/msgverify/addrmatch"
	"github.com/btcsuite/msgverify/sigrecover"
)

// legacyApplicable accepts compact signatures carrying an uncompressed key
// header against P2PKH addresses, the only combination the original
// Bitcoin-Qt signmessage produced before compressed keys existed.
func legacyApplicable(in *input) bool {
	if !in.isCompact() || in.addr.Template != addrmatch.P2PKH {
		return false
	}
	h, err := sigrecover.DecodeHeader(in.sig[0])
	return err == nil && h.IsUncompressedLegacy()
}

func verifyLegacy(in *input) (verdict, []byte, error) {
	candidates, err := in.compactCandidates()
	if err != nil {
		return noMatch, nil, err
	}
	return in.matchCandidates(candidates, addrmatch.P2PKH, addrmatch.P2PKH)
}
