// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/btcsuite/msgverify"
	"github.com/btcsuite/msgverify/msghash"
)

// maxLineSize is the longest batch input line accepted.
const maxLineSize = 1 << 20

// jsonResult is the JSON form of a verification result.
type jsonResult struct {
	Address     string   `json:"address"`
	Valid       bool     `json:"valid"`
	Method      string   `json:"method,omitempty"`
	PubKey      string   `json:"pubkey,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`

	LegacyDigest     string `json:"legacydigest,omitempty"`
	BIP322Commitment string `json:"bip322commitment,omitempty"`
}

// newJSONResult converts a result for the request into its JSON form.
func newJSONResult(req *msgverify.Request, res *msgverify.Result,
	showDigest bool) *jsonResult {

	r := &jsonResult{
		Address: req.Address,
		Valid:   res.Valid,
		Method:  string(res.Method),
	}
	if len(res.PubKey) > 0 {
		r.PubKey = hex.EncodeToString(res.PubKey)
	}
	for _, err := range res.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, err.Error())
	}
	if showDigest {
		message := []byte(req.Message)
		r.LegacyDigest = hex.EncodeToString(
			msghash.LegacyMessageDigest(message),
		)
		r.BIP322Commitment = hex.EncodeToString(
			msghash.BIP322MessageCommitment(message),
		)
	}
	return r
}

// readRequests reads one JSON request per line.  Blank lines are skipped.
func readRequests(r io.Reader) ([]msgverify.Request, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var reqs []msgverify.Request
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req msgverify.Request
		if err := json.Unmarshal(line, &req); err != nil {
			return nil, fmt.Errorf("line %d: %v", lineNum, err)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return reqs, nil
}

// writeResults writes one JSON result per line in request order.
func writeResults(w io.Writer, reqs []msgverify.Request,
	results []msgverify.Result, showDigest bool) error {

	enc := json.NewEncoder(w)
	for i := range results {
		if err := enc.Encode(newJSONResult(&reqs[i], &results[i],
			showDigest)); err != nil {

			return err
		}
	}
	return nil
}

// writeText writes a human-readable result.
func writeText(w io.Writer, req *msgverify.Request, res *msgverify.Result,
	showDigest bool) error {

	r := newJSONResult(req, res, showDigest)
	var buf bytes.Buffer
	if r.Valid {
		fmt.Fprintf(&buf, "Signature is valid (%s)\n", r.Method)
		fmt.Fprintf(&buf, "Public key: %s\n", r.PubKey)
	} else {
		fmt.Fprintln(&buf, "Signature is invalid")
		for _, diag := range r.Diagnostics {
			fmt.Fprintf(&buf, "  %s\n", diag)
		}
	}
	if showDigest {
		fmt.Fprintf(&buf, "Legacy digest: %s\n", r.LegacyDigest)
		fmt.Fprintf(&buf, "BIP-322 commitment: %s\n", r.BIP322Commitment)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// writeTextResults writes the text report of every batch result in request
// order, each headed by its address and separated by a blank line.
func writeTextResults(w io.Writer, reqs []msgverify.Request,
	results []msgverify.Result, showDigest bool) error {

	for i := range results {
		sep := "\n"
		if i == 0 {
			sep = ""
		}
		_, err := fmt.Fprintf(w, "%sAddress: %s\n", sep, reqs[i].Address)
		if err != nil {
			return err
		}
		err = writeText(w, &reqs[i], &results[i], showDigest)
		if err != nil {
			return err
		}
	}
	return nil
}
