// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgverify

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Request is a single signed message to verify.
type Request struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Address   string `json:"address"`
}

// VerifyBatch verifies every request concurrently on at most workers
// goroutines, or one per CPU when workers is not positive.  Results are
// returned in request order.  Requests not yet started when ctx is done
// are reported invalid with the context error as their diagnostic.
func (v *Verifier) VerifyBatch(ctx context.Context, reqs []Request,
	workers int) []Result {

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(reqs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range reqs {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Diagnostics: []error{err}}
			continue
		}

		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Diagnostics: []error{err}}
				return nil
			}
			req := &reqs[i]
			results[i] = v.Verify(req.Message, req.Signature, req.Address)
			return nil
		})
	}
	_ = g.Wait()

	log.Debugf("Verified batch of %d requests with %d workers", len(reqs),
		workers)
	return results
}

// VerifyBatch verifies every request using the default networks.  See
// Verifier.VerifyBatch.
func VerifyBatch(ctx context.Context, reqs []Request, workers int) []Result {
	return defaultVerifier.VerifyBatch(ctx, reqs, workers)
}
