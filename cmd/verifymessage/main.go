// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/btcsuite/msgverify"
	flags "github.com/jessevdk/go-flags"
)

// errInvalid is returned by run when at least one signature did not verify.
var errInvalid = errors.New("invalid signature")

// run verifies the signed message given in args, or every message of the
// configured batch, and writes the results to w.
func run(ctx context.Context, cfg *config, args []string, stdin io.Reader,
	w io.Writer) error {

	verifier := msgverify.NewVerifier(cfg.netParams)

	if cfg.Batch == "" {
		req := msgverify.Request{
			Message:   args[0],
			Signature: args[1],
			Address:   args[2],
		}
		res := verifier.Verify(req.Message, req.Signature, req.Address)
		var err error
		if cfg.JSON {
			err = writeResults(w, []msgverify.Request{req},
				[]msgverify.Result{res}, cfg.ShowDigest)
		} else {
			err = writeText(w, &req, &res, cfg.ShowDigest)
		}
		if err != nil {
			return err
		}
		if !res.Valid {
			return errInvalid
		}
		return nil
	}

	r := stdin
	if cfg.Batch != "-" {
		f, err := os.Open(cfg.Batch)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	reqs, err := readRequests(r)
	if err != nil {
		return fmt.Errorf("unable to read batch: %v", err)
	}

	mainLog.Infof("Verifying %d %s", len(reqs),
		pickNoun(len(reqs), "signature", "signatures"))
	results := verifier.VerifyBatch(ctx, reqs, cfg.Workers)
	if shutdownRequested(ctx) {
		mainLog.Warnf("Batch interrupted before completion")
	}

	if cfg.JSON {
		err = writeResults(w, reqs, results, cfg.ShowDigest)
	} else {
		err = writeTextResults(w, reqs, results, cfg.ShowDigest)
	}
	if err != nil {
		return err
	}

	var numInvalid int
	for i := range results {
		if !results[i].Valid {
			numInvalid++
		}
	}
	mainLog.Infof("%d of %d %s valid", len(results)-numInvalid,
		len(results), pickNoun(len(results), "signature", "signatures"))
	if numInvalid > 0 {
		return errInvalid
	}
	return nil
}

// verifyMain is the real main function for verifymessage.  It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func verifyMain() error {
	cfg, args, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := initLogRotator(logFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		defer logRotator.Close()
	}
	mainLog.Debugf("Version %s, network %s", version(), cfg.netParams.Name)

	ctx := shutdownListener()
	err = run(ctx, cfg, args, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, errInvalid) {
		mainLog.Errorf("%v", err)
	}
	return err
}

func main() {
	if err := verifyMain(); err != nil {
		var e *flags.Error
		switch {
		case errors.As(err, &e) && e.Type == flags.ErrHelp:
			os.Exit(0)
		case errors.Is(err, errShowVersion), errors.Is(err, errShowSubsystems):
			os.Exit(0)
		case errors.Is(err, errInvalid):
			os.Exit(1)
		}
		os.Exit(2)
	}
}
