// Package main implements thirdbyte, an interpreter for a tiny
// concatenative, stack-oriented language: one untyped byte stack, a handful
// of native words, and user-defined words whose bodies are ordinary
// previously-quoted source text, re-parsed on every call.
//
// There is no dictionary, no return stack, and no word-addressed memory —
// just bytes and names. See SPEC_FULL.md for the full data model.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jcorbin/thirdbyte/internal/logio"
	"github.com/jcorbin/thirdbyte/internal/panicerr"
)

func main() {
	var (
		memLimit uint
		timeout  time.Duration
		trace    bool
		dump     bool
	)
	flag.UintVar(&memLimit, "mem-limit", 0, "enable a byte-stack growth limit")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print a stack dump after execution")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if flag.NArg() != 1 {
		log.Errorf("usage: %v <source-file>", os.Args[0])
		return
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	defer f.Close()

	opts := []Option{
		WithMemLimit(memLimit),
		WithInput(f),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}

	it := New(opts...)
	defer it.Close()

	if dump {
		defer func() {
			lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
			defer lw.Close()
			dumpStack(lw, it.stack.Bytes())
		}()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	reportRunError(&log, it.Run(ctx))
}

// reportRunError distinguishes a THIRD program halting itself on purpose
// from a host-level bug: the latter gets its recovered stack trace logged
// too, since an ordinary ERROR line won't say where in the Go code it came
// from.
func reportRunError(log *logio.Logger, err error) {
	if err == nil {
		return
	}
	if panicerr.IsPanic(err) {
		log.Errorf("%v", err)
		if stack := panicerr.PanicStack(err); stack != "" {
			log.Printf("PANIC", "%s", stack)
		}
		return
	}
	if panicerr.IsExit(err) {
		log.Errorf("interpreter goroutine exited unexpectedly: %v", err)
		return
	}
	log.ErrorIf(err)
}
