package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/thirdbyte/internal/panicerr"
)

// New builds an Interp configured by opts, ready for Run.
func New(opts ...Option) *Interp {
	it := &Interp{funcs: newPrelude()}
	defaultOptions.apply(it)
	flattenOptions(opts...).apply(it)
	return it
}

// Run drives the parser against the configured input to completion (or a
// fatal halt), isolating both ordinary panics and runtime.Goexit into a
// returned error via internal/panicerr, the same isolation the teacher's VM
// applies around its own exec loop.
func (it *Interp) Run(ctx context.Context) error {
	err := panicerr.Recover("thirdbyte", func() error {
		return it.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var he haltError
	if errors.As(err, &he) {
		err = he.error
	}
	return err
}

func (it *Interp) run(ctx context.Context) error {
	if it.in == nil {
		return errors.New("thirdbyte: no input configured")
	}
	it.parse(ctx, it.in)
	return it.out.Flush()
}

// WithInput sets the single source file the interpreter parses.
func WithInput(r io.Reader) Option { return withInput(r) }

// WithOutput sets the interpreter's standard output, flushing and replacing
// any previously configured output.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee additionally mirrors output to w, alongside whatever WithOutput
// configured.
func WithTee(w io.Writer) Option { return withTee(w) }

// WithMemLimit bounds the byte stack's growth; 0 (the default) is
// unbounded.
func WithMemLimit(limit uint) Option { return withMemLimit(limit) }

// WithLogf wires a trace sink, called once per dispatched identifier and once
// on a halt.
func WithLogf(logfn func(mess string, args ...interface{})) Option {
	return withLogfn(logfn)
}
