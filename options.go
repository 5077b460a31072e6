package main

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/jcorbin/thirdbyte/internal/flushio"
	"github.com/jcorbin/thirdbyte/internal/parseable"
)

// Option configures an Interp at construction time, following the same
// flattening idiom as the teacher's VMOption: a slice of options collapses
// to a single options value, nil/noption entries are dropped, so callers can
// freely pass around zero or more Options without special-casing the empty
// case. Unlike VMOptions, flattenOptions stays unexported: the teacher's own
// test suite composes VMOptions from outside the package, but nothing
// outside this package ever needs to build up an Option set piecemeal —
// New is the only caller.
type Option interface{ apply(it *Interp) }

var defaultOptions = flattenOptions(
	withOutput(ioutil.Discard),
)

// flattenOptions flattens a list of Options into one, same as the teacher's
// VMOptions.
func flattenOptions(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(it *Interp) {}

type options []Option

func (opts options) apply(it *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(it)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(it *Interp) { it.logfn = logfn }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type memLimitOption uint

func withInput(r io.Reader) inputOption      { return inputOption{r} }
func withOutput(w io.Writer) outputOption    { return outputOption{w} }
func withTee(w io.Writer) teeOption          { return teeOption{w} }
func withMemLimit(limit uint) memLimitOption { return memLimitOption(limit) }

// apply wires r as the one top-level source Run parses. A later WithInput
// replaces an earlier one; there is no input queue, unlike the teacher's VM.
func (i inputOption) apply(it *Interp) {
	it.in = parseable.NewFile(i.Reader, nameOf(i.Reader))
}

func (o outputOption) apply(it *Interp) {
	if it.out != nil {
		it.out.Flush()
	}
	it.out = flushio.NewWriteFlusher(o.Writer)
	registerCloser(it, o.Writer)
}

func (o teeOption) apply(it *Interp) {
	it.out = flushio.WriteFlushers(it.out, flushio.NewWriteFlusher(o.Writer))
	registerCloser(it, o.Writer)
}

// registerCloser records w for Interp.Close if the caller handed WithOutput
// or WithTee something that owns a resource (a file, a pipe) rather than a
// plain in-memory sink.
func registerCloser(it *Interp, w io.Writer) {
	if cl, ok := w.(io.Closer); ok {
		it.closers = append(it.closers, cl)
	}
}

// memLimitOption bounds the byte stack's growth directly (bytestack.Stack.Limit),
// unlike the teacher's memLayoutOption, which instead relocates the return-
// and memory-stack base addresses inside a single shared address space —
// a concept this data model has no counterpart for, since there's no
// word-addressed memory here at all.
func (lim memLimitOption) apply(it *Interp) { it.stack.Limit = uint(lim) }

// nameOf is only ever asked to name the one io.Reader WithInput is given;
// narrower than the teacher's nameOf, which also has to name a WriterTo fed
// through withInputWriter's io.Pipe, a capability this CLI doesn't expose.
func nameOf(r io.Reader) string {
	if nom, ok := r.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", r)
}
