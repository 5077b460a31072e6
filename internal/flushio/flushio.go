// Package flushio wraps the two concrete kinds of sink thirdbyte's output
// option ever binds to: a real file/pipe that needs explicit buffering and
// flushing (os.Stdout, a socket), and an in-memory sink a test hands to
// WithOutput that already holds its own copy and needs no flush at all.
// Interp.out (see options.go's WithOutput/WithTee) is always one of these.
package flushio

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"strings"
)

// WriteFlusher is a flush-able io.Writer: what Interp.out always is.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

var discardFlusher WriteFlusher = passthroughFlusher{ioutil.Discard}

// NewWriteFlusher wraps w for use as Interp.out. ioutil.Discard (the default
// sink before any WithOutput) and the in-memory sink types *bytes.Buffer and
// *strings.Builder need no buffering, so
// they pass through untouched; anything already a WriteFlusher is used
// as-is; everything else (os.Stdout, a file, a pipe) gets a real
// bufio.Writer, which Interp.run flushes once the parse completes.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == ioutil.Discard {
		return discardFlusher
	}
	if wf, ok := w.(WriteFlusher); ok {
		return wf
	}
	switch w.(type) {
	case *bytes.Buffer, *strings.Builder:
		return passthroughFlusher{w}
	}
	return bufio.NewWriter(w)
}

// passthroughFlusher adapts a writer that is already synchronous (discard,
// or an in-memory buffer) to WriteFlusher with a no-op Flush.
type passthroughFlusher struct{ io.Writer }

func (passthroughFlusher) Flush() error { return nil }

// WriteFlushers combines several WriteFlushers (the base output plus any
// WithTee sinks) into one that writes to and flushes all of them in order.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	switch flat := flattenWriteFlushers(nil, wfs...); len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return flat
	}
}

type writeFlushers []WriteFlusher

func (wfs writeFlushers) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs writeFlushers) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// flattenWriteFlushers avoids nesting one writeFlushers inside another when
// WithTee is applied more than once.
func flattenWriteFlushers(all writeFlushers, some ...WriteFlusher) writeFlushers {
	for _, one := range some {
		if many, ok := one.(writeFlushers); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	return all
}
