package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/thirdbyte/internal/bytestack"
	"github.com/jcorbin/thirdbyte/internal/flushio"
	"github.com/jcorbin/thirdbyte/internal/parseable"
)

// Interp is the interpreter: one byte stack (A), one function table (B),
// and the ambient wiring (input, output, logging) shared by every word and
// every nested parse. A nested Parseable (C) — for eval, ifelse, loop, or a
// user word's body — is threaded explicitly as a parameter of parse instead
// of living on Interp, so that recursion shares this state without any
// notion of a single "current" source. in is the one top-level source Run
// drives the parser against.
type Interp struct {
	stack bytestack.Stack
	funcs *funcTable
	in    parseable.Parseable

	out     flushio.WriteFlusher
	closers []io.Closer

	logfn     func(mess string, args ...interface{})
	markWidth int
}

// logf emits a trace line if a log sink has been configured via WithLogf;
// otherwise it is a cheap no-op. Marks are left-padded to a running maximum
// width so trace columns line up, the same convention the teacher's VM uses.
func (it *Interp) logf(mark, mess string, args ...interface{}) {
	if it.logfn == nil {
		return
	}
	if n := it.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		it.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	it.logfn("%v %v", mark, mess)
}

// Close releases any closers registered by WithOutput/WithTee, in reverse
// registration order.
func (it *Interp) Close() (err error) {
	for i := len(it.closers) - 1; i >= 0; i-- {
		if cerr := it.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// pushByte pushes a single byte, halting on a configured stack limit.
func (it *Interp) pushByte(v byte) {
	it.haltif(it.stack.PushUint8(v))
}

// popByte pops a single byte, halting on underflow.
func (it *Interp) popByte() byte {
	v, err := it.stack.PopUint8()
	it.haltif(err)
	return v
}

// pushLen pushes a machine-word-sized length.
func (it *Interp) pushLen(v uint) {
	it.haltif(it.stack.PushLen(v))
}

// popLen pops a machine-word-sized length.
func (it *Interp) popLen() uint {
	v, err := it.stack.PopLen()
	it.haltif(err)
	return v
}

// popString pops the "L then L bytes" frame described in the data model:
// one machine-word length, then that many bytes, the result starting and
// ending with a 0 sentinel. The length is checked against what's actually
// on the stack before allocating, so a corrupt or hostile length can't
// force an unbounded allocation ahead of the underflow check.
func (it *Interp) popString() []byte {
	n := it.popLen()
	if n > uint(it.stack.Len()) {
		it.halt(bytestack.UnderflowError{Op: "pop string", Requested: int(n), Available: it.stack.Len()})
	}
	buf := make([]byte, n)
	it.haltif(it.stack.PopBytes(buf))
	return buf
}

// nameKey extracts a usable, nul-terminated lookup key from a popped string
// frame: the leading begin-sentinel is not part of the name, so the key is
// the frame's payload plus its trailing 0, i.e. frame[1:]. This is how
// mkfun/delfun turn "(greet)" into the same key the parser's bare identifier
// path builds for the token `greet`: both end up as the name's bytes
// followed by a single trailing 0.
func nameKey(frame []byte) []byte {
	if len(frame) == 0 {
		return frame
	}
	return frame[1:]
}

// bodyBytes extracts the reparseable/printable payload from a popped string
// frame, stripping both the begin and end sentinel. Unlike nameKey, a body
// is plain source text (for eval/ifelse/loop/mkfun quotations) or plain
// output text (for print/println), never a lookup key, so it carries no
// terminator of its own — Go slices already know their own length.
func bodyBytes(frame []byte) []byte {
	if len(frame) < 2 {
		return nil
	}
	return frame[1 : len(frame)-1]
}

// pushString pushes a string frame (0 sentinel, payload, 0 sentinel, then
// the machine-word length) for payload.
func (it *Interp) pushString(payload []byte) {
	b, err := it.stack.PushBytes(len(payload) + 2)
	it.haltif(err)
	b[0] = 0
	copy(b[1:], payload)
	b[len(b)-1] = 0
	it.pushLen(uint(len(payload) + 2))
}
