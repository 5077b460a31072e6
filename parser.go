package main

import (
	"context"
	"strconv"

	"github.com/jcorbin/thirdbyte/internal/parseable"
)

const (
	// maxDigits bounds a numeric literal's digit run; 3 covers "255".
	maxDigits = 3
	// maxIdentLen bounds an identifier token, matching the reference
	// implementation's FUNCTION_NAME_MAX.
	maxIdentLen = 31
	// maxStringLen is the largest representable string-frame length
	// counter (a 32-bit unsigned count, per the data model).
	maxStringLen = 1<<32 - 1
)

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\n' }

// parse is the top-level parser/evaluator loop (component D): it reads one
// byte at a time from src, skips blanks and newlines, and otherwise
// dispatches on the token class of the next byte. src is threaded
// explicitly rather than held on Interp, so a recursively-invoked parse (for
// eval, ifelse, loop, or a user word's body) shares the stack and function
// table without any notion of a single "current" source.
func (it *Interp) parse(ctx context.Context, src parseable.Parseable) {
	for {
		select {
		case <-ctx.Done():
			it.halt(ctx.Err())
		default:
		}

		b, ok := src.Next()
		if !ok {
			return
		}
		if isBlank(b) {
			continue
		}
		src.Back()
		switch {
		case b == '(' || b == ')':
			it.parseString(src)
		case b >= '0' && b <= '9':
			it.parseNumber(src)
		default:
			it.parseIdent(ctx, src)
		}
	}
}

// parseString consumes a nestable, backslash-escaped string literal and
// pushes its stack frame: a 0 sentinel, the payload, a 0 sentinel, and a
// machine-word length equal to payload length + 2.
//
// A string literal truncated by EOF (inside the body, or right after a
// trailing backslash) still emits its closing sentinel and length, covering
// exactly the bytes actually pushed; unbalanced parens at EOF are not
// diagnosed. This mirrors the reference implementation's silent-truncation
// behavior.
func (it *Interp) parseString(src parseable.Parseable) {
	if b, ok := src.Next(); !ok || b != '(' {
		it.halt(lexError{"malformed string literal"})
	}
	it.pushByte(0)

	depth := 1
	length := uint32(1)

scan:
	for {
		b, ok := src.Next()
		if !ok {
			break
		}
		if length == maxStringLen {
			it.halt(lexError{"string literal out of bounds"})
		}
		switch b {
		case '\\':
			esc, ok := src.Next()
			if !ok {
				break scan
			}
			it.pushByte(esc)
			length++
		case '(':
			depth++
			it.pushByte(b)
			length++
		case ')':
			depth--
			if depth == 0 {
				break scan
			}
			it.pushByte(b)
			length++
		default:
			it.pushByte(b)
			length++
		}
	}

	it.pushByte(0)
	length++
	it.pushLen(uint(length))
}

// parseNumber consumes a run of up to maxDigits decimal digits and pushes
// the resulting byte; a longer run halts with a numError. The first non-digit
// byte that ends the run is
// consumed but not pushed back — a deliberate, documented quirk carried over
// from the reference implementation: `3)` tokenizes as the byte 3 with the
// `)` discarded, not as `3` followed by a `)` token.
func (it *Interp) parseNumber(src parseable.Parseable) {
	var buf [maxDigits]byte
	n := 0
	for {
		b, ok := src.Next()
		if !ok {
			break
		}
		if b < '0' || b > '9' {
			break
		}
		if n >= maxDigits {
			it.halt(numError{string(buf[:n]) + string(b)})
		}
		buf[n] = b
		n++
	}

	val, err := strconv.Atoi(string(buf[:n]))
	if err != nil || val < 0 || val > 255 {
		it.halt(numError{string(buf[:n])})
	}
	it.pushByte(byte(val))
}

// parseIdent consumes an identifier token (delimited by a blank or newline,
// which is consumed), looks it up in the function table using the name plus
// its trailing nul as the key, and executes it. Bytes past maxIdentLen are
// consumed but not retained, matching the reference implementation's
// fixed-size name buffer.
func (it *Interp) parseIdent(ctx context.Context, src parseable.Parseable) {
	var buf [maxIdentLen]byte
	n := 0
	for {
		b, ok := src.Next()
		if !ok {
			break
		}
		if isBlank(b) {
			break
		}
		if n < len(buf) {
			buf[n] = b
			n++
		}
	}

	name := buf[:n]
	it.logf(".", "call %s", name)

	key := make([]byte, n+1)
	copy(key, name)

	fn, ok := it.funcs.get(key)
	if !ok {
		it.halt(dispatchError{string(name)})
	}
	it.execute(ctx, fn)
}

// execute runs a looked-up Function record: native code dispatches directly
// against the stack and function table; a user body is re-parsed from a
// fresh memory-backed Parseable over its captured bytes, recursing into
// parse and sharing this Interp's stack and function table.
func (it *Interp) execute(ctx context.Context, fn function) {
	switch fn.kind {
	case kindNative:
		it.haltif(fn.native(it, ctx))
	case kindUser:
		it.parse(ctx, parseable.NewMemory(fn.body, "<word>"))
	}
}
