// Package parseable implements the pull-style byte source the parser reads
// from: a uniform Next/Back protocol backed by either a file handle or an
// in-memory buffer borrowed from a captured quotation body.
//
// Exactly one level of pushback is guaranteed. Calling Back twice without an
// intervening Next is undefined, same as the reference implementation's
// single-slot ungetc cache — this package does not guard against it.
package parseable

import (
	"bufio"
	"fmt"
	"io"
)

// Parseable is a pull-style byte stream with one-byte pushback.
type Parseable interface {
	// Next returns the next byte, or ok == false at end of stream.
	Next() (b byte, ok bool)
	// Back arranges for the next call to Next to re-return the byte just
	// produced.
	Back()
	// Name identifies the source, for diagnostics.
	Name() string
	// Loc reports the current line for diagnostics (1-based; 0 if not tracked).
	Loc() int
}

// File adapts an io.Reader (conventionally an *os.File) into a Parseable.
type File struct {
	r       *bufio.Reader
	name    string
	line    int
	last    byte
	hasBack bool
}

// NewFile returns a file-backed Parseable over r, named for diagnostics.
func NewFile(r io.Reader, name string) *File {
	return &File{r: bufio.NewReader(r), name: name, line: 1}
}

// Next implements Parseable.
func (f *File) Next() (byte, bool) {
	if f.hasBack {
		f.hasBack = false
		return f.last, true
	}
	b, err := f.r.ReadByte()
	if err != nil {
		return 0, false
	}
	if f.last == '\n' {
		f.line++
	}
	f.last = b
	return b, true
}

// Back implements Parseable.
func (f *File) Back() { f.hasBack = true }

// Name implements Parseable.
func (f *File) Name() string { return f.name }

// Loc implements Parseable.
func (f *File) Loc() int { return f.line }

// Memory adapts a borrowed byte slice (conventionally a captured quotation
// body) into a Parseable. It does not copy or own buf.
type Memory struct {
	buf  []byte
	pos  int
	name string
}

// NewMemory returns a memory-backed Parseable over buf, named for
// diagnostics. buf is borrowed, not copied: it must outlive the Memory.
func NewMemory(buf []byte, name string) *Memory {
	return &Memory{buf: buf, name: name}
}

// Next implements Parseable.
func (m *Memory) Next() (byte, bool) {
	if m.pos >= len(m.buf) {
		return 0, false
	}
	b := m.buf[m.pos]
	m.pos++
	return b, true
}

// Back implements Parseable.
func (m *Memory) Back() {
	if m.pos > 0 {
		m.pos--
	}
}

// Name implements Parseable.
func (m *Memory) Name() string { return m.name }

// Loc implements Parseable. Memory sources don't track lines; always 0.
func (m *Memory) Loc() int { return 0 }

// Loc formats a Parseable's current location as "name:line" for trace logs.
func Loc(p Parseable) string {
	if line := p.Loc(); line > 0 {
		return fmt.Sprintf("%v:%v", p.Name(), line)
	}
	return p.Name()
}
