package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses src through a fresh Interp and returns everything written to
// standard output, along with any fatal halt error.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	it := New(
		WithInput(strings.NewReader(src)),
		WithOutput(&out),
	)
	defer it.Close()
	err := it.Run(context.Background())
	return out.String(), err
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"println", `(hello world!) println`, "hello world!\n"},
		{"ifelse true", `1 ((yes) print) ((no) print) ifelse`, "yes"},
		{"ifelse false", `0 ((yes) print) ((no) print) ifelse`, "no"},
		{"loop", `3 ((hi ) print 1 -u8 dupu8) loop`, "hi hi hi "},
		{"mkfun then call twice", `((hello) println) (greet) mkfun greet greet`, "hello\nhello\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestDumpShowsArithResult(t *testing.T) {
	out, err := run(t, `2 3 +u8 dump`)
	require.NoError(t, err)
	assert.Contains(t, out, "05")
	assert.Contains(t, out, "stack: 1 bytes")
}

func TestRedefinitionDropsPriorBody(t *testing.T) {
	out, err := run(t, `
		((one) println) (greet) mkfun
		((two) println) (greet) mkfun
		greet
	`)
	require.NoError(t, err)
	assert.Equal(t, "two\n", out)
}

func TestEvalMatchesInlineExecution(t *testing.T) {
	inline, err := run(t, `2 3 +u8 dump`)
	require.NoError(t, err)
	eval, err := run(t, `(2 3 +u8 dump) eval`)
	require.NoError(t, err)
	assert.Equal(t, inline, eval)
}

func TestDelfunThenCallHalts(t *testing.T) {
	_, err := run(t, `
		((hi) println) (greet) mkfun
		(greet) delfun
		greet
	`)
	require.Error(t, err)
	var de dispatchError
	assert.ErrorAs(t, err, &de)
}

func TestUnknownWordHalts(t *testing.T) {
	_, err := run(t, `nosuchword`)
	require.Error(t, err)
	var de dispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "nosuchword", de.name)
}

func TestStringLiteralNesting(t *testing.T) {
	out, err := run(t, `(outer (inner) still outer) println`)
	require.NoError(t, err)
	assert.Equal(t, "outer (inner) still outer\n", out)
}

func TestStringLiteralEscape(t *testing.T) {
	out, err := run(t, `(a\(b\)c) println`)
	require.NoError(t, err)
	assert.Equal(t, "a(b)c\n", out)
}

func TestArithStackConservation(t *testing.T) {
	var out bytes.Buffer
	it := New(WithOutput(&out))
	it.pushByte(2)
	it.pushByte(3)
	before := it.stack.Len()
	fn, ok := it.funcs.get(wordKey("+u8"))
	require.True(t, ok)
	require.NoError(t, fn.native(it, context.Background()))
	assert.Equal(t, before-1, it.stack.Len())
	assert.Equal(t, byte(5), it.popByte())
}

func TestSwpu8Exchanges(t *testing.T) {
	it := New()
	it.pushByte(1)
	it.pushByte(2)
	fn, ok := it.funcs.get(wordKey("swpu8"))
	require.True(t, ok)
	require.NoError(t, fn.native(it, context.Background()))
	assert.Equal(t, byte(1), it.popByte())
	assert.Equal(t, byte(2), it.popByte())
}
