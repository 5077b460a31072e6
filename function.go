package main

import "context"

// kind tags which case a Function record is: a native Go routine, or a
// user-defined quotation body previously captured off the stack.
type kind int

const (
	kindNative kind = iota
	kindUser
)

// nativeFunc is a built-in word's implementation. It runs against the
// current stack and function table exactly like a Forth primitive; any
// error it returns is fatal and halts the interpreter (see errors.go). ctx is
// threaded through purely so words that recurse into parse (eval, ifelse,
// loop) can propagate cancellation; most native words ignore it.
type nativeFunc func(it *Interp, ctx context.Context) error

// function is a function-table entry: either a native routine, or an owned
// user body (a captured source fragment re-parsed on every call). The table
// exclusively owns a user body's bytes; replacing or deleting an entry drops
// the only reference to them.
type function struct {
	kind   kind
	native nativeFunc
	body   []byte // kindUser only: quotation source text, sentinels already stripped
}

func nativeFunction(fn nativeFunc) function {
	return function{kind: kindNative, native: fn}
}

func userFunction(body []byte) function {
	return function{kind: kindUser, body: body}
}

// funcTable maps a name key (the exact nul-terminated bytes a word was
// defined or looked up with) to its function record.
type funcTable struct {
	m map[string]function
}

func newFuncTable() *funcTable {
	return &funcTable{m: make(map[string]function)}
}

// put installs fn under name, overwriting (and thereby releasing) any prior
// entry.
func (t *funcTable) put(name []byte, fn function) {
	t.m[string(name)] = fn
}

// get looks up name, reporting whether an entry was present.
func (t *funcTable) get(name []byte) (function, bool) {
	fn, ok := t.m[string(name)]
	return fn, ok
}

// del removes name's entry, if any. It is a no-op when absent.
func (t *funcTable) del(name []byte) {
	delete(t.m, string(name))
}
