package main

import (
	"context"

	"github.com/jcorbin/thirdbyte/internal/parseable"
)

// wordKey builds a function-table key for a native word's plain-text name:
// the name's bytes plus a single trailing 0, matching the key a parsed
// identifier token or a popped name string both produce (see nameKey).
func wordKey(name string) []byte {
	b := make([]byte, len(name)+1)
	copy(b, name)
	return b
}

// newPrelude returns a function table with every built-in word installed.
func newPrelude() *funcTable {
	tab := newFuncTable()
	installArithWords(tab)

	tab.put(wordKey("mkfun"), nativeFunction(wordMkfun))
	tab.put(wordKey("delfun"), nativeFunction(wordDelfun))
	tab.put(wordKey("eval"), nativeFunction(wordEval))
	tab.put(wordKey("ifelse"), nativeFunction(wordIfelse))
	tab.put(wordKey("loop"), nativeFunction(wordLoop))
	tab.put(wordKey("print"), nativeFunction(wordPrint))
	tab.put(wordKey("println"), nativeFunction(wordPrintln))
	tab.put(wordKey("dump"), nativeFunction(wordDump))

	return tab
}

// wordMkfun: ( body-string name-string -- ) defines or redefines name as a
// user function whose body is the popped quotation source. Redefining an
// existing name drops the prior entry (put overwrites).
func wordMkfun(it *Interp, _ context.Context) error {
	nameFrame := it.popString()
	bodyFrame := it.popString()
	name := nameKey(nameFrame)
	body := bodyBytes(bodyFrame)
	it.funcs.put(name, userFunction(body))
	return nil
}

// wordDelfun: ( name-string -- ) removes name's entry, if any.
func wordDelfun(it *Interp, _ context.Context) error {
	nameFrame := it.popString()
	it.funcs.del(nameKey(nameFrame))
	return nil
}

// wordEval: ( body-string -- ) parses the popped string's payload as program
// text, sharing this Interp's stack and function table.
func wordEval(it *Interp, ctx context.Context) error {
	bodyFrame := it.popString()
	it.parse(ctx, parseable.NewMemory(bodyBytes(bodyFrame), "<eval>"))
	return nil
}

// wordIfelse: ( cond if-string else-string -- ) runs if-string's payload
// when cond is non-zero, else-string's payload otherwise.
func wordIfelse(it *Interp, ctx context.Context) error {
	elseFrame := it.popString()
	ifFrame := it.popString()
	cond := it.popByte()
	if cond != 0 {
		it.parse(ctx, parseable.NewMemory(bodyBytes(ifFrame), "<if>"))
	} else {
		it.parse(ctx, parseable.NewMemory(bodyBytes(elseFrame), "<else>"))
	}
	return nil
}

// wordLoop: ( body-string -- ) repeatedly pops a byte and, while it is
// non-zero, runs body-string's payload once more. The loop condition byte is
// popped fresh on every iteration, including the first.
func wordLoop(it *Interp, ctx context.Context) error {
	bodyFrame := it.popString()
	body := bodyBytes(bodyFrame)
	for it.popByte() != 0 {
		it.parse(ctx, parseable.NewMemory(body, "<loop>"))
	}
	return nil
}

// wordPrint: ( string -- ) writes the popped string's payload to standard
// output, unterminated.
func wordPrint(it *Interp, _ context.Context) error {
	frame := it.popString()
	_, err := it.out.Write(bodyBytes(frame))
	return err
}

// wordPrintln: ( string -- ) writes the popped string's payload to standard
// output, followed by a newline.
func wordPrintln(it *Interp, _ context.Context) error {
	frame := it.popString()
	if _, err := it.out.Write(bodyBytes(frame)); err != nil {
		return err
	}
	_, err := it.out.Write([]byte{'\n'})
	return err
}

// wordDump: ( -- ) writes a hex+ASCII rendering of the current stack to
// standard output, for interactive debugging.
func wordDump(it *Interp, _ context.Context) error {
	return dumpStack(it.out, it.stack.Bytes())
}
