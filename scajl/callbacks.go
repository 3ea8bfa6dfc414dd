package scajl

import (
	"fmt"
	"strings"

	"github.com/reusee/scajl/variables"
)

// Callbacks are the hooks an engine calls outward. Nil fields get defaults in New.
type Callbacks struct {
	Print func(string)
	Prev  func(cmd string, raw string)
	Error func(string)
	// Exception receives host failures raised inside command functions.
	// Returning nil treats the failed command as void, returning an error unwinds the run.
	Exception      func(error) error
	ParseException func(*Exception)
	Debugger       func(cmd string, args string, ret string)
	// UserRequest fills the named variables with input parsed as typ.
	UserRequest func(e *Engine, names []string, typ *ArgType, prompt string) (bool, error)
	PollEvents  func()
}

func (e *Engine) defaultCallbacks(c Callbacks) Callbacks {
	if c.Print == nil {
		c.Print = func(s string) {
			fmt.Fprintln(e.stdout, s)
		}
	}
	if c.Prev == nil {
		c.Prev = func(string, string) {}
	}
	if c.Error == nil {
		c.Error = c.Print
	}
	if c.Exception == nil {
		report := c.Error
		logger := e.logger
		c.Exception = func(err error) error {
			report(fmt.Sprintf("Exception encountered at line: %d", e.line+1))
			logger.Error("host exception",
				"script", e.Name,
				"line", e.line+1,
				"error", err,
			)
			return nil
		}
	}
	if c.ParseException == nil {
		report := c.Error
		logger := e.logger
		c.ParseException = func(exc *Exception) {
			report(exc.Error())
			logger.Warn("script exception",
				"script", e.Name,
				"reason", exc.Reason,
				"line", exc.Line+1,
			)
		}
	}
	if c.Debugger == nil {
		logger := e.logger
		c.Debugger = func(cmd string, args string, ret string) {
			logger.Debug("command",
				"script", e.Name,
				"cmd", cmd,
				"args", args,
				"return", ret,
			)
		}
	}
	if c.UserRequest == nil {
		c.UserRequest = readUserInput
	}
	if c.PollEvents == nil {
		c.PollEvents = func() {}
	}
	return c
}

func readUserInput(e *Engine, names []string, typ *ArgType, prompt string) (bool, error) {
	for _, name := range names {
		fmt.Fprint(e.stdout, name+"?: ")
		var word string
		if _, err := fmt.Fscan(e.stdin, &word); err != nil {
			return false, err
		}
		ok, err := e.PutTyped(name, strings.TrimSpace(word), typ, prompt)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// TransferCallbacks makes to report through the same hooks, kill flag, loader and logger as e.
func (e *Engine) TransferCallbacks(to *Engine) {
	to.callbacks = e.callbacks
	to.kill = e.kill
	to.scripts = e.scripts
	to.logger = e.logger
	to.newSpan = e.newSpan
	to.stdin = e.stdin
	to.stdout = e.stdout
}

// PutTyped parses text as typ and stores the result under name.
// An unparsable input is reported through the error callback and yields false.
func (e *Engine) PutTyped(name string, text string, typ *ArgType, prompt string) (bool, error) {
	v, err := variables.Resolve(e, text, false, nil)
	if err != nil {
		return false, e.except(err)
	}
	variant := typ.Variant(1)
	var parsed any
	if variant != nil {
		parsed, err = variant.Parse(e, []variables.Variable{v})
		if err != nil {
			return false, e.except(err)
		}
	}
	if parsed == nil {
		e.callbacks.Error(fmt.Sprintf("The input %q for variable %q is invalid for type %q.", text, name, prompt))
		return false, nil
	}
	out := v
	if variant.Format != nil {
		out = variant.Format(parsed)
	}
	if err := e.Put(name, out); err != nil {
		return false, err
	}
	return true, nil
}
