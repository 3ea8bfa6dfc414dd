package scajl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/scajl/labels"
	"github.com/reusee/scajl/variables"
)

// Exception is a script error with the line and label context it was raised in.
type Exception struct {
	Reason  string
	Subject string
	Extra   string
	// Line is zero based.
	Line int
	// Frame is the label on top of the call stack, or GLOBAL.
	Frame string
	// Label is the label of the innermost variable frame.
	Label string
	Text  string
	Err   error
}

func (e *Exception) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at line %d: %s, from: %s.", e.Reason, e.Line+1, e.Subject, e.Label)
	if e.Frame == labels.GlobalName && e.Text == "" {
		b.WriteString(labels.GlobalName)
	} else {
		b.WriteString(e.Frame)
		b.WriteString(" | ")
		b.WriteString(e.Text)
	}
	if e.Extra == "" {
		b.WriteString(".")
	} else {
		b.WriteString(", extra info: ")
		b.WriteString(e.Extra)
	}
	return b.String()
}

func (e *Exception) Unwrap() error {
	return e.Err
}

// LoadError aborts construction of an engine.
type LoadError struct {
	Line int
	Text string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Invalid syntax at line %d: %s. %v", e.Line+1, e.Text, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *Engine) exceptf(reason, subject, extra string) *Exception {
	exc := &Exception{
		Reason:  reason,
		Subject: subject,
		Extra:   extra,
		Line:    e.line,
		Frame:   labels.GlobalName,
		Label:   e.scope.Top().Tree.Label.Name,
	}
	if len(e.stack) > 0 {
		exc.Frame = e.stack[len(e.stack)-1].to.Label.Name
		exc.Text = e.text()
	}
	return exc
}

// except attaches line context to err. Errors that already carry it pass through.
func (e *Engine) except(err error) error {
	if err == nil {
		return nil
	}
	var exc *Exception
	if errors.As(err, &exc) {
		return err
	}
	var verr *variables.Error
	if errors.As(err, &verr) {
		exc = e.exceptf(verr.Reason, verr.Subject, verr.Extra)
	} else {
		exc = e.exceptf(err.Error(), e.text(), "")
	}
	exc.Err = err
	return exc
}

// isScriptError reports whether err is raised by script code rather than by a host function.
func isScriptError(err error) bool {
	var exc *Exception
	var verr *variables.Error
	return errors.As(err, &exc) || errors.As(err, &verr)
}
