package debugs

import (
	"context"
	"fmt"
	"regexp"

	"github.com/reusee/scajl/logs"
	"github.com/reusee/scajl/scajl"
	"github.com/reusee/scajl/variables"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Register installs the debugging commands into a registry.
type Register func(reg *scajl.Registry) error

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// visible collects the variables in scope, inner frames shadowing outer ones.
func visible(e *scajl.Engine) map[string]variables.Variable {
	ret := make(map[string]variables.Variable)
	for _, frame := range e.Scope().All() {
		for _, name := range frame.Names() {
			if v, ok := frame.Get(name); ok {
				ret[name] = v
			}
		}
	}
	return ret
}

func globalsOf(e *scajl.Engine, logger logs.Logger) starlark.StringDict {
	globals := make(starlark.StringDict)
	for name, v := range visible(e) {
		if !identifier.MatchString(name) {
			continue
		}
		value, err := ToStarlark(e, v)
		if err != nil {
			logger.Debug("skip variable", "name", name, "error", err)
			continue
		}
		globals[name] = value
	}
	return globals
}

func (Module) Register(
	logger logs.Logger,
	tap Tap,
) Register {
	return func(reg *scajl.Registry) error {

		eval := scajl.NewCommand("starlark", scajl.RetVariable, "Evaluates a Starlark expression with the visible variables as globals and sets PREV to the result.",
			scajl.ArgString,
		).Func(func(e *scajl.Engine, args []any) (variables.Variable, error) {
			thread := &starlark.Thread{
				Name: "scajl",
				Print: func(_ *starlark.Thread, msg string) {
					e.Print(msg)
				},
			}
			if ctx := e.Context(); ctx != nil {
				stop := context.AfterFunc(ctx, func() {
					thread.Cancel(ctx.Err().Error())
				})
				defer stop()
			}
			value, err := starlark.EvalOptions(fileOptions, thread, "<expr>", args[0].(string), globalsOf(e, logger))
			if err != nil {
				return nil, fmt.Errorf("starlark: %w", err)
			}
			return FromStarlark(value)
		})

		tapCmd := scajl.NewCommand("tap", scajl.RetVoid, "Opens a Starlark REPL with the given variables, or every visible variable if none are given. run(line) executes a line, get(name) reads a variable.",
			scajl.ArgToken,
		).Func(func(e *scajl.Engine, args []any) (variables.Variable, error) {
			globals := make(map[string]any)
			names, _ := args[len(args)-1].([]any)
			if len(names) == 0 {
				for name, value := range globalsOf(e, logger) {
					globals[name] = value
				}
			} else {
				for _, obj := range names {
					name := obj.(string)
					v := e.Lookup(name)
					if v == nil {
						return nil, fmt.Errorf("tap: %s is not defined", name)
					}
					value, err := ToStarlark(e, v)
					if err != nil {
						return nil, err
					}
					globals[name] = value
				}
			}
			globals["run"] = func(line string) (string, error) {
				v, err := e.Exec(e.Context(), line)
				if err != nil {
					return "", err
				}
				return v.Raw(), nil
			}
			globals["get"] = func(name string) (string, error) {
				v, err := e.Get(name)
				if err != nil {
					return "", err
				}
				return v.Raw(), nil
			}
			tap(e.Context(), e.Name, globals)
			return nil, nil
		}).VarArgs().Raw(0)

		for _, cmd := range []*scajl.Command{eval, tapCmd} {
			if err := reg.Define(cmd); err != nil {
				return err
			}
		}
		return nil
	}
}
