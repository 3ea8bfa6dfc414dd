package scajl

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/reusee/scajl/labels"
	"github.com/reusee/scajl/variables"
)

// RegisterBuiltins defines the core command set in reg.
func RegisterBuiltins(reg *Registry) error {
	var errs []error
	for _, cmd := range builtinCommands() {
		if err := reg.Define(cmd); err != nil {
			errs = append(errs, err)
		}
	}
	if err := reg.DefineType(strType()); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func varArgs(args []any) []any {
	v, _ := args[len(args)-1].([]any)
	return v
}

func bindings(v any) []variables.Binding {
	objs, _ := v.([]any)
	ret := make([]variables.Binding, 0, len(objs))
	for _, obj := range objs {
		ret = append(ret, obj.(variables.Binding))
	}
	return ret
}

func floats(objs []any) []float64 {
	ret := make([]float64, 0, len(objs))
	for _, obj := range objs {
		ret = append(ret, obj.(float64))
	}
	return ret
}

func fold(objs []any, fn func(a, b float64) float64) variables.Variable {
	fs := floats(objs)
	if len(fs) == 0 {
		return variables.NumberOf(0)
	}
	out := fs[0]
	for _, f := range fs[1:] {
		out = fn(out, f)
	}
	return variables.NumberOf(out)
}

// collect returns nil for no values, the value itself for one, and an array otherwise.
func collect(vals []variables.Variable) variables.Variable {
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return vals[0]
	}
	return variables.ArrayOf(vals...)
}

func builtinCommands() []*Command {
	call := NewCommand("call", RetVoid, "Excecutes the given token label in a new stack entry. Sets variables to values provided.",
		ArgLabel, ArgVarSet,
	).Func(func(e *Engine, args []any) (variables.Variable, error) {
		return nil, e.runFrom(args[0].(*labels.Tree), bindings(args[1]))
	}).VarArgs()

	echo := NewCommand("echo", RetValue, "Sets PREV to argument, or array of arguments if more than one is provided.",
		ArgVariable,
	).Func(func(e *Engine, args []any) (variables.Variable, error) {
		var vals []variables.Variable
		for _, obj := range varArgs(args) {
			v := obj.(variables.Variable)
			if x, ok := v.(*variables.Executable); ok {
				out, err := x.Run(e)
				if err != nil {
					return nil, err
				}
				v = out
			}
			vals = append(vals, v)
		}
		return collect(vals), nil
	}).VarArgs()

	read := NewCommand("read", RetValue, "Pushes a new scope, sets the given variables, then reads the given executable. Useful for calling executables with local variables.",
		ArgExecutable, ArgVarSet,
	).Func(func(e *Engine, args []any) (variables.Variable, error) {
		x := args[0].(*variables.Executable).Clone().(*variables.Executable)
		x.Bindings = append(x.Bindings, bindings(args[1])...)
		if len(x.Bindings) == 0 {
			e.scope.Push(e.currentTree())
			defer func() {
				_, _ = e.scope.Pop()
			}()
		}
		return x.Run(e)
	}).VarArgs()

	runScript := NewCommand("run_script", RetVoid, "Runs the given script. Booleans determine whether variables in this script will be given to other before being run, and whether variables in other will be pulled to this script once finished.",
		ArgString, ArgBoolean, ArgBoolean, ArgVarSet,
	).Func(func(e *Engine, args []any) (variables.Variable, error) {
		return e.runScript(args[0].(string), "", args[1].(bool), args[2].(bool), bindings(args[3]))
	}).VarArgs()

	runScriptLabel := NewCommand("run_script_label", RetVoid, "Runs the given script from the given label. Booleans are the same as those of 'run_script'.",
		ArgString, ArgString, ArgBoolean, ArgBoolean, ArgVarSet,
	).Func(func(e *Engine, args []any) (variables.Variable, error) {
		return e.runScript(args[0].(string), args[1].(string), args[2].(bool), args[3].(bool), bindings(args[4]))
	}).VarArgs()

	return []*Command{

		// variables

		NewCommand("var", RetVoid, "Sets a variable to a value.",
			ArgVarSet,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, b := range bindings(args[0]) {
				if err := e.Put(b.Name, b.Value); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}).VarArgs(),

		NewCommand("var_if", RetVoid, "If the boolean is true, sets the variable to the value.",
			ArgBoolVarSet,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				set := obj.(BoolVarSet)
				if !set.Bool {
					continue
				}
				if err := e.Put(set.Name, set.Value); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}).VarArgs(),

		NewCommand("var_if_not", RetVoid, "If the boolean is false, sets the variable to the value.",
			ArgBoolVarSet,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				set := obj.(BoolVarSet)
				if set.Bool {
					continue
				}
				if err := e.Put(set.Name, set.Value); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}).VarArgs(),

		NewCommand("var_if_not_var", RetVoid, "Sets a variable to a value, if the variable does not already exist.",
			ArgVarSet,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, b := range bindings(args[0]) {
				if e.scope.Get(b.Name) != nil {
					continue
				}
				if err := e.Put(b.Name, b.Value); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}).VarArgs(),

		NewCommand("var_array", RetVoid, "Sets the variable to an array of the given length, filled with the given value.",
			ArgIntVarSet,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				set := obj.(IntVarSet)
				if set.N < 0 {
					return nil, e.exceptf("Negative array length", set.Name, "")
				}
				arr := variables.ArrayOf()
				for range set.N {
					arr.Append(set.Value.Clone())
				}
				if err := e.Put(set.Name, arr); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}).VarArgs(),

		NewCommand("var_array_fill", RetVoid, "Sets the variable to an array of the given length, filled with the return value of excecution of the given label for each index.",
			ArgVarIntToken,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				set := obj.(VarIntToken)
				label := e.LabelFor(set.Token)
				if label == nil {
					return nil, e.exceptf("Invalid label specification", set.Token, "No label found.")
				}
				arr := variables.ArrayOf()
				for i := 0; i < set.N && !e.Killed(); i++ {
					e.scope.Put(IndexName, variables.NumberOf(float64(i)))
					if err := e.runFrom(label, nil); err != nil {
						return nil, err
					}
					arr.Append(e.Prev())
				}
				e.scope.Put(IndexName, variables.NumberOf(float64(set.N)))
				if err := e.Put(set.Name, arr); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}).VarArgs(),

		NewCommand("make_global", RetVoid, "Makes each variable token global in scope.",
			ArgToken,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				name := obj.(string)
				if !variables.LegalName(name) {
					return nil, e.exceptf("Illegal variable name", name, "names may contain only letters, digits, '_' and '-'")
				}
				e.scope.MakeGlobal(name)
			}
			return nil, nil
		}).Raw(0).VarArgs(),

		// comparison

		NewCommand("equals", RetBool, "Checks whether or not all the inputs are 'equal'.",
			ArgVariable,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			vals := varArgs(args)
			for i := 1; i < len(vals); i++ {
				if !variables.Equal(vals[0].(variables.Variable), vals[i].(variables.Variable)) {
					return variables.False, nil
				}
			}
			return variables.True, nil
		}).VarArgs(),

		NewCommand("nequals", RetBool, "Checks whether or not none the inputs are 'equal'.",
			ArgVariable,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			vals := varArgs(args)
			if len(vals) < 2 {
				return variables.False, nil
			}
			for i := range vals {
				for j := i + 1; j < len(vals); j++ {
					if variables.Equal(vals[i].(variables.Variable), vals[j].(variables.Variable)) {
						return variables.False, nil
					}
				}
			}
			return variables.True, nil
		}).VarArgs(),

		// inspection

		NewCommand("is_var", RetBool, "Checks whether or not the token is a variable.",
			ArgToken,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				name := obj.(string)
				if name == variables.NullText || e.scope.Get(name) == nil {
					return variables.False, nil
				}
			}
			return variables.True, nil
		}).Raw(0).VarArgs(),

		NewCommand("is_number", RetBool, "Checks whether or not the token is a number.",
			ArgToken,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				v, err := e.Get(obj.(string))
				if err != nil {
					return nil, err
				}
				f, err := parseFloat(e, v)
				if err != nil {
					return nil, err
				}
				if f == nil {
					return variables.False, nil
				}
			}
			return variables.True, nil
		}).Raw(0).VarArgs(),

		NewCommand("of_type", RetBool, "Checks whether or not all the variables are of the given primitive types.",
			ArgNamed,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				named := obj.(Named)
				if named.Value.Kind().String() != named.Name {
					return variables.False, nil
				}
			}
			return variables.True, nil
		}).VarArgs(),

		NewCommand("get_type", RetString, "Returns the primitive type of the given variable.",
			ArgVariable,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.StringOf(args[0].(variables.Variable).Kind().String()), nil
		}),

		// printing

		NewCommand("print", RetString, "Prints and returns the supplied value.",
			ArgString,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			var b strings.Builder
			for _, obj := range varArgs(args) {
				b.WriteString(obj.(string))
			}
			out := b.String()
			e.callbacks.Print(out)
			return variables.ValueOf(out), nil
		}).VarArgs(),

		NewCommand("print_all_vars", RetVoid, "Prints all variables and their values.").Func(func(e *Engine, args []any) (variables.Variable, error) {
			e.callbacks.Print("----------------")
			for depth, frame := range e.scope.All() {
				if frame.Len() == 0 {
					continue
				}
				e.callbacks.Print(strings.Repeat(labels.Scoped, depth+2) + frame.Tree.Label.Name + ":")
				spacer := strings.Repeat("  ", depth)
				for _, name := range frame.Names() {
					v, _ := frame.Get(name)
					e.callbacks.Print(spacer + " " + name + "=" + v.Raw())
				}
			}
			e.callbacks.Print("----------------")
			return nil, nil
		}),

		NewCommand("print_all_cmds", RetVoid, "Prints all commands and their info.").Func(func(e *Engine, args []any) (variables.Variable, error) {
			e.printCommands()
			return nil, nil
		}),

		NewCommand("print_debug", RetVoid, "Sets whether or not debug information should be printed for every line execution.",
			ArgBoolean,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			e.SetPrintDebug(args[0].(bool))
			return nil, nil
		}),

		// user input

		userRequest("user_req", ArgString, "String"),
		userRequest("user_req_int", ArgInt, "integer"),
		userRequest("user_req_double", ArgDouble, "double"),
		userRequest("user_req_string", ArgString, "text"),
		userRequest("user_req_bool", ArgBoolean, "boolean"),
		userRequest("user_req_token", ArgToken, "token"),

		// strings and arrays

		NewCommand("concat", RetString, "Concatinates and returns the argument Strings.",
			ArgString,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			var b strings.Builder
			for _, obj := range varArgs(args) {
				b.WriteString(obj.(string))
			}
			return variables.StringOf(b.String()), nil
		}).VarArgs(),

		NewCommand("merge_array", RetArray, "Merges arrays one onto the other in the order provided.",
			ArgArray,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			out := variables.ArrayOf()
			for _, obj := range varArgs(args) {
				for _, elem := range obj.(*variables.Array).Elems() {
					out.Append(elem)
				}
			}
			return out, nil
		}).VarArgs(),

		NewCommand("string_match", RetBool, "Returns true if the Strings match.",
			ArgString,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			strs := varArgs(args)
			for i := 1; i < len(strs); i++ {
				if strs[i].(string) != strs[0].(string) {
					return variables.False, nil
				}
			}
			return variables.True, nil
		}).VarArgs(),

		// arithmetic

		NewCommand("add", RetDouble, "Adds and returns the argument numbers.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return fold(varArgs(args), func(a, b float64) float64 { return a + b }), nil
		}).VarArgs(),

		NewCommand("sub", RetDouble, "Subtracts and returns the argument numbers.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return fold(varArgs(args), func(a, b float64) float64 { return a - b }), nil
		}).VarArgs(),

		NewCommand("mult", RetDouble, "Multiplies and returns the argument numbers.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return fold(varArgs(args), func(a, b float64) float64 { return a * b }), nil
		}).VarArgs(),

		NewCommand("divi", RetDouble, "Divides and returns the argument numbers.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return fold(varArgs(args), func(a, b float64) float64 { return a / b }), nil
		}).VarArgs(),

		NewCommand("mod", RetDouble, "Returns A % B.",
			ArgDouble, ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.NumberOf(math.Mod(args[0].(float64), args[1].(float64))), nil
		}),

		NewCommand("inc", RetDouble, "Returns the increment of the argument number.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.NumberOf(args[0].(float64) + 1), nil
		}),

		NewCommand("dec", RetDouble, "Returns the decrement of the argument number.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.NumberOf(args[0].(float64) - 1), nil
		}),

		NewCommand("floor", RetInt, "Returns the largest integer less than or equal to this double.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.NumberOf(math.Floor(args[0].(float64))), nil
		}),

		NewCommand("ceil", RetInt, "Returns the smallest integer greater than or equal to this double.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.NumberOf(math.Ceil(args[0].(float64))), nil
		}),

		NewCommand("negate", RetDouble, "Returns the negation of the argument number.",
			ArgDouble,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.NumberOf(-args[0].(float64)), nil
		}),

		NewCommand("int", RetInt, "Rounds to the nearest int, and removes decimal in string.",
			ArgInt,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.NumberOf(float64(args[0].(int))), nil
		}),

		// logic

		NewCommand("not", RetBool, "Return the boolean inverse of the argument.",
			ArgBoolean,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.BoolOf(!args[0].(bool)), nil
		}),

		NewCommand("or", RetBool, "Return true if any argument is true.",
			ArgBoolean,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				if obj.(bool) {
					return variables.True, nil
				}
			}
			return variables.False, nil
		}).VarArgs(),

		NewCommand("and", RetBool, "Return true if every argument is true.",
			ArgBoolean,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				if !obj.(bool) {
					return variables.False, nil
				}
			}
			return variables.True, nil
		}).VarArgs(),

		NewCommand("compare", RetBool, "Returns the evaluation of the boolean expression.",
			ArgBooleanExp,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.BoolOf(args[0].(BooleanExp).Eval()), nil
		}),

		NewCommand("if", RetToken, "Iterates through the arguments, and returns the first token that has a true boolean, or null.",
			ArgBooleanThen,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			for _, obj := range varArgs(args) {
				then := obj.(BooleanThen)
				if then.Bool {
					return then.Then, nil
				}
			}
			return variables.Null, nil
		}).VarArgs(),

		// control flow

		NewCommand("for", RetVoid, "Excecutes the given token label the given number of times.",
			ArgInt, ArgLabel, ArgVarSet,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			count := args[0].(int)
			label := args[1].(*labels.Tree)
			binds := bindings(args[2])
			for i := 0; i < count && !e.Killed(); i++ {
				e.scope.Put(IndexName, variables.NumberOf(float64(i)))
				if err := e.runFrom(label, binds); err != nil {
					return nil, err
				}
			}
			e.scope.Put(IndexName, variables.NumberOf(float64(count)))
			return nil, nil
		}).VarArgs(),

		NewCommand("while", RetVoid, "While the boolean token (0) is true, excecutes the label (1). Sets variables as provided before each run (2...).",
			ArgCondition, ArgLabel, ArgVarSet,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			cond := args[0].(string)
			label := args[1].(*labels.Tree)
			binds := bindings(args[2])
			i := 0
			for !e.Killed() {
				ok, err := e.boolToken(cond, nil)
				if err != nil {
					return nil, err
				}
				if !ok {
					break
				}
				e.scope.Put(IndexName, variables.NumberOf(float64(i)))
				i++
				if err := e.runFrom(label, binds); err != nil {
					return nil, err
				}
			}
			e.scope.Put(IndexName, variables.NumberOf(float64(i)))
			return nil, nil
		}).VarArgs(),

		call,
		Overload("goto", call, "No difference, but exists for backwards compatibility.", nil,
			ArgLabel, ArgVarSet,
		).VarArgs(),

		NewCommand("exec", "Executable", "Creates and returns an Executable that will execute in a new scope after setting the given variable values.",
			ArgExecutable, ArgVarSet,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			x := args[0].(*variables.Executable)
			return variables.ExecutableOf(x.Body, x.Self, append(x.Bindings, bindings(args[1])...)...), nil
		}).VarArgs(),

		NewCommand("return", RetVariable, "Marks the end of a label or code section. If present, will set PREV to argument, or array of arguments if more than one is provided.",
			ArgVariable,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			var vals []variables.Variable
			for _, obj := range varArgs(args) {
				vals = append(vals, obj.(variables.Variable))
			}
			frame, err := e.pop()
			if err != nil {
				return nil, err
			}
			if len(vals) == 0 {
				if prev, ok := frame.Get(PrevName); ok {
					return prev, nil
				}
				return nil, nil
			}
			return collect(vals), nil
		}).VarArgs(),

		echo,
		Overload("~", echo, "Just a shorter name.", nil, ArgVariable).VarArgs(),

		read,
		Overload("-", read, "Just a shorter name.", nil, ArgExecutable, ArgVarSet).VarArgs(),

		// scripts

		runScript,
		Overload("runscr", runScript, "Push and pull are assumed false.", func(objs []any) []any {
			return []any{objs[0], false, false, objs[1]}
		}, ArgString, ArgVarSet).VarArgs(),

		runScriptLabel,
		Overload("runlab", runScriptLabel, "Push and pull are assumed false.", func(objs []any) []any {
			return []any{objs[0], objs[1], false, false, objs[2]}
		}, ArgString, ArgString, ArgVarSet).VarArgs(),

		NewCommand("get_parent", RetString, "Returns the name of the parent script # levels up, where 0 would target this script.",
			ArgInt,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			p := e
			for range args[0].(int) {
				p = p.parent
				if p == nil {
					return variables.Null, nil
				}
			}
			if p.Name == "" {
				return variables.Null, nil
			}
			return variables.ValueOf(p.Name), nil
		}),

		// runtime

		NewCommand("exit", RetVoid, "Exits the script runtime.").Func(func(e *Engine, args []any) (variables.Variable, error) {
			e.Kill()
			return nil, nil
		}),

		NewCommand("sleep", RetVoid, "Sleep the given number of milliseconds.",
			ArgInt,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			timer := time.NewTimer(time.Duration(args[0].(int)) * time.Millisecond)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-e.ctx.Done():
			}
			return nil, nil
		}),
	}
}

func userRequest(name string, typ *ArgType, prompt string) *Command {
	return NewCommand(name, RetBool, "Requests user input of type: "+prompt+", returns true on successful input.",
		ArgToken,
	).Func(func(e *Engine, args []any) (variables.Variable, error) {
		var names []string
		for _, obj := range varArgs(args) {
			names = append(names, obj.(string))
		}
		ok, err := e.callbacks.UserRequest(e, names, typ, prompt)
		if err != nil {
			return nil, err
		}
		return variables.BoolOf(ok), nil
	}).Raw(0).VarArgs()
}

func (e *Engine) runScript(name string, label string, push bool, pull bool, binds []variables.Binding) (variables.Variable, error) {
	if e.scripts == nil {
		return nil, e.exceptf("Specified script does not exist", name, "No script loader")
	}
	script, err := e.scripts.Load(e.ctx, name)
	if err != nil {
		return nil, e.exceptf("Specified script does not exist", name, err.Error())
	}
	child, err := NewString(e.registry, name, script.Content, Options{
		Path:    script.Path,
		Logger:  e.logger,
		NewSpan: e.newSpan,
	})
	if err != nil {
		return nil, e.exceptf("Invalid script", name, err.Error())
	}
	e.TransferCallbacks(child)
	child.parent = e
	child.printDebug = e.printDebug
	if push {
		child.IntegrateVarsFrom(e)
	}
	child.scope.Put(ParentName, variables.ValueOf(e.Name))

	if label != "" {
		err = child.RunFrom(e.ctx, label, binds...)
	} else {
		err = child.Run(e.ctx, binds...)
	}
	if err != nil {
		// already reported through the shared callbacks
		e.logger.Debug("script failed", "script", name, "error", err)
		return nil, nil
	}
	if pull {
		e.IntegrateVarsFrom(child)
	}
	return child.Prev(), nil
}
