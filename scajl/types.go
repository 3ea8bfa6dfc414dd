package scajl

import (
	"strings"

	"github.com/reusee/scajl/variables"
)

func strType() *Type {
	t := NewType("str", "String helpers.")
	for _, cmd := range []*Command{

		NewCommand("len", RetInt, "Returns the number of characters in the String.",
			ArgString,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.NumberOf(float64(len([]rune(args[0].(string))))), nil
		}),

		NewCommand("upper", RetString, "Returns the String in upper case.",
			ArgString,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.StringOf(strings.ToUpper(args[0].(string))), nil
		}),

		NewCommand("lower", RetString, "Returns the String in lower case.",
			ArgString,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			return variables.StringOf(strings.ToLower(args[0].(string))), nil
		}),

		NewCommand("contains", RetBool, "Returns true if the first String contains every other.",
			ArgString, ArgString,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			s := args[0].(string)
			for _, obj := range varArgs(args) {
				if !strings.Contains(s, obj.(string)) {
					return variables.False, nil
				}
			}
			return variables.True, nil
		}).VarArgs(),

		NewCommand("split", RetArray, "Splits the String around the separator.",
			ArgString, ArgString,
		).Func(func(e *Engine, args []any) (variables.Variable, error) {
			arr := variables.ArrayOf()
			for _, part := range strings.Split(args[0].(string), args[1].(string)) {
				arr.Append(variables.StringOf(part))
			}
			return arr, nil
		}),
	} {
		if err := t.Define(cmd); err != nil {
			panic(err)
		}
	}
	return t
}
