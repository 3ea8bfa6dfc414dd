package scajl

import (
	"math"
	"strings"

	"github.com/reusee/scajl/variables"
)

// ArgType parses the resolved tokens of one command argument.
type ArgType struct {
	Name   string
	Tokens int
	// RawToken reports whether the i-th token resolves raw by default.
	RawToken func(i int) bool
	// Verbatim types receive their tokens unresolved.
	Verbatim bool
	// Parse returns nil when the tokens do not form a value of this type.
	Parse func(e *Engine, toks []variables.Variable) (any, error)
	// Format renders a parsed value back into a variable.
	Format func(any) variables.Variable
	// Counts are variants of the same type for other token counts.
	Counts []*ArgType
}

// Variant returns the variant of a accepting n tokens, or nil.
func (a *ArgType) Variant(n int) *ArgType {
	if a.Tokens == n {
		return a
	}
	for _, c := range a.Counts {
		if c.Tokens == n {
			return c
		}
	}
	return nil
}

func (a *ArgType) raw(i int) bool {
	return a.RawToken != nil && a.RawToken(i)
}

func (a *ArgType) String() string {
	return a.Name
}

func rawFirst(i int) bool {
	return i == 0
}

func single(name string, parse func(e *Engine, v variables.Variable) (any, error), format func(any) variables.Variable) *ArgType {
	return &ArgType{
		Name:   name,
		Tokens: 1,
		Parse: func(e *Engine, toks []variables.Variable) (any, error) {
			return parse(e, toks[0])
		},
		Format: format,
	}
}

func parseFloat(e *Engine, v variables.Variable) (any, error) {
	val, err := v.Val(e)
	if err != nil {
		return nil, err
	}
	f, ok := variables.ParseNumber(val)
	if !ok {
		return nil, nil
	}
	return f, nil
}

func parseInt(e *Engine, v variables.Variable) (any, error) {
	val, err := v.Val(e)
	if err != nil {
		return nil, err
	}
	i, ok := variables.ParseInt(val)
	if !ok {
		return nil, nil
	}
	return i, nil
}

func parseBool(e *Engine, v variables.Variable) (any, error) {
	val, err := v.Val(e)
	if err != nil {
		return nil, err
	}
	b, ok := variables.ParseBool(val)
	if !ok {
		return nil, nil
	}
	return b, nil
}

func parseText(e *Engine, v variables.Variable) (any, error) {
	return v.Val(e)
}

var ArgInt = single("Integer", parseInt, func(v any) variables.Variable {
	return variables.NumberOf(float64(v.(int)))
})

var ArgDouble = single("Double", parseFloat, func(v any) variables.Variable {
	return variables.NumberOf(v.(float64))
})

var ArgBoolean = single("Boolean", parseBool, func(v any) variables.Variable {
	return variables.BoolOf(v.(bool))
})

var ArgToken = single("Token", parseText, func(v any) variables.Variable {
	return variables.ValueOf(v.(string))
})

// ArgCondition is the source text of a boolean token, for commands that
// evaluate it more than once.
var ArgCondition = &ArgType{
	Name:     "Token",
	Tokens:   1,
	Verbatim: true,
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		return toks[0].Raw(), nil
	},
	Format: func(v any) variables.Variable {
		return variables.ValueOf(v.(string))
	},
}

var ArgString = single("String", parseText, func(v any) variables.Variable {
	return variables.StringOf(v.(string))
})

// ArgVariable passes the resolved variable through.
var ArgVariable = single("Variable", func(_ *Engine, v variables.Variable) (any, error) {
	return v, nil
}, func(v any) variables.Variable {
	return v.(variables.Variable)
})

var ArgLabel = &ArgType{
	Name:     "Label",
	Tokens:   1,
	RawToken: rawFirst,
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		name, err := toks[0].Val(e)
		if err != nil {
			return nil, err
		}
		tree := e.LabelFor(name)
		if tree == nil {
			return nil, e.exceptf("Invalid label specification", name, "No label found.")
		}
		return tree, nil
	},
}

var ArgExecutable = single("Executable", func(_ *Engine, v variables.Variable) (any, error) {
	x, ok := v.(*variables.Executable)
	if !ok {
		return nil, nil
	}
	return x, nil
}, nil)

var ArgArray = single("Array", func(_ *Engine, v variables.Variable) (any, error) {
	a, ok := v.(*variables.Array)
	if !ok {
		return nil, nil
	}
	return a, nil
}, nil)

func bindingOf(e *Engine, name variables.Variable, value variables.Variable) (variables.Binding, error) {
	n, err := name.Val(e)
	if err != nil {
		return variables.Binding{}, err
	}
	return variables.Binding{
		Name:  n,
		Value: value,
	}, nil
}

// ArgVarSet reads "name value", "name -> value" or a bare "name" bound to null.
var ArgVarSet = &ArgType{
	Name:     "VarName Token",
	Tokens:   2,
	RawToken: rawFirst,
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		return bindingOf(e, toks[0], toks[1])
	},
	Counts: []*ArgType{
		{
			Name:   "VarName -> Token",
			Tokens: 3,
			RawToken: func(i int) bool {
				return i < 2
			},
			Parse: func(e *Engine, toks []variables.Variable) (any, error) {
				if toks[1].Raw() != storeArrow {
					return nil, nil
				}
				return bindingOf(e, toks[0], toks[2])
			},
		},
		{
			Name:     "VarName",
			Tokens:   1,
			RawToken: rawFirst,
			Parse: func(e *Engine, toks []variables.Variable) (any, error) {
				return bindingOf(e, toks[0], variables.Null)
			},
		},
	},
}

type BoolVarSet struct {
	variables.Binding
	Bool bool
}

var ArgBoolVarSet = &ArgType{
	Name:     "VarName Boolean Token",
	Tokens:   3,
	RawToken: rawFirst,
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		b, err := parseBool(e, toks[1])
		if err != nil || b == nil {
			return nil, err
		}
		binding, err := bindingOf(e, toks[0], toks[2])
		if err != nil {
			return nil, err
		}
		return BoolVarSet{
			Binding: binding,
			Bool:    b.(bool),
		}, nil
	},
}

type IntVarSet struct {
	variables.Binding
	N int
}

var ArgIntVarSet = &ArgType{
	Name:     "VarName Integer Token",
	Tokens:   3,
	RawToken: rawFirst,
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		n, err := parseInt(e, toks[1])
		if err != nil || n == nil {
			return nil, err
		}
		binding, err := bindingOf(e, toks[0], toks[2])
		if err != nil {
			return nil, err
		}
		return IntVarSet{
			Binding: binding,
			N:       n.(int),
		}, nil
	},
}

type VarIntToken struct {
	Name  string
	N     int
	Token string
}

var ArgVarIntToken = &ArgType{
	Name:   "VarName Integer Token",
	Tokens: 3,
	RawToken: func(i int) bool {
		return i != 1
	},
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		n, err := parseInt(e, toks[1])
		if err != nil || n == nil {
			return nil, err
		}
		name, err := toks[0].Val(e)
		if err != nil {
			return nil, err
		}
		tok, err := toks[2].Val(e)
		if err != nil {
			return nil, err
		}
		return VarIntToken{
			Name:  name,
			N:     n.(int),
			Token: tok,
		}, nil
	},
}

type BooleanThen struct {
	Bool bool
	Then variables.Variable
}

var ArgBooleanThen = &ArgType{
	Name:   "Boolean Then",
	Tokens: 2,
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		b, err := parseBool(e, toks[0])
		if err != nil || b == nil {
			return nil, err
		}
		return BooleanThen{
			Bool: b.(bool),
			Then: toks[1],
		}, nil
	},
}

// BooleanExp compares two numbers.
type BooleanExp struct {
	A, B float64
	Op   string
}

var comparators = map[string]func(a, b float64) bool{
	"==": func(a, b float64) bool { return a == b },
	"!=": func(a, b float64) bool { return a != b },
	"<":  func(a, b float64) bool { return a < b },
	"<=": func(a, b float64) bool { return a <= b },
	">":  func(a, b float64) bool { return a > b },
	">=": func(a, b float64) bool { return a >= b },
}

var comparatorNames = map[string]string{
	"=":   "==",
	"EQ":  "==",
	"NEQ": "!=",
	"LT":  "<",
	"LTE": "<=",
	"GT":  ">",
	"GTE": ">=",
}

func comparator(op string) (string, bool) {
	op = strings.ToUpper(op)
	if alias, ok := comparatorNames[op]; ok {
		op = alias
	}
	_, ok := comparators[op]
	return op, ok
}

func (b BooleanExp) Eval() bool {
	if math.IsNaN(b.A) || math.IsNaN(b.B) {
		return false
	}
	return comparators[b.Op](b.A, b.B)
}

var ArgBooleanExp = &ArgType{
	Name:   "Double Comparator Double",
	Tokens: 3,
	RawToken: func(i int) bool {
		return i == 1
	},
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		a, err := parseFloat(e, toks[0])
		if err != nil || a == nil {
			return nil, err
		}
		opText, err := toks[1].Val(e)
		if err != nil {
			return nil, err
		}
		op, ok := comparator(opText)
		if !ok {
			return nil, nil
		}
		b, err := parseFloat(e, toks[2])
		if err != nil || b == nil {
			return nil, err
		}
		return BooleanExp{
			A:  a.(float64),
			B:  b.(float64),
			Op: op,
		}, nil
	},
}

// Named pairs a variable with a name, as in "x Value".
type Named struct {
	Value variables.Variable
	Name  string
}

var ArgNamed = &ArgType{
	Name:   "Variable Token",
	Tokens: 2,
	RawToken: func(i int) bool {
		return i == 1
	},
	Parse: func(e *Engine, toks []variables.Variable) (any, error) {
		name, err := toks[1].Val(e)
		if err != nil {
			return nil, err
		}
		return Named{
			Value: toks[0],
			Name:  name,
		}, nil
	},
}
