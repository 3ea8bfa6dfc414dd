package scajl

import (
	"strings"

	"github.com/reusee/scajl/variables"
)

// Func implements a command. Variadic arguments arrive as []any in the last slot.
// A nil result leaves PREV unchanged.
type Func func(e *Engine, args []any) (variables.Variable, error)

// Return tags used in command info strings.
const (
	RetVoid     = "Void"
	RetValue    = "Value"
	RetString   = "String"
	RetBool     = "Boolean"
	RetInt      = "Integer"
	RetDouble   = "Double"
	RetToken    = "Token"
	RetArray    = "Array"
	RetVariable = "Variable"
)

type Command struct {
	Name   string
	Return string
	Desc   string
	Args   []*ArgType

	fn       Func
	varArgs  bool
	raw      map[int]bool
	nullable map[int]bool
	disabled bool
}

func NewCommand(name string, ret string, desc string, args ...*ArgType) *Command {
	return &Command{
		Name:     name,
		Return:   ret,
		Desc:     desc,
		Args:     args,
		raw:      make(map[int]bool),
		nullable: make(map[int]bool),
	}
}

func (c *Command) Func(fn Func) *Command {
	c.fn = fn
	return c
}

// VarArgs makes the last argument type repeat.
func (c *Command) VarArgs() *Command {
	c.varArgs = true
	return c
}

// Raw makes the tokens of the given arguments resolve raw.
func (c *Command) Raw(indexes ...int) *Command {
	for _, i := range indexes {
		c.raw[i] = true
	}
	return c
}

// Nullable allows the given arguments to fail parsing and arrive as nil.
func (c *Command) Nullable(indexes ...int) *Command {
	for _, i := range indexes {
		c.nullable[i] = true
	}
	return c
}

func (c *Command) Disable(disabled bool) *Command {
	c.disabled = disabled
	return c
}

func (c *Command) Disabled() bool {
	return c.disabled
}

func (c *Command) IsVarArgs() bool {
	return c.varArgs
}

func (c *Command) argIndex(i int) int {
	return min(i, len(c.Args)-1)
}

func (c *Command) rawArg(i int) bool {
	return c.raw[c.argIndex(i)]
}

func (c *Command) nullableArg(i int) bool {
	return c.nullable[c.argIndex(i)]
}

func (c *Command) ArgInfo() string {
	var b strings.Builder
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.Name)
	}
	if c.varArgs {
		b.WriteString("...")
	}
	return b.String()
}

func (c *Command) InfoString() string {
	return c.Name + " | Args: " + c.ArgInfo() + ", Return: " + c.Return + ", Desc: " + c.Desc
}

// Overload defines name as other with a different argument list.
// transform maps the parsed arguments of the overload to those of other.
func Overload(name string, other *Command, desc string, transform func([]any) []any, args ...*ArgType) *Command {
	return NewCommand(
		name,
		other.Return,
		"Overload of "+other.Name+": "+other.Desc+" - "+desc,
		args...,
	).Func(func(e *Engine, objs []any) (variables.Variable, error) {
		if transform != nil {
			objs = transform(objs)
		}
		return other.fn(e, objs)
	})
}
