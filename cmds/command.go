package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

// Command is a flag or sub command. Func receives the following arguments,
// pointer parameters are optional.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Signature renders the arguments of c, like "<int> [string]".
func (c *Command) Signature() string {
	if !c.Func.IsValid() {
		return ""
	}
	fnType := c.Func.Type()
	parts := make([]string, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		if t.Kind() == reflect.Pointer {
			parts = append(parts, "["+argName(t.Elem())+"]")
		} else {
			parts = append(parts, "<"+argName(t)+">")
		}
	}
	return strings.Join(parts, " ")
}

func argName(t reflect.Type) string {
	if t == durationType {
		return "duration"
	}
	return t.Kind().String()
}

func supportedArg(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == durationType {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	fnType := fnValue.Type()
	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			panic(fmt.Errorf("must return error, got %v", fnType.Out(0)))
		}
	default:
		panic(fmt.Errorf("must return 0 or 1 value, got %v", fnType))
	}
	for i := range fnType.NumIn() {
		if t := fnType.In(i); !supportedArg(t) {
			panic(fmt.Errorf("unsupported argument type %v in %v", t, fnType))
		}
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}
