package debugs

import (
	"errors"
	"fmt"
	"math"

	"github.com/reusee/scajl/variables"
	"go.starlark.net/starlark"
)

var ErrUnconvertible = errors.New("value cannot be converted")

const maxDepth = 64

// ToStarlark converts a script variable. Executables become callable builtins.
func ToStarlark(ctx variables.Context, v variables.Variable) (starlark.Value, error) {
	return toStarlark(ctx, v, 0)
}

func toStarlark(ctx variables.Context, v variables.Variable, depth int) (starlark.Value, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nested too deep", ErrUnconvertible)
	}
	switch v := v.(type) {

	case nil:
		return starlark.None, nil

	case *variables.Value:
		text := v.Raw()
		if text == variables.NullText {
			return starlark.None, nil
		}
		if b, ok := variables.ParseBool(text); ok {
			return starlark.Bool(b), nil
		}
		if f, ok := variables.ParseNumber(text); ok {
			if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
				return starlark.MakeInt64(int64(f)), nil
			}
			return starlark.Float(f), nil
		}
		return starlark.String(text), nil

	case *variables.String:
		s, err := v.Val(ctx)
		if err != nil {
			return nil, err
		}
		return starlark.String(s), nil

	case *variables.Reference:
		target, err := v.Deref(ctx)
		if err != nil {
			return nil, err
		}
		return toStarlark(ctx, target, depth+1)

	case *variables.Array:
		elems := make([]starlark.Value, 0, v.Len())
		for _, elem := range v.Elems() {
			value, err := toStarlark(ctx, elem, depth+1)
			if err != nil {
				return nil, err
			}
			elems = append(elems, value)
		}
		return starlark.NewList(elems), nil

	case *variables.TokenGroup:
		elems := make(starlark.Tuple, 0, v.Len())
		for _, elem := range v.Elems() {
			value, err := toStarlark(ctx, elem, depth+1)
			if err != nil {
				return nil, err
			}
			elems = append(elems, value)
		}
		return elems, nil

	case *variables.Map:
		d := starlark.NewDict(v.Len())
		for _, key := range v.Keys() {
			elem, _ := v.Get(key)
			value, err := toStarlark(ctx, elem, depth+1)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(key), value); err != nil {
				return nil, err
			}
		}
		return d, nil

	case *variables.Executable:
		return starlark.NewBuiltin(v.Raw(), func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(args) > 0 || len(kwargs) > 0 {
				return nil, fmt.Errorf("%s: executables take no arguments", b.Name())
			}
			out, err := ctx.RunExecutable(v)
			if err != nil {
				return nil, err
			}
			return toStarlark(ctx, out, depth+1)
		}), nil

	}
	return nil, fmt.Errorf("%w: %s", ErrUnconvertible, v.Kind())
}

// FromStarlark converts a Starlark value into a script variable.
func FromStarlark(v starlark.Value) (variables.Variable, error) {
	switch v := v.(type) {

	case nil, starlark.NoneType:
		return variables.Null, nil

	case starlark.Bool:
		return variables.BoolOf(bool(v)), nil

	case starlark.Int:
		return variables.ValueOf(v.String()), nil

	case starlark.Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v", ErrUnconvertible, v)
		}
		return variables.NumberOf(f), nil

	case starlark.String:
		return variables.StringOf(string(v)), nil

	case starlark.Bytes:
		return variables.StringOf(string(v)), nil

	case *starlark.List:
		arr := variables.ArrayOf()
		for i := range v.Len() {
			elem, err := FromStarlark(v.Index(i))
			if err != nil {
				return nil, err
			}
			arr.Append(elem)
		}
		return arr, nil

	case starlark.Tuple:
		arr := variables.ArrayOf()
		for _, e := range v {
			elem, err := FromStarlark(e)
			if err != nil {
				return nil, err
			}
			arr.Append(elem)
		}
		return arr, nil

	case *starlark.Dict:
		m := variables.NewMap()
		for _, item := range v.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				key = item[0].String()
			}
			elem, err := FromStarlark(item[1])
			if err != nil {
				return nil, err
			}
			m.Put(key, elem)
		}
		return m, nil

	}
	return nil, fmt.Errorf("%w: %s", ErrUnconvertible, v.Type())
}
