package variables

import (
	"strconv"
	"strings"

	"github.com/reusee/scajl/syntaxes"
)

// Accessor reads or writes one member of a container.
type Accessor struct {
	Get func() (Variable, error)
	Set func(Variable) error
}

func readOnly(v Variable, key string) Accessor {
	return Accessor{
		Get: func() (Variable, error) {
			return v, nil
		},
		Set: func(Variable) error {
			return errorf("Member is read-only", key, "")
		},
	}
}

// accessPath resolves the base and every key of a split access chain.
func accessPath(ctx Context, parts []string, self Variable) (Accessor, error) {
	base, err := Resolve(ctx, parts[0], false, self)
	if err != nil {
		return Accessor{}, err
	}
	keys := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if part == SelfKey || part == LenKey {
			keys = append(keys, part)
			continue
		}
		k, err := Resolve(ctx, part, false, self)
		if err != nil {
			return Accessor{}, err
		}
		key, err := k.Val(ctx)
		if err != nil {
			return Accessor{}, err
		}
		keys = append(keys, key)
	}
	return Access(ctx, base, keys)
}

// Access walks path through containers and returns the accessor of the last member.
func Access(ctx Context, v Variable, path []string) (Accessor, error) {
	if len(path) == 0 {
		return readOnly(v, v.Raw()), nil
	}
	switch v := v.(type) {
	case *Array:
		return v.access(ctx, path)
	case *Map:
		return v.access(ctx, path)
	case *Reference:
		target, err := v.Deref(ctx)
		if err != nil {
			return Accessor{}, err
		}
		if _, ok := target.(*Reference); ok {
			return Accessor{}, errorf("Reference to reference has no members", v.Raw(), "")
		}
		return Access(ctx, target, path)
	}
	return Accessor{}, errorf(
		"Variable has no members",
		v.Raw(),
		"type "+v.Kind().String()+" cannot be accessed with "+strings.Join(path, "."),
	)
}

func (a *Array) access(ctx Context, path []string) (Accessor, error) {
	key := path[0]
	final := len(path) == 1

	if key == SelfKey {
		if final {
			return readOnly(a, key), nil
		}
		return a.access(ctx, path[1:])
	}

	if key == LenKey && final {
		return Accessor{
			Get: func() (Variable, error) {
				return NumberOf(float64(len(a.elems))), nil
			},
			Set: func(v Variable) error {
				val, err := v.Val(ctx)
				if err != nil {
					return err
				}
				n, ok := ParseInt(val)
				if !ok || n < 0 {
					return errorf("Invalid array length", val, "")
				}
				a.Resize(n)
				return nil
			},
		}, nil
	}

	idx, ok := ParseInt(key)
	if !ok {
		return Accessor{}, errorf("Invalid array index", key, "")
	}
	if idx < 0 || idx >= len(a.elems) {
		return Accessor{}, errorf(
			"Array index out of bounds",
			key,
			"length is "+strconv.Itoa(len(a.elems)),
		)
	}

	if final {
		return Accessor{
			Get: func() (Variable, error) {
				return a.elems[idx], nil
			},
			Set: func(v Variable) error {
				a.Set(idx, v)
				return nil
			},
		}, nil
	}
	return Access(ctx, a.elems[idx], path[1:])
}

func (m *Map) access(ctx Context, path []string) (Accessor, error) {
	key := path[0]
	final := len(path) == 1

	if key == SelfKey {
		if final {
			return readOnly(m, key), nil
		}
		return m.access(ctx, path[1:])
	}

	if key == LenKey && final {
		return readOnly(NumberOf(float64(len(m.keys))), key), nil
	}

	if final {
		return Accessor{
			Get: func() (Variable, error) {
				if v, ok := m.vals[key]; ok {
					return v, nil
				}
				return Null, nil
			},
			Set: func(v Variable) error {
				m.Put(key, v)
				return nil
			},
		}, nil
	}

	v, ok := m.vals[key]
	if !ok {
		return Accessor{}, errorf("Missing map key", key, "")
	}
	return Access(ctx, v, path[1:])
}

// Put stores v under name. A dotted name writes through the deepest container.
func Put(ctx Context, name string, v Variable, self Variable) error {
	name = strings.TrimSpace(name)
	if IsNumber(name) {
		return errorf("Numeric variable name", name, "")
	}
	parts := syntaxes.Access(name)
	if len(parts) > 1 {
		acc, err := accessPath(ctx, parts, self)
		if err != nil {
			return err
		}
		return acc.Set(v)
	}
	if !LegalName(name) {
		return errorf("Illegal variable name", name, "names may contain only letters, digits, '_' and '-'")
	}
	return ctx.Store(name, v)
}
