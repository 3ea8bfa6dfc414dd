package debugs

import (
	"errors"
	"testing"

	"github.com/reusee/scajl/scajl"
	"go.starlark.net/starlark"
)

func TestHostValue(t *testing.T) {
	script := &scajl.Script{
		Name:    "main",
		Content: "echo 1",
	}

	for _, c := range []struct {
		name  string
		input any
		want  starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"bool", true, starlark.True},
		{"bytes", []byte("abc"), starlark.Bytes("abc")},
		{"string", "hello", starlark.String("hello")},
		{"int", 42, starlark.MakeInt(42)},
		{"uint64", uint64(42), starlark.MakeUint64(42)},
		{"float64", 0.5, starlark.Float(0.5)},
		{"starlark value", starlark.String("as is"), starlark.String("as is")},
		{"list", []any{1, "a"}, starlark.NewList([]starlark.Value{starlark.MakeInt(1), starlark.String("a")})},
		{"strings", []string{"a", "b"}, starlark.NewList([]starlark.Value{starlark.String("a"), starlark.String("b")})},
		{"map", map[string]any{"n": 1}, func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.String("n"), starlark.MakeInt(1))
			return d
		}()},
		{"script", script, func() starlark.Value {
			d := starlark.NewDict(3)
			d.SetKey(starlark.String("Name"), starlark.String("main"))
			d.SetKey(starlark.String("Path"), starlark.String(""))
			d.SetKey(starlark.String("Content"), starlark.String("echo 1"))
			return d
		}()},
		{"nil pointer", (*scajl.Script)(nil), starlark.None},
	} {
		t.Run(c.name, func(t *testing.T) {
			got, err := hostValue(c.input)
			if err != nil {
				t.Fatal(err)
			}
			eq, err := starlark.Equal(got, c.want)
			if err != nil {
				t.Fatal(err)
			}
			if !eq {
				t.Fatalf("got %v", got)
			}
		})
	}

	fn, err := hostValue(func(s string) string { return s })
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fn.(*starlark.Builtin); !ok {
		t.Fatalf("got %T", fn)
	}

	if _, err := hostValue(make(chan bool)); !errors.Is(err, ErrUnconvertible) {
		t.Fatalf("got %v", err)
	}
}
