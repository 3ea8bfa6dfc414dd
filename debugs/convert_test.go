package debugs

import (
	"errors"
	"testing"

	"github.com/reusee/scajl/variables"
	"go.starlark.net/starlark"
)

func TestFromStarlark(t *testing.T) {
	dict := starlark.NewDict(1)
	if err := dict.SetKey(starlark.String("a"), starlark.MakeInt(1)); err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		value starlark.Value
		want  string
	}{
		{starlark.None, "null"},
		{starlark.True, "true"},
		{starlark.MakeInt(-3), "-3"},
		{starlark.Float(1.5), "1.5"},
		{starlark.Float(2), "2"},
		{starlark.String("x"), `"x"`},
		{starlark.NewList([]starlark.Value{starlark.MakeInt(1), starlark.String("y")}), `[1; "y"]`},
		{starlark.Tuple{starlark.False}, "[false]"},
		{dict, "[a=1]"},
	} {
		v, err := FromStarlark(c.value)
		if err != nil {
			t.Fatal(err)
		}
		if got := v.Raw(); got != c.want {
			t.Fatalf("got %v", got)
		}
	}

	if _, err := FromStarlark(starlark.NewSet(0)); !errors.Is(err, ErrUnconvertible) {
		t.Fatalf("got %v", err)
	}
}

func TestToStarlark(t *testing.T) {
	m := variables.NewMap()
	m.Put("k", variables.ValueOf("v"))
	for _, c := range []struct {
		v    variables.Variable
		want starlark.Value
	}{
		{variables.Null, starlark.None},
		{variables.False, starlark.False},
		{variables.ValueOf("7"), starlark.MakeInt(7)},
		{variables.ValueOf("0.25"), starlark.Float(0.25)},
		{variables.ValueOf("word"), starlark.String("word")},
		{variables.StringOf("7"), starlark.String("7")},
		{variables.ArrayOf(variables.True), starlark.NewList([]starlark.Value{starlark.True})},
		{variables.GroupOf(variables.ValueOf("1")), starlark.Tuple{starlark.MakeInt(1)}},
	} {
		got, err := ToStarlark(nil, c.v)
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
	}

	got, err := ToStarlark(nil, m)
	if err != nil {
		t.Fatal(err)
	}
	d, ok := got.(*starlark.Dict)
	if !ok {
		t.Fatalf("got %T", got)
	}
	v, found, err := d.Get(starlark.String("k"))
	if err != nil || !found || v != starlark.String("v") {
		t.Fatalf("got %v %v %v", v, found, err)
	}
}
