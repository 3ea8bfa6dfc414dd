package debugs

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scajl/modes"
	"github.com/reusee/scajl/scajl"
)

func testEngine(t *testing.T, src string) (*scajl.Engine, *strings.Builder) {
	t.Helper()
	reg := scajl.NewRegistry()
	if err := scajl.RegisterBuiltins(reg); err != nil {
		t.Fatal(err)
	}
	dscope.New(modes.ForTest(t), new(Module)).Call(func(
		register Register,
	) {
		if err := register(reg); err != nil {
			t.Fatal(err)
		}
	})
	out := new(strings.Builder)
	e, err := scajl.NewString(reg, "main", src, scajl.Options{
		Stdout: out,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	return e, out
}

func TestStarlarkCommand(t *testing.T) {
	for _, c := range []struct {
		expr string
		want string
	}{
		{"a * 10 + len(b)", "22"},
		{"[a, s, None]", `[2; "hi"; null]`},
		{"s * 2", `"hihi"`},
		{"f() * 2", "6"},
		{"len(m)", "2"},
		{"a > 1 and flag", "true"},
		{"a / 4", "0.5"},
		{"{'k': a}", "[k=2]"},
	} {
		t.Run(c.expr, func(t *testing.T) {
			e, _ := testEngine(t, `
				var a 2
				var b [1; 2]
				var s "hi"
				var flag true
				var m [x=1; y=2]
				var f @{add 1, 2}
				starlark "`+c.expr+`"
			`)
			if got := e.Prev().Raw(); got != c.want {
				t.Fatalf("got %v", got)
			}
		})
	}
}

func TestStarlarkScopes(t *testing.T) {
	e, _ := testEngine(t, `
		var x 1
		call inner
		var got PREV
		~~inner
			var x 5
			starlark "x + 1"
		return
	`)
	v, err := e.Get("got")
	if err != nil {
		t.Fatal(err)
	}
	if v.Raw() != "6" {
		t.Fatalf("got %v", v.Raw())
	}
	if got := e.Scope().Get("x").Raw(); got != "1" {
		t.Fatalf("got %v", got)
	}
}

func TestStarlarkError(t *testing.T) {
	e, out := testEngine(t, `
		var before 1
		starlark "nothing_here + 1"
		var after 1
	`)
	if !strings.Contains(out.String(), "Exception encountered") {
		t.Fatalf("got %q", out.String())
	}
	if e.Scope().Get("after") == nil {
		t.Fatal("run stopped")
	}
}
