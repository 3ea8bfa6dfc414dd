package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scajl/modes"
	"go.starlark.net/starlark"
)

func TestTap(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"n":   starlark.MakeInt(42),
			"get": func(name string) (string, error) { return name, nil },
		})
	})
}
