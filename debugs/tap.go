package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/scajl/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens an interactive Starlark session over globals and returns when the input ends.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap", "script", what, "globals", names)
		defer logger.InfoContext(ctx, "tap end", "script", what)

		dict := make(starlark.StringDict, len(globals))
		for _, name := range names {
			value, err := hostValue(globals[name])
			if err != nil {
				logger.WarnContext(ctx, "tap skip", "name", name, "error", err)
				continue
			}
			dict[name] = value
		}

		thread := &starlark.Thread{
			Name: "tap:" + what,
		}
		if ctx != nil {
			stop := context.AfterFunc(ctx, func() {
				thread.Cancel(context.Cause(ctx).Error())
			})
			defer stop()
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, dict)
	}
}
