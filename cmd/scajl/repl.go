package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/scajl/logs"
	"github.com/reusee/scajl/scajl"
	"github.com/reusee/scajl/scajlconfigs"
)

type RunREPL func(ctx context.Context, e *scajl.Engine) error

func (Module) RunREPL(
	historyFile scajlconfigs.HistoryFile,
	logger logs.Logger,
) RunREPL {
	return func(ctx context.Context, e *scajl.Engine) error {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "scajl> ",
			HistoryFile:     string(historyFile),
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			} else if err != nil {
				return err
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			res, err := e.Exec(ctx, line)
			if err != nil {
				// exceptions and syntax errors are already reported by the engine callbacks
				var exc *scajl.Exception
				var loadErr *scajl.LoadError
				if !errors.As(err, &exc) && !errors.As(err, &loadErr) {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				logger.DebugContext(ctx, "repl line failed", "line", line, "error", err)
				continue
			}
			if e.Killed() {
				return nil
			}
			if res != nil {
				fmt.Println(res.Raw())
			}
		}
	}
}
