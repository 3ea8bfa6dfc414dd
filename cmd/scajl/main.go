package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/reusee/dscope"
	"github.com/reusee/scajl/cmds"
	"github.com/reusee/scajl/logs"
	"github.com/reusee/scajl/modes"
	"github.com/reusee/scajl/scajl"
	"github.com/reusee/scajl/scajlconfigs"
	"github.com/reusee/scajl/syncs"
	"github.com/reusee/scajl/vars"
)

var (
	targets     = cmds.Collect[string]("run", "run a script file, url or name")
	lines       = cmds.Collect[string]("-e", "execute a line")
	labelFlag   = cmds.Var[string]("-label", "start scripts from this label")
	interactive = cmds.Switch("repl", "start an interactive session")
	listFlag    = cmds.Switch("-cmds", "list script commands")
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
	if len(*targets) == 0 && len(*lines) == 0 && !*listFlag {
		*interactive = true
	}

	ctx, cancel := stopContext(context.Background())
	defer cancel()

	var failed atomic.Bool
	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		newEngine NewEngine,
		loader TargetLoader,
		parallel scajlconfigs.Parallel,
		runREPL RunREPL,
	) {

		if *listFlag {
			e, err := newEngine(scajl.Script{Name: "commands"})
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed.Store(true)
				return
			}
			if _, err := e.Exec(ctx, "?"); err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed.Store(true)
			}
			return
		}

		// batch
		sem := syncs.NewSemaphore(int(parallel))
		wg := new(sync.WaitGroup)
		for _, target := range *targets {
			if err := sem.Acquire(ctx); err != nil {
				failed.Store(true)
				break
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release()
				ctx, _ := newSpan(ctx, "", "target", target)
				if err := runTarget(ctx, newEngine, loader, target, vars.DerefOrZero(labelFlag)); err != nil {
					logger.ErrorContext(ctx, "run failed",
						"target", target,
						"error", logs.WrapSpan(ctx, err),
					)
					failed.Store(true)
				}
			}()
		}
		wg.Wait()

		if len(*lines) == 0 && !*interactive {
			return
		}

		e, err := newEngine(scajl.Script{Name: "repl"})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed.Store(true)
			return
		}
		for _, line := range *lines {
			v, err := e.Exec(ctx, line)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed.Store(true)
				return
			}
			if !*interactive {
				fmt.Println(v.Raw())
			}
		}
		if *interactive {
			if err := runREPL(ctx, e); err != nil && ctx.Err() == nil {
				fmt.Fprintln(os.Stderr, err)
				failed.Store(true)
			}
		}

	})

	if failed.Load() {
		os.Exit(-1)
	}
}

func runTarget(ctx context.Context, newEngine NewEngine, loader TargetLoader, target string, label string) error {
	script, err := loader.Load(ctx, target)
	if err != nil {
		return err
	}
	e, err := newEngine(script)
	if err != nil {
		return err
	}
	if label != "" {
		return e.RunFrom(ctx, label)
	}
	return e.Run(ctx)
}

// stopContext is cancelled on interrupt or termination.
func stopContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
