package scajl

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/reusee/scajl/logs"
)

type Options struct {
	Stdin      io.Reader    // if nil, default to os.Stdin
	Stdout     io.Writer    // if nil, default to os.Stdout
	Logger     logs.Logger  // if nil, logs are discarded
	NewSpan    logs.NewSpan // if set, every run gets a span
	Scripts    ScriptLoader
	Kill       *atomic.Bool // shared with every engine started by run_script
	Callbacks  Callbacks
	PrintDebug bool
	Path       string
}

// Script is loaded source text.
type Script struct {
	Name    string
	Path    string
	Content string
}

// ScriptLoader finds scripts by name for run_script and friends.
type ScriptLoader interface {
	Load(ctx context.Context, name string) (Script, error)
}
