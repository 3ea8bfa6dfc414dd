package main

import (
	"os"

	"github.com/reusee/scajl/debugs"
	"github.com/reusee/scajl/logs"
	"github.com/reusee/scajl/nets"
	"github.com/reusee/scajl/scajl"
	"github.com/reusee/scajl/scajlconfigs"
	"github.com/reusee/scajl/scripts"
	"golang.org/x/term"
)

type NewEngine func(script scajl.Script) (*scajl.Engine, error)

func (Module) NewEngine(
	register debugs.Register,
	disabled scajlconfigs.DisabledCommands,
	printDebug scajlconfigs.PrintDebug,
	loader scajl.ScriptLoader,
	logger logs.Logger,
	newSpan logs.NewSpan,
) NewEngine {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return func(script scajl.Script) (*scajl.Engine, error) {
		reg := scajl.NewRegistry()
		if err := scajl.RegisterBuiltins(reg); err != nil {
			return nil, err
		}
		if err := register(reg); err != nil {
			return nil, err
		}
		reg.Disable(disabled...)

		var callbacks scajl.Callbacks
		if interactive {
			callbacks.UserRequest = promptUserInput
		}
		return scajl.NewString(reg, script.Name, script.Content, scajl.Options{
			Logger:     logger.With("script", script.Name),
			NewSpan:    newSpan,
			Scripts:    loader,
			PrintDebug: bool(printDebug),
			Path:       script.Path,
			Callbacks:  callbacks,
		})
	}
}

// TargetLoader resolves command line targets: urls, then file paths, then script names.
type TargetLoader scajl.ScriptLoader

func (Module) TargetLoader(
	client nets.HTTPClient,
	scriptPath scajlconfigs.ScriptPath,
	scriptExt scajlconfigs.ScriptExt,
) TargetLoader {
	return scripts.Chain{
		scripts.Remote{
			Client: client,
		},
		scripts.Path{},
		scripts.Files{
			Dir: string(scriptPath),
			Ext: string(scriptExt),
		},
	}
}
