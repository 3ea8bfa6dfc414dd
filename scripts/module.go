package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scajl/logs"
	"github.com/reusee/scajl/nets"
	"github.com/reusee/scajl/scajl"
	"github.com/reusee/scajl/scajlconfigs"
)

type Module struct {
	dscope.Module
	Nets    nets.Module
	Configs scajlconfigs.Module
}

// Loader resolves names for run_script: remote urls first, then the script directory.
func (Module) Loader(
	scriptPath scajlconfigs.ScriptPath,
	scriptExt scajlconfigs.ScriptExt,
	client nets.HTTPClient,
	logger logs.Logger,
) scajl.ScriptLoader {
	logger.Debug("script loader",
		"dir", scriptPath,
		"ext", scriptExt,
	)
	return Chain{
		Remote{
			Client: client,
		},
		Files{
			Dir: string(scriptPath),
			Ext: string(scriptExt),
		},
	}
}
