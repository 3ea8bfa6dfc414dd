package scajlconfigs

import (
	"os"

	"github.com/reusee/scajl/cmds"
	"github.com/reusee/scajl/configs"
	"github.com/reusee/scajl/vars"
)

// ScriptPath is the directory named scripts are loaded from.
type ScriptPath string

var _ configs.Configurable = ScriptPath("")

func (ScriptPath) ConfigExpr() string {
	return "script_path"
}

var scriptPathFlag = cmds.Var[string]("-script-path", "directory of named scripts")

func (Module) ScriptPath(
	loader configs.Loader,
) ScriptPath {
	return vars.FirstNonZero(
		ScriptPath(*scriptPathFlag),
		configs.FirstOf[ScriptPath](loader),
		ScriptPath(os.Getenv("SCAJL_PATH")),
		"scajl",
	)
}

type ScriptExt string

var _ configs.Configurable = ScriptExt("")

func (ScriptExt) ConfigExpr() string {
	return "script_ext"
}

var scriptExtFlag = cmds.Var[string]("-script-ext", "extension of named scripts")

func (Module) ScriptExt(
	loader configs.Loader,
) ScriptExt {
	return vars.FirstNonZero(
		ScriptExt(*scriptExtFlag),
		configs.FirstOf[ScriptExt](loader),
		".scajl",
	)
}
