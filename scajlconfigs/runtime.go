package scajlconfigs

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/reusee/scajl/cmds"
	"github.com/reusee/scajl/configs"
	"github.com/reusee/scajl/vars"
)

// DisabledCommands are registered but rejected when dispatched.
type DisabledCommands []string

func (DisabledCommands) ConfigExpr() string {
	return "disabled_commands"
}

var disableFlag = cmds.Collect[string]("-disable", "disable a script command")

func (Module) DisabledCommands(
	loader configs.Loader,
) (ret DisabledCommands) {
	for names := range configs.AllOf[DisabledCommands](loader) {
		ret = append(ret, names...)
	}
	ret = append(ret, *disableFlag...)
	slices.Sort(ret)
	return slices.Compact(ret)
}

type PrintDebug bool

func (PrintDebug) ConfigExpr() string {
	return "print_debug"
}

var debugFlag = cmds.Switch("-debug", "print every command as it runs")

func (Module) PrintDebug(
	loader configs.Loader,
) PrintDebug {
	return PrintDebug(*debugFlag) ||
		configs.FirstOf[PrintDebug](loader) ||
		PrintDebug(vars.StrToBool(os.Getenv("SCAJL_DEBUG")))
}

type HistoryFile string

func (HistoryFile) ConfigExpr() string {
	return "history_file"
}

var historyFlag = cmds.Var[string]("-history", "repl history file")

func (Module) HistoryFile(
	loader configs.Loader,
) HistoryFile {
	var fallback HistoryFile
	if dir, err := os.UserCacheDir(); err == nil {
		fallback = HistoryFile(filepath.Join(dir, "scajl_history"))
	}
	return vars.FirstNonZero(
		HistoryFile(*historyFlag),
		configs.FirstOf[HistoryFile](loader),
		fallback,
	)
}

// Parallel is the number of scripts a batch run executes at once.
type Parallel int

func (Parallel) ConfigExpr() string {
	return "parallel"
}

var parallelFlag = cmds.Var[int]("-parallel", "number of scripts run at once")

func (Module) Parallel(
	loader configs.Loader,
) Parallel {
	return vars.FirstNonZero(
		Parallel(max(*parallelFlag, 0)),
		configs.FirstOf[Parallel](loader),
		Parallel(runtime.NumCPU()),
	)
}
