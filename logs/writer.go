package logs

import (
	"fmt"
	"io"
	"os"

	"github.com/reusee/scajl/cmds"
)

// Writer receives the terminal log output.
type Writer io.Writer

var logFileFlag = cmds.Var[string]("-log-file", "append logs to this file instead of stderr")

func (Module) Writer() Writer {
	path := *logFileFlag
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		panic(fmt.Errorf("open log file: %w", err))
	}
	return f
}
