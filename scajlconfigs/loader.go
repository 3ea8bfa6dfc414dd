package scajlconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/scajl/cmds"
	"github.com/reusee/scajl/configs"
	"github.com/reusee/scajl/logs"
)

//go:embed schema.cue
var schema string

var configFileFlag = cmds.Var[string]("-config", "load this config file before the searched ones")

// ConfigEnv names a config file loaded after the flag and before the searched ones.
const ConfigEnv = "SCAJL_CONFIG"

var configFileNames = []string{
	"scajl.cue",
	".scajl.cue",
}

// searchDirs lists config directories by precedence.
func searchDirs() (ret []string) {
	if dir, err := os.Getwd(); err == nil {
		ret = append(ret, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		ret = append(ret, dir)
	}
	return append(ret, "/etc")
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	var paths []string
	for _, explicit := range []string{
		*configFileFlag,
		os.Getenv(ConfigEnv),
	} {
		if explicit != "" {
			paths = append(paths, explicit)
		}
	}
	for _, dir := range searchDirs() {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	if len(paths) > 0 {
		logger.Info("config files", "paths", paths)
	}
	return configs.NewLoader(paths, schema)
}
