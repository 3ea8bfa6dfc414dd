package scajlconfigs

import (
	"fmt"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scajl/configs"
	"github.com/reusee/scajl/modes"
)

func TestProviders(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{
				"testdata/scajl.cue",
				"testdata/extra.cue",
			}, schema)
		},
	).Call(func(
		scriptPath ScriptPath,
		scriptExt ScriptExt,
		disabled DisabledCommands,
		printDebug PrintDebug,
		parallel Parallel,
		historyFile HistoryFile,
	) {
		if scriptPath != "scripts" {
			t.Fatalf("got %v", scriptPath)
		}
		if scriptExt != ".sc" {
			t.Fatalf("got %v", scriptExt)
		}
		if str := fmt.Sprintf("%v", disabled); str != "[exit sleep user_req]" {
			t.Fatalf("got %v", str)
		}
		if !printDebug {
			t.Fatal()
		}
		if parallel != 3 {
			t.Fatalf("got %v", parallel)
		}
		_ = historyFile
	})
}

func TestDefaults(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, schema)
		},
	).Call(func(
		scriptPath ScriptPath,
		scriptExt ScriptExt,
		disabled DisabledCommands,
		parallel Parallel,
	) {
		if scriptExt != ".scajl" {
			t.Fatalf("got %v", scriptExt)
		}
		if scriptPath == "" {
			t.Fatal()
		}
		if len(disabled) != 0 {
			t.Fatalf("got %v", disabled)
		}
		if parallel < 1 {
			t.Fatalf("got %v", parallel)
		}
	})
}

func TestBadConfig(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/bad.cue"}, schema)
	var n int
	if err := loader.AssignFirst("parallel", &n); err == nil {
		t.Fatal("should error")
	}
}

func TestDebugEnv(t *testing.T) {
	t.Setenv("SCAJL_DEBUG", "yes")
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, schema)
		},
	).Call(func(
		printDebug PrintDebug,
	) {
		if !printDebug {
			t.Fatal()
		}
	})
}

func TestConfigEnv(t *testing.T) {
	t.Setenv(ConfigEnv, "testdata/extra.cue")
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Call(func(
		loader configs.Loader,
		scriptExt ScriptExt,
	) {
		paths, err := loader.Paths()
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) == 0 || paths[0] != "testdata/extra.cue" {
			t.Fatalf("got %v", paths)
		}
		if scriptExt != ".sc" {
			t.Fatalf("got %v", scriptExt)
		}
	})
}
