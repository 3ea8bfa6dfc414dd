package modes

import (
	"os"
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForProduction provides ModeProduction, or the mode named by ModeEnv.
type ModuleForProduction struct {
	dscope.Module
}

func ForProduction() ModuleForProduction {
	return ModuleForProduction{}
}

func (ModuleForProduction) T() *testing.T {
	return nil
}

func (ModuleForProduction) Mode() Mode {
	if mode, ok := ParseMode(os.Getenv(ModeEnv)); ok {
		return mode
	}
	return ModeProduction
}
