package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForTest always provides ModeDevelopment, so tests never reach a proxy.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (m ModuleForTest) Mode() Mode {
	return ModeDevelopment
}
