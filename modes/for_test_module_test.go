package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestForTest(t *testing.T) {
	t.Setenv(ModeEnv, "production")
	dscope.New(ForTest(t)).Call(func(
		mt *testing.T,
		mode Mode,
	) {
		if mt != t {
			t.Fatal()
		}
		if mode != ModeDevelopment {
			t.Fatalf("got %v", mode)
		}
	})
}
