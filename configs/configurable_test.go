package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	str := First[string](loader, "str")
	if str != "bar" {
		t.Fatalf("got %v", str)
	}

	list := First[[]int](loader, "not")
	if list != nil {
		t.Fatalf("got %v", list)
	}

}

type testStr string

func (testStr) ConfigExpr() string {
	return "str"
}

func TestFirstOf(t *testing.T) {
	loader := NewLoader([]string{"test2.cue", "test.cue"}, testSchema)
	if s := FirstOf[testStr](loader); s != "foo" {
		t.Fatalf("got %v", s)
	}
}

func TestAllOf(t *testing.T) {
	loader := NewLoader([]string{"test2.cue", "test.cue"}, testSchema)
	var got []testStr
	for s := range AllOf[testStr](loader) {
		got = append(got, s)
	}
	if len(got) != 2 || got[0] != "foo" || got[1] != "bar" {
		t.Fatalf("got %v", got)
	}
}
