package vars

import "testing"

func TestStrToBool(t *testing.T) {
	for str, want := range map[string]bool{
		"true": true,
		" Yes": true,
		"1":    true,
		"on":   true,
		"no":   false,
		"0":    false,
		"":     false,
		"what": false,
	} {
		if got := StrToBool(str); got != want {
			t.Fatalf("%q: got %v", str, got)
		}
	}
}

func TestFirstNonZero(t *testing.T) {
	if got := FirstNonZero("", "a", "b"); got != "a" {
		t.Fatalf("got %v", got)
	}
	if got := FirstNonZero(0, 0); got != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestDerefOrZero(t *testing.T) {
	if got := DerefOrZero[int](nil); got != 0 {
		t.Fatalf("got %v", got)
	}
	s := "x"
	if got := DerefOrZero(&s); got != "x" {
		t.Fatalf("got %v", got)
	}
}
