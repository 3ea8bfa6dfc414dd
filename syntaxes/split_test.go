package syntaxes

import (
	"errors"
	"fmt"
	"testing"
)

func TestTokens(t *testing.T) {
	for _, c := range []struct {
		input string
		want  string
	}{
		{"", "[]"},
		{"a b c", "[a b c]"},
		{"a, b;c", "[a b c]"},
		{`"a b" c`, `["a b" c]`},
		{"[1; [2; 3]] x", "[[1; [2; 3]] x]"},
		{"(a (b c)) {print x, y}", "[(a (b c)) {print x, y}]"},
		{`"a \" b" c`, `["a \" b" c]`},
		{`a\ b c`, `[a\ b c]`},
	} {
		t.Run(c.input, func(t *testing.T) {
			got := fmt.Sprintf("%v", Tokens(c.input))
			if got != c.want {
				t.Fatalf("got %s", got)
			}
		})
	}
}

func TestTokensNeverSplitInsideRegions(t *testing.T) {
	inner := "x"
	for range 6 {
		inner = "[" + inner + "; (" + inner + " " + inner + ")]"
		tokens := Tokens(inner + " " + inner)
		if len(tokens) != 2 {
			t.Fatalf("got %v", tokens)
		}
		if tokens[0] != inner {
			t.Fatalf("got %v", tokens[0])
		}
	}
}

func TestArgs(t *testing.T) {
	args := Args("print a, [b, c], \"d, e\"")
	if str := fmt.Sprintf("%q", args); str != `["a" "[b, c]" "\"d, e\""]` {
		t.Fatalf("got %s", str)
	}
	if args := Args("exit"); len(args) != 0 {
		t.Fatalf("got %v", args)
	}
	if args := Args("var x -> 5"); len(args) != 1 || args[0] != "x -> 5" {
		t.Fatalf("got %v", args)
	}
}

func TestFirstToken(t *testing.T) {
	if got := FirstToken("return 1, 2"); got != "return" {
		t.Fatalf("got %v", got)
	}
	if got := FirstToken(""); got != "" {
		t.Fatalf("got %v", got)
	}
	if got := FirstToken(`"a b" c`); got != `"a b"` {
		t.Fatalf("got %v", got)
	}
}

func TestAccess(t *testing.T) {
	for _, c := range []struct {
		input string
		want  string
	}{
		{"a", "[a]"},
		{"a.b.c", "[a b c]"},
		{"[1;2;3].len", "[[1;2;3] len]"},
		{"a.(b.c).d", "[a b.c d]"},
		{`"a.b".c`, `["a.b" c]`},
		{`a\.b`, `[a\.b]`},
	} {
		got := fmt.Sprintf("%v", Access(c.input))
		if got != c.want {
			t.Fatalf("%s: got %s", c.input, got)
		}
	}
}

func TestCall(t *testing.T) {
	callee, args, ok := Call("add(1, (2 3))")
	if !ok {
		t.Fatal()
	}
	if callee != "add" {
		t.Fatalf("got %v", callee)
	}
	if args != "1, (2 3)" {
		t.Fatalf("got %v", args)
	}
	if _, _, ok := Call("(1 2)"); ok {
		t.Fatal()
	}
	if _, _, ok := Call("f(1) x"); ok {
		t.Fatal()
	}
	if _, _, ok := Call(`"f(1)"`); ok {
		t.Fatal()
	}
}

func TestSplitWindow(t *testing.T) {
	parts := Split("a -> b -> [c -> d]", "->", 2, 0)
	if str := fmt.Sprintf("%v", parts); str != "[a b [c -> d]]" {
		t.Fatalf("got %s", str)
	}
	parts = SplitOn("a->b->c", "->", 2)
	if str := fmt.Sprintf("%v", parts); str != "[a b->c]" {
		t.Fatalf("got %s", str)
	}
	if !Contains("a=1; b=2", "=", 1) {
		t.Fatal()
	}
	if Contains("[a=1]; \"b=2\"", "=", 1) {
		t.Fatal()
	}
}

func TestUnpack(t *testing.T) {
	for _, c := range []struct {
		input string
		want  string
	}{
		{"[1;2]", "1;2"},
		{`"abc"`, "abc"},
		{"(a b)", "a b"},
		{"{print x}", "print x"},
		{"[1](2)", "[1](2)"},
		{`"a"b"`, `"a"b"`},
		{"x", "x"},
		{"[a][b]", "[a][b]"},
	} {
		if got := Unpack(c.input); got != c.want {
			t.Fatalf("%s: got %s", c.input, got)
		}
	}
}

func TestEscapes(t *testing.T) {
	if got := Unescape(`a\"b\\c`); got != `a"b\c` {
		t.Fatalf("got %v", got)
	}
	if got := EscapeString(`a"b\c`); got != `a\"b\\c` {
		t.Fatalf("got %v", got)
	}
	// doubled escape is one literal escape, the quote after it is live
	if err := SyntaxCheck(`"a\\"`); err != nil {
		t.Fatal(err)
	}
	if err := SyntaxCheck(`"a\"`); !errors.Is(err, ErrUnfinished) {
		t.Fatalf("got %v", err)
	}
}

func TestSyntaxCheck(t *testing.T) {
	for _, line := range []string{
		"",
		"{",
		"}",
		"{|^",
		"print [1; (2 3)], {x}",
		`print "[("`,
	} {
		if err := SyntaxCheck(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	for _, line := range []string{
		`print "abc`,
		"print [1; 2",
		"print (a",
		"print {x",
		"{ print x",
	} {
		if err := SyntaxCheck(line); !errors.Is(err, ErrUnfinished) {
			t.Fatalf("%s: got %v", line, err)
		}
	}
	if err := SyntaxCheck("print a]"); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("got %v", err)
	}
}

func TestStripper(t *testing.T) {
	var s Stripper
	lines := []string{
		"print a // comment",
		`print "// not a comment"`,
		"print b << block",
		"still block",
		"end >> print c",
		`print "<<" d`,
	}
	var got []string
	for _, line := range lines {
		got = append(got, s.Strip(line))
	}
	if str := fmt.Sprintf("%q", got); str != `["print a" "print \"// not a comment\"" "print b" "" "print c" "print \"<<\" d"]` {
		t.Fatalf("got %s", str)
	}
	if s.InBlock() {
		t.Fatal()
	}
}
