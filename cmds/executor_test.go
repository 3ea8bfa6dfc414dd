package cmds

import (
	"strings"
	"testing"
	"time"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var targets, lines, disabled []string
	var parallel int
	var repl bool
	executor.Define("run", Func(func(target string) {
		targets = append(targets, target)
	}))
	executor.Define("-e", Func(func(line string) {
		lines = append(lines, line)
	}))
	executor.Define("-disable", Func(func(name string) {
		disabled = append(disabled, name)
	}))
	executor.Define("-parallel", Func(func(n int) {
		parallel = n
	}))
	executor.Define("repl", Func(func() {
		repl = true
	}))

	if err := executor.Execute([]string{
		"run", "a.scajl",
		"-e", "var x 1",
		"-disable", "exit",
		"run", "https://example.com/b.scajl",
		"-parallel", "2",
		"-disable", "sleep",
		"repl",
	}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(targets, ",") != "a.scajl,https://example.com/b.scajl" {
		t.Fatalf("got %v", targets)
	}
	if strings.Join(lines, ",") != "var x 1" {
		t.Fatalf("got %v", lines)
	}
	if strings.Join(disabled, ",") != "exit,sleep" {
		t.Fatalf("got %v", disabled)
	}
	if parallel != 2 {
		t.Fatalf("got %v", parallel)
	}
	if !repl {
		t.Fatal()
	}

	err := executor.Execute([]string{"-parallel", "two"})
	if err == nil || !strings.Contains(err.Error(), "convert two to int") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"run"})
	if err == nil || !strings.Contains(err.Error(), "expecting argument") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"exec", "a.scajl"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: exec") {
		t.Fatalf("got %v", err)
	}
}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var label string
	var timeout time.Duration
	executor.Define("remote", Sub(map[string]*Command{
		"-label": Func(func(name string) {
			label = name
		}),
		"-timeout": Func(func(d time.Duration) {
			timeout = d
		}),
	}))

	if err := executor.Execute([]string{
		"remote",
		"-label", "main",
		"-timeout", "3s",
	}); err != nil {
		t.Fatal(err)
	}
	if label != "main" {
		t.Fatalf("got %v", label)
	}
	if timeout != 3*time.Second {
		t.Fatalf("got %v", timeout)
	}

	// sub commands are only visible after their parent
	err := executor.Execute([]string{"-label", "main"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: -label") {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("run", Sub(map[string]*Command{
		"-label": nil,
	}))
	executor.Define("repl", Sub(map[string]*Command{
		"-label": nil,
	}))
	err := executor.Execute([]string{"run", "repl"})
	if err == nil || !strings.Contains(err.Error(), "duplicated sub command: repl -label") {
		t.Fatalf("got %v", err)
	}
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var target, label string
	executor.Define("run", Func(func(name *string, from *string) {
		target = *name
		label = *from
	}))

	if err := executor.Execute([]string{"run", "a.scajl", "main"}); err != nil {
		t.Fatal(err)
	}
	if target != "a.scajl" || label != "main" {
		t.Fatalf("got %v %v", target, label)
	}

	if err := executor.Execute([]string{"run", "b.scajl"}); err != nil {
		t.Fatal(err)
	}
	if target != "b.scajl" || label != "" {
		t.Fatalf("got %v %v", target, label)
	}

	if err := executor.Execute([]string{"run"}); err != nil {
		t.Fatal(err)
	}
	if target != "" || label != "" {
		t.Fatalf("got %v %v", target, label)
	}
}

func TestCommandSignature(t *testing.T) {
	cases := []struct {
		cmd  *Command
		want string
	}{
		{Func(func() {}), ""},
		{Func(func(string) {}), "<string>"},
		{Func(func(int, *string) {}), "<int> [string]"},
		{Func(func(time.Duration) {}), "<duration>"},
		{Sub(nil), ""},
	}
	for _, c := range cases {
		if got := c.cmd.Signature(); got != c.want {
			t.Fatalf("got %q, want %q", got, c.want)
		}
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("should panic")
			}
		}()
		Func(func([]string) {})
	}()
}
