package cmds

import (
	"fmt"
	"testing"
	"time"
)

func TestVar(t *testing.T) {
	a := Var[int]("foo")
	b := Var[string]("bar")
	GlobalExecutor.MustExecute([]string{
		"foo", "42",
		"bar", "bar",
	})
	if *a != 42 {
		t.Fatal()
	}
	if *b != "bar" {
		t.Fatal()
	}
}

func TestSwitch(t *testing.T) {
	foo := Switch("TestSwitch")
	GlobalExecutor.Execute([]string{
		"TestSwitch",
	})
	if *foo != true {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"!TestSwitch",
	})
	if *foo != false {
		t.Fatal()
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("TestCollect")
	GlobalExecutor.MustExecute([]string{
		"TestCollect", "a",
		"TestCollect", "b",
	})
	if str := fmt.Sprintf("%v", *list); str != "[a b]" {
		t.Fatalf("got %s", str)
	}
}

func TestTypedVar(t *testing.T) {
	type Foo string
	v := Var[Foo]("TestTypedVar")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "bar",
	})
	if *v != "bar" {
		t.Fatal()
	}
}

func TestDurationVar(t *testing.T) {
	d := Var[time.Duration]("TestDurationVar", "a duration")
	GlobalExecutor.MustExecute([]string{
		"TestDurationVar", "1m30s",
	})
	if *d != 90*time.Second {
		t.Fatalf("got %v", *d)
	}
	GlobalExecutor.MustExecute([]string{
		"TestDurationVar.",
	})
	if *d != 0 {
		t.Fatalf("got %v", *d)
	}
	if err := GlobalExecutor.Execute([]string{
		"TestDurationVar", "soon",
	}); err == nil {
		t.Fatal("expected error")
	}
}
