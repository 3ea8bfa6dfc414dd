package variables

import (
	"errors"
	"testing"
)

type testContext struct {
	vars map[string]Variable
	runs int
}

func newTestContext() *testContext {
	return &testContext{
		vars: make(map[string]Variable),
	}
}

func (c *testContext) Lookup(name string) Variable {
	return c.vars[name]
}

func (c *testContext) Store(name string, v Variable) error {
	c.vars[name] = v
	return nil
}

func (c *testContext) RunExecutable(x *Executable) (Variable, error) {
	c.runs++
	return Resolve(c, x.Body, false, x.Self)
}

func mustResolve(t *testing.T, ctx Context, input string) Variable {
	t.Helper()
	v, err := Resolve(ctx, input, false, nil)
	if err != nil {
		t.Fatalf("%s: %v", input, err)
	}
	return v
}

func TestResolveScalars(t *testing.T) {
	ctx := newTestContext()

	if v := mustResolve(t, ctx, "null"); !IsNull(v) {
		t.Fatalf("got %v", v.Raw())
	}
	if v := mustResolve(t, ctx, "-1.5"); v.Kind() != KindValue || v.Raw() != "-1.5" {
		t.Fatalf("got %v", v.Raw())
	}
	v := mustResolve(t, ctx, `"a \" b"`)
	if v.Kind() != KindString {
		t.Fatalf("got %v", v.Kind())
	}
	if val, _ := v.Val(ctx); val != `a " b` {
		t.Fatalf("got %v", val)
	}

	// unknown names fall back to their own text
	v = mustResolve(t, ctx, "foo")
	if v.Kind() != KindValue || v.Raw() != "foo" {
		t.Fatalf("got %v", v.Raw())
	}

	// stored variables are returned by identity
	arr := ArrayOf(ValueOf("1"))
	ctx.vars["arr"] = arr
	if v := mustResolve(t, ctx, "arr"); v != arr {
		t.Fatal()
	}
}

func TestModifiers(t *testing.T) {
	ctx := newTestContext()
	arr := ArrayOf(ValueOf("1"), ValueOf("2"))
	ctx.vars["x"] = arr

	if v := mustResolve(t, ctx, "$x"); v.Kind() != KindValue || v.Raw() != "x" {
		t.Fatalf("got %v", v.Raw())
	}
	if v := mustResolve(t, ctx, "$$x"); v.Raw() != "x" {
		t.Fatalf("got %v", v.Raw())
	}

	v, err := Resolve(ctx, "%x", true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != arr {
		t.Fatal()
	}

	ref := mustResolve(t, ctx, "@x")
	if ref.Kind() != KindReference || ref.Raw() != "@x" {
		t.Fatalf("got %v", ref.Raw())
	}
	if val, _ := ref.Val(ctx); val != "[1; 2]" {
		t.Fatalf("got %v", val)
	}
	ctx.vars["x"] = ValueOf("3")
	if val, _ := ref.Val(ctx); val != "3" {
		t.Fatalf("got %v", val)
	}

	ctx.vars["x"] = arr
	clone := mustResolve(t, ctx, "&x")
	if clone == arr || clone.Raw() != arr.Raw() {
		t.Fatal()
	}

	var verr *Error
	for _, input := range []string{"$@x", "^x", "|x", "@a.b", `$"x"`, "$[1]", "%{x}"} {
		if _, err := Resolve(ctx, input, false, nil); !errors.As(err, &verr) {
			t.Fatalf("%s: got %v", input, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := newTestContext()
	for _, input := range []string{
		"5",
		"x",
		`"a \" b"`,
		"[1;2;[3;4]]",
		"[a=1; b=[c=2]; d=\"e\"]",
		"(1 2 x)",
		"[]",
		"[(1 2); [k=v]]",
	} {
		first := mustResolve(t, ctx, input).Raw()
		second := mustResolve(t, ctx, first).Raw()
		if first != second {
			t.Fatalf("%s: %s != %s", input, first, second)
		}
	}
}

func TestClone(t *testing.T) {
	ctx := newTestContext()
	orig := mustResolve(t, ctx, "[1; [2; 3]; [k=v]]").(*Array)
	clone := orig.Clone().(*Array)
	if clone == orig || clone.Raw() != orig.Raw() {
		t.Fatal()
	}
	for _, e := range clone.Elems() {
		if e.Kind() == KindArray && e.Parent() != clone {
			t.Fatal()
		}
	}

	acc, err := Access(ctx, clone, []string{"1", "0"})
	if err != nil {
		t.Fatal(err)
	}
	if err := acc.Set(ValueOf("9")); err != nil {
		t.Fatal(err)
	}
	if orig.Raw() != "[1; [2; 3]; [k=v]]" {
		t.Fatalf("got %v", orig.Raw())
	}
	if clone.Raw() != "[1; [9; 3]; [k=v]]" {
		t.Fatalf("got %v", clone.Raw())
	}
}

func TestArrayLen(t *testing.T) {
	ctx := newTestContext()
	if v := mustResolve(t, ctx, "[1;2;3].len"); v.Raw() != "3" {
		t.Fatalf("got %v", v.Raw())
	}

	ctx.vars["arr"] = mustResolve(t, ctx, "[1;2;3]")
	if err := Put(ctx, "arr.len", ValueOf("5"), nil); err != nil {
		t.Fatal(err)
	}
	if v := mustResolve(t, ctx, "arr"); v.Raw() != "[1; 2; 3; null; null]" {
		t.Fatalf("got %v", v.Raw())
	}
	if err := Put(ctx, "arr.len", ValueOf("1.4"), nil); err != nil {
		t.Fatal(err)
	}
	if v := mustResolve(t, ctx, "arr"); v.Raw() != "[1]" {
		t.Fatalf("got %v", v.Raw())
	}

	var verr *Error
	for _, input := range []string{"arr.1", "arr.-1", "arr.x", "arr.0.0"} {
		if _, err := Resolve(ctx, input, false, nil); !errors.As(err, &verr) {
			t.Fatalf("%s: got %v", input, err)
		}
	}
}

func TestMapAccess(t *testing.T) {
	ctx := newTestContext()
	if v := mustResolve(t, ctx, "[a=1;b=2].a"); v.Raw() != "1" {
		t.Fatalf("got %v", v.Raw())
	}
	if v := mustResolve(t, ctx, "[a=1;b=2].c"); !IsNull(v) {
		t.Fatalf("got %v", v.Raw())
	}
	if v := mustResolve(t, ctx, "[a=1;b=2].len"); v.Raw() != "2" {
		t.Fatalf("got %v", v.Raw())
	}
	_, err := Resolve(ctx, "[a=1;b=2].c.x", false, nil)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("got %v", err)
	}
	if verr.Reason != "Missing map key" {
		t.Fatalf("got %v", verr.Reason)
	}

	ctx.vars["m"] = mustResolve(t, ctx, "[a=1]")
	if err := Put(ctx, "m.b", StringOf("x"), nil); err != nil {
		t.Fatal(err)
	}
	m := ctx.vars["m"].(*Map)
	if m.Raw() != `[a=1; b="x"]` {
		t.Fatalf("got %v", m.Raw())
	}
	if err := Put(ctx, "m.len", ValueOf("3"), nil); err == nil {
		t.Fatal()
	}
}

func TestSelf(t *testing.T) {
	ctx := newTestContext()
	m := mustResolve(t, ctx, "[a=1; f=@{self.a}]").(*Map)
	f, ok := m.Get("f")
	if !ok {
		t.Fatal()
	}
	x, ok := f.(*Executable)
	if !ok {
		t.Fatalf("got %T", f)
	}
	if x.Self != m {
		t.Fatal()
	}
	out, err := x.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if out.Raw() != "1" {
		t.Fatalf("got %v", out.Raw())
	}

	if _, err := Resolve(ctx, "self", false, nil); err == nil {
		t.Fatal()
	}
	if v := mustResolve(t, ctx, "[1;2].self.len"); v.Raw() != "2" {
		t.Fatalf("got %v", v.Raw())
	}
}

func TestExecutable(t *testing.T) {
	ctx := newTestContext()
	v := mustResolve(t, ctx, "{[1;2]}")
	if v.Kind() != KindArray || ctx.runs != 1 {
		t.Fatalf("got %v", v.Raw())
	}
	v = mustResolve(t, ctx, "@{[1;2]}")
	if v.Kind() != KindExecutable || v.Raw() != "@{[1;2]}" || ctx.runs != 1 {
		t.Fatalf("got %v", v.Raw())
	}
}

func TestReferenceAccess(t *testing.T) {
	ctx := newTestContext()
	ctx.vars["arr"] = mustResolve(t, ctx, "[a; b]")
	ctx.vars["r"] = RefTo("arr")
	if v := mustResolve(t, ctx, "r.1"); v.Raw() != "b" {
		t.Fatalf("got %v", v.Raw())
	}
}

func TestPut(t *testing.T) {
	ctx := newTestContext()
	if err := Put(ctx, "x", ValueOf("5"), nil); err != nil {
		t.Fatal(err)
	}
	if v := mustResolve(t, ctx, "x"); v.Raw() != "5" {
		t.Fatalf("got %v", v.Raw())
	}

	ctx.vars["arr"] = mustResolve(t, ctx, "[1;2]")
	elem := ValueOf("3")
	if err := Put(ctx, "arr.0", elem, nil); err != nil {
		t.Fatal(err)
	}
	inner := ArrayOf()
	if err := Put(ctx, "arr.1", inner, nil); err != nil {
		t.Fatal(err)
	}
	if inner.Parent() != ctx.vars["arr"] {
		t.Fatal()
	}

	var verr *Error
	for _, name := range []string{"5", "a b", "a!", ""} {
		if err := Put(ctx, name, Null, nil); !errors.As(err, &verr) {
			t.Fatalf("%q: got %v", name, err)
		}
	}
}

func TestNumbers(t *testing.T) {
	if s := FormatNumber(3); s != "3" {
		t.Fatalf("got %v", s)
	}
	if s := FormatNumber(2.5); s != "2.5" {
		t.Fatalf("got %v", s)
	}
	if IsNumber("Inf") || IsNumber("1_000") || IsNumber("") || !IsNumber(".5") {
		t.Fatal()
	}
	if n, ok := ParseInt("2.5"); !ok || n != 3 {
		t.Fatalf("got %v", n)
	}
	if _, ok := ParseBool("yes"); ok {
		t.Fatal()
	}
}
