package variables

import (
	"slices"
	"strings"
)

const (
	ArraySep   = "; "
	MapKeyEq   = "="
	SelfKey    = "self"
	LenKey     = "len"
	groupSep   = " "
	arrayOpen  = "["
	arrayClose = "]"
	groupOpen  = "("
	groupClose = ")"
	execPrefix = "@{"
	execClose  = "}"
)

// Array is an ordered, resizable sequence.
type Array struct {
	source
	parented
	elems []Variable
}

var _ Variable = new(Array)

func ArrayOf(elems ...Variable) *Array {
	a := &Array{}
	for _, e := range elems {
		a.Append(e)
	}
	a.input = a.Raw()
	a.modless = a.input
	return a
}

func (a *Array) Kind() Kind {
	return KindArray
}

func (a *Array) Len() int {
	return len(a.elems)
}

func (a *Array) At(i int) Variable {
	return a.elems[i]
}

func (a *Array) Elems() []Variable {
	return slices.Clone(a.elems)
}

func (a *Array) Append(v Variable) {
	v.setParent(a)
	a.elems = append(a.elems, v)
}

func (a *Array) Set(i int, v Variable) {
	v.setParent(a)
	a.elems[i] = v
}

// Resize grows the array with nulls or truncates it.
func (a *Array) Resize(n int) {
	if n < len(a.elems) {
		clear(a.elems[n:])
		a.elems = a.elems[:n]
		return
	}
	for len(a.elems) < n {
		a.elems = append(a.elems, Null)
	}
}

func (a *Array) Raw() string {
	return arrayOpen + joinRaw(a.elems, ArraySep) + arrayClose
}

func (a *Array) Val(ctx Context) (string, error) {
	s, err := joinVal(ctx, a.elems, ArraySep)
	if err != nil {
		return "", err
	}
	return arrayOpen + s + arrayClose, nil
}

func (a *Array) Clone() Variable {
	c := &Array{
		source: a.source,
		elems:  make([]Variable, 0, len(a.elems)),
	}
	for _, e := range a.elems {
		c.Append(e.Clone())
	}
	return c
}

// Map is a string keyed map that keeps insertion order.
type Map struct {
	source
	parented
	keys []string
	vals map[string]Variable
}

var _ Variable = new(Map)

func NewMap() *Map {
	m := &Map{
		vals: make(map[string]Variable),
	}
	m.input = arrayOpen + arrayClose
	m.modless = m.input
	return m
}

func (m *Map) Kind() Kind {
	return KindMap
}

func (m *Map) Len() int {
	return len(m.keys)
}

func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

func (m *Map) Get(key string) (Variable, bool) {
	v, ok := m.vals[key]
	return v, ok
}

func (m *Map) Put(key string, v Variable) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	v.setParent(m)
	m.vals[key] = v
}

func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool {
		return k == key
	})
}

func (m *Map) Raw() string {
	var b strings.Builder
	b.WriteString(arrayOpen)
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(ArraySep)
		}
		b.WriteString(k)
		b.WriteString(MapKeyEq)
		b.WriteString(m.vals[k].Raw())
	}
	b.WriteString(arrayClose)
	return b.String()
}

func (m *Map) Val(ctx Context) (string, error) {
	var b strings.Builder
	b.WriteString(arrayOpen)
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(ArraySep)
		}
		val, err := m.vals[k].Val(ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(k)
		b.WriteString(MapKeyEq)
		b.WriteString(val)
	}
	b.WriteString(arrayClose)
	return b.String(), nil
}

func (m *Map) Clone() Variable {
	c := &Map{
		source: m.source,
		vals:   make(map[string]Variable, len(m.vals)),
	}
	for _, k := range m.keys {
		c.Put(k, m.vals[k].Clone())
	}
	return c
}

// TokenGroup is a fixed arity tuple resolved when it is read.
type TokenGroup struct {
	source
	parented
	elems []Variable
}

var _ Variable = new(TokenGroup)

func GroupOf(elems ...Variable) *TokenGroup {
	g := &TokenGroup{
		elems: elems,
	}
	g.input = g.Raw()
	g.modless = g.input
	return g
}

func (g *TokenGroup) Kind() Kind {
	return KindTokenGroup
}

func (g *TokenGroup) Len() int {
	return len(g.elems)
}

func (g *TokenGroup) Elems() []Variable {
	return slices.Clone(g.elems)
}

func (g *TokenGroup) Raw() string {
	return groupOpen + joinRaw(g.elems, groupSep) + groupClose
}

func (g *TokenGroup) Val(ctx Context) (string, error) {
	s, err := joinVal(ctx, g.elems, groupSep)
	if err != nil {
		return "", err
	}
	return groupOpen + s + groupClose, nil
}

func (g *TokenGroup) Clone() Variable {
	c := *g
	c.elems = slices.Clone(g.elems)
	return &c
}

// Executable is an unevaluated block, optionally bound to the container it was written in.
type Executable struct {
	source
	parented
	Body     string
	Self     Variable
	Bindings []Binding
}

var _ Variable = new(Executable)

func ExecutableOf(body string, self Variable, bindings ...Binding) *Executable {
	x := &Executable{
		Body:     strings.TrimSpace(body),
		Self:     self,
		Bindings: bindings,
	}
	x.input = x.Raw()
	x.modless = "{" + x.Body + execClose
	return x
}

func (x *Executable) Kind() Kind {
	return KindExecutable
}

func (x *Executable) Raw() string {
	return execPrefix + x.Body + execClose
}

func (x *Executable) Run(ctx Context) (Variable, error) {
	return ctx.RunExecutable(x)
}

func (x *Executable) Val(ctx Context) (string, error) {
	out, err := x.Run(ctx)
	if err != nil {
		return "", err
	}
	return out.Val(ctx)
}

func (x *Executable) Clone() Variable {
	c := *x
	c.Bindings = slices.Clone(x.Bindings)
	return &c
}
