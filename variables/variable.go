package variables

import (
	"strings"
)

type Kind uint8

const (
	KindValue Kind = iota
	KindString
	KindReference
	KindArray
	KindMap
	KindTokenGroup
	KindExecutable
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "Value"
	case KindString:
		return "String"
	case KindReference:
		return "Reference"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindTokenGroup:
		return "TokenGroup"
	case KindExecutable:
		return "Executable"
	}
	return "Unknown"
}

// Variable is the closed set of script values.
type Variable interface {
	Kind() Kind
	// Input is the text the variable was resolved from, modifiers included.
	Input() string
	// Modless is Input without its modifier prefix.
	Modless() string
	// Raw renders the variable in a form Resolve reads back.
	Raw() string
	// Val is the evaluated text of the variable.
	Val(ctx Context) (string, error)
	Clone() Variable
	// Parent is the container that last stored the variable, if any.
	Parent() Variable

	setParent(Variable)
}

// Context is the runtime a variable resolves against.
type Context interface {
	Lookup(name string) Variable
	Store(name string, v Variable) error
	RunExecutable(x *Executable) (Variable, error)
}

type Binding struct {
	Name  string
	Value Variable
}

type source struct {
	input   string
	modless string
}

func (s source) Input() string {
	return s.input
}

func (s source) Modless() string {
	return s.modless
}

type parented struct {
	parent Variable
}

func (p *parented) Parent() Variable {
	return p.parent
}

func (p *parented) setParent(v Variable) {
	p.parent = v
}

type orphan struct{}

func (orphan) Parent() Variable {
	return nil
}

func (orphan) setParent(Variable) {}

// Equal compares canonical renderings.
func Equal(a, b Variable) bool {
	return a.Raw() == b.Raw()
}

func IsNull(v Variable) bool {
	if v == nil {
		return true
	}
	val, ok := v.(*Value)
	return ok && val.text == NullText
}

func joinRaw(elems []Variable, sep string) string {
	var b strings.Builder
	for i, e := range elems {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(e.Raw())
	}
	return b.String()
}

func joinVal(ctx Context, elems []Variable, sep string) (string, error) {
	var b strings.Builder
	for i, e := range elems {
		if i > 0 {
			b.WriteString(sep)
		}
		val, err := e.Val(ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(val)
	}
	return b.String(), nil
}
