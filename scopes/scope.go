package scopes

import (
	"errors"
	"iter"

	"github.com/reusee/scajl/labels"
	"github.com/reusee/scajl/variables"
)

var ErrBottom = errors.New("cannot pop the bottom frame")

// Frame holds the variables of one label invocation.
type Frame struct {
	Tree  *labels.Tree
	vars  map[string]variables.Variable
	names []string
}

func NewFrame(tree *labels.Tree) *Frame {
	return &Frame{
		Tree: tree,
		vars: make(map[string]variables.Variable),
	}
}

func (f *Frame) Get(name string) (variables.Variable, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f *Frame) Put(name string, v variables.Variable) {
	if _, ok := f.vars[name]; !ok {
		f.names = append(f.names, name)
	}
	f.vars[name] = v
}

func (f *Frame) Delete(name string) {
	if _, ok := f.vars[name]; !ok {
		return
	}
	delete(f.vars, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
}

// Names returns the variable names in insertion order.
func (f *Frame) Names() []string {
	return f.names
}

func (f *Frame) Len() int {
	return len(f.names)
}

// Scope is the runtime stack of frames. The bottom frame holds globals.
type Scope struct {
	frames []*Frame
}

func New(root *labels.Tree) *Scope {
	return &Scope{
		frames: []*Frame{NewFrame(root)},
	}
}

func (s *Scope) Push(tree *labels.Tree) *Frame {
	f := NewFrame(tree)
	s.frames = append(s.frames, f)
	return f
}

func (s *Scope) Pop() (*Frame, error) {
	if len(s.frames) == 1 {
		return nil, ErrBottom
	}
	f := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

// Reset drops every frame above the bottom one.
func (s *Scope) Reset() {
	clear(s.frames[1:])
	s.frames = s.frames[:1]
}

func (s *Scope) Top() *Frame {
	return s.frames[len(s.frames)-1]
}

func (s *Scope) Bottom() *Frame {
	return s.frames[0]
}

func (s *Scope) Depth() int {
	return len(s.frames)
}

// Get scans frames from the top down.
func (s *Scope) Get(name string) variables.Variable {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].vars[name]; ok {
			return v
		}
	}
	return nil
}

// Put writes into the top frame.
func (s *Scope) Put(name string, v variables.Variable) {
	s.Top().Put(name, v)
}

// MakeGlobal moves the nearest definition of name into the bottom frame.
// A name with no definition is bound to null.
func (s *Scope) MakeGlobal(name string) {
	v := variables.Variable(variables.Null)
	for i := len(s.frames) - 1; i >= 0; i-- {
		if found, ok := s.frames[i].vars[name]; ok {
			v = found
			s.frames[i].Delete(name)
			break
		}
	}
	s.Bottom().Put(name, v)
}

// Integrate copies the globals of other into the globals of s.
func (s *Scope) Integrate(other *Scope) {
	from := other.Bottom()
	for _, name := range from.names {
		s.Bottom().Put(name, from.vars[name])
	}
}

// All yields frames from the bottom up with their depth.
func (s *Scope) All() iter.Seq2[int, *Frame] {
	return func(yield func(int, *Frame) bool) {
		for i, f := range s.frames {
			if !yield(i, f) {
				return
			}
		}
	}
}
