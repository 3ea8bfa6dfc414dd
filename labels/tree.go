package labels

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrClosed    = errors.New("label tree already closed")
	ErrOpen      = errors.New("label not closed")
	ErrDuplicate = errors.New("duplicated label")
	ErrNotLabel  = errors.New("not a label")
	ErrNoName    = errors.New("label without name")
)

// Tree is the lexical nesting of labels. It grows while source is loaded and is read-only afterwards.
type Tree struct {
	Label   Label
	parent  *Tree
	subs    map[string]*Tree
	order   []*Tree
	growing *Tree
	done    bool
}

func NewTree(label Label) *Tree {
	return &Tree{
		Label: label,
		subs:  make(map[string]*Tree),
	}
}

// Open starts a child under the deepest growing node and returns it.
func (t *Tree) Open(label Label) (*Tree, error) {
	if t.done {
		return nil, fmt.Errorf("%w: %s", ErrClosed, t.Label.Name)
	}
	if t.growing != nil {
		return t.growing.Open(label)
	}
	t.growing = NewTree(label)
	t.growing.parent = t
	return t.growing, nil
}

// Close finishes the deepest growing node and promotes it into its parent.
// Closing a node without growing children finishes the node itself.
func (t *Tree) Close() error {
	if t.done {
		return fmt.Errorf("%w: %s", ErrClosed, t.Label.Name)
	}
	if t.growing == nil {
		t.done = true
		return nil
	}
	if err := t.growing.Close(); err != nil {
		return err
	}
	if !t.growing.done {
		return nil
	}
	sub := t.growing
	t.growing = nil
	if _, ok := t.subs[sub.Label.Name]; ok {
		return fmt.Errorf("%w: %s at line %d", ErrDuplicate, sub.Label.Name, sub.Label.Line+1)
	}
	t.subs[sub.Label.Name] = sub
	t.order = append(t.order, sub)
	return nil
}

func (t *Tree) Done() bool {
	return t.done
}

// Growing returns the deepest node still open, or nil when nothing below t is open.
func (t *Tree) Growing() *Tree {
	if t.growing == nil {
		return nil
	}
	if g := t.growing.Growing(); g != nil {
		return g
	}
	return t.growing
}

func (t *Tree) Parent() *Tree {
	return t.parent
}

func (t *Tree) Children() []*Tree {
	return t.order
}

// Lookup searches the children of t, then the children of each ancestor.
func (t *Tree) Lookup(name string) *Tree {
	for n := t; n != nil; n = n.parent {
		if sub, ok := n.subs[name]; ok {
			return sub
		}
	}
	return nil
}

// Find searches the whole subtree of t, breadth first.
func (t *Tree) Find(name string) *Tree {
	queue := []*Tree{t}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if sub, ok := n.subs[name]; ok {
			return sub
		}
		queue = append(queue, n.order...)
	}
	return nil
}

func (t *Tree) Root() *Tree {
	n := t
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Count returns the number of nodes below t.
func (t *Tree) Count() int {
	n := 0
	for _, sub := range t.order {
		n += 1 + sub.Count()
	}
	return n
}

// Path returns the names from the root down to t, joined by dots.
func (t *Tree) Path() string {
	var names []string
	for n := t; n != nil; n = n.parent {
		names = append(names, n.Label.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, ".")
}

func (t *Tree) String() string {
	var b strings.Builder
	var write func(*Tree, int)
	write = func(n *Tree, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Label.String())
		b.WriteString("\n")
		for _, sub := range n.order {
			write(sub, depth+1)
		}
	}
	write(t, 0)
	return b.String()
}
