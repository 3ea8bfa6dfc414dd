package scajl

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrDuplicateCommand = errors.New("cannot register two commands to the same name")

// Registry holds the commands and types engines dispatch to.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]*Command
	order     []*Command
	types     map[string]*Type
	typeOrder []*Type
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		types:    make(map[string]*Type),
	}
}

func (r *Registry) Define(cmd *Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commands[cmd.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd)
	return nil
}

func (r *Registry) Command(name string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commands[name]
}

// Commands returns every command in definition order.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Command(nil), r.order...)
}

func (r *Registry) DefineType(t *Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, t.Name)
	}
	r.types[t.Name] = t
	r.typeOrder = append(r.typeOrder, t)
	return nil
}

func (r *Registry) Type(name string) *Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[name]
}

func (r *Registry) Types() []*Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Type(nil), r.typeOrder...)
}

// Disable marks the named commands disabled. Unknown names are ignored.
func (r *Registry) Disable(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		if cmd, ok := r.commands[name]; ok {
			cmd.Disable(true)
		}
	}
}

// Resolve finds the command or type named by a line head such as "str.len".
func (r *Registry) Resolve(head string) (*Command, *Type) {
	parts := strings.Split(head, ".")
	if len(parts) == 1 {
		if cmd := r.Command(head); cmd != nil {
			return cmd, nil
		}
		return nil, r.Type(head)
	}
	t := r.Type(parts[0])
	for _, part := range parts[1 : len(parts)-1] {
		if t == nil {
			return nil, nil
		}
		t = t.Sub(part)
	}
	if t == nil {
		return nil, nil
	}
	last := parts[len(parts)-1]
	if cmd := t.Command(last); cmd != nil {
		return cmd, nil
	}
	return nil, t.Sub(last)
}

// Type groups member commands under a name, as in "str.len".
type Type struct {
	Name string
	Desc string

	commands map[string]*Command
	order    []*Command
	subs     map[string]*Type
	subOrder []*Type
	parent   *Type
}

func NewType(name string, desc string) *Type {
	return &Type{
		Name:     name,
		Desc:     desc,
		commands: make(map[string]*Command),
		subs:     make(map[string]*Type),
	}
}

func (t *Type) Define(cmd *Command) error {
	if _, ok := t.commands[cmd.Name]; ok {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateCommand, t.Name, cmd.Name)
	}
	t.commands[cmd.Name] = cmd
	t.order = append(t.order, cmd)
	return nil
}

func (t *Type) AddSub(sub *Type) error {
	if _, ok := t.subs[sub.Name]; ok {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateCommand, t.Name, sub.Name)
	}
	sub.parent = t
	t.subs[sub.Name] = sub
	t.subOrder = append(t.subOrder, sub)
	return nil
}

func (t *Type) Command(name string) *Command {
	return t.commands[name]
}

func (t *Type) Commands() []*Command {
	return t.order
}

func (t *Type) Sub(name string) *Type {
	return t.subs[name]
}

func (t *Type) Subs() []*Type {
	return t.subOrder
}

func (t *Type) Path() string {
	if t.parent == nil {
		return t.Name
	}
	return t.parent.Path() + "." + t.Name
}

func (t *Type) InfoString() string {
	return t.Path() + " | Commands: " + fmt.Sprint(len(t.order)) + ", Desc: " + t.Desc
}

// Hierarchy renders t and its sub types, one per line.
func (t *Type) Hierarchy() string {
	var b strings.Builder
	var write func(*Type, int)
	write = func(t *Type, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(t.Name)
		b.WriteString("\n")
		for _, sub := range t.subOrder {
			write(sub, depth+1)
		}
	}
	write(t, 0)
	return strings.TrimSuffix(b.String(), "\n")
}
