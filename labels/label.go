package labels

import (
	"fmt"
	"strings"

	"github.com/reusee/scajl/syntaxes"
)

const (
	Unscoped   = "--"
	Scoped     = "~~"
	Accessible = '|'
	GetsAccess = '^'
	CloseWord  = "return"
	GlobalName = "GLOBAL"
)

type Label struct {
	Name string
	Line int
	// Scoped labels push their own variable frame.
	Scoped bool
	// Accessible labels can be jumped to from outside their lexical ancestry.
	Accessible bool
	// GetsAccess labels can jump to any accessible label.
	GetsAccess bool
}

var Global = Label{
	Name:       GlobalName,
	Line:       -1,
	Accessible: true,
}

func (l Label) String() string {
	var b strings.Builder
	if l.Scoped {
		b.WriteString(Scoped)
	} else {
		b.WriteString(Unscoped)
	}
	if l.Accessible {
		b.WriteRune(Accessible)
	}
	if l.GetsAccess {
		b.WriteRune(GetsAccess)
	}
	b.WriteString(l.Name)
	return b.String()
}

// IsLabelLine reports whether line opens a label.
func IsLabelLine(line string) bool {
	return strings.HasPrefix(line, Unscoped) || strings.HasPrefix(line, Scoped)
}

// IsCloseLine reports whether line closes a label.
func IsCloseLine(line string) bool {
	return syntaxes.FirstToken(line) == CloseWord
}

// Parse reads a label line such as "~~|loop".
func Parse(text string, line int) (Label, error) {
	head := syntaxes.FirstToken(strings.TrimSpace(text))
	var label Label
	switch {
	case strings.HasPrefix(head, Scoped):
		label.Scoped = true
		head = head[len(Scoped):]
	case strings.HasPrefix(head, Unscoped):
		head = head[len(Unscoped):]
	default:
		return label, fmt.Errorf("%w: %s", ErrNotLabel, text)
	}
	name := strings.TrimLeft(head, string(Accessible)+string(GetsAccess))
	mods := head[:len(head)-len(name)]
	label.Accessible = strings.ContainsRune(mods, Accessible)
	label.GetsAccess = strings.ContainsRune(mods, GetsAccess)
	head = name
	if head == "" {
		return label, fmt.Errorf("%w: %s", ErrNoName, text)
	}
	label.Name = head
	label.Line = line
	return label, nil
}
