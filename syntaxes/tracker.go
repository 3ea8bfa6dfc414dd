package syntaxes

const (
	Quote  = '"'
	Escape = '\\'
)

type box int

const (
	boxArray box = iota
	boxGroup
	boxExec
	numBoxes
)

var openers = [numBoxes]rune{'[', '(', '{'}
var closers = [numBoxes]rune{']', ')', '}'}

var boxNames = [numBoxes]string{"array", "token group", "executable"}

// Tracker classifies runes fed in order as inside or outside quoted and bracketed regions.
type Tracker struct {
	quoted   bool
	escaping bool
	escaped  bool
	depths   [numBoxes]int
	stray    rune

	// JustEntered and JustLeft report the outermost paren of a group opening or closing at the last rune.
	JustEntered bool
	JustLeft    bool
}

func (t *Tracker) Feed(r rune) {
	t.JustEntered = false
	t.JustLeft = false
	t.escaped = false

	if t.escaping {
		t.escaping = false
		t.escaped = true
		return
	}
	if r == Escape {
		t.escaping = true
		return
	}
	if r == Quote {
		t.quoted = !t.quoted
		return
	}
	if t.quoted {
		return
	}

	for i := range numBoxes {
		switch r {
		case openers[i]:
			t.depths[i]++
			if i == boxGroup && t.depths[i] == 1 {
				t.JustEntered = true
			}
			return
		case closers[i]:
			if t.depths[i] == 0 {
				if t.stray == 0 {
					t.stray = r
				}
				return
			}
			t.depths[i]--
			if i == boxGroup && t.depths[i] == 0 {
				t.JustLeft = true
			}
			return
		}
	}
}

// Quoted reports whether the tracker is inside a string literal.
func (t *Tracker) Quoted() bool {
	return t.quoted
}

// Escaping reports whether the next rune will be taken literally.
func (t *Tracker) Escaping() bool {
	return t.escaping
}

// Escaped reports whether the last rune was taken literally.
func (t *Tracker) Escaped() bool {
	return t.escaped
}

// InRegion reports whether the tracker is inside any quote or bracket region.
func (t *Tracker) InRegion() bool {
	if t.quoted {
		return true
	}
	for _, d := range t.depths {
		if d > 0 {
			return true
		}
	}
	return false
}

// Protected reports whether the last rune must not be treated as syntax.
func (t *Tracker) Protected() bool {
	return t.escaped || t.escaping || t.InRegion()
}
