package syntaxes

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnfinished = errors.New("unfinished delimiter")

var ErrUnbalanced = errors.New("unbalanced delimiter")

// IsAnonScope reports whether line is a bare anonymous scope open or close, optionally followed by label modifiers.
func IsAnonScope(line string) bool {
	if line == "" {
		return false
	}
	if line[0] != anonOpen && line[0] != anonClose {
		return false
	}
	return strings.Trim(line[1:], labelModRune) == ""
}

// IsAnonOpen reports whether line opens an anonymous scope.
func IsAnonOpen(line string) bool {
	return IsAnonScope(line) && line[0] == anonOpen
}

// IsAnonClose reports whether line closes an anonymous scope.
func IsAnonClose(line string) bool {
	return IsAnonScope(line) && line[0] == anonClose
}

func SyntaxCheck(line string) error {
	if IsAnonScope(line) {
		return nil
	}
	var t Tracker
	for _, r := range line {
		t.Feed(r)
	}
	if t.quoted {
		return fmt.Errorf("%w: string", ErrUnfinished)
	}
	if t.escaping {
		return fmt.Errorf("%w: escape", ErrUnfinished)
	}
	for i, d := range t.depths {
		if d > 0 {
			return fmt.Errorf("%w: %s", ErrUnfinished, boxNames[i])
		}
	}
	if t.stray != 0 {
		return fmt.Errorf("%w: %q", ErrUnbalanced, t.stray)
	}
	return nil
}
