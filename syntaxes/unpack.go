package syntaxes

import "strings"

// Wraps reports whether the region opened by the first rune of text closes exactly at its last rune.
func Wraps(text string) bool {
	runes := []rune(text)
	if len(runes) < 2 {
		return false
	}
	first, last := runes[0], runes[len(runes)-1]
	switch first {
	case Quote:
		if last != Quote {
			return false
		}
	case '[', '(', '{':
		if last != closers[boxOf(first)] {
			return false
		}
	default:
		return false
	}
	var t Tracker
	for i, r := range runes {
		t.Feed(r)
		inside := t.InRegion()
		if i < len(runes)-1 && !inside {
			return false
		}
		if i == len(runes)-1 && inside {
			return false
		}
	}
	return true
}

func boxOf(r rune) box {
	for i := range numBoxes {
		if openers[i] == r || closers[i] == r {
			return i
		}
	}
	return numBoxes
}

// Unpack strips one matching outer pair of quotes or brackets when that pair encloses the whole text.
func Unpack(text string) string {
	text = strings.TrimSpace(text)
	if !Wraps(text) {
		return text
	}
	runes := []rune(text)
	return string(runes[1 : len(runes)-1])
}

func trimBox(text string, open, close rune) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, string(open))
	text = strings.TrimSuffix(text, string(close))
	return text
}

func TrimString(text string) string {
	return trimBox(text, Quote, Quote)
}

func TrimArray(text string) string {
	return trimBox(text, '[', ']')
}

func TrimExecutable(text string) string {
	return strings.TrimSpace(trimBox(text, '{', '}'))
}

// Elements splits the contents of an array literal on semicolons.
func Elements(text string) []string {
	return Split(TrimArray(text), `;`, 1, 0)
}

// Unescape removes escape runes, keeping the runes they protect.
func Unescape(text string) string {
	if !strings.ContainsRune(text, Escape) {
		return text
	}
	var b strings.Builder
	escaping := false
	for _, r := range text {
		if !escaping && r == Escape {
			escaping = true
			continue
		}
		escaping = false
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeString protects quotes and escape runes so the text can be wrapped in a string literal.
func EscapeString(text string) string {
	if !strings.ContainsAny(text, `"\`) {
		return text
	}
	var b strings.Builder
	for _, r := range text {
		if r == Quote || r == Escape {
			b.WriteRune(Escape)
		}
		b.WriteRune(r)
	}
	return b.String()
}
