package syntaxes

import (
	"regexp"
	"strings"
	"sync"
)

var patterns sync.Map

func compile(pattern string) *regexp.Regexp {
	if v, ok := patterns.Load(pattern); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile("^(?:" + pattern + ")$")
	v, _ := patterns.LoadOrStore(pattern, re)
	return v.(*regexp.Regexp)
}

// Split splits text on a delimiter pattern that must match the whole sliding window of the last window runes.
// Matches inside quotes or brackets are skipped. Pieces are trimmed and empty pieces dropped.
// If limit is positive, at most limit pieces are produced.
func Split(text string, pattern string, window int, limit int) []string {
	if window < 1 {
		window = 1
	}
	re := compile(pattern)
	var t Tracker
	var pieces []string
	var cur []rune
	win := make([]rune, 0, window+1)
	for _, r := range text {
		t.Feed(r)
		win = append(win, r)
		if len(win) > window {
			win = win[1:]
		}
		if len(win) == window &&
			!t.Protected() &&
			(limit <= 0 || len(pieces) < limit-1) &&
			re.MatchString(string(win)) {
			cut := max(len(cur)-(window-1), 0)
			pieces = appendPiece(pieces, string(cur[:cut]))
			cur = cur[:0]
			win = win[:0]
			continue
		}
		cur = append(cur, r)
	}
	return appendPiece(pieces, string(cur))
}

func appendPiece(pieces []string, piece string) []string {
	piece = strings.TrimSpace(piece)
	if piece == "" {
		return pieces
	}
	return append(pieces, piece)
}

// SplitOn splits on a literal delimiter.
func SplitOn(text string, delim string, limit int) []string {
	return Split(text, regexp.QuoteMeta(delim), len([]rune(delim)), limit)
}

// Contains reports whether pattern matches anywhere outside protected regions.
func Contains(text string, pattern string, window int) bool {
	if window < 1 {
		window = 1
	}
	re := compile(pattern)
	var t Tracker
	win := make([]rune, 0, window+1)
	for _, r := range text {
		t.Feed(r)
		win = append(win, r)
		if len(win) > window {
			win = win[1:]
		}
		if len(win) == window && !t.Protected() && re.MatchString(string(win)) {
			return true
		}
	}
	return false
}

// Tokens splits on whitespace, commas and semicolons.
func Tokens(text string) []string {
	return Split(text, `[\s,;]`, 1, 0)
}

// FirstToken returns the text before the first unprotected whitespace.
func FirstToken(line string) string {
	parts := Split(line, `\s`, 1, 2)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// Args drops the head token of line and splits the rest on commas.
func Args(line string) []string {
	parts := Split(line, `\s`, 1, 2)
	if len(parts) < 2 {
		return nil
	}
	return Split(parts[1], `,`, 1, 0)
}

// Access splits a member access chain on dots. The outermost parens of a segment are dropped.
func Access(text string) []string {
	var t Tracker
	var pieces []string
	var cur []rune
	for _, r := range text {
		t.Feed(r)
		if t.JustEntered || t.JustLeft {
			continue
		}
		if r == '.' && !t.Protected() {
			pieces = append(pieces, strings.TrimSpace(string(cur)))
			cur = cur[:0]
			continue
		}
		cur = append(cur, r)
	}
	return append(pieces, strings.TrimSpace(string(cur)))
}

// Call splits text at the paren that opens the outermost group.
// It returns the callee, the text inside the parens, and whether a call form was found.
func Call(text string) (callee string, args string, ok bool) {
	var t Tracker
	runes := []rune(text)
	for i, r := range runes {
		t.Feed(r)
		if !t.JustEntered {
			continue
		}
		if i == 0 {
			return "", "", false
		}
		callee = strings.TrimSpace(string(runes[:i]))
		rest := runes[i+1:]
		var inner Tracker
		inner.depths[boxGroup] = 1
		for j, r := range rest {
			inner.Feed(r)
			if inner.JustLeft {
				if strings.TrimSpace(string(rest[j+1:])) != "" {
					return "", "", false
				}
				return callee, strings.TrimSpace(string(rest[:j])), true
			}
		}
		return "", "", false
	}
	return "", "", false
}
