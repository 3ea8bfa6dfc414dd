package syntaxes

import "strings"

const (
	LineComment  = "//"
	BlockStart   = "<<"
	BlockEnd     = ">>"
	LineMerge    = '+'
	EndOfScript  = "=="
	anonOpen     = '{'
	anonClose    = '}'
	labelModRune = "|^"
)

// Stripper removes comments line by line, carrying block comment state between lines.
type Stripper struct {
	inBlock bool
}

func (s *Stripper) InBlock() bool {
	return s.inBlock
}

func (s *Stripper) Strip(line string) string {
	var t Tracker
	var b strings.Builder
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		next := rune(0)
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		if s.inBlock {
			if r == '>' && next == '>' {
				s.inBlock = false
				i++
			}
			continue
		}

		if !t.Quoted() && !t.Escaping() {
			if r == '/' && next == '/' {
				break
			}
			if r == '<' && next == '<' {
				s.inBlock = true
				i++
				continue
			}
		}

		t.Feed(r)
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
