package scajl

import (
	"errors"
	"strings"

	"github.com/reusee/scajl/syntaxes"
)

const (
	elseMark   = ":"
	ifMark     = "?"
	forMark    = "*"
	whileMark  = "**"
	helpMark   = "?"
	storeArrow = "->"
	varArgMark = "#"
)

var (
	errEmptyHead       = errors.New("missing command")
	errDuplicatePrefix = errors.New("duplicated inline prefix")
	errCallWithArgs    = errors.New("call form followed by arguments")
)

// head is the parsed prefix of an executable line.
type head struct {
	isElse  bool
	cond    string
	count   string
	while   string
	help    bool
	name    string
	targets []string
	args    []string
	// input is the argument text as written.
	input string
}

func peel(text string) (first string, rest string) {
	parts := syntaxes.Split(text, `\s`, 1, 2)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func isMark(s string) bool {
	return s == ifMark || s == forMark || s == whileMark
}

func (h *head) setPrefix(test string, mark string) bool {
	var slot *string
	switch mark {
	case ifMark:
		slot = &h.cond
	case forMark:
		slot = &h.count
	case whileMark:
		slot = &h.while
	}
	if *slot != "" {
		return false
	}
	*slot = test
	return true
}

// splitMark splits a trailing prefix mark off piece.
func splitMark(piece string) (string, string) {
	for _, mark := range []string{whileMark, forMark, ifMark} {
		if len(piece) > len(mark) && strings.HasSuffix(piece, mark) {
			return piece[:len(piece)-len(mark)], mark
		}
	}
	return piece, ""
}

func parseHead(line string) (*head, error) {
	h := new(head)
	rest := strings.TrimSpace(line)
	if strings.HasPrefix(rest, elseMark) {
		h.isElse = true
		rest = strings.TrimSpace(rest[len(elseMark):])
	}

	var piece string
	for {
		piece, rest = peel(rest)
		if piece == "" {
			return nil, errEmptyHead
		}
		next, after := peel(rest)
		if isMark(next) {
			if !h.setPrefix(piece, next) {
				return nil, errDuplicatePrefix
			}
			rest = after
			continue
		}
		if test, mark := splitMark(piece); mark != "" && !strings.HasPrefix(piece, helpMark) {
			if !h.setPrefix(test, mark) {
				return nil, errDuplicatePrefix
			}
			continue
		}
		break
	}

	if len(piece) > len(helpMark) && strings.HasPrefix(piece, helpMark) {
		h.help = true
		piece = piece[len(helpMark):]
	}
	names := syntaxes.SplitOn(piece, storeArrow, 0)
	if len(names) == 0 {
		return nil, errEmptyHead
	}
	h.name = names[0]
	h.targets = names[1:]
	h.input = rest

	if callee, inner, ok := syntaxes.Call(h.name); ok {
		if rest != "" {
			return nil, errCallWithArgs
		}
		h.name = callee
		h.input = inner
	}
	h.args = syntaxes.Split(h.input, `,`, 1, 0)
	return h, nil
}
