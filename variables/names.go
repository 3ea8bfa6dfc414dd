package variables

import (
	"regexp"
	"strings"
)

// Mod is a single rune prefix that changes how a token is resolved.
type Mod rune

const (
	ModNone        Mod = 0
	ModUnraw       Mod = '%'
	ModRaw         Mod = '$'
	ModRef         Mod = '@'
	ModRawContents Mod = '&'
	ModUnpack      Mod = '^'
	ModNoUnpack    Mod = '|'
)

const modRunes = "%$@&^|"

// SplitMods strips every leading modifier rune. A repeated modifier counts once.
func SplitMods(token string) (mods []Mod, rest string) {
	rest = token
	for rest != "" && strings.IndexByte(modRunes, rest[0]) >= 0 {
		m := Mod(rest[0])
		if !containsMod(mods, m) {
			mods = append(mods, m)
		}
		rest = rest[1:]
	}
	return
}

func containsMod(mods []Mod, m Mod) bool {
	for _, mod := range mods {
		if mod == m {
			return true
		}
	}
	return false
}

var legalName = regexp.MustCompile(`^[\w-]+$`)

// LegalName reports whether name can be stored in a scope.
func LegalName(name string) bool {
	return legalName.MatchString(name) && !IsNumber(name)
}
