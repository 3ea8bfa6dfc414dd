package vars

import "strings"

// StrToBool reads flag and environment style booleans. Unknown text is false.
func StrToBool(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "on", "1":
		return true
	}
	return false
}
