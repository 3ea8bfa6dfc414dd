package modes

import "strings"

type Mode uint8

const (
	ModeDevelopment Mode = iota + 1
	ModeProduction
)

// ModeEnv overrides the mode of a production scope.
const ModeEnv = "SCAJL_MODE"

func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return "development"
	case ModeProduction:
		return "production"
	}
	return "unknown"
}

func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return ModeDevelopment, true
	case "production", "prod":
		return ModeProduction, true
	}
	return 0, false
}
