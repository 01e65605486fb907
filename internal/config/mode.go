package config

import "strings"

// Mode is the run mode of the process
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
	ModeTest        Mode = "test"
)

// ParseMode maps NODE_ENV style values onto a Mode, defaulting to development
func ParseMode(raw string) Mode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return ModeProduction
	case "test":
		return ModeTest
	default:
		return ModeDevelopment
	}
}

// IsProduction reports whether internal error detail must be withheld from responses
func (m Mode) IsProduction() bool {
	return m == ModeProduction
}
