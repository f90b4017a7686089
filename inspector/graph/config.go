package graph

import "errors"

// Config controls declaration extraction
type Config struct {
	StrictSyntax   bool // Treat syntax errors as parse failures
	IncludePrivate bool // Keep private members
}

// DefaultConfig returns default extraction config
func DefaultConfig() *Config {
	return &Config{
		StrictSyntax:   false,
		IncludePrivate: true,
	}
}

// ErrUnreadable is wrapped by loaders when a source cannot be read
var ErrUnreadable = errors.New("source unreadable")

// ErrSyntax is wrapped by loaders when a source cannot be parsed
var ErrSyntax = errors.New("syntax error")
