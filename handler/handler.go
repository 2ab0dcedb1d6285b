package handler

import (
	"strings"

	"github.com/hupe1980/taskmesh/logging"
)

// Options holds shared configuration for the built-in handlers.
type Options struct {
	// Logger is the logger to use. Defaults to a no-op logger.
	Logger logging.Logger
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// containsAny reports whether text contains at least one of the needles.
func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
