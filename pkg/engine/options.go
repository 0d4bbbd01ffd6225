package engine

import "github.com/charmbracelet/log"

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithLogger sets the logger used for recoverable-inconsistency
// warnings and debug output. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
