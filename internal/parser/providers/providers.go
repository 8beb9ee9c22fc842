// Package providers registers the built-in model backends with the parser registry.
package providers

import (
	"sync"

	"carte/internal/parser"
	"carte/internal/parser/claude"
	"carte/internal/parser/gemini"
	"carte/internal/parser/openai"
)

var once sync.Once

// Register adds the claude, gemini and openai factories. It is safe to call more than once.
func Register() {
	once.Do(func() {
		parser.RegisterProvider("claude", claude.Factory)
		parser.RegisterProvider("gemini", gemini.Factory)
		parser.RegisterProvider("openai", openai.Factory)
	})
}
