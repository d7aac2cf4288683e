package tui

import "github.com/atotto/clipboard"

// Option mutates the model during construction.
type Option func(*Model)

// WithKeys rebinds the configurable actions.
func WithKeys(overrides KeyOverrides) Option {
	return func(m *Model) {
		m.keys = m.keys.applyOverrides(overrides)
	}
}

// WithClipboard replaces the clipboard writer, for tests and for platforms
// without one.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.clipboardWrite = write
		}
	}
}

// defaultClipboardWrite writes through the system clipboard.
func defaultClipboardWrite(text string) error {
	return clipboard.WriteAll(text)
}
