// Package wizard runs interactive prompts when a terminal is attached.
package wizard

import (
	"os"

	"golang.org/x/term"
)

// Interactive gates prompts on a terminal being available.
type Interactive struct {
	enabled bool
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsTerminal returns true if stdin and stdout are terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptSetup asks for the first-run settings, starting from defaults.
// It returns nil without prompting when not interactive.
func (i *Interactive) PromptSetup(defaults Setup) (*Setup, error) {
	if !i.CanInteract() {
		return nil, nil
	}
	s := defaults
	if err := setupForm(&s).Run(); err != nil {
		return nil, err
	}
	return &s, nil
}
