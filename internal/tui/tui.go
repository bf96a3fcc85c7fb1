// Package tui provides the interactive menu for profilemgr
package tui

import (
	"fmt"
	"os"

	"profilemgr/config"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive menu over the given manager. It returns
// after a mutating action so the shell wrapper can source the
// refreshed env script.
func Run(manager *config.Manager) error {
	if !isTerminal() {
		return fmt.Errorf("the interactive menu requires a terminal; use subcommands for non-interactive mode")
	}

	m := NewModel(manager)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}

	// Echo the closing status once the alt screen is gone.
	if fm, ok := final.(Model); ok {
		if fm.errorMsg != "" {
			return fmt.Errorf("%s", fm.errorMsg)
		}
		if fm.message != "" {
			fmt.Println(fm.message)
		}
	}
	return nil
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
