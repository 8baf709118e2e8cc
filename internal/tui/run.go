// ABOUTME: Entry point for the Bubble Tea client
// ABOUTME: Attaches the bridge to the program and tears the session down on exit

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the app and blocks until the user quits.
func Run(deps AppDeps) error {
	m := NewAppModel(deps)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	b := m.sh.bridge
	b.Watch(m.hub)
	b.Start(p)
	defer func() {
		m.sh.cancel()
		m.session.Unmount()
		b.Stop()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
