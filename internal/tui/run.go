package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sclera-app/sclera/internal/models"
	"github.com/sclera-app/sclera/internal/tour"
)

// Config wires the TUI to its collaborators.
type Config struct {
	// Flags is the preference store backing the walkthrough flags.
	Flags tour.FlagStore

	// Notifier reports tour completion upstream.
	Notifier tour.Notifier

	// Catalog is the walkthrough for the configured account type.
	Catalog tour.Catalog

	// Launch carries the tour-relevant launch parameters.
	Launch tour.LaunchParams

	// AccountType selects which dashboard cards are drawn.
	AccountType models.AccountType
}

// Run launches the Sclera TUI and blocks until it exits.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Flags == nil {
		return fmt.Errorf("flag store is required")
	}
	if cfg.Notifier == nil {
		return fmt.Errorf("notifier is required")
	}

	layout := NewLayout(cfg.AccountType)
	shell := NewShell()
	seq := tour.NewSequencer(layout, shell, cfg.Flags, cfg.Notifier)

	m := newModel(ctx, layout, shell, seq, cfg.Flags, cfg.Launch, cfg.Catalog, cfg.AccountType)
	program := tea.NewProgram(m, tea.WithAltScreen())
	shell.SetSender(program.Send)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
