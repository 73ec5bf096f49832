// Package tui implements the Sclera terminal dashboard and the guided
// walkthrough chrome drawn over it.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sclera-app/sclera/internal/logging"
	"github.com/sclera-app/sclera/internal/models"
	"github.com/sclera-app/sclera/internal/tour"
	"github.com/sclera-app/sclera/internal/tui/styles"
)

// bannerDuration is how long the completion banner stays up.
const bannerDuration = 4 * time.Second

type (
	startupMsg    struct{}
	bannerDoneMsg struct{}
)

type model struct {
	ctx     context.Context
	styles  styles.Styles
	logger  zerolog.Logger
	layout  *Layout
	shell   *Shell
	seq     *tour.Sequencer
	flags   tour.FlagStore
	launch  tour.LaunchParams
	catalog tour.Catalog
	account models.AccountType

	width   int
	height  int
	welcome bool
	banner  bool
	step    *tour.StepView
}

func newModel(ctx context.Context, layout *Layout, shell *Shell, seq *tour.Sequencer, flags tour.FlagStore, launch tour.LaunchParams, catalog tour.Catalog, account models.AccountType) model {
	return model{
		ctx:     ctx,
		styles:  styles.DefaultStyles(),
		logger:  logging.Component("tui"),
		layout:  layout,
		shell:   shell,
		seq:     seq,
		flags:   flags,
		launch:  launch,
		catalog: catalog,
		account: account,
	}
}

func (m model) Init() tea.Cmd {
	// Let the dashboard render its targets before deciding anything.
	return tea.Tick(tour.StartupDelay, func(time.Time) tea.Msg {
		return startupMsg{}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.Resize(msg.Width, msg.Height)
		m.shell.Resize(msg.Width, msg.Height)
		return m, nil

	case startupMsg:
		mode, err := tour.DecideStartup(m.ctx, m.launch, m.flags)
		if err != nil {
			m.logger.Warn().Err(err).Msg("startup decision failed")
			return m, nil
		}
		switch mode {
		case tour.StartForced:
			m.seq.Start(m.ctx, m.catalog)
		case tour.StartPrompt:
			m.welcome = true
		}
		return m, nil

	case StepShownMsg:
		m.welcome = false
		view := msg.View
		m.step = &view
		return m, nil

	case TourTeardownMsg:
		m.step = nil
		return m, nil

	case CompletionBannerMsg:
		m.banner = true
		return m, tea.Tick(bannerDuration, func(time.Time) tea.Msg {
			return bannerDoneMsg{}
		})

	case bannerDoneMsg:
		m.banner = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.welcome {
		switch key {
		case "enter", "y":
			m.welcome = false
			m.seq.Start(m.ctx, m.catalog)
		case "s", "n", "esc":
			m.welcome = false
			m.seq.Skip(m.ctx)
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.step != nil {
		switch key {
		case "n", "right", "enter", " ":
			m.seq.Advance(m.ctx)
		case "b", "left":
			m.seq.Retreat(m.ctx)
		case "esc", "x":
			m.seq.End()
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "R":
		// Settings action: replay the walkthrough from the top.
		m.seq.Restart(m.ctx, m.catalog)
	}
	return m, nil
}
