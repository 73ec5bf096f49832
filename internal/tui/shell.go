package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sclera-app/sclera/internal/tour"
)

const calloutWidth = 44

// Messages the shell sends back into the bubbletea update loop. The model
// is purely reactive: all walkthrough decisions stay in the sequencer.
type (
	// StepShownMsg carries a resolved step to render.
	StepShownMsg struct{ View tour.StepView }

	// TourTeardownMsg removes the overlay, callout, and emphasis.
	TourTeardownMsg struct{}

	// CompletionBannerMsg shows the transient completion banner.
	CompletionBannerMsg struct{}
)

// Shell is the walkthrough's presentation surface. Sequencer callbacks may
// arrive from timer goroutines, so the shell forwards them into the program
// as messages instead of mutating the model directly.
type Shell struct {
	mu     sync.Mutex
	send   func(tea.Msg)
	width  int
	height int
}

// NewShell creates a shell with no sender attached yet.
func NewShell() *Shell {
	return &Shell{}
}

// SetSender attaches the running program's Send function.
func (s *Shell) SetSender(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

// Resize records the current terminal size.
func (s *Shell) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

// ShowStep renders the callout for a resolved step.
func (s *Shell) ShowStep(view tour.StepView) {
	s.post(StepShownMsg{View: view})
}

// Teardown removes all walkthrough chrome.
func (s *Shell) Teardown() {
	s.post(TourTeardownMsg{})
}

// ShowCompletionBanner displays the self-dismissing completion banner.
func (s *Shell) ShowCompletionBanner() {
	s.post(CompletionBannerMsg{})
}

// Viewport is the current visible area.
func (s *Shell) Viewport() tour.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tour.Rect{Width: s.width, Height: s.height}
}

// CalloutSize is the rendered size of the callout for a step: fixed width,
// height from the wrapped description plus the header, progress, and
// navigation rows, and the border.
func (s *Shell) CalloutSize(step tour.Step) tour.Size {
	body := wrapLines(step.Description, calloutWidth-4)
	// title + body + progress bar + counter/nav + 2 border rows
	return tour.Size{Width: calloutWidth, Height: body + 5}
}

func (s *Shell) post(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// wrapLines counts how many lines text needs at the given width.
func wrapLines(text string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := 1
	col := 0
	for _, word := range strings.Fields(text) {
		n := len([]rune(word))
		if col > 0 && col+1+n > width {
			lines++
			col = n
			continue
		}
		if col > 0 {
			col++
		}
		col += n
	}
	return lines
}
