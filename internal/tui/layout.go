package tui

import (
	"sync"

	"github.com/sclera-app/sclera/internal/models"
	"github.com/sclera-app/sclera/internal/tour"
)

// Region names the dashboard targets the walkthrough can point at.
// These are the selectors used by the built-in catalogs.
const (
	RegionNavDashboard = "nav.dashboard"
	RegionNavSettings  = "nav.settings"
	RegionSubjects     = "panel.subjects"
	RegionStudyTimer   = "card.study-timer"
	RegionResults      = "card.results"
	RegionMockTests    = "card.mock-tests"
)

const sidebarWidth = 22

// Layout tracks where each named region currently sits on screen. It is
// the walkthrough's element locator: a region the dashboard does not draw
// for the current account type or terminal size resolves to not-found.
type Layout struct {
	mu      sync.RWMutex
	account models.AccountType
	width   int
	height  int
	regions map[string]tour.Rect
}

// NewLayout creates an empty layout for an account type; call Resize
// before use.
func NewLayout(account models.AccountType) *Layout {
	return &Layout{account: account, regions: make(map[string]tour.Rect)}
}

// Resize recomputes every region for the new terminal size.
func (l *Layout) Resize(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.width = width
	l.height = height
	l.regions = make(map[string]tour.Rect)

	if width < sidebarWidth+20 || height < 12 {
		// Too small to lay out the dashboard; nothing is locatable.
		return
	}

	mainLeft := sidebarWidth + 1
	mainWidth := width - mainLeft
	half := mainWidth / 2

	l.regions[RegionNavDashboard] = tour.Rect{Top: 2, Left: 1, Width: sidebarWidth - 2, Height: 1}
	l.regions[RegionNavSettings] = tour.Rect{Top: height - 3, Left: 1, Width: sidebarWidth - 2, Height: 1}
	l.regions[RegionSubjects] = tour.Rect{Top: 2, Left: mainLeft, Width: mainWidth - 2, Height: height/2 - 3}

	cardTop := height/2 + 1
	cardHeight := height - cardTop - 3

	// Exam prep accounts get a third card, so the bottom row splits in
	// thirds instead of halves.
	if l.account == models.AccountTypeExamPrep {
		third := mainWidth / 3
		l.regions[RegionStudyTimer] = tour.Rect{Top: cardTop, Left: mainLeft, Width: third - 2, Height: cardHeight}
		l.regions[RegionMockTests] = tour.Rect{Top: cardTop, Left: mainLeft + third, Width: third - 2, Height: cardHeight}
		l.regions[RegionResults] = tour.Rect{Top: cardTop, Left: mainLeft + 2*third, Width: third - 2, Height: cardHeight}
		return
	}

	l.regions[RegionStudyTimer] = tour.Rect{Top: cardTop, Left: mainLeft, Width: half - 2, Height: cardHeight}
	l.regions[RegionResults] = tour.Rect{Top: cardTop, Left: mainLeft + half, Width: half - 2, Height: cardHeight}
}

// Find resolves a selector to its on-screen rectangle.
func (l *Layout) Find(selector string) (tour.Rect, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rect, ok := l.regions[selector]
	return rect, ok
}

// Size returns the last known terminal size.
func (l *Layout) Size() (int, int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.width, l.height
}
