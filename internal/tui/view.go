package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/sclera-app/sclera/internal/models"
	"github.com/sclera-app/sclera/internal/tour"
)

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	base := m.renderDashboard()

	if m.welcome {
		return m.renderWelcome(base)
	}
	if m.step != nil {
		return m.renderTour(*m.step)
	}
	if m.banner {
		return m.renderBanner(base)
	}
	return base
}

func (m model) renderDashboard() string {
	s := m.styles

	nav := []string{
		s.Accent.Render("● Dashboard"),
		s.Muted.Render("  Subjects"),
		s.Muted.Render("  Planner"),
		s.Muted.Render("  Careers"),
	}
	sidebar := s.Panel.Width(sidebarWidth - 2).Height(m.height - 4).Render(
		s.Title.Render("sclera") + "\n\n" + strings.Join(nav, "\n") +
			"\n\n" + s.Muted.Render("⚙ Settings"),
	)

	mainWidth := m.width - sidebarWidth - 3
	if mainWidth < 20 {
		return sidebar
	}
	subjects := s.Panel.Width(mainWidth - 2).Height(m.height/2 - 4).Render(
		s.Title.Render("Subjects") + "\n" +
			s.Text.Render("Mathematics     ▓▓▓▓▓▓░░░░  12/20 chapters") + "\n" +
			s.Text.Render("Physics         ▓▓▓▓░░░░░░   8/18 chapters") + "\n" +
			s.Text.Render("Chemistry       ▓▓▓▓▓▓▓▓░░  15/19 chapters"),
	)

	cardWidth := mainWidth / 2
	if m.account == models.AccountTypeExamPrep {
		cardWidth = mainWidth / 3
	}
	cardHeight := m.height/2 - 5

	timer := s.Panel.Width(cardWidth - 2).Height(cardHeight).Render(
		s.Title.Render("Study timer") + "\n\n" + s.Accent.Render("  25:00  ") + s.Muted.Render("press t to start"),
	)
	results := s.Panel.Width(cardWidth - 2).Height(cardHeight).Render(
		s.Title.Render("Exam results") + "\n\n" +
			s.Text.Render("Physics mock    82%") + "\n" +
			s.Text.Render("Class average   74%"),
	)

	var cards string
	if m.account == models.AccountTypeExamPrep {
		mocks := s.Panel.Width(cardWidth - 2).Height(cardHeight).Render(
			s.Title.Render("Mock tests") + "\n\n" +
				s.Text.Render("Full syllabus   Sat 10:00") + "\n" +
				s.Text.Render("Attempted       3 of 8"),
		)
		cards = lipgloss.JoinHorizontal(lipgloss.Top, timer, mocks, results)
	} else {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, timer, results)
	}
	main := lipgloss.JoinVertical(lipgloss.Left, subjects, cards)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

func (m model) renderWelcome(base string) string {
	s := m.styles
	prompt := s.Callout.Width(46).Render(
		s.CalloutTitle.Render("Welcome to Sclera") + "\n\n" +
			s.Text.Render("Want a quick walkthrough of your dashboard?") + "\n\n" +
			s.Accent.Render("[enter]") + s.Text.Render(" start tour   ") +
			s.Muted.Render("[s]") + s.Text.Render(" skip"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, prompt)
}

func (m model) renderTour(view tour.StepView) string {
	// The rest of the dashboard is dimmed while the walkthrough runs.
	backdrop := m.styles.Dimmed.Render(stripANSI(m.renderDashboard()))
	callout := m.renderCallout(view)
	return overlayAt(backdrop, callout, view.Placement.Left, view.Placement.Top, m.width, m.height)
}

func (m model) renderCallout(view tour.StepView) string {
	s := m.styles

	bar := progress.New(progress.WithWidth(calloutWidth-4), progress.WithoutPercentage())
	counter := fmt.Sprintf("Step %d of %d", view.Position, view.Total)

	nav := s.Muted.Render("[b] back  [n] next  [esc] dismiss")
	if view.Position == view.Total {
		nav = s.Muted.Render("[b] back  [n] finish  [esc] dismiss")
	}

	// Emphasis restyles the callout frame. The target itself sits in the
	// flattened, dimmed backdrop, so a border change there would not read.
	style := s.Callout
	switch view.Step.Emphasis {
	case tour.EmphasisNotch:
		style = s.EmphasisNotch.Padding(0, 1)
	case tour.EmphasisAction:
		style = s.EmphasisAction.Padding(0, 1)
	}

	return style.Width(calloutWidth - 2).Render(
		s.CalloutTitle.Render(view.Step.Title) + "\n" +
			s.Text.Width(calloutWidth-4).Render(view.Step.Description) + "\n" +
			bar.ViewAs(view.Progress) + "\n" +
			s.Muted.Render(counter) + "  " + nav,
	)
}

func (m model) renderBanner(base string) string {
	banner := m.styles.Banner.Render("Tour complete, happy studying!")
	return placeBannerOver(base, banner, m.width, m.height)
}

// overlayAt draws box over base at the given cell position, clamped so the
// box stays on screen even when the computed placement runs past it.
func overlayAt(base, box string, left, top, width, height int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	if top+len(boxLines) > height {
		top = height - len(boxLines)
	}
	if top < 0 {
		top = 0
	}
	boxWidth := lipgloss.Width(box)
	if left+boxWidth > width {
		left = width - boxWidth
	}
	if left < 0 {
		left = 0
	}

	for len(baseLines) < top+len(boxLines) {
		baseLines = append(baseLines, "")
	}
	pad := strings.Repeat(" ", left)
	for i, line := range boxLines {
		baseLines[top+i] = pad + line
	}
	return strings.Join(baseLines, "\n")
}

func placeBannerOver(base, banner string, width, height int) string {
	top := height - lipgloss.Height(banner) - 1
	left := (width - lipgloss.Width(banner)) / 2
	return overlayAt(base, banner, left, top, width, height)
}

// stripANSI flattens styled output so the dim style re-colors it uniformly.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
