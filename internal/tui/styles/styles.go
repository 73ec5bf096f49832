// Package styles defines the lipgloss styles for the Sclera TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// ThemeTokens defines the semantic color roles for the TUI.
type ThemeTokens struct {
	Background string
	Panel      string
	Text       string
	TextMuted  string
	Border     string
	Accent     string
	Success    string
	Warning    string
}

// DefaultTokens is the stock Sclera palette.
var DefaultTokens = ThemeTokens{
	Background: "#10141c",
	Panel:      "#1a2130",
	Text:       "#e6e9f0",
	TextMuted:  "#6b7487",
	Border:     "#2c3547",
	Accent:     "#7aa2f7",
	Success:    "#9ece6a",
	Warning:    "#e0af68",
}

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Title          lipgloss.Style
	Text           lipgloss.Style
	Muted          lipgloss.Style
	Accent         lipgloss.Style
	Panel          lipgloss.Style
	Callout        lipgloss.Style
	CalloutTitle   lipgloss.Style
	Banner         lipgloss.Style
	EmphasisNotch  lipgloss.Style
	EmphasisAction lipgloss.Style
	Dimmed         lipgloss.Style
}

// DefaultStyles builds styles from the default palette.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTokens)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(tokens ThemeTokens) Styles {
	return Styles{
		Title:          lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:           lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:          lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:         lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Panel:          lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(tokens.Border)).Padding(0, 1),
		Callout:        lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Accent)).Padding(0, 1),
		CalloutTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)).Bold(true),
		Banner:         lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Success)).Foreground(lipgloss.Color(tokens.Success)).Padding(0, 2),
		EmphasisNotch:  lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(tokens.Accent)),
		EmphasisAction: lipgloss.NewStyle().BorderStyle(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(tokens.Warning)),
		Dimmed:         lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)).Faint(true),
	}
}
