// Package theme defines color themes for the fundboard TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Active tab, selected row
	Border       lipgloss.Color
	BorderBright lipgloss.Color // Cards, focus
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color // Active states, headline numbers
	AccentDim    lipgloss.Color // Filter pill backgrounds
	Green        lipgloss.Color
	Orange       lipgloss.Color // Warnings
	Red          lipgloss.Color
	Blue         lipgloss.Color // Bars
	Yellow       lipgloss.Color
}

// Midnight is the default theme: near-black panels with a lime accent.
var Midnight = Theme{
	Name:         "midnight",
	Background:   lipgloss.Color("#121212"),
	Surface:      lipgloss.Color("#1B1B1B"),
	SurfaceHover: lipgloss.Color("#262626"),
	Border:       lipgloss.Color("#2A2A2A"),
	BorderBright: lipgloss.Color("#3D3D3D"),
	TextDim:      lipgloss.Color("#5C5C5C"),
	TextMuted:    lipgloss.Color("#8A8A8A"),
	TextPrimary:  lipgloss.Color("#F5F5F5"),
	Accent:       lipgloss.Color("#60FC37"),
	AccentDim:    lipgloss.Color("#1D3A14"),
	Green:        lipgloss.Color("#60FC37"),
	Orange:       lipgloss.Color("#FF9F43"),
	Red:          lipgloss.Color("#FF5C5C"),
	Blue:         lipgloss.Color("#4682B4"),
	Yellow:       lipgloss.Color("#FFD23F"),
}

// Ledger is a warm sepia theme.
var Ledger = Theme{
	Name:         "ledger",
	Background:   lipgloss.Color("#1A1612"),
	Surface:      lipgloss.Color("#241F1A"),
	SurfaceHover: lipgloss.Color("#312A23"),
	Border:       lipgloss.Color("#3F362D"),
	BorderBright: lipgloss.Color("#5A4E42"),
	TextDim:      lipgloss.Color("#6B5F52"),
	TextMuted:    lipgloss.Color("#A39482"),
	TextPrimary:  lipgloss.Color("#F2E8DA"),
	Accent:       lipgloss.Color("#E3A857"),
	AccentDim:    lipgloss.Color("#3D2E19"),
	Green:        lipgloss.Color("#A3B35C"),
	Orange:       lipgloss.Color("#E07B39"),
	Red:          lipgloss.Color("#D0584A"),
	Blue:         lipgloss.Color("#6C9BB8"),
	Yellow:       lipgloss.Color("#E3C157"),
}

// Harbor is a cool navy theme.
var Harbor = Theme{
	Name:         "harbor",
	Background:   lipgloss.Color("#0F1722"),
	Surface:      lipgloss.Color("#16212F"),
	SurfaceHover: lipgloss.Color("#1F2D3F"),
	Border:       lipgloss.Color("#2A3B52"),
	BorderBright: lipgloss.Color("#41577A"),
	TextDim:      lipgloss.Color("#4F6580"),
	TextMuted:    lipgloss.Color("#8DA2BD"),
	TextPrimary:  lipgloss.Color("#DCE6F2"),
	Accent:       lipgloss.Color("#5CC8FF"),
	AccentDim:    lipgloss.Color("#14324A"),
	Green:        lipgloss.Color("#7BD389"),
	Orange:       lipgloss.Color("#F6A05A"),
	Red:          lipgloss.Color("#F0717D"),
	Blue:         lipgloss.Color("#5C8DFF"),
	Yellow:       lipgloss.Color("#F2CD5C"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderBright: lipgloss.Color("7"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("10"),
	AccentDim:    lipgloss.Color("0"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
	Blue:         lipgloss.Color("4"),
	Yellow:       lipgloss.Color("11"),
}

// Active is the currently selected theme.
var Active = Midnight

// All available themes.
var All = []Theme{Midnight, Ledger, Harbor, Terminal}

// Names lists the theme names in All order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to Midnight.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Midnight
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
