package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Name   string
	Header HeaderTheme
	Gig    GigTheme
	Action ActionTheme
	Toast  ToastTheme
	Modal  ModalTheme
	Footer lipgloss.Style
	Muted  lipgloss.Style
}

// HeaderTheme styles the top bar.
type HeaderTheme struct {
	Title lipgloss.Style
	User  lipgloss.Style
	Badge lipgloss.Style
	View  lipgloss.Style
}

// GigTheme styles gigs in every view.
type GigTheme struct {
	Card      lipgloss.Style
	Selected  lipgloss.Style
	Band      lipgloss.Style
	Meta      lipgloss.Style
	Price     lipgloss.Style
	Interest  lipgloss.Style
	Ticket    lipgloss.Style
	Past      lipgloss.Style
	Section   lipgloss.Style
	TableHead lipgloss.Style
}

// ActionTheme colours history actions and change badges.
type ActionTheme struct {
	Added   lipgloss.Style
	Edited  lipgloss.Style
	Deleted lipgloss.Style
	Other   lipgloss.Style
}

// ToastTheme styles the transient status line.
type ToastTheme struct {
	Info  lipgloss.Style
	Error lipgloss.Style
}

// ModalTheme styles centered modal overlays (form, delete confirm, login).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Focus lipgloss.Style
	Error lipgloss.Style
}

type palette struct {
	text, muted, accent, teal, warn, danger, border, selected string
}

var (
	dark = palette{
		text: "252", muted: "244", accent: "212", teal: "37",
		warn: "214", danger: "203", border: "238", selected: "236",
	}
	light = palette{
		text: "235", muted: "243", accent: "162", teal: "30",
		warn: "166", danger: "160", border: "250", selected: "254",
	}
)

// For returns the named theme, dark for anything but "light".
func For(name string) Theme {
	if name == "light" {
		return build("light", light)
	}
	return build("dark", dark)
}

// Default returns the dark theme.
func Default() Theme {
	return For("dark")
}

func build(name string, p palette) Theme {
	c := lipgloss.Color
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(p.border)).
		Padding(0, 1)

	return Theme{
		Name: name,
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
			User:  lipgloss.NewStyle().Foreground(c(p.text)),
			Badge: lipgloss.NewStyle().Foreground(c(p.text)).Background(c(p.danger)).Bold(true).Padding(0, 1),
			View:  lipgloss.NewStyle().Foreground(c(p.muted)),
		},
		Gig: GigTheme{
			Card:      card,
			Selected:  card.BorderForeground(c(p.accent)),
			Band:      lipgloss.NewStyle().Foreground(c(p.text)).Bold(true),
			Meta:      lipgloss.NewStyle().Foreground(c(p.muted)),
			Price:     lipgloss.NewStyle().Foreground(c(p.teal)),
			Interest:  lipgloss.NewStyle().Foreground(c(p.warn)),
			Ticket:    lipgloss.NewStyle().Foreground(c(p.teal)).Bold(true),
			Past:      lipgloss.NewStyle().Foreground(c(p.muted)).Faint(true),
			Section:   lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true).Underline(true),
			TableHead: lipgloss.NewStyle().Foreground(c(p.muted)).Bold(true),
		},
		Action: ActionTheme{
			Added:   lipgloss.NewStyle().Foreground(c(p.teal)),
			Edited:  lipgloss.NewStyle().Foreground(c(p.warn)),
			Deleted: lipgloss.NewStyle().Foreground(c(p.danger)),
			Other:   lipgloss.NewStyle().Foreground(c(p.muted)),
		},
		Toast: ToastTheme{
			Info:  lipgloss.NewStyle().Foreground(c(p.teal)),
			Error: lipgloss.NewStyle().Foreground(c(p.danger)).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(c(p.accent)).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true).Foreground(c(p.accent)),
			Label: lipgloss.NewStyle().Foreground(c(p.muted)),
			Focus: lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
			Error: lipgloss.NewStyle().Foreground(c(p.danger)),
		},
		Footer: lipgloss.NewStyle().Foreground(c(p.muted)),
		Muted:  lipgloss.NewStyle().Foreground(c(p.muted)),
	}
}

// ActionStyle picks the style for a history action name.
func (t Theme) ActionStyle(action string) lipgloss.Style {
	switch action {
	case "Added":
		return t.Action.Added
	case "Edited":
		return t.Action.Edited
	case "Deleted":
		return t.Action.Deleted
	default:
		return t.Action.Other
	}
}
