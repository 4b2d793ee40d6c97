package app

import "strings"

// Binding is a key the browse screen responds to.
type Binding struct {
	Keys   string
	Help   string
	Footer string
}

// Bindings lists the browse screen keys in the order they are documented.
var Bindings = []Binding{
	{Keys: "j / ↓", Help: "next gig"},
	{Keys: "k / ↑", Help: "previous gig"},
	{Keys: "g / G", Help: "first / last gig"},
	{Keys: "a", Help: "add a gig", Footer: "a add"},
	{Keys: "e / enter", Help: "edit the selected gig", Footer: "e edit"},
	{Keys: "d / x", Help: "delete the selected gig", Footer: "d delete"},
	{Keys: "v", Help: "cycle cards, table, list and history", Footer: "v view"},
	{Keys: "h", Help: "open history and mark changes seen", Footer: "h history"},
	{Keys: "r", Help: "refresh from the sheet", Footer: "r refresh"},
	{Keys: "t", Help: "toggle light and dark theme", Footer: "t theme"},
	{Keys: "s", Help: "sign out", Footer: "s sign out"},
	{Keys: "q / ctrl+c", Help: "quit", Footer: "q quit"},
}

func footerHelp() string {
	parts := make([]string, 0, len(Bindings))
	for _, b := range Bindings {
		if b.Footer != "" {
			parts = append(parts, b.Footer)
		}
	}
	return strings.Join(parts, " · ")
}
