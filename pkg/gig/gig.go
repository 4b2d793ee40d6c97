// Package gig defines the records shared between the gateway, the controller
// and the presentation layers.
package gig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is returned when a gig is missing a required field.
var ErrValidation = errors.New("gig: validation failed")

// Gig is a single concert listing. RowIndex is assigned by the gateway; a
// gig added locally carries a temporary, time-derived RowIndex until the
// next resync replaces it.
type Gig struct {
	RowIndex      int64    `json:"rowIndex"`
	Band          string   `json:"band"`
	Location      string   `json:"location"`
	Date          string   `json:"date"`
	Price         Price    `json:"price"`
	Link          string   `json:"link,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	Interested    []string `json:"interested"`
	TicketsBought []string `json:"ticketsBought"`
}

// Clone returns a deep copy of the gig.
func (g Gig) Clone() Gig {
	g.Interested = cloneNames(g.Interested)
	g.TicketsBought = cloneNames(g.TicketsBought)
	return g
}

// Validate performs the required-field check that gates form submission.
func (g Gig) Validate() error {
	var missing []string
	if strings.TrimSpace(g.Band) == "" {
		missing = append(missing, "band")
	}
	if strings.TrimSpace(g.Location) == "" {
		missing = append(missing, "location")
	}
	if g.Date == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// HasInterest reports whether name is in the interested set.
func (g Gig) HasInterest(name string) bool {
	return containsName(g.Interested, name)
}

// HasTicket reports whether name has bought a ticket.
func (g Gig) HasTicket(name string) bool {
	return containsName(g.TicketsBought, name)
}

// ToggleName adds name to the list when absent and removes it otherwise,
// preserving the order of the remaining names.
func ToggleName(names []string, name string) []string {
	if containsName(names, name) {
		out := make([]string, 0, len(names))
		for _, n := range names {
			if n != name {
				out = append(out, n)
			}
		}
		return out
	}
	return append(cloneNames(names), name)
}

// ParseNames splits a comma separated list, trimming blanks and dropping
// duplicates while keeping first-seen order.
func ParseNames(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || containsName(out, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func cloneNames(names []string) []string {
	if names == nil {
		return nil
	}
	return append([]string(nil), names...)
}
