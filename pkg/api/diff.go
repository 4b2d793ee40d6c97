package api

import (
	"fmt"
	"strings"

	"tableflip.dev/gigs/pkg/gig"
)

// NoChanges is the summary for two identical gigs.
const NoChanges = "No changes detected"

// BuildDiffSummary describes what changed between two versions of a gig.
// Fields are compared in a fixed order (band, location, date, price,
// interested, tickets, notes, link) and each difference contributes one
// clause. Price is compared by its literal text. Notes and link only report
// that they changed.
func BuildDiffSummary(before, after gig.Gig) string {
	var changes []string

	if before.Band != after.Band {
		changes = append(changes, fmt.Sprintf(`Band: "%s" → "%s"`, before.Band, after.Band))
	}
	if before.Location != after.Location {
		changes = append(changes, fmt.Sprintf(`Venue: "%s" → "%s"`, before.Location, after.Location))
	}
	if before.Date != after.Date {
		changes = append(changes, fmt.Sprintf("Date: %s → %s", before.Date, after.Date))
	}

	oldPrice, newPrice := before.Price.String(), after.Price.String()
	if oldPrice != newPrice {
		changes = append(changes, fmt.Sprintf("Price: %s → %s", orNone(oldPrice), orNone(newPrice)))
	}

	oldInt, newInt := strings.Join(before.Interested, ", "), strings.Join(after.Interested, ", ")
	if oldInt != newInt {
		changes = append(changes, fmt.Sprintf("Interested: [%s] → [%s]", orNone(oldInt), orNone(newInt)))
	}

	oldTix, newTix := strings.Join(before.TicketsBought, ", "), strings.Join(after.TicketsBought, ", ")
	if oldTix != newTix {
		changes = append(changes, fmt.Sprintf("Tickets: [%s] → [%s]", orNone(oldTix), orNone(newTix)))
	}

	if before.Notes != after.Notes {
		changes = append(changes, "Notes updated")
	}
	if before.Link != after.Link {
		changes = append(changes, "Link updated")
	}

	if len(changes) == 0 {
		return NoChanges
	}
	return strings.Join(changes, "; ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
