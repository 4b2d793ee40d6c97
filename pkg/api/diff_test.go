package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/gigs/pkg/gig"
)

func baseGig() gig.Gig {
	return gig.Gig{
		RowIndex:      4,
		Band:          "Battlesnake",
		Location:      "Sticky Mike's",
		Date:          "2024-05-01",
		Price:         gig.Price("12.5"),
		Link:          "https://example.com/a",
		Notes:         "bring earplugs",
		Interested:    []string{"Alice", "Bob"},
		TicketsBought: []string{"Alice"},
	}
}

func TestDiffNotesOnly(t *testing.T) {
	before := baseGig()
	after := before.Clone()
	after.Notes = "standing only"
	assert.Equal(t, "Notes updated", BuildDiffSummary(before, after))
}

func TestDiffNoChanges(t *testing.T) {
	assert.Equal(t, NoChanges, BuildDiffSummary(baseGig(), baseGig()))
	assert.Equal(t, NoChanges, BuildDiffSummary(gig.Gig{}, gig.Gig{}))
}

func TestDiffFieldOrder(t *testing.T) {
	before := baseGig()
	after := gig.Gig{
		RowIndex:      4,
		Band:          "Sleaford Mods",
		Location:      "Concorde 2",
		Date:          "2024-06-02",
		Price:         gig.NoPrice,
		Link:          "https://example.com/b",
		Notes:         "",
		Interested:    []string{"Bob", "Cat"},
		TicketsBought: nil,
	}
	want := `Band: "Battlesnake" → "Sleaford Mods"; ` +
		`Venue: "Sticky Mike's" → "Concorde 2"; ` +
		`Date: 2024-05-01 → 2024-06-02; ` +
		`Price: 12.5 → none; ` +
		`Interested: [Alice, Bob] → [Bob, Cat]; ` +
		`Tickets: [Alice] → [none]; ` +
		`Notes updated; ` +
		`Link updated`
	assert.Equal(t, want, BuildDiffSummary(before, after))
}

func TestDiffPriceComparesLiteralText(t *testing.T) {
	before := baseGig()
	before.Price = gig.Price("5")
	after := before.Clone()
	after.Price = gig.Price("5.0")
	assert.Equal(t, "Price: 5 → 5.0", BuildDiffSummary(before, after))
}

func TestDiffPriceFromNone(t *testing.T) {
	before := baseGig()
	before.Price = gig.NoPrice
	after := before.Clone()
	after.Price = gig.Price("8")
	assert.Equal(t, "Price: none → 8", BuildDiffSummary(before, after))
}

func TestDiffNameOrderMatters(t *testing.T) {
	before := baseGig()
	after := before.Clone()
	after.Interested = []string{"Bob", "Alice"}
	assert.Equal(t, "Interested: [Alice, Bob] → [Bob, Alice]", BuildDiffSummary(before, after))
}

func TestDiffNilAndEmptyListsAreEqual(t *testing.T) {
	before := baseGig()
	before.TicketsBought = nil
	after := before.Clone()
	after.TicketsBought = []string{}
	assert.Equal(t, NoChanges, BuildDiffSummary(before, after))
}
