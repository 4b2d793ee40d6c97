package get

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/gigs/pkg/api/apitest"
	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/app/apptest"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/runner"
)

func init() {
	color.NoColor = true
}

func newSheet() *apitest.Sheet {
	return apitest.NewSheet("pw",
		gig.Gig{Band: "Low", Location: "Hall", Date: "2999-01-01", Price: "12.5", Interested: []string{"Alice"}, TicketsBought: []string{}},
		gig.Gig{Band: "Old", Location: "Club", Date: "2001-01-01", Interested: []string{}, TicketsBought: []string{}},
	)
}

func TestGetCards(t *testing.T) {
	env := apptest.New(t, newSheet(), "Scott")
	var out bytes.Buffer

	s := Get{Controller: env.Controller, Out: &out}
	require.NoError(t, s.Do(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Upcoming")
	assert.Contains(t, text, "Low")
	assert.Contains(t, text, "£12.50")
	assert.Contains(t, text, "Past")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Low")), bytes.Index(out.Bytes(), []byte("Old")))
}

func TestGetJSON(t *testing.T) {
	env := apptest.New(t, newSheet(), "Scott")
	var out bytes.Buffer

	s := Get{Controller: env.Controller, JSON: true, Out: &out}
	require.NoError(t, s.Do(context.Background()))

	var gigs []gig.Gig
	require.NoError(t, json.Unmarshal(out.Bytes(), &gigs))
	require.Len(t, gigs, 2)
	assert.Equal(t, int64(2), gigs[0].RowIndex)
	assert.Equal(t, gig.Price("12.5"), gigs[0].Price)
}

func TestGetChangedOnly(t *testing.T) {
	sheet := newSheet()
	sheet.AddHistory(
		gig.HistoryEntry{Action: gig.ActionEdited, Band: "Old", User: "Alice", Timestamp: "2024-05-01T12:00:00.000Z"},
		gig.HistoryEntry{Action: gig.ActionAdded, Band: "Low", User: "Scott", Timestamp: "2024-05-02T12:00:00.000Z"},
	)
	env := apptest.New(t, sheet, "Scott")
	var out bytes.Buffer

	s := Get{Controller: env.Controller, ChangedOnly: true, JSON: true, Out: &out}
	require.NoError(t, s.Do(context.Background()))

	var gigs []gig.Gig
	require.NoError(t, json.Unmarshal(out.Bytes(), &gigs))
	require.Len(t, gigs, 1)
	assert.Equal(t, "Old", gigs[0].Band)
}

func TestGetTableView(t *testing.T) {
	env := apptest.New(t, newSheet(), "Scott")
	var out bytes.Buffer

	s := Get{Controller: env.Controller, View: app.ViewTable, Out: &out}
	require.NoError(t, s.Do(context.Background()))
	assert.Contains(t, out.String(), "BAND")
}

func TestGetNeedsSession(t *testing.T) {
	env := apptest.New(t, newSheet(), "")

	s := Get{Controller: env.Controller, Out: &bytes.Buffer{}}
	assert.ErrorIs(t, s.Do(context.Background()), runner.ErrNotSignedIn)
}

func TestGetWaitsForVisitEvent(t *testing.T) {
	sheet := newSheet()
	sheet.Delay("logEvent", 200*time.Millisecond)
	env := apptest.New(t, sheet, "Scott")

	s := Get{Controller: env.Controller, Out: &bytes.Buffer{}}
	require.NoError(t, s.Do(context.Background()))

	var visits int
	for _, e := range sheet.History() {
		if e.Action == gig.ActionVisited && e.User == "Scott" {
			visits++
		}
	}
	assert.Equal(t, 1, visits)
	assert.NotZero(t, env.Prefs.LastVisit())
}
