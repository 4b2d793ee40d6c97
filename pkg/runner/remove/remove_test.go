package remove

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/gigs/pkg/api/apitest"
	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/app/apptest"
	"tableflip.dev/gigs/pkg/gig"
)

func TestRemoveShiftsRows(t *testing.T) {
	sheet := apitest.NewSheet("pw",
		gig.Gig{Band: "First", Location: "A", Date: "2024-05-01"},
		gig.Gig{Band: "Second", Location: "B", Date: "2024-06-01"},
	)
	env := apptest.New(t, sheet, "Scott")
	var out bytes.Buffer

	s := Remove{Controller: env.Controller, RowIndex: 2, Out: &out}
	require.NoError(t, s.Do(context.Background()))

	assert.Contains(t, out.String(), `Deleted "First"`)
	state := env.Controller.Snapshot()
	require.Len(t, state.Gigs, 1)
	assert.Equal(t, "Second", state.Gigs[0].Band)
	assert.Equal(t, int64(2), state.Gigs[0].RowIndex)

	var summary string
	for _, h := range sheet.History() {
		if h.Action == gig.ActionDeleted {
			summary = h.Summary
		}
	}
	assert.Equal(t, "A, 2024-05-01", summary)
}

func TestRemoveUnknownRow(t *testing.T) {
	env := apptest.New(t, apitest.NewSheet("pw"), "Scott")

	s := Remove{Controller: env.Controller, RowIndex: 2, Out: &bytes.Buffer{}}
	assert.ErrorIs(t, s.Do(context.Background()), app.ErrGigNotFound)
}
