package people

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/gigs/pkg/api/apitest"
	"tableflip.dev/gigs/pkg/app/apptest"
	"tableflip.dev/gigs/pkg/gig"
)

func init() {
	color.NoColor = true
}

func TestPeopleList(t *testing.T) {
	sheet := apitest.NewSheet("pw", gig.Gig{Band: "Low", Location: "Hall", Date: "2024-05-01", Interested: []string{"Alice"}})
	sheet.AddPeople("Alice", "Bob")
	env := apptest.New(t, sheet, "Scott")
	var out bytes.Buffer

	s := People{Controller: env.Controller, Out: &out}
	require.NoError(t, s.Do(context.Background()))
	assert.Contains(t, out.String(), "Alice")
	assert.Contains(t, out.String(), "Bob")
}

func TestPeopleAdd(t *testing.T) {
	sheet := apitest.NewSheet("pw")
	sheet.AddPeople("Alice")
	env := apptest.New(t, sheet, "Scott")
	var out bytes.Buffer

	s := People{Controller: env.Controller, Add: " Bob ", Out: &out}
	require.NoError(t, s.Do(context.Background()))
	assert.Equal(t, []string{"Alice", "Bob"}, sheet.People())

	out.Reset()
	s.Add = "Alice"
	require.NoError(t, s.Do(context.Background()))
	assert.Contains(t, out.String(), "already listed")
	assert.Equal(t, []string{"Alice", "Bob"}, sheet.People())
}
