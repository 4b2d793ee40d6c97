package snake

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCmd() (*cobra.Command, *string, *string) {
	var band, price string
	cmd := &cobra.Command{Use: "add"}
	cmd.Flags().StringVar(&band, "band", "", "")
	cmd.Flags().StringVar(&price, "price", "", "")
	return cmd, &band, &price
}

func TestPromptFlagsSkipsGivenFlags(t *testing.T) {
	cmd, band, price := newCmd()
	require.NoError(t, cmd.Flags().Set("band", "Low"))

	var asked []string
	err := PromptFlags(cmd, []Field{
		{Flag: "band", Label: "Band", Required: true},
		{Flag: "price", Label: "Price"},
	}, func(f Field) (string, error) {
		asked = append(asked, f.Flag)
		return "12", nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"price"}, asked)
	assert.Equal(t, "Low", *band)
	assert.Equal(t, "12", *price)
	assert.True(t, cmd.Flags().Changed("price"))
}

func TestPromptFlagsDefaultLeavesFlagUnset(t *testing.T) {
	cmd, band, price := newCmd()

	answers := map[string]string{"band": "Low", "price": ""}
	err := PromptFlags(cmd, []Field{
		{Flag: "band", Default: "Low"},
		{Flag: "price", Default: "5.0"},
	}, func(f Field) (string, error) { return answers[f.Flag], nil })
	require.NoError(t, err)

	assert.Empty(t, *band)
	assert.Empty(t, *price)
	assert.False(t, cmd.Flags().Changed("band"))
	assert.False(t, cmd.Flags().Changed("price"))
}

func TestPromptFlagsStopsOnError(t *testing.T) {
	cmd, _, _ := newCmd()
	abort := errors.New("^C")

	err := PromptFlags(cmd, []Field{{Flag: "band"}, {Flag: "price"}}, func(Field) (string, error) {
		return "", abort
	})
	assert.ErrorIs(t, err, abort)
}
