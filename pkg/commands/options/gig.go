package options

import (
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/snake"
)

const layoutISO = "2006-01-02"

// GigOptions holds the gig fields settable from flags.
type GigOptions struct {
	Band       string
	Location   string
	Date       string
	Price      string
	Link       string
	Notes      string
	Interested string
	Tickets    string
}

func AddGigArgs(cmd *cobra.Command, o *GigOptions) {
	cmd.Flags().StringVarP(&o.Band, "band", "b", "", "Band name.")
	cmd.Flags().StringVarP(&o.Location, "location", "l", "", "Venue.")
	cmd.Flags().StringVarP(&o.Date, "date", "d", "",
		base.Wrap80(`Date of the gig, example: --date="`+layoutISO+`".`))
	cmd.Flags().StringVarP(&o.Price, "price", "p", "", "Ticket price, a number.")
	cmd.Flags().StringVar(&o.Link, "link", "", "Link to tickets or the event page.")
	cmd.Flags().StringVar(&o.Notes, "notes", "", "Free text notes.")
	cmd.Flags().StringVar(&o.Interested, "interested", "",
		base.Wrap80("Comma separated names of people interested."))
	cmd.Flags().StringVar(&o.Tickets, "tickets", "",
		base.Wrap80("Comma separated names of people holding tickets."))
}

// Apply copies every flag that was set on cmd into g. Unset flags leave g
// alone, so the same options serve add and edit.
func (o *GigOptions) Apply(cmd *cobra.Command, g *gig.Gig) error {
	changed := cmd.Flags().Changed
	if changed("band") {
		g.Band = strings.TrimSpace(o.Band)
	}
	if changed("location") {
		g.Location = strings.TrimSpace(o.Location)
	}
	if changed("date") {
		g.Date = strings.TrimSpace(o.Date)
	}
	if changed("price") {
		p, err := gig.ParsePrice(o.Price)
		if err != nil {
			return err
		}
		g.Price = p
	}
	if changed("link") {
		g.Link = strings.TrimSpace(o.Link)
	}
	if changed("notes") {
		g.Notes = o.Notes
	}
	if changed("interested") {
		g.Interested = append([]string{}, gig.ParseNames(o.Interested)...)
	}
	if changed("tickets") {
		g.TicketsBought = append([]string{}, gig.ParseNames(o.Tickets)...)
	}
	return nil
}

// Fields lists the gig flags for interactive prompting, defaulted from g
// when editing.
func (o *GigOptions) Fields(g *gig.Gig) []snake.Field {
	if g == nil {
		g = &gig.Gig{}
	}
	return []snake.Field{
		{Flag: "band", Label: "Band", Default: g.Band, Required: true},
		{Flag: "location", Label: "Venue", Default: g.Location, Required: true},
		{Flag: "date", Label: "Date (" + layoutISO + ")", Default: g.Date, Required: true},
		{Flag: "price", Label: "Price", Default: g.Price.String()},
		{Flag: "link", Label: "Link", Default: g.Link},
		{Flag: "notes", Label: "Notes", Default: g.Notes},
		{Flag: "interested", Label: "Interested", Default: strings.Join(g.Interested, ", ")},
		{Flag: "tickets", Label: "Tickets", Default: strings.Join(g.TicketsBought, ", ")},
	}
}
