package gig

import (
	"sort"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// FormatPrice renders a set price in pounds with two decimals. Prices that
// are not numbers are shown as sent; unset prices are empty.
func FormatPrice(p Price) string {
	if !p.IsSet() {
		return ""
	}
	f, err := strconv.ParseFloat(p.String(), 64)
	if err != nil {
		return p.String()
	}
	return "£" + strconv.FormatFloat(f, 'f', 2, 64)
}

// FormatDate renders an ISO date as "2 Jan 2006", or the raw text when it
// is not a date.
func FormatDate(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return date
	}
	return t.Format("2 Jan 2006")
}

func parseDate(date string) (time.Time, bool) {
	if len(date) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, date[:len(dateLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Upcoming reports whether the gig is today or later. Gigs without a
// readable date count as upcoming.
func (g Gig) Upcoming(today time.Time) bool {
	t, ok := parseDate(g.Date)
	if !ok {
		return true
	}
	y, m, d := today.Date()
	return !t.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Partition sorts gigs by date and splits them into upcoming, soonest
// first, and past, most recent first.
func Partition(gigs []Gig, today time.Time) (upcoming, past []Gig) {
	sorted := make([]Gig, len(gigs))
	copy(sorted, gigs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := parseDate(sorted[i].Date)
		b, _ := parseDate(sorted[j].Date)
		return a.Before(b)
	})
	for _, g := range sorted {
		if g.Upcoming(today) {
			upcoming = append(upcoming, g)
		} else {
			past = append(past, g)
		}
	}
	for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
		past[i], past[j] = past[j], past[i]
	}
	return upcoming, past
}
