package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gosuri/uitable"

	"tableflip.dev/gigs/pkg/runner"
	"tableflip.dev/gigs/pkg/store"
	"tableflip.dev/gigs/pkg/timeutil"
)

// Info prints where configuration and preferences live and what they hold.
// It never contacts the gateway.
type Info struct {
	Config *store.Config
	Prefs  *store.Prefs
	Now    time.Time
	Out    io.Writer
}

func (n *Info) Do(_ context.Context) error {
	if n.Config == nil {
		var err error
		if n.Config, err = store.LoadConfig(); err != nil {
			return err
		}
	}
	if n.Prefs == nil {
		var err error
		if n.Prefs, err = store.Open(n.Config); err != nil {
			return fmt.Errorf("failed to open preferences: %w", err)
		}
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		tbl.AddRow(store.ConfigPathEnv+":", override)
	} else {
		tbl.AddRow(store.ConfigPathEnv+":", "not set")
	}
	tbl.AddRow("Config.path:", n.Config.BasePath())
	url := n.Config.ScriptURL
	if url == "" {
		url = "not configured"
	}
	tbl.AddRow("Script URL:", url)
	tbl.AddRow("Log level:", n.Config.LogLevel)

	user := "signed out"
	if s := n.Prefs.Session(); s.Valid() {
		user = s.Name
	}
	tbl.AddRow("User:", user)
	tbl.AddRow("Theme:", n.Prefs.Theme())

	seen := "never"
	if ts := n.Prefs.LastSeen(); ts != "" && ts != "0" {
		seen = timeutil.Display(ts, now)
	}
	tbl.AddRow("History seen:", seen)

	visit := "never"
	if ms := n.Prefs.LastVisit(); ms > 0 {
		visit = timeutil.Ago(time.UnixMilli(ms), now)
	}
	tbl.AddRow("Last visit:", visit)

	_, _ = fmt.Fprintln(runner.Output(n.Out), tbl)
	return nil
}
