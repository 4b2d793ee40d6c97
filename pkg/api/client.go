// Package api adapts controller intents into requests for the remote
// script gateway that fronts the shared spreadsheet.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/logging"
)

// Gateway actions.
const (
	actionAuth      = "auth"
	actionGetAll    = "getAll"
	actionAddGig    = "addGig"
	actionUpdateGig = "updateGig"
	actionDeleteGig = "deleteGig"
	actionAddPerson = "addPerson"
	actionLogEvent  = "logEvent"
)

// Data is the full state returned by a getAll round trip.
type Data struct {
	Gigs    []gig.Gig
	People  []string
	History []gig.HistoryEntry
}

// Options configures a Client.
type Options struct {
	// ScriptURL is the single gateway endpoint.
	ScriptURL string
	// Timeout bounds each request; zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// Client talks to the gateway. It is safe for concurrent use.
type Client struct {
	url  string
	http *http.Client
	log  *logging.Logger

	// background tracks fire-and-forget event logging.
	background sync.WaitGroup
}

// New builds a Client.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Client{url: opts.ScriptURL, http: hc, log: log}
}

type response struct {
	OK      bool               `json:"ok"`
	Error   string             `json:"error,omitempty"`
	Gigs    []gig.Gig          `json:"gigs,omitempty"`
	People  []string           `json:"people,omitempty"`
	History []gig.HistoryEntry `json:"history,omitempty"`
}

// call posts payload and decodes the body. The script host answers with
// text/plain, so the body is read as text and parsed manually.
func (c *Client) call(ctx context.Context, payload map[string]interface{}) (*response, error) {
	if strings.TrimSpace(c.url) == "" {
		return nil, fmt.Errorf("%w: no script url configured", ErrConnectivity)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("api: encode %v: %w", payload["action"], err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrConnectivity, err)
	}

	var out response
	if err := json.Unmarshal(text, &out); err != nil {
		c.log.With(map[string]interface{}{
			"action": payload["action"],
			"status": resp.StatusCode,
		}).Debug("gateway returned non-JSON body")
		return nil, ErrInvalidResponse
	}
	return &out, nil
}

// CheckPassword asks the gateway whether password is the shared secret.
// A wrong password is (false, nil); transport problems are errors.
func (c *Client) CheckPassword(ctx context.Context, password string) (bool, error) {
	res, err := c.call(ctx, map[string]interface{}{
		"action":   actionAuth,
		"password": password,
	})
	if err != nil {
		return false, err
	}
	return res.OK, nil
}

// FetchAll loads gigs, people and history in one round trip.
func (c *Client) FetchAll(ctx context.Context, password string) (Data, error) {
	res, err := c.call(ctx, map[string]interface{}{
		"action":   actionGetAll,
		"password": password,
	})
	if err != nil {
		return Data{}, err
	}
	if !res.OK {
		return Data{}, newServerError(res.Error, "Failed to load data")
	}
	return Data{Gigs: res.Gigs, People: res.People, History: res.History}, nil
}

// AddGig creates a gig on behalf of user.
func (c *Client) AddGig(ctx context.Context, password, user string, g gig.Gig) error {
	return c.mutate(ctx, "Failed to add gig", map[string]interface{}{
		"action":   actionAddGig,
		"password": password,
		"user":     user,
		"gig":      g,
	})
}

// UpdateGig replaces the gig identified by g.RowIndex; summary becomes the
// history entry text.
func (c *Client) UpdateGig(ctx context.Context, password, user string, g gig.Gig, summary string) error {
	return c.mutate(ctx, "Failed to update gig", map[string]interface{}{
		"action":   actionUpdateGig,
		"password": password,
		"user":     user,
		"gig":      g,
		"summary":  summary,
	})
}

// RemoveGig deletes the gig at g.RowIndex.
func (c *Client) RemoveGig(ctx context.Context, password, user string, g gig.Gig) error {
	return c.mutate(ctx, "Failed to delete gig", map[string]interface{}{
		"action":   actionDeleteGig,
		"password": password,
		"user":     user,
		"rowIndex": g.RowIndex,
		"band":     g.Band,
		"summary":  DeleteSummary(g),
	})
}

// AddPerson records a new name in the shared people list.
func (c *Client) AddPerson(ctx context.Context, password, name string) error {
	return c.mutate(ctx, "Failed to add person", map[string]interface{}{
		"action":   actionAddPerson,
		"password": password,
		"name":     name,
	})
}

// LogEvent records a non-gig event (visits, logins). It returns immediately;
// the outcome only reaches the diagnostic log.
func (c *Client) LogEvent(password, user string, event gig.Action, summary string) {
	log := c.log.With(map[string]interface{}{"event": string(event), "user": user})
	log.Debug("logEvent called")

	c.background.Add(1)
	go func() {
		defer c.background.Done()
		err := c.mutate(context.Background(), "Failed to log event", map[string]interface{}{
			"action":    actionLogEvent,
			"password":  password,
			"user":      user,
			"eventType": string(event),
			"summary":   summary,
		})
		if err != nil {
			log.Warn(err, "logEvent failed")
			return
		}
		log.Debug("logEvent response ok")
	}()
}

// Flush waits for outstanding LogEvent calls, for short-lived processes.
func (c *Client) Flush() {
	c.background.Wait()
}

func (c *Client) mutate(ctx context.Context, fallback string, payload map[string]interface{}) error {
	res, err := c.call(ctx, payload)
	if err != nil {
		return err
	}
	if !res.OK {
		return newServerError(res.Error, fallback)
	}
	return nil
}

// DeleteSummary is the history text recorded when a gig is deleted.
func DeleteSummary(g gig.Gig) string {
	return fmt.Sprintf("%s, %s", g.Location, g.Date)
}
