// Package store keeps the signed-in session and display preferences on
// local disk between runs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/gigs/pkg/gig"
)

// Preference keys.
const (
	KeySession   = "session"
	KeyTheme     = "theme"
	KeyLastSeen  = "last-seen"
	KeyLastVisit = "last-visit"
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

const prefsDir = "prefs"

// Prefs is a diskv backed key/value store of string preferences.
type Prefs struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates the preference store under cfg's base path. A nil cfg loads
// the configuration from the environment.
func Open(cfg PathConfig) (*Prefs, error) {
	if cfg == nil {
		c, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	base := cfg.BasePath()
	if base == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(filepath.Join(base, prefsDir), 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	// No read cache: another process may sign out underneath us.
	return &Prefs{d: diskv.New(diskv.Options{
		BasePath:          base,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		FilePerm:          0o600,
		PathPerm:          0o700,
	}), basePath: base}, nil
}

// BasePath is the directory holding the store.
func (p *Prefs) BasePath() string {
	return p.basePath
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{prefsDir}, FileName: key}
}

func pathToKey(pk *diskv.PathKey) string {
	return pk.FileName
}

func (p *Prefs) get(key string) (string, bool) {
	val, err := p.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (p *Prefs) set(key, val string) error {
	if err := p.d.WriteString(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *Prefs) erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// Session returns the persisted session, or nil when there is none or the
// stored value is unreadable.
func (p *Prefs) Session() *gig.Session {
	raw, ok := p.get(KeySession)
	if !ok {
		return nil
	}
	s := &gig.Session{}
	if err := json.Unmarshal([]byte(raw), s); err != nil {
		return nil
	}
	return s
}

// SaveSession persists s.
func (p *Prefs) SaveSession(s gig.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode session: %w", err)
	}
	return p.set(KeySession, string(b))
}

// ClearSession removes the persisted session.
func (p *Prefs) ClearSession() error {
	return p.erase(KeySession)
}

// Theme returns light or dark, dark when unset.
func (p *Prefs) Theme() string {
	raw, _ := p.get(KeyTheme)
	if strings.TrimSpace(raw) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme persists theme, which must be light or dark.
func (p *Prefs) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("store: unknown theme %q", theme)
	}
	return p.set(KeyTheme, theme)
}

// LastSeen returns the history watermark.
func (p *Prefs) LastSeen() string {
	raw, ok := p.get(KeyLastSeen)
	if !ok || raw == "" {
		return gig.DefaultWatermark
	}
	return raw
}

// SetLastSeen persists the history watermark.
func (p *Prefs) SetLastSeen(ts string) error {
	return p.set(KeyLastSeen, ts)
}

// LastVisit returns epoch milliseconds of the last logged visit, zero when
// absent or unparseable.
func (p *Prefs) LastVisit() int64 {
	raw, ok := p.get(KeyLastVisit)
	if !ok {
		return 0
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return ms
}

// SetLastVisit persists epoch milliseconds of the last logged visit.
func (p *Prefs) SetLastVisit(ms int64) error {
	return p.set(KeyLastVisit, strconv.FormatInt(ms, 10))
}
