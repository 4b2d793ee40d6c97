package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/gigs/pkg/api"
	"tableflip.dev/gigs/pkg/gig"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	gw    *fakeGateway
	prefs *memoryPrefs
	clock *fixedClock
	c     *Controller
}

func newHarness(t *testing.T, gigs ...gig.Gig) *harness {
	t.Helper()
	h := &harness{
		gw:    newFakeGateway("secret", gigs...),
		prefs: &memoryPrefs{},
		clock: &fixedClock{t: epoch},
	}
	h.c = New(Config{Gateway: h.gw, Prefs: h.prefs, Clock: h.clock.Now})
	return h
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	if err := h.c.Login(context.Background(), "Alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func bands(gigs []gig.Gig) []string {
	out := make([]string, 0, len(gigs))
	for _, g := range gigs {
		out = append(out, g.Band)
	}
	return out
}

func hasBand(gigs []gig.Gig, band string) bool {
	for _, g := range gigs {
		if g.Band == band {
			return true
		}
	}
	return false
}

func sampleGig(band string) gig.Gig {
	return gig.Gig{Band: band, Location: "Z", Date: "2024-05-01"}
}

func TestLoginSuccessPersistsAndLoads(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)

	s := h.c.Snapshot()
	if !s.SignedIn() || s.User() != "Alice" {
		t.Fatalf("expected Alice signed in, got %+v", s.Session)
	}
	if saved := h.prefs.Session(); saved == nil || saved.Password != "secret" {
		t.Fatalf("expected persisted session, got %+v", saved)
	}
	if got := bands(s.Gigs); len(got) != 1 || got[0] != "X" {
		t.Fatalf("expected gigs [X], got %v", got)
	}
	if s.Loading {
		t.Fatalf("expected loading cleared")
	}
	if len(h.gw.events) != 1 || h.gw.events[0] != gig.ActionLoggedIn {
		t.Fatalf("expected Logged in event, got %v", h.gw.events)
	}
}

func TestLoginWrongPasswordPersistsNothing(t *testing.T) {
	h := newHarness(t)
	err := h.c.Login(context.Background(), "Alice", "wrong")
	if !errors.Is(err, api.ErrAuthRejected) {
		t.Fatalf("expected ErrAuthRejected, got %v", err)
	}
	if errors.Is(err, api.ErrConnectivity) {
		t.Fatalf("rejected password reported as a connectivity failure: %v", err)
	}
	s := h.c.Snapshot()
	if s.Session != nil {
		t.Fatalf("expected no session, got %+v", s.Session)
	}
	if h.prefs.Session() != nil || h.prefs.saves != 0 {
		t.Fatalf("expected nothing persisted")
	}
	if s.LoginError != MsgIncorrectPassword {
		t.Fatalf("expected %q, got %q", MsgIncorrectPassword, s.LoginError)
	}
}

func TestLoginConnectivityFailure(t *testing.T) {
	h := newHarness(t)
	h.gw.authErr = errors.New("dial tcp: connection refused")

	err := h.c.Login(context.Background(), "Alice", "secret")
	if !errors.Is(err, api.ErrConnectivity) {
		t.Fatalf("expected ErrConnectivity, got %v", err)
	}
	if got := h.c.Snapshot().LoginError; got != MsgCouldNotConnect {
		t.Fatalf("expected %q, got %q", MsgCouldNotConnect, got)
	}
	if h.prefs.Session() != nil {
		t.Fatalf("expected no persisted session")
	}
}

func TestLoginInvalidResponseKeepsCause(t *testing.T) {
	h := newHarness(t)
	h.gw.authErr = fmt.Errorf("%w: <html>", api.ErrInvalidResponse)

	err := h.c.Login(context.Background(), "Alice", "secret")
	if !errors.Is(err, api.ErrConnectivity) {
		t.Fatalf("expected ErrConnectivity, got %v", err)
	}
	if !errors.Is(err, api.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse kept in chain, got %v", err)
	}
}

func TestLoginConnectivityNotWrappedTwice(t *testing.T) {
	h := newHarness(t)
	cause := fmt.Errorf("%w: dial tcp: refused", api.ErrConnectivity)
	h.gw.authErr = cause

	if err := h.c.Login(context.Background(), "Alice", "secret"); err != cause {
		t.Fatalf("expected cause returned as is, got %v", err)
	}
}

func TestSignOutClearsEverything(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.gw.people = []string{"Alice", "Bob"}
	h.gw.history = []gig.HistoryEntry{{Action: gig.ActionAdded, Band: "X", User: "Bob"}}
	h.login(t)
	// Sign-out must not depend on the network.
	h.gw.fetchErr = errors.New("offline")

	h.c.SignOut()

	s := h.c.Snapshot()
	if s.Session != nil || len(s.Gigs) != 0 || len(s.People) != 0 || len(s.History) != 0 {
		t.Fatalf("expected empty state, got %+v", s)
	}
	if h.prefs.Session() != nil {
		t.Fatalf("expected persisted session cleared")
	}
}

func TestAddThenFailReconcilesAway(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)

	h.gw.release = make(chan struct{})
	h.gw.addErr = errors.New("quota exceeded")

	tmp, err := h.c.AddGig(context.Background(), gig.Gig{Band: "Y", Location: "Z", Date: "2024-05-01"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if tmp.RowIndex != epoch.UnixMilli() {
		t.Fatalf("expected temporary row index from clock, got %d", tmp.RowIndex)
	}

	s := h.c.Snapshot()
	if !hasBand(s.Gigs, "Y") {
		t.Fatalf("expected optimistic Y, got %v", bands(s.Gigs))
	}
	if s.Toast == nil || s.Toast.Message != `Added "Y"` || s.Toast.Kind != ToastInfo {
		t.Fatalf("expected add toast, got %+v", s.Toast)
	}

	close(h.gw.release)
	h.c.Wait()

	s = h.c.Snapshot()
	if hasBand(s.Gigs, "Y") {
		t.Fatalf("expected Y gone after resync, got %v", bands(s.Gigs))
	}
	if s.Toast == nil || s.Toast.Message != MsgSaveFailed || s.Toast.Kind != ToastError {
		t.Fatalf("expected failure toast, got %+v", s.Toast)
	}
}

func TestAddSuccessPicksUpServerRowIndex(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)

	if _, err := h.c.AddGig(context.Background(), sampleGig("Y")); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.c.Wait()

	g, ok := findBand(h.c.Snapshot().Gigs, "Y")
	if !ok {
		t.Fatalf("expected Y after resync")
	}
	if g.RowIndex != 3 {
		t.Fatalf("expected server row index 3, got %d", g.RowIndex)
	}
}

func TestTempRowIndexIsUnique(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.gw.release = make(chan struct{})
	defer func() {
		close(h.gw.release)
		h.c.Wait()
	}()

	a, _ := h.c.AddGig(context.Background(), sampleGig("A"))
	b, _ := h.c.AddGig(context.Background(), sampleGig("B"))
	if a.RowIndex == b.RowIndex {
		t.Fatalf("expected distinct temporary ids, both %d", a.RowIndex)
	}
}

func findBand(gigs []gig.Gig, band string) (gig.Gig, bool) {
	for _, g := range gigs {
		if g.Band == band {
			return g, true
		}
	}
	return gig.Gig{}, false
}

func TestUpdateSuccessDoesNotResync(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)
	before := h.c.Snapshot().Gigs[0]
	fetches := h.gw.fetchCount()

	after := before.Clone()
	after.Notes = "front row"
	if err := h.c.UpdateGig(context.Background(), &before, after); err != nil {
		t.Fatalf("update: %v", err)
	}
	h.c.Wait()

	if got := h.gw.fetchCount(); got != fetches {
		t.Fatalf("expected no resync, fetches went %d -> %d", fetches, got)
	}
	if got := h.c.Snapshot().Gigs[0].Notes; got != "front row" {
		t.Fatalf("expected local edit kept, got %q", got)
	}
	if got := h.gw.history[0].Summary; got != "Notes updated" {
		t.Fatalf("expected diff summary, got %q", got)
	}
}

func TestUpdateWithoutSnapshotSendsUpdated(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)
	after := h.c.Snapshot().Gigs[0]
	after.Band = "X2"

	if err := h.c.UpdateGig(context.Background(), nil, after); err != nil {
		t.Fatalf("update: %v", err)
	}
	h.c.Wait()
	if got := h.gw.history[0].Summary; got != "Updated" {
		t.Fatalf("expected Updated, got %q", got)
	}
}

func TestUpdateFailureResyncs(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)
	before := h.c.Snapshot().Gigs[0]
	h.gw.updateErr = errors.New("boom")
	fetches := h.gw.fetchCount()

	after := before.Clone()
	after.Band = "Renamed"
	if err := h.c.UpdateGig(context.Background(), &before, after); err != nil {
		t.Fatalf("update: %v", err)
	}
	h.c.Wait()

	s := h.c.Snapshot()
	if got := h.gw.fetchCount(); got != fetches+1 {
		t.Fatalf("expected one resync, fetches went %d -> %d", fetches, got)
	}
	if !hasBand(s.Gigs, "X") || hasBand(s.Gigs, "Renamed") {
		t.Fatalf("expected server copy restored, got %v", bands(s.Gigs))
	}
	if s.Toast == nil || s.Toast.Message != MsgSaveFailed {
		t.Fatalf("expected save failure toast, got %+v", s.Toast)
	}
}

func TestDeleteAlwaysResyncs(t *testing.T) {
	for _, fail := range []bool{false, true} {
		h := newHarness(t, sampleGig("X"), sampleGig("Y"), sampleGig("W"))
		h.login(t)
		if fail {
			h.gw.deleteErr = errors.New("boom")
		}
		fetches := h.gw.fetchCount()
		target, _ := findBand(h.c.Snapshot().Gigs, "X")

		if err := h.c.DeleteGig(context.Background(), target); err != nil {
			t.Fatalf("delete: %v", err)
		}
		h.c.Wait()

		if got := h.gw.fetchCount(); got != fetches+1 {
			t.Fatalf("fail=%v: expected one resync, fetches went %d -> %d", fail, fetches, got)
		}
		s := h.c.Snapshot()
		if fail {
			if !hasBand(s.Gigs, "X") {
				t.Fatalf("expected X restored after failed delete")
			}
			if s.Toast == nil || s.Toast.Message != MsgDeleteFailed {
				t.Fatalf("expected delete failure toast, got %+v", s.Toast)
			}
			continue
		}
		if hasBand(s.Gigs, "X") {
			t.Fatalf("expected X deleted")
		}
		if y, _ := findBand(s.Gigs, "Y"); y.RowIndex != 2 {
			t.Fatalf("expected Y shifted to row 2, got %d", y.RowIndex)
		}
	}
}

func TestAddPersonFailureKeepsName(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.gw.personErr = errors.New("boom")

	if err := h.c.AddPerson(context.Background(), "  Cat "); err != nil {
		t.Fatalf("add person: %v", err)
	}
	h.c.Wait()

	s := h.c.Snapshot()
	if len(s.People) != 1 || s.People[0] != "Cat" {
		t.Fatalf("expected Cat kept locally, got %v", s.People)
	}
	if s.Toast == nil || s.Toast.Message != MsgPersonFailed {
		t.Fatalf("expected person failure toast, got %+v", s.Toast)
	}
}

func TestAddPersonIsCaseSensitiveAndIdempotent(t *testing.T) {
	h := newHarness(t)
	h.gw.people = []string{"Cat"}
	h.login(t)

	_ = h.c.AddPerson(context.Background(), "Cat")
	_ = h.c.AddPerson(context.Background(), "cat")
	h.c.Wait()

	if got := h.c.Snapshot().People; len(got) != 2 {
		t.Fatalf("expected [Cat cat], got %v", got)
	}
	if len(h.gw.people) != 2 {
		t.Fatalf("expected one gateway call, people now %v", h.gw.people)
	}
}

func TestSilentLoadInvalidPasswordSignsOut(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)
	// Someone rotated the shared password.
	h.gw.password = "rotated"

	err := h.c.LoadAll(context.Background(), true)
	if !api.IsAuthInvalid(err) {
		t.Fatalf("expected auth invalid, got %v", err)
	}
	s := h.c.Snapshot()
	if s.SignedIn() || len(s.Gigs) != 0 {
		t.Fatalf("expected forced sign-out, got %+v", s)
	}
	if s.LoginError != MsgSessionExpired {
		t.Fatalf("expected %q, got %q", MsgSessionExpired, s.LoginError)
	}
	if h.prefs.Session() != nil {
		t.Fatalf("expected persisted session cleared")
	}
}

func TestSilentLoadSwallowsOtherFailures(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)
	h.gw.fetchErr = errors.New("timeout")

	if err := h.c.LoadAll(context.Background(), true); err == nil {
		t.Fatalf("expected error returned")
	}
	s := h.c.Snapshot()
	if !s.SignedIn() || len(s.Gigs) != 1 {
		t.Fatalf("expected state untouched, got %+v", s)
	}
	if s.Toast != nil {
		t.Fatalf("expected no toast, got %+v", s.Toast)
	}
}

func TestLoudLoadToastsFailure(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)
	h.gw.fetchErr = errors.New("timeout")

	_ = h.c.LoadAll(context.Background(), false)
	s := h.c.Snapshot()
	if s.Toast == nil || s.Toast.Message != MsgLoadFailed || s.Toast.Kind != ToastError {
		t.Fatalf("expected load failure toast, got %+v", s.Toast)
	}
	if s.Loading {
		t.Fatalf("expected loading cleared")
	}
}

func TestMutationsNeedSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.c.AddGig(ctx, sampleGig("X")); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := h.c.DeleteGig(ctx, sampleGig("X")); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := h.c.Restore(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRestoreLogsVisitOncePerHour(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.prefs.session = &gig.Session{Name: "Alice", Password: "secret"}

	if err := h.c.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(h.c.Snapshot().Gigs) != 1 {
		t.Fatalf("expected data loaded on restore")
	}
	h.clock.Advance(10 * time.Minute)
	_ = h.c.Restore(context.Background())
	h.clock.Advance(time.Hour)
	_ = h.c.Restore(context.Background())

	if h.gw.visits != 2 {
		t.Fatalf("expected 2 visits logged, got %d", h.gw.visits)
	}
}

func TestHistoryViewAdvancesWatermark(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.gw.history = []gig.HistoryEntry{
		{Action: gig.ActionEdited, Band: "X", User: "Bob", Timestamp: "2024-05-01T11:00:00.000Z"},
		{Action: gig.ActionAdded, Band: "X", User: "Bob", Timestamp: "2024-04-30T11:00:00.000Z"},
	}
	h.login(t)

	if got := len(h.c.Unseen()); got != 2 {
		t.Fatalf("expected 2 unseen, got %d", got)
	}
	if got := h.c.ChangedGigs()["X"]; got != gig.ActionEdited {
		t.Fatalf("expected X highlighted as Edited, got %q", got)
	}

	if err := h.c.SetView(ViewTable); err != nil {
		t.Fatalf("set view: %v", err)
	}
	if got := len(h.c.Unseen()); got != 2 {
		t.Fatalf("expected non-history view to keep watermark, got %d unseen", got)
	}

	if err := h.c.SetView(ViewHistory); err != nil {
		t.Fatalf("set view: %v", err)
	}
	if got, want := h.prefs.LastSeen(), "2024-05-01T12:00:00.000Z"; got != want {
		t.Fatalf("expected watermark %s, got %s", want, got)
	}
	if got := len(h.c.Unseen()); got != 0 {
		t.Fatalf("expected nothing unseen, got %d", got)
	}
	if err := h.c.SetView("grid"); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}

func TestToggleThemePersists(t *testing.T) {
	h := newHarness(t)
	if got := h.c.Snapshot().Theme; got != "dark" {
		t.Fatalf("expected default dark, got %s", got)
	}
	next, err := h.c.ToggleTheme()
	if err != nil || next != "light" {
		t.Fatalf("expected light, got %s %v", next, err)
	}
	if h.prefs.Theme() != "light" {
		t.Fatalf("expected light persisted")
	}
}

func TestReloadPrefsFollowsExternalSignOut(t *testing.T) {
	h := newHarness(t, sampleGig("X"))
	h.login(t)
	_ = h.prefs.ClearSession()

	h.c.ReloadPrefs()
	if h.c.Snapshot().SignedIn() {
		t.Fatalf("expected sign-out to follow the store")
	}
}

func TestToastExpires(t *testing.T) {
	toast := &Toast{Message: "hi", At: epoch}
	if !toast.Active(epoch.Add(2 * time.Second)) {
		t.Fatalf("expected toast active at 2s")
	}
	if toast.Active(epoch.Add(ToastLifetime)) {
		t.Fatalf("expected toast expired at 3s")
	}
	var none *Toast
	if none.Active(epoch) {
		t.Fatalf("nil toast is never active")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	h := newHarness(t, gig.Gig{Band: "X", Location: "Z", Date: "2024-05-01", Interested: []string{"Bob"}})
	h.login(t)

	s := h.c.Snapshot()
	s.Gigs[0].Interested[0] = "Mallory"
	s.Gigs[0].Band = "Changed"
	if got := h.c.Snapshot().Gigs[0]; got.Band != "X" || got.Interested[0] != "Bob" {
		t.Fatalf("expected controller state untouched, got %+v", got)
	}
}
