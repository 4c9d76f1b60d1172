// ABOUTME: Test doubles for the dashboard: in-memory account store and fake fetcher
// ABOUTME: Helpers build a controller wired to a real fetch coordinator

package dashboard

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/mauromedda/postdash/internal/config"
	"github.com/mauromedda/postdash/internal/feed"
	"github.com/mauromedda/postdash/internal/fetch"
	"github.com/mauromedda/postdash/internal/keybindings"
	"github.com/mauromedda/postdash/internal/store"
)

type memStore struct {
	mu        sync.Mutex
	handles   []string
	createErr error
	deleteErr error
	listErr   error
}

func (m *memStore) ListAccounts(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return slices.Clone(m.handles), nil
}

func (m *memStore) CreateAccount(_ context.Context, h string) (store.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return store.Account{}, m.createErr
	}
	if !slices.Contains(m.handles, h) {
		m.handles = append(m.handles, h)
	}
	return store.Account{Handle: h, Name: h}, nil
}

func (m *memStore) DeleteAccount(_ context.Context, h string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	i := slices.Index(m.handles, h)
	if i < 0 {
		return store.ErrNotFound
	}
	m.handles = slices.Delete(m.handles, i, i+1)
	return nil
}

func (m *memStore) list() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.handles)
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{calls: make(map[string]int), fail: make(map[string]error)}
}

func (f *fakeFetcher) FetchPosts(_ context.Context, h string, _ int) ([]feed.Post, error) {
	f.mu.Lock()
	f.calls[h]++
	err := f.fail[h]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	day := func(d int) time.Time { return time.Date(2024, 3, d, 8, 0, 0, 0, time.UTC) }
	return []feed.Post{
		{Date: day(3), Text: h + " newest"},
		{Date: day(2), Text: h + " middle"},
		{Date: day(1), Text: h + " oldest"},
	}, nil
}

func (f *fakeFetcher) callCount(h string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[h]
}

func (f *fakeFetcher) setFail(h string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[h] = err
}

type fixture struct {
	c       *Controller
	store   *memStore
	fetcher *fakeFetcher
	coord   *fetch.Coordinator
}

func testOptions() Options {
	return Options{ModalWidth: 23, ModalHeight: 4, Interval: 5 * time.Millisecond}
}

func newFixture(t *testing.T, handles ...string) *fixture {
	t.Helper()
	return newFixtureWith(t, newFakeFetcher(), handles...)
}

func newFixtureWith(t *testing.T, f *fakeFetcher, handles ...string) *fixture {
	t.Helper()
	st := &memStore{handles: slices.Clone(handles)}
	coord := fetch.New(context.Background(), f, fetch.Options{})
	t.Cleanup(coord.Close)

	keys := keybindings.NewFromBindings(config.NewKeybindings())
	c, err := New(context.Background(), st, coord, keys, testOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{c: c, store: st, fetcher: f, coord: coord}
}

// settle applies n fetch results.
func (fx *fixture) settle(t *testing.T, n int) {
	t.Helper()
	for range n {
		select {
		case r := <-fx.coord.Results():
			fx.c.Apply(r)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a fetch result")
		}
	}
}

func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
