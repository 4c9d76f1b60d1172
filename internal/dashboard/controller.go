// ABOUTME: Dashboard controller: panels, modal, focus state machine, and fetch cascade
// ABOUTME: All state changes happen under one mutex; the render loop only reads

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/mauromedda/postdash/internal/config"
	"github.com/mauromedda/postdash/internal/feed"
	"github.com/mauromedda/postdash/internal/fetch"
	"github.com/mauromedda/postdash/internal/store"
	"github.com/mauromedda/postdash/pkg/tui"
	"github.com/mauromedda/postdash/pkg/tui/key"
)

// Panel and modal titles.
const (
	AccountsTitle = "Accounts"
	PostsTitle    = "Posts"
	FollowTitle   = "Follow"
	FooterTitle   = "Key"
)

// AccountStore persists followed accounts.
type AccountStore interface {
	ListAccounts(ctx context.Context) ([]string, error)
	CreateAccount(ctx context.Context, handle string) (store.Account, error)
	DeleteAccount(ctx context.Context, handle string) error
}

// Options holds the reloadable display settings.
type Options struct {
	ModalWidth  int
	ModalHeight int
	Borderless  bool
	Interval    time.Duration
}

// OptionsFrom extracts display settings from cfg.
func OptionsFrom(cfg config.Config) Options {
	return Options{
		ModalWidth:  cfg.TUI.ModalWidth,
		ModalHeight: cfg.TUI.ModalHeight,
		Borderless:  cfg.TUI.Borderless,
		Interval:    cfg.TUI.RefreshInterval(),
	}
}

// Controller owns the dashboard state.
type Controller struct {
	store AccountStore
	fetch *fetch.Coordinator
	keys  KeyMap

	optsCh chan Options
	keysCh chan struct{}

	mu       sync.Mutex
	ctx      context.Context
	opts     Options
	glyphs   tui.Glyphs
	accounts *tui.ListPanel
	posts    *tui.ListPanel
	footer   []*tui.Content
	handles  []string // parallel to the accounts panel items
	rows     map[string]*tui.Content
	modal    *tui.InputModal
	focus    Focus
	shown    string // handle whose posts are in the posts panel
	quit     bool
	err      error // raised inside callbacks that cannot return one
}

// New builds the dashboard from the stored accounts and requests posts for
// each of them.
func New(ctx context.Context, st AccountStore, coord *fetch.Coordinator, keys KeyMap, opts Options) (*Controller, error) {
	c := &Controller{
		store:    st,
		fetch:    coord,
		keys:     keys,
		optsCh:   make(chan Options, 1),
		keysCh:   make(chan struct{}, 1),
		ctx:      ctx,
		accounts: tui.NewListPanel(AccountsTitle),
		posts:    tui.NewListPanel(PostsTitle),
		rows:     make(map[string]*tui.Content),
	}
	c.accounts.OnSelect(c.onAccountSelected)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyOptionsLocked(opts)
	c.applyKeysLocked()
	if err := c.refreshAccountsLocked(); err != nil {
		return nil, err
	}
	for _, h := range c.handles {
		c.requestLocked(h)
	}
	return c, nil
}

// HandleKey routes k to the focused component and, when it declines, runs
// the bound command. A returned error is fatal to the input loop.
func (c *Controller) HandleKey(k key.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quit {
		return nil
	}

	if c.focusedLocked().HandleKey(k) == tui.Handled {
		return c.takeErrLocked()
	}
	cmd := CommandFor(c.keys.ActionForKey(k))
	if cmd != Unhandled {
		log.Debug().Stringer("key", k).Stringer("command", cmd).Stringer("focus", c.focus).Msg("command")
	}
	if err := c.execLocked(cmd); err != nil {
		return err
	}
	return c.takeErrLocked()
}

// Apply stores a finished fetch, stops the account's spinner, and reloads
// the posts panel when it shows that account.
func (c *Controller) Apply(r fetch.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fetch.Apply(r) {
		return
	}
	if row := c.rows[r.Handle]; row != nil {
		row.StopSpinner()
	}
	if r.Handle == c.shown {
		c.loadPostsLocked()
		c.posts.FocusNext()
	}
}

// Reconfigure queues new display settings for the run loop.
func (c *Controller) Reconfigure(opts Options) {
	select {
	case <-c.optsCh:
	default:
	}
	c.optsCh <- opts
}

// KeysChanged tells the run loop that key bindings were reloaded.
func (c *Controller) KeysChanged() {
	select {
	case c.keysCh <- struct{}{}:
	default:
	}
}

// Focus returns the current focus target.
func (c *Controller) Focus() Focus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// Quitting reports whether Quit was issued.
func (c *Controller) Quitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quit
}

// Handles returns the followed accounts in panel order.
func (c *Controller) Handles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.handles...)
}

// SelectedAccount returns the selected account handle.
func (c *Controller) SelectedAccount() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, idx, ok := c.accounts.Selected()
	if !ok {
		return "", false
	}
	return c.handles[idx], true
}

// PostRows returns the posts panel rows and the selected row index (-1 when
// nothing is selected).
func (c *Controller) PostRows() ([]string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.posts.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text()
	}
	_, idx, ok := c.posts.Selected()
	if !ok {
		idx = -1
	}
	return out, idx
}

// Spinning reports whether handle's row is animating.
func (c *Controller) Spinning(handle string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	row := c.rows[handle]
	return row != nil && row.SpinnerIndex() != tui.SpinnerOff
}

func (c *Controller) focusedLocked() tui.InputHandler {
	switch c.focus {
	case FocusModal:
		if c.modal != nil {
			return c.modal
		}
	case FocusPosts:
		return c.posts
	}
	return c.accounts
}

func (c *Controller) focusedPanelLocked() *tui.ListPanel {
	if c.focus == FocusPosts {
		return c.posts
	}
	return c.accounts
}

func (c *Controller) takeErrLocked() error {
	err := c.err
	c.err = nil
	return err
}

func (c *Controller) execLocked(cmd Command) error {
	if c.focus == FocusModal {
		if cmd == DismissModal {
			c.closeModalLocked()
		}
		return nil
	}

	switch cmd {
	case NavigateUp:
		c.focusedPanelLocked().FocusPrev()
	case NavigateDown:
		c.focusedPanelLocked().FocusNext()
	case SwitchFocusLeft:
		c.focus = FocusAccounts
		c.posts.ClearSelection()
		if _, _, ok := c.accounts.Selected(); !ok {
			c.accounts.FocusNext()
		}
	case SwitchFocusRight:
		c.focus = FocusPosts
		c.posts.ClearSelection()
		c.posts.FocusNext()
	case OpenFollowModal:
		c.modal = tui.NewInputModal(FollowTitle, c.opts.ModalWidth, c.opts.ModalHeight, c.follow)
		c.modal.SetGlyphs(c.glyphs)
		c.focus = FocusModal
	case DeleteSelected:
		return c.deleteSelectedLocked()
	case Refresh:
		return c.refreshAllLocked()
	case Quit:
		log.Info().Msg("quit requested")
		c.quit = true
	}
	return nil
}

// onAccountSelected runs on the goroutine that moved the selection, which
// already holds c.mu.
func (c *Controller) onAccountSelected(sel tui.Selection) {
	if sel.Index < 0 || sel.Index >= len(c.handles) {
		return
	}
	h := c.handles[sel.Index]
	c.shown = h
	c.requestLocked(h)
	c.loadPostsLocked()
	c.posts.FocusNext()
}

// follow is the modal's confirm callback; it runs inside HandleKey.
func (c *Controller) follow(handle string) {
	c.closeModalLocked()
	if handle == "" {
		return
	}
	if _, err := c.store.CreateAccount(c.ctx, handle); err != nil {
		c.err = fmt.Errorf("following %s: %w", handle, err)
		return
	}
	log.Info().Str("handle", handle).Msg("followed account")

	if err := c.refreshAccountsLocked(); err != nil {
		c.err = err
		return
	}
	c.refetchLocked(handle)
	c.loadPostsLocked()
}

func (c *Controller) closeModalLocked() {
	c.modal = nil
	c.focus = FocusAccounts
}

func (c *Controller) deleteSelectedLocked() error {
	_, idx, ok := c.accounts.Selected()
	if !ok {
		return nil
	}
	h := c.handles[idx]
	err := c.store.DeleteAccount(c.ctx, h)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug().Str("handle", h).Msg("account already gone")
	case err != nil:
		return fmt.Errorf("unfollowing %s: %w", h, err)
	default:
		log.Info().Str("handle", h).Msg("unfollowed account")
	}
	c.fetch.Forget(h)
	return c.refreshAccountsLocked()
}

func (c *Controller) refreshAllLocked() error {
	c.focus = FocusAccounts
	c.shown = ""
	c.posts.SetItems(nil)
	if err := c.refreshAccountsLocked(); err != nil {
		return err
	}
	for _, h := range c.handles {
		c.refetchLocked(h)
	}
	return nil
}

// refreshAccountsLocked rebuilds the accounts panel from storage. Rows of
// accounts still being fetched keep spinning.
func (c *Controller) refreshAccountsLocked() error {
	handles, err := c.store.ListAccounts(c.ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	rows := make(map[string]*tui.Content, len(handles))
	items := make([]*tui.Content, 0, len(handles))
	kept := make([]string, 0, len(handles))
	for _, h := range handles {
		row, err := tui.NewContent(h)
		if err != nil {
			log.Warn().Err(err).Str("handle", h).Msg("skipping unprintable handle")
			continue
		}
		if c.fetch.State(h) == fetch.InFlight {
			row.StartSpinner()
		}
		rows[h] = row
		items = append(items, row)
		kept = append(kept, h)
	}

	c.handles = kept
	c.rows = rows
	c.accounts.SetItems(items)
	if _, ok := rows[c.shown]; !ok && c.shown != "" {
		c.shown = ""
		c.posts.SetItems(nil)
	}
	return nil
}

func (c *Controller) requestLocked(h string) {
	if c.fetch.Request(h) {
		log.Debug().Str("handle", h).Msg("fetch requested")
		if row := c.rows[h]; row != nil {
			row.StartSpinner()
		}
	}
}

func (c *Controller) refetchLocked(h string) {
	if c.fetch.Refetch(h) {
		log.Debug().Str("handle", h).Msg("refetch requested")
		if row := c.rows[h]; row != nil {
			row.StartSpinner()
		}
	}
}

// loadPostsLocked fills the posts panel from the cache for the shown account.
func (c *Controller) loadPostsLocked() {
	if c.shown == "" {
		c.posts.SetItems(nil)
		return
	}

	posts, fetchErr := c.fetch.Posts(c.shown)
	items := make([]*tui.Content, 0, len(posts)+1)
	if c.fetch.State(c.shown) == fetch.Failed && fetchErr != nil {
		if row, err := tui.NewContent(oneLine("fetch failed: " + fetchErr.Error())); err == nil {
			items = append(items, row)
		}
	}
	for _, p := range posts {
		row, err := tui.NewContent(feed.FormatPost(p))
		if err != nil {
			log.Debug().Err(err).Str("handle", c.shown).Msg("skipping unprintable post")
			continue
		}
		items = append(items, row)
	}
	c.posts.SetItems(items)
}

func (c *Controller) applyOptionsLocked(opts Options) {
	c.opts = opts
	c.glyphs = tui.Borders
	if opts.Borderless {
		c.glyphs = tui.NoBorders
	}
	if c.modal != nil {
		c.modal.SetGlyphs(c.glyphs)
	}
}

// applyKeysLocked points panel navigation and the footer legend at the
// current bindings.
func (c *Controller) applyKeysLocked() {
	moves := make(map[key.Key]tui.Move)
	for _, k := range c.keys.KeysFor(config.ActionNavigateDown) {
		moves[k] = tui.MoveDown
	}
	for _, k := range c.keys.KeysFor(config.ActionNavigateUp) {
		moves[k] = tui.MoveUp
	}
	c.accounts.SetMoveKeys(moves)
	c.posts.SetMoveKeys(moves)

	first := func(a config.KeyAction) string {
		if ks := c.keys.KeysFor(a); len(ks) > 0 {
			return ks[0].String()
		}
		return "?"
	}
	labels := []string{
		first(config.ActionFocusLeft) + first(config.ActionNavigateDown) +
			first(config.ActionNavigateUp) + first(config.ActionFocusRight) + ": cursor",
		first(config.ActionDelete) + ": delete",
		first(config.ActionFollow) + ": follow",
		first(config.ActionRefresh) + ": refresh",
		first(config.ActionQuit) + ": quit",
	}
	c.footer = c.footer[:0]
	for _, l := range labels {
		item, err := tui.NewAlignedContent(l, tui.AlignCenter)
		if err != nil {
			continue
		}
		c.footer = append(c.footer, item)
	}
}

// oneLine flattens s so it can be shown as a single row.
func oneLine(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
