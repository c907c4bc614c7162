package inbox

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gatherly/notify/pkg/apiclient"
	"github.com/gatherly/notify/pkg/async"
	"github.com/gatherly/notify/pkg/desktop"
	"github.com/gatherly/notify/pkg/notification"
	"github.com/gatherly/notify/pkg/poller"
)

// Client is the slice of the server API the inbox depends on, implemented
// by *apiclient.Client.
type Client interface {
	Fetch(ctx context.Context, f notification.Filter) (apiclient.FeedPage, error)
	MarkRead(ctx context.Context, ids []string) error
	MarkAllRead(ctx context.Context) error
	DeleteOne(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	DeleteAllRead(ctx context.Context) (int, error)
}

// PollObserver is notified after every successfully applied fetch with the
// full-feed unread count and the newest unread item, if any. The desktop
// notifier is the canonical implementation.
type PollObserver interface {
	Observe(unread int, newest *notification.Notification)
}

// PermissionObserver is the optional PollObserver extension implemented by
// observers gated on a platform permission, such as the desktop notifier.
// Opening the surface is the first user interaction with the notification
// affordance, so that is when the permission is requested — never
// unsolicited on load.
type PermissionObserver interface {
	EnsurePermission(ctx context.Context) desktop.Permission
}

// Inbox is the notification center: it funnels the polling cadence and every
// explicit user action through the sync client into the store, and exposes
// the derived views (badge, filtered list, selection) the UI renders.
//
// All write operations are optimistic: local state changes immediately and
// the server call is confirmed in the background. On failure the optimistic
// change is rolled back uniformly and a notice is emitted.
type Inbox struct {
	client    Client
	store     *Store
	selection *Selection
	badge     *Badge
	scheduler *poller.Scheduler
	logger    *slog.Logger
	notice    NoticeFunc
	observers []PollObserver

	mu     sync.Mutex
	filter notification.Filter
	open   bool

	pending sync.WaitGroup
}

// New creates an Inbox over the given client.
func New(client Client, opts ...Option) (*Inbox, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	i := &Inbox{
		client:    client,
		store:     NewStore(cfg.storeOpts...),
		selection: NewSelection(),
		logger:    cfg.logger,
		notice:    cfg.notice,
		observers: cfg.observers,
		filter:    notification.FilterAll,
	}
	i.badge = NewBadge(i.store)

	scheduler, err := poller.New(
		func(ctx context.Context) { _ = i.refresh(ctx) },
		cfg.pollerOpts...,
	)
	if err != nil {
		return nil, err
	}
	i.scheduler = scheduler

	return i, nil
}

// Store returns the underlying notification store.
func (i *Inbox) Store() *Store { return i.store }

// Selection returns the bulk-selection controller.
func (i *Inbox) Selection() *Selection { return i.selection }

// Badge returns the unread-count presenter.
func (i *Inbox) Badge() *Badge { return i.badge }

// Filter returns the active filter tab.
func (i *Inbox) Filter() notification.Filter {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.filter
}

// Visible returns the notifications the active filter shows.
func (i *Inbox) Visible() []notification.Notification {
	return i.store.Visible(i.Filter())
}

// Open activates the notification surface: the polling cadence starts, an
// immediate fetch runs, and every unread notification visible under the
// active filter is marked read with a single batched call. Unread state
// tracks visibility, not acknowledgment: opening the panel is what counts
// as reading.
func (i *Inbox) Open(ctx context.Context) error {
	i.mu.Lock()
	if i.open {
		i.mu.Unlock()
		return ErrAlreadyOpen
	}
	i.open = true
	i.mu.Unlock()

	if err := i.scheduler.Start(ctx); err != nil {
		i.mu.Lock()
		i.open = false
		i.mu.Unlock()
		return err
	}

	for _, obs := range i.observers {
		if p, ok := obs.(PermissionObserver); ok {
			p.EnsurePermission(ctx)
		}
	}

	// A fetch failure leaves the previously held list visible; read-on-view
	// still applies to it.
	_ = i.refresh(ctx)
	i.markVisibleRead(ctx)
	return nil
}

// Close tears the surface down: the timer stops, selection mode exits and
// its set is cleared. In-flight requests are not cancelled; their late
// responses are discarded by generation.
func (i *Inbox) Close() {
	i.mu.Lock()
	if !i.open {
		i.mu.Unlock()
		return
	}
	i.open = false
	i.mu.Unlock()

	i.scheduler.Stop()
	i.selection.Exit()
}

// Wait blocks until all background mutation confirmations have settled.
// Intended for teardown and tests; the UI never needs it.
func (i *Inbox) Wait() {
	i.pending.Wait()
}

// SetFilter switches the active tab and performs an immediate out-of-band
// fetch in addition to the regular cadence.
func (i *Inbox) SetFilter(ctx context.Context, f notification.Filter) error {
	if !f.Valid() {
		return notification.ErrInvalidFilter
	}

	i.mu.Lock()
	changed := i.filter != f
	i.filter = f
	open := i.open
	i.mu.Unlock()

	if !changed || !open {
		return nil
	}
	return i.refresh(ctx)
}

// Click handles a tap on a notification row. In browsing state it marks the
// item read and returns its navigation link; in selection state it toggles
// membership in the bulk set and returns no link.
func (i *Inbox) Click(ctx context.Context, id string) (string, error) {
	if i.selection.Active() {
		i.selection.Toggle(id)
		return "", nil
	}

	n, ok := i.store.Get(id)
	if !ok {
		return "", ErrNotFound
	}
	if !n.IsRead {
		i.MarkRead(ctx, id)
	}
	return n.Link, nil
}

// ToggleSelectionMode flips bulk-selection mode and reports the new state.
func (i *Inbox) ToggleSelectionMode() bool {
	return i.selection.ToggleMode()
}

// MarkRead optimistically marks the given notifications read and confirms
// with the server in the background, rolling back on failure.
func (i *Inbox) MarkRead(ctx context.Context, ids ...string) {
	flipped := i.store.MarkRead(ids...)
	if len(flipped) == 0 {
		return
	}
	i.confirm(ctx, "Could not mark notifications read",
		func(ctx context.Context) error { return i.client.MarkRead(ctx, flipped) },
		func() { i.store.MarkUnread(flipped...) },
	)
}

// MarkAllRead marks the entire feed read, independent of the active filter.
func (i *Inbox) MarkAllRead(ctx context.Context) {
	flipped := i.store.MarkAllRead()
	if len(flipped) == 0 {
		return
	}
	i.confirm(ctx, "Could not mark all notifications read",
		func(ctx context.Context) error { return i.client.MarkAllRead(ctx) },
		func() { i.store.MarkUnread(flipped...) },
	)
}

// Delete optimistically removes one notification. Deletion is terminal on
// success; on failure the item reappears in place.
func (i *Inbox) Delete(ctx context.Context, id string) error {
	removed, _ := i.store.Delete(id)
	if len(removed) == 0 {
		return ErrNotFound
	}
	i.confirm(ctx, "Could not delete notification",
		func(ctx context.Context) error { return i.client.DeleteOne(ctx, id) },
		func() { i.store.Restore(removed) },
	)
	return nil
}

// DeleteSelected removes every selected notification with one bulk call,
// clears the selection and returns to browsing state.
func (i *Inbox) DeleteSelected(ctx context.Context) {
	ids := i.selection.Selected()
	i.selection.Exit()
	if len(ids) == 0 {
		return
	}

	removed, _ := i.store.Delete(ids...)
	if len(removed) == 0 {
		return
	}
	i.confirm(ctx, "Could not delete selected notifications",
		func(ctx context.Context) error {
			_, err := i.client.DeleteMany(ctx, ids)
			return err
		},
		func() { i.store.Restore(removed) },
	)
}

// DeleteAllRead clears every read notification from the feed.
func (i *Inbox) DeleteAllRead(ctx context.Context) {
	ids := i.store.ReadIDs()
	if len(ids) == 0 {
		return
	}

	removed, _ := i.store.Delete(ids...)
	i.confirm(ctx, "Could not clear read notifications",
		func(ctx context.Context) error {
			_, err := i.client.DeleteAllRead(ctx)
			return err
		},
		func() { i.store.Restore(removed) },
	)
}

// refresh performs one fetch for the active filter and reconciles the store.
// A failed fetch leaves the held list untouched: stale but consistent.
func (i *Inbox) refresh(ctx context.Context) error {
	filter := i.Filter()
	gen := i.store.NextGeneration()

	page, err := i.client.Fetch(ctx, filter)
	if err != nil {
		i.logger.LogAttrs(ctx, slog.LevelWarn, "feed fetch failed",
			slog.String("filter", string(filter)),
			slog.Any("error", err),
		)
		i.sendNotice("Could not refresh notifications", err)
		return err
	}

	if !i.store.Replace(gen, page.Notifications, page.UnreadCount) {
		i.logger.LogAttrs(ctx, slog.LevelDebug, "discarded stale feed response",
			slog.Uint64("generation", gen),
		)
		return nil
	}

	i.observe()
	return nil
}

// markVisibleRead issues the read-on-view batch: one MarkRead call covering
// every unread notification the active filter currently shows.
func (i *Inbox) markVisibleRead(ctx context.Context) {
	var ids []string
	for _, n := range i.Visible() {
		if !n.IsRead {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	i.MarkRead(ctx, ids...)
}

func (i *Inbox) observe() {
	unread := i.store.UnreadCount()
	var newest *notification.Notification
	if n, ok := i.store.NewestUnread(); ok {
		newest = &n
	}
	for _, o := range i.observers {
		o.Observe(unread, newest)
	}
}

// confirm settles an optimistic mutation in the background. The rollback
// runs, and a notice is emitted, when the server rejects the write or is
// unreachable. No mutation is retried automatically.
func (i *Inbox) confirm(ctx context.Context, title string, call func(context.Context) error, rollback func()) {
	i.pending.Add(1)
	fut := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (struct{}, error) {
		return struct{}{}, call(ctx)
	})
	go func() {
		defer i.pending.Done()
		if _, err := fut.Await(); err != nil {
			rollback()
			i.logger.LogAttrs(ctx, slog.LevelWarn, "mutation rejected, rolled back",
				slog.Any("error", err),
			)
			i.sendNotice(title, err)
		}
	}()
}

func (i *Inbox) sendNotice(title string, err error) {
	if i.notice == nil {
		return
	}
	i.notice(Notice{
		Title:       title,
		Description: err.Error(),
		Severity:    SeverityError,
	})
}
