package desktop

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/notify/pkg/notification"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeSender) Send(_, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return f.err
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

type countingRequester struct {
	perm  Permission
	calls int
}

func (r *countingRequester) Request(context.Context) (Permission, error) {
	r.calls++
	return r.perm, nil
}

func unreadNotif(id, message string) *notification.Notification {
	return &notification.Notification{
		ID:         id,
		SourceType: notification.SourceFriendRequest,
		Message:    message,
	}
}

func TestNotifier_RaisesOncePerIncrease(t *testing.T) {
	sender := &fakeSender{}
	n := New(WithSender(sender), WithRequester(StaticRequester(PermissionGranted)))
	n.EnsurePermission(context.Background())

	// Three new items in one poll: exactly one notification, newest message.
	n.Observe(3, unreadNotif("n3", "ada sent you a friend request"))
	assert.Equal(t, []string{"ada sent you a friend request"}, sender.sent())

	// No increase, no notification.
	n.Observe(3, unreadNotif("n3", "ada sent you a friend request"))
	n.Observe(1, unreadNotif("n1", "event updated"))
	assert.Len(t, sender.sent(), 1)

	// Count grows again: one more.
	n.Observe(2, unreadNotif("n4", "event cancelled"))
	assert.Equal(t, []string{"ada sent you a friend request", "event cancelled"}, sender.sent())
}

func TestNotifier_SilentWithoutPermission(t *testing.T) {
	sender := &fakeSender{}

	t.Run("unasked", func(t *testing.T) {
		n := New(WithSender(sender))
		n.Observe(5, unreadNotif("n1", "hello"))
		assert.Empty(t, sender.sent())
	})

	t.Run("denied", func(t *testing.T) {
		n := New(WithSender(sender), WithRequester(StaticRequester(PermissionDenied)))
		n.EnsurePermission(context.Background())
		assert.Equal(t, PermissionDenied, n.Permission())

		n.Observe(5, unreadNotif("n1", "hello"))
		assert.Empty(t, sender.sent())
	})
}

func TestNotifier_EnsurePermissionAsksOnlyOnce(t *testing.T) {
	req := &countingRequester{perm: PermissionGranted}
	n := New(WithSender(&fakeSender{}), WithRequester(req))

	assert.Equal(t, PermissionDefault, n.Permission(), "never asked unsolicited")

	assert.Equal(t, PermissionGranted, n.EnsurePermission(context.Background()))
	assert.Equal(t, PermissionGranted, n.EnsurePermission(context.Background()))
	assert.Equal(t, 1, req.calls, "permission prompt fires at most once")
}

func TestNotifier_RequesterFailureDisablesSilently(t *testing.T) {
	sender := &fakeSender{}
	n := New(WithSender(sender), WithRequester(failingRequester{}))

	perm := n.EnsurePermission(context.Background())
	assert.Equal(t, PermissionDenied, perm)

	n.Observe(10, unreadNotif("n1", "hello"))
	assert.Empty(t, sender.sent())
}

type failingRequester struct{}

func (failingRequester) Request(context.Context) (Permission, error) {
	return PermissionDefault, errors.New("prompt unavailable")
}

func TestNotifier_SenderErrorIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("no notification daemon")}
	n := New(WithSender(sender), WithRequester(StaticRequester(PermissionGranted)))
	n.EnsurePermission(context.Background())

	require.NotPanics(t, func() {
		n.Observe(1, unreadNotif("n1", "hello"))
	})
}
