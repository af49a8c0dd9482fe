//go:build unit

package notify_test

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/notify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	mu       sync.Mutex
	payloads []notify.EmailPayload
	err      error
	sent     chan struct{}
}

func newStubMailer() *stubMailer {
	return &stubMailer{sent: make(chan struct{}, 16)}
}

func (m *stubMailer) Send(_ context.Context, payload notify.EmailPayload) error {
	m.mu.Lock()
	m.payloads = append(m.payloads, payload)
	m.mu.Unlock()
	m.sent <- struct{}{}
	return m.err
}

func (m *stubMailer) waitForSend(t *testing.T) notify.EmailPayload {
	t.Helper()
	select {
	case <-m.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("mailer was never invoked")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payloads[len(m.payloads)-1]
}

func (m *stubMailer) sendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

type stubDeduper struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{seen: make(map[string]bool)}
}

func (d *stubDeduper) MarkSent(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen[key] {
		return false
	}
	d.seen[key] = true
	return true
}

func testNotice() notify.BookingNotice {
	return notify.BookingNotice{
		BookingID:      uuid.New(),
		ReferenceID:    "a1b2c3d4",
		VehicleName:    "Royal Enfield Classic 350",
		CustomerName:   "Asha Rao",
		CustomerPhone:  "919812345678",
		CustomerEmail:  "asha@example.com",
		PickupLocation: "MG Road, Bengaluru",
		StartDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		TotalCost:      booking.NewMoney(600000),
		Advance:        booking.NewMoney(60000),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func TestDispatch(t *testing.T) {
	t.Run("queues email and builds alert link", func(t *testing.T) {
		mailer := newStubMailer()
		d := notify.NewDispatcher(mailer, newStubDeduper(), "911234567890", discardLogger())
		notice := testNotice()

		outcome := d.Dispatch(context.Background(), notify.EventBookingApproved, notice)

		assert.Equal(t, notify.EmailQueued, outcome.Email)
		assert.True(t, strings.HasPrefix(outcome.WhatsAppLink, "https://wa.me/911234567890?text="))

		payload := mailer.waitForSend(t)
		assert.Equal(t, "asha@example.com", payload.ToEmail)
		assert.Equal(t, "a1b2c3d4", payload.RefID)
		assert.Equal(t, "2026-03-01", payload.StartDate)
		assert.Equal(t, "2026-03-05", payload.EndDate)
		assert.Equal(t, "₹6000.00", payload.TotalCost)
		assert.Equal(t, "₹600.00", payload.AdvanceAmount)
		assert.Equal(t, "911234567890", payload.OwnerPhone)
	})

	t.Run("duplicate dispatch is skipped", func(t *testing.T) {
		mailer := newStubMailer()
		d := notify.NewDispatcher(mailer, newStubDeduper(), "911234567890", discardLogger())
		notice := testNotice()

		first := d.Dispatch(context.Background(), notify.EventBookingApproved, notice)
		second := d.Dispatch(context.Background(), notify.EventBookingApproved, notice)

		assert.Equal(t, notify.EmailQueued, first.Email)
		assert.Equal(t, notify.EmailSkipped, second.Email)
		assert.Equal(t, first.WhatsAppLink, second.WhatsAppLink)

		mailer.waitForSend(t)
		assert.Equal(t, 1, mailer.sendCount())
	})

	t.Run("nil mailer disables the email channel", func(t *testing.T) {
		d := notify.NewDispatcher(nil, newStubDeduper(), "911234567890", discardLogger())

		outcome := d.Dispatch(context.Background(), notify.EventBookingApproved, testNotice())

		assert.Equal(t, notify.EmailDisabled, outcome.Email)
		assert.NotEmpty(t, outcome.WhatsAppLink, "alert link is built regardless of mail config")
	})

	t.Run("delivery failure never surfaces to the caller", func(t *testing.T) {
		mailer := newStubMailer()
		mailer.err = errors.New("relay unreachable")
		d := notify.NewDispatcher(mailer, newStubDeduper(), "911234567890", discardLogger())

		outcome := d.Dispatch(context.Background(), notify.EventBookingApproved, testNotice())

		assert.Equal(t, notify.EmailQueued, outcome.Email)
		mailer.waitForSend(t)
	})

	t.Run("send survives caller cancellation", func(t *testing.T) {
		mailer := newStubMailer()
		d := notify.NewDispatcher(mailer, newStubDeduper(), "911234567890", discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		outcome := d.Dispatch(ctx, notify.EventBookingApproved, testNotice())
		cancel()

		assert.Equal(t, notify.EmailQueued, outcome.Email)
		mailer.waitForSend(t)
	})
}

func TestOwnerAlertLink(t *testing.T) {
	notice := testNotice()
	link := notify.OwnerAlertLink("911234567890", notice)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/911234567890", u.Path)

	message := u.Query().Get("text")
	assert.Contains(t, message, "a1b2c3d4")
	assert.Contains(t, message, "Royal Enfield Classic 350")
	assert.Contains(t, message, "Asha Rao")
	assert.Contains(t, message, "01 Mar 2026 to 05 Mar 2026")
	assert.Contains(t, message, "₹6000.00")
	assert.Contains(t, message, "₹600.00")
}

func TestLRUDeduper(t *testing.T) {
	d, err := notify.NewLRUDeduper(2)
	require.NoError(t, err)

	assert.True(t, d.MarkSent("a"))
	assert.False(t, d.MarkSent("a"))
	assert.True(t, d.MarkSent("b"))

	// "a" is evicted once a third key lands in the size-2 cache.
	assert.True(t, d.MarkSent("c"))
	assert.True(t, d.MarkSent("a"))
}
