//go:build unit

package booking_test

import (
	"testing"
	"time"

	"drive-booking/internal/domain/booking"
	"drive-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusAwaitingApproval, actual.Status())
		assert.False(t, actual.IsApproved())
		assert.False(t, actual.IsCancelled())
		assert.Nil(t, actual.ApprovedAt())
		assert.Equal(t, "Asha Rao", actual.Details().CustomerName)
	})

	t.Run("contact validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing vehicle",
				mutate: func(b *builder.BookingBuilder) { b.VehicleID = uuid.Nil },
				errIs:  booking.ErrVehicleRequired,
			},
			{
				name:   "blank customer name",
				mutate: func(b *builder.BookingBuilder) { b.CustomerName = "   " },
				errIs:  booking.ErrMissingContact,
			},
			{
				name:   "empty phone",
				mutate: func(b *builder.BookingBuilder) { b.CustomerPhone = "" },
				errIs:  booking.ErrMissingContact,
			},
			{
				name:   "empty email",
				mutate: func(b *builder.BookingBuilder) { b.CustomerEmail = "" },
				errIs:  booking.ErrMissingContact,
			},
			{
				name:   "empty transaction id is allowed",
				mutate: func(b *builder.BookingBuilder) { b.TransactionID = "" },
			},
		})
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b1, err1 := builder.NewBookingBuilder().BuildDomain()
		b2, err2 := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, b1.ID(), b2.ID())
	})
}

func TestBookingLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("approve sets timestamp once", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()

		changed, err := b.Approve(now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, booking.StatusApproved, b.Status())
		require.NotNil(t, b.ApprovedAt())
		assert.Equal(t, now, *b.ApprovedAt())

		later := now.Add(time.Hour)
		changed, err = b.Approve(later)
		require.NoError(t, err)
		assert.False(t, changed, "second approval is a no-op")
		assert.Equal(t, now, *b.ApprovedAt(), "original approval time is kept")
	})

	t.Run("approve after cancel is refused", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			With(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCancelled }).
			BuildReconstructed()

		changed, err := b.Approve(now)
		require.ErrorIs(t, err, booking.ErrBookingCancelled)
		assert.False(t, changed)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()

		assert.True(t, b.Cancel())
		assert.True(t, b.IsCancelled())
		assert.False(t, b.Cancel())
	})

	t.Run("cancel after approve keeps approval timestamp", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()

		_, err := b.Approve(now)
		require.NoError(t, err)
		require.True(t, b.Cancel())

		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.True(t, b.IsApproved(), "approval is a historical fact")
		require.NotNil(t, b.ApprovedAt())
		assert.Equal(t, now, *b.ApprovedAt())
	})
}

func TestOccupiesStockOn(t *testing.T) {
	overlapping := mustRange(t, 4, 6)
	disjoint := mustRange(t, 10, 12)

	cases := []struct {
		name     string
		status   booking.Status
		rng      booking.DateRange
		occupies bool
	}{
		{name: "awaiting approval holds stock", status: booking.StatusAwaitingApproval, rng: overlapping, occupies: true},
		{name: "approved holds stock", status: booking.StatusApproved, rng: overlapping, occupies: true},
		{name: "cancelled releases stock", status: booking.StatusCancelled, rng: overlapping, occupies: false},
		{name: "disjoint range never occupies", status: booking.StatusApproved, rng: disjoint, occupies: false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().
				With(func(bb *builder.BookingBuilder) { bb.Status = c.status }).
				BuildReconstructed()
			assert.Equal(t, c.occupies, b.OccupiesStockOn(c.rng))
		})
	}
}

func TestStatus(t *testing.T) {
	assert.True(t, booking.StatusAwaitingApproval.IsValid())
	assert.True(t, booking.StatusApproved.IsValid())
	assert.True(t, booking.StatusCancelled.IsValid())
	assert.False(t, booking.Status("pending").IsValid())

	assert.True(t, booking.StatusAwaitingApproval.OccupiesStock())
	assert.True(t, booking.StatusApproved.OccupiesStock())
	assert.False(t, booking.StatusCancelled.OccupiesStock())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
