//go:build unit

package commands_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/notify"
	"drive-booking/internal/pkg/clock"
	"drive-booking/internal/usecase/commands"
	"drive-booking/tests/common/builder"
	"drive-booking/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu      sync.Mutex
	notices []notify.BookingNotice
}

func (d *recordingDispatcher) Dispatch(_ context.Context, _ notify.Event, notice notify.BookingNotice) notify.Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notices = append(d.notices, notice)
	return notify.Outcome{Email: notify.EmailQueued, WhatsAppLink: "https://wa.me/911234567890?text=ok"}
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.notices)
}

func newBookingCommands(uow *fake.UnitOfWork) (commands.BookingCommands, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	clk := clock.NewMockClock(time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC))
	return commands.NewBookingCommands(uow, dispatcher, clk), dispatcher
}

func createReq(vehicleID uuid.UUID, start, end string) commands.CreateBookingRequest {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return commands.CreateBookingRequest{
		VehicleID:      vehicleID,
		StartDate:      s,
		EndDate:        e,
		CustomerID:     uuid.New(),
		CustomerName:   "Asha Rao",
		CustomerPhone:  "919812345678",
		CustomerEmail:  "asha@example.com",
		PickupLocation: "MG Road, Bengaluru",
		TransactionID:  "TXN-0001",
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("books available vehicle and derives pricing", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().BuildSnapshot()
		uow.SeedVehicle(veh)
		uc, _ := newBookingCommands(uow)

		result, err := uc.CreateBooking(context.Background(), createReq(veh.ID, "2026-03-01", "2026-03-05"))
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, booking.StatusAwaitingApproval.String(), result.Status)
		assert.Equal(t, 4, result.Days)
		assert.Equal(t, int64(600000), result.TotalCostPaise)
		assert.Equal(t, int64(60000), result.AdvancePaise, "advance is a tenth of the total")

		snap, ok := uow.BookingByID(result.BookingID)
		require.True(t, ok)
		assert.Equal(t, veh.ID, snap.VehicleID)
		assert.Nil(t, snap.ApprovedAt)
	})

	t.Run("rejects when overlapping bookings exhaust stock", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().BuildSnapshot() // stock 2
		uow.SeedVehicle(veh)
		uow.SeedBooking(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.VehicleID = veh.ID
			b.StartDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			b.EndDate = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
		}).BuildSnapshot())
		uow.SeedBooking(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.VehicleID = veh.ID
			b.StartDate = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
			b.EndDate = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
		}).BuildSnapshot())
		uc, _ := newBookingCommands(uow)

		// Both seeded bookings cover Mar 4, so the vehicle is full there.
		_, err := uc.CreateBooking(context.Background(), createReq(veh.ID, "2026-03-04", "2026-03-06"))
		require.ErrorIs(t, err, commands.ErrSoldOut)

		var soldOut *commands.SoldOutError
		require.ErrorAs(t, err, &soldOut)
		assert.Equal(t, 2, soldOut.Committed)
		assert.Equal(t, 2, soldOut.TotalStock)
	})

	t.Run("touching ranges contend for the same day", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.TotalStock = 1 }).BuildSnapshot()
		uow.SeedVehicle(veh)
		uow.SeedBooking(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.VehicleID = veh.ID
			b.StartDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			b.EndDate = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
		}).BuildSnapshot())
		uc, _ := newBookingCommands(uow)

		// Mar 5 is the last day of the existing booking and the first of
		// this request; inclusive ranges share it.
		_, err := uc.CreateBooking(context.Background(), createReq(veh.ID, "2026-03-05", "2026-03-09"))
		require.ErrorIs(t, err, commands.ErrSoldOut)

		result, err := uc.CreateBooking(context.Background(), createReq(veh.ID, "2026-03-06", "2026-03-09"))
		require.NoError(t, err)
		require.NotNil(t, result)
	})

	t.Run("cancelled bookings release capacity", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.TotalStock = 1 }).BuildSnapshot()
		uow.SeedVehicle(veh)
		uow.SeedBooking(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.VehicleID = veh.ID
			b.Status = booking.StatusCancelled
		}).BuildSnapshot())
		uc, _ := newBookingCommands(uow)

		result, err := uc.CreateBooking(context.Background(), createReq(veh.ID, "2026-03-01", "2026-03-05"))
		require.NoError(t, err)
		require.NotNil(t, result)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		uc, _ := newBookingCommands(fake.NewUnitOfWork())

		_, err := uc.CreateBooking(context.Background(), createReq(uuid.New(), "2026-03-01", "2026-03-05"))
		require.ErrorIs(t, err, commands.ErrVehicleNotFound)
	})

	t.Run("invalid range", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().BuildSnapshot()
		uow.SeedVehicle(veh)
		uc, _ := newBookingCommands(uow)

		_, err := uc.CreateBooking(context.Background(), createReq(veh.ID, "2026-03-05", "2026-03-01"))
		require.ErrorIs(t, err, commands.ErrInvalidRange)
	})

	t.Run("missing contact details", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().BuildSnapshot()
		uow.SeedVehicle(veh)
		uc, _ := newBookingCommands(uow)

		req := createReq(veh.ID, "2026-03-01", "2026-03-05")
		req.CustomerPhone = ""
		_, err := uc.CreateBooking(context.Background(), req)
		require.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("concurrent requests never oversell", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().BuildSnapshot() // stock 2
		uow.SeedVehicle(veh)
		uc, _ := newBookingCommands(uow)

		const attempts = 16
		var admitted, soldOut atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.CreateBooking(context.Background(), createReq(veh.ID, "2026-03-01", "2026-03-05"))
				switch {
				case err == nil:
					admitted.Add(1)
				case assert.ErrorIs(t, err, commands.ErrSoldOut):
					soldOut.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(2), admitted.Load(), "exactly total stock admitted")
		assert.Equal(t, int32(attempts-2), soldOut.Load())

		rng, err := booking.ParseDateRange("2026-03-01", "2026-03-05")
		require.NoError(t, err)
		assert.Equal(t, 2, uow.CountBookings(veh.ID, rng, false))
	})
}

func TestApproveBooking(t *testing.T) {
	seed := func(uow *fake.UnitOfWork) (*builder.BookingBuilder, uuid.UUID) {
		veh := builder.NewVehicleBuilder().BuildSnapshot()
		uow.SeedVehicle(veh)
		bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.VehicleID = veh.ID })
		uow.SeedBooking(bb.BuildSnapshot())
		return bb, veh.ID
	}

	t.Run("approves and dispatches once", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		bb, _ := seed(uow)
		uc, dispatcher := newBookingCommands(uow)

		result, err := uc.ApproveBooking(context.Background(), bb.ID)
		require.NoError(t, err)
		assert.False(t, result.AlreadyApproved)
		require.NotNil(t, result.Notification)
		assert.Equal(t, notify.EmailQueued, result.Notification.Email)

		snap, ok := uow.BookingByID(bb.ID)
		require.True(t, ok)
		assert.Equal(t, booking.StatusApproved.String(), snap.Status)
		require.NotNil(t, snap.ApprovedAt)

		require.Equal(t, 1, dispatcher.count())
		notice := dispatcher.notices[0]
		assert.Equal(t, bb.ID, notice.BookingID)
		assert.Equal(t, "Royal Enfield Classic 350", notice.VehicleName)
		assert.Equal(t, "TXN-0001", notice.ReferenceID)
	})

	t.Run("second approval is a no-op without a second notification", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		bb, _ := seed(uow)
		uc, dispatcher := newBookingCommands(uow)

		_, err := uc.ApproveBooking(context.Background(), bb.ID)
		require.NoError(t, err)

		result, err := uc.ApproveBooking(context.Background(), bb.ID)
		require.NoError(t, err)
		assert.True(t, result.AlreadyApproved)
		assert.Nil(t, result.Notification)
		assert.Equal(t, 1, dispatcher.count())
	})

	t.Run("cancelled booking cannot be approved", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().BuildSnapshot()
		uow.SeedVehicle(veh)
		bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.VehicleID = veh.ID
			b.Status = booking.StatusCancelled
		})
		uow.SeedBooking(bb.BuildSnapshot())
		uc, dispatcher := newBookingCommands(uow)

		_, err := uc.ApproveBooking(context.Background(), bb.ID)
		require.ErrorIs(t, err, commands.ErrBookingCancelled)
		assert.Equal(t, 0, dispatcher.count())
	})

	t.Run("vehicle removed after booking still notifies", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		bb := builder.NewBookingBuilder() // vehicle never seeded
		uow.SeedBooking(bb.BuildSnapshot())
		uc, dispatcher := newBookingCommands(uow)

		result, err := uc.ApproveBooking(context.Background(), bb.ID)
		require.NoError(t, err)
		require.NotNil(t, result.Notification)

		require.Equal(t, 1, dispatcher.count())
		assert.Equal(t, "(vehicle removed)", dispatcher.notices[0].VehicleName)
	})

	t.Run("unknown booking", func(t *testing.T) {
		uc, _ := newBookingCommands(fake.NewUnitOfWork())

		_, err := uc.ApproveBooking(context.Background(), uuid.New())
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestRejectBooking(t *testing.T) {
	t.Run("cancels and frees inventory", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		veh := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.TotalStock = 1 }).BuildSnapshot()
		uow.SeedVehicle(veh)
		bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.VehicleID = veh.ID })
		uow.SeedBooking(bb.BuildSnapshot())
		uc, _ := newBookingCommands(uow)

		result, err := uc.RejectBooking(context.Background(), bb.ID)
		require.NoError(t, err)
		assert.False(t, result.AlreadyCancelled)

		snap, _ := uow.BookingByID(bb.ID)
		assert.Equal(t, booking.StatusCancelled.String(), snap.Status)

		// The freed unit is immediately bookable again.
		created, err := uc.CreateBooking(context.Background(), createReq(veh.ID, "2026-03-01", "2026-03-05"))
		require.NoError(t, err)
		require.NotNil(t, created)
	})

	t.Run("idempotent on cancelled booking", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = booking.StatusCancelled })
		uow.SeedBooking(bb.BuildSnapshot())
		uc, _ := newBookingCommands(uow)

		result, err := uc.RejectBooking(context.Background(), bb.ID)
		require.NoError(t, err)
		assert.True(t, result.AlreadyCancelled)
	})

	t.Run("rejecting an approved booking keeps the approval timestamp", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		approvedAt := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
		bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusApproved
			b.ApprovedAt = &approvedAt
		})
		uow.SeedBooking(bb.BuildSnapshot())
		uc, _ := newBookingCommands(uow)

		result, err := uc.RejectBooking(context.Background(), bb.ID)
		require.NoError(t, err)
		assert.False(t, result.AlreadyCancelled)

		snap, _ := uow.BookingByID(bb.ID)
		assert.Equal(t, booking.StatusCancelled.String(), snap.Status)
		require.NotNil(t, snap.ApprovedAt)
		assert.Equal(t, approvedAt, *snap.ApprovedAt)
	})

	t.Run("unknown booking", func(t *testing.T) {
		uc, _ := newBookingCommands(fake.NewUnitOfWork())

		_, err := uc.RejectBooking(context.Background(), uuid.New())
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}
