package queries

import (
	"context"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/domain/user"
	"drive-booking/internal/infra"
	"drive-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrForbidden       = errs.New("booking not visible to caller")
)

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	// List returns newest-first. Non-owner callers only ever see their
	// own bookings regardless of the supplied filter.
	List(ctx context.Context, actorID uuid.UUID, actorRole user.Role, filter BookingFilter) ([]*BookingView, error)
	// FindOverlapping returns every booking for the vehicle overlapping
	// rng, regardless of status, newest first.
	FindOverlapping(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) ([]*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	Find(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
	FindOverlapping(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if actorRole != user.RoleOwner && view.CustomerID != actorID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actorID uuid.UUID, actorRole user.Role, filter BookingFilter) ([]*BookingView, error) {
	if actorRole != user.RoleOwner {
		filter.CustomerID = &actorID
	}
	return q.store.Find(ctx, filter)
}

func (q *bookingQueriesImpl) FindOverlapping(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) ([]*BookingView, error) {
	return q.store.FindOverlapping(ctx, vehicleID, rng)
}
