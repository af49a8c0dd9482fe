package queries

import (
	"context"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/infra"
	"drive-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotFound = errs.New("vehicle not found")
	ErrInvalidRange    = errs.New("invalid date range")
)

type VehicleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	List(ctx context.Context) ([]*VehicleView, error)
	// CheckAvailability is the advisory read clients see before booking.
	// It is untrusted: the authoritative check happens again inside the
	// create transaction.
	CheckAvailability(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) (*AvailabilityView, error)
}

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	FindAll(ctx context.Context) ([]*VehicleView, error)
	// CountCommitted counts non-cancelled bookings overlapping rng.
	CountCommitted(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) (int, error)
}

type vehicleQueriesImpl struct {
	store VehicleReadStore
}

func NewVehicleQueries(store VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{store: store}
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *vehicleQueriesImpl) List(ctx context.Context) ([]*VehicleView, error) {
	return q.store.FindAll(ctx)
}

func (q *vehicleQueriesImpl) CheckAvailability(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) (*AvailabilityView, error) {
	if rng.IsZero() {
		return nil, ErrInvalidRange
	}

	veh, err := q.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	committed, err := q.store.CountCommitted(ctx, vehicleID, rng)
	if err != nil {
		return nil, err
	}

	remaining := veh.TotalStock - committed
	if remaining < 0 {
		remaining = 0
	}

	return &AvailabilityView{
		VehicleID:  vehicleID,
		StartDate:  rng.Start(),
		EndDate:    rng.End(),
		TotalStock: veh.TotalStock,
		Committed:  committed,
		Remaining:  remaining,
		Available:  remaining > 0,
	}, nil
}
