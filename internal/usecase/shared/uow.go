package shared

import (
	"context"
	"time"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/domain/user"
	"drive-booking/internal/domain/vehicle"
	"drive-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Non-transactional reads for validation outside the critical section
	CommandReads() CommandReads
}

type Tx interface {
	Vehicles() VehicleRepository
	Bookings() BookingRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error)
	// LockByID takes the per-vehicle row lock (SELECT ... FOR UPDATE) that
	// serializes admission decisions for one vehicle. Different vehicles
	// never contend.
	LockByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*VehicleSnapshot, error)
	UpdateTotalStock(ctx context.Context, dbtx db.DBTX, id uuid.UUID, totalStock int, now time.Time) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// Update persists lifecycle fields (status, approved_at) only; the
	// rest of a booking row is immutable after creation.
	Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	LockByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*BookingSnapshot, error)
	// CountCommitted counts non-cancelled bookings for the vehicle whose
	// inclusive date range overlaps rng. Approval state is irrelevant.
	CountCommitted(ctx context.Context, dbtx db.DBTX, vehicleID uuid.UUID, rng booking.DateRange) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error)
}
