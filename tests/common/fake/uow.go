//go:build unit

// Package fake provides an in-memory UnitOfWork for command tests. The
// single mutex plays the role of the per-vehicle row lock: admission
// decisions inside Within are serialized exactly as they are in
// Postgres, so capacity races are observable without a database.
package fake

import (
	"context"
	"sync"
	"time"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/domain/user"
	"drive-booking/internal/domain/vehicle"
	"drive-booking/internal/infra"
	"drive-booking/internal/infra/db"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]*shared.VehicleSnapshot
	bookings map[uuid.UUID]*shared.BookingSnapshot
	users    map[string]*shared.UserSnapshot
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		vehicles: make(map[uuid.UUID]*shared.VehicleSnapshot),
		bookings: make(map[uuid.UUID]*shared.BookingSnapshot),
		users:    make(map[string]*shared.UserSnapshot),
	}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, &fakeTx{uow: u})
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return &fakeReads{uow: u, locked: false}
}

// Seed helpers bypass the transactional surface for test setup.

func (u *UnitOfWork) SeedVehicle(snap *shared.VehicleSnapshot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.vehicles[snap.ID] = snap
}

func (u *UnitOfWork) SeedBooking(snap *shared.BookingSnapshot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.bookings[snap.ID] = snap
}

func (u *UnitOfWork) SeedUser(snap *shared.UserSnapshot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[snap.Email] = snap
}

func (u *UnitOfWork) BookingByID(id uuid.UUID) (*shared.BookingSnapshot, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	snap, ok := u.bookings[id]
	return snap, ok
}

func (u *UnitOfWork) CountBookings(vehicleID uuid.UUID, rng booking.DateRange, includeCancelled bool) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.countOverlapping(vehicleID, rng, includeCancelled)
}

// countOverlapping must be called with the mutex held.
func (u *UnitOfWork) countOverlapping(vehicleID uuid.UUID, rng booking.DateRange, includeCancelled bool) int {
	count := 0
	for _, snap := range u.bookings {
		if snap.VehicleID != vehicleID {
			continue
		}
		if !includeCancelled && !booking.Status(snap.Status).OccupiesStock() {
			continue
		}
		other, err := booking.NewDateRange(snap.StartDate, snap.EndDate)
		if err != nil {
			continue
		}
		if rng.Overlaps(other) {
			count++
		}
	}
	return count
}

type fakeTx struct {
	uow *UnitOfWork
}

func (t *fakeTx) Vehicles() shared.VehicleRepository { return &fakeVehicleRepo{uow: t.uow} }
func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{uow: t.uow} }
func (t *fakeTx) Users() shared.UserRepository       { return &fakeUserRepo{uow: t.uow} }
func (t *fakeTx) Reads() shared.CommandReads         { return &fakeReads{uow: t.uow, locked: true} }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeVehicleRepo struct {
	uow *UnitOfWork
}

func (r *fakeVehicleRepo) Create(_ context.Context, _ db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	snap := &shared.VehicleSnapshot{
		ID:               v.ID(),
		Name:             v.Name(),
		PricePerDayPaise: v.PricePerDay().Paise(),
		TotalStock:       v.TotalStock(),
		CreatedAt:        v.CreatedAt(),
		UpdatedAt:        v.UpdatedAt(),
	}
	r.uow.vehicles[snap.ID] = snap
	return snap.ID, nil
}

func (r *fakeVehicleRepo) LockByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	snap, ok := r.uow.vehicles[id]
	if !ok {
		return nil, infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	copied := *snap
	return &copied, nil
}

func (r *fakeVehicleRepo) UpdateTotalStock(_ context.Context, _ db.DBTX, id uuid.UUID, totalStock int, now time.Time) error {
	snap, ok := r.uow.vehicles[id]
	if !ok {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	snap.TotalStock = totalStock
	snap.UpdatedAt = now
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.uow.vehicles[id]; !ok {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	delete(r.uow.vehicles, id)
	return nil
}

type fakeBookingRepo struct {
	uow *UnitOfWork
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	d := b.Details()
	snap := &shared.BookingSnapshot{
		ID:             b.ID(),
		VehicleID:      b.VehicleID(),
		StartDate:      b.DateRange().Start(),
		EndDate:        b.DateRange().End(),
		Status:         b.Status().String(),
		ApprovedAt:     b.ApprovedAt(),
		CustomerID:     d.CustomerID,
		CustomerName:   d.CustomerName,
		CustomerPhone:  d.CustomerPhone,
		CustomerEmail:  d.CustomerEmail,
		PickupLocation: d.PickupLocation,
		TransactionID:  d.TransactionID,
		TotalCostPaise: d.TotalCost.Paise(),
		AdvancePaise:   d.Advance.Paise(),
		CreatedAt:      b.CreatedAt(),
	}
	r.uow.bookings[snap.ID] = snap
	return snap.ID, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	snap, ok := r.uow.bookings[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	snap.Status = b.Status().String()
	snap.ApprovedAt = b.ApprovedAt()
	return nil
}

func (r *fakeBookingRepo) LockByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, ok := r.uow.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	copied := *snap
	return &copied, nil
}

func (r *fakeBookingRepo) CountCommitted(_ context.Context, _ db.DBTX, vehicleID uuid.UUID, rng booking.DateRange) (int, error) {
	return r.uow.countOverlapping(vehicleID, rng, false), nil
}

type fakeUserRepo struct {
	uow *UnitOfWork
}

func (r *fakeUserRepo) Create(_ context.Context, _ db.DBTX, usr *user.User) (uuid.UUID, error) {
	if _, ok := r.uow.users[usr.Email()]; ok {
		return uuid.Nil, infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
	}
	snap := &shared.UserSnapshot{
		ID:           usr.ID(),
		Email:        usr.Email(),
		PasswordHash: usr.PasswordHash(),
		Name:         usr.Name(),
		Phone:        usr.Phone(),
		Role:         usr.Role().String(),
		CreatedAt:    usr.CreatedAt(),
	}
	r.uow.users[snap.Email] = snap
	return snap.ID, nil
}

// fakeReads serves both in-transaction reads (mutex already held by
// Within) and outside reads (must take it).
type fakeReads struct {
	uow    *UnitOfWork
	locked bool
}

func (r *fakeReads) VehicleByID(_ context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	if !r.locked {
		r.uow.mu.Lock()
		defer r.uow.mu.Unlock()
	}
	snap, ok := r.uow.vehicles[id]
	if !ok {
		return nil, infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	copied := *snap
	return &copied, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if !r.locked {
		r.uow.mu.Lock()
		defer r.uow.mu.Unlock()
	}
	snap, ok := r.uow.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	copied := *snap
	return &copied, nil
}

func (r *fakeReads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	if !r.locked {
		r.uow.mu.Lock()
		defer r.uow.mu.Unlock()
	}
	snap, ok := r.uow.users[email]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	copied := *snap
	return &copied, nil
}
