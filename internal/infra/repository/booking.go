package repository

import (
	"context"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/infra"
	"drive-booking/internal/infra/db"
	"drive-booking/internal/pkg/pgconv"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	const q = `
		INSERT INTO bookings (
			id, vehicle_id, customer_id,
			customer_name, customer_phone, customer_email, pickup_location,
			start_date, end_date, status, approved_at,
			transaction_id, total_cost_paise, advance_paise, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	d := b.Details()
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, q,
		b.ID(),
		b.VehicleID(),
		d.CustomerID,
		d.CustomerName,
		d.CustomerPhone,
		d.CustomerEmail,
		d.PickupLocation,
		pgconv.DateToPgtype(b.DateRange().Start()),
		pgconv.DateToPgtype(b.DateRange().End()),
		b.Status().String(),
		pgconv.TimePtrToPgtype(b.ApprovedAt()),
		d.TransactionID,
		d.TotalCost.Paise(),
		d.Advance.Paise(),
		pgconv.TimeToPgtype(b.CreatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

// Update persists the lifecycle fields only; all other booking columns
// are immutable after creation.
func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	const q = `
		UPDATE bookings
		SET status = $2, approved_at = $3
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, q,
		b.ID(),
		b.Status().String(),
		pgconv.TimePtrToPgtype(b.ApprovedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) LockByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const q = bookingSnapshotColumns + `
		FROM bookings
		WHERE id = $1
		FOR UPDATE`

	return scanBookingSnapshot(dbtx.QueryRow(ctx, q, id))
}

func (r *BookingRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const q = bookingSnapshotColumns + `
		FROM bookings
		WHERE id = $1`

	return scanBookingSnapshot(dbtx.QueryRow(ctx, q, id))
}

// CountCommitted implements the overlap rule (s1 <= e2 AND s2 <= e1) in
// SQL over inclusive date columns. Cancelled bookings never count;
// approval state is irrelevant.
func (r *BookingRepository) CountCommitted(ctx context.Context, dbtx db.DBTX, vehicleID uuid.UUID, rng booking.DateRange) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM bookings
		WHERE vehicle_id = $1
		  AND status <> 'cancelled'
		  AND start_date <= $3
		  AND $2 <= end_date`

	var count int
	err := dbtx.QueryRow(ctx, q,
		vehicleID,
		pgconv.DateToPgtype(rng.Start()),
		pgconv.DateToPgtype(rng.End()),
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count committed bookings", err)
	}
	return count, nil
}

const bookingSnapshotColumns = `
		SELECT id, vehicle_id, customer_id,
		       customer_name, customer_phone, customer_email, pickup_location,
		       start_date, end_date, status, approved_at,
		       transaction_id, total_cost_paise, advance_paise, created_at`

func scanBookingSnapshot(row rowScanner) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	err := row.Scan(
		&snap.ID,
		&snap.VehicleID,
		&snap.CustomerID,
		&snap.CustomerName,
		&snap.CustomerPhone,
		&snap.CustomerEmail,
		&snap.PickupLocation,
		&snap.StartDate,
		&snap.EndDate,
		&snap.Status,
		&snap.ApprovedAt,
		&snap.TransactionID,
		&snap.TotalCostPaise,
		&snap.AdvancePaise,
		&snap.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}
	return &snap, nil
}
