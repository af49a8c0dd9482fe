package repository

import (
	"context"
	"time"

	"drive-booking/internal/domain/vehicle"
	"drive-booking/internal/infra"
	"drive-booking/internal/infra/db"
	"drive-booking/internal/pkg/pgconv"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type VehicleRepository struct{}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{}
}

func (r *VehicleRepository) Create(ctx context.Context, dbtx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	const q = `
		INSERT INTO vehicles (id, name, price_per_day_paise, total_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, q,
		v.ID(),
		v.Name(),
		v.PricePerDay().Paise(),
		v.TotalStock(),
		pgconv.TimeToPgtype(v.CreatedAt()),
		pgconv.TimeToPgtype(v.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create vehicle", err)
	}
	return id, nil
}

// LockByID acquires the vehicle's row lock for the duration of the
// surrounding transaction. Every admission decision for this vehicle
// happens behind it.
func (r *VehicleRepository) LockByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	const q = `
		SELECT id, name, price_per_day_paise, total_stock, created_at, updated_at
		FROM vehicles
		WHERE id = $1
		FOR UPDATE`

	return scanVehicleSnapshot(dbtx.QueryRow(ctx, q, id))
}

func (r *VehicleRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	const q = `
		SELECT id, name, price_per_day_paise, total_stock, created_at, updated_at
		FROM vehicles
		WHERE id = $1`

	return scanVehicleSnapshot(dbtx.QueryRow(ctx, q, id))
}

func (r *VehicleRepository) UpdateTotalStock(ctx context.Context, dbtx db.DBTX, id uuid.UUID, totalStock int, now time.Time) error {
	const q = `
		UPDATE vehicles
		SET total_stock = $2, updated_at = $3
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, q, id, totalStock, pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr("failed to update vehicle stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	// Bookings keep their vehicle_id as a soft orphan; no FK cascades.
	const q = `DELETE FROM vehicles WHERE id = $1`

	tag, err := dbtx.Exec(ctx, q, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicleSnapshot(row rowScanner) (*shared.VehicleSnapshot, error) {
	var snap shared.VehicleSnapshot
	err := row.Scan(
		&snap.ID,
		&snap.Name,
		&snap.PricePerDayPaise,
		&snap.TotalStock,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan vehicle", err)
	}
	return &snap, nil
}
