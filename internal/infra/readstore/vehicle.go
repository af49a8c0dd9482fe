package readstore

import (
	"context"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/infra"
	"drive-booking/internal/infra/db"
	"drive-booking/internal/pkg/pgconv"
	"drive-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const vehicleViewColumns = `
	SELECT id, name, price_per_day_paise, total_stock, created_at, updated_at
	FROM vehicles`

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(dbtx db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: dbtx}
}

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	q := vehicleViewColumns + `
	WHERE id = $1`

	view, err := scanVehicleView(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}
	return view, nil
}

func (r *VehicleReadStore) FindAll(ctx context.Context) ([]*queries.VehicleView, error) {
	q := vehicleViewColumns + `
	ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query vehicles", err)
	}
	defer rows.Close()

	var views []*queries.VehicleView
	for rows.Next() {
		view, err := scanVehicleView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicles", err)
	}
	return views, nil
}

func (r *VehicleReadStore) CountCommitted(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) (int, error) {
	const q = `
	SELECT COUNT(*)
	FROM bookings
	WHERE vehicle_id = $1
	  AND status <> 'cancelled'
	  AND start_date <= $3
	  AND $2 <= end_date`

	var count int
	err := r.db.QueryRow(ctx, q,
		vehicleID,
		pgconv.DateToPgtype(rng.Start()),
		pgconv.DateToPgtype(rng.End()),
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count committed bookings", err)
	}
	return count, nil
}

func scanVehicleView(row pgx.Row) (*queries.VehicleView, error) {
	var view queries.VehicleView
	err := row.Scan(
		&view.ID,
		&view.Name,
		&view.PricePerDayPaise,
		&view.TotalStock,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
