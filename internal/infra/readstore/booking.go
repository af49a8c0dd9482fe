package readstore

import (
	"context"
	"fmt"
	"strings"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/infra"
	"drive-booking/internal/infra/db"
	"drive-booking/internal/pkg/pgconv"
	"drive-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// bookingViewColumns joins the vehicle name in so views stay readable
// after a vehicle is deleted: the booking row survives and the name
// falls back to a placeholder.
const bookingViewColumns = `
	SELECT b.id, b.vehicle_id, COALESCE(v.name, '(vehicle removed)') AS vehicle_name,
	       b.customer_id, b.customer_name, b.customer_phone, b.customer_email,
	       b.start_date, b.end_date, b.status, b.approved_at,
	       b.pickup_location, b.transaction_id, b.total_cost_paise, b.advance_paise,
	       b.created_at
	FROM bookings b
	LEFT JOIN vehicles v ON v.id = b.vehicle_id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	q := bookingViewColumns + `
	WHERE b.id = $1`

	view, err := scanBookingView(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) Find(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.VehicleID != nil {
		conds = append(conds, "b.vehicle_id = "+arg(*filter.VehicleID))
	}
	if filter.CustomerID != nil {
		conds = append(conds, "b.customer_id = "+arg(*filter.CustomerID))
	}
	if filter.Status != nil {
		conds = append(conds, "b.status = "+arg(*filter.Status))
	}
	if filter.Range != nil {
		start := arg(pgconv.DateToPgtype(filter.Range.Start()))
		end := arg(pgconv.DateToPgtype(filter.Range.End()))
		conds = append(conds, "b.start_date <= "+end, start+" <= b.end_date")
	}

	q := bookingViewColumns
	if len(conds) > 0 {
		q += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	q += "\n\tORDER BY b.created_at DESC"

	return r.queryViews(ctx, q, args...)
}

func (r *BookingReadStore) FindOverlapping(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) ([]*queries.BookingView, error) {
	q := bookingViewColumns + `
	WHERE b.vehicle_id = $1
	  AND b.start_date <= $3
	  AND $2 <= b.end_date
	ORDER BY b.created_at DESC`

	return r.queryViews(ctx, q,
		vehicleID,
		pgconv.DateToPgtype(rng.Start()),
		pgconv.DateToPgtype(rng.End()),
	)
}

func (r *BookingReadStore) queryViews(ctx context.Context, q string, args ...any) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID,
		&view.VehicleID,
		&view.VehicleName,
		&view.CustomerID,
		&view.CustomerName,
		&view.CustomerPhone,
		&view.CustomerEmail,
		&view.StartDate,
		&view.EndDate,
		&view.Status,
		&view.ApprovedAt,
		&view.PickupLocation,
		&view.TransactionID,
		&view.TotalCostPaise,
		&view.AdvancePaise,
		&view.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.IsApproved = view.ApprovedAt != nil
	return &view, nil
}
