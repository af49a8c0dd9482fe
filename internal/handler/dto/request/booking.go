package request

import (
	"strings"
	"time"

	"drive-booking/internal/domain/booking"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	VehicleID      uuid.UUID `json:"vehicle_id" binding:"required"`
	StartDate      string    `json:"start_date" binding:"required"`
	EndDate        string    `json:"end_date" binding:"required"`
	CustomerName   string    `json:"customer_name" binding:"required"`
	CustomerPhone  string    `json:"customer_phone" binding:"required"`
	CustomerEmail  string    `json:"customer_email" binding:"required,email"`
	PickupLocation string    `json:"pickup_location" binding:"required"`
	TransactionID  string    `json:"transaction_id" binding:"required"`
}

func (r CreateBookingRequest) ParseDates() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ListBookingsQuery narrows the owner's booking list. All fields are
// optional; date filters must be supplied as a pair.
type ListBookingsQuery struct {
	VehicleID string `form:"vehicle_id"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

func (q ListBookingsQuery) ParseVehicleID() (*uuid.UUID, error) {
	if strings.TrimSpace(q.VehicleID) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(q.VehicleID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (q ListBookingsQuery) ParseStatus() (*string, bool) {
	if strings.TrimSpace(q.Status) == "" {
		return nil, true
	}
	if !booking.Status(q.Status).IsValid() {
		return nil, false
	}
	s := q.Status
	return &s, true
}

func (q ListBookingsQuery) ParseRange() (*booking.DateRange, error) {
	if q.StartDate == "" && q.EndDate == "" {
		return nil, nil
	}
	rng, err := booking.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	return &rng, nil
}
