package queries

import (
	"time"

	"drive-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type VehicleView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	PricePerDayPaise int64     `json:"price_per_day_paise"`
	TotalStock       int       `json:"total_stock"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type BookingView struct {
	ID             uuid.UUID  `json:"id"`
	VehicleID      uuid.UUID  `json:"vehicle_id"`
	VehicleName    string     `json:"vehicle_name"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerPhone  string     `json:"customer_phone"`
	CustomerEmail  string     `json:"customer_email"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	Status         string     `json:"status"`
	IsApproved     bool       `json:"is_approved"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	PickupLocation string     `json:"pickup_location"`
	TransactionID  string     `json:"transaction_id"`
	TotalCostPaise int64      `json:"total_cost_paise"`
	AdvancePaise   int64      `json:"advance_paise"`
	CreatedAt      time.Time  `json:"created_at"`
}

type AvailabilityView struct {
	VehicleID  uuid.UUID `json:"vehicle_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalStock int       `json:"total_stock"`
	Committed  int       `json:"committed"`
	Remaining  int       `json:"remaining"`
	Available  bool      `json:"available"`
}

// BookingFilter narrows owner-facing booking lists. Nil fields match
// everything; Range uses the inclusive overlap rule.
type BookingFilter struct {
	VehicleID  *uuid.UUID
	Range      *booking.DateRange
	Status     *string
	CustomerID *uuid.UUID
}
