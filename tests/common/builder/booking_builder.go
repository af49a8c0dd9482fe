//go:build unit || e2e

package builder

import (
	"time"

	"drive-booking/internal/domain/booking"
	reqdto "drive-booking/internal/handler/dto/request"
	"drive-booking/internal/usecase/queries"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type BookingBuilder struct {
	ID             uuid.UUID
	VehicleID      uuid.UUID
	VehicleName    string
	CustomerID     uuid.UUID
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	PickupLocation string
	StartDate      time.Time
	EndDate        time.Time
	Status         booking.Status
	ApprovedAt     *time.Time
	TransactionID  string
	TotalCostPaise int64
	AdvancePaise   int64
	CreatedAt      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:             uuid.New(),
		VehicleID:      uuid.New(),
		VehicleName:    "Royal Enfield Classic 350",
		CustomerID:     uuid.New(),
		CustomerName:   "Asha Rao",
		CustomerPhone:  "919812345678",
		CustomerEmail:  "asha@example.com",
		PickupLocation: "MG Road, Bengaluru",
		StartDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:         booking.StatusAwaitingApproval,
		TransactionID:  "TXN-0001",
		TotalCostPaise: 600000,
		AdvancePaise:   60000,
		CreatedAt:      time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Range() booking.DateRange {
	rng, err := booking.NewDateRange(b.StartDate, b.EndDate)
	if err != nil {
		panic(err)
	}
	return rng
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(b.VehicleID, b.Range(), b.details(), b.CreatedAt)
}

func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID, b.VehicleID, b.Range(), b.Status, b.ApprovedAt, b.details(), b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:             b.ID,
		VehicleID:      b.VehicleID,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		Status:         b.Status.String(),
		ApprovedAt:     b.ApprovedAt,
		CustomerID:     b.CustomerID,
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		CustomerEmail:  b.CustomerEmail,
		PickupLocation: b.PickupLocation,
		TransactionID:  b.TransactionID,
		TotalCostPaise: b.TotalCostPaise,
		AdvancePaise:   b.AdvancePaise,
		CreatedAt:      b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:             b.ID,
		VehicleID:      b.VehicleID,
		VehicleName:    b.VehicleName,
		CustomerID:     b.CustomerID,
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		CustomerEmail:  b.CustomerEmail,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		Status:         b.Status.String(),
		IsApproved:     b.ApprovedAt != nil,
		ApprovedAt:     b.ApprovedAt,
		PickupLocation: b.PickupLocation,
		TransactionID:  b.TransactionID,
		TotalCostPaise: b.TotalCostPaise,
		AdvancePaise:   b.AdvancePaise,
		CreatedAt:      b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		VehicleID:      b.VehicleID,
		StartDate:      b.StartDate.Format(dateLayout),
		EndDate:        b.EndDate.Format(dateLayout),
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		CustomerEmail:  b.CustomerEmail,
		PickupLocation: b.PickupLocation,
		TransactionID:  b.TransactionID,
	}
}

func (b *BookingBuilder) details() booking.Details {
	return booking.Details{
		CustomerID:     b.CustomerID,
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		CustomerEmail:  b.CustomerEmail,
		PickupLocation: b.PickupLocation,
		TransactionID:  b.TransactionID,
		TotalCost:      booking.NewMoney(b.TotalCostPaise),
		Advance:        booking.NewMoney(b.AdvancePaise),
	}
}
