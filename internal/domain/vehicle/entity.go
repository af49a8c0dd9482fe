package vehicle

import (
	"errors"
	"strings"
	"time"

	"drive-booking/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidName  = errors.New("vehicle name required")
	ErrInvalidStock = errors.New("total stock must be at least 1")
	ErrInvalidPrice = errors.New("price per day must be positive")
)

// Vehicle is one rentable model with a count of interchangeable physical
// units. Stock is finite and shared by every non-cancelled booking that
// overlaps a given day.
type Vehicle struct {
	id          uuid.UUID
	name        string
	pricePerDay booking.Money
	totalStock  int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewVehicle(name string, pricePerDay booking.Money, totalStock int, now time.Time) (*Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if pricePerDay.Paise() <= 0 {
		return nil, ErrInvalidPrice
	}
	if totalStock < 1 {
		return nil, ErrInvalidStock
	}

	return &Vehicle{
		id:          uuid.New(),
		name:        name,
		pricePerDay: pricePerDay,
		totalStock:  totalStock,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructVehicle(id uuid.UUID, name string, pricePerDay booking.Money, totalStock int, createdAt, updatedAt time.Time) *Vehicle {
	return &Vehicle{
		id:          id,
		name:        name,
		pricePerDay: pricePerDay,
		totalStock:  totalStock,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (v *Vehicle) ID() uuid.UUID             { return v.id }
func (v *Vehicle) Name() string              { return v.name }
func (v *Vehicle) PricePerDay() booking.Money { return v.pricePerDay }
func (v *Vehicle) TotalStock() int           { return v.totalStock }
func (v *Vehicle) CreatedAt() time.Time      { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time      { return v.updatedAt }

// SetTotalStock changes the number of physical units. Shrinking below the
// currently committed count is allowed; existing bookings stay valid and
// the vehicle simply stops admitting new ones.
func (v *Vehicle) SetTotalStock(n int, now time.Time) error {
	if n < 1 {
		return ErrInvalidStock
	}
	v.totalStock = n
	v.updatedAt = now
	return nil
}

// Remaining computes free units given the committed count for some range.
// Never negative, even if stock was shrunk under existing bookings.
func (v *Vehicle) Remaining(committed int) int {
	remaining := v.totalStock - committed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// QuoteTotal prices a rental over the range at the current daily rate.
func (v *Vehicle) QuoteTotal(rng booking.DateRange) booking.Money {
	return v.pricePerDay.Mul(rng.Days())
}
