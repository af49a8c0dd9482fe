package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands off the read-side query types.

type VehicleSnapshot struct {
	ID               uuid.UUID
	Name             string
	PricePerDayPaise int64
	TotalStock       int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type BookingSnapshot struct {
	ID             uuid.UUID
	VehicleID      uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	Status         string
	ApprovedAt     *time.Time
	CustomerID     uuid.UUID
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	PickupLocation string
	TransactionID  string
	TotalCostPaise int64
	AdvancePaise   int64
	CreatedAt      time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         string
	CreatedAt    time.Time
}
