//go:build unit || e2e

package builder

import (
	"time"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/domain/vehicle"
	reqdto "drive-booking/internal/handler/dto/request"
	"drive-booking/internal/usecase/queries"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	ID               uuid.UUID
	Name             string
	PricePerDayPaise int64
	TotalStock       int
	CreatedAt        time.Time
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		ID:               uuid.New(),
		Name:             "Royal Enfield Classic 350",
		PricePerDayPaise: 150000,
		TotalStock:       2,
		CreatedAt:        time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(b)
	return b
}

func (b *VehicleBuilder) BuildDomain() (*vehicle.Vehicle, error) {
	return vehicle.NewVehicle(b.Name, booking.NewMoney(b.PricePerDayPaise), b.TotalStock, b.CreatedAt)
}

func (b *VehicleBuilder) BuildSnapshot() *shared.VehicleSnapshot {
	return &shared.VehicleSnapshot{
		ID:               b.ID,
		Name:             b.Name,
		PricePerDayPaise: b.PricePerDayPaise,
		TotalStock:       b.TotalStock,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

func (b *VehicleBuilder) BuildView() *queries.VehicleView {
	return &queries.VehicleView{
		ID:               b.ID,
		Name:             b.Name,
		PricePerDayPaise: b.PricePerDayPaise,
		TotalStock:       b.TotalStock,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

func (b *VehicleBuilder) BuildCreateRequestDTO() reqdto.CreateVehicleRequest {
	return reqdto.CreateVehicleRequest{
		Name:             b.Name,
		PricePerDayPaise: b.PricePerDayPaise,
		TotalStock:       b.TotalStock,
	}
}
