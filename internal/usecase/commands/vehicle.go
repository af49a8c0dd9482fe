package commands

import (
	"context"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/domain/vehicle"
	"drive-booking/internal/infra"
	"drive-booking/internal/pkg/clock"
	"drive-booking/internal/pkg/errs"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateVehicleRequest struct {
	Name             string
	PricePerDayPaise int64
	TotalStock       int
}

type CreateVehicleResult struct {
	VehicleID uuid.UUID
}

type VehicleCommands interface {
	CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*CreateVehicleResult, error)
	SetTotalStock(ctx context.Context, id uuid.UUID, totalStock int) error
	// DeleteVehicle removes future availability. Historical bookings keep
	// their vehicle reference as a soft orphan.
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
}

type vehicleUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewVehicleCommands(uow shared.UnitOfWork, clk clock.Clock) VehicleCommands {
	return &vehicleUseCaseImpl{uow: uow, clock: clk}
}

func (uc *vehicleUseCaseImpl) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*CreateVehicleResult, error) {
	veh, err := vehicle.NewVehicle(req.Name, booking.NewMoney(req.PricePerDayPaise), req.TotalStock, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var result *CreateVehicleResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Vehicles().Create(ctx, tx.DB(), veh)
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseFailed)
		}
		result = &CreateVehicleResult{VehicleID: id}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *vehicleUseCaseImpl) SetTotalStock(ctx context.Context, id uuid.UUID, totalStock int) error {
	if totalStock < 1 {
		return errs.Mark(vehicle.ErrInvalidStock, ErrDomainValidation)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Vehicles().LockByID(ctx, tx.DB(), id); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(derr, ErrDatabaseFailed)
		}
		if derr := tx.Vehicles().UpdateTotalStock(ctx, tx.DB(), id, totalStock, uc.clock.Now()); derr != nil {
			return errs.Mark(derr, ErrDatabaseFailed)
		}
		return nil
	})
}

func (uc *vehicleUseCaseImpl) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Vehicles().Delete(ctx, tx.DB(), id); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(derr, ErrDatabaseFailed)
		}
		return nil
	})
}
