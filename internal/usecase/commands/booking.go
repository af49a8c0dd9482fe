package commands

import (
	"context"
	"fmt"
	"time"

	"drive-booking/internal/domain/booking"
	"drive-booking/internal/infra"
	"drive-booking/internal/notify"
	"drive-booking/internal/pkg/clock"
	"drive-booking/internal/pkg/errs"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotFound  = errs.New("vehicle not found")
	ErrBookingNotFound  = errs.New("booking not found")
	ErrInvalidRange     = errs.New("invalid date range")
	ErrSoldOut          = errs.New("vehicle sold out for requested dates")
	ErrBookingCancelled = errs.New("booking is cancelled")
	ErrDomainValidation = errs.New("domain validation error")
	ErrDatabaseFailed   = errs.New("database operation failed")
)

// SoldOutError carries the counts the caller needs to render "fully
// booked". Unwraps to ErrSoldOut.
type SoldOutError struct {
	Committed  int
	TotalStock int
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("sold out: %d/%d units committed", e.Committed, e.TotalStock)
}

func (e *SoldOutError) Unwrap() error {
	return ErrSoldOut
}

type CreateBookingRequest struct {
	VehicleID      uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	CustomerID     uuid.UUID
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	PickupLocation string
	TransactionID  string
}

type CreateBookingResult struct {
	BookingID      uuid.UUID
	Status         string
	Days           int
	TotalCostPaise int64
	AdvancePaise   int64
}

type ApproveBookingResult struct {
	AlreadyApproved bool
	Notification    *notify.Outcome
}

type RejectBookingResult struct {
	AlreadyCancelled bool
}

// Dispatcher decouples the approval transition from notification
// delivery: it is invoked strictly after the approval commits and its
// outcome never feeds back into booking state.
type Dispatcher interface {
	Dispatch(ctx context.Context, event notify.Event, notice notify.BookingNotice) notify.Outcome
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error)
	ApproveBooking(ctx context.Context, id uuid.UUID) (*ApproveBookingResult, error)
	RejectBooking(ctx context.Context, id uuid.UUID) (*RejectBookingResult, error)
}

type bookingUseCaseImpl struct {
	uow        shared.UnitOfWork
	dispatcher Dispatcher
	clock      clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, dispatcher Dispatcher, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

// CreateBooking is the system's only admission-control gate. Whatever
// availability the client saw earlier is advisory; the count is redone
// here under the vehicle's row lock so two concurrent requests can never
// both observe free capacity and both be admitted.
func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	rng, err := booking.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}

	var result *CreateBookingResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		veh, derr := tx.Vehicles().LockByID(ctx, tx.DB(), req.VehicleID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(derr, ErrDatabaseFailed)
		}

		committed, derr := tx.Bookings().CountCommitted(ctx, tx.DB(), req.VehicleID, rng)
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseFailed)
		}
		if committed >= veh.TotalStock {
			return &SoldOutError{Committed: committed, TotalStock: veh.TotalStock}
		}

		totalCost := booking.NewMoney(veh.PricePerDayPaise).Mul(rng.Days())
		advance := booking.NewMoney(totalCost.Paise() / 10)

		agg, derr := booking.NewBooking(req.VehicleID, rng, booking.Details{
			CustomerID:     req.CustomerID,
			CustomerName:   req.CustomerName,
			CustomerPhone:  req.CustomerPhone,
			CustomerEmail:  req.CustomerEmail,
			PickupLocation: req.PickupLocation,
			TransactionID:  req.TransactionID,
			TotalCost:      totalCost,
			Advance:        advance,
		}, uc.clock.Now())
		if derr != nil {
			return errs.Mark(derr, ErrDomainValidation)
		}

		id, derr := tx.Bookings().Create(ctx, tx.DB(), agg)
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseFailed)
		}

		result = &CreateBookingResult{
			BookingID:      id,
			Status:         agg.Status().String(),
			Days:           rng.Days(),
			TotalCostPaise: totalCost.Paise(),
			AdvancePaise:   advance.Paise(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveBooking persists the approval first and dispatches afterwards,
// outside any lock. A crash between commit and dispatch loses at most a
// notification, never an approval; a dispatch failure never reverses the
// transition.
func (uc *bookingUseCaseImpl) ApproveBooking(ctx context.Context, id uuid.UUID) (*ApproveBookingResult, error) {
	var (
		notice          notify.BookingNotice
		alreadyApproved bool
	)

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Bookings().LockByID(ctx, tx.DB(), id)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(derr, ErrDatabaseFailed)
		}

		agg := reconstructFromSnapshot(snap)
		changed, derr := agg.Approve(uc.clock.Now())
		if derr != nil {
			return errs.Mark(derr, ErrBookingCancelled)
		}
		if !changed {
			alreadyApproved = true
			return nil
		}

		if derr = tx.Bookings().Update(ctx, tx.DB(), agg); derr != nil {
			return errs.Mark(derr, ErrDatabaseFailed)
		}

		notice = uc.buildNotice(ctx, tx, agg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if alreadyApproved {
		return &ApproveBookingResult{AlreadyApproved: true}, nil
	}

	outcome := uc.dispatcher.Dispatch(ctx, notify.EventBookingApproved, notice)
	return &ApproveBookingResult{Notification: &outcome}, nil
}

// RejectBooking cancels the booking, which is the only mechanism that
// releases committed inventory. Idempotent on already-cancelled rows and
// deliberately permitted on approved ones.
func (uc *bookingUseCaseImpl) RejectBooking(ctx context.Context, id uuid.UUID) (*RejectBookingResult, error) {
	var alreadyCancelled bool

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Bookings().LockByID(ctx, tx.DB(), id)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(derr, ErrDatabaseFailed)
		}

		agg := reconstructFromSnapshot(snap)
		if !agg.Cancel() {
			alreadyCancelled = true
			return nil
		}

		if derr = tx.Bookings().Update(ctx, tx.DB(), agg); derr != nil {
			return errs.Mark(derr, ErrDatabaseFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RejectBookingResult{AlreadyCancelled: alreadyCancelled}, nil
}

func (uc *bookingUseCaseImpl) buildNotice(ctx context.Context, tx shared.Tx, agg *booking.Booking) notify.BookingNotice {
	// Deleted vehicles are soft orphans; the notification still goes out.
	vehicleName := "(vehicle removed)"
	if veh, err := tx.Reads().VehicleByID(ctx, agg.VehicleID()); err == nil {
		vehicleName = veh.Name
	}

	d := agg.Details()
	return notify.BookingNotice{
		BookingID:      agg.ID(),
		ReferenceID:    d.TransactionID,
		VehicleName:    vehicleName,
		CustomerName:   d.CustomerName,
		CustomerPhone:  d.CustomerPhone,
		CustomerEmail:  d.CustomerEmail,
		PickupLocation: d.PickupLocation,
		StartDate:      agg.DateRange().Start(),
		EndDate:        agg.DateRange().End(),
		TotalCost:      d.TotalCost,
		Advance:        d.Advance,
	}
}

func reconstructFromSnapshot(snap *shared.BookingSnapshot) *booking.Booking {
	// Snapshot ranges come from the store, which only holds valid ones.
	rng, _ := booking.NewDateRange(snap.StartDate, snap.EndDate)

	return booking.ReconstructBooking(
		snap.ID,
		snap.VehicleID,
		rng,
		booking.Status(snap.Status),
		snap.ApprovedAt,
		booking.Details{
			CustomerID:     snap.CustomerID,
			CustomerName:   snap.CustomerName,
			CustomerPhone:  snap.CustomerPhone,
			CustomerEmail:  snap.CustomerEmail,
			PickupLocation: snap.PickupLocation,
			TransactionID:  snap.TransactionID,
			TotalCost:      booking.NewMoney(snap.TotalCostPaise),
			Advance:        booking.NewMoney(snap.AdvancePaise),
		},
		snap.CreatedAt,
	)
}
