package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVehicleRequired  = errors.New("vehicle reference required")
	ErrMissingContact   = errors.New("customer contact details required")
	ErrBookingCancelled = errors.New("booking is cancelled")
)

// Details carries the opaque payload the engine stores and forwards but
// never validates semantically: who books, where they pick up, and what
// they claim to have paid.
type Details struct {
	CustomerID     uuid.UUID
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	PickupLocation string
	TransactionID  string
	TotalCost      Money
	Advance        Money
}

type Booking struct {
	id         uuid.UUID
	vehicleID  uuid.UUID
	dateRange  DateRange
	status     Status
	approvedAt *time.Time
	details    Details
	createdAt  time.Time
}

// NewBooking admits a fresh request into the awaiting-approval state.
// Capacity is not checked here: admission control is the transactional
// concern of the usecase layer.
func NewBooking(vehicleID uuid.UUID, rng DateRange, details Details, now time.Time) (*Booking, error) {
	if vehicleID == uuid.Nil {
		return nil, ErrVehicleRequired
	}
	if rng.IsZero() {
		return nil, ErrInvalidDateRange
	}
	if strings.TrimSpace(details.CustomerName) == "" ||
		strings.TrimSpace(details.CustomerPhone) == "" ||
		strings.TrimSpace(details.CustomerEmail) == "" {
		return nil, ErrMissingContact
	}

	return &Booking{
		id:        uuid.New(),
		vehicleID: vehicleID,
		dateRange: rng,
		status:    StatusAwaitingApproval,
		details:   details,
		createdAt: now,
	}, nil
}

func ReconstructBooking(
	id, vehicleID uuid.UUID,
	rng DateRange,
	status Status,
	approvedAt *time.Time,
	details Details,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		vehicleID:  vehicleID,
		dateRange:  rng,
		status:     status,
		approvedAt: approvedAt,
		details:    details,
		createdAt:  createdAt,
	}
}

// Approve marks the owner's sign-off. Returns false with no error when
// the booking is already approved so double submissions stay no-ops.
// Approving a cancelled booking is refused.
func (b *Booking) Approve(now time.Time) (bool, error) {
	if b.status == StatusCancelled {
		return false, ErrBookingCancelled
	}
	if b.IsApproved() {
		return false, nil
	}
	b.status = StatusApproved
	b.approvedAt = &now
	return true, nil
}

// Cancel voids the booking and releases its inventory. It is idempotent
// and deliberately not blocked by approval: a rejected-after-approve
// booking keeps its approval timestamp as a historical fact.
func (b *Booking) Cancel() bool {
	if b.status == StatusCancelled {
		return false
	}
	b.status = StatusCancelled
	return true
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) VehicleID() uuid.UUID   { return b.vehicleID }
func (b *Booking) DateRange() DateRange   { return b.dateRange }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) ApprovedAt() *time.Time { return b.approvedAt }
func (b *Booking) Details() Details       { return b.details }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }

func (b *Booking) IsApproved() bool {
	return b.approvedAt != nil
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// OccupiesStockOn reports whether this booking holds a unit of the
// vehicle's stock for any day of the given range.
func (b *Booking) OccupiesStockOn(rng DateRange) bool {
	return b.status.OccupiesStock() && b.dateRange.Overlaps(rng)
}
