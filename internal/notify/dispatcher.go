package notify

import (
	"context"
	"log/slog"
	"time"

	"drive-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type Event string

const EventBookingApproved Event = "booking.approved"

// BookingNotice is the flattened slice of a booking the channels need.
type BookingNotice struct {
	BookingID      uuid.UUID
	ReferenceID    string
	VehicleName    string
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	PickupLocation string
	StartDate      time.Time
	EndDate        time.Time
	TotalCost      booking.Money
	Advance        booking.Money
}

type EmailStatus string

const (
	EmailQueued   EmailStatus = "queued"
	EmailSkipped  EmailStatus = "skipped"
	EmailDisabled EmailStatus = "disabled"
)

type Outcome struct {
	Email        EmailStatus `json:"email"`
	WhatsAppLink string      `json:"whatsapp_link"`
}

// EmailPayload is the JSON body handed to the mail relay.
type EmailPayload struct {
	ToEmail        string `json:"to_email"`
	CustomerName   string `json:"customer_name"`
	RefID          string `json:"ref_id"`
	VehicleName    string `json:"vehicle_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	PickupLocation string `json:"pickup_location"`
	TotalCost      string `json:"total_cost"`
	AdvanceAmount  string `json:"advance_amount"`
	OwnerPhone     string `json:"owner_phone"`
}

type Mailer interface {
	Send(ctx context.Context, payload EmailPayload) error
}

// Deduper is the injected idempotency guard. MarkSent returns false when
// the key was already recorded, true when this call claimed it.
type Deduper interface {
	MarkSent(key string) bool
}

// Dispatcher pushes booking-event notifications through two independent
// channels: a fire-and-forget email and a pure WhatsApp deep link. A
// transport failure is logged and reported, never raised; the state
// transition that triggered the dispatch has already committed.
type Dispatcher struct {
	mailer     Mailer // nil disables the email channel
	dedup      Deduper
	ownerPhone string
	timeout    time.Duration
	logger     *slog.Logger
}

func NewDispatcher(mailer Mailer, dedup Deduper, ownerPhone string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		mailer:     mailer,
		dedup:      dedup,
		ownerPhone: ownerPhone,
		timeout:    15 * time.Second,
		logger:     logger,
	}
}

// Dispatch returns as soon as the email attempt has been issued and the
// alert link computed; it never waits for the relay to confirm delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event, notice BookingNotice) Outcome {
	outcome := Outcome{
		WhatsAppLink: OwnerAlertLink(d.ownerPhone, notice),
	}

	switch {
	case d.mailer == nil:
		outcome.Email = EmailDisabled
	case !d.dedup.MarkSent(dedupKey(notice.BookingID, event)):
		outcome.Email = EmailSkipped
		d.logger.Warn("skipped duplicate notification",
			"booking_id", notice.BookingID,
			"event", string(event))
	default:
		outcome.Email = EmailQueued
		d.sendEmailAsync(ctx, event, notice)
	}

	return outcome
}

func (d *Dispatcher) sendEmailAsync(ctx context.Context, event Event, notice BookingNotice) {
	payload := EmailPayload{
		ToEmail:        notice.CustomerEmail,
		CustomerName:   notice.CustomerName,
		RefID:          notice.ReferenceID,
		VehicleName:    notice.VehicleName,
		StartDate:      notice.StartDate.Format("2006-01-02"),
		EndDate:        notice.EndDate.Format("2006-01-02"),
		PickupLocation: notice.PickupLocation,
		TotalCost:      notice.TotalCost.Display(),
		AdvanceAmount:  notice.Advance.Display(),
		OwnerPhone:     d.ownerPhone,
	}

	// Detached from the request context: the caller must not be able to
	// cancel a notification whose trigger already committed.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	go func() {
		defer cancel()
		if err := d.mailer.Send(sendCtx, payload); err != nil {
			d.logger.Warn("notification delivery failed",
				"booking_id", notice.BookingID,
				"event", string(event),
				"recipient", notice.CustomerEmail,
				"error", err.Error())
			return
		}
		d.logger.Info("notification delivered",
			"booking_id", notice.BookingID,
			"event", string(event))
	}()
}

func dedupKey(bookingID uuid.UUID, event Event) string {
	return bookingID.String() + ":" + string(event)
}
