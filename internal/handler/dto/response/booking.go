package response

import (
	"time"

	"drive-booking/internal/usecase/commands"
	"drive-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID             uuid.UUID  `json:"id"`
	VehicleID      uuid.UUID  `json:"vehicle_id"`
	VehicleName    string     `json:"vehicle_name"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerPhone  string     `json:"customer_phone"`
	CustomerEmail  string     `json:"customer_email"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Status         string     `json:"status"`
	IsApproved     bool       `json:"is_approved"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	PickupLocation string     `json:"pickup_location"`
	TransactionID  string     `json:"transaction_id"`
	TotalCostPaise int64      `json:"total_cost_paise"`
	AdvancePaise   int64      `json:"advance_paise"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreateBookingResponse struct {
	BookingID      uuid.UUID `json:"booking_id"`
	Status         string    `json:"status"`
	Days           int       `json:"days"`
	TotalCostPaise int64     `json:"total_cost_paise"`
	AdvancePaise   int64     `json:"advance_paise"`
}

type ApproveBookingResponse struct {
	AlreadyApproved bool   `json:"already_approved"`
	EmailStatus     string `json:"email_status,omitempty"`
	WhatsAppLink    string `json:"whatsapp_link,omitempty"`
}

type RejectBookingResponse struct {
	AlreadyCancelled bool `json:"already_cancelled"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	resp.StartDate = view.StartDate.Format(dateLayout)
	resp.EndDate = view.EndDate.Format(dateLayout)
	return &resp
}

func FromCreateBookingResult(result *commands.CreateBookingResult) *CreateBookingResponse {
	var resp CreateBookingResponse
	_ = copier.Copy(&resp, result)
	return &resp
}

func FromApproveBookingResult(result *commands.ApproveBookingResult) *ApproveBookingResponse {
	resp := &ApproveBookingResponse{AlreadyApproved: result.AlreadyApproved}
	if result.Notification != nil {
		resp.EmailStatus = string(result.Notification.Email)
		resp.WhatsAppLink = result.Notification.WhatsAppLink
	}
	return resp
}
