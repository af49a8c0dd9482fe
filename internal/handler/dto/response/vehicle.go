package response

import (
	"time"

	"drive-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VehicleResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	PricePerDayPaise int64     `json:"price_per_day_paise"`
	TotalStock       int       `json:"total_stock"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AvailabilityResponse struct {
	VehicleID  uuid.UUID `json:"vehicle_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalStock int       `json:"total_stock"`
	Committed  int       `json:"committed"`
	Remaining  int       `json:"remaining"`
	Available  bool      `json:"available"`
}

func FromVehicleView(view *queries.VehicleView) *VehicleResponse {
	var resp VehicleResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, view)
	resp.StartDate = view.StartDate.Format(dateLayout)
	resp.EndDate = view.EndDate.Format(dateLayout)
	return &resp
}
