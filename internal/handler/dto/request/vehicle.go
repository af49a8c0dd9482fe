package request

import (
	"drive-booking/internal/domain/booking"
)

type CreateVehicleRequest struct {
	Name             string `json:"name" binding:"required"`
	PricePerDayPaise int64  `json:"price_per_day_paise" binding:"required,min=1"`
	TotalStock       int    `json:"total_stock" binding:"required,min=1"`
}

type UpdateStockRequest struct {
	TotalStock int `json:"total_stock" binding:"required,min=1"`
}

// AvailabilityQuery binds the ?start_date=&end_date= pair on the
// availability route. Dates use the YYYY-MM-DD calendar form.
type AvailabilityQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

func (q AvailabilityQuery) ToRange() (booking.DateRange, error) {
	return booking.ParseDateRange(q.StartDate, q.EndDate)
}
