package booking

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is an inclusive pair of calendar dates. Both endpoints count:
// a booking for [Mar 1, Mar 1] occupies stock on Mar 1.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidDateRange
	}
	start = truncateToDate(start)
	end = truncateToDate(end)
	if start.After(end) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: start, end: end}, nil
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, ErrInvalidDateRange
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, ErrInvalidDateRange
	}
	return NewDateRange(s, e)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Overlaps is the sole date-arithmetic primitive: two inclusive ranges
// share at least one calendar day iff s1 <= e2 && s2 <= e1. Touching
// endpoints overlap: [1,5] and [5,9] share day 5.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

// Days mirrors the customer-facing charge calculation: the exclusive day
// difference, floored at one so a same-day rental is billed one day.
func (r DateRange) Days() int {
	days := int(r.end.Sub(r.start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.start.Format(dateLayout), r.end.Format(dateLayout))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Money is an amount of rupees stored in paise.
type Money struct {
	paise int64
}

func NewMoney(paise int64) Money {
	return Money{paise: paise}
}

func NewMoneyFromRupees(rupees int64) Money {
	return Money{paise: rupees * 100}
}

func (m Money) Paise() int64 {
	return m.paise
}

func (m Money) Rupees() float64 {
	return float64(m.paise) / 100.0
}

func (m Money) Mul(n int) Money {
	return Money{paise: m.paise * int64(n)}
}

func (m Money) Display() string {
	return fmt.Sprintf("₹%.2f", m.Rupees())
}
