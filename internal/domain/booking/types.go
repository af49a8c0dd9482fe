package booking

// Status is the single booking lifecycle tag. A booking is created in
// StatusAwaitingApproval and only ever moves forward:
//
//	awaiting_approval -> approved   (owner sign-off, never reversed)
//	awaiting_approval -> cancelled  (owner rejection)
//	approved          -> cancelled  (rejection is not blocked by approval)
//
// Cancelled and approved are terminal for their respective axes; there is
// no un-cancel and no un-approve.
type Status string

const (
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusApproved         Status = "approved"
	StatusCancelled        Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAwaitingApproval, StatusApproved, StatusCancelled:
		return true
	default:
		return false
	}
}

// OccupiesStock reports whether a booking in this status holds a unit of
// vehicle inventory. Approval never changes occupancy; only cancellation
// releases it.
func (s Status) OccupiesStock() bool {
	return s != StatusCancelled
}
