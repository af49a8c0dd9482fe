package user

// Role separates the single fleet owner from renting customers.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleCustomer Role = "customer"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleCustomer:
		return true
	default:
		return false
	}
}
