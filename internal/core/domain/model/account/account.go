// Package account holds the people side of the domain: customers with their
// marketing and loyalty consents, and the employees who cook and deliver.
package account

// User is a customer of the restaurant. The consent flags gate the loyalty
// discount: both must be on before order history earns anything.
type User struct {
	ID             int64
	Name           string
	Email          string
	Address        string
	Phone          string
	Consent        bool
	LoyaltyConsent bool
}

// IsLoyaltyEligible reports whether the customer opted into the loyalty
// program at all. The delivered-order threshold is checked separately
// against order history.
func (u User) IsLoyaltyEligible() bool {
	return u.Consent && u.LoyaltyConsent
}

// Employee roles as persisted in the staff directory.
const (
	RoleCook    = "COOK"
	RoleCourier = "COURIER"
)

// Employee is a staff member. Couriers get delivery runs planned against
// their shift, cooks get orders to prepare.
type Employee struct {
	ID   int64
	Name string
	Role string
}

// IsCourier reports whether the employee can be planned for delivery runs.
func (e Employee) IsCourier() bool {
	return e.Role == RoleCourier
}
