package entities

// Role is the closed set of caller roles the core checks capabilities
// against. The auth layer (external) resolves tokens into a company id plus
// one of these values; the core never compares raw role strings outside this
// file.
type Role string

const (
	RoleCustomerAdmin Role = "customer_admin"
	RoleCustomerBuyer Role = "customer_buyer"
	RoleSalesInternal Role = "sales_internal"
	RoleBackOffice    Role = "back_office"
)

// Known reports whether the role is part of the closed set.
func (r Role) Known() bool {
	switch r {
	case RoleCustomerAdmin, RoleCustomerBuyer, RoleSalesInternal, RoleBackOffice:
		return true
	}
	return false
}

// Internal reports whether the role belongs to marketplace staff rather than
// a customer company.
func (r Role) Internal() bool {
	return r == RoleSalesInternal || r == RoleBackOffice
}

// CanRegisterPayment: payment recording is back-office only.
func (r Role) CanRegisterPayment() bool {
	return r.Internal()
}

// CanExtendQuote: expiry extension is an internal-sales capability.
func (r Role) CanExtendQuote() bool {
	return r == RoleSalesInternal
}

// CanConfirmOrder: order confirmation is a back-office capability.
func (r Role) CanConfirmOrder() bool {
	return r == RoleBackOffice
}
