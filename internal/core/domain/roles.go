package domain

// Role represents a user role in the system. Borrower is the implicit role
// of anyone who has not logged in as staff.
type Role string

const (
	RoleBorrower    Role = "Borrower"
	RoleAdmin       Role = "Admin"
	RoleVerificator Role = "Verificator"
	RoleSuperAdmin  Role = "SuperAdmin"
)

// Capability names one action a role may perform. Authorization is a table
// lookup, so adding a role means adding one entry below.
type Capability string

const (
	CapVerifyLoan    Capability = "loan:verify"
	CapApproveLoan   Capability = "loan:approve"
	CapRejectLoan    Capability = "loan:reject"
	CapReviewLoan    Capability = "loan:review"
	CapReturnLoan    Capability = "loan:return"
	CapViewAllLoans  Capability = "loan:view-all"
	CapManageItems   Capability = "item:manage"
	CapExportReports Capability = "report:export"
	CapManageUsers   Capability = "user:manage"
	CapManageConfig  Capability = "config:manage"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapVerifyLoan, CapApproveLoan, CapRejectLoan, CapReviewLoan,
		CapReturnLoan, CapViewAllLoans, CapManageItems, CapExportReports,
	},
	RoleVerificator: {
		CapApproveLoan, CapRejectLoan, CapReviewLoan, CapViewAllLoans,
	},
	RoleSuperAdmin: {
		CapVerifyLoan, CapApproveLoan, CapRejectLoan, CapReviewLoan,
		CapReturnLoan, CapViewAllLoans, CapManageItems, CapExportReports,
		CapManageUsers, CapManageConfig,
	},
	RoleBorrower: {},
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// IsStaff reports whether the role belongs to a staff account.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleVerificator || r == RoleSuperAdmin
}

// Can reports whether the role holds the given capability.
func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// Capabilities returns the capability list for a role (shared slice, do not
// mutate).
func (r Role) Capabilities() []Capability {
	return roleCapabilities[r]
}
