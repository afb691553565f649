package repositories

import "kgtk-simpanse/internal/core/domain"

// ItemRepository handles catalog items.
type ItemRepository interface {
	List() []domain.Item
	GetByID(id string) (*domain.Item, error)
	Create(item domain.Item) error
	Update(item domain.Item) error
	Delete(id string) error
}

// LoanRepository handles loan records. Transition methods are atomic
// compare-and-swap on the loan's current status, so two staff members
// cannot both apply the same transition.
type LoanRepository interface {
	List() []domain.Loan
	History() []domain.Loan
	GetByID(id string) (*domain.Loan, error)

	// InsertSuperseding prepends loan after removing any prior Queued or
	// Rejected record for the same (item id, lowercased borrower email)
	// pair, archiving removed Rejected records to history, and unlocks the
	// submitter's session identity. All of it is one persisted step.
	InsertSuperseding(loan domain.Loan) error

	// UpdateStatus moves the loan to status iff its current status is in
	// from. The reason is stored for Rejected, cleared otherwise.
	UpdateStatus(id string, from []domain.LoanStatus, to domain.LoanStatus, reason string) error

	// Approve moves the loan to Approved iff its current status is in from
	// and decrements the item's available quantity in the same step.
	Approve(id string, from []domain.LoanStatus) error

	// Return moves an Approved loan to Returned and increments the item's
	// available quantity in the same step.
	Return(id string) error
}

// UserRepository handles staff accounts.
type UserRepository interface {
	List() []domain.UserAccount
	GetByID(id string) (*domain.UserAccount, error)
	GetByLogin(usernameOrEmail string) (*domain.UserAccount, error)
	GetByEmail(email string) (*domain.UserAccount, error)
	ExistsByUsername(username string) bool
	Create(user domain.UserAccount) error
	Update(user domain.UserAccount) error
	// Delete removes the account; deleting the last SuperAdmin fails with
	// domain.ErrLastSuperAdmin and leaves the directory unchanged.
	Delete(id string) error
}

// SessionRepository handles the borrower identity session.
type SessionRepository interface {
	Get() domain.SessionIdentity
	Set(identity domain.SessionIdentity) error
	Clear() error
}

// ConfigRepository handles the system configuration.
type ConfigRepository interface {
	Get() domain.SystemConfig
	Set(cfg domain.SystemConfig) error
}
