package repositories

import (
	"strings"

	"kgtk-simpanse/internal/core/domain"
)

// loanRepository implements LoanRepository over the shared state snapshot.
type loanRepository struct {
	state *State
}

// NewLoanRepository creates a new loan repository.
func NewLoanRepository(state *State) LoanRepository {
	return &loanRepository{state: state}
}

// List returns a copy of all live loan records, newest first.
func (r *loanRepository) List() []domain.Loan {
	var loans []domain.Loan
	r.state.View(func(d *Data) {
		loans = append(loans, d.Loans...)
	})
	return loans
}

// History returns the archived records superseded by resubmission.
func (r *loanRepository) History() []domain.Loan {
	var loans []domain.Loan
	r.state.View(func(d *Data) {
		loans = append(loans, d.History...)
	})
	return loans
}

// GetByID returns a copy of the loan with the given id.
func (r *loanRepository) GetByID(id string) (*domain.Loan, error) {
	var found *domain.Loan
	r.state.View(func(d *Data) {
		for i := range d.Loans {
			if d.Loans[i].ID == id {
				loan := d.Loans[i]
				found = &loan
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrLoanNotFound
	}
	return found, nil
}

// InsertSuperseding implements the resubmission dedup rule: a fresh request
// for the same (item, borrower email) replaces a prior Queued or Rejected
// record instead of piling up next to it. Rejected records keep their audit
// trail in the history archive.
func (r *loanRepository) InsertSuperseding(loan domain.Loan) error {
	email := strings.ToLower(loan.BorrowerEmail)

	return r.state.Update(func(d *Data) error {
		kept := d.Loans[:0]
		for _, l := range d.Loans {
			superseded := l.ItemID == loan.ItemID &&
				strings.ToLower(l.BorrowerEmail) == email &&
				(l.Status == domain.LoanStatusQueued || l.Status == domain.LoanStatusRejected)
			if !superseded {
				kept = append(kept, l)
				continue
			}
			if l.Status == domain.LoanStatusRejected {
				d.History = append(d.History, l)
			}
		}
		d.Loans = append([]domain.Loan{loan}, kept...)

		// Submission unlocks the session for the submitter.
		d.Session = domain.SessionIdentity{
			Email: loan.BorrowerEmail,
			NIK:   loan.BorrowerNIK,
			Name:  loan.BorrowerName,
		}
		return nil
	})
}

func statusIn(s domain.LoanStatus, set []domain.LoanStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// UpdateStatus applies a compare-and-swap status change.
func (r *loanRepository) UpdateStatus(id string, from []domain.LoanStatus, to domain.LoanStatus, reason string) error {
	return r.state.Update(func(d *Data) error {
		for i := range d.Loans {
			if d.Loans[i].ID != id {
				continue
			}
			if !statusIn(d.Loans[i].Status, from) {
				return domain.ErrInvalidTransition
			}
			d.Loans[i].Status = to
			if to == domain.LoanStatusRejected {
				d.Loans[i].RejectionReason = reason
			} else {
				d.Loans[i].RejectionReason = ""
			}
			return nil
		}
		return domain.ErrLoanNotFound
	})
}

// Approve commits the status change and the stock decrement as one step.
func (r *loanRepository) Approve(id string, from []domain.LoanStatus) error {
	return r.state.Update(func(d *Data) error {
		for i := range d.Loans {
			if d.Loans[i].ID != id {
				continue
			}
			if !statusIn(d.Loans[i].Status, from) {
				return domain.ErrInvalidTransition
			}
			d.Loans[i].Status = domain.LoanStatusApproved
			decrementItem(d, d.Loans[i].ItemID, d.Loans[i].Quantity)
			return nil
		}
		return domain.ErrLoanNotFound
	})
}

// Return commits the status change and the stock increment as one step.
func (r *loanRepository) Return(id string) error {
	return r.state.Update(func(d *Data) error {
		for i := range d.Loans {
			if d.Loans[i].ID != id {
				continue
			}
			if d.Loans[i].Status != domain.LoanStatusApproved {
				return domain.ErrInvalidTransition
			}
			d.Loans[i].Status = domain.LoanStatusReturned
			incrementItem(d, d.Loans[i].ItemID, d.Loans[i].Quantity)
			return nil
		}
		return domain.ErrLoanNotFound
	})
}

// The item may have been removed from the catalog after submission; the
// loan keeps its snapshot and the stock adjustment is simply skipped.
func decrementItem(d *Data, itemID string, qty int) {
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			d.Items[i].DecrementAvailable(qty)
			return
		}
	}
}

func incrementItem(d *Data, itemID string, qty int) {
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			d.Items[i].IncrementAvailable(qty)
			return
		}
	}
}
