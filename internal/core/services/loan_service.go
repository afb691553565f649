package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/pkg/metrics"
)

// Loan service errors
var (
	ErrMissingField            = errors.New("missing required field")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1 and not exceed available stock")
	ErrInvalidDateRange        = errors.New("start date must not be after end date")
	ErrInvalidBorrowerType     = errors.New("borrower type must be Individual or Institution")
	ErrInvalidTargetStatus     = errors.New("submission status must be Pending or Queued")
	ErrRejectionReasonRequired = errors.New("a rejection reason is required")
)

// LoanService handles the loan lifecycle business logic
type LoanService struct {
	loanRepo    repositories.LoanRepository
	itemRepo    repositories.ItemRepository
	sessionRepo repositories.SessionRepository
	notify      *NotificationService
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	itemRepo repositories.ItemRepository,
	sessionRepo repositories.SessionRepository,
	notify *NotificationService,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		itemRepo:    itemRepo,
		sessionRepo: sessionRepo,
		notify:      notify,
	}
}

// SubmitLoanInput represents a loan submission
type SubmitLoanInput struct {
	ItemID          string `json:"item_id" validate:"required"`
	BorrowerName    string `json:"borrower_name" validate:"required"`
	BorrowerNIK     string `json:"borrower_nik" validate:"required"`
	BorrowerEmail   string `json:"borrower_email" validate:"required,email"`
	BorrowerPhone   string `json:"borrower_phone" validate:"required"`
	BorrowerAddress string `json:"borrower_address" validate:"required"`
	BorrowerType    string `json:"borrower_type" validate:"required"`
	InstanceName    string `json:"instance_name,omitempty"`
	InstanceAddress string `json:"instance_address,omitempty"`
	InstancePhone   string `json:"instance_phone,omitempty"`
	InstanceEmail   string `json:"instance_email,omitempty"`
	Quantity        int    `json:"quantity" validate:"required,gte=1"`
	Purpose         string `json:"purpose" validate:"required"`
	StartDate       string `json:"start_date" validate:"required"`
	EndDate         string `json:"end_date" validate:"required"`
	IDCardPhoto     string `json:"id_card_photo,omitempty"`
	Signature       string `json:"signature,omitempty"`
	// Status selects normal submission (Pending) or the "borrow later"
	// draft path (Queued). Empty means Pending.
	Status string `json:"status,omitempty"`
}

// Submit validates and stores a new loan request. Any prior Queued or
// Rejected record for the same (item, borrower email) pair is superseded,
// and the borrower session is unlocked for the submitter. The stored record
// always carries a freshly generated id and creation timestamp.
func (s *LoanService) Submit(input *SubmitLoanInput) (*domain.Loan, error) {
	if err := s.validateSubmission(input); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if input.Quantity > item.AvailableQuantity {
		return nil, ErrInvalidQuantity
	}

	status := domain.LoanStatus(input.Status)
	if input.Status == "" {
		status = domain.LoanStatusPending
	}
	if status != domain.LoanStatusPending && status != domain.LoanStatusQueued {
		return nil, ErrInvalidTargetStatus
	}

	loan := domain.Loan{
		ID:              s.newLoanID(),
		ItemID:          item.ID,
		ItemName:        item.Name,
		BorrowerName:    strings.TrimSpace(input.BorrowerName),
		BorrowerNIK:     strings.TrimSpace(input.BorrowerNIK),
		BorrowerEmail:   strings.TrimSpace(input.BorrowerEmail),
		BorrowerPhone:   strings.TrimSpace(input.BorrowerPhone),
		BorrowerAddress: strings.TrimSpace(input.BorrowerAddress),
		BorrowerType:    domain.BorrowerType(input.BorrowerType),
		InstanceName:    input.InstanceName,
		InstanceAddress: input.InstanceAddress,
		InstancePhone:   input.InstancePhone,
		InstanceEmail:   input.InstanceEmail,
		Quantity:        input.Quantity,
		Purpose:         strings.TrimSpace(input.Purpose),
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		IDCardPhoto:     input.IDCardPhoto,
		Signature:       input.Signature,
		Status:          status,
		CreatedAt:       time.Now(),
	}

	if err := s.loanRepo.InsertSuperseding(loan); err != nil {
		return nil, err
	}

	metrics.LoanSubmissions.WithLabelValues(string(loan.BorrowerType)).Inc()
	if status == domain.LoanStatusPending {
		s.notify.LoanSubmitted(&loan)
	}

	return &loan, nil
}

func (s *LoanService) validateSubmission(input *SubmitLoanInput) error {
	required := []string{
		input.ItemID, input.BorrowerName, input.BorrowerNIK,
		input.BorrowerEmail, input.BorrowerPhone, input.BorrowerAddress,
		input.Purpose, input.StartDate, input.EndDate,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrMissingField
		}
	}
	if input.Quantity < 1 {
		return ErrInvalidQuantity
	}

	switch domain.BorrowerType(input.BorrowerType) {
	case domain.BorrowerIndividual:
	case domain.BorrowerInstitution:
		if strings.TrimSpace(input.InstanceName) == "" {
			return ErrMissingField
		}
	default:
		return ErrInvalidBorrowerType
	}

	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return ErrInvalidDateRange
	}
	if start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// newLoanID generates a human-scannable transaction id, retrying on the
// unlikely collision with a live record.
func (s *LoanService) newLoanID() string {
	for {
		raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
		id := "TRX" + raw[:6]
		collision := false
		for _, l := range s.loanRepo.List() {
			if l.ID == id {
				collision = true
				break
			}
		}
		if !collision {
			return id
		}
	}
}

// Verify moves a Pending loan to Verified.
func (s *LoanService) Verify(id string) (*domain.Loan, error) {
	return s.transition(id, func() error {
		return s.loanRepo.UpdateStatus(id,
			[]domain.LoanStatus{domain.LoanStatusPending},
			domain.LoanStatusVerified, "")
	})
}

// Approve moves a Pending or Verified loan to Approved and decrements the
// item's available stock in the same step.
func (s *LoanService) Approve(id string) (*domain.Loan, error) {
	return s.transition(id, func() error {
		return s.loanRepo.Approve(id, []domain.LoanStatus{
			domain.LoanStatusPending, domain.LoanStatusVerified,
		})
	})
}

// Reject moves a Pending or Verified loan to Rejected. The transition
// commits only with a non-empty reason; otherwise nothing changes.
func (s *LoanService) Reject(id, reason string) (*domain.Loan, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReasonRequired
	}
	return s.transition(id, func() error {
		return s.loanRepo.UpdateStatus(id,
			[]domain.LoanStatus{domain.LoanStatusPending, domain.LoanStatusVerified},
			domain.LoanStatusRejected, reason)
	})
}

// MarkForReview sends a Pending or Verified loan back for more scrutiny.
func (s *LoanService) MarkForReview(id string) (*domain.Loan, error) {
	return s.transition(id, func() error {
		return s.loanRepo.UpdateStatus(id,
			[]domain.LoanStatus{domain.LoanStatusPending, domain.LoanStatusVerified},
			domain.LoanStatusReviewRequired, "")
	})
}

// Return completes an Approved loan and restores the item's stock.
func (s *LoanService) Return(id string) (*domain.Loan, error) {
	return s.transition(id, func() error {
		return s.loanRepo.Return(id)
	})
}

func (s *LoanService) transition(id string, apply func() error) (*domain.Loan, error) {
	if err := apply(); err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	metrics.LoanTransitions.WithLabelValues(string(loan.Status)).Inc()
	s.notify.LoanStatusChanged(loan)
	return loan, nil
}

// VisibleLoans applies the role-based visibility filter: staff roles see
// everything; anyone else sees only loans matching the unlocked session
// identity (lowercased email and exact NIK), or nothing when the session
// is unset.
func (s *LoanService) VisibleLoans(role domain.Role) []domain.Loan {
	all := s.loanRepo.List()
	if role.Can(domain.CapViewAllLoans) {
		return all
	}

	identity := s.sessionRepo.Get()
	if !identity.IsSet() {
		return []domain.Loan{}
	}

	email := strings.ToLower(identity.Email)
	visible := []domain.Loan{}
	for _, l := range all {
		if strings.ToLower(l.BorrowerEmail) == email && l.BorrowerNIK == identity.NIK {
			visible = append(visible, l)
		}
	}
	return visible
}

// PartitionByBorrowerType splits loans into individual and institutional
// groups for the staff dashboard.
func (s *LoanService) PartitionByBorrowerType(loans []domain.Loan) (individual, institution []domain.Loan) {
	for _, l := range loans {
		if l.BorrowerType == domain.BorrowerInstitution {
			institution = append(institution, l)
		} else {
			individual = append(individual, l)
		}
	}
	return individual, institution
}

// History returns the archived records superseded by resubmission, so
// rejection audit trails outlive the dedup rule.
func (s *LoanService) History() []domain.Loan {
	return s.loanRepo.History()
}

// LookupOutput represents what a returning borrower's email resolves to
type LookupOutput struct {
	// Draft is the open Queued record for (item, email), if any, so the
	// submitter can resume it.
	Draft *domain.Loan `json:"draft,omitempty"`
	// BorrowCount counts past Approved/Returned loans for (item, email),
	// used as a frequent-borrower signal.
	BorrowCount int `json:"borrow_count"`
	// Prefill is the most recent non-Queued loan for the email; its
	// identity fields seed a new submission form.
	Prefill *domain.Loan `json:"prefill,omitempty"`
	// RecentReturns holds the last two Returned loans for the email.
	RecentReturns []domain.Loan `json:"recent_returns,omitempty"`
}

// LookupByEmail computes the read-only derived views for a borrower
// re-entering their email on the submission form. When a prior record
// identifies the borrower, the session is unlocked with that identity.
func (s *LoanService) LookupByEmail(itemID, email string) (*LookupOutput, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrMissingField
	}

	out := &LookupOutput{}
	for _, l := range s.loanRepo.List() {
		if strings.ToLower(l.BorrowerEmail) != email {
			continue
		}

		if l.Status == domain.LoanStatusQueued {
			if l.ItemID == itemID && out.Draft == nil {
				draft := l
				out.Draft = &draft
			}
			continue
		}

		if l.ItemID == itemID &&
			(l.Status == domain.LoanStatusApproved || l.Status == domain.LoanStatusReturned) {
			out.BorrowCount++
		}

		// Records are newest first, so the first non-Queued match wins.
		if out.Prefill == nil {
			prefill := l
			out.Prefill = &prefill
		}

		if l.Status == domain.LoanStatusReturned && len(out.RecentReturns) < 2 {
			out.RecentReturns = append(out.RecentReturns, l)
		}
	}

	if out.Prefill != nil {
		err := s.sessionRepo.Set(domain.SessionIdentity{
			Email: out.Prefill.BorrowerEmail,
			NIK:   out.Prefill.BorrowerNIK,
			Name:  out.Prefill.BorrowerName,
		})
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Logout clears the unlocked borrower session.
func (s *LoanService) Logout() error {
	return s.sessionRepo.Clear()
}
