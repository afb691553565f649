package services

import (
	"log"

	"kgtk-simpanse/internal/core/domain"
)

// NotificationService simulates outbound notifications. Real deployments
// would plug an SMTP or WhatsApp gateway behind the same methods.
type NotificationService struct{}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// LoanSubmitted notifies staff that a new request arrived.
func (s *NotificationService) LoanSubmitted(loan *domain.Loan) {
	log.Printf("📨 New loan request %s for %s (qty %d) from %s", loan.ID, loan.ItemName, loan.Quantity, loan.BorrowerEmail)
}

// LoanStatusChanged notifies the borrower about a lifecycle transition.
func (s *NotificationService) LoanStatusChanged(loan *domain.Loan) {
	if loan.Status == domain.LoanStatusRejected {
		log.Printf("📧 [to %s] Loan %s rejected: %s", loan.BorrowerEmail, loan.ID, loan.RejectionReason)
		return
	}
	log.Printf("📧 [to %s] Loan %s is now %s", loan.BorrowerEmail, loan.ID, loan.Status)
}

// AccountCredentials sends the generated password to a new staff account.
func (s *NotificationService) AccountCredentials(user *domain.UserAccount, plainPassword string) {
	log.Printf("📧 [to %s] Account created: username=%s password=%s", user.Email, user.Username, plainPassword)
}

// PasswordReset sends a reset notice. Called only for existing accounts;
// callers must not reveal to the client whether it was called.
func (s *NotificationService) PasswordReset(email string) {
	log.Printf("📧 [to %s] Password reset requested", email)
}

// ReturnReminder reminds a borrower that the loan period has ended.
func (s *NotificationService) ReturnReminder(loan *domain.Loan) {
	log.Printf("⏰ [to %s] Loan %s (%s) was due on %s, please return it", loan.BorrowerEmail, loan.ID, loan.ItemName, loan.EndDate)
}
