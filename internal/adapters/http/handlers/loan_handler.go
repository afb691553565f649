package handlers

import (
	"errors"

	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/core/services"
	"kgtk-simpanse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan lifecycle endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

func callerRole(c *fiber.Ctx) domain.Role {
	if role, ok := c.Locals("role").(domain.Role); ok {
		return role
	}
	return domain.RoleBorrower
}

// Submit handles a borrower's loan submission
// @Summary Submit a loan request
// @Description Create a Pending request or a Queued draft; supersedes a prior Queued/Rejected record for the same item and email
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body services.SubmitLoanInput true "Loan request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Submit(c *fiber.Ctx) error {
	var input services.SubmitLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Submit(&input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return response.NotFound(c, "Item not found")
		case errors.Is(err, services.ErrMissingField),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrInvalidDateRange),
			errors.Is(err, services.ErrInvalidBorrowerType),
			errors.Is(err, services.ErrInvalidTargetStatus):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to submit loan")
		}
	}

	return response.Created(c, "Loan request submitted", loan)
}

// List handles listing loans visible to the caller
// @Summary List visible loans
// @Description Staff see all loans; anonymous borrowers see only loans matching their unlocked session identity
// @Tags Loans
// @Produce json
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	loans := h.loanService.VisibleLoans(callerRole(c))
	return response.Success(c, "Loans retrieved successfully", loans)
}

// MyLoans handles the anonymous borrower's own-loans view
// @Summary List the session borrower's loans
// @Description Returns loans matching the unlocked session identity; empty when no session is unlocked
// @Tags Loans
// @Produce json
// @Success 200 {object} response.Response
// @Router /loans/my [get]
func (h *LoanHandler) MyLoans(c *fiber.Ctx) error {
	loans := h.loanService.VisibleLoans(domain.RoleBorrower)
	return response.Success(c, "Loans retrieved successfully", loans)
}

// ListPartitioned handles the staff dashboard listing
// @Summary List all loans grouped by borrower type
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans/dashboard [get]
func (h *LoanHandler) ListPartitioned(c *fiber.Ctx) error {
	loans := h.loanService.VisibleLoans(callerRole(c))
	individual, institution := h.loanService.PartitionByBorrowerType(loans)
	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"individual":  individual,
		"institution": institution,
	})
}

// History handles listing superseded rejected records
// @Summary List archived loan records
// @Description Rejected records replaced by a resubmission, kept for audit
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/history [get]
func (h *LoanHandler) History(c *fiber.Ctx) error {
	return response.Success(c, "Loan history retrieved successfully", h.loanService.History())
}

// Lookup handles borrower email lookup on the submission form
// @Summary Resolve a returning borrower's email
// @Description Returns the open draft, frequent-borrower count, prefill identity and recent returns
// @Tags Loans
// @Produce json
// @Param email query string true "Borrower email"
// @Param item_id query string false "Item being requested"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans/lookup [get]
func (h *LoanHandler) Lookup(c *fiber.Ctx) error {
	email := c.Query("email")
	itemID := c.Query("item_id")

	result, err := h.loanService.LookupByEmail(itemID, email)
	if err != nil {
		if errors.Is(err, services.ErrMissingField) {
			return response.BadRequest(c, "Email is required")
		}
		return response.InternalServerError(c, "Lookup failed")
	}

	return response.Success(c, "Lookup completed", result)
}

// Verify handles the Verify transition
// @Summary Verify a pending loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/verify [put]
func (h *LoanHandler) Verify(c *fiber.Ctx) error {
	loan, err := h.loanService.Verify(c.Params("id"))
	if err != nil {
		return transitionError(c, err)
	}
	return response.Success(c, "Loan verified", loan)
}

// Approve handles the Approve transition
// @Summary Approve a loan
// @Description Approves the loan and decrements the item's available stock
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/approve [put]
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	loan, err := h.loanService.Approve(c.Params("id"))
	if err != nil {
		return transitionError(c, err)
	}
	return response.Success(c, "Loan approved", loan)
}

// RejectRequest represents the reject request body
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject handles the Reject transition
// @Summary Reject a loan
// @Description Commits only with a non-empty reason; otherwise the loan is unchanged
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body RejectRequest true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/reject [put]
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Reject(c.Params("id"), req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrRejectionReasonRequired) {
			return response.BadRequest(c, "A rejection reason is required")
		}
		return transitionError(c, err)
	}
	return response.Success(c, "Loan rejected", loan)
}

// Review handles the mark-for-review transition
// @Summary Send a loan back for review
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/review [put]
func (h *LoanHandler) Review(c *fiber.Ctx) error {
	loan, err := h.loanService.MarkForReview(c.Params("id"))
	if err != nil {
		return transitionError(c, err)
	}
	return response.Success(c, "Loan marked for review", loan)
}

// Return handles the Return transition
// @Summary Complete a loan return
// @Description Marks the loan Returned and restores the item's stock
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/return [put]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	loan, err := h.loanService.Return(c.Params("id"))
	if err != nil {
		return transitionError(c, err)
	}
	return response.Success(c, "Loan returned", loan)
}

// Logout clears the anonymous borrower session
// @Summary Clear the borrower session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Response
// @Router /session/logout [post]
func (h *LoanHandler) Logout(c *fiber.Ctx) error {
	if err := h.loanService.Logout(); err != nil {
		return response.InternalServerError(c, "Failed to clear session")
	}
	return response.Success(c, "Session cleared", nil)
}

func transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		return response.NotFound(c, "Loan not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.UnprocessableEntity(c, "The loan's current status does not permit this transition")
	default:
		return response.InternalServerError(c, "Failed to update loan")
	}
}
