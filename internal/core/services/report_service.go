package services

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
)

// ReportService renders CSV exports for staff. encoding/csv handles RFC
// 4180 quoting, so commas, quotes and newlines inside fields survive a
// round trip through a spreadsheet.
type ReportService struct {
	loanRepo repositories.LoanRepository
	userRepo repositories.UserRepository
}

// NewReportService creates a new report service
func NewReportService(loanRepo repositories.LoanRepository, userRepo repositories.UserRepository) *ReportService {
	return &ReportService{loanRepo: loanRepo, userRepo: userRepo}
}

// LoansCSV exports every live loan record.
func (s *ReportService) LoansCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"ID", "Item", "Borrower", "NIK", "Email", "Phone", "Type",
		"Institution", "Quantity", "Purpose", "Start Date", "End Date",
		"Status", "Rejection Reason", "Created At",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, l := range s.loanRepo.List() {
		record := []string{
			l.ID, l.ItemName, l.BorrowerName, l.BorrowerNIK,
			l.BorrowerEmail, l.BorrowerPhone, string(l.BorrowerType),
			l.InstanceName, strconv.Itoa(l.Quantity), l.Purpose,
			l.StartDate, l.EndDate, string(l.Status), l.RejectionReason,
			l.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UsersCSV exports the staff directory without credential material.
func (s *ReportService) UsersCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "Name", "Username", "Email", "Role"}); err != nil {
		return nil, err
	}
	for _, u := range s.userRepo.List() {
		record := []string{u.ID, u.Name, u.Username, u.Email, string(u.Role)}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
