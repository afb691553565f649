package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
)

func TestLoansCSVEscaping(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Tenda", TotalQuantity: 4, AvailableQuantity: 4, Status: domain.ItemStatusReady}}
	svc, state := newTestLoanService(t, items)

	in := submitInput("i1")
	in.Purpose = `Kegiatan "besar", lintas
instansi`
	if _, err := svc.Submit(in); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reports := NewReportService(
		repositories.NewLoanRepository(state),
		repositories.NewUserRepository(state),
	)
	data, err := reports.LoansCSV()
	if err != nil {
		t.Fatalf("LoansCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(records))
	}

	header, row := records[0], records[1]
	purposeIdx := -1
	for i, h := range header {
		if h == "Purpose" {
			purposeIdx = i
		}
	}
	if purposeIdx == -1 {
		t.Fatal("no Purpose column in header")
	}
	if row[purposeIdx] != in.Purpose {
		t.Errorf("purpose did not survive the round trip: %q", row[purposeIdx])
	}
}

func TestUsersCSVOmitsCredentials(t *testing.T) {
	state := newTestState(t, nil)
	userRepo := repositories.NewUserRepository(state)
	userSvc := NewUserService(userRepo, NewNotificationService())
	if _, err := userSvc.Create(&CreateUserInput{
		Name: "Admin", Username: "admin", Email: "admin@simpanse.id", Password: "admin-123",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reports := NewReportService(repositories.NewLoanRepository(state), userRepo)
	data, err := reports.UsersCSV()
	if err != nil {
		t.Fatalf("UsersCSV: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "admin@simpanse.id") {
		t.Error("export is missing the account email")
	}
	if strings.Contains(strings.ToLower(out), "password") || strings.Contains(out, "$2a$") {
		t.Error("export must not contain credential material")
	}
}
