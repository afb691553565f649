package services

import (
	"encoding/json"
	"errors"
	"testing"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/adapters/persistence/store"
	"kgtk-simpanse/internal/core/domain"
)

// memStore is an in-memory store.Store for tests.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Load(key string, v any) error {
	raw, ok := m.data[key]
	if !ok {
		return store.ErrKeyNotFound
	}
	return json.Unmarshal(raw, v)
}

func (m *memStore) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func newTestState(t *testing.T, items []domain.Item) *repositories.State {
	t.Helper()
	st := newMemStore()
	if items != nil {
		if err := st.Save(store.KeyItems, items); err != nil {
			t.Fatalf("seed items: %v", err)
		}
	}
	state, err := repositories.NewState(st)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return state
}

func newTestLoanService(t *testing.T, items []domain.Item) (*LoanService, *repositories.State) {
	t.Helper()
	state := newTestState(t, items)
	loanRepo := repositories.NewLoanRepository(state)
	itemRepo := repositories.NewItemRepository(state)
	sessionRepo := repositories.NewSessionRepository(state)
	return NewLoanService(loanRepo, itemRepo, sessionRepo, NewNotificationService()), state
}

func submitInput(itemID string) *SubmitLoanInput {
	return &SubmitLoanInput{
		ItemID:          itemID,
		BorrowerName:    "Andi Wijaya",
		BorrowerNIK:     "111",
		BorrowerEmail:   "a@x.com",
		BorrowerPhone:   "0812000111",
		BorrowerAddress: "Jl. Merdeka 1",
		BorrowerType:    "Individual",
		Quantity:        2,
		Purpose:         "Rapat koordinasi",
		StartDate:       "2026-09-01",
		EndDate:         "2026-09-03",
	}
}

func itemByID(t *testing.T, state *repositories.State, id string) domain.Item {
	t.Helper()
	item, err := repositories.NewItemRepository(state).GetByID(id)
	if err != nil {
		t.Fatalf("GetByID(%s): %v", id, err)
	}
	return *item
}

func TestSubmitApproveReturnFlow(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Proyektor", TotalQuantity: 5, AvailableQuantity: 5, Status: domain.ItemStatusReady}}
	svc, state := newTestLoanService(t, items)

	loan, err := svc.Submit(submitInput("i1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if loan.Status != domain.LoanStatusPending {
		t.Errorf("status = %s, want Pending", loan.Status)
	}
	if loan.ID == "" || loan.CreatedAt.IsZero() {
		t.Error("submitted loan must carry a generated id and timestamp")
	}
	if loan.ItemName != "Proyektor" {
		t.Errorf("item name snapshot = %q", loan.ItemName)
	}

	if _, err := svc.Approve(loan.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got := itemByID(t, state, "i1").AvailableQuantity; got != 3 {
		t.Errorf("available after approve = %d, want 3", got)
	}

	returned, err := svc.Return(loan.ID)
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if returned.Status != domain.LoanStatusReturned {
		t.Errorf("status = %s, want Returned", returned.Status)
	}
	if got := itemByID(t, state, "i1").AvailableQuantity; got != 5 {
		t.Errorf("available after return = %d, want 5", got)
	}
}

func TestApproveClampsAtZero(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Kamera", TotalQuantity: 3, AvailableQuantity: 3, Status: domain.ItemStatusReady}}
	svc, state := newTestLoanService(t, items)

	in := submitInput("i1")
	in.Quantity = 3
	loan, err := svc.Submit(in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Stock shrinks between submission and approval.
	err = state.Update(func(d *repositories.Data) error {
		d.Items[0].AvailableQuantity = 1
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := svc.Approve(loan.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	item := itemByID(t, state, "i1")
	if item.AvailableQuantity != 0 {
		t.Errorf("available = %d, want 0 (clamped)", item.AvailableQuantity)
	}
	if item.Status != domain.ItemStatusOutOfStock {
		t.Errorf("status = %s, want OUT_OF_STOCK", item.Status)
	}
}

func TestReturnClampsAtTotal(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Kamera", TotalQuantity: 3, AvailableQuantity: 3, Status: domain.ItemStatusReady}}
	svc, state := newTestLoanService(t, items)

	loan, err := svc.Submit(submitInput("i1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Approve(loan.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// Stock was restocked manually while the loan was out.
	err = state.Update(func(d *repositories.Data) error {
		d.Items[0].AvailableQuantity = 3
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := svc.Return(loan.ID); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if got := itemByID(t, state, "i1").AvailableQuantity; got != 3 {
		t.Errorf("available = %d, want 3 (clamped at total)", got)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Tenda", TotalQuantity: 4, AvailableQuantity: 4, Status: domain.ItemStatusReady}}
	svc, _ := newTestLoanService(t, items)

	loan, err := svc.Submit(submitInput("i1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	for _, reason := range []string{"", "   "} {
		if _, err := svc.Reject(loan.ID, reason); !errors.Is(err, ErrRejectionReasonRequired) {
			t.Errorf("Reject(%q) err = %v, want ErrRejectionReasonRequired", reason, err)
		}
	}

	got, err := svc.loanRepo.GetByID(loan.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.LoanStatusPending {
		t.Errorf("status after failed reject = %s, want Pending", got.Status)
	}

	rejected, err := svc.Reject(loan.ID, "dokumen tidak lengkap")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != domain.LoanStatusRejected || rejected.RejectionReason != "dokumen tidak lengkap" {
		t.Errorf("got %s / %q", rejected.Status, rejected.RejectionReason)
	}
}

func TestResubmissionSupersedesPriorRecord(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Tenda", TotalQuantity: 4, AvailableQuantity: 4, Status: domain.ItemStatusReady}}
	svc, _ := newTestLoanService(t, items)

	in := submitInput("i1")
	in.Status = string(domain.LoanStatusQueued)
	first, err := svc.Submit(in)
	if err != nil {
		t.Fatalf("Submit draft: %v", err)
	}

	second := submitInput("i1")
	second.BorrowerEmail = "A@X.COM" // dedup is case-insensitive on email
	second.Purpose = "Kegiatan baru"
	loan, err := svc.Submit(second)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var matches []domain.Loan
	for _, l := range svc.loanRepo.List() {
		if l.ItemID == "i1" {
			matches = append(matches, l)
		}
	}
	if len(matches) != 1 {
		t.Fatalf("records for (i1, a@x.com) = %d, want 1", len(matches))
	}
	if matches[0].ID != loan.ID || matches[0].Purpose != "Kegiatan baru" {
		t.Errorf("surviving record is not the resubmission: %+v", matches[0])
	}
	if matches[0].ID == first.ID {
		t.Error("resubmission must carry a fresh id")
	}
}

func TestResubmissionArchivesRejectedRecord(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Tenda", TotalQuantity: 4, AvailableQuantity: 4, Status: domain.ItemStatusReady}}
	svc, _ := newTestLoanService(t, items)

	first, err := svc.Submit(submitInput("i1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Reject(first.ID, "foto KTP buram"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	if _, err := svc.Submit(submitInput("i1")); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	history := svc.History()
	if len(history) != 1 {
		t.Fatalf("history = %d records, want 1", len(history))
	}
	if history[0].ID != first.ID || history[0].RejectionReason != "foto KTP buram" {
		t.Errorf("archived record lost its audit trail: %+v", history[0])
	}
}

func TestVisibilityFilter(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Tenda", TotalQuantity: 4, AvailableQuantity: 4, Status: domain.ItemStatusReady}}
	svc, _ := newTestLoanService(t, items)

	mine, err := svc.Submit(submitInput("i1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	other := submitInput("i1")
	other.BorrowerEmail = "b@y.com"
	other.BorrowerNIK = "222"
	if _, err := svc.Submit(other); err != nil {
		t.Fatalf("Submit other: %v", err)
	}

	// Staff see everything.
	if got := len(svc.VisibleLoans(domain.RoleAdmin)); got != 2 {
		t.Errorf("admin sees %d loans, want 2", got)
	}

	// The last submission unlocked the session for b@y.com.
	visible := svc.VisibleLoans(domain.RoleBorrower)
	if len(visible) != 1 || visible[0].BorrowerEmail != "b@y.com" {
		t.Fatalf("borrower sees %+v, want only b@y.com's loan", visible)
	}
	_ = mine

	// Cleared session sees nothing.
	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := len(svc.VisibleLoans(domain.RoleBorrower)); got != 0 {
		t.Errorf("borrower with no session sees %d loans, want 0", got)
	}
}

func TestInvalidTransitions(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Tenda", TotalQuantity: 4, AvailableQuantity: 4, Status: domain.ItemStatusReady}}
	svc, _ := newTestLoanService(t, items)

	loan, err := svc.Submit(submitInput("i1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Return before approval is not permitted.
	if _, err := svc.Return(loan.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("Return on Pending err = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Approve(loan.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// A second approval must fail and leave the stock alone.
	if _, err := svc.Approve(loan.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("double Approve err = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Verify("TRXZZZZZZ"); !errors.Is(err, domain.ErrLoanNotFound) {
		t.Errorf("Verify unknown id err = %v, want ErrLoanNotFound", err)
	}
}

func TestVerifyThenApprove(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Tenda", TotalQuantity: 4, AvailableQuantity: 4, Status: domain.ItemStatusReady}}
	svc, _ := newTestLoanService(t, items)

	loan, err := svc.Submit(submitInput("i1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	verified, err := svc.Verify(loan.ID)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verified.Status != domain.LoanStatusVerified {
		t.Errorf("status = %s, want Verified", verified.Status)
	}

	// Verify is only valid from Pending.
	if _, err := svc.Verify(loan.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("double Verify err = %v, want ErrInvalidTransition", err)
	}

	reviewed, err := svc.MarkForReview(loan.ID)
	if err != nil {
		t.Fatalf("MarkForReview: %v", err)
	}
	if reviewed.Status != domain.LoanStatusReviewRequired {
		t.Errorf("status = %s, want ReviewRequired", reviewed.Status)
	}
}

func TestSubmitValidation(t *testing.T) {
	items := []domain.Item{{ID: "i1", Name: "Tenda", TotalQuantity: 4, AvailableQuantity: 2, Status: domain.ItemStatusReady}}
	svc, _ := newTestLoanService(t, items)

	cases := []struct {
		name    string
		mutate  func(*SubmitLoanInput)
		wantErr error
	}{
		{"missing name", func(in *SubmitLoanInput) { in.BorrowerName = " " }, ErrMissingField},
		{"missing dates", func(in *SubmitLoanInput) { in.StartDate = "" }, ErrMissingField},
		{"zero quantity", func(in *SubmitLoanInput) { in.Quantity = 0 }, ErrInvalidQuantity},
		{"over stock", func(in *SubmitLoanInput) { in.Quantity = 3 }, ErrInvalidQuantity},
		{"bad type", func(in *SubmitLoanInput) { in.BorrowerType = "Company" }, ErrInvalidBorrowerType},
		{"institution without name", func(in *SubmitLoanInput) { in.BorrowerType = "Institution" }, ErrMissingField},
		{"inverted dates", func(in *SubmitLoanInput) { in.StartDate = "2026-09-10"; in.EndDate = "2026-09-01" }, ErrInvalidDateRange},
		{"unknown item", func(in *SubmitLoanInput) { in.ItemID = "nope" }, domain.ErrItemNotFound},
		{"bad target status", func(in *SubmitLoanInput) { in.Status = "Approved" }, ErrInvalidTargetStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := submitInput("i1")
			tc.mutate(in)
			if _, err := svc.Submit(in); !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if got := len(svc.loanRepo.List()); got != 0 {
		t.Errorf("failed submissions left %d records behind", got)
	}
}

func TestLookupByEmail(t *testing.T) {
	items := []domain.Item{
		{ID: "i1", Name: "Tenda", TotalQuantity: 8, AvailableQuantity: 8, Status: domain.ItemStatusReady},
	}
	svc, _ := newTestLoanService(t, items)

	// A completed loan in the past.
	past, err := svc.Submit(submitInput("i1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Approve(past.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if _, err := svc.Return(past.ID); err != nil {
		t.Fatalf("Return: %v", err)
	}

	// An open draft for the same item, other borrower untouched.
	draft := submitInput("i1")
	draft.Status = string(domain.LoanStatusQueued)
	draft.Purpose = "Draft kegiatan"
	if _, err := svc.Submit(draft); err != nil {
		t.Fatalf("Submit draft: %v", err)
	}

	out, err := svc.LookupByEmail("i1", "A@x.com")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if out.Draft == nil || out.Draft.Purpose != "Draft kegiatan" {
		t.Errorf("draft = %+v, want the open Queued record", out.Draft)
	}
	if out.BorrowCount != 1 {
		t.Errorf("borrow count = %d, want 1", out.BorrowCount)
	}
	if out.Prefill == nil || out.Prefill.ID != past.ID {
		t.Errorf("prefill = %+v, want the returned loan", out.Prefill)
	}
	if len(out.RecentReturns) != 1 {
		t.Errorf("recent returns = %d, want 1", len(out.RecentReturns))
	}

	// Lookup with a resolvable history unlocks the session.
	if got := svc.sessionRepo.Get(); got.Email != "a@x.com" || got.NIK != "111" {
		t.Errorf("session after lookup = %+v", got)
	}

	if _, err := svc.LookupByEmail("i1", "  "); !errors.Is(err, ErrMissingField) {
		t.Errorf("empty email err = %v, want ErrMissingField", err)
	}
}
