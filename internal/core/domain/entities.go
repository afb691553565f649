package domain

import "time"

// ItemStatus is the derived stock status of a catalog item.
type ItemStatus string

const (
	ItemStatusReady      ItemStatus = "READY"
	ItemStatusOutOfStock ItemStatus = "OUT_OF_STOCK"
)

// Item represents a borrowable asset in the catalog.
type Item struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Category          string     `json:"category,omitempty"`
	ImageURL          string     `json:"image_url,omitempty"`
	TotalQuantity     int        `json:"total_quantity"`
	AvailableQuantity int        `json:"available_quantity"`
	Status            ItemStatus `json:"status"`
}

// RecomputeStatus derives Status from the current available quantity.
func (i *Item) RecomputeStatus() {
	if i.AvailableQuantity > 0 {
		i.Status = ItemStatusReady
	} else {
		i.Status = ItemStatusOutOfStock
	}
}

// DecrementAvailable reserves qty units, clamping at zero. Invoked only by
// the loan lifecycle's Approve transition.
func (i *Item) DecrementAvailable(qty int) {
	i.AvailableQuantity -= qty
	if i.AvailableQuantity < 0 {
		i.AvailableQuantity = 0
	}
	i.RecomputeStatus()
}

// IncrementAvailable releases qty units back to stock, clamping at the
// total. Invoked only by the loan lifecycle's Return transition.
func (i *Item) IncrementAvailable(qty int) {
	i.AvailableQuantity += qty
	if i.AvailableQuantity > i.TotalQuantity {
		i.AvailableQuantity = i.TotalQuantity
	}
	i.RecomputeStatus()
}

// LoanStatus is the lifecycle state of a loan request.
type LoanStatus string

const (
	LoanStatusQueued         LoanStatus = "Queued"
	LoanStatusPending        LoanStatus = "Pending"
	LoanStatusVerified       LoanStatus = "Verified"
	LoanStatusReviewRequired LoanStatus = "ReviewRequired"
	LoanStatusApproved       LoanStatus = "Approved"
	LoanStatusRejected       LoanStatus = "Rejected"
	LoanStatusReturned       LoanStatus = "Returned"
)

// IsTerminal reports whether no further transitions are possible.
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusReturned || s == LoanStatusRejected
}

// BorrowerType distinguishes personal from institutional borrowers.
type BorrowerType string

const (
	BorrowerIndividual  BorrowerType = "Individual"
	BorrowerInstitution BorrowerType = "Institution"
)

// Loan represents a loan request. Item name is a denormalized snapshot
// taken at submission time; the item itself is referenced by id only.
type Loan struct {
	ID              string       `json:"id"`
	ItemID          string       `json:"item_id"`
	ItemName        string       `json:"item_name"`
	BorrowerName    string       `json:"borrower_name"`
	BorrowerNIK     string       `json:"borrower_nik"`
	BorrowerEmail   string       `json:"borrower_email"`
	BorrowerPhone   string       `json:"borrower_phone"`
	BorrowerAddress string       `json:"borrower_address"`
	BorrowerType    BorrowerType `json:"borrower_type"`
	InstanceName    string       `json:"instance_name,omitempty"`
	InstanceAddress string       `json:"instance_address,omitempty"`
	InstancePhone   string       `json:"instance_phone,omitempty"`
	InstanceEmail   string       `json:"instance_email,omitempty"`
	Quantity        int          `json:"quantity"`
	Purpose         string       `json:"purpose"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	IDCardPhoto     string       `json:"id_card_photo,omitempty"`
	Signature       string       `json:"signature,omitempty"`
	Status          LoanStatus   `json:"status"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// UserAccount represents a staff account.
type UserAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password"` // bcrypt hash, persisted but never served
}

// UserResponse is the DTO returned to clients (no credential material).
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *UserAccount) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// SessionIdentity is the locally remembered borrower identity used to
// filter loan visibility. It is a convenience filter, not an auth boundary.
type SessionIdentity struct {
	Email string `json:"email"`
	NIK   string `json:"nik"`
	Name  string `json:"name"`
}

// IsSet reports whether an identity has been unlocked.
func (s SessionIdentity) IsSet() bool {
	return s.Email != "" && s.NIK != ""
}

// Slider is one rotating banner on the catalog page.
type Slider struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Transition string `json:"transition"`
}

// SystemConfig holds branding and contact settings managed by SuperAdmin.
type SystemConfig struct {
	AppName          string   `json:"app_name"`
	LogoURL          string   `json:"logo_url"`
	SecondaryLogoURL string   `json:"secondary_logo_url"`
	ContactPhone     string   `json:"contact_phone"`
	ContactEmail     string   `json:"contact_email"`
	ContactWebsite   string   `json:"contact_website"`
	SocialFB         string   `json:"social_fb"`
	SocialIG         string   `json:"social_ig"`
	SocialYT         string   `json:"social_yt"`
	Sliders          []Slider `json:"sliders"`
}
