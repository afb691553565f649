package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/pkg/password"
)

// User service errors
var (
	ErrUsernameTaken  = errors.New("username already exists")
	ErrInvalidRole    = errors.New("invalid role")
	ErrNameRequired   = errors.New("name is required")
	ErrEmailRequired  = errors.New("email is required")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
	ErrUsernameNeeded = errors.New("username is required")
)

// UserService handles staff account management business logic
type UserService struct {
	userRepo repositories.UserRepository
	notify   *NotificationService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, notify *NotificationService) *UserService {
	return &UserService{userRepo: userRepo, notify: notify}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role,omitempty"`
	// Password is optional; a random one is generated and mailed to the
	// account when omitted.
	Password string `json:"password,omitempty"`
}

// UpdateUserInput represents update user input. A blank password keeps the
// current credential.
type UpdateUserInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// List returns all accounts, optionally filtered by a case-insensitive
// name or email substring.
func (s *UserService) List(search string) []*domain.UserResponse {
	search = strings.ToLower(strings.TrimSpace(search))

	out := []*domain.UserResponse{}
	for _, u := range s.userRepo.List() {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		user := u
		out = append(out, user.ToResponse())
	}
	return out
}

// Get returns one account by id.
func (s *UserService) Get(id string) (*domain.UserResponse, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Create adds a staff account. Role defaults to Admin. The plaintext
// password never leaves this method except through the notification mail.
func (s *UserService) Create(input *CreateUserInput) (*domain.UserResponse, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(input.Username) == "" {
		return nil, ErrUsernameNeeded
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, ErrEmailRequired
	}
	if s.userRepo.ExistsByUsername(input.Username) {
		return nil, ErrUsernameTaken
	}

	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleAdmin
	}
	if !role.Valid() || !role.IsStaff() {
		return nil, ErrInvalidRole
	}

	plain := input.Password
	generated := plain == ""
	if generated {
		var err error
		plain, err = password.Generate(10)
		if err != nil {
			return nil, err
		}
	} else if !password.ValidatePassword(plain) {
		return nil, ErrWeakPassword
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	user := domain.UserAccount{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(input.Name),
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Role:     role,
		Password: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if generated {
		s.notify.AccountCredentials(&user, plain)
	}
	return user.ToResponse(), nil
}

// Update replaces an account's fields. The password is re-hashed only when
// a new one is supplied.
func (s *UserService) Update(id string, input *UpdateUserInput) (*domain.UserResponse, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = strings.TrimSpace(input.Name)
	}
	if input.Username != "" && !strings.EqualFold(input.Username, user.Username) {
		if s.userRepo.ExistsByUsername(input.Username) {
			return nil, ErrUsernameTaken
		}
		user.Username = strings.TrimSpace(input.Username)
	}
	if input.Email != "" {
		user.Email = strings.TrimSpace(input.Email)
	}
	if input.Role != "" {
		role := domain.Role(input.Role)
		if !role.Valid() || !role.IsStaff() {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if input.Password != "" {
		if !password.ValidatePassword(input.Password) {
			return nil, ErrWeakPassword
		}
		hash, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(*user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Delete removes an account. Deleting the last SuperAdmin is refused by
// the repository and surfaces as domain.ErrLastSuperAdmin.
func (s *UserService) Delete(id string) error {
	return s.userRepo.Delete(id)
}
