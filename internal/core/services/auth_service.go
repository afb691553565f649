package services

import (
	"errors"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/pkg/jwt"
	"kgtk-simpanse/internal/pkg/password"
)

// Auth service errors
var (
	// ErrInvalidCredentials deliberately covers both unknown-account and
	// wrong-password so login failures never leak account existence.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService handles staff authentication
type AuthService struct {
	userRepo      repositories.UserRepository
	notify        *NotificationService
	jwtSecret     string
	expiryMinutes int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	notify *NotificationService,
	jwtSecret string,
	expiryMinutes int,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		notify:        notify,
		jwtSecret:     jwtSecret,
		expiryMinutes: expiryMinutes,
	}
}

// LoginInput represents login input
type LoginInput struct {
	// Identifier accepts either the username or the email.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginOutput represents login output
type LoginOutput struct {
	AccessToken string               `json:"access_token"`
	User        *domain.UserResponse `json:"user"`
}

// Login authenticates a staff member by username or email.
func (s *AuthService) Login(input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByLogin(input.Identifier)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.Username, string(user.Role), s.jwtSecret, s.expiryMinutes)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken: token,
		User:        user.ToResponse(),
	}, nil
}

// ForgotPassword triggers a reset notice for the account behind email.
// It always succeeds from the caller's point of view so the endpoint
// cannot be used to probe which emails have accounts.
func (s *AuthService) ForgotPassword(email string) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return
	}
	s.notify.PasswordReset(user.Email)
}
