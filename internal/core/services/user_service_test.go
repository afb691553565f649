package services

import (
	"errors"
	"testing"

	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
)

func newTestUserService(t *testing.T) (*UserService, repositories.UserRepository) {
	t.Helper()
	state := newTestState(t, nil)
	userRepo := repositories.NewUserRepository(state)
	return NewUserService(userRepo, NewNotificationService()), userRepo
}

func TestCreateUserDefaultsToAdmin(t *testing.T) {
	svc, repo := newTestUserService(t)

	user, err := svc.Create(&CreateUserInput{
		Name:     "Petugas Baru",
		Username: "petugas",
		Email:    "petugas@simpanse.id",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("role = %s, want Admin", user.Role)
	}
	if user.ID == "" {
		t.Error("created user must carry a generated id")
	}

	stored, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Password == "" {
		t.Error("generated password must be stored as a hash")
	}

	// The response never carries credential material.
	if _, err := svc.Create(&CreateUserInput{
		Name: "Dup", Username: "petugas", Email: "dup@simpanse.id",
	}); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate username err = %v, want ErrUsernameTaken", err)
	}
}

func TestCreateUserRejectsBadInput(t *testing.T) {
	svc, _ := newTestUserService(t)

	cases := []struct {
		name    string
		input   CreateUserInput
		wantErr error
	}{
		{"no name", CreateUserInput{Username: "u", Email: "e@x.com"}, ErrNameRequired},
		{"no username", CreateUserInput{Name: "N", Email: "e@x.com"}, ErrUsernameNeeded},
		{"no email", CreateUserInput{Name: "N", Username: "u"}, ErrEmailRequired},
		{"bad role", CreateUserInput{Name: "N", Username: "u", Email: "e@x.com", Role: "Borrower"}, ErrInvalidRole},
		{"weak password", CreateUserInput{Name: "N", Username: "u", Email: "e@x.com", Password: "short"}, ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(&tc.input); !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdateUserKeepsPasswordWhenBlank(t *testing.T) {
	svc, repo := newTestUserService(t)

	user, err := svc.Create(&CreateUserInput{
		Name: "Petugas", Username: "petugas", Email: "p@simpanse.id", Password: "rahasia-123",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	before, _ := repo.GetByID(user.ID)

	if _, err := svc.Update(user.ID, &UpdateUserInput{Name: "Petugas Senior"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	after, _ := repo.GetByID(user.ID)
	if after.Password != before.Password {
		t.Error("blank password input must not change the stored hash")
	}
	if after.Name != "Petugas Senior" {
		t.Errorf("name = %q", after.Name)
	}

	if _, err := svc.Update(user.ID, &UpdateUserInput{Password: "rahasia-456"}); err != nil {
		t.Fatalf("Update password: %v", err)
	}
	rehashed, _ := repo.GetByID(user.ID)
	if rehashed.Password == before.Password {
		t.Error("new password must be re-hashed")
	}
}

func TestDeleteLastSuperAdminIsRejected(t *testing.T) {
	svc, repo := newTestUserService(t)

	superUser, err := svc.Create(&CreateUserInput{
		Name: "Super", Username: "super", Email: "super@simpanse.id", Role: "SuperAdmin",
	})
	if err != nil {
		t.Fatalf("Create super: %v", err)
	}
	admin, err := svc.Create(&CreateUserInput{
		Name: "Admin", Username: "admin", Email: "admin@simpanse.id",
	})
	if err != nil {
		t.Fatalf("Create admin: %v", err)
	}

	if err := svc.Delete(superUser.ID); !errors.Is(err, domain.ErrLastSuperAdmin) {
		t.Errorf("delete sole SuperAdmin err = %v, want ErrLastSuperAdmin", err)
	}
	if got := len(repo.List()); got != 2 {
		t.Errorf("directory changed on rejected delete: %d users", got)
	}

	// With a second SuperAdmin the first one may go.
	second, err := svc.Create(&CreateUserInput{
		Name: "Super 2", Username: "super2", Email: "super2@simpanse.id", Role: "SuperAdmin",
	})
	if err != nil {
		t.Fatalf("Create second super: %v", err)
	}
	if err := svc.Delete(superUser.ID); err != nil {
		t.Errorf("delete with spare SuperAdmin: %v", err)
	}
	if err := svc.Delete(second.ID); !errors.Is(err, domain.ErrLastSuperAdmin) {
		t.Errorf("delete new sole SuperAdmin err = %v, want ErrLastSuperAdmin", err)
	}
	_ = admin
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestUserService(t)

	seed := []CreateUserInput{
		{Name: "Andi Wijaya", Username: "andi", Email: "andi@simpanse.id"},
		{Name: "Budi Santoso", Username: "budi", Email: "budi@kgtk.id"},
	}
	for i := range seed {
		if _, err := svc.Create(&seed[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if got := svc.List("WIJAYA"); len(got) != 1 || got[0].Username != "andi" {
		t.Errorf("search by name = %+v", got)
	}
	if got := svc.List("kgtk"); len(got) != 1 || got[0].Username != "budi" {
		t.Errorf("search by email = %+v", got)
	}
	if got := svc.List(""); len(got) != 2 {
		t.Errorf("empty search returned %d users, want 2", len(got))
	}
	if got := svc.List("zzz"); len(got) != 0 {
		t.Errorf("no-match search returned %d users", len(got))
	}
}

func TestLoginAndForgotPassword(t *testing.T) {
	state := newTestState(t, nil)
	userRepo := repositories.NewUserRepository(state)
	notify := NewNotificationService()
	userSvc := NewUserService(userRepo, notify)
	authSvc := NewAuthService(userRepo, notify, "test-secret", 60)

	if _, err := userSvc.Create(&CreateUserInput{
		Name: "Admin", Username: "admin", Email: "admin@simpanse.id", Password: "admin-123",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// By username and by email, case-insensitively.
	for _, id := range []string{"admin", "ADMIN@simpanse.id"} {
		out, err := authSvc.Login(&LoginInput{Identifier: id, Password: "admin-123"})
		if err != nil {
			t.Fatalf("Login(%s): %v", id, err)
		}
		if out.AccessToken == "" || out.User.Username != "admin" {
			t.Errorf("Login(%s) = %+v", id, out)
		}
	}

	// Unknown account and wrong password look identical.
	_, errUnknown := authSvc.Login(&LoginInput{Identifier: "ghost", Password: "admin-123"})
	_, errWrong := authSvc.Login(&LoginInput{Identifier: "admin", Password: "nope"})
	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("errs = %v / %v, both must be ErrInvalidCredentials", errUnknown, errWrong)
	}

	// Forgot-password never reports whether the account exists.
	authSvc.ForgotPassword("admin@simpanse.id")
	authSvc.ForgotPassword("ghost@simpanse.id")
}
