package repositories

import (
	"strings"

	"kgtk-simpanse/internal/core/domain"
)

// userRepository implements UserRepository over the shared state snapshot.
type userRepository struct {
	state *State
}

// NewUserRepository creates a new user repository.
func NewUserRepository(state *State) UserRepository {
	return &userRepository{state: state}
}

// List returns a copy of the account directory.
func (r *userRepository) List() []domain.UserAccount {
	var users []domain.UserAccount
	r.state.View(func(d *Data) {
		users = append(users, d.Users...)
	})
	return users
}

// GetByID returns a copy of the account with the given id.
func (r *userRepository) GetByID(id string) (*domain.UserAccount, error) {
	var found *domain.UserAccount
	r.state.View(func(d *Data) {
		for i := range d.Users {
			if d.Users[i].ID == id {
				u := d.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return found, nil
}

// GetByLogin matches the identifier against username or email,
// case-insensitively.
func (r *userRepository) GetByLogin(usernameOrEmail string) (*domain.UserAccount, error) {
	needle := strings.ToLower(usernameOrEmail)
	var found *domain.UserAccount
	r.state.View(func(d *Data) {
		for i := range d.Users {
			if strings.ToLower(d.Users[i].Username) == needle ||
				strings.ToLower(d.Users[i].Email) == needle {
				u := d.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return found, nil
}

// GetByEmail returns the account with the given email, case-insensitively.
func (r *userRepository) GetByEmail(email string) (*domain.UserAccount, error) {
	needle := strings.ToLower(email)
	var found *domain.UserAccount
	r.state.View(func(d *Data) {
		for i := range d.Users {
			if strings.ToLower(d.Users[i].Email) == needle {
				u := d.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return found, nil
}

// ExistsByUsername reports whether any account already uses the username.
func (r *userRepository) ExistsByUsername(username string) bool {
	needle := strings.ToLower(username)
	exists := false
	r.state.View(func(d *Data) {
		for i := range d.Users {
			if strings.ToLower(d.Users[i].Username) == needle {
				exists = true
				return
			}
		}
	})
	return exists
}

// Create appends a new account.
func (r *userRepository) Create(user domain.UserAccount) error {
	return r.state.Update(func(d *Data) error {
		d.Users = append(d.Users, user)
		return nil
	})
}

// Update replaces the account with the same id.
func (r *userRepository) Update(user domain.UserAccount) error {
	return r.state.Update(func(d *Data) error {
		for i := range d.Users {
			if d.Users[i].ID == user.ID {
				d.Users[i] = user
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

// Delete removes the account. Removing the last remaining SuperAdmin is
// refused so the system can never lock itself out.
func (r *userRepository) Delete(id string) error {
	return r.state.Update(func(d *Data) error {
		idx := -1
		superAdmins := 0
		for i := range d.Users {
			if d.Users[i].Role == domain.RoleSuperAdmin {
				superAdmins++
			}
			if d.Users[i].ID == id {
				idx = i
			}
		}
		if idx == -1 {
			return domain.ErrUserNotFound
		}
		if d.Users[idx].Role == domain.RoleSuperAdmin && superAdmins <= 1 {
			return domain.ErrLastSuperAdmin
		}
		d.Users = append(d.Users[:idx], d.Users[idx+1:]...)
		return nil
	})
}
