package repositories

import "kgtk-simpanse/internal/core/domain"

// sessionRepository implements SessionRepository over the shared state
// snapshot. There is a single borrower session per deployment.
type sessionRepository struct {
	state *State
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(state *State) SessionRepository {
	return &sessionRepository{state: state}
}

func (r *sessionRepository) Get() domain.SessionIdentity {
	var identity domain.SessionIdentity
	r.state.View(func(d *Data) {
		identity = d.Session
	})
	return identity
}

func (r *sessionRepository) Set(identity domain.SessionIdentity) error {
	return r.state.Update(func(d *Data) error {
		d.Session = identity
		return nil
	})
}

func (r *sessionRepository) Clear() error {
	return r.state.Update(func(d *Data) error {
		d.Session = domain.SessionIdentity{}
		return nil
	})
}
