package repositories

import (
	"errors"
	"fmt"
	"sync"

	"kgtk-simpanse/internal/adapters/persistence/store"
	"kgtk-simpanse/internal/core/domain"
)

// Data is the in-memory snapshot of all persisted application state.
type Data struct {
	Items   []domain.Item
	Loans   []domain.Loan
	Users   []domain.UserAccount
	Session domain.SessionIdentity
	Config  domain.SystemConfig
	// History keeps superseded Rejected records so their rejection reasons
	// survive resubmission.
	History []domain.Loan
}

func (d *Data) clone() Data {
	c := Data{
		Items:   append([]domain.Item(nil), d.Items...),
		Loans:   append([]domain.Loan(nil), d.Loans...),
		Users:   append([]domain.UserAccount(nil), d.Users...),
		Session: d.Session,
		Config:  d.Config,
		History: append([]domain.Loan(nil), d.History...),
	}
	c.Config.Sliders = append([]domain.Slider(nil), d.Config.Sliders...)
	return c
}

// State owns the snapshot and the persistence of every mutation. All writes
// go through Update, which applies the mutation and persists the snapshot
// as one step: if either fails, the snapshot is rolled back and nothing is
// observable.
type State struct {
	mu   sync.RWMutex
	st   store.Store
	data Data
}

// NewState loads the snapshot from st. Missing keys are treated as empty
// state (first run).
func NewState(st store.Store) (*State, error) {
	s := &State{st: st}

	loads := []struct {
		key string
		v   any
	}{
		{store.KeyItems, &s.data.Items},
		{store.KeyLoans, &s.data.Loans},
		{store.KeyUsers, &s.data.Users},
		{store.KeySession, &s.data.Session},
		{store.KeyConfig, &s.data.Config},
		{store.KeyHistory, &s.data.History},
	}
	for _, l := range loads {
		if err := st.Load(l.key, l.v); err != nil {
			if errors.Is(err, store.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", l.key, err)
		}
	}

	return s, nil
}

// View runs fn with read access to the snapshot.
func (s *State) View(fn func(*Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

// Update applies fn to the snapshot and persists the result. On any error
// the prior snapshot is restored.
func (s *State) Update(fn func(*Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.data.clone()
	if err := fn(&s.data); err != nil {
		s.data = backup
		return err
	}
	if err := s.persist(); err != nil {
		s.data = backup
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

func (s *State) persist() error {
	saves := []struct {
		key string
		v   any
	}{
		{store.KeyItems, s.data.Items},
		{store.KeyLoans, s.data.Loans},
		{store.KeyUsers, s.data.Users},
		{store.KeySession, s.data.Session},
		{store.KeyConfig, s.data.Config},
		{store.KeyHistory, s.data.History},
	}
	for _, sv := range saves {
		if err := s.st.Save(sv.key, sv.v); err != nil {
			return err
		}
	}
	return nil
}
