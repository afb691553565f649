package repositories

import "kgtk-simpanse/internal/core/domain"

// configRepository implements ConfigRepository over the shared state
// snapshot.
type configRepository struct {
	state *State
}

// NewConfigRepository creates a new config repository.
func NewConfigRepository(state *State) ConfigRepository {
	return &configRepository{state: state}
}

func (r *configRepository) Get() domain.SystemConfig {
	var cfg domain.SystemConfig
	r.state.View(func(d *Data) {
		cfg = d.Config
	})
	return cfg
}

func (r *configRepository) Set(cfg domain.SystemConfig) error {
	return r.state.Update(func(d *Data) error {
		d.Config = cfg
		return nil
	})
}
