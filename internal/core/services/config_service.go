package services

import (
	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/core/domain"
)

// ConfigService handles branding and contact settings
type ConfigService struct {
	configRepo repositories.ConfigRepository
}

// NewConfigService creates a new config service
func NewConfigService(configRepo repositories.ConfigRepository) *ConfigService {
	return &ConfigService{configRepo: configRepo}
}

// Get returns the current system configuration.
func (s *ConfigService) Get() domain.SystemConfig {
	return s.configRepo.Get()
}

// Update replaces the system configuration.
func (s *ConfigService) Update(cfg domain.SystemConfig) (domain.SystemConfig, error) {
	if err := s.configRepo.Set(cfg); err != nil {
		return domain.SystemConfig{}, err
	}
	return cfg, nil
}
