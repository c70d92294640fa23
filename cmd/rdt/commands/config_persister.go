package commands

import (
	"fmt"
	"sync"
	"time"
)

// ConfigPersister implements the auth.ConfigPersister interface on top of the
// CLI configuration file.
type ConfigPersister struct {
	mutex sync.Mutex
	path  string
}

// NewConfigPersister creates a new config persister for the file at path.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path}
}

// UpdateProfileToken stores a renewed token in the named profile.
func (p *ConfigPersister) UpdateProfileToken(profile, token string, expiresAt time.Time, refreshToken string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := loadConfigFile(p.path)
	if err != nil {
		return err
	}

	profileConfig, exists := config.Profiles[profile]
	if !exists {
		return fmt.Errorf("profile '%s': %w", profile, ErrProfileNotFound)
	}

	profileConfig.Token = token
	if !expiresAt.IsZero() {
		profileConfig.TokenExpiresAt = &expiresAt
	}

	if refreshToken != "" {
		profileConfig.RefreshToken = refreshToken
	}

	now := time.Now()
	profileConfig.LastRefreshed = &now

	return saveConfigFile(p.path, config)
}
