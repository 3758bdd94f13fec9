package driving

import "github.com/custodia-labs/docscribe/internal/core/domain"

// SettingsService resolves application settings.
type SettingsService interface {
	// Get retrieves the resolved settings: defaults, then config file, then environment.
	// Malformed values are reported as domain.ErrConfiguration.
	Get() (*domain.AppSettings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Set validates and persists a single config file value by dot-notation key.
	Set(key, value string) error

	// Validate resolves the settings and checks them.
	Validate() error
}
