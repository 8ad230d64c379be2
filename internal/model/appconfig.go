package model

// AppConfig holds application-wide preferences and server settings.
type AppConfig struct {
	// Server settings
	Listen       string   `json:"listen" mapstructure:"listen"`
	Database     string   `json:"database" mapstructure:"database"` // sqlite path, empty disables the audit trail
	CORSOrigins  []string `json:"cors_origins" mapstructure:"cors_origins"`
	OtelEndpoint string   `json:"otel_endpoint" mapstructure:"otel_endpoint"`

	// Default packer policy applied to requests that do not set one
	CandidateOrder CandidateOrder `json:"candidate_order" mapstructure:"candidate_order"`
	ItemOrder      ItemOrder      `json:"item_order" mapstructure:"item_order"`

	// Storage quote pricing
	PricePerM3    float64 `json:"price_per_m3" mapstructure:"price_per_m3"`
	MinimumCharge float64 `json:"minimum_charge" mapstructure:"minimum_charge"`

	// Logging
	LogLevel  string `json:"log_level" mapstructure:"log_level"`   // "debug", "info", "warn", "error"
	LogFormat string `json:"log_format" mapstructure:"log_format"` // "json" or "text"

	RecentFiles []string `json:"recent_files" mapstructure:"recent_files"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings() and DefaultQuoteRates().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	rates := DefaultQuoteRates()
	return AppConfig{
		Listen:         ":8000",
		Database:       "cubepack.db",
		CORSOrigins:    []string{"http://localhost:5173", "http://localhost:3000"},
		CandidateOrder: defaults.CandidateOrder,
		ItemOrder:      defaults.ItemOrder,
		PricePerM3:     rates.PricePerM3,
		MinimumCharge:  rates.MinimumCharge,
		LogLevel:       "info",
		LogFormat:      "json",
		RecentFiles:    []string{},
	}
}

// Settings returns the packer policy configured as default.
func (c AppConfig) Settings() PackSettings {
	return PackSettings{
		CandidateOrder: c.CandidateOrder,
		ItemOrder:      c.ItemOrder,
	}
}

// QuoteRates returns the configured storage pricing.
func (c AppConfig) QuoteRates() QuoteRates {
	return QuoteRates{
		PricePerM3:    c.PricePerM3,
		MinimumCharge: c.MinimumCharge,
	}
}
