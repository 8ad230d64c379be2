package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()
	rates := DefaultQuoteRates()

	if cfg.Settings() != defaults {
		t.Errorf("settings mismatch: config=%+v settings=%+v", cfg.Settings(), defaults)
	}
	if cfg.QuoteRates() != rates {
		t.Errorf("rates mismatch: config=%+v rates=%+v", cfg.QuoteRates(), rates)
	}
	if cfg.Listen != ":8000" {
		t.Errorf("expected listen :8000, got %s", cfg.Listen)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 default CORS origins, got %v", cfg.CORSOrigins)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil")
	}
}

func TestAppConfigSettingsReflectOverrides(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.CandidateOrder = CandidateZYX
	cfg.ItemOrder = ItemOrderInput
	cfg.PricePerM3 = 1

	s := cfg.Settings()
	if s.CandidateOrder != CandidateZYX || s.ItemOrder != ItemOrderInput {
		t.Errorf("unexpected settings %+v", s)
	}
	if cfg.QuoteRates().PricePerM3 != 1 {
		t.Errorf("expected price 1, got %f", cfg.QuoteRates().PricePerM3)
	}
}
