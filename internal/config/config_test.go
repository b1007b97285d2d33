package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Analysis.SampleSize != 1000 {
		t.Errorf("expected default sample size 1000, got %d", cfg.Analysis.SampleSize)
	}
	if cfg.Analysis.Seed != 42 {
		t.Errorf("expected default seed 42, got %d", cfg.Analysis.Seed)
	}
	if cfg.Analysis.WeightValidity != 0.35 {
		t.Errorf("expected default validity weight 0.35, got %v", cfg.Analysis.WeightValidity)
	}
	if cfg.Database.URL != "" {
		t.Errorf("database URL should default to empty, got %s", cfg.Database.URL)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SAMPLE_SIZE", "250")
	t.Setenv("SAMPLE_SEED", "7")
	t.Setenv("WEIGHT_VALIDITY", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port override, got %s", cfg.Server.Port)
	}
	if cfg.Analysis.SampleSize != 250 {
		t.Errorf("expected sample size override, got %d", cfg.Analysis.SampleSize)
	}
	if cfg.Analysis.Seed != 7 {
		t.Errorf("expected seed override, got %d", cfg.Analysis.Seed)
	}
	if cfg.Analysis.WeightValidity != 0.5 {
		t.Errorf("expected weight override, got %v", cfg.Analysis.WeightValidity)
	}
}

func TestLoad_InvalidSampleSize(t *testing.T) {
	t.Setenv("SAMPLE_SIZE", "-5")

	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-positive sample size")
	}
}

func TestLoad_MalformedIntFallsBack(t *testing.T) {
	t.Setenv("SAMPLE_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Analysis.SampleSize != 1000 {
		t.Errorf("malformed value should fall back to the default, got %d", cfg.Analysis.SampleSize)
	}
}
