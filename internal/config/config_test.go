package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REVISIO_DB", "") // keep DefaultDBPath deterministic enough
	t.Setenv("REVISIO_DB_PATH", "/tmp/revisio-test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("ServerAddr = %q, want :8080", cfg.ServerAddr)
	}
	if cfg.EventRetentionDays != 30 {
		t.Errorf("EventRetentionDays = %d, want 30", cfg.EventRetentionDays)
	}

	targets, err := cfg.Targets()
	if err != nil {
		t.Fatalf("Targets() error = %v", err)
	}
	if targets.Total() == 0 {
		t.Error("Targets().Total() = 0, want a non-empty default plan shape")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("REVISIO_SERVER_ADDR", ":9999")
	t.Setenv("REVISIO_DB_PATH", "/tmp/revisio-test.db")
	t.Setenv("REVISIO_PLAN_TARGETS", `{"easy:new":1}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerAddr != ":9999" {
		t.Errorf("ServerAddr = %q, want :9999", cfg.ServerAddr)
	}
	if cfg.DBPath != "/tmp/revisio-test.db" {
		t.Errorf("DBPath = %q, want override", cfg.DBPath)
	}

	targets, err := cfg.Targets()
	if err != nil {
		t.Fatalf("Targets() error = %v", err)
	}
	if targets["easy:new"] != 1 || len(targets) != 1 {
		t.Errorf("Targets() = %v, want only easy:new=1", targets)
	}
}

func TestTargetsParseError(t *testing.T) {
	cfg := &Config{PlanTargets: "not json"}
	if _, err := cfg.Targets(); err == nil {
		t.Error("Targets() with bad JSON = nil error, want error")
	}
}
