package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// Default Tests
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Database.DataDir != "./data" {
		t.Errorf("DataDir = %q, want ./data", cfg.Database.DataDir)
	}
	if cfg.Database.PersistenceEnabled {
		t.Error("persistence should default to disabled")
	}
	if cfg.Cache.L1Capacity != 1000 || cfg.Cache.L2Capacity != 10000 {
		t.Errorf("cache capacities = %d/%d, want 1000/10000",
			cfg.Cache.L1Capacity, cfg.Cache.L2Capacity)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("TTL = %s, want 1h", cfg.Cache.TTL)
	}
	if cfg.Traversal.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0 (unlimited)", cfg.Traversal.MaxDepth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

// =============================================================================
// LoadFromEnv Tests
// =============================================================================

func TestLoadFromEnv(t *testing.T) {
	t.Run("unset variables keep defaults", func(t *testing.T) {
		cfg := LoadFromEnv()
		if cfg.Cache.L1Capacity != 1000 {
			t.Errorf("L1Capacity = %d, want 1000", cfg.Cache.L1Capacity)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Level = %q, want info", cfg.Logging.Level)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("NEODB_DATA_DIR", "/var/lib/neodb")
		t.Setenv("NEODB_PERSISTENCE_ENABLED", "true")
		t.Setenv("NEODB_CACHE_L1_CAPACITY", "42")
		t.Setenv("NEODB_CACHE_TTL", "30m")
		t.Setenv("NEODB_TRAVERSAL_MAX_DEPTH", "7")
		t.Setenv("NEODB_LOG_LEVEL", "debug")

		cfg := LoadFromEnv()
		if cfg.Database.DataDir != "/var/lib/neodb" {
			t.Errorf("DataDir = %q", cfg.Database.DataDir)
		}
		if !cfg.Database.PersistenceEnabled {
			t.Error("persistence should be enabled")
		}
		if cfg.Cache.L1Capacity != 42 {
			t.Errorf("L1Capacity = %d, want 42", cfg.Cache.L1Capacity)
		}
		if cfg.Cache.TTL != 30*time.Minute {
			t.Errorf("TTL = %s, want 30m", cfg.Cache.TTL)
		}
		if cfg.Traversal.MaxDepth != 7 {
			t.Errorf("MaxDepth = %d, want 7", cfg.Traversal.MaxDepth)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Level = %q, want debug", cfg.Logging.Level)
		}
	})

	t.Run("malformed values fall back to defaults", func(t *testing.T) {
		t.Setenv("NEODB_CACHE_L1_CAPACITY", "not-a-number")
		t.Setenv("NEODB_CACHE_TTL", "later")

		cfg := LoadFromEnv()
		if cfg.Cache.L1Capacity != 1000 {
			t.Errorf("L1Capacity = %d, want default 1000", cfg.Cache.L1Capacity)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("TTL = %s, want default 1h", cfg.Cache.TTL)
		}
	})
}

// =============================================================================
// LoadFromFile Tests
// =============================================================================

func TestLoadFromFile(t *testing.T) {
	t.Run("partial file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "neodb.yaml")
		doc := `
database:
  data_dir: /srv/neodb
  persistence_enabled: true
cache:
  l1_capacity: 5
  ttl: 10s
`
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile: %v", err)
		}
		if cfg.Database.DataDir != "/srv/neodb" {
			t.Errorf("DataDir = %q", cfg.Database.DataDir)
		}
		if cfg.Cache.L1Capacity != 5 {
			t.Errorf("L1Capacity = %d, want 5", cfg.Cache.L1Capacity)
		}
		if cfg.Cache.TTL != 10*time.Second {
			t.Errorf("TTL = %s, want 10s", cfg.Cache.TTL)
		}
		// Unset fields keep their defaults.
		if cfg.Cache.L2Capacity != 10000 {
			t.Errorf("L2Capacity = %d, want default 10000", cfg.Cache.L2Capacity)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Level = %q, want default info", cfg.Logging.Level)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFromFile("/nonexistent/neodb.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"persistence without data dir", func(c *Config) {
			c.Database.PersistenceEnabled = true
			c.Database.DataDir = ""
		}, true},
		{"negative l1 capacity", func(c *Config) {
			c.Cache.L1Capacity = -1
		}, true},
		{"negative ttl", func(c *Config) {
			c.Cache.TTL = -time.Second
		}, true},
		{"negative max depth", func(c *Config) {
			c.Traversal.MaxDepth = -5
		}, true},
		{"unknown log level", func(c *Config) {
			c.Logging.Level = "verbose"
		}, true},
		{"unknown log format", func(c *Config) {
			c.Logging.Format = "xml"
		}, true},
		{"zero capacities allowed", func(c *Config) {
			c.Cache.L1Capacity = 0
			c.Cache.L2Capacity = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
