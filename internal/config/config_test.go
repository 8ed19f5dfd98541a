package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STATIC_DIR", "DEPTH_MIN", "DEPTH_MAX", "DEPTH_STEP", "GENERATE_TIMEOUT", "RATE_LIMIT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != ":3000" || cfg.StaticDir != "./public" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.DepthMin != 0 || cfg.DepthMax != 640 || cfg.DepthStep != 40 {
		t.Errorf("depth defaults = %g/%g/%g", cfg.DepthMin, cfg.DepthMax, cfg.DepthStep)
	}
	if cfg.GenerateTimeout != 0 || cfg.RateLimit != 30 {
		t.Errorf("timeout=%v rate=%d", cfg.GenerateTimeout, cfg.RateLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", ":8080")
	t.Setenv("DEPTH_STEP", "100")
	t.Setenv("GENERATE_TIMEOUT", "90s")
	t.Setenv("DEBUG", "true")
	t.Setenv("RATE_LIMIT", "not-a-number")

	cfg := Load()
	if cfg.Port != ":8080" || cfg.DepthStep != 100 || cfg.GenerateTimeout != 90*time.Second || !cfg.Debug {
		t.Errorf("env config = %+v", cfg)
	}
	if cfg.RateLimit != 30 {
		t.Errorf("bad RATE_LIMIT should fall back, got %d", cfg.RateLimit)
	}
}

func TestValidate(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.DepthStep = 0 },
		func(c *Config) { c.DepthMin, c.DepthMax = 10, 0 },
		func(c *Config) { c.HeatmapScript = "" },
		func(c *Config) { c.GenerateTimeout = -time.Second },
	}
	for i, mutate := range cases {
		cfg := &Config{DepthMin: 0, DepthMax: 640, DepthStep: 40, HeatmapScript: "generate_heatmaps.py"}
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
}
