package goCred

import (
	"testing"

	"github.com/MrEthical07/goCred/policy"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestDefaultConfigPolicy(t *testing.T) {
	cfg := defaultConfig()
	pol := cfg.policy()

	if pol.MinLength != 12 {
		t.Fatalf("expected MinLength 12, got %d", pol.MinLength)
	}
	if !pol.RequireUppercase || !pol.RequireNumbers || !pol.RequireSymbols {
		t.Fatal("expected all character classes required by default")
	}
	if pol.Symbols() != policy.DefaultSymbolAlphabet {
		t.Fatalf("expected default symbol alphabet, got %q", pol.Symbols())
	}
}

func TestConfigValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min length", func(c *Config) { c.Policy.MinLength = 0 }},
		{"zero generator attempts", func(c *Config) { c.Generator.MaxAttempts = 0 }},
		{"low memory", func(c *Config) { c.Password.Memory = 1024 }},
		{"zero time", func(c *Config) { c.Password.Time = 0 }},
		{"zero parallelism", func(c *Config) { c.Password.Parallelism = 0 }},
		{"short salt", func(c *Config) { c.Password.SaltLength = 8 }},
		{"short key", func(c *Config) { c.Password.KeyLength = 8 }},
		{"breach enabled without timeout", func(c *Config) {
			c.Breach.Enabled = true
			c.Breach.Timeout = 0
		}},
		{"audit enabled without buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCloneConfigIsIndependent(t *testing.T) {
	cfg := defaultConfig()
	clone := cloneConfig(cfg)

	clone.Policy.MinLength = 99
	if cfg.Policy.MinLength == 99 {
		t.Fatal("expected clone to be independent")
	}
}
