package goCred

import (
	"errors"
	"time"

	"github.com/MrEthical07/goCred/policy"
)

// Config defines a public type used by goCred APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Policy    PolicyConfig
	Generator GeneratorConfig
	Password  PasswordConfig
	Store     StoreConfig
	Breach    BreachConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
POLICY CONFIG
====================================
*/

// PolicyConfig defines a public type used by goCred APIs.
//
// PolicyConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PolicyConfig struct {
	MinLength        int
	RequireUppercase bool
	RequireNumbers   bool
	RequireSymbols   bool
	SymbolAlphabet   string // empty means policy.DefaultSymbolAlphabet
}

// GeneratorConfig defines a public type used by goCred APIs.
//
// GeneratorConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GeneratorConfig struct {
	MaxAttempts int
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by goCred APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig defines a public type used by goCred APIs.
//
// StoreConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StoreConfig struct {
	RedisPrefix string
}

/*
====================================
BREACH CONFIG
====================================
*/

// BreachConfig defines a public type used by goCred APIs.
//
// BreachConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BreachConfig struct {
	Enabled        bool
	BaseURL        string
	Timeout        time.Duration
	DisablePadding bool
}

// AuditConfig defines a public type used by goCred APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goCred APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration used by [New] before any
// builder overrides are applied.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Policy: PolicyConfig{
			MinLength:        12,
			RequireUppercase: true,
			RequireNumbers:   true,
			RequireSymbols:   true,
			SymbolAlphabet:   policy.DefaultSymbolAlphabet,
		},
		Generator: GeneratorConfig{
			MaxAttempts: 100,
		},
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Store: StoreConfig{
			RedisPrefix: "cred",
		},
		Breach: BreachConfig{
			Enabled: false,
			BaseURL: "",
			Timeout: 5 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	return out
}

func (c *Config) policy() policy.Policy {
	return policy.Policy{
		MinLength:        c.Policy.MinLength,
		RequireUppercase: c.Policy.RequireUppercase,
		RequireNumbers:   c.Policy.RequireNumbers,
		RequireSymbols:   c.Policy.RequireSymbols,
		SymbolAlphabet:   c.Policy.SymbolAlphabet,
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Policy
	if c.Policy.MinLength < 1 {
		return errors.New("Policy MinLength must be >= 1")
	}

	// Generator
	if c.Generator.MaxAttempts <= 0 {
		return errors.New("Generator MaxAttempts must be > 0")
	}

	// Password
	if c.Password.Memory < 8*1024 {
		return errors.New("Password Memory must be >= 8192 KB")
	}
	if c.Password.Time < 1 {
		return errors.New("Password Time must be >= 1")
	}
	if c.Password.Parallelism < 1 {
		return errors.New("Password Parallelism must be >= 1")
	}
	if c.Password.SaltLength < 16 {
		return errors.New("Password SaltLength must be >= 16")
	}
	if c.Password.KeyLength < 16 {
		return errors.New("Password KeyLength must be >= 16")
	}

	// Breach
	if c.Breach.Enabled {
		if c.Breach.Timeout <= 0 {
			return errors.New("Breach Timeout must be > 0 when breach lookup is enabled")
		}
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
