package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	ImportDelay time.Duration
	LogLevel    string
	LogFormat   string
	// FraudRegistryPath and QuotesPath replace the embedded data files when set.
	FraudRegistryPath string
	QuotesPath        string
	// AuditBuffer sizes the async audit publisher. Zero writes synchronously.
	AuditBuffer int
	// AuditRetention caps the in-memory audit trail. Zero keeps everything.
	AuditRetention int
	// SessionIdleTimeout closes sessions without activity. Zero disables it.
	SessionIdleTimeout time.Duration
	// MaxSessions caps concurrently open sessions. Zero means no cap.
	MaxSessions int
}

// DefaultImportDelay matches the simulated extraction time.
const DefaultImportDelay = 1500 * time.Millisecond

const (
	DefaultAuditRetention     = 10000
	DefaultSessionIdleTimeout = 30 * time.Minute
	DefaultMaxSessions        = 1000
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:              getenv("TAXPORTAL_ADDR", ":8080"),
		ImportDelay:       DefaultImportDelay,
		LogLevel:          getenv("TAXPORTAL_LOG_LEVEL", "info"),
		LogFormat:         getenv("TAXPORTAL_LOG_FORMAT", "text"),
		FraudRegistryPath: os.Getenv("TAXPORTAL_FRAUD_REGISTRY"),
		QuotesPath:        os.Getenv("TAXPORTAL_QUOTES"),
		AuditBuffer:       256,

		AuditRetention:     DefaultAuditRetention,
		SessionIdleTimeout: DefaultSessionIdleTimeout,
		MaxSessions:        DefaultMaxSessions,
	}

	if v := os.Getenv("TAXPORTAL_IMPORT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("TAXPORTAL_IMPORT_DELAY: %w", err)
		}
		cfg.ImportDelay = d
	}
	if v := os.Getenv("TAXPORTAL_SESSION_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("TAXPORTAL_SESSION_IDLE_TIMEOUT: %w", err)
		}
		cfg.SessionIdleTimeout = d
	}
	for key, dst := range map[string]*int{
		"TAXPORTAL_AUDIT_BUFFER":    &cfg.AuditBuffer,
		"TAXPORTAL_AUDIT_RETENTION": &cfg.AuditRetention,
		"TAXPORTAL_MAX_SESSIONS":    &cfg.MaxSessions,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Server) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.ImportDelay <= 0 {
		errs = append(errs, fmt.Errorf("import delay must be positive, got %s", c.ImportDelay))
	}
	if c.AuditBuffer < 0 {
		errs = append(errs, fmt.Errorf("audit buffer must not be negative, got %d", c.AuditBuffer))
	}
	if c.AuditRetention < 0 {
		errs = append(errs, fmt.Errorf("audit retention must not be negative, got %d", c.AuditRetention))
	}
	if c.SessionIdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("session idle timeout must not be negative, got %s", c.SessionIdleTimeout))
	}
	if c.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("max sessions must not be negative, got %d", c.MaxSessions))
	}
	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
