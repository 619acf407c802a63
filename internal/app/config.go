package app

import (
	"errors"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PackagesPath string // directory tree scanned for package.hcl manifests
	SettingsPath string // project settings file kept in sync with config tags

	Call     string // optional one-shot "adapter.method" invocation
	CallArgs []string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config. All fields are optional; with none set the
// app only discovers adapters and prints the report.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Call != "" {
		adapter, method, ok := strings.Cut(cfg.Call, ".")
		if !ok || adapter == "" || method == "" {
			return nil, errors.New("call target must have the form 'adapter.method'")
		}
	}
	if len(cfg.CallArgs) > 0 && cfg.Call == "" {
		return nil, errors.New("call arguments given without a call target")
	}

	return &cfg, nil
}
