package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/scriptmesh/logging"
)

// Validate checks the structural validity of a Config and reports every
// problem at once.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	var errs []error

	if strings.TrimSpace(cfg.Server.Address) == "" {
		errs = append(errs, errors.New("config: server.address is required"))
	}
	if cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("config: server.shutdown_timeout must not be negative"))
	}

	errs = append(errs, validateModel(cfg.Model)...)

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("config: log.level: %w", err))
	}
	switch cfg.Log.Format {
	case "", "json", "text":
	default:
		errs = append(errs, fmt.Errorf("config: log.format %q (supported: json, text)", cfg.Log.Format))
	}

	if cfg.Runner.MaxConcurrentTurns < 0 {
		errs = append(errs, errors.New("config: runner.max_concurrent_turns must not be negative"))
	}
	if cfg.Memory.MinInputLength < 0 {
		errs = append(errs, errors.New("config: memory.min_input_length must not be negative"))
	}
	if cfg.Memory.MaxFacts < 1 {
		errs = append(errs, errors.New("config: memory.max_facts must be at least 1"))
	}

	return errors.Join(errs...)
}

func validateModel(m ModelConfig) []error {
	var errs []error
	switch m.Provider {
	case ProviderMock:
		return nil
	case ProviderOpenAI, ProviderGroq, ProviderAnthropic:
		if m.APIKey == "" {
			errs = append(errs, fmt.Errorf("config: model.api_key is required for provider %q", m.Provider))
		}
	case "":
		errs = append(errs, errors.New("config: model.provider is required"))
	default:
		errs = append(errs, fmt.Errorf("config: unknown model.provider %q", m.Provider))
	}
	if m.Temperature < 0 || m.Temperature > 2 {
		errs = append(errs, fmt.Errorf("config: model.temperature %v out of range [0, 2]", m.Temperature))
	}
	if m.MaxTokens < 0 {
		errs = append(errs, errors.New("config: model.max_tokens must not be negative"))
	}
	return errs
}
