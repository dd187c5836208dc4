// Package config loads the scriptmesh runtime configuration from YAML.
package config

import "time"

// Provider names accepted in Model.Provider.
const (
	ProviderMock      = "mock"
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Model    ModelConfig    `yaml:"model"`
	Speech   SpeechConfig   `yaml:"speech"`
	Log      LogConfig      `yaml:"log"`
	Runner   RunnerConfig   `yaml:"runner"`
	Memory   MemoryConfig   `yaml:"memory"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ModelConfig selects and configures the generation backend.
type ModelConfig struct {
	Provider    string  `yaml:"provider"`
	Name        string  `yaml:"name"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Streaming   bool    `yaml:"streaming"`
}

// SpeechConfig configures the transcription backend. An empty APIKey
// disables speech input.
type SpeechConfig struct {
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RunnerConfig bounds turn execution.
type RunnerConfig struct {
	MaxConcurrentTurns int64 `yaml:"max_concurrent_turns"`
}

// MemoryConfig tunes the long-term memory store.
type MemoryConfig struct {
	MinInputLength int `yaml:"min_input_length"`
	MaxFacts       int `yaml:"max_facts"`
}

// PipelineConfig optionally overrides the built-in role table.
type PipelineConfig struct {
	GraphFile string `yaml:"graph_file"`
}

// Default returns a configuration that runs fully offline with the mock
// provider.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8000",
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 10 * time.Second,
		},
		Model: ModelConfig{
			Provider:    ProviderMock,
			Temperature: 0.7,
			MaxTokens:   1024,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Runner: RunnerConfig{MaxConcurrentTurns: 10},
		Memory: MemoryConfig{MinInputLength: 20, MaxFacts: 5},
	}
}
