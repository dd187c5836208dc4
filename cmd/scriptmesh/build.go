package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/scriptmesh"
	"github.com/hupe1980/scriptmesh/config"
	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/logging"
	"github.com/hupe1980/scriptmesh/memory"
	"github.com/hupe1980/scriptmesh/metrics"
	"github.com/hupe1980/scriptmesh/model"
	anthropicmodel "github.com/hupe1980/scriptmesh/model/anthropic"
	openaimodel "github.com/hupe1980/scriptmesh/model/openai"
	"github.com/hupe1980/scriptmesh/pipeline"
	"github.com/hupe1980/scriptmesh/speech"
	whisper "github.com/hupe1980/scriptmesh/speech/openai"
	"github.com/spf13/cobra"
)

// loadConfig reads the --config file, falling back to the standard search
// path and finally to config.Default().
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = resolveConfigPath()
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/scriptmesh/scriptmesh.yaml → ./scriptmesh.yaml
func resolveConfigPath() string {
	var candidates []string
	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "scriptmesh", "scriptmesh.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "scriptmesh", "scriptmesh.yaml"))
	}
	candidates = append(candidates, "scriptmesh.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func newLogger(cfg *config.Config) *logging.MeshLogger {
	level, _ := logging.ParseLevel(cfg.Log.Level)
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    os.Stderr,
		Component: "scriptmesh",
	})
}

func buildGraph(cfg *config.Config, logger logging.Logger) (*pipeline.Graph, error) {
	table := pipeline.DefaultTable()
	if cfg.Pipeline.GraphFile != "" {
		loaded, err := pipeline.LoadTable(cfg.Pipeline.GraphFile)
		if err != nil {
			return nil, err
		}
		table = loaded
	}
	return pipeline.NewGraph(table, logger)
}

func buildModel(cfg config.ModelConfig) (model.Model, error) {
	switch cfg.Provider {
	case config.ProviderMock:
		return model.NewMockModel("mock", config.ProviderMock), nil
	case config.ProviderOpenAI:
		return openaimodel.NewModel(func(o *openaimodel.Options) {
			applyOpenAI(o, cfg)
		}), nil
	case config.ProviderGroq:
		return openaimodel.NewGroqModel(cfg.APIKey, func(o *openaimodel.Options) {
			applyOpenAI(o, cfg)
		}), nil
	case config.ProviderAnthropic:
		return anthropicmodel.NewModel(func(o *anthropicmodel.Options) {
			if cfg.Name != "" {
				o.Model = anthropic.Model(cfg.Name)
			}
			if cfg.MaxTokens > 0 {
				o.MaxTokens = cfg.MaxTokens
			}
			o.Temperature = cfg.Temperature
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.BaseURL
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

func applyOpenAI(o *openaimodel.Options, cfg config.ModelConfig) {
	if cfg.Name != "" {
		o.Model = cfg.Name
	}
	if cfg.MaxTokens > 0 {
		o.MaxCompletionTokens = cfg.MaxTokens
	}
	if cfg.BaseURL != "" {
		o.BaseURL = cfg.BaseURL
	}
	o.Temperature = cfg.Temperature
	o.APIKey = cfg.APIKey
}

func buildTranscriber(cfg config.SpeechConfig) speech.Transcriber {
	if cfg.APIKey == "" {
		return nil
	}
	return whisper.NewTranscriber(func(o *whisper.Options) {
		if cfg.Model != "" {
			o.Model = cfg.Model
		}
		o.APIKey = cfg.APIKey
		o.BaseURL = cfg.BaseURL
	})
}

// buildMesh wires stores, graph, model and speech from cfg. collector may be nil.
func buildMesh(cfg *config.Config, logger logging.Logger, collector *metrics.Collector) (*scriptmesh.ScriptMesh, error) {
	graph, err := buildGraph(cfg, logger)
	if err != nil {
		return nil, err
	}
	llm, err := buildModel(cfg.Model)
	if err != nil {
		return nil, err
	}

	mesh := scriptmesh.New(llm, func(o *scriptmesh.Options) {
		o.Graph = graph
		o.MemoryStore = memory.NewInMemoryStore(func(m *memory.Options) {
			m.MinInputLength = cfg.Memory.MinInputLength
			m.MaxFacts = cfg.Memory.MaxFacts
		})
		o.MaxConcurrentTurns = cfg.Runner.MaxConcurrentTurns
		o.EnableStreaming = cfg.Model.Streaming
		o.Transcriber = buildTranscriber(cfg.Speech)
		o.Metrics = collector
		o.Logger = logger
	})
	return mesh, nil
}

func joinRoles(roles []core.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
