package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/scriptmesh/composer"
	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/internal/util"
	"github.com/hupe1980/scriptmesh/logging"
	"github.com/hupe1980/scriptmesh/metrics"
	"github.com/hupe1980/scriptmesh/model"
	"github.com/hupe1980/scriptmesh/pipeline"
	"golang.org/x/sync/semaphore"
)

// DefaultPromptTemplate renders the system prompt of a turn from the role
// instruction and the composed long-term memory summary.
const DefaultPromptTemplate = "{{.instruction}}\n\nLong-term memory: {{.long_term_memory}}"

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// MaxConcurrentTurns limits concurrent generation calls across roles.
	// Zero or negative means unlimited.
	MaxConcurrentTurns int64
	// EnableStreaming asks the model for partial chunks.
	EnableStreaming bool
	// PromptTemplate overrides DefaultPromptTemplate.
	PromptTemplate string
	// ArtifactStore receives every generated output as a draft (optional).
	ArtifactStore core.ArtifactStore
	// Metrics records turn outcomes (optional).
	Metrics *metrics.Collector
	// Logger defaults to logging.NoOpLogger.
	Logger logging.Logger
}

// Runner coordinates role turns. Public methods are safe for concurrent use.
type Runner struct {
	llm      model.Model
	history  core.HistoryStore
	memory   core.MemoryStore
	graph    *pipeline.Graph
	composer *composer.Composer

	artifactStore   core.ArtifactStore
	metrics         *metrics.Collector
	logger          logging.Logger
	enableStreaming bool
	promptTemplate  string

	sem *semaphore.Weighted
	// turns holds one single-slot semaphore per role so waiting for the
	// role respects ctx.
	turns map[core.Role]*semaphore.Weighted
}

// New constructs a Runner over the given collaborators.
func New(
	llm model.Model,
	history core.HistoryStore,
	memory core.MemoryStore,
	graph *pipeline.Graph,
	optFns ...func(o *Options),
) *Runner {
	opts := Options{
		MaxConcurrentTurns: 10,
		PromptTemplate:     DefaultPromptTemplate,
		Logger:             logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	turns := make(map[core.Role]*semaphore.Weighted)
	for _, r := range core.Roles() {
		turns[r] = semaphore.NewWeighted(1)
	}

	var sem *semaphore.Weighted
	if opts.MaxConcurrentTurns > 0 {
		sem = semaphore.NewWeighted(opts.MaxConcurrentTurns)
	}

	return &Runner{
		llm:     llm,
		history: history,
		memory:  memory,
		graph:   graph,
		composer: composer.New(history, memory, graph, func(o *composer.Options) {
			o.Logger = opts.Logger
		}),
		artifactStore:   opts.ArtifactStore,
		metrics:         opts.Metrics,
		logger:          opts.Logger,
		enableStreaming: opts.EnableStreaming,
		promptTemplate:  opts.PromptTemplate,
		sem:             sem,
		turns:           turns,
	}
}

// Run executes one turn for role and returns the generated text.
func (r *Runner) Run(ctx context.Context, role string, input string) (string, error) {
	rl, err := core.ParseRole(role)
	if err != nil {
		return "", err
	}

	turn := r.turns[rl]
	if err := turn.Acquire(ctx, 1); err != nil {
		return "", &core.GenerationError{Role: rl, Err: err}
	}
	defer turn.Release(1)

	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return "", &core.GenerationError{Role: rl, Err: err}
		}
		defer r.sem.Release(1)
	}

	comp, err := r.composer.Compose(rl)
	if err != nil {
		return "", err
	}

	prompt, err := util.RenderTemplate(r.promptTemplate, map[string]any{
		"instruction":      r.graph.Instruction(rl),
		"long_term_memory": comp.Summary,
		"role":             string(rl),
	})
	if err != nil {
		return "", fmt.Errorf("runner: rendering prompt for %s: %w", rl, err)
	}

	start := time.Now()
	output, usage, err := model.Collect(ctx, r.llm, model.Request{
		Instructions: prompt,
		History:      comp.History,
		Input:        input,
		Stream:       r.enableStreaming,
	})
	dur := time.Since(start)
	r.metrics.ObserveTurn(string(rl), dur, err)
	if err != nil {
		r.logger.Error("runner: generation failed",
			"role", string(rl),
			"model", r.llm.Info().Name,
			"duration", dur,
			"error", err,
		)
		return "", &core.GenerationError{Role: rl, Err: err}
	}
	r.logger.Debug("runner: generation completed", "role", string(rl), "duration", dur, "usage", usage)

	if err := r.commit(rl, comp, input, output); err != nil {
		return "", err
	}
	return output, nil
}

// commit writes a successful turn. History goes first so long-term memory
// never records a turn the history does not contain.
func (r *Runner) commit(role core.Role, comp composer.Composition, input, output string) error {
	msgs := make([]core.Message, 0, len(comp.Inherited)+2)
	msgs = append(msgs, comp.Inherited...)
	msgs = append(msgs, core.NewUserMessage(input), core.NewGeneratedMessage(output))
	if err := r.history.Append(role, msgs...); err != nil {
		return fmt.Errorf("runner: appending history of %s: %w", role, err)
	}
	if err := r.memory.Record(role, input, output); err != nil {
		return fmt.Errorf("runner: recording memory of %s: %w", role, err)
	}
	if r.artifactStore != nil {
		if _, err := r.artifactStore.Add(role, []byte(output)); err != nil {
			r.logger.Warn("runner: saving draft failed", "role", string(role), "error", err)
		}
	}

	historyLen := len(comp.History) + 2
	facts, err := r.memory.Get(role)
	if err != nil {
		r.logger.Warn("runner: reading memory failed", "role", string(role), "error", err)
	}
	r.metrics.ObserveState(string(role), historyLen, len(facts))
	r.logger.Info("runner: turn committed",
		"role", string(role),
		"history_len", historyLen,
		"fact_count", len(facts),
		"inherited_count", len(comp.Inherited),
	)
	return nil
}
