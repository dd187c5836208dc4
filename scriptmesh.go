// Package scriptmesh provides a high-level façade over the session memory
// manager of the script pipeline: eight expert roles, each with its own
// short-term history and bounded long-term memory, chained along a fixed
// inheritance graph. Most applications interact with this package by:
//  1. Creating a ScriptMesh via New() with a model.Model (optionally overriding
//     the default in-memory stores or the inheritance graph)
//  2. Running turns for a role (Run)
//  3. Correcting a role's latest generated message (EditLastGenerated)
//
// All defaults are in-memory and safe for local development and testing.
package scriptmesh

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/scriptmesh/artifact"
	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/editor"
	"github.com/hupe1980/scriptmesh/logging"
	"github.com/hupe1980/scriptmesh/memory"
	"github.com/hupe1980/scriptmesh/metrics"
	"github.com/hupe1980/scriptmesh/model"
	"github.com/hupe1980/scriptmesh/pipeline"
	"github.com/hupe1980/scriptmesh/runner"
	"github.com/hupe1980/scriptmesh/session"
	"github.com/hupe1980/scriptmesh/speech"
)

// ErrSpeechDisabled is returned by Transcribe when no transcriber is configured.
var ErrSpeechDisabled = errors.New("scriptmesh: speech input is not configured")

// Options configures the ScriptMesh instance.
type Options struct {
	// MaxConcurrentTurns limits generation calls running at the same time
	// across all roles. Zero means unlimited.
	MaxConcurrentTurns int64

	// EnableStreaming requests partial chunks from the model. The final text
	// of a turn is the same either way.
	EnableStreaming bool

	// Stores (defaults to in-memory implementations if not provided)
	HistoryStore  core.HistoryStore
	MemoryStore   core.MemoryStore
	ArtifactStore core.ArtifactStore

	// Graph defaults to pipeline.DefaultGraph().
	Graph *pipeline.Graph

	// Transcriber enables speech input (optional).
	Transcriber speech.Transcriber

	// Metrics records turns and edits (optional).
	Metrics *metrics.Collector

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ScriptMesh is the high-level façade aggregating the stores, the runner and
// the editor.
type ScriptMesh struct {
	opts   Options
	runner *runner.Runner
	editor *editor.Editor
}

// New creates a ScriptMesh driven by llm. Any unset store is initialized with
// an in-memory implementation.
func New(llm model.Model, optFns ...func(o *Options)) *ScriptMesh {
	opts := Options{
		MaxConcurrentTurns: 10,
		HistoryStore:       session.NewInMemoryStore(),
		MemoryStore:        memory.NewInMemoryStore(),
		ArtifactStore:      artifact.NewInMemoryStore(),
		Logger:             logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Graph == nil {
		opts.Graph = pipeline.DefaultGraph()
	}

	r := runner.New(llm, opts.HistoryStore, opts.MemoryStore, opts.Graph, func(o *runner.Options) {
		o.MaxConcurrentTurns = opts.MaxConcurrentTurns
		o.EnableStreaming = opts.EnableStreaming
		o.ArtifactStore = opts.ArtifactStore
		o.Metrics = opts.Metrics
		o.Logger = opts.Logger
	})
	e := editor.New(opts.HistoryStore, func(o *editor.Options) {
		o.ArtifactStore = opts.ArtifactStore
		o.Logger = opts.Logger
	})

	return &ScriptMesh{opts: opts, runner: r, editor: e}
}

// Run executes one turn for role and returns the generated text. See
// runner.Runner.Run for the error contract.
func (m *ScriptMesh) Run(ctx context.Context, role string, input string) (string, error) {
	return m.runner.Run(ctx, role, input)
}

// EditLastGenerated replaces the text of role's most recent generated message
// and of the draft that turn produced.
func (m *ScriptMesh) EditLastGenerated(role string, text string) (string, error) {
	out, err := m.editor.EditLastGenerated(role, text)
	m.opts.Metrics.ObserveEdit(role, err)
	return out, err
}

// History returns a copy of role's short-term history. Reading never creates
// a history, so a role nobody has talked to yet returns an empty slice.
func (m *ScriptMesh) History(role string) ([]core.Message, error) {
	r, err := core.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if !m.opts.HistoryStore.Exists(r) {
		return []core.Message{}, nil
	}
	return m.opts.HistoryStore.Get(r)
}

// LongTermMemory returns a copy of role's long-term facts.
func (m *ScriptMesh) LongTermMemory(role string) ([]string, error) {
	r, err := core.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return m.opts.MemoryStore.Get(r)
}

// Draft is a generated output saved by a successful turn.
type Draft struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Drafts returns role's drafts in the order they were produced.
func (m *ScriptMesh) Drafts(role string) ([]Draft, error) {
	r, err := core.ParseRole(role)
	if err != nil {
		return nil, err
	}
	ids, err := m.opts.ArtifactStore.List(r)
	if err != nil {
		return nil, err
	}
	drafts := make([]Draft, 0, len(ids))
	for _, id := range ids {
		data, err := m.opts.ArtifactStore.Get(r, id)
		if err != nil {
			return nil, fmt.Errorf("scriptmesh: loading draft %s of %s: %w", id, r, err)
		}
		drafts = append(drafts, Draft{ID: id, Text: string(data)})
	}
	return drafts, nil
}

// Transcribe converts audio to text with the configured transcriber.
func (m *ScriptMesh) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if m.opts.Transcriber == nil {
		return "", ErrSpeechDisabled
	}
	return m.opts.Transcriber.Transcribe(ctx, audio)
}

// Roles lists the pipeline roles in pipeline order.
func (m *ScriptMesh) Roles() []core.Role { return core.Roles() }

// Upstream returns the roles whose context flows into role.
func (m *ScriptMesh) Upstream(role string) ([]core.Role, error) {
	r, err := core.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return m.opts.Graph.UpstreamOf(r), nil
}
