// Package composer builds the context handed to a role right before it is
// invoked: the role's own history extended with the last message of each
// upstream role, and a long-term memory summary that concatenates the role's
// facts with those of its upstream roles.
package composer

import (
	"fmt"
	"strings"

	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/logging"
	"github.com/hupe1980/scriptmesh/pipeline"
)

// InheritedPrefix starts every synthetic inherited message and every
// inherited summary block.
const InheritedPrefix = "Inherited from "

// Composition is the context produced for a single turn.
type Composition struct {
	// History is the stored history followed by Inherited.
	History []core.Message
	// Inherited holds the synthetic messages created for this turn. The runner
	// appends them to the stored history when the turn commits.
	Inherited []core.Message
	// Summary is the long-term memory text block; empty when no facts exist.
	Summary string
}

// Options configures a Composer.
type Options struct {
	Logger logging.Logger
}

// Composer owns no state; it reads the two stores and the graph.
type Composer struct {
	history core.HistoryStore
	memory  core.MemoryStore
	graph   *pipeline.Graph
	logger  logging.Logger
}

// New creates a Composer over the given stores and graph.
func New(history core.HistoryStore, memory core.MemoryStore, graph *pipeline.Graph, optFns ...func(o *Options)) *Composer {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Composer{history: history, memory: memory, graph: graph, logger: opts.Logger}
}

// Compose builds the history and summary for role without mutating any store
// beyond the lazy creation of the role's own history.
func (c *Composer) Compose(role core.Role) (Composition, error) {
	own, err := c.history.Get(role)
	if err != nil {
		return Composition{}, fmt.Errorf("composer: history of %s: %w", role, err)
	}
	inherited, err := c.InheritedMessages(role)
	if err != nil {
		return Composition{}, err
	}
	summary, err := c.Summary(role)
	if err != nil {
		return Composition{}, err
	}

	history := make([]core.Message, 0, len(own)+len(inherited))
	history = append(history, own...)
	history = append(history, inherited...)

	c.logger.Debug("composer: context built",
		"role", string(role),
		"history_len", len(history),
		"inherited_count", len(inherited),
		"summary_len", len(summary),
	)
	return Composition{History: history, Inherited: inherited, Summary: summary}, nil
}

// InheritedMessages returns one synthetic generated message per upstream role
// that has at least one message, quoting that role's most recent message.
func (c *Composer) InheritedMessages(role core.Role) ([]core.Message, error) {
	var out []core.Message
	for _, up := range c.graph.UpstreamOf(role) {
		if !c.history.Exists(up) {
			continue
		}
		msgs, err := c.history.Get(up)
		if err != nil {
			return nil, fmt.Errorf("composer: history of %s: %w", up, err)
		}
		if len(msgs) == 0 {
			continue
		}
		last := msgs[len(msgs)-1]
		out = append(out, core.NewGeneratedMessage(InheritedPrefix+string(up)+": "+last.Text))
	}
	return out, nil
}

// Summary joins the role's own facts and one block per upstream role with
// facts, separated by newlines.
func (c *Composer) Summary(role core.Role) (string, error) {
	var blocks []string
	own, err := c.memory.Get(role)
	if err != nil {
		return "", fmt.Errorf("composer: memory of %s: %w", role, err)
	}
	if len(own) > 0 {
		blocks = append(blocks, "Session "+string(role)+" memory: "+joinFacts(own))
	}
	for _, up := range c.graph.UpstreamOf(role) {
		facts, err := c.memory.Get(up)
		if err != nil {
			return "", fmt.Errorf("composer: memory of %s: %w", up, err)
		}
		if len(facts) == 0 {
			continue
		}
		blocks = append(blocks, InheritedPrefix+string(up)+": "+joinFacts(facts))
	}
	return strings.Join(blocks, "\n"), nil
}

func joinFacts(facts []string) string { return strings.Join(facts, ". ") }
