package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/logging"
)

// ErrInvalidGraph is returned by NewGraph for tables that fail validation.
var ErrInvalidGraph = errors.New("invalid inheritance graph")

// Graph is the validated, read-only inheritance graph plus role instructions.
// It is safe for concurrent use because nothing mutates it after NewGraph.
type Graph struct {
	upstream     map[core.Role][]core.Role
	instructions map[core.Role]string
}

// NewGraph validates table and builds a Graph. Every supported role must have
// an entry, every name must be a supported role, and the graph must be
// acyclic once self references are dropped. Dropped self references are
// reported through logger.
func NewGraph(table Table, logger logging.Logger) (*Graph, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	g := &Graph{
		upstream:     make(map[core.Role][]core.Role, len(table)),
		instructions: make(map[core.Role]string, len(table)),
	}
	var errs []error
	for name, entry := range table {
		role, err := core.ParseRole(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("role %q: %w", name, err))
			continue
		}
		ups := make([]core.Role, 0, len(entry.Upstream))
		seen := make(map[core.Role]bool, len(entry.Upstream))
		for _, u := range entry.Upstream {
			up, err := core.ParseRole(u)
			if err != nil {
				errs = append(errs, fmt.Errorf("role %q upstream %q: %w", name, u, err))
				continue
			}
			if up == role {
				logger.Warn("pipeline: ignoring self reference", "role", name)
				continue
			}
			if seen[up] {
				continue
			}
			seen[up] = true
			ups = append(ups, up)
		}
		g.upstream[role] = ups
		g.instructions[role] = strings.TrimSpace(entry.Instruction)
	}
	for _, r := range core.Roles() {
		if _, ok := table[string(r)]; !ok {
			errs = append(errs, fmt.Errorf("role %q has no entry", r))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGraph, errors.Join(errs...))
	}
	if cycle := g.findCycle(); cycle != nil {
		return nil, fmt.Errorf("%w: cycle %s", ErrInvalidGraph, formatCycle(cycle))
	}
	return g, nil
}

// DefaultGraph builds the Graph of DefaultTable.
func DefaultGraph() *Graph {
	g, err := NewGraph(DefaultTable(), nil)
	if err != nil {
		panic(err) // the built-in table is valid by construction
	}
	return g
}

// UpstreamOf returns the ordered upstream roles of role. The slice is a copy
// and is empty (not nil) when the role has no dependencies.
func (g *Graph) UpstreamOf(role core.Role) []core.Role {
	ups := g.upstream[role]
	out := make([]core.Role, len(ups))
	copy(out, ups)
	return out
}

// Instruction returns the system instruction configured for role.
func (g *Graph) Instruction(role core.Role) string {
	return g.instructions[role]
}

// findCycle returns the roles of the first cycle found, or nil.
func (g *Graph) findCycle() []core.Role {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[core.Role]int, len(g.upstream))
	var stack []core.Role
	var visit func(r core.Role) []core.Role
	visit = func(r core.Role) []core.Role {
		state[r] = visiting
		stack = append(stack, r)
		for _, up := range g.upstream[r] {
			switch state[up] {
			case visiting:
				for i, s := range stack {
					if s == up {
						return append(append([]core.Role(nil), stack[i:]...), up)
					}
				}
			case unvisited:
				if c := visit(up); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[r] = done
		return nil
	}
	for _, r := range core.Roles() {
		if state[r] == unvisited {
			if c := visit(r); c != nil {
				return c
			}
		}
	}
	return nil
}

func formatCycle(cycle []core.Role) string {
	names := make([]string, len(cycle))
	for i, r := range cycle {
		names[i] = string(r)
	}
	return strings.Join(names, " -> ")
}
