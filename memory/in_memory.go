package memory

import (
	"sync"
	"unicode/utf8"

	"github.com/hupe1980/scriptmesh/core"
)

const (
	// DefaultMinInputLength is the number of characters a user input must
	// exceed before it is kept as a fact.
	DefaultMinInputLength = 20
	// DefaultMaxFacts caps the facts retained per role.
	DefaultMaxFacts = 5
)

// FactPrefix is prepended to the user input when it is stored as a fact.
const FactPrefix = "User said: "

// Options configures an InMemoryStore.
type Options struct {
	MinInputLength int
	MaxFacts       int
}

// InMemoryStore is a process‑local MemoryStore. Each role owns an ordered
// slice of facts; once the cap is exceeded the oldest facts are evicted first.
// Inputs of MinInputLength characters or fewer are treated as noise.
//
// Concurrency: protected by RWMutex.
type InMemoryStore struct {
	mu             sync.RWMutex
	facts          map[core.Role][]string
	minInputLength int
	maxFacts       int
}

// NewInMemoryStore creates a new in-memory fact store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{
		MinInputLength: DefaultMinInputLength,
		MaxFacts:       DefaultMaxFacts,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxFacts <= 0 {
		opts.MaxFacts = DefaultMaxFacts
	}
	return &InMemoryStore{
		facts:          make(map[core.Role][]string),
		minInputLength: opts.MinInputLength,
		maxFacts:       opts.MaxFacts,
	}
}

// Get returns a copy of the role's facts, oldest first. Never nil.
func (m *InMemoryStore) Get(role core.Role) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	facts := m.facts[role]
	out := make([]string, len(facts))
	copy(out, facts)
	return out, nil
}

// Record stores userInput as a fact when it is long enough, then truncates
// the role's facts to the most recent maxFacts. generatedOutput does not
// influence stored facts.
func (m *InMemoryStore) Record(role core.Role, userInput, _ string) error {
	if utf8.RuneCountInString(userInput) <= m.minInputLength {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	facts := append(m.facts[role], FactPrefix+userInput)
	if over := len(facts) - m.maxFacts; over > 0 {
		facts = append([]string(nil), facts[over:]...)
	}
	m.facts[role] = facts
	return nil
}
