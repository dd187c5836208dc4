package testutil

import (
	"github.com/hupe1980/scriptmesh/core"
)

// HistoryBuilder seeds a role's history with fluent chaining for tests.
// Every call appends immediately.
// Example:
//
//	NewHistoryBuilder(store, core.RoleEditor).User("hi").Generated("hello")
type HistoryBuilder struct {
	store core.HistoryStore
	role  core.Role
}

// NewHistoryBuilder creates a builder appending to role's history in store.
func NewHistoryBuilder(store core.HistoryStore, role core.Role) *HistoryBuilder {
	return &HistoryBuilder{store: store, role: role}
}

// User appends a user message (chainable).
func (b *HistoryBuilder) User(text string) *HistoryBuilder {
	return b.Message(core.NewUserMessage(text))
}

// Generated appends a generated message (chainable).
func (b *HistoryBuilder) Generated(text string) *HistoryBuilder {
	return b.Message(core.NewGeneratedMessage(text))
}

// Message appends an arbitrary message (chainable). Append errors panic
// because the builder is only used against in-memory stores.
func (b *HistoryBuilder) Message(m core.Message) *HistoryBuilder {
	if err := b.store.Append(b.role, m); err != nil {
		panic(err)
	}
	return b
}

// Texts returns the texts of msgs in order.
func Texts(msgs []core.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}
