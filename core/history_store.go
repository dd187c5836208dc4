package core

// HistoryStore keeps the ordered short-term conversational history of each
// role. Histories are created lazily, never pruned and never expire.
//
// Contract:
//   - Get returns a defensive copy, creating an empty history on first access
//   - Append adds all messages under a single lock (all or nothing)
//   - Update runs fn against the live slice under the write lock; it returns
//     ErrSessionNotFound when the role has no history yet
type HistoryStore interface {
	Get(role Role) ([]Message, error)
	Append(role Role, msgs ...Message) error
	Exists(role Role) bool
	Update(role Role, fn func(msgs []Message) error) error
}
