// Package runner implements the session pipeline runner of scriptmesh.
//
// A Runner executes one turn for one role: it validates the role, composes
// the role's context (own history, inherited upstream messages, long-term
// memory summary), invokes the external model and, only when generation
// succeeds, commits the turn to the history store, the long-term memory store
// and the draft store.
//
// # Guarantees
//   - Unknown roles fail with core.ErrInvalidSession before any store is read
//   - A per-role single-slot semaphore, acquired with ctx, is held for the
//     whole compose-invoke-commit sequence
//   - A weighted semaphore bounds concurrent generation calls across roles
//   - Failed generation returns *core.GenerationError and mutates nothing
//   - No automatic retry
//
// See runner.go for the operational implementation details.
package runner
