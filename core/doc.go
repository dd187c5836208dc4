// Package core provides the foundational domain types and contracts used by
// scriptmesh. It defines:
//
//   - Roles (the closed set of expert sessions in the script pipeline)
//   - Messages (user / generated entries of a role's conversational timeline)
//   - HistoryStore and MemoryStore (short-term and long-term memory contracts)
//   - The error taxonomy shared by the runner, editor and transport layers
//
// Concrete stores live in the session and memory packages; orchestration lives
// in composer and runner.
package core
