// Package session houses concrete implementations of core.HistoryStore, the
// short-term conversational timeline of each role. The interface lives in the
// core package so the composer, runner and editor never depend on a concrete
// backend; only the wiring layer decides which implementation to instantiate.
package session
