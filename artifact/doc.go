// Package artifact contains concrete implementations of core.ArtifactStore,
// the store that keeps every draft a role produced so the finished script and
// its intermediate versions can be retrieved after the fact.
//
// Callers should depend on the core interface rather than concrete types so
// they can substitute alternative persistence layers in tests or production.
package artifact
