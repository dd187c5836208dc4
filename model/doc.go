// Package model defines the provider‑agnostic generation contract consumed by
// the scriptmesh runner and concrete helpers for interacting with language
// models.
//
// Core goals:
//   - Unify streaming + non‑streaming generation behind a single interface
//   - Keep request/response shapes minimal: instructions, role history and
//     the new input in, text out
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI and compatible endpoints, Anthropic) implement Model in
// sub-packages so the runner stays decoupled from vendor SDKs.
package model
