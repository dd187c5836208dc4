// Package memory contains concrete core.MemoryStore implementations: the
// bounded long-term fact log of each role. Import core and depend on
// core.MemoryStore in your code; select an implementation (like the in‑memory
// store below) at wiring time.
package memory
