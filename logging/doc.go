// Package logging provides a minimal logging interface and adapters for scriptmesh.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the runner, composer, graph loader and HTTP server use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - MeshLogger with component / role context and operation timers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	mesh := scriptmesh.New(model, func(o *scriptmesh.Options) { o.Logger = logger })
package logging
