// Package testutil contains helper builders used across tests to reduce
// boilerplate when seeding role histories. The helpers are intentionally
// minimal and not intended for production usage.
package testutil
