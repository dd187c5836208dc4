package artifact

import "fmt"

var (
	// ErrNotFound is returned when an draft for the given role / id pair
	// does not exist in the underlying store.
	ErrNotFound = fmt.Errorf("artifact not found")
)
