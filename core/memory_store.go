package core

// MemoryStore keeps a bounded list of condensed facts per role. Record
// derives facts from the user input only; the generated output is accepted so
// richer policies can be plugged in without changing callers.
type MemoryStore interface {
	Get(role Role) ([]string, error)
	Record(role Role, userInput, generatedOutput string) error
}
