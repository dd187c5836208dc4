package core

// ArtifactStore keeps the generated drafts of each role. Implementations
// should be thread-safe and scope artifacts by role. List returns ids in the
// order they were first stored; Latest is the last of them. Save overwrites
// an existing id in place.
type ArtifactStore interface {
	Add(role Role, data []byte) (string, error)
	Save(role Role, artifactID string, data []byte) error
	Get(role Role, artifactID string) ([]byte, error)
	Latest(role Role) (string, []byte, error)
	List(role Role) ([]string, error)
}
