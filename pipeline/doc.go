// Package pipeline holds the static configuration of the script pipeline: the
// instruction prompt of every role and the inheritance graph that decides
// which upstream roles feed their last message and their long-term facts into
// a role before it runs.
//
// The configuration is a Table. DefaultTable returns the built-in pipeline;
// LoadTable overlays a YAML file on top of it. NewGraph validates a Table once
// at startup (exhaustive role coverage, no unknown roles, no cycles) and the
// resulting Graph is read-only afterwards.
package pipeline
