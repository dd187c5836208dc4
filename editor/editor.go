// Package editor implements post-hoc human correction of a role's most recent
// generated message. Edits change the short-term history only; long-term
// memory is never touched.
package editor

import (
	"errors"
	"fmt"

	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/logging"
)

// Options configures an Editor.
type Options struct {
	// ArtifactStore, when set, has the role's latest draft overwritten with
	// the edited text so drafts and history agree.
	ArtifactStore core.ArtifactStore
	Logger        logging.Logger
}

// Editor rewrites generated messages in a core.HistoryStore.
type Editor struct {
	history core.HistoryStore
	drafts  core.ArtifactStore
	logger  logging.Logger
}

// New creates an Editor over history.
func New(history core.HistoryStore, optFns ...func(o *Options)) *Editor {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Editor{history: history, drafts: opts.ArtifactStore, logger: opts.Logger}
}

// EditLastGenerated overwrites the text of the most recent generated message
// of the named role, keeping its position and kind, and returns the new text.
//
// Errors:
//   - core.ErrInvalidSession when role is not a supported role
//   - core.ErrSessionNotFound when the role has no history
//   - core.ErrNoGeneratedMessage when the history holds no generated message
func (e *Editor) EditLastGenerated(role string, text string) (string, error) {
	r, err := core.ParseRole(role)
	if err != nil {
		return "", err
	}
	if !e.history.Exists(r) {
		return "", fmt.Errorf("%w: %s", core.ErrSessionNotFound, r)
	}
	err = e.history.Update(r, func(msgs []core.Message) error {
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].IsGenerated() {
				msgs[i].Text = text
				return nil
			}
		}
		return core.ErrNoGeneratedMessage
	})
	switch {
	case errors.Is(err, core.ErrSessionNotFound), errors.Is(err, core.ErrNoGeneratedMessage):
		return "", fmt.Errorf("%w: %s", err, r)
	case err != nil:
		return "", fmt.Errorf("editor: %w", err)
	}
	e.logger.Info("editor: generated message updated", "role", string(r), "text_len", len(text))
	e.syncDraft(r, text)
	return text, nil
}

// syncDraft overwrites the latest draft of role. A role without drafts (its
// history was seeded outside the runner) is left alone.
func (e *Editor) syncDraft(role core.Role, text string) {
	if e.drafts == nil {
		return
	}
	id, _, err := e.drafts.Latest(role)
	if err != nil {
		e.logger.Debug("editor: no draft to update", "role", string(role), "error", err)
		return
	}
	if err := e.drafts.Save(role, id, []byte(text)); err != nil {
		e.logger.Warn("editor: updating draft failed", "role", string(role), "draft", id, "error", err)
	}
}
