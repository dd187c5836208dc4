package core

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind tags the origin of a Message.
type MessageKind string

const (
	// KindUser marks input supplied by a human (typed or transcribed).
	KindUser MessageKind = "user"
	// KindGenerated marks model output, including synthetic inherited lines.
	KindGenerated MessageKind = "generated"
)

// Message is one entry of a role's short-term history. After it is appended
// only the editor may change it, and only the Text of a generated message.
type Message struct {
	ID        string      `json:"id"`
	Kind      MessageKind `json:"kind"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewUserMessage creates a user-authored message.
func NewUserMessage(text string) Message {
	return Message{ID: NewID(), Kind: KindUser, Text: text, Timestamp: time.Now().UTC()}
}

// NewGeneratedMessage creates a generated message.
func NewGeneratedMessage(text string) Message {
	return Message{ID: NewID(), Kind: KindGenerated, Text: text, Timestamp: time.Now().UTC()}
}

// IsGenerated reports whether the message was produced by a model.
func (m Message) IsGenerated() bool { return m.Kind == KindGenerated }

// NewID generates a new unique identifier for messages.
func NewID() string { return uuid.NewString() }
