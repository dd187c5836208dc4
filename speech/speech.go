// Package speech defines the speech-to-text collaborator. Transcribed text is
// fed to the runner as ordinary user input; nothing here touches the memory
// stores.
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyAudio is returned when no audio bytes were supplied.
var ErrEmptyAudio = errors.New("speech: empty audio")

// Transcriber converts encoded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Func adapts an ordinary function to the Transcriber interface.
type Func func(ctx context.Context, audio []byte) (string, error)

// Transcribe implements Transcriber.
func (f Func) Transcribe(ctx context.Context, audio []byte) (string, error) { return f(ctx, audio) }

// DecodeBase64 decodes the base64 audio payload accepted by the transport,
// tolerating a data URL prefix ("data:audio/wav;base64,").
func DecodeBase64(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if i := strings.Index(payload, ";base64,"); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+len(";base64,"):]
	}
	if payload == "" {
		return nil, ErrEmptyAudio
	}
	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("speech: decoding audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}
	return audio, nil
}
