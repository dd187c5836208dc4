// Package openai implements speech.Transcriber with the OpenAI audio
// transcription API (Whisper).
package openai

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hupe1980/scriptmesh/speech"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options configures the transcriber.
type Options struct {
	Model    string
	Language string
	APIKey   string
	BaseURL  string
	// Filename and ContentType describe the uploaded audio.
	Filename    string
	ContentType string
}

// Transcriber calls the OpenAI transcription endpoint.
type Transcriber struct {
	client *openai.Client
	opts   Options
}

// NewTranscriber creates a Transcriber using the official client.
func NewTranscriber(optFns ...func(o *Options)) *Transcriber {
	opts := Options{
		Model:       string(openai.AudioModelWhisper1),
		Language:    "en",
		Filename:    "speech.wav",
		ContentType: "audio/wav",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(clientOpts...)
	return &Transcriber{client: &client, opts: opts}
}

// Transcribe implements speech.Transcriber.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", speech.ErrEmptyAudio
	}
	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), t.opts.Filename, t.opts.ContentType),
		Model: openai.AudioModel(t.opts.Model),
	}
	if t.opts.Language != "" {
		params.Language = openai.String(t.opts.Language)
	}
	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai transcription error: %w", err)
	}
	return resp.Text, nil
}
