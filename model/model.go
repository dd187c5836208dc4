package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/scriptmesh/core"
)

// ErrEmptyResponse is returned by Collect when a model finishes without text.
var ErrEmptyResponse = errors.New("model returned no content")

// Request captures the normalized model input produced by the runner.
type Request struct {
	Instructions string         `json:"instructions"` // System prompt including long-term memory
	History      []core.Message `json:"history"`      // Composed role history, oldest first
	Input        string         `json:"input"`        // New user input for this turn
	Stream       bool           `json:"stream,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a (partial or final) chunk emitted by a model.
type Response struct {
	ID           string      `json:"id"`
	Partial      bool        `json:"partial"`
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason"`
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "groq", "anthropic", "mock", ...
}

// Model is the minimal interface required by the runner to drive generation.
// Generate returns a response channel and an error channel; both are closed
// when generation ends and the error channel carries at most one error.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// Collect drains a Generate call and returns the final text. When the model
// only streams partial chunks, their concatenation is returned.
func Collect(ctx context.Context, m Model, req Request) (string, *TokenUsage, error) {
	respCh, errCh := m.Generate(ctx, req)
	var (
		partial strings.Builder
		final   *Response
	)
	for respCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()
		case r, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			if r.Partial {
				partial.WriteString(r.Text)
				continue
			}
			final = &r
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return "", nil, err
			}
		}
	}
	if final != nil && final.Text != "" {
		return final.Text, final.Usage, nil
	}
	if partial.Len() > 0 {
		return partial.String(), nil, nil
	}
	return "", nil, ErrEmptyResponse
}

// MockModel is a lightweight in‑memory Model useful for tests & offline runs.
// It answers with a canned response per input, or echoes the input. Calls are
// recorded and can be inspected through Requests.
type MockModel struct {
	info      Info
	mu        sync.Mutex
	responses map[string]string
	err       error
	requests  []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input.
func (m *MockModel) AddResponse(input, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[input] = response
}

// SetError makes every subsequent Generate call fail with err (nil resets).
func (m *MockModel) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns a copy of the requests received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Generate implements Model; emits optional streaming rune chunks then the final response.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	m.mu.Lock()
	hist := make([]core.Message, len(req.History))
	copy(hist, req.History)
	req.History = hist
	m.requests = append(m.requests, req)
	full, failErr := m.responses[req.Input], m.err
	m.mu.Unlock()

	go func() {
		defer close(respCh)
		defer close(errCh)
		if failErr != nil {
			errCh <- failErr
			return
		}
		if req.Input == "" {
			errCh <- fmt.Errorf("no input provided")
			return
		}
		if full == "" {
			full = fmt.Sprintf("Mock response to: %s", req.Input)
		}
		if req.Stream {
			for _, r := range full {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{Partial: true, Text: string(r)}:
				}
			}
		}
		respCh <- Response{Partial: false, Text: full, FinishReason: "stop"}
	}()
	return respCh, errCh
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
