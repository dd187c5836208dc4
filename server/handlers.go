package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hupe1980/scriptmesh"
	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/speech"
)

type chatRequest struct {
	UserMessage string `json:"user_message"`
}

type editRequest struct {
	SectionID      string `json:"section_id"`
	UpdatedMessage string `json:"updated_message"`
}

type speechRequest struct {
	AudioData string `json:"audio_data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type roleJSON struct {
	Name     string   `json:"name"`
	Upstream []string `json:"upstream"`
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) handleRoles() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		roles := s.mesh.Roles()
		out := make([]roleJSON, 0, len(roles))
		for _, role := range roles {
			up, err := s.mesh.Upstream(string(role))
			if err != nil {
				s.writeError(w, err)
				return
			}
			names := make([]string, len(up))
			for i, u := range up {
				names[i] = string(u)
			}
			out = append(out, roleJSON{Name: string(role), Upstream: names})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := chi.URLParam(r, "role")

		var req chatRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
			return
		}
		if strings.TrimSpace(req.UserMessage) == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "user_message is required"})
			return
		}

		out, err := s.mesh.Run(r.Context(), role, req.UserMessage)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: out})
	}
}

func (s *Server) handleEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req editRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
			return
		}

		out, err := s.mesh.EditLastGenerated(req.SectionID, req.UpdatedMessage)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Message updated to: " + out})
	}
}

func (s *Server) handleSpeech() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req speechRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
			return
		}
		audio, err := speech.DecodeBase64(req.AudioData)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
			return
		}

		text, err := s.mesh.Transcribe(r.Context(), audio)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"text": text})
	}
}

func (s *Server) handleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := s.mesh.History(chi.URLParam(r, "role"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

func (s *Server) handleMemory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facts, err := s.mesh.LongTermMemory(chi.URLParam(r, "role"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string][]string{"facts": facts})
	}
}

func (s *Server) handleDrafts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drafts, err := s.mesh.Drafts(chi.URLParam(r, "role"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, drafts)
	}
}

// writeError maps domain errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidSession):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrNoGeneratedMessage):
		status = http.StatusConflict
	case errors.Is(err, core.ErrGenerationFailure):
		status = http.StatusBadGateway
	case errors.Is(err, scriptmesh.ErrSpeechDisabled):
		status = http.StatusNotImplemented
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("server: request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
