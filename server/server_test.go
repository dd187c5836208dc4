package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hupe1980/scriptmesh"
	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/metrics"
	"github.com/hupe1980/scriptmesh/model"
	"github.com/hupe1980/scriptmesh/session"
	"github.com/hupe1980/scriptmesh/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ Mesh = (*scriptmesh.ScriptMesh)(nil)

type fixture struct {
	llm     *model.MockModel
	mesh    *scriptmesh.ScriptMesh
	handler http.Handler
}

func newFixture(t *testing.T, optFns ...func(o *Options)) *fixture {
	t.Helper()
	llm := model.NewMockModel("mock", "test")
	mesh := scriptmesh.New(llm, func(o *scriptmesh.Options) {
		o.Transcriber = speech.Func(func(_ context.Context, audio []byte) (string, error) {
			return "heard: " + string(audio), nil
		})
	})
	return &fixture{llm: llm, mesh: mesh, handler: New(mesh, optFns...).Handler()}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rr := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rr)["status"])
}

func TestRoles(t *testing.T) {
	f := newFixture(t)
	rr := f.do(t, http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	roles := decode[[]roleJSON](t, rr)
	require.Len(t, roles, 8)
	assert.Equal(t, "content_strategist", roles[0].Name)
	assert.Empty(t, roles[0].Upstream)
	assert.Equal(t, []string{"technical_writer"}, roles[3].Upstream)
}

func TestChat(t *testing.T) {
	f := newFixture(t)
	f.llm.AddResponse("Draft a radio play about beekeepers", "Act one: the hive")

	rr := f.do(t, http.MethodPost, "/chat/content_strategist", chatRequest{UserMessage: "Draft a radio play about beekeepers"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Act one: the hive", decode[messageResponse](t, rr).Message)

	rr = f.do(t, http.MethodGet, "/sessions/content_strategist/history", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	hist := decode[[]core.Message](t, rr)
	require.Len(t, hist, 2)
	assert.Equal(t, core.KindGenerated, hist[1].Kind)

	rr = f.do(t, http.MethodGet, "/sessions/content_strategist/memory", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"User said: Draft a radio play about beekeepers"}, decode[map[string][]string](t, rr)["facts"])

	rr = f.do(t, http.MethodGet, "/sessions/content_strategist/drafts", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	drafts := decode[[]scriptmesh.Draft](t, rr)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Act one: the hive", drafts[0].Text)
}

func TestChat_Errors(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/chat/ghost_role", chatRequest{UserMessage: "hello there"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[errorResponse](t, rr).Detail, "ghost_role")

	rr = f.do(t, http.MethodPost, "/chat/editor", chatRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPost, "/chat/editor", map[string]string{"unexpected": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	f.llm.SetError(errors.New("upstream timeout"))
	rr = f.do(t, http.MethodPost, "/chat/editor", chatRequest{UserMessage: "polish the ending please"})
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	rr = f.do(t, http.MethodGet, "/sessions/editor/history", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]core.Message](t, rr))
}

func TestEdit(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPut, "/edit-ai-message/", editRequest{SectionID: "editor", UpdatedMessage: "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(t, http.MethodPut, "/edit-ai-message/", editRequest{SectionID: "nope", UpdatedMessage: "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPost, "/chat/editor", chatRequest{UserMessage: "polish the ending please"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, http.MethodPut, "/edit-ai-message/", editRequest{SectionID: "editor", UpdatedMessage: "Final cut"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Message updated to: Final cut", decode[messageResponse](t, rr).Message)

	hist, err := f.mesh.History("editor")
	require.NoError(t, err)
	assert.Equal(t, "Final cut", hist[len(hist)-1].Text)
}

func TestEdit_AfterFailedTurn(t *testing.T) {
	f := newFixture(t)
	f.llm.SetError(errors.New("boom"))
	rr := f.do(t, http.MethodPost, "/chat/editor", chatRequest{UserMessage: "polish the ending please"})
	require.Equal(t, http.StatusBadGateway, rr.Code)

	// The failed turn opened the session but stored no messages.
	rr = f.do(t, http.MethodPut, "/edit-ai-message/", editRequest{SectionID: "editor", UpdatedMessage: "x"})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestEdit_NoGeneratedMessage(t *testing.T) {
	history := session.NewInMemoryStore()
	require.NoError(t, history.Append(core.RoleEditor, core.NewUserMessage("only a question so far")))
	mesh := scriptmesh.New(model.NewMockModel("mock", "test"), func(o *scriptmesh.Options) {
		o.HistoryStore = history
	})
	h := New(mesh).Handler()

	body := strings.NewReader(`{"section_id":"editor","updated_message":"x"}`)
	req := httptest.NewRequest(http.MethodPut, "/edit-ai-message/", body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)

	msgs, err := history.Get(core.RoleEditor)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "only a question so far", msgs[0].Text)
}

func TestSpeech(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/speech-input/", speechRequest{AudioData: base64.StdEncoding.EncodeToString([]byte("wav"))})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "heard: wav", decode[map[string]string](t, rr)["text"])

	rr = f.do(t, http.MethodPost, "/speech-input/", speechRequest{AudioData: "%%%"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSpeech_Disabled(t *testing.T) {
	mesh := scriptmesh.New(model.NewMockModel("mock", "test"))
	h := New(mesh).Handler()

	body := strings.NewReader(`{"audio_data":"` + base64.StdEncoding.EncodeToString([]byte("wav")) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/speech-input/", body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotImplemented, rr.Code)
}

func TestCORS(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.AllowedOrigins = []string{"http://localhost:3000"} })

	req := httptest.NewRequest(http.MethodOptions, "/chat/editor", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Less(t, rr.Code, 300)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, "Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	col := metrics.NewCollector()
	f := newFixture(t, func(o *Options) { o.Metrics = col })
	rr := f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	f = newFixture(t)
	rr = f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	mesh := scriptmesh.New(model.NewMockModel("mock", "test"))
	srv := New(mesh)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)
}
