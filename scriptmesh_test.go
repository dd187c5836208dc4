package scriptmesh

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/metrics"
	"github.com/hupe1980/scriptmesh/model"
	"github.com/hupe1980/scriptmesh/speech"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptMesh_RunAndInspect(t *testing.T) {
	llm := model.NewMockModel("mock", "test")
	llm.AddResponse("Write a script about a night train to Vienna", "Outline: night train")
	m := New(llm)

	out, err := m.Run(context.Background(), "content_strategist", "Write a script about a night train to Vienna")
	require.NoError(t, err)
	assert.Equal(t, "Outline: night train", out)

	hist, err := m.History("content_strategist")
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, core.KindUser, hist[0].Kind)
	assert.Equal(t, core.KindGenerated, hist[1].Kind)

	facts, err := m.LongTermMemory("content_strategist")
	require.NoError(t, err)
	assert.Equal(t, []string{"User said: Write a script about a night train to Vienna"}, facts)

	drafts, err := m.Drafts("content_strategist")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Outline: night train", drafts[0].Text)
}

func TestScriptMesh_HistoryDoesNotCreateSession(t *testing.T) {
	m := New(model.NewMockModel("mock", "test"))

	hist, err := m.History("editor")
	require.NoError(t, err)
	assert.Empty(t, hist)

	_, err = m.EditLastGenerated("editor", "x")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestScriptMesh_EditRecordsMetrics(t *testing.T) {
	col := metrics.NewCollector()
	m := New(model.NewMockModel("mock", "test"), func(o *Options) { o.Metrics = col })

	_, err := m.Run(context.Background(), "editor", "tighten the second act dialogue")
	require.NoError(t, err)

	out, err := m.EditLastGenerated("editor", "Final")
	require.NoError(t, err)
	assert.Equal(t, "Final", out)

	_, err = m.EditLastGenerated("ghost_role", "x")
	assert.ErrorIs(t, err, core.ErrInvalidSession)

	hist, err := m.History("editor")
	require.NoError(t, err)
	assert.Equal(t, "Final", hist[len(hist)-1].Text)

	drafts, err := m.Drafts("editor")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Final", drafts[0].Text)

	assert.Equal(t, 1, testutil.CollectAndCount(col.Registry(), "scriptmesh_turns_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(col.Registry(), "scriptmesh_edits_total"))
}

func TestScriptMesh_InvalidRole(t *testing.T) {
	m := New(model.NewMockModel("mock", "test"))

	_, err := m.Run(context.Background(), "ghost_role", "anything at all really")
	assert.ErrorIs(t, err, core.ErrInvalidSession)
	_, err = m.History("ghost_role")
	assert.ErrorIs(t, err, core.ErrInvalidSession)
	_, err = m.LongTermMemory("ghost_role")
	assert.ErrorIs(t, err, core.ErrInvalidSession)
	_, err = m.Drafts("ghost_role")
	assert.ErrorIs(t, err, core.ErrInvalidSession)
	_, err = m.Upstream("ghost_role")
	assert.ErrorIs(t, err, core.ErrInvalidSession)
}

func TestScriptMesh_Upstream(t *testing.T) {
	m := New(model.NewMockModel("mock", "test"))

	up, err := m.Upstream("technical_writer")
	require.NoError(t, err)
	assert.Equal(t, []core.Role{core.RoleContentStrategist, core.RoleResearchAssistant}, up)

	up, err = m.Upstream("content_strategist")
	require.NoError(t, err)
	assert.Empty(t, up)

	assert.Len(t, m.Roles(), 8)
}

func TestScriptMesh_Transcribe(t *testing.T) {
	m := New(model.NewMockModel("mock", "test"))
	_, err := m.Transcribe(context.Background(), []byte("audio"))
	assert.ErrorIs(t, err, ErrSpeechDisabled)

	boom := errors.New("boom")
	m = New(model.NewMockModel("mock", "test"), func(o *Options) {
		o.Transcriber = speech.Func(func(_ context.Context, audio []byte) (string, error) {
			if len(audio) == 0 {
				return "", boom
			}
			return "transcribed", nil
		})
	})
	text, err := m.Transcribe(context.Background(), []byte("audio"))
	require.NoError(t, err)
	assert.Equal(t, "transcribed", text)
	_, err = m.Transcribe(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}
