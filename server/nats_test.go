package server

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/readyspec/analysis"
)

// The responder's wire behavior is covered without a broker: handle is the
// full request path minus the subscription plumbing.

func newTestResponder(t *testing.T) *Responder {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	engine := analysis.New(nil, nil, logger)
	return NewResponder(nil, engine, nil, "", logger)
}

func TestResponderHandle(t *testing.T) {
	r := newTestResponder(t)

	reply := r.handle([]byte(`{"text":"The system should load fast and handle errors properly"}`))

	var result analysis.Result
	require.NoError(t, json.Unmarshal(reply, &result))
	assert.Equal(t, 67.5, result.ReadinessScore)
	assert.Len(t, result.Issues, 3)
}

func TestResponderHandle_InvalidPayload(t *testing.T) {
	r := newTestResponder(t)

	reply := r.handle([]byte("not json"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(reply, &body))
	assert.Contains(t, body["error"], "invalid request")
}

func TestResponderHandle_EmptyText(t *testing.T) {
	r := newTestResponder(t)

	reply := r.handle([]byte(`{}`))

	var result analysis.Result
	require.NoError(t, json.Unmarshal(reply, &result))
	assert.Equal(t, 100.0, result.ReadinessScore)
}

func TestResponderDefaults(t *testing.T) {
	r := newTestResponder(t)
	assert.Equal(t, DefaultAnalyzeSubject, r.subject)
	assert.NoError(t, r.Close(), "closing before start is a no-op")
}
