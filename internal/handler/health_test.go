package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/deppfellow/qna-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth_NoDependenciesConfigured(t *testing.T) {
	s := testServer()
	s.Config = &config.Config{
		Primary:       config.Primary{Env: "test"},
		Observability: config.DefaultObservabilityConfig(),
	}

	e := newEcho(s)
	e.GET("/status", NewHealthHandler(s).CheckHealth)

	rec := do(e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Empty(t, body["checks"])
}

func TestServeOpenAPIUI_MissingTemplate(t *testing.T) {
	s := testServer()
	h := NewOpenAPIHandler(s)
	h.templatePath = "does-not-exist.html"

	e := newEcho(s)
	e.GET("/docs", h.ServeOpenAPIUI)

	rec := do(e, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}
