package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/facade"
)

func TestPing_AlwaysOK(t *testing.T) {
	h := NewHandler(facade.New(nil))
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	h.handlePing(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth_NotReadyWhenEngineNil(t *testing.T) {
	h := NewHandler(facade.New(nil))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.handleHealth(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
