package rpcserver

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/facade"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestDispatch_ValidateMove(t *testing.T) {
	s := New(facade.New(nil))
	req := httptest.NewRequest("GET", "/", nil)

	resp := s.dispatch(req, []byte(`{"op":"validate_move","fen":"`+startFEN+`","uci":"e2e4"}`))

	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Valid)
	assert.True(t, *resp.Valid)
}

func TestDispatch_UnknownOp(t *testing.T) {
	s := New(facade.New(nil))
	req := httptest.NewRequest("GET", "/", nil)

	resp := s.dispatch(req, []byte(`{"op":"nonsense"}`))

	assert.Equal(t, "Unknown operation", resp.Error)
}

func TestDispatch_InvalidJSON(t *testing.T) {
	s := New(facade.New(nil))
	req := httptest.NewRequest("GET", "/", nil)

	resp := s.dispatch(req, []byte(`not json`))

	assert.Equal(t, "Invalid request", resp.Error)
}

func TestDispatch_IsReady(t *testing.T) {
	s := New(facade.New(nil))
	req := httptest.NewRequest("GET", "/", nil)

	resp := s.dispatch(req, []byte(`{"op":"is_ready"}`))

	assert.NotNil(t, resp.Ready)
	assert.False(t, *resp.Ready)
}
