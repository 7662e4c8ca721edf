// Package facade exposes the five RPC-facing operations described in
// spec.md §4.6. Every operation returns a plain value plus an error
// string suitable for the RPC response's error arm; no internal error
// type or panic ever escapes it.
package facade

import (
	"context"
	"errors"

	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/chessutil"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/engine"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/logging"
)

// Facade wraps the single supervised Engine Instance and the chess-rule
// helpers consumed by the RPC layer. A nil Engine is valid: every
// instance-dependent operation reports it as not ready/not initialized
// rather than panicking.
type Facade struct {
	Engine *engine.Instance
}

// New returns a Facade bound to inst. inst may be nil.
func New(inst *engine.Instance) *Facade {
	return &Facade{Engine: inst}
}

// GetBestMove delegates to the Engine Instance. If no engine has been
// initialized, it returns the literal error string spec.md §4.6 names.
func (f *Facade) GetBestMove(ctx context.Context, fen string, history []string) (string, string) {
	if f.Engine == nil {
		return "", "Engine not initialized"
	}

	move, err := f.Engine.BestMove(ctx, fen, history)
	if err != nil {
		return "", toRPCError(err)
	}
	return move, ""
}

// ValidateMove parses fen and uci and reports legality via the chess
// library. It never calls the engine.
func (f *Facade) ValidateMove(fen, uci string) (bool, string) {
	ok, err := chessutil.ValidateMove(fen, uci)
	if err != nil {
		return false, toRPCError(err)
	}
	return ok, ""
}

// LegalMoves enumerates every legal move from fen in UCI notation.
func (f *Facade) LegalMoves(fen string) ([]string, string) {
	moves, err := chessutil.LegalMoves(fen)
	if err != nil {
		return nil, toRPCError(err)
	}
	return moves, ""
}

// GameStatus classifies fen as in-progress, checkmate, stalemate, or
// drawn, with a winner set only for checkmate.
func (f *Facade) GameStatus(fen string) (status string, winner *string, rpcErr string) {
	status, winner, err := chessutil.GameStatus(fen)
	if err != nil {
		return "", nil, toRPCError(err)
	}
	return status, winner, ""
}

// IsReady reports the engine instance's readiness; a nil engine is
// reported as not ready.
func (f *Facade) IsReady() bool {
	if f.Engine == nil {
		return false
	}
	return f.Engine.IsReady()
}

// toRPCError flattens an internal error into the string carried on the
// RPC response's error arm. Known taxonomy members get a stable,
// caller-actionable message; anything else is logged with context and
// reported generically so internal detail never leaks to callers.
func toRPCError(err error) string {
	switch {
	case errors.Is(err, chessutil.ErrInvalidFEN):
		return "Invalid FEN"
	case errors.Is(err, chessutil.ErrInvalidMove):
		return "Invalid move format"
	case errors.Is(err, engine.ErrNotReady):
		return "Engine not ready"
	case errors.Is(err, engine.ErrTimeout):
		return "Engine timed out"
	case errors.Is(err, engine.ErrChannelClosed), errors.Is(err, engine.ErrEngineExited):
		return "Engine exited unexpectedly"
	case errors.Is(err, engine.ErrProtocolViolation):
		return "Engine protocol violation"
	default:
		logging.Logger.Errorf("unexpected internal error: %v", err)
		return "internal error"
	}
}
