// Package chessutil wraps github.com/notnil/chess with the narrow set of
// operations the Service Facade needs: FEN parsing, UCI move validation,
// legal-move enumeration, and terminal-state classification.
package chessutil

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/notnil/chess"
)

// ErrInvalidFEN is returned when a FEN string cannot be parsed.
var ErrInvalidFEN = errors.New("invalid FEN")

// ErrInvalidMove is returned when a UCI move string is not well-formed
// (wrong shape, not a legality check).
var ErrInvalidMove = errors.New("invalid move format")

// uciShape matches a syntactically well-formed UCI move: two squares and
// an optional promotion piece letter, e.g. "e2e4" or "e7e8q".
var uciShape = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbnQRBN]?$`)

func gameFromFEN(fen string) (*chess.Game, error) {
	fenFn, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return chess.NewGame(fenFn), nil
}

// ValidateMove reports whether uci is both syntactically well-formed and
// legal in the position described by fen. An invalid FEN or malformed
// UCI string is an error; an otherwise well-formed but illegal move
// returns (false, nil), not an error.
func ValidateMove(fen, uci string) (bool, error) {
	if !uciShape.MatchString(uci) {
		return false, fmt.Errorf("%w: %q", ErrInvalidMove, uci)
	}

	game, err := gameFromFEN(fen)
	if err != nil {
		return false, err
	}

	for _, move := range game.ValidMoves() {
		if move.String() == uci {
			return true, nil
		}
	}
	return false, nil
}

// LegalMoves returns every legal move from the position described by fen,
// encoded in UCI notation.
func LegalMoves(fen string) ([]string, error) {
	game, err := gameFromFEN(fen)
	if err != nil {
		return nil, err
	}

	moves := game.ValidMoves()
	uciMoves := make([]string, 0, len(moves))
	for _, move := range moves {
		uciMoves = append(uciMoves, move.String())
	}
	return uciMoves, nil
}

// Status values returned by GameStatus.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCheckmate  = "CHECKMATE"
	StatusStalemate  = "STALEMATE"
	StatusDraw       = "DRAW"
)

// Winner values returned alongside StatusCheckmate.
const (
	WinnerWhite = "WHITE"
	WinnerBlack = "BLACK"
)

// GameStatus classifies the position described by fen as in-progress,
// checkmate, stalemate, or drawn. winner is non-nil only for checkmate,
// and names the side that delivered it — the side NOT to move in the
// mated position, not the side to move.
func GameStatus(fen string) (status string, winner *string, err error) {
	game, err := gameFromFEN(fen)
	if err != nil {
		return "", nil, err
	}

	outcome := game.Outcome()
	if outcome == chess.NoOutcome {
		return StatusInProgress, nil, nil
	}

	switch game.Method() {
	case chess.Checkmate:
		mated := game.Position().Turn()
		var w string
		if mated == chess.White {
			w = WinnerBlack
		} else {
			w = WinnerWhite
		}
		return StatusCheckmate, &w, nil
	case chess.Stalemate:
		return StatusStalemate, nil, nil
	default:
		// Insufficient material and every other draw method (fifty-move,
		// threefold repetition) are all reported as DRAW.
		return StatusDraw, nil, nil
	}
}
