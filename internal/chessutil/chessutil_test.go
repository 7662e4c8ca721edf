package chessutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestValidateMove_LegalMove(t *testing.T) {
	ok, err := ValidateMove(startFEN, "e2e4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateMove_MalformedUCI(t *testing.T) {
	_, err := ValidateMove(startFEN, "e2e9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidMove))
}

func TestValidateMove_IllegalButWellFormed(t *testing.T) {
	ok, err := ValidateMove(startFEN, "e1e2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateMove_InvalidFEN(t *testing.T) {
	_, err := ValidateMove("not-a-fen", "e2e4")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFEN))
}

func TestLegalMoves_FoolsMate(t *testing.T) {
	fen := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 1"
	moves, err := LegalMoves(fen)
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestGameStatus_Checkmate(t *testing.T) {
	fen := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 1"
	status, winner, err := GameStatus(fen)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckmate, status)
	require.NotNil(t, winner)
	assert.Equal(t, WinnerBlack, *winner)
}

func TestGameStatus_Stalemate(t *testing.T) {
	fen := "k7/8/1Q6/8/8/8/8/K7 b - - 0 1"
	status, winner, err := GameStatus(fen)
	require.NoError(t, err)
	assert.Equal(t, StatusStalemate, status)
	assert.Nil(t, winner)
}

func TestGameStatus_Draw(t *testing.T) {
	fen := "8/8/8/8/8/8/8/k1K5 w - - 0 1"
	status, winner, err := GameStatus(fen)
	require.NoError(t, err)
	assert.Equal(t, StatusDraw, status)
	assert.Nil(t, winner)
}

func TestGameStatus_InProgress(t *testing.T) {
	status, winner, err := GameStatus(startFEN)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)
	assert.Nil(t, winner)
}
