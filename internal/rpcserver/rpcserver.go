// Package rpcserver is a thin JSON-over-WebSocket binding that dispatches
// to the Service Facade. It stands in for the out-of-scope MCP/SSE
// transport glue (spec.md's Out of scope list) — only so the Facade has
// a caller in the demo binary — following the shape of the teacher's
// WebSocketServer/connection-upgrade handling without its auth, session,
// or raw-UCI-passthrough layers, which have no counterpart in this
// protocol.
package rpcserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/facade"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// request is the single envelope every operation is dispatched through.
type request struct {
	Op      string   `json:"op"`
	FEN     string   `json:"fen,omitempty"`
	UCI     string   `json:"uci,omitempty"`
	History []string `json:"history,omitempty"`
}

// response mirrors spec.md §4.6's "two-arm result": a success payload or
// an error string, never both populated.
type response struct {
	BestMoveUCI string   `json:"best_move_uci,omitempty"`
	Valid       *bool    `json:"valid,omitempty"`
	Moves       []string `json:"moves,omitempty"`
	Status      string   `json:"status,omitempty"`
	Winner      *string  `json:"winner,omitempty"`
	Ready       *bool    `json:"ready,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Server upgrades incoming connections to WebSocket and dispatches each
// received JSON request to the bound Facade.
type Server struct {
	facade *facade.Facade
}

// New returns a Server dispatching to f.
func New(f *facade.Facade) *Server {
	return &Server{facade: f}
}

// HandleWebSocket upgrades the connection and serves requests until the
// client disconnects or a read error occurs.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	remoteAddr := conn.RemoteAddr().String()
	logging.Logger.Infof("new rpc connection from: %s", remoteAddr)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Logger.Warnf("websocket error: %v", err)
			}
			break
		}

		resp := s.dispatch(r, payload)

		out, err := json.Marshal(resp)
		if err != nil {
			logging.Logger.Errorf("failed to marshal response: %v", err)
			break
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			logging.Logger.Errorf("failed to send response: %v", err)
			break
		}
	}

	logging.Logger.Infof("rpc connection closed: %s", remoteAddr)
}

func (s *Server) dispatch(r *http.Request, payload []byte) response {
	var req request
	if err := json.Unmarshal(payload, &req); err != nil {
		return response{Error: "Invalid request"}
	}

	switch req.Op {
	case "get_best_move":
		move, rpcErr := s.facade.GetBestMove(r.Context(), req.FEN, req.History)
		if rpcErr != "" {
			return response{Error: rpcErr}
		}
		return response{BestMoveUCI: move}

	case "validate_move":
		ok, rpcErr := s.facade.ValidateMove(req.FEN, req.UCI)
		if rpcErr != "" {
			return response{Error: rpcErr}
		}
		return response{Valid: &ok}

	case "legal_moves":
		moves, rpcErr := s.facade.LegalMoves(req.FEN)
		if rpcErr != "" {
			return response{Error: rpcErr}
		}
		return response{Moves: moves}

	case "game_status":
		status, winner, rpcErr := s.facade.GameStatus(req.FEN)
		if rpcErr != "" {
			return response{Error: rpcErr}
		}
		return response{Status: status, Winner: winner}

	case "is_ready":
		ready := s.facade.IsReady()
		return response{Ready: &ready}

	default:
		return response{Error: "Unknown operation"}
	}
}
