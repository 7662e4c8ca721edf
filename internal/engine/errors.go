package engine

import "errors"

// Error taxonomy for the engine subprocess supervisor. Facade code maps
// these to the RPC error string; callers elsewhere should compare with
// errors.Is rather than matching on text.
var (
	// ErrBinaryNotFound means no candidate engine binary satisfied the
	// resolver's existence-and-executability check. Fatal at startup.
	ErrBinaryNotFound = errors.New("engine binary not found")

	// ErrSpawnFailed means the OS refused to create the child process.
	ErrSpawnFailed = errors.New("failed to spawn engine process")

	// ErrHandshakeFailed means the UCI handshake (uci/uciok, isready/readyok)
	// did not complete. Not automatically retried.
	ErrHandshakeFailed = errors.New("uci handshake failed")

	// ErrNotReady means an operation was attempted against an instance
	// that is not in the Ready state.
	ErrNotReady = errors.New("engine not ready")

	// ErrTimeout means a deadline elapsed while awaiting a named response
	// prefix from the child.
	ErrTimeout = errors.New("timed out waiting for engine response")

	// ErrChannelClosed means the child's stdin/stdout pipe is no longer
	// usable (write failed, or stdout reached EOF).
	ErrChannelClosed = errors.New("engine channel closed")

	// ErrEngineExited means the child process was observed to have exited.
	ErrEngineExited = errors.New("engine process exited")

	// ErrProtocolViolation means a received line did not match the shape
	// the protocol step expected (e.g. no bestmove line, or "(none)").
	ErrProtocolViolation = errors.New("engine protocol violation")
)
