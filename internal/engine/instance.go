package engine

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/logging"
)

// State is the lifecycle state of an Instance, mirroring spec.md §4.3's
// state machine (Starting/Ready/Busy/Stopping/Stopped collapsed to the
// subset observable from outside the per-instance lock).
type State int

const (
	StateNew State = iota
	StateReady
	StateBusy
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateReady:
		return "ready"
	case StateBusy:
		return "busy"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options configures a single engine subprocess (spec.md §4.3).
type Options struct {
	BinaryPath string
	Args       []string

	// ThinkTimeMS is T in spec.md §4.3 step 4: the fixed per-move
	// thinking-time budget sent as "go movetime <T>".
	ThinkTimeMS int

	// HandshakeTimeoutMS bounds the uci/uciok and isready/readyok waits.
	HandshakeTimeoutMS int

	// HashMB and Threads are applied via setoption during the handshake
	// when non-zero, folding Stockfish-style tuning into the single
	// engine instance rather than a dedicated front-end.
	HashMB  int
	Threads int
}

// Instance supervises one engine subprocess across its UCI handshake,
// request/response cycle, and shutdown. It is safe for concurrent use by
// multiple goroutines issuing requests serially against the same
// instance; BestMove/etc. take an internal lock so only one UCI exchange
// is in flight at a time, matching the protocol's single-conversation
// nature.
type Instance struct {
	opts Options

	cmd *exec.Cmd
	lc  *LineChannel

	mu    sync.Mutex
	state State

	waitErrCh chan error
}

// Start spawns the subprocess and performs the UCI handshake (uci/uciok,
// optional setoption calls, isready/readyok). On any failure the process
// is killed and an error wrapping ErrSpawnFailed or ErrHandshakeFailed is
// returned.
func Start(opts Options) (*Instance, error) {
	cmd := exec.Command(opts.BinaryPath, opts.Args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	inst := &Instance{
		opts:      opts,
		cmd:       cmd,
		lc:        NewLineChannel(stdin, stdout),
		state:     StateNew,
		waitErrCh: make(chan error, 1),
	}

	go func() {
		inst.waitErrCh <- cmd.Wait()
	}()

	if err := inst.handshake(); err != nil {
		inst.killAndWait()
		return nil, err
	}

	inst.mu.Lock()
	inst.state = StateReady
	inst.mu.Unlock()

	Global.Register(inst)

	logging.Logger.Infof("engine instance ready: pid=%d binary=%s", cmd.Process.Pid, opts.BinaryPath)
	return inst, nil
}

// handshakeTimeout returns the deadline used for the uci/uciok and
// isready/readyok exchanges: HandshakeTimeoutMS, or 5s when it is unset.
func (inst *Instance) handshakeTimeout() time.Duration {
	ms := inst.opts.HandshakeTimeoutMS
	if ms <= 0 {
		ms = 5000
	}
	return time.Duration(ms) * time.Millisecond
}

func (inst *Instance) handshake() error {
	deadline := inst.handshakeTimeout()

	if err := inst.lc.Send("uci"); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}
	if _, err := inst.lc.ReadUntil("uciok", deadline); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	if inst.opts.HashMB > 0 {
		if err := inst.lc.Send("setoption name Hash value " + strconv.Itoa(inst.opts.HashMB)); err != nil {
			return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
		}
	}
	if inst.opts.Threads > 0 {
		if err := inst.lc.Send("setoption name Threads value " + strconv.Itoa(inst.opts.Threads)); err != nil {
			return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
		}
	}

	if err := inst.lc.Send("isready"); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}
	if _, err := inst.lc.ReadUntil("readyok", deadline); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	return nil
}

// BestMove runs spec.md §4.3's best_move protocol: compose "position fen
// ... [moves ...]", send "go movetime <T>" with T the configured
// thinking-time budget, and read until a "bestmove" line arrives within
// T plus a handshake margin (at least 5s). On Timeout or ChannelClosed
// the instance transitions to Stopped and is not automatically
// respawned; the caller must start a fresh instance to retry.
func (inst *Instance) BestMove(ctx context.Context, fen string, moves []string) (string, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.state != StateReady {
		return "", ErrNotReady
	}
	inst.state = StateBusy

	move, err := inst.bestMoveLocked(fen, moves)
	if err != nil {
		if errors.Is(err, ErrTimeout) || errors.Is(err, ErrChannelClosed) {
			inst.state = StateStopped
			Global.Unregister(inst)
			go inst.killAndWait()
			return "", err
		}
		inst.state = StateReady
		return "", err
	}

	inst.state = StateReady
	return move, nil
}

func (inst *Instance) bestMoveLocked(fen string, moves []string) (string, error) {
	posCmd := "position fen " + fen
	if len(moves) > 0 {
		posCmd += " moves " + strings.Join(moves, " ")
	}
	if err := inst.lc.Send(posCmd); err != nil {
		return "", err
	}

	thinkTimeMS := inst.opts.ThinkTimeMS
	if thinkTimeMS <= 0 {
		thinkTimeMS = 3000
	}
	if err := inst.lc.Send("go movetime " + strconv.Itoa(thinkTimeMS)); err != nil {
		return "", err
	}

	margin := 2 * time.Second
	timeout := time.Duration(thinkTimeMS)*time.Millisecond + margin
	if timeout < 5*time.Second {
		timeout = 5 * time.Second
	}

	lines, err := inst.lc.ReadUntil("bestmove", timeout)
	if err != nil {
		if errors.Is(err, ErrChannelClosed) {
			return "", fmt.Errorf("%w: %w: no best move found in engine response", ErrProtocolViolation, ErrChannelClosed)
		}
		return "", err
	}

	for i := len(lines) - 1; i >= 0; i-- {
		fields := strings.Fields(lines[i])
		if len(fields) >= 2 && fields[0] == "bestmove" {
			if fields[1] == "(none)" {
				return "", fmt.Errorf("%w: no legal move from given position", ErrProtocolViolation)
			}
			return fields[1], nil
		}
	}
	return "", fmt.Errorf("%w: no bestmove line received", ErrProtocolViolation)
}

// IsReady reports whether the instance completed its handshake and has
// not been stopped.
func (inst *Instance) IsReady() bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.state == StateReady
}

// Stop implements spec.md §4.3's shutdown discipline: send "quit" and
// wait up to 5s, escalate to a termination request and wait up to 1s,
// then force-kill. Every cleanup error is logged and swallowed; Stop
// never returns an error and is safe to call more than once.
func (inst *Instance) Stop() {
	inst.mu.Lock()
	if inst.state == StateStopped {
		inst.mu.Unlock()
		return
	}
	inst.state = StateStopped
	inst.mu.Unlock()

	Global.Unregister(inst)

	_ = inst.lc.Send("quit")
	_ = inst.lc.CloseStdin()

	select {
	case <-inst.waitErrCh:
		return
	case <-time.After(5 * time.Second):
	}

	if inst.cmd.Process != nil {
		logging.Logger.Warnf("engine pid=%d did not exit after quit, sending terminate", inst.cmd.Process.Pid)
		if err := inst.cmd.Process.Signal(syscall.SIGTERM); err != nil {
			logging.Logger.Warnf("failed to signal engine pid=%d: %v", inst.cmd.Process.Pid, err)
		}
	}

	select {
	case <-inst.waitErrCh:
		return
	case <-time.After(1 * time.Second):
	}

	inst.killAndWait()
}

func (inst *Instance) killAndWait() {
	if inst.cmd.Process != nil {
		logging.Logger.Warnf("engine pid=%d still alive, force-killing", inst.cmd.Process.Pid)
		if err := inst.cmd.Process.Kill(); err != nil {
			logging.Logger.Warnf("failed to kill engine pid=%d: %v", inst.cmd.Process.Pid, err)
		}
	}
	select {
	case <-inst.waitErrCh:
	case <-time.After(2 * time.Second):
		logging.Logger.Warnf("engine pid=%d did not report exit after kill", inst.cmd.Process.Pid)
	}
}
