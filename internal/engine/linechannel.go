package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/logging"
)

// LineChannel adapts a child process's stdin (writer) and stdout (reader)
// into a send-line / read-until-prefix API with deadlines and
// process-liveness checks. It never blocks the caller past the requested
// deadline: a dedicated goroutine drains stdout into an in-memory buffer,
// and ReadUntil waits on that buffer via a broadcast channel that is
// recreated every time new data arrives, so a select with a timer can
// always detect either progress or timeout (spec.md §4.2 and §9's
// deadline-bounded-polling design note).
type LineChannel struct {
	stdin io.WriteCloser

	writeMu sync.Mutex

	mu     sync.Mutex
	buf    []string
	cursor int
	closed bool
	wake   chan struct{}
}

// NewLineChannel starts the background reader and returns a ready channel.
// stdout is consumed for the lifetime of the channel; the caller retains
// ownership of stdin for closing it during shutdown.
func NewLineChannel(stdin io.WriteCloser, stdout io.ReadCloser) *LineChannel {
	lc := &LineChannel{
		stdin: stdin,
		wake:  make(chan struct{}),
	}
	go lc.readLoop(stdout)
	return lc
}

func (lc *LineChannel) readLoop(stdout io.ReadCloser) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		logging.Logger.Debugf("engine output: %s", line)
		lc.appendLine(line)
	}
	lc.markClosed()
}

func (lc *LineChannel) appendLine(line string) {
	lc.mu.Lock()
	lc.buf = append(lc.buf, line)
	old := lc.wake
	lc.wake = make(chan struct{})
	close(old)
	lc.mu.Unlock()
}

func (lc *LineChannel) markClosed() {
	lc.mu.Lock()
	lc.closed = true
	old := lc.wake
	lc.wake = make(chan struct{})
	close(old)
	lc.mu.Unlock()
}

// Send writes command followed by a single newline and flushes. It fails
// with ErrChannelClosed if the write pipe is broken or already closed.
func (lc *LineChannel) Send(command string) error {
	lc.writeMu.Lock()
	defer lc.writeMu.Unlock()

	logging.Logger.Debugf("sending to engine: %s", command)
	if _, err := fmt.Fprintf(lc.stdin, "%s\n", command); err != nil {
		return fmt.Errorf("%w: %v", ErrChannelClosed, err)
	}
	return nil
}

// ReadUntil reads whole lines from the child's stdout and returns every
// line read up to and including the first line whose trimmed form starts
// with prefix. Every accumulated line is retained for the caller, including
// on timeout: the returned slice holds partial progress even when the
// error is non-nil.
func (lc *LineChannel) ReadUntil(prefix string, timeout time.Duration) ([]string, error) {
	deadline := time.Now().Add(timeout)

	var collected []string
	for {
		lc.mu.Lock()
		for lc.cursor < len(lc.buf) {
			line := lc.buf[lc.cursor]
			lc.cursor++
			collected = append(collected, line)
			if strings.HasPrefix(strings.TrimSpace(line), prefix) {
				lc.mu.Unlock()
				return collected, nil
			}
		}
		if lc.closed {
			lc.mu.Unlock()
			return collected, ErrChannelClosed
		}
		w := lc.wake
		lc.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return collected, ErrTimeout
		}

		select {
		case <-w:
			// new data, or closure; loop around to re-check.
		case <-time.After(remaining):
			return collected, ErrTimeout
		}
	}
}

// CloseStdin closes the write side of the channel so the child observes
// EOF on its stdin. Safe to call multiple times.
func (lc *LineChannel) CloseStdin() error {
	lc.writeMu.Lock()
	defer lc.writeMu.Unlock()
	return lc.stdin.Close()
}
