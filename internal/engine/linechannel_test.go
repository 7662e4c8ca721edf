package engine

import (
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startLineChannel(t *testing.T, scriptBody string) (*LineChannel, *exec.Cmd) {
	t.Helper()

	path := writeScriptedEngine(t, scriptBody)
	cmd := exec.Command(path)

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	return NewLineChannel(stdin, stdout), cmd
}

func TestLineChannel_ReadUntilMatchesPrefix(t *testing.T) {
	lc, cmd := startLineChannel(t, `  case "$line" in
    ping) echo "pong" ;;
  esac`)
	defer cmd.Process.Kill()

	require.NoError(t, lc.Send("ping"))
	lines, err := lc.ReadUntil("pong", 2*time.Second)
	require.NoError(t, err)
	require.Len(t, lines, 1)
}

func TestLineChannel_TimeoutRetainsPartialProgress(t *testing.T) {
	lc, cmd := startLineChannel(t, `  case "$line" in
    ping) echo "ack 1"; echo "ack 2" ;;
  esac`)
	defer cmd.Process.Kill()

	require.NoError(t, lc.Send("ping"))
	lines, err := lc.ReadUntil("pong", 300*time.Millisecond)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTimeout))
	require.Len(t, lines, 2)
}

func TestLineChannel_ClosedChannelReportsChannelClosed(t *testing.T) {
	lc, cmd := startLineChannel(t, `  case "$line" in
    quit) exit 0 ;;
  esac`)
	defer cmd.Process.Kill()

	require.NoError(t, lc.Send("quit"))
	_, err := lc.ReadUntil("pong", 2*time.Second)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrChannelClosed))
}
