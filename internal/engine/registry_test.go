package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndUnregister(t *testing.T) {
	r := &Registry{}
	path := writeScriptedEngine(t, `  case "$line" in
    uci) echo "uciok" ;;
    isready) echo "readyok" ;;
    quit) exit 0 ;;
  esac`)

	inst, err := Start(Options{BinaryPath: path, ThinkTimeMS: 200})
	require.NoError(t, err)

	r.Register(inst)
	assert.Equal(t, 1, r.Count())

	r.Unregister(inst)
	assert.Equal(t, 0, r.Count())

	inst.Stop()
}

func TestRegistry_UnregisterUnknownIsNoOp(t *testing.T) {
	r := &Registry{}
	path := writeScriptedEngine(t, `  case "$line" in
    uci) echo "uciok" ;;
    isready) echo "readyok" ;;
    quit) exit 0 ;;
  esac`)
	inst, err := Start(Options{BinaryPath: path, ThinkTimeMS: 200})
	require.NoError(t, err)
	defer inst.Stop()

	r.Unregister(inst) // never registered
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_ShutdownAllIsIdempotent(t *testing.T) {
	r := &Registry{}
	path := writeScriptedEngine(t, `  case "$line" in
    uci) echo "uciok" ;;
    isready) echo "readyok" ;;
    quit) exit 0 ;;
  esac`)
	inst, err := Start(Options{BinaryPath: path, ThinkTimeMS: 200})
	require.NoError(t, err)

	r.Register(inst)

	r.ShutdownAll()
	assert.Equal(t, 0, r.Count())

	r.ShutdownAll() // second call finds an empty set
	assert.Equal(t, 0, r.Count())
}
