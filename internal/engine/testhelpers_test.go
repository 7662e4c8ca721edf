package engine

import (
	"os"
	"path/filepath"
	"testing"
)

// writeScriptedEngine writes a tiny shell script standing in for a real
// UCI engine, exercised as a real subprocess rather than a mocked
// exec.Cmd (mirroring the integration style the original Python suite
// uses for its engine_wrapper tests). body is inserted into a read loop
// over stdin; each case should echo whatever UCI response the test
// needs.
func writeScriptedEngine(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-engine.sh")
	script := "#!/bin/sh\nwhile IFS= read -r line; do\n" + body + "\ndone\n"

	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write scripted engine: %v", err)
	}
	return path
}
