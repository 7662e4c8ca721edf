package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/logging"
)

// Source identifies which policy step produced a resolved binary path.
type Source string

const (
	SourceConfigured Source = "configured"
	SourceSystem     Source = "system"
	SourceFallback   Source = "fallback"
)

// PathDescriptor is a resolved engine binary path plus the policy step
// that produced it. Used only for diagnostic logging.
type PathDescriptor struct {
	Path   string
	Source Source
}

// ResolverConfig carries the inputs the Binary Resolver's ordered policy
// consumes (spec.md §4.1).
type ResolverConfig struct {
	// EnginePath, if non-empty, is tried first (step 1).
	EnginePath string

	// EngineName, EngineVersion, OSTag, BinaryName feed the fallback
	// construction in step 3. BinaryName also names the executable looked
	// for under the conventional system locations in step 2.
	EngineName    string
	EngineVersion string
	OSTag         string
	BinaryName    string
}

// systemCandidateDirs are the conventional system locations tried, in
// order, during step 2.
var systemCandidateDirs = []string{
	"/usr/games",
	"/usr/bin",
	"/usr/local/bin",
}

// osTagMapping maps a Go GOOS value to the os_tag vocabulary spec.md §4.1
// uses for fallback-path construction.
var osTagMapping = map[string]string{
	"darwin":  "macos",
	"linux":   "linux",
	"windows": "windows",
}

// Resolve runs the ordered binary-resolution policy: an explicit
// configured path, then a fixed list of system locations, then a
// constructed fallback path. The first candidate that exists and is
// executable wins. A step-1 path that is configured but invalid does not
// fail resolution outright; it falls through to steps 2 and 3.
func Resolve(cfg ResolverConfig) (PathDescriptor, error) {
	binaryName := cfg.BinaryName
	if binaryName == "" {
		binaryName = cfg.EngineName
	}

	var attempted []string

	if cfg.EnginePath != "" {
		attempted = append(attempted, cfg.EnginePath)
		if isExecutableFile(cfg.EnginePath) {
			logging.Logger.Infof("resolved engine binary from configured path: %s", cfg.EnginePath)
			return PathDescriptor{Path: cfg.EnginePath, Source: SourceConfigured}, nil
		}
		logging.Logger.Warnf("configured engine_path %q is not an executable file, falling through", cfg.EnginePath)
	}

	for _, dir := range systemCandidateDirs {
		candidate := filepath.Join(dir, binaryName)
		attempted = append(attempted, candidate)
		if isExecutableFile(candidate) {
			logging.Logger.Infof("resolved engine binary from system path: %s", candidate)
			return PathDescriptor{Path: candidate, Source: SourceSystem}, nil
		}
	}

	osTag := cfg.OSTag
	if osTag == "" {
		mapped, ok := osTagMapping[runtime.GOOS]
		if !ok {
			return PathDescriptor{}, fmt.Errorf("%w: unsupported platform %q (tried: %s)",
				ErrBinaryNotFound, runtime.GOOS, strings.Join(attempted, ", "))
		}
		osTag = mapped
	}

	fallback := filepath.Join("engines", cfg.EngineName, cfg.EngineVersion, osTag, binaryName)
	attempted = append(attempted, fallback)
	if isExecutableFile(fallback) {
		logging.Logger.Infof("resolved engine binary from constructed fallback: %s", fallback)
		return PathDescriptor{Path: fallback, Source: SourceFallback}, nil
	}

	return PathDescriptor{}, fmt.Errorf("%w: tried %s", ErrBinaryNotFound, strings.Join(attempted, ", "))
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}
