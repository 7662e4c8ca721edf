package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/config"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/engine"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/facade"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/health"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/logging"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/rpcserver"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/shutdown"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "Configuration JSON file")
	enginePath = flag.String("engine", "", "Path to the engine binary (overrides config/discovery)")
	debug      = flag.Bool("debug", false, "Force development-mode logging regardless of environment")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration validation failed: %v\n", err)
		os.Exit(1)
	}
	if *enginePath != "" {
		cfg.EnginePath = *enginePath
	}

	development := *debug || cfg.Environment == string(config.EnvironmentDevelopment)
	if err := logging.InitLoggerAtLevel(development, zapLevelFor(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseLogger()

	logging.Logger.Info("=== Chess Engine Subprocess Supervisor ===")

	coordinator := shutdown.New(engine.Global)
	coordinator.Install()
	defer coordinator.Shutdown()

	desc, err := engine.Resolve(engine.ResolverConfig{
		EnginePath:    cfg.EnginePath,
		EngineName:    cfg.EngineName,
		EngineVersion: cfg.EngineVersion,
		OSTag:         cfg.OSTag,
		BinaryName:    cfg.BinaryName,
	})
	if err != nil {
		logging.Logger.Fatalf("failed to resolve engine binary: %v", err)
	}
	logging.Logger.Infof("using engine binary: %s (source=%s)", desc.Path, desc.Source)

	inst, err := engine.Start(engine.Options{
		BinaryPath:         desc.Path,
		ThinkTimeMS:        cfg.EngineTimeoutMS,
		HandshakeTimeoutMS: 5000,
		HashMB:             cfg.EngineHashMB,
		Threads:            cfg.EngineThreads,
	})
	if err != nil {
		logging.Logger.Fatalf("failed to start engine: %v", err)
	}
	defer inst.Stop()

	svc := facade.New(inst)

	mux := http.NewServeMux()
	health.NewHandler(svc).Register(mux)
	mux.HandleFunc("/ws", rpcserver.New(svc).HandleWebSocket)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logging.Logger.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logging.Logger.Errorf("server error: %v", err)
	}
}

func zapLevelFor(level string) zap.AtomicLevel {
	switch level {
	case "DEBUG":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "WARNING":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "ERROR":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	case "CRITICAL":
		return zap.NewAtomicLevelAt(zap.FatalLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
