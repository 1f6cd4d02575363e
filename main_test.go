package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vkoval/numrace/game/config"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "numrace server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestFlagDefaults(t *testing.T) {
	// Flags default to zero values so the environment wins unless set.
	if *port != 0 {
		t.Errorf("Expected port flag default 0, got %d", *port)
	}
	if *host != "" {
		t.Errorf("Expected empty host flag default, got %s", *host)
	}
	if *debug {
		t.Error("Debug flag should default to false")
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := &config.Config{Host: "localhost", Port: 8080, LogLevel: "info"}

	origPort, origHost, origDebug := *port, *host, *debug
	defer func() { *port, *host, *debug = origPort, origHost, origDebug }()

	*port = 9000
	*host = "0.0.0.0"
	*debug = true

	applyFlagOverrides(cfg)

	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected host 0.0.0.0, got %s", cfg.Host)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestSetupLogger(t *testing.T) {
	logger := setupLogger(&config.Config{LogLevel: "debug"})
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}

	// Unknown levels fall back to info.
	logger = setupLogger(&config.Config{LogLevel: "nonsense"})
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level fallback, got %s", logger.GetLevel())
	}
}

func TestInitializeServices(t *testing.T) {
	cfg := &config.Config{
		PoolPath:    ":memory:",
		CheckerPath: "./checker",
		SolverPath:  "./solution",
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameService, hub, cleanup, err := initializeServices(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer cleanup()

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
	if hub == nil {
		t.Fatal("Expected hub to be initialized")
	}
}

func TestInitializeServices_InvalidPoolPath(t *testing.T) {
	cfg := &config.Config{
		PoolPath:    "",
		CheckerPath: "./checker",
		SolverPath:  "./solution",
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, _, _, err := initializeServices(ctx, cfg, zerolog.Nop())
	if err == nil {
		t.Error("Expected error for missing pool path")
	}
}

// Note: main(), runHTTPServer(), and runStdioMCP() start servers and block, so
// they are exercised by integration tests against a running process rather
// than unit tests here.
