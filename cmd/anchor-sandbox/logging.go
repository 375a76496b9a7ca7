package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lixenwraith/marker-anchor/config"
	"github.com/lixenwraith/marker-anchor/diag"
)

// setupLogging opens the configured log destination
// With no file, interactive runs discard logs since the terminal view owns the screen
func setupLogging(cfg config.Log, headless bool) (*slog.Logger, io.Closer, error) {
	level, err := diag.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case cfg.File != "":
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log dir: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return diag.NewLogger(f, level, cfg.Format), f, nil
	case headless:
		return diag.NewLogger(os.Stderr, level, cfg.Format), nil, nil
	default:
		return diag.NewLogger(io.Discard, level, cfg.Format), nil, nil
	}
}
