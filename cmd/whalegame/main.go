package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/whalegame/whalegame/internal/config"
	"github.com/whalegame/whalegame/internal/game"
	"github.com/whalegame/whalegame/tui"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	app, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(app.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	g := game.NewGame(app.Game, logger)
	logger.Info("game seeded",
		zap.Int64("seed", app.Game.Seed),
		zap.String("player", app.Game.PlayerName))

	program := tea.NewProgram(tui.NewModel(g), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		log.Fatalf("run: %v", err)
	}
}

// buildLogger writes structured logs to a file; the TUI owns stdout.
func buildLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.TimeKey = "time"
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	return zc.Build()
}
