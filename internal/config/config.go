// Package config loads the top-level application configuration from a
// config.yaml file plus WHALEGAME_* environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/whalegame/whalegame/internal/game"
)

// App is the full application configuration.
type App struct {
	Game game.Config `mapstructure:"Game"`
	Log  LogConfig   `mapstructure:"Log"`
}

// LogConfig controls the zap logger. The TUI owns the terminal, so logs
// go to a file by default.
type LogConfig struct {
	Level string `mapstructure:"Level"`
	File  string `mapstructure:"File"`
}

// Load reads config.yaml from the given directories, falling back to
// defaults when no file exists. Environment variables of the form
// WHALEGAME_GAME_SEED override file values.
func Load(paths ...string) (App, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("WHALEGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return App{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return App{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if app.Game.SpeedLevel < 0 || app.Game.SpeedLevel > game.MaxSpeedLevel {
		return App{}, fmt.Errorf("config: speed level %d out of range", app.Game.SpeedLevel)
	}
	return app, nil
}

func setDefaults(v *viper.Viper) {
	def := game.DefaultConfig()
	v.SetDefault("Game.Seed", def.Seed)
	v.SetDefault("Game.PlayerName", def.PlayerName)
	v.SetDefault("Game.StartingCash", def.StartingCash)
	v.SetDefault("Game.StartingBank", def.StartingBank)
	v.SetDefault("Game.HistoryCandles", def.HistoryCandles)
	v.SetDefault("Game.SpeedLevel", def.SpeedLevel)
	v.SetDefault("Game.NewsConfig.TapeSize", def.NewsConfig.TapeSize)
	v.SetDefault("Game.NewsConfig.EventBuffer", def.NewsConfig.EventBuffer)
	v.SetDefault("Game.NewsConfig.ExternalEventBuffer", def.NewsConfig.ExternalEventBuffer)
	v.SetDefault("Game.NewsConfig.DropExternalEvents", def.NewsConfig.DropExternalEvents)
	v.SetDefault("Log.Level", "info")
	v.SetDefault("Log.File", "whalegame.log")
}
