package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	app, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if app.Game.PlayerName != "CryptoWhale" {
		t.Errorf("PlayerName = %q", app.Game.PlayerName)
	}
	if app.Game.StartingCash != 10000 {
		t.Errorf("StartingCash = %v", app.Game.StartingCash)
	}
	if app.Log.File != "whalegame.log" {
		t.Errorf("Log.File = %q", app.Log.File)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := `
Game:
  Seed: 42
  PlayerName: Satoshi
  SpeedLevel: 3
Log:
  Level: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	app, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if app.Game.Seed != 42 || app.Game.PlayerName != "Satoshi" || app.Game.SpeedLevel != 3 {
		t.Errorf("game config = %+v", app.Game)
	}
	if app.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", app.Log.Level)
	}
}

func TestLoadRejectsBadSpeedLevel(t *testing.T) {
	dir := t.TempDir()
	yaml := "Game:\n  SpeedLevel: 42\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for out-of-range speed level")
	}
}
