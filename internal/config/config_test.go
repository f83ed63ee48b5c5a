package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the config and cache dirs at a temp dir and clears every
// override so the developer's own environment can't leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, key := range []string{EnvModel, EnvHistoryDB, EnvHistory, EnvTheme, EnvAddr, EnvLogLevel} {
		t.Setenv(key, "")
	}

	orig := DotEnvFile
	DotEnvFile = filepath.Join(dir, "missing.env")
	t.Cleanup(func() { DotEnvFile = orig })
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true before any save")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestSaveLoad(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.Model.Path = "/opt/models/advisor.json"
	cfg.History.Enabled = false
	cfg.Appearance.Theme = "terminal"
	cfg.Appearance.Currency = "$"
	cfg.Server.Addr = ":9999"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after save")
	}
	if got := ConfigPath(); got != filepath.Join(dir, "config", "wealthyways", "config.toml") {
		t.Errorf("ConfigPath = %s", got)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)

	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "[appearance]\ntheme = \"flexoki-dark\"\n"
	if err := os.WriteFile(ConfigPath(), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if cfg.Model.Path != DefaultModelPath {
		t.Errorf("Model.Path = %q, want default %q", cfg.Model.Path, DefaultModelPath)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled should keep its default of true")
	}
}

func TestLoad_BadTOML(t *testing.T) {
	isolate(t)

	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[model\npath = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load() with broken TOML returned nil error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvModel, "/tmp/model.json")
	t.Setenv(EnvHistory, "false")
	t.Setenv(EnvHistoryDB, "/tmp/h.db")
	t.Setenv(EnvTheme, "terminal")
	t.Setenv(EnvAddr, "0.0.0.0:1234")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model.Path != "/tmp/model.json" {
		t.Errorf("Model.Path = %q", cfg.Model.Path)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false from env")
	}
	if cfg.HistoryPath() != "/tmp/h.db" {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath())
	}
	if cfg.Appearance.Theme != "terminal" || cfg.Server.Addr != "0.0.0.0:1234" || cfg.Log.Level != "debug" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_BadHistoryEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvHistory, "sometimes")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a non-boolean history flag")
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := isolate(t)

	DotEnvFile = filepath.Join(dir, ".env")
	if err := os.WriteFile(DotEnvFile, []byte(EnvTheme+"=flexoki-dark\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides a variable that is already present, even if
	// empty, so drop it for this test; t.Setenv in isolate restores it.
	if err := os.Unsetenv(EnvTheme); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark from .env", cfg.Appearance.Theme)
	}
}

func TestHistoryPath_DefaultsToCacheDir(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	want := filepath.Join(dir, "cache", "wealthyways", "history.db")
	if got := cfg.HistoryPath(); got != want {
		t.Errorf("HistoryPath = %q, want %q", got, want)
	}
	if got := LogPath(); got != filepath.Join(dir, "cache", "wealthyways", "wealthyways.log") {
		t.Errorf("LogPath = %q", got)
	}
}
