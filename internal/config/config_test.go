package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("HOME", root)
	for _, k := range []string{"SAVE_DIRECTORY", "BASE_URL", "TIMEOUT_SECONDS", "EXTRACTOR", "USER_AGENT", "DEBUG", "FETCH_ON_START"} {
		t.Setenv(envPrefix+"_"+k, "")
		_ = os.Unsetenv(envPrefix + "_" + k)
	}

	return filepath.Join(root, "apodd")
}

func TestLoadMerged_NoConfigUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{})
	if err != nil {
		t.Fatalf("LoadMerged returned error: %v", err)
	}
	if !strings.HasPrefix(used, "(default config in memory)") {
		t.Fatalf("used = %q", used)
	}
	if cfg.SaveDir != "." {
		t.Fatalf("SaveDir = %q, want %q", cfg.SaveDir, ".")
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("Timeout = %v, want 30s", cfg.Timeout())
	}
	if !cfg.FetchOnStart {
		t.Fatal("FetchOnStart = false, want true by default")
	}
}

func TestLoadMerged_FileThenEnvThenFlags(t *testing.T) {
	root := isolate(t)

	path, err := InitDefaultConfig()
	if err != nil {
		t.Fatalf("InitDefaultConfig returned error: %v", err)
	}
	if path != filepath.Join(root, "configs", "Default.yaml") {
		t.Fatalf("path = %q", path)
	}

	if err := os.WriteFile(path, []byte(`
save_directory: /from/file
extractor: dom
timeout_seconds: 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, used, err := LoadMerged(Options{})
	if err != nil {
		t.Fatalf("LoadMerged returned error: %v", err)
	}
	if used != path {
		t.Fatalf("used = %q, want %q", used, path)
	}
	if cfg.SaveDir != "/from/file" || cfg.Extractor != "dom" || cfg.TimeoutSeconds != 5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.FetchOnStart {
		t.Fatal("keys missing from the file should keep their defaults")
	}

	t.Setenv("APODD_SAVE_DIRECTORY", "/from/env")
	t.Setenv("APODD_FETCH_ON_START", "false")

	cfg, _, err = LoadMerged(Options{})
	if err != nil {
		t.Fatalf("LoadMerged returned error: %v", err)
	}
	if cfg.SaveDir != "/from/env" {
		t.Fatalf("SaveDir = %q, want env override", cfg.SaveDir)
	}
	if cfg.FetchOnStart {
		t.Fatal("FetchOnStart = true, want env override false")
	}

	cfg, _, err = LoadMerged(Options{SaveDir: "/from/flag", Extractor: "regex"})
	if err != nil {
		t.Fatalf("LoadMerged returned error: %v", err)
	}
	if cfg.SaveDir != "/from/flag" || cfg.Extractor != "regex" {
		t.Fatalf("flag values not applied: %+v", cfg)
	}
}

func TestLoadMerged_IgnoreConfig(t *testing.T) {
	isolate(t)

	if _, err := InitDefaultConfig(); err != nil {
		t.Fatalf("InitDefaultConfig returned error: %v", err)
	}
	t.Setenv("APODD_SAVE_DIRECTORY", "/from/env")

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, Debug: true})
	if err != nil {
		t.Fatalf("LoadMerged returned error: %v", err)
	}
	if used != "(ignored config)" {
		t.Fatalf("used = %q", used)
	}
	if cfg.SaveDir != "." {
		t.Fatalf("SaveDir = %q, ignore-config must skip env too", cfg.SaveDir)
	}
	if !cfg.Debug {
		t.Fatal("Debug flag not merged")
	}
}

func TestLoadMerged_InvalidYAMLFails(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	if err != nil {
		t.Fatalf("InitDefaultConfig returned error: %v", err)
	}
	if err := os.WriteFile(path, []byte("save_directory: [unterminated"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, _, err := LoadMerged(Options{}); err == nil {
		t.Fatal("LoadMerged returned nil error for invalid YAML")
	}
}

func TestSaveDirectory_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	cfg.SaveDir = "~/Pictures/apod"
	if got := cfg.SaveDirectory(); got != filepath.Join(home, "Pictures", "apod") {
		t.Fatalf("SaveDirectory = %q", got)
	}
}

func TestProfiles_Lifecycle(t *testing.T) {
	isolate(t)

	if _, err := InitDefaultConfig(); err != nil {
		t.Fatalf("InitDefaultConfig returned error: %v", err)
	}
	if _, err := InitDefaultConfig(); !errors.Is(err, os.ErrExist) {
		t.Fatalf("second InitDefaultConfig err = %v, want ErrExist", err)
	}

	if _, err := CreateEmptyConfig("Work"); err != nil {
		t.Fatalf("CreateEmptyConfig returned error: %v", err)
	}
	if _, err := CreateEmptyConfig("Work"); err == nil {
		t.Fatal("duplicate CreateEmptyConfig returned nil error")
	}
	if _, err := CreateEmptyConfig("../escape"); err == nil {
		t.Fatal("CreateEmptyConfig accepted a path-like label")
	}

	if err := SwitchConfig("Work"); err != nil {
		t.Fatalf("SwitchConfig returned error: %v", err)
	}
	if label, _ := CurrentLabel(); label != "Work" {
		t.Fatalf("CurrentLabel = %q, want Work", label)
	}

	if err := RenameConfig("Work", "Desk"); err != nil {
		t.Fatalf("RenameConfig returned error: %v", err)
	}
	if label, _ := CurrentLabel(); label != "Desk" {
		t.Fatalf("CurrentLabel after rename = %q, want Desk", label)
	}

	list, err := ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs returned error: %v", err)
	}
	if len(list) != 2 || list[0].Label != "Default" || list[1].Label != "Desk" || !list[1].Active {
		t.Fatalf("ListConfigs = %+v", list)
	}

	if err := RenameConfig(DefaultLabel, "Other"); err == nil {
		t.Fatal("RenameConfig(Default) returned nil error")
	}
	if err := RemoveConfig(DefaultLabel); err == nil {
		t.Fatal("RemoveConfig(Default) returned nil error")
	}
	if err := RemoveConfig("Desk"); err != nil {
		t.Fatalf("RemoveConfig returned error: %v", err)
	}
	if label, _ := CurrentLabel(); label != DefaultLabel {
		t.Fatalf("CurrentLabel after removing active = %q, want Default", label)
	}
	if _, err := ConfigPathByLabel("Desk"); err == nil {
		t.Fatal("ConfigPathByLabel found a removed profile")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"dom extractor", func(c *Config) { c.Extractor = "dom" }, ""},
		{"unknown extractor", func(c *Config) { c.Extractor = "xpath" }, "unknown extractor"},
		{"relative base url", func(c *Config) { c.BaseURL = "apod/" }, "must be absolute"},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate returned error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := os.WriteFile(path, []byte("save_directory: /tmp/apod\nextractor: dom\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cfg.SaveDir != "/tmp/apod" || cfg.Extractor != "dom" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Fatalf("TimeoutSeconds = %d, want default 30", cfg.TimeoutSeconds)
	}
}

func TestLoadMerged_NoFetchOnStart(t *testing.T) {
	isolate(t)

	cfg, _, err := LoadMerged(Options{NoFetchOnStart: true})
	if err != nil {
		t.Fatalf("LoadMerged returned error: %v", err)
	}
	if cfg.FetchOnStart {
		t.Fatal("FetchOnStart = true, want false")
	}

	cfg, _, err = LoadMerged(Options{})
	if err != nil {
		t.Fatalf("LoadMerged returned error: %v", err)
	}
	if !cfg.FetchOnStart {
		t.Fatal("FetchOnStart = false without the option, want the default true")
	}
}
