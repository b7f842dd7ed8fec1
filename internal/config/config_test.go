package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediapress/internal/config"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, path, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if path == "" {
		t.Fatal("expected resolved path even for missing file")
	}
	if cfg.Images.JPEGQuality != 95 {
		t.Fatalf("expected default jpeg quality, got %d", cfg.Images.JPEGQuality)
	}
	if cfg.Video.Codec != "libx265" {
		t.Fatalf("expected default codec, got %q", cfg.Video.Codec)
	}
	if cfg.Run.Suffix != "_compressed" {
		t.Fatalf("expected default suffix, got %q", cfg.Run.Suffix)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[run]",
		"workers = 3",
		`suffix = "  _small "`,
		"[images]",
		"jpeg_quality = 80",
		"[video]",
		`codec = "libx264"`,
		"crf = 20",
		"[logging]",
		`level = "DEBUG"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if resolved != path {
		t.Fatalf("resolved path mismatch: %q", resolved)
	}
	if cfg.Run.Workers != 3 {
		t.Fatalf("workers = %d", cfg.Run.Workers)
	}
	if cfg.Run.Suffix != "_small" {
		t.Fatalf("suffix not trimmed: %q", cfg.Run.Suffix)
	}
	if cfg.Video.Codec != "libx264" || cfg.Video.CRF != 20 {
		t.Fatalf("video settings not applied: %+v", cfg.Video)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not lowercased: %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad codec", "[video]\ncodec = \"av1\"\n"},
		{"bad quality", "[images]\njpeg_quality = 0\n"},
		{"bad crf", "[video]\ncrf = 60\n"},
		{"bad level", "[logging]\nlevel = \"verbose\"\n"},
		{"bad max compression", "[run]\nmax_compression = 1.5\n"},
		{"negative workers", "[run]\nworkers = -1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestEnvOverridesConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.toml")
	if err := os.WriteFile(path, []byte("[images]\nmin_dimension = 1080\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvConfigPath, path)

	cfg, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected env-pointed config to be read")
	}
	if cfg.Images.MinDimension != 1080 {
		t.Fatalf("min_dimension = %d", cfg.Images.MinDimension)
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[video]") {
		t.Fatal("sample config missing expected section")
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := config.ExpandPath("~/media")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "media") {
		t.Fatalf("ExpandPath = %q", got)
	}
}
