package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"xfmt/internal/format"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{NoFile: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opt := cfg.FormatOptions()
	if opt.Strategy != format.StrategyDoc || opt.IndentWidth != 3 || !opt.FinalNewline {
		t.Errorf("unexpected defaults: %+v", opt)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
}

func TestLoadTOMLFoundUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "xfmt.toml"), `
strategy = "greedy"
max_width = 40
final_newline = false
keywords = ["if", "else"]
`)
	child := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{Dir: child})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != filepath.Join(root, "xfmt.toml") {
		t.Errorf("Path = %q", cfg.Path)
	}
	opt := cfg.FormatOptions()
	if opt.Strategy != format.StrategyGreedy || opt.MaxWidth != 40 || opt.FinalNewline {
		t.Errorf("file values not applied: %+v", opt)
	}
	if opt.IndentWidth != 3 {
		t.Errorf("keys absent from the file must keep defaults, IndentWidth = %d", opt.IndentWidth)
	}
	if _, ok := opt.Keywords["else"]; !ok {
		t.Errorf("keywords not applied: %v", opt.Keywords)
	}
}

func TestLoadYAMLAndEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "xfmt.yaml"), "indent_width: 2\nuse_tabs: true\n")
	t.Setenv("XFMT_INDENT_WIDTH", "5")
	t.Setenv("XFMT_EXTENSIONS", ".x,.xs")

	cfg, err := Load(LoadOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IndentWidth != 5 {
		t.Errorf("env must override the file: IndentWidth = %d", cfg.IndentWidth)
	}
	if !cfg.UseTabs {
		t.Errorf("UseTabs from yaml lost")
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[1] != ".xs" {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	writeFile(t, envFile, "XFMT_TRAILING_COMMAS=true\n")
	// godotenv пишет прямо в окружение процесса
	t.Cleanup(func() { _ = os.Unsetenv("XFMT_TRAILING_COMMAS") })

	cfg, err := Load(LoadOptions{NoFile: true, EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.TrailingCommas {
		t.Errorf("TrailingCommas from env file not applied")
	}
	if _, err := Load(LoadOptions{NoFile: true, EnvFile: filepath.Join(dir, "missing.env")}); err == nil {
		t.Errorf("missing env file must fail")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		kind    error
	}{
		{"bad strategy", "xfmt.toml", `strategy = "fancy"`, ErrInvalidValue},
		{"zero indent", "xfmt.toml", `indent_width = 0`, ErrInvalidValue},
		{"unknown key", "xfmt.toml", `tabs = 4`, ErrInvalidValue},
		{"bad extension", "xfmt.yaml", "extensions: [x]\n", ErrInvalidValue},
		{"unknown format", "xfmt.json", `{}`, ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name, tt.file)
			writeFile(t, path, tt.content)
			_, err := Load(LoadOptions{File: path})
			if !errors.Is(err, tt.kind) {
				t.Errorf("Load error = %v, want %v", err, tt.kind)
			}
		})
	}
}
