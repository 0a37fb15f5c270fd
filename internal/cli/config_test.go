package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[generate]
width = 1600
height = 1200
color_scheme = "gradient"
bg_color = "#202020"
strict = true
seed = 7
scale = 1.5

[serve]
addr = ":9090"
redis = "localhost:6379"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Generate.Width != 1600 || cfg.Generate.Height != 1200 {
		t.Errorf("size = %dx%d, want 1600x1200", cfg.Generate.Width, cfg.Generate.Height)
	}
	if cfg.Generate.ColorScheme != "gradient" {
		t.Errorf("ColorScheme = %q", cfg.Generate.ColorScheme)
	}
	if !cfg.Generate.Strict {
		t.Error("Strict should be true")
	}
	if cfg.Serve.Addr != ":9090" || cfg.Serve.Redis != "localhost:6379" {
		t.Errorf("Serve = %+v", cfg.Serve)
	}

	values := cfg.Generate.flagValues()
	want := map[string]string{
		"width":        "1600",
		"height":       "1200",
		"color-scheme": "gradient",
		"bg-color":     "#202020",
		"strict":       "true",
		"seed":         "7",
		"scale":        "1.5",
	}
	if len(values) != len(want) {
		t.Errorf("flagValues() = %v, want %v", values, want)
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("flagValues()[%q] = %q, want %q", k, values[k], v)
		}
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, "[generate]\nwidht = 10\n")
	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "generate.widht") {
		t.Errorf("error %q should name the key", err)
	}
}

func TestLoadConfigSyntaxError(t *testing.T) {
	path := writeConfig(t, "[generate\n")
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("cfg = %+v, want zero", cfg)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[serve]\naddr = \":1234\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Serve.Addr != ":1234" {
		t.Errorf("Addr = %q, want :1234", cfg.Serve.Addr)
	}
}

func TestApplyConfig(t *testing.T) {
	var width, height int
	var scheme string
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().IntVar(&width, "width", 1200, "")
	cmd.Flags().IntVar(&height, "height", 900, "")
	cmd.Flags().StringVar(&scheme, "color-scheme", "random", "")

	if err := cmd.Flags().Parse([]string{"--width", "640"}); err != nil {
		t.Fatal(err)
	}

	values := GenerateConfig{Width: 1600, Height: 1000, ColorScheme: "frequency", Outlines: true}.flagValues()
	if err := applyConfig(cmd.Flags(), values); err != nil {
		t.Fatalf("applyConfig() error: %v", err)
	}

	if width != 640 {
		t.Errorf("explicit flag overridden: width = %d", width)
	}
	if height != 1000 {
		t.Errorf("height = %d, want 1000 from config", height)
	}
	if scheme != "frequency" {
		t.Errorf("color-scheme = %q, want frequency", scheme)
	}
}

func TestApplyConfigBadValue(t *testing.T) {
	var seed uint64
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "")

	err := applyConfig(cmd.Flags(), map[string]string{"seed": "-1"})
	if err == nil {
		t.Fatal("expected error for negative seed")
	}
}

func TestGenerateConfigRadiusFactor(t *testing.T) {
	v := GenerateConfig{RadiusFactor: 0.25, Scale: 2}.flagValues()
	if v["radius-factor"] != "0.25" || v["scale"] != "2" {
		t.Errorf("flagValues() = %v", v)
	}
	if _, ok := (GenerateConfig{}).flagValues()["radius-factor"]; ok {
		t.Error("zero radius factor should not become a flag value")
	}
}
