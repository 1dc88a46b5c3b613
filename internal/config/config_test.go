package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"anomalyset/internal/config"
	"anomalyset/internal/testsupport"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ANOMALYSET_DATA_DIR", "")
	t.Setenv("ANOMALYSET_LOG_LEVEL", "")
	testsupport.Chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(tempHome, ".config", "anomalyset", "config.toml")
	if resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if cfg.Paths.DataDir != "data/" {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected no log dir by default, got %q", cfg.Paths.LogDir)
	}
	if cfg.Dataset.RuleSet != "reference" {
		t.Fatalf("expected reference rule set, got %q", cfg.Dataset.RuleSet)
	}
	if !reflect.DeepEqual(cfg.Dataset.DCASE.DevOnlyYears, []string{"2023", "2024"}) {
		t.Fatalf("unexpected dev-only years: %v", cfg.Dataset.DCASE.DevOnlyYears)
	}
	if !reflect.DeepEqual(cfg.Dataset.MIMII.IDs, []string{"id_00", "id_02", "id_04", "id_06"}) {
		t.Fatalf("unexpected MIMII ids: %v", cfg.Dataset.MIMII.IDs)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANOMALYSET_DATA_DIR", "")
	t.Setenv("ANOMALYSET_LOG_LEVEL", "")
	configPath := filepath.Join(t.TempDir(), "anomalyset.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Dataset struct {
			MachineTypes []string `toml:"machine_types"`
			RuleSet      string   `toml:"rule_set"`
			MIMII        struct {
				Decibels []string `toml:"decibels"`
			} `toml:"mimii"`
		} `toml:"dataset"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = "datasets"
	custom.Dataset.MachineTypes = []string{"pump", " slider "}
	custom.Dataset.RuleSet = "Corrected"
	custom.Dataset.MIMII.Decibels = []string{"data_6_db"}
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != "datasets/" {
		t.Fatalf("expected trailing slash on data dir, got %q", cfg.Paths.DataDir)
	}
	if !reflect.DeepEqual(cfg.Dataset.MachineTypes, []string{"pump", "slider"}) {
		t.Fatalf("unexpected machine types: %v", cfg.Dataset.MachineTypes)
	}
	if cfg.Dataset.RuleSet != "corrected" {
		t.Fatalf("expected normalized rule set, got %q", cfg.Dataset.RuleSet)
	}
	if !reflect.DeepEqual(cfg.Dataset.MIMII.Decibels, []string{"data_6_db"}) {
		t.Fatalf("unexpected decibels: %v", cfg.Dataset.MIMII.Decibels)
	}
	if cfg.Dataset.DCASE.Family != "DCASE" {
		t.Fatalf("expected DCASE defaults to survive, got %q", cfg.Dataset.DCASE.Family)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
	if !cfg.HasMachine("pump") || cfg.HasMachine("fan") {
		t.Fatalf("HasMachine disagrees with machine types %v", cfg.Dataset.MachineTypes)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "anomalyset.toml")
	content := "[paths]\ndata_dir = \"from-file\"\n\n[logging]\nlevel = \"warn\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ANOMALYSET_DATA_DIR", "/mnt/audio")
	t.Setenv("ANOMALYSET_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != "/mnt/audio/" {
		t.Fatalf("expected env data dir, got %q", cfg.Paths.DataDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadDotEnvSeedsEnvironment(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("ANOMALYSET_TEST_DOTENV=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ANOMALYSET_TEST_DOTENV", "")
	os.Unsetenv("ANOMALYSET_TEST_DOTENV")

	if err := config.LoadDotEnv(envPath); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv("ANOMALYSET_TEST_DOTENV"); got != "from-dotenv" {
		t.Fatalf("expected variable from .env, got %q", got)
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("ANOMALYSET_TEST_KEEP=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ANOMALYSET_TEST_KEEP", "from-shell")

	if err := config.LoadDotEnv(envPath); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv("ANOMALYSET_TEST_KEEP"); got != "from-shell" {
		t.Fatalf("expected shell value to win, got %q", got)
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	if err := config.LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"rule set", func(c *config.Config) { c.Dataset.RuleSet = "fuzzy" }, "dataset.rule_set"},
		{"no machines", func(c *config.Config) { c.Dataset.MachineTypes = nil }, "dataset.machine_types"},
		{"duplicate machine", func(c *config.Config) { c.Dataset.MachineTypes = []string{"fan", "fan"} }, "duplicate entry"},
		{"dev-only year outside years", func(c *config.Config) { c.Dataset.DCASE.DevOnlyYears = []string{"2019"} }, "dataset.dcase.dev_only_years"},
		{"skip split unknown class", func(c *config.Config) {
			c.Dataset.DCASE.SkipSplits = map[string][]string{"holdout": {"train"}}
		}, "dataset.dcase.skip_splits"},
		{"families collide", func(c *config.Config) { c.Dataset.MIMII.Family = "DCASE" }, "dataset.mimii.family"},
		{"missing ids", func(c *config.Config) { c.Dataset.MIMII.IDs = nil }, "dataset.mimii.ids"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestCreateSampleRoundTripsThroughLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	def := config.Default()
	if !reflect.DeepEqual(cfg.Dataset, def.Dataset) {
		t.Fatalf("sample dataset section differs from defaults:\n got %+v\nwant %+v", cfg.Dataset, def.Dataset)
	}
}

func TestEnsureDirectoriesCreatesLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.LogDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestEncodeProducesLoadableTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := config.Default()
	cfg.Dataset.MachineTypes = []string{"pump"}
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "encoded.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write encoded config: %v", err)
	}
	loaded, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load encoded config returned error: %v", err)
	}
	if !reflect.DeepEqual(loaded.Dataset.MachineTypes, []string{"pump"}) {
		t.Fatalf("unexpected machine types: %v", loaded.Dataset.MachineTypes)
	}
}
