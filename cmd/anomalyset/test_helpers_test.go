package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"anomalyset/internal/config"
	"anomalyset/internal/dataset"
	"anomalyset/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// setupCLITestEnv writes a config narrowed to DCASE 2020 and one MIMII
// decibel/id pair, and isolates HOME, the working directory and the
// ANOMALYSET_* variables.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfgOpts := append([]testsupport.ConfigOption{
		testsupport.WithSingleYear("2020", false),
		testsupport.WithoutLogDir(),
	}, opts...)
	cfg := testsupport.NewConfig(t, cfgOpts...)
	cfg.Logging.Level = "error"
	base := testsupport.BaseDir(cfg)

	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("ANOMALYSET_DATA_DIR", "")
	t.Setenv("ANOMALYSET_LOG_LEVEL", "")
	testsupport.Chdir(t, base)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

// populate creates every planned leaf for machine with a fixed set of files.
// DCASE train leaves hold one normal file; test leaves hold one file per
// classification outcome; MIMII leaves hold one numbered file.
func (env *cliTestEnv) populate(t *testing.T, machine string) {
	t.Helper()

	walker := dataset.NewWalker(layoutFromConfig(env.cfg), nil, nil)
	for _, leaf := range walker.Plan(machine, env.cfg.Paths.DataDir) {
		rel := strings.TrimPrefix(leaf.Dir, env.cfg.Paths.DataDir)
		switch {
		case leaf.Path.Family() == dataset.FamilyMIMII:
			testsupport.WriteDiskTree(t, env.cfg.Paths.DataDir, rel+"00000000.wav")
		case strings.HasSuffix(rel, "/train/"):
			testsupport.WriteDiskTree(t, env.cfg.Paths.DataDir, rel+"normal_id_00_0000.wav")
		default:
			testsupport.WriteDiskTree(t, env.cfg.Paths.DataDir,
				rel+"normal_id_00_0001.wav",
				rel+"anomaly_id_00_0002.wav",
				rel+"sample_abnormal_0003.wav",
				rel+"section_00_0004.wav",
			)
		}
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
