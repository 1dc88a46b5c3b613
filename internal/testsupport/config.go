package testsupport

import (
	"path/filepath"
	"testing"

	"anomalyset/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The data dir is <tmp>/data/ and the log dir <tmp>/logs.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data") + "/"
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMachineTypes replaces the configured machine types.
func WithMachineTypes(machines ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dataset.MachineTypes = machines
	}
}

// WithSingleYear narrows the DCASE years (and dev-only years) to year, and the
// MIMII tree to one decibel level and id, so tests only need a handful of
// directories.
func WithSingleYear(year string, devOnly bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dataset.DCASE.Years = []string{year}
		b.cfg.Dataset.DCASE.DevOnlyYears = nil
		if devOnly {
			b.cfg.Dataset.DCASE.DevOnlyYears = []string{year}
		}
		b.cfg.Dataset.MIMII.Decibels = []string{"data_0_db"}
		b.cfg.Dataset.MIMII.IDs = []string{"id_00"}
	}
}

// WithoutLogDir disables the log file.
func WithoutLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Clean(cfg.Paths.DataDir))
}
