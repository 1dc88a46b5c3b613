package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDataset()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("ANOMALYSET_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = value
	}
	dataDir := strings.TrimSpace(c.Paths.DataDir)
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	// Label keys are built by plain concatenation, so the data dir keeps the
	// caller's relative form and only gains a trailing slash.
	dataDir, err := expandHome(dataDir)
	if err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if !strings.HasSuffix(dataDir, "/") {
		dataDir += "/"
	}
	c.Paths.DataDir = dataDir

	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDataset() {
	d := &c.Dataset
	d.RuleSet = strings.ToLower(strings.TrimSpace(d.RuleSet))
	if d.RuleSet == "" {
		d.RuleSet = defaultRuleSet
	}
	d.MachineTypes = trimAll(d.MachineTypes)

	d.DCASE.Family = strings.TrimSpace(d.DCASE.Family)
	if d.DCASE.Family == "" {
		d.DCASE.Family = defaultDCASE
	}
	d.DCASE.Years = trimAll(d.DCASE.Years)
	d.DCASE.DevOnlyYears = trimAll(d.DCASE.DevOnlyYears)
	d.DCASE.DatasetClasses = trimAll(d.DCASE.DatasetClasses)
	d.DCASE.Splits = trimAll(d.DCASE.Splits)
	for class, splits := range d.DCASE.SkipSplits {
		d.DCASE.SkipSplits[class] = trimAll(splits)
	}

	d.MIMII.Family = strings.TrimSpace(d.MIMII.Family)
	if d.MIMII.Family == "" {
		d.MIMII.Family = defaultMIMII
	}
	d.MIMII.Decibels = trimAll(d.MIMII.Decibels)
	d.MIMII.IDs = trimAll(d.MIMII.IDs)
	d.MIMII.Classes = trimAll(d.MIMII.Classes)
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("ANOMALYSET_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
