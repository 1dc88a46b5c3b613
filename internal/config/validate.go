package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateDCASE(); err != nil {
		return err
	}
	if err := c.validateMIMII(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if len(c.Dataset.MachineTypes) == 0 {
		return errors.New("dataset.machine_types must include at least one machine type")
	}
	switch c.Dataset.RuleSet {
	case "reference", "corrected":
	default:
		return fmt.Errorf("dataset.rule_set: unsupported value %q (want reference or corrected)", c.Dataset.RuleSet)
	}
	return ensureUnique(map[string][]string{
		"dataset.machine_types": c.Dataset.MachineTypes,
	})
}

func (c *Config) validateDCASE() error {
	d := c.Dataset.DCASE
	if len(d.Years) > 0 && len(d.DatasetClasses) == 0 {
		return errors.New("dataset.dcase.dataset_classes must be set when dataset.dcase.years is not empty")
	}
	for _, year := range d.DevOnlyYears {
		if !slices.Contains(d.Years, year) {
			return fmt.Errorf("dataset.dcase.dev_only_years: %q is not listed in dataset.dcase.years", year)
		}
	}
	for class := range d.SkipSplits {
		if !slices.Contains(d.DatasetClasses, class) {
			return fmt.Errorf("dataset.dcase.skip_splits: %q is not listed in dataset.dcase.dataset_classes", class)
		}
	}
	return ensureUnique(map[string][]string{
		"dataset.dcase.years":           d.Years,
		"dataset.dcase.dataset_classes": d.DatasetClasses,
		"dataset.dcase.splits":          d.Splits,
	})
}

func (c *Config) validateMIMII() error {
	m := c.Dataset.MIMII
	if len(m.Decibels) > 0 && len(m.IDs) == 0 {
		return errors.New("dataset.mimii.ids must be set when dataset.mimii.decibels is not empty")
	}
	if m.Family == c.Dataset.DCASE.Family {
		return fmt.Errorf("dataset.mimii.family must differ from dataset.dcase.family (both %q)", m.Family)
	}
	return ensureUnique(map[string][]string{
		"dataset.mimii.decibels": m.Decibels,
		"dataset.mimii.ids":      m.IDs,
		"dataset.mimii.classes":  m.Classes,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensureUnique(values map[string][]string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		seen := make(map[string]struct{}, len(values[key]))
		for _, v := range values[key] {
			if _, ok := seen[v]; ok {
				return fmt.Errorf("%s: duplicate entry %q", key, v)
			}
			seen[v] = struct{}{}
		}
	}
	return nil
}
