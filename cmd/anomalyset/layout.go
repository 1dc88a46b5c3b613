package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"anomalyset/internal/config"
	"anomalyset/internal/dataset"
	"anomalyset/internal/logging"
)

// layoutFromConfig copies the dataset sections of cfg into a dataset.Layout.
func layoutFromConfig(cfg *config.Config) dataset.Layout {
	d := cfg.Dataset
	skip := make(map[string][]string, len(d.DCASE.SkipSplits))
	for class, splits := range d.DCASE.SkipSplits {
		skip[class] = slices.Clone(splits)
	}
	return dataset.Layout{
		DCASE: dataset.DCASELayout{
			Family:         d.DCASE.Family,
			Years:          slices.Clone(d.DCASE.Years),
			DevOnlyYears:   slices.Clone(d.DCASE.DevOnlyYears),
			DatasetClasses: slices.Clone(d.DCASE.DatasetClasses),
			Splits:         slices.Clone(d.DCASE.Splits),
			SkipSplits:     skip,
		},
		MIMII: dataset.MIMIILayout{
			Family:   d.MIMII.Family,
			Decibels: slices.Clone(d.MIMII.Decibels),
			IDs:      slices.Clone(d.MIMII.IDs),
			Classes:  slices.Clone(d.MIMII.Classes),
		},
		MachineTypes: slices.Clone(d.MachineTypes),
	}
}

// newWalker wires the configured layout and rule set. A non-empty
// rulesOverride replaces dataset.rule_set.
func newWalker(cfg *config.Config, rulesOverride string, logger *slog.Logger) (*dataset.Walker, error) {
	name := cfg.Dataset.RuleSet
	if strings.TrimSpace(rulesOverride) != "" {
		name = rulesOverride
	}
	rules, err := dataset.RuleSetByName(name)
	if err != nil {
		return nil, err
	}
	classifier := dataset.NewClassifier(
		dataset.WithRules(rules),
		dataset.WithLogger(logging.NewComponentLogger(logger, "classifier")),
	)
	return dataset.NewWalker(layoutFromConfig(cfg), classifier, logger), nil
}

// resolveMachines returns the machine types a command should process.
func resolveMachines(cfg *config.Config, machine string, all bool) ([]string, error) {
	machine = strings.TrimSpace(machine)
	if all {
		if machine != "" {
			return nil, errors.New("--machine and --all are mutually exclusive")
		}
		return slices.Clone(cfg.Dataset.MachineTypes), nil
	}
	if machine == "" {
		return nil, fmt.Errorf("--machine is required (configured: %s)", strings.Join(cfg.Dataset.MachineTypes, ", "))
	}
	if !cfg.HasMachine(machine) {
		return nil, fmt.Errorf("unknown machine type %q (configured: %s)", machine, strings.Join(cfg.Dataset.MachineTypes, ", "))
	}
	return []string{machine}, nil
}

// resolveDataDir prefers the --data-dir flag over paths.data_dir.
func resolveDataDir(cfg *config.Config, flagValue string) (string, error) {
	flagValue = strings.TrimSpace(flagValue)
	if flagValue == "" {
		return cfg.Paths.DataDir, nil
	}
	if strings.HasPrefix(flagValue, "~") {
		expanded, err := config.ExpandPath(flagValue)
		if err != nil {
			return "", fmt.Errorf("resolve data dir: %w", err)
		}
		flagValue = expanded
	}
	if !strings.HasSuffix(flagValue, "/") {
		flagValue += "/"
	}
	return flagValue, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
