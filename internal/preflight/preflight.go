package preflight

import (
	"anomalyset/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for cfg. Machine coverage is
// reported for each entry of machines.
func RunAll(cfg *config.Config, machines []string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, false))
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, true))
	}

	dcase := cfg.Dataset.DCASE
	mimii := cfg.Dataset.MIMII
	if len(dcase.Years) > 0 {
		results = append(results, CheckDirectoryAccess(dcase.Family+" tree", cfg.Paths.DataDir+dcase.Family, false))
	}
	if len(mimii.Decibels) > 0 {
		results = append(results, CheckDirectoryAccess(mimii.Family+" tree", cfg.Paths.DataDir+mimii.Family, false))
	}

	for _, machine := range machines {
		results = append(results, CheckMachineCoverage(cfg, machine))
	}
	return results
}
