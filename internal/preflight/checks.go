package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"anomalyset/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and can be listed.
// When writable is set, write permission is required too.
func CheckDirectoryAccess(name, path string, writable bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	access := "read ok"
	if writable {
		mode |= unix.W_OK
		access = "read/write ok"
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, access)}
}

// CheckMachineCoverage counts the per-year and per-decibel machine
// directories present for machine. It passes only when every one exists.
func CheckMachineCoverage(cfg *config.Config, machine string) Result {
	name := fmt.Sprintf("Machine %s", machine)
	if cfg == nil || !cfg.HasMachine(machine) {
		return Result{Name: name, Detail: "not listed in dataset.machine_types"}
	}

	var missing []string
	total := 0

	dcase := cfg.Dataset.DCASE
	if len(dcase.DatasetClasses) > 0 {
		for _, year := range dcase.Years {
			total++
			rel := strings.Join([]string{dcase.Family, year, dcase.DatasetClasses[0], machine}, "/")
			if !isDir(cfg.Paths.DataDir + rel) {
				missing = append(missing, rel)
			}
		}
	}

	mimii := cfg.Dataset.MIMII
	for _, decibel := range mimii.Decibels {
		total++
		rel := strings.Join([]string{mimii.Family, decibel, machine}, "/")
		if !isDir(cfg.Paths.DataDir + rel) {
			missing = append(missing, rel)
		}
	}

	present := total - len(missing)
	if len(missing) == 0 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d/%d machine directories present", present, total)}
	}
	return Result{
		Name:   name,
		Detail: fmt.Sprintf("%d/%d machine directories present (missing %s)", present, total, strings.Join(missing, ", ")),
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
