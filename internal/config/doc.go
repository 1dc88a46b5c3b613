// Package config loads, normalizes, and validates anomalyset configuration.
//
// It supplies repository defaults for every dataset enumeration (DCASE years,
// dataset classes, splits, MIMII decibel levels and machine ids), reads TOML
// files, and honours environment overrides such as ANOMALYSET_DATA_DIR. A
// project-local .env file can seed those variables.
//
// The package deliberately knows nothing about how the enumerations are
// walked; the CLI converts the dataset section into a dataset.Layout.
package config
