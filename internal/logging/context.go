package logging

import (
	"context"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one CLI invocation.
	FieldRunID = "run_id"
	// FieldMachine is the machine type being indexed (fan, valve, ...).
	FieldMachine = "machine"
	// FieldFamily is the dataset family of a leaf (DCASE or MIMII).
	FieldFamily = "family"
	// FieldLeaf is the leaf directory path being classified.
	FieldLeaf = "leaf"
	// FieldSegments carries the taxonomy segments of a traced leaf.
	FieldSegments = "segments"
)

type contextKey string

const runIDKey contextKey = "run_id"

// WithRunID attaches a run identifier to ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runIDKey, strings.TrimSpace(runID))
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
