// Package main hosts the anomalyset CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, builds a dataset.Walker from
// it, and renders the resulting index, label map or walk plan as tables or
// JSON. Machine types are checked against the configured list here; the
// dataset package itself accepts any machine name.
package main
