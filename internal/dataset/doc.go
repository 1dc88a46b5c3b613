// Package dataset indexes audio anomaly-detection datasets laid out on disk.
//
// Two dataset families are supported. DCASE trees are organized as
// year/dataset-class/machine/split, MIMII trees as decibel/machine/id/class.
// A Walker enumerates the leaf directories a Layout allows for one machine
// type and hands each one to a Classifier, which sorts the leaf's entries into
// normal, abnormal and unknown buckets using an ordered RuleSet and assigns
// the matching integer label.
//
// The result is an in-memory Index keyed by taxonomy segments plus a flat
// LabelMap from file path to label. Nothing is cached or persisted; every
// BuildIndex call lists the filesystem again.
package dataset
