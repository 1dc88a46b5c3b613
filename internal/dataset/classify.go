package dataset

import (
	"log/slog"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"anomalyset/internal/logging"
)

// Classifier sorts the immediate entries of a leaf directory into class
// buckets.
type Classifier struct {
	fs     billy.Dir
	rules  RuleSet
	logger *slog.Logger
}

// ClassifierOption customizes a Classifier.
type ClassifierOption func(*Classifier)

// WithFilesystem lists directories through fs instead of the host filesystem.
func WithFilesystem(fs billy.Dir) ClassifierOption {
	return func(c *Classifier) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithRules replaces ReferenceRules.
func WithRules(rules RuleSet) ClassifierOption {
	return func(c *Classifier) {
		if rules != nil {
			c.rules = rules
		}
	}
}

// WithLogger sets the logger used for the per-leaf trace.
func WithLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier returns a Classifier reading the host filesystem with
// ReferenceRules unless overridden.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		fs:     osfs.Default,
		rules:  ReferenceRules(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns the rule set in use.
func (c *Classifier) Rules() RuleSet {
	return c.rules
}

// ClassifyLeaf lists dir and classifies every entry. dir is expected to end in
// "/" the way the Walker builds it; full paths are dir + entry name.
func (c *Classifier) ClassifyLeaf(dir string) (ClassBucket, LabelMap, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, nil, directoryNotFound(dir, err)
	}

	containing := containingDirName(dir)
	bucket := NewClassBucket()
	labels := make(LabelMap, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		fullPath := dir + name
		class, label := c.rules.Classify(name, containing)
		bucket[class] = append(bucket[class], fullPath)
		labels[fullPath] = label
	}

	c.logger.Debug("leaf classified",
		logging.Args(
			logging.Any(logging.FieldSegments, traceSegments(dir)),
			logging.Int("normal", len(bucket[ClassNormal])),
			logging.Int("abnormal", len(bucket[ClassAbnormal])),
			logging.Int("unknown", len(bucket[ClassUnknown])),
		)...,
	)
	return bucket, labels, nil
}

// containingDirName returns the segment before the trailing separator, i.e.
// the second-to-last "/"-separated segment of dir.
func containingDirName(dir string) string {
	parts := strings.Split(dir, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// traceSegments drops the base directory and the empty tail so the trace reads
// as the taxonomy position, e.g. [DCASE 2020 dev fan train].
func traceSegments(dir string) []string {
	parts := strings.Split(dir, "/")
	if len(parts) <= 2 {
		return nil
	}
	return parts[1 : len(parts)-1]
}
