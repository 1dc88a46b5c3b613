package dataset

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"anomalyset/internal/logging"
)

// DefaultBaseDir is the directory both family trees live under when the caller
// does not choose one.
const DefaultBaseDir = "data/"

// Walker enumerates the leaf directories a Layout allows and classifies each
// of them.
type Walker struct {
	layout     Layout
	classifier *Classifier
	logger     *slog.Logger
}

// NewWalker builds a Walker. A nil classifier means NewClassifier() and a nil
// logger discards output.
func NewWalker(layout Layout, classifier *Classifier, logger *slog.Logger) *Walker {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Walker{
		layout:     layout,
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "walker"),
	}
}

// Layout returns the enumerations the walker was built with.
func (w *Walker) Layout() Layout {
	return w.layout
}

// Plan lists the leaf directories BuildIndex would classify for machine, in
// visiting order. It does not touch the filesystem; Bucket is nil on every
// returned leaf.
func (w *Walker) Plan(machine, baseDir string) []Leaf {
	base := normalizeBase(baseDir)
	var leaves []Leaf
	leaves = append(leaves, w.planDCASE(machine, base)...)
	leaves = append(leaves, w.planMIMII(machine, base)...)
	return leaves
}

func (w *Walker) planDCASE(machine, base string) []Leaf {
	l := w.layout.DCASE
	var leaves []Leaf
	for _, year := range l.Years {
		for i, datasetClass := range l.DatasetClasses {
			if l.devOnly(year) && i != 0 {
				continue
			}
			machineDir := base + joinDir(l.Family, year, datasetClass, machine)
			for _, split := range l.Splits {
				if l.skipSplit(datasetClass, split) {
					continue
				}
				leaves = append(leaves, Leaf{
					Path: Path{l.Family, year, datasetClass, split},
					Dir:  machineDir + split + "/",
				})
			}
		}
	}
	return leaves
}

func (w *Walker) planMIMII(machine, base string) []Leaf {
	l := w.layout.MIMII
	var leaves []Leaf
	for _, decibel := range l.Decibels {
		machineDir := base + joinDir(l.Family, decibel, machine)
		for _, id := range l.IDs {
			for _, class := range l.Classes {
				if class == string(ClassUnknown) {
					break
				}
				leaves = append(leaves, Leaf{
					Path: Path{l.Family, decibel, id, class},
					Dir:  machineDir + joinDir(id, class),
				})
			}
		}
	}
	return leaves
}

// BuildIndex classifies every planned leaf for machine under baseDir. The
// first leaf that cannot be listed aborts the call with an error wrapping
// ErrDirectoryNotFound; no partial index is returned.
func (w *Walker) BuildIndex(machine, baseDir string) (*Index, LabelMap, error) {
	started := time.Now()
	logger := w.logger.With(logging.String(logging.FieldMachine, machine))

	index := NewIndex()
	labels := make(LabelMap)
	leaves := w.Plan(machine, baseDir)
	for _, leaf := range leaves {
		bucket, fragment, err := w.classifier.ClassifyLeaf(leaf.Dir)
		if err != nil {
			logger.Error("leaf classification failed",
				logging.Args(
					logging.String(logging.FieldFamily, leaf.Path.Family()),
					logging.String(logging.FieldLeaf, leaf.Dir),
					logging.Error(err),
				)...,
			)
			return nil, nil, fmt.Errorf("index %s: %w", leaf.Path, err)
		}
		index.Set(leaf.Path, bucket)
		labels.Merge(fragment)
	}

	logger.Info("index built",
		logging.Args(
			logging.Int("leaves", len(leaves)),
			logging.Int("files", len(labels)),
			logging.Duration("elapsed", time.Since(started)),
		)...,
	)
	return index, labels, nil
}

// Leaves returns the planned leaves for machine with their buckets filled in
// from index. Leaves missing from index keep a nil Bucket.
func (w *Walker) Leaves(index *Index, machine, baseDir string) []Leaf {
	leaves := w.Plan(machine, baseDir)
	if index == nil {
		return leaves
	}
	for i := range leaves {
		if bucket, ok := index.Bucket(leaves[i].Path...); ok {
			leaves[i].Bucket = bucket
		}
	}
	return leaves
}

func normalizeBase(baseDir string) string {
	if baseDir == "" || strings.HasSuffix(baseDir, "/") {
		return baseDir
	}
	return baseDir + "/"
}

func joinDir(segments ...string) string {
	return strings.Join(segments, "/") + "/"
}
