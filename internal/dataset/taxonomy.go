package dataset

import "strings"

// Class names the bucket a file is sorted into.
type Class string

const (
	ClassNormal   Class = "normal"
	ClassAbnormal Class = "abnormal"
	ClassUnknown  Class = "unknown"
)

// Classes lists every bucket in canonical order.
var Classes = []Class{ClassNormal, ClassAbnormal, ClassUnknown}

// Label is the integer encoding of a Class used by downstream training code.
type Label int

const (
	LabelNormal   Label = 1
	LabelAbnormal Label = -1
	LabelUnknown  Label = 0
)

// Label returns the integer encoding for c. Unrecognized classes map to
// LabelUnknown.
func (c Class) Label() Label {
	switch c {
	case ClassNormal:
		return LabelNormal
	case ClassAbnormal:
		return LabelAbnormal
	default:
		return LabelUnknown
	}
}

// Class returns the bucket a label belongs to.
func (l Label) Class() Class {
	switch l {
	case LabelNormal:
		return ClassNormal
	case LabelAbnormal:
		return ClassAbnormal
	default:
		return ClassUnknown
	}
}

// ClassBucket holds the file paths of one leaf directory grouped by class.
// Slices keep directory-listing order, which callers must not rely on.
type ClassBucket map[Class][]string

// NewClassBucket returns a bucket with all three class keys present.
func NewClassBucket() ClassBucket {
	bucket := make(ClassBucket, len(Classes))
	for _, class := range Classes {
		bucket[class] = []string{}
	}
	return bucket
}

// Len reports the number of paths across all classes.
func (b ClassBucket) Len() int {
	total := 0
	for _, paths := range b {
		total += len(paths)
	}
	return total
}

// Counts returns the number of paths per class.
func (b ClassBucket) Counts() map[Class]int {
	counts := make(map[Class]int, len(Classes))
	for _, class := range Classes {
		counts[class] = len(b[class])
	}
	return counts
}

// LabelMap maps a file path to its label.
type LabelMap map[string]Label

// Merge copies every entry of other into m.
func (m LabelMap) Merge(other LabelMap) {
	for path, label := range other {
		m[path] = label
	}
}

// Path is an ordered sequence of taxonomy segments, e.g.
// (DCASE, 2020, dev, train) or (MIMII, data_0_db, id_00, normal).
type Path []string

// Family returns the first segment, or "" for an empty path.
func (p Path) Family() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// String joins the segments with "/".
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Clone returns a copy that does not share storage with p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Less orders paths segment by segment.
func (p Path) Less(other Path) bool {
	for i := 0; i < len(p) && i < len(other); i++ {
		if p[i] != other[i] {
			return p[i] < other[i]
		}
	}
	return len(p) < len(other)
}
