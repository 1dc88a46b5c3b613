package dataset

import (
	"sort"
)

// Index is the nested DataIndex: taxonomy segments lead to one ClassBucket
// per leaf directory.
type Index struct {
	root *node
}

type node struct {
	children map[string]*node
	bucket   ClassBucket
}

// Leaf is one classified leaf directory.
type Leaf struct {
	Path   Path
	Dir    string
	Bucket ClassBucket
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{root: &node{}}
}

// Set stores bucket under path, replacing any previous bucket.
func (ix *Index) Set(path Path, bucket ClassBucket) {
	n := ix.root
	for _, seg := range path {
		if n.children == nil {
			n.children = make(map[string]*node)
		}
		child, ok := n.children[seg]
		if !ok {
			child = &node{}
			n.children[seg] = child
		}
		n = child
	}
	if bucket == nil {
		bucket = NewClassBucket()
	}
	n.bucket = bucket
}

// Bucket returns the bucket stored at exactly path.
func (ix *Index) Bucket(path ...string) (ClassBucket, bool) {
	n := ix.lookup(path)
	if n == nil || n.bucket == nil {
		return nil, false
	}
	return n.bucket, true
}

// Keys returns the sorted child keys below path.
func (ix *Index) Keys(path ...string) []string {
	n := ix.lookup(path)
	if n == nil {
		return nil
	}
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether path exists as a leaf or an interior node.
func (ix *Index) Has(path ...string) bool {
	return ix.lookup(path) != nil
}

func (ix *Index) lookup(path []string) *node {
	n := ix.root
	for _, seg := range path {
		if n.children == nil {
			return nil
		}
		child, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Leaves returns every stored bucket ordered by path. Dir is left empty; the
// Walker fills it in on the leaves it reports.
func (ix *Index) Leaves() []Leaf {
	var out []Leaf
	var walk func(prefix Path, n *node)
	walk = func(prefix Path, n *node) {
		if n.bucket != nil {
			out = append(out, Leaf{Path: prefix.Clone(), Bucket: n.bucket})
		}
		keys := make([]string, 0, len(n.children))
		for k := range n.children {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(append(prefix, k), n.children[k])
		}
	}
	walk(nil, ix.root)
	return out
}

// Tree converts the index into nested map[string]any values with each leaf
// rendered as {class: []any{paths...}}. The result suits JSON encoders and
// JSONPath evaluation.
func (ix *Index) Tree() map[string]any {
	return nodeTree(ix.root)
}

func nodeTree(n *node) map[string]any {
	out := make(map[string]any, len(n.children)+len(Classes))
	for k, child := range n.children {
		out[k] = nodeTree(child)
	}
	if n.bucket != nil {
		for _, class := range Classes {
			paths := n.bucket[class]
			items := make([]any, len(paths))
			for i, p := range paths {
				items[i] = p
			}
			out[string(class)] = items
		}
	}
	return out
}
