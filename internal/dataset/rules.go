package dataset

import (
	"fmt"
	"strings"
)

// Predicate decides whether a rule applies to an entry. name is the entry's
// base name, dir is the name of the directory that contains it.
type Predicate func(name, dir string) bool

// Rule assigns Class to entries matching Match.
type Rule struct {
	Name  string
	Match Predicate
	Class Class
}

// RuleSet is evaluated in order; the first matching rule wins. Entries no rule
// matches fall back to ClassUnknown.
type RuleSet []Rule

// Classify returns the class and label for one entry.
func (rs RuleSet) Classify(name, dir string) (Class, Label) {
	for _, rule := range rs {
		if rule.Match != nil && rule.Match(name, dir) {
			return rule.Class, rule.Class.Label()
		}
	}
	return ClassUnknown, LabelUnknown
}

// ReferenceRules reproduces the established labelling of existing datasets.
//
// The normal rule runs first and matches on the bare substring "normal", so
// any name containing "abnormal" is labelled normal. Downstream label files
// were produced with this ordering; switching to CorrectedRules changes them.
func ReferenceRules() RuleSet {
	return RuleSet{
		{
			Name:  "normal",
			Match: AnyOf(NameContains(string(ClassNormal)), DirIs(string(ClassNormal))),
			Class: ClassNormal,
		},
		{
			Name:  "abnormal",
			Match: AnyOf(NameContains(string(ClassAbnormal), "anomal"), DirIs(string(ClassAbnormal))),
			Class: ClassAbnormal,
		},
	}
}

// CorrectedRules checks the abnormal markers before the bare "normal"
// substring so "abnormal" filenames land in the abnormal bucket.
func CorrectedRules() RuleSet {
	return RuleSet{
		{
			Name:  "abnormal",
			Match: AnyOf(NameContains(string(ClassAbnormal), "anomal"), DirIs(string(ClassAbnormal))),
			Class: ClassAbnormal,
		},
		{
			Name:  "normal",
			Match: AnyOf(NameContains(string(ClassNormal)), DirIs(string(ClassNormal))),
			Class: ClassNormal,
		},
	}
}

const (
	RuleSetReference = "reference"
	RuleSetCorrected = "corrected"
)

// RuleSetByName resolves a configured rule set name.
func RuleSetByName(name string) (RuleSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RuleSetReference:
		return ReferenceRules(), nil
	case RuleSetCorrected:
		return CorrectedRules(), nil
	default:
		return nil, fmt.Errorf("unknown rule set %q (want %q or %q)", name, RuleSetReference, RuleSetCorrected)
	}
}

// NameContains matches entries whose name contains any of the substrings.
// Matching is case-sensitive.
func NameContains(substrings ...string) Predicate {
	return func(name, _ string) bool {
		for _, s := range substrings {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

// DirIs matches every entry of a directory named exactly dirName.
func DirIs(dirName string) Predicate {
	return func(_, dir string) bool {
		return dir == dirName
	}
}

// AnyOf matches when at least one predicate does.
func AnyOf(predicates ...Predicate) Predicate {
	return func(name, dir string) bool {
		for _, p := range predicates {
			if p(name, dir) {
				return true
			}
		}
		return false
	}
}
