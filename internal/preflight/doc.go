// Package preflight provides readiness checks for the directories anomalyset
// reads and writes.
//
// The CLI "anomalyset check" command renders every Result; "anomalyset index"
// does not call it and instead fails on the first missing leaf.
package preflight
