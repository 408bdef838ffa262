package rtree

import "fmt"

// ConfigError is returned by NewWithLimits when the requested fanout
// bounds can't produce a valid tree.
type ConfigError struct {
	Dim, MinChildren, MaxChildren int
	Reason                        string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rtree: invalid configuration (dim=%d, minChildren=%d, maxChildren=%d): %s",
		e.Dim, e.MinChildren, e.MaxChildren, e.Reason)
}

// invariant panics when cond is false. It exists for
// conditions that indicate a broken structural contract rather than bad
// caller input: a split reached with fewer than two candidates, or a
// group assignment that violates min_children. Those are bugs in this
// package, not something a caller can recover from, so this panics
// instead of returning an error, the way a CheckErr-style invariant
// helper aborts on a broken contract.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("rtree: invariant violated: "+format, args...))
	}
}
