// Package scheduler turns a task graph into qsub batch scripts and a master
// submission script for PBS/Torque and SGE style schedulers.
package scheduler

import "fmt"

// Dialect supplies the scheduler-specific fragments needed to drive one
// queueing system family. All methods are pure and take no per-job input.
type Dialect interface {
	// Name is the scheduler family (e.g., "PBS", "SGE")
	Name() string

	// HeaderTemplate returns the shebang and directive lines placed at the top
	// of every batch script.
	HeaderTemplate() string

	// DependencyFlag returns the hold flag; the job variable list is appended
	// directly after it.
	DependencyFlag() string

	// JobIDExtractor returns a shell pipeline fragment that, appended to the
	// submit command, reduces its output to the bare job ID.
	JobIDExtractor() string
}

// Node is one unit of work in the graph. Name identifies it in logs and
// error messages.
type Node interface {
	Name() string
}

// OverrideProvider is implemented by nodes that carry their own submission
// options.
type OverrideProvider interface {
	SubmitOverrides() Overrides
}

// Overrides holds per-node submission options. A nil field means "not set".
type Overrides struct {
	Template *string // Template literal or path to a template file
	QsubArgs *string // Extra qsub arguments
	Append   bool    // Append to the engine values instead of replacing them
}

// DependencyMap maps a node index to the indices of the nodes that must be
// submitted before it. Prerequisites are referenced in slice order.
type DependencyMap map[int][]int

// SubmitOptions are the effective options for a single node after override
// resolution.
type SubmitOptions struct {
	Template string
	QsubArgs string
}

// JobVar returns the shell variable name holding the job ID of node idx.
func JobVar(idx int) string {
	return fmt.Sprintf("job%05d", idx)
}
