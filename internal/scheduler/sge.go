package scheduler

// SgeDialect drives Sun/Son of Grid Engine qsub.
type SgeDialect struct{}

const sgeHeader = `#!/bin/bash
#$ -V
#$ -S /bin/bash
`

// Name returns "SGE".
func (SgeDialect) Name() string { return "SGE" }

// HeaderTemplate exports the environment and forces bash as the job shell.
func (SgeDialect) HeaderTemplate() string { return sgeHeader }

// DependencyFlag is -hold_jid followed by a comma separated job list.
func (SgeDialect) DependencyFlag() string { return "-hold_jid " }

// JobIDExtractor keeps the third field of
// `Your job 12345 ("name") has been submitted`.
func (SgeDialect) JobIDExtractor() string { return "| awk '{print $3}'" }
