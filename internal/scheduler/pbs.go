package scheduler

// PbsDialect drives PBS/Torque qsub.
type PbsDialect struct{}

const pbsHeader = `#!/bin/bash
#PBS -V
`

// Name returns "PBS".
func (PbsDialect) Name() string { return "PBS" }

// HeaderTemplate exports the submitting environment into the job (-V).
func (PbsDialect) HeaderTemplate() string { return pbsHeader }

// DependencyFlag holds the job until all listed jobs exit successfully.
func (PbsDialect) DependencyFlag() string { return "-W depend=afterok:" }

// JobIDExtractor keeps the first field; PBS qsub prints only "<id>.<server>".
func (PbsDialect) JobIDExtractor() string { return "| awk '{print $1}'" }
