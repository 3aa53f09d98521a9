package scheduler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Justype/qsubgraph/internal/utils"
)

const (
	// MasterScriptName is the submission script written next to the node scripts.
	MasterScriptName = "submit_jobs.sh"

	DefaultInterpreter = "bash"
	DefaultSubmitBin   = "qsub"
	DefaultShell       = "bash"

	masterShebang     = "#!/usr/bin/env bash"
	masterPreamble    = "set -eo pipefail"
	batchScriptPrefix = "batchscript_"
)

// Options configures an Engine. Zero values fall back to the defaults above.
type Options struct {
	Template    string   // Template literal or path to a template file
	QsubArgs    string   // Extra arguments for every qsub call
	Interpreter string   // Runs each node script inside its batch script
	SubmitBin   string   // Submit client written into the master script
	Shell       string   // Runs the master script
	Env         []string // Environment for the master script; nil means os.Environ()
	DryRun      bool     // Write all scripts but do not run the master script
	Runner      Runner   // Executes the master script; nil means ShellRunner
}

func (o Options) ensureDefaults() Options {
	if o.Interpreter == "" {
		o.Interpreter = DefaultInterpreter
	}
	if o.SubmitBin == "" {
		o.SubmitBin = DefaultSubmitBin
	}
	if o.Shell == "" {
		o.Shell = DefaultShell
	}
	if o.Env == nil {
		o.Env = os.Environ()
	}
	if o.Runner == nil {
		o.Runner = ShellRunner{}
	}
	return o
}

// Engine writes batch scripts and a master submission script for a graph and
// runs the master script. It keeps no state between SubmitGraph calls.
type Engine struct {
	dialect   string
	depFlag   string
	extractor string

	template    string
	qsubArgs    string
	interpreter string
	submitBin   string
	shell       string
	env         []string
	dryRun      bool
	runner      Runner
}

// NewEngine binds an engine to exactly one dialect. A template given as a
// file path is read here, once.
func NewEngine(dialect Dialect, opts Options) (*Engine, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	opts = opts.ensureDefaults()

	template, err := readTemplate(opts.Template)
	if err != nil {
		return nil, err
	}
	if template == "" {
		template = dialect.HeaderTemplate()
	}

	env := make([]string, len(opts.Env))
	copy(env, opts.Env)

	return &Engine{
		dialect:     dialect.Name(),
		depFlag:     dialect.DependencyFlag(),
		extractor:   dialect.JobIDExtractor(),
		template:    template,
		qsubArgs:    opts.QsubArgs,
		interpreter: opts.Interpreter,
		submitBin:   opts.SubmitBin,
		shell:       opts.Shell,
		env:         env,
		dryRun:      opts.DryRun,
		runner:      opts.Runner,
	}, nil
}

// batchJob is one node rendered in memory before anything touches disk.
type batchJob struct {
	jobVar string
	node   string
	path   string
	body   string
	line   string
}

// SubmitGraph writes one batch script per node and submit_jobs.sh into the
// directory of scripts[0], then runs submit_jobs.sh once.
//
// scripts[i] is the entry point of nodes[i]. nodes must already be in
// topological order: every prerequisite index in deps is lower than the
// index that depends on it. The graph is validated and every script is
// rendered before the first file is written.
func (e *Engine) SubmitGraph(scripts []string, deps DependencyMap, nodes []Node) error {
	if err := validateGraph(scripts, deps, nodes); err != nil {
		return err
	}

	jobs, err := e.render(scripts, deps, nodes)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if err := writeScript(job.jobVar, job.path, job.body); err != nil {
			return err
		}
		utils.PrintDebug("Wrote batch script for %s: %s", utils.StyleName(job.node), utils.StylePath(job.path))
	}

	masterPath := masterScriptPath(scripts)
	var master strings.Builder
	master.WriteString(masterShebang + "\n")
	master.WriteString(masterPreamble + "\n")
	for _, job := range jobs {
		master.WriteString(job.line + "\n")
	}
	if err := writeScript("submit_jobs", masterPath, master.String()); err != nil {
		return err
	}
	utils.PrintDebug("Wrote master submission script: %s", utils.StylePath(masterPath))

	if e.dryRun {
		utils.PrintHint("Dry run: %s jobs written, run %s to submit them",
			utils.StyleNumber(len(jobs)), utils.StyleCommand(e.shell+" "+masterPath))
		return nil
	}

	utils.PrintDebug("Executing: %s", utils.StyleCommand(e.shell+" "+masterPath))
	output, err := e.runner.Run(e.shell, masterPath, e.env)
	if output != "" {
		utils.PrintDebug("Submission output:\n%s", output)
	}
	if err != nil {
		if !IsInvocationError(err) {
			err = NewInvocationError(e.shell+" "+masterPath, output, err)
		}
		return err
	}

	utils.PrintSuccess("Submitted all %s jobs to the %s queue", utils.StyleNumber(len(jobs)), e.dialect)
	return nil
}

// render builds every batch script body and master script line in node order.
func (e *Engine) render(scripts []string, deps DependencyMap, nodes []Node) ([]batchJob, error) {
	jobs := make([]batchJob, 0, len(scripts))
	for idx, script := range scripts {
		node := nodes[idx]
		opts, err := e.resolveOptions(node)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.Name(), err)
		}

		jobVar := JobVar(idx)
		batchPath := batchScriptPath(script)
		stdoutFlag, stderrFlag := redirectFlags(opts.QsubArgs, batchPath)

		parts := []string{
			e.submitBin,
			stdoutFlag,
			stderrFlag,
			opts.QsubArgs,
			e.dependencyClause(deps[idx]),
			"-N", jobVar,
			batchPath,
			e.extractor,
		}

		jobs = append(jobs, batchJob{
			jobVar: jobVar,
			node:   node.Name(),
			path:   batchPath,
			body:   e.batchBody(opts.Template, script),
			line:   fmt.Sprintf("%s=$(%s)", jobVar, joinNonEmpty(parts)),
		})
	}
	return jobs, nil
}

// resolveOptions applies node overrides on top of the engine values.
// An empty per-node template is treated as unset.
func (e *Engine) resolveOptions(node Node) (SubmitOptions, error) {
	opts := SubmitOptions{Template: e.template, QsubArgs: e.qsubArgs}

	provider, ok := node.(OverrideProvider)
	if !ok {
		return opts, nil
	}
	ov := provider.SubmitOverrides()

	if ov.Template != nil && *ov.Template != "" {
		template, err := readTemplate(*ov.Template)
		if err != nil {
			return SubmitOptions{}, err
		}
		if ov.Append {
			opts.Template = ensureNewline(opts.Template) + template
		} else {
			opts.Template = template
		}
	}

	if ov.QsubArgs != nil {
		if ov.Append {
			opts.QsubArgs = joinNonEmpty([]string{opts.QsubArgs, *ov.QsubArgs})
		} else {
			opts.QsubArgs = *ov.QsubArgs
		}
	}

	return opts, nil
}

// dependencyClause returns the hold flag followed by the job variables of
// prereqs, or "" when there are none.
func (e *Engine) dependencyClause(prereqs []int) string {
	if len(prereqs) == 0 {
		return ""
	}
	seen := make(map[int]bool, len(prereqs))
	refs := make([]string, 0, len(prereqs))
	for _, dep := range prereqs {
		if seen[dep] {
			continue
		}
		seen[dep] = true
		refs = append(refs, "${"+JobVar(dep)+"}")
	}
	return e.depFlag + strings.Join(refs, ",")
}

func (e *Engine) batchBody(template string, script string) string {
	command := e.interpreter + " " + script
	return ensureNewline(strings.TrimRight(template, "\n")) + command + "\n"
}

// validateGraph checks the SubmitGraph preconditions.
func validateGraph(scripts []string, deps DependencyMap, nodes []Node) error {
	if len(scripts) != len(nodes) {
		return NewPreconditionError(-1, "%d scripts for %d nodes", len(scripts), len(nodes))
	}
	if len(scripts) == 0 {
		return ErrEmptyGraph
	}
	for idx, script := range scripts {
		if nodes[idx] == nil {
			return NewPreconditionError(idx, "node is nil")
		}
		if script == "" {
			return NewPreconditionError(idx, "node %s has no script", nodes[idx].Name())
		}
	}

	keys := make([]int, 0, len(deps))
	for idx := range deps {
		keys = append(keys, idx)
	}
	sort.Ints(keys)

	n := len(scripts)
	for _, idx := range keys {
		if idx < 0 || idx >= n {
			return NewPreconditionError(idx, "dependency entry outside graph of %d nodes", n)
		}
		for _, dep := range deps[idx] {
			if dep < 0 || dep >= n {
				return NewPreconditionError(idx, "prerequisite %d outside graph of %d nodes", dep, n)
			}
			if dep >= idx {
				return NewPreconditionError(idx, "prerequisite %d is not submitted before node %d; nodes must be topologically sorted", dep, idx)
			}
		}
	}

	return checkOutputPaths(scripts)
}

// checkOutputPaths rejects graphs whose generated files would overwrite a
// node script or each other.
func checkOutputPaths(scripts []string) error {
	masterPath := filepath.Clean(masterScriptPath(scripts))
	nodeScripts := make(map[string]int, len(scripts))
	for idx, script := range scripts {
		clean := filepath.Clean(script)
		if clean == masterPath {
			return NewPreconditionError(idx, "script %s would be overwritten by %s", script, MasterScriptName)
		}
		if prev, exists := nodeScripts[clean]; exists {
			return NewPreconditionError(idx, "script %s is also used by node %d", script, prev)
		}
		nodeScripts[clean] = idx
	}

	batches := make(map[string]int, len(scripts))
	for idx, script := range scripts {
		batch := filepath.Clean(batchScriptPath(script))
		if owner, exists := nodeScripts[batch]; exists {
			return NewPreconditionError(idx, "batch script %s would overwrite the script of node %d", batch, owner)
		}
		if prev, exists := batches[batch]; exists {
			return NewPreconditionError(idx, "batch script %s collides with node %d", batch, prev)
		}
		batches[batch] = idx
	}
	return nil
}

func masterScriptPath(scripts []string) string {
	return filepath.Join(filepath.Dir(scripts[0]), MasterScriptName)
}

// batchScriptPath places batchscript_<stem>.sh next to script.
func batchScriptPath(script string) string {
	return filepath.Join(filepath.Dir(script), batchScriptPrefix+utils.TrimExt(script)+".sh")
}

// readTemplate returns the contents of value when it names an existing file,
// otherwise value itself.
func readTemplate(value string) (string, error) {
	if !utils.FileExists(value) {
		return value, nil
	}
	content, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", value, err)
	}
	return string(content), nil
}

// writeScript writes content to path and marks it executable.
func writeScript(jobName string, path string, content string) error {
	file, err := os.Create(path)
	if err != nil {
		return NewScriptCreationError(jobName, path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(content); err != nil {
		return NewScriptCreationError(jobName, path, err)
	}
	if err := writer.Flush(); err != nil {
		return NewScriptCreationError(jobName, path, err)
	}

	if err := os.Chmod(path, utils.PermExec); err != nil {
		return NewScriptCreationError(jobName, path, err)
	}
	return nil
}

func joinNonEmpty(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, strings.TrimSpace(part))
		}
	}
	return strings.Join(kept, " ")
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
