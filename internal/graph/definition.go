// Package graph loads task graph definitions and orders them for submission.
package graph

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Justype/qsubgraph/internal/scheduler"
)

// ErrCycle is returned when the dependency graph is not acyclic.
var ErrCycle = errors.New("graph: dependency cycle")

// Definition declares a task graph: one entry-point script per node plus the
// nodes each one waits for.
type Definition struct {
	Name     string  `json:"name" yaml:"name"`
	Template string  `json:"template,omitempty" yaml:"template,omitempty"`
	QsubArgs string  `json:"qsub_args,omitempty" yaml:"qsub_args,omitempty"`
	Nodes    []*Node `json:"nodes" yaml:"nodes"`
}

// Node is one task of the graph. It satisfies scheduler.Node and
// scheduler.OverrideProvider.
type Node struct {
	ID        string   `json:"name" yaml:"name"`
	Script    string   `json:"script" yaml:"script"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Template  *string  `json:"template,omitempty" yaml:"template,omitempty"`
	QsubArgs  *string  `json:"qsub_args,omitempty" yaml:"qsub_args,omitempty"`
	Append    bool     `json:"append,omitempty" yaml:"append,omitempty"`
}

// Name returns the node identifier.
func (n *Node) Name() string { return n.ID }

// SubmitOverrides exposes the node's template and qsub_args.
func (n *Node) SubmitOverrides() scheduler.Overrides {
	return scheduler.Overrides{
		Template: n.Template,
		QsubArgs: n.QsubArgs,
		Append:   n.Append,
	}
}

// Validate ensures the definition is self-consistent. It does not check
// for cycles; Order does.
func (def *Definition) Validate() error {
	if def.Name == "" {
		return fmt.Errorf("graph: name is required")
	}
	if len(def.Nodes) == 0 {
		return fmt.Errorf("graph %s: at least one node is required", def.Name)
	}
	seen := map[string]struct{}{}
	scripts := map[string]string{}
	for idx, node := range def.Nodes {
		if node == nil {
			return fmt.Errorf("graph %s node[%d]: empty entry", def.Name, idx)
		}
		if node.ID == "" {
			return fmt.Errorf("graph %s node[%d]: name is required", def.Name, idx)
		}
		if node.Script == "" {
			return fmt.Errorf("graph %s node %s: script is required", def.Name, node.ID)
		}
		if _, exists := seen[node.ID]; exists {
			return fmt.Errorf("graph %s: duplicate node name %s", def.Name, node.ID)
		}
		seen[node.ID] = struct{}{}

		script := filepath.Clean(node.Script)
		if owner, exists := scripts[script]; exists {
			return fmt.Errorf("graph %s: nodes %s and %s share script %s", def.Name, owner, node.ID, node.Script)
		}
		scripts[script] = node.ID
	}
	for _, node := range def.Nodes {
		for _, dep := range node.DependsOn {
			if dep == node.ID {
				return fmt.Errorf("graph %s: node %s depends on itself", def.Name, node.ID)
			}
			if _, ok := seen[dep]; !ok {
				return fmt.Errorf("graph %s: dependency %s -> %s references unknown node", def.Name, node.ID, dep)
			}
		}
	}
	return nil
}

// Order returns the nodes in topological order. Among nodes that are ready at
// the same time, declaration order wins, so an already sorted definition
// keeps its order.
func (def *Definition) Order() ([]*Node, error) {
	position := make(map[string]int, len(def.Nodes))
	for idx, node := range def.Nodes {
		position[node.ID] = idx
	}

	pending := make([]int, len(def.Nodes))
	dependents := make([][]int, len(def.Nodes))
	for idx, node := range def.Nodes {
		for _, dep := range uniqueStrings(node.DependsOn) {
			depIdx := position[dep]
			pending[idx]++
			dependents[depIdx] = append(dependents[depIdx], idx)
		}
	}

	done := make([]bool, len(def.Nodes))
	ordered := make([]*Node, 0, len(def.Nodes))
	for len(ordered) < len(def.Nodes) {
		next := -1
		for idx := range def.Nodes {
			if !done[idx] && pending[idx] == 0 {
				next = idx
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w in %s among %v", ErrCycle, def.Name, def.unfinished(done))
		}
		done[next] = true
		ordered = append(ordered, def.Nodes[next])
		for _, dependent := range dependents[next] {
			pending[dependent]--
		}
	}
	return ordered, nil
}

func (def *Definition) unfinished(done []bool) []string {
	var names []string
	for idx, node := range def.Nodes {
		if !done[idx] {
			names = append(names, node.ID)
		}
	}
	return names
}

// Plan is a graph laid out for scheduler.Engine.SubmitGraph.
type Plan struct {
	Scripts []string
	Deps    scheduler.DependencyMap
	Nodes   []scheduler.Node
}

// Plan orders the graph and converts node names to submission indices.
func (def *Definition) Plan() (*Plan, error) {
	ordered, err := def.Order()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(ordered))
	plan := &Plan{
		Scripts: make([]string, len(ordered)),
		Deps:    scheduler.DependencyMap{},
		Nodes:   make([]scheduler.Node, len(ordered)),
	}
	for idx, node := range ordered {
		index[node.ID] = idx
		plan.Scripts[idx] = node.Script
		plan.Nodes[idx] = node
		for _, dep := range uniqueStrings(node.DependsOn) {
			plan.Deps[idx] = append(plan.Deps[idx], index[dep])
		}
	}
	return plan, nil
}

func uniqueStrings(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
