package graph

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Justype/qsubgraph/internal/utils"
	"gopkg.in/yaml.v3"
)

// ParseDefinitionYAML decodes and validates a graph definition from YAML/JSON
// bytes. Unknown keys are rejected. Relative paths are left untouched.
func ParseDefinitionYAML(data []byte) (*Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("graph: definition payload is empty")
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var def Definition
	if err := decoder.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("graph: decode definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if _, err := def.Order(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinitionReader reads graph definition data from an io.Reader.
func LoadDefinitionReader(r io.Reader) (*Definition, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("graph: read definition: %w", err)
	}
	return ParseDefinitionYAML(content)
}

// LoadDefinitionFile loads a graph definition from path. Relative script
// paths, and relative template paths that name existing files, are resolved
// against the directory holding the definition.
func LoadDefinitionFile(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graph: read %s: %w", path, err)
	}
	if !utils.IsYaml(path) {
		utils.PrintDebug("Graph definition %s has no .yaml/.yml extension; parsing as YAML anyway", path)
	}
	def, parseErr := ParseDefinitionYAML(content)
	if parseErr != nil {
		return nil, fmt.Errorf("graph: %s: %w", path, parseErr)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("graph: resolve %s: %w", path, err)
	}
	def.resolvePaths(baseDir)
	return def, nil
}

func (def *Definition) resolvePaths(baseDir string) {
	def.Template = resolveTemplate(baseDir, def.Template)
	for _, node := range def.Nodes {
		if !filepath.IsAbs(node.Script) {
			node.Script = filepath.Join(baseDir, node.Script)
		}
		if node.Template != nil {
			resolved := resolveTemplate(baseDir, *node.Template)
			node.Template = &resolved
		}
	}
}

// resolveTemplate keeps literal templates as they are and anchors relative
// template file paths at baseDir.
func resolveTemplate(baseDir string, template string) string {
	if template == "" || filepath.IsAbs(template) {
		return template
	}
	candidate := filepath.Join(baseDir, template)
	if utils.FileExists(candidate) {
		return candidate
	}
	return template
}
