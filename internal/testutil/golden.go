// Package testutil provides shared test helpers for the evaluator tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thomasrohde/schierke/go/pkg/ast"
	"github.com/thomasrohde/schierke/go/pkg/evaluator"
)

// ScenariosDir is the path to the shared scenarios, relative to a package
// directory under pkg/.
const ScenariosDir = "../../testdata/scenarios"

// Scenario is a sequence of evaluations run against one Evaluator.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Steps       []Step    `yaml:"steps"`
	Default     yaml.Node `yaml:"default,omitempty"`
}

// Step is a single Evaluate call and its expected outcome.
// Nodes are held by value since yaml.v3 will not decode into a *yaml.Node
// field; an absent node has Kind 0.
type Step struct {
	Eval   yaml.Node `yaml:"eval"`
	Env    yaml.Node `yaml:"env,omitempty"`
	Expect Expected  `yaml:"expect"`
}

// Expected holds either a value or an error code.
type Expected struct {
	Value yaml.Node `yaml:"value,omitempty"`
	Error string    `yaml:"error,omitempty"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s Scenario
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &s, nil
}

// ListScenarios returns all scenario files under the given root, sorted.
func ListScenarios(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// DecodeExpr builds an expression tree from its YAML form. Plain integers
// and strings are literals; a single-key mapping names a node kind:
//
//	{num: 2}  {text: x}  {var: [x, 2]}  {add: [1, {mul: [2, 3]}]}
func DecodeExpr(n *yaml.Node) (ast.Expr, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return nil, fmt.Errorf("line %d: empty document", n.Line)
		}
		return DecodeExpr(n.Content[0])

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			var i int64
			if err := n.Decode(&i); err != nil {
				return nil, err
			}
			return ast.Number(i), nil
		case "!!str":
			return ast.Text(n.Value), nil
		}
		return nil, fmt.Errorf("line %d: unsupported scalar %s %q", n.Line, n.ShortTag(), n.Value)

	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, fmt.Errorf("line %d: node mapping must have exactly one key", n.Line)
		}
		kind, body := n.Content[0].Value, n.Content[1]
		switch kind {
		case "num":
			var i int64
			if err := body.Decode(&i); err != nil {
				return nil, fmt.Errorf("line %d: num: %w", body.Line, err)
			}
			return ast.Number(i), nil
		case "text":
			if body.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: text must be a scalar", body.Line)
			}
			return ast.Text(body.Value), nil
		}

		parts, err := decodeSeq(body)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "var":
			return ast.Variable(parts...), nil
		case "add":
			return ast.Add(parts...), nil
		case "sub":
			return ast.Subtract(parts...), nil
		case "mul":
			return ast.Multiply(parts...), nil
		case "div":
			return ast.Divide(parts...), nil
		}
		return nil, fmt.Errorf("line %d: unknown node kind %q", n.Line, kind)
	}
	return nil, fmt.Errorf("line %d: cannot decode expression", n.Line)
}

func decodeSeq(n *yaml.Node) ([]ast.Expr, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of operands", n.Line)
	}
	parts := make([]ast.Expr, len(n.Content))
	for i, c := range n.Content {
		e, err := DecodeExpr(c)
		if err != nil {
			return nil, err
		}
		parts[i] = e
	}
	return parts, nil
}

// DecodeValue converts a YAML scalar into a Value.
func DecodeValue(n *yaml.Node) (evaluator.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: value must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return evaluator.NewNumber(i), nil
	case "!!str":
		return evaluator.NewText(n.Value), nil
	}
	return nil, fmt.Errorf("line %d: unsupported value %s %q", n.Line, n.ShortTag(), n.Value)
}

// DecodeEnv converts a YAML mapping of names to scalars into an Env.
func DecodeEnv(n *yaml.Node) (*evaluator.Env, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: env must be a mapping", n.Line)
	}
	vars := make(map[string]evaluator.Value, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := DecodeValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		vars[n.Content[i].Value] = v
	}
	return evaluator.NewEnvFrom(vars), nil
}
