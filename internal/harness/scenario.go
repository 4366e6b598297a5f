package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one harness run.
type Scenario struct {
	// Name identifies the scenario and its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// Steps mutate the network in order.
	Steps []Step `yaml:"steps"`

	// Expect is evaluated after the last step.
	Expect []Expectation `yaml:"expect,omitempty"`
}

// Step operations.
const (
	OpCreate  = "create"
	OpAlias   = "alias"
	OpErase   = "erase"
	OpReorder = "reorder"
	OpTag     = "tag"
	OpMove    = "move"
	OpTitle   = "title"
	OpBody    = "body"
	OpReload  = "reload"
)

// Step is a single mutation.
type Step struct {
	// Op is one of the Op constants.
	Op string `yaml:"op"`

	// Path addresses the node the step acts on. For alias it is the source.
	Path string `yaml:"path,omitempty"`

	// To is the alias destination or the new parent of a move.
	To string `yaml:"to,omitempty"`

	// Tag is the tag heading for tag steps.
	Tag string `yaml:"tag,omitempty"`

	// Order lists child headings for reorder steps.
	Order []string `yaml:"order,omitempty"`

	// Text is the new title or body.
	Text string `yaml:"text,omitempty"`

	// Error is the error code the step must fail with, such as
	// INVALID_LINEAGE. Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`
}

// Expectation types.
const (
	ExpectChildren = "children"
	ExpectResolve  = "resolve"
	ExpectExists   = "exists"
	ExpectTags     = "tags"
	ExpectTitle    = "title"
)

// Expectation checks the final network.
type Expectation struct {
	// Type is one of the Expect constants.
	Type string `yaml:"type"`

	// Path addresses the node under test.
	Path string `yaml:"path"`

	// Equals lists ordered child headings (children) or tag headings in
	// any order (tags).
	Equals []string `yaml:"equals,omitempty"`

	// To is the path Path must resolve to (resolve).
	To string `yaml:"to,omitempty"`

	// Value is the expected existence (exists).
	Value *bool `yaml:"value,omitempty"`

	// Text is the expected title (title).
	Text string `yaml:"text,omitempty"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses a scenario document. Unknown fields are rejected so
// typos such as "expects:" fail loudly.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, st := range s.Steps {
		if err := validateStep(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	for i, e := range s.Expect {
		if err := validateExpectation(e); err != nil {
			return fmt.Errorf("expect %d: %w", i+1, err)
		}
	}
	return nil
}

func validateStep(st Step) error {
	switch st.Op {
	case OpReload:
		return nil
	case OpCreate, OpErase, OpTitle, OpBody:
	case OpAlias, OpMove:
		if st.To == "" {
			return fmt.Errorf("%s requires to", st.Op)
		}
	case OpTag:
		if st.Tag == "" {
			return fmt.Errorf("tag requires tag")
		}
	case OpReorder:
		if len(st.Order) == 0 {
			return fmt.Errorf("reorder requires order")
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	if st.Path == "" {
		return fmt.Errorf("%s requires path", st.Op)
	}
	return nil
}

func validateExpectation(e Expectation) error {
	if e.Path == "" {
		return fmt.Errorf("path is required")
	}
	switch e.Type {
	case ExpectChildren, ExpectTags, ExpectTitle:
	case ExpectResolve:
		if e.To == "" {
			return fmt.Errorf("resolve requires to")
		}
	case ExpectExists:
		if e.Value == nil {
			return fmt.Errorf("exists requires value")
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown expectation type %q", e.Type)
	}
	return nil
}
