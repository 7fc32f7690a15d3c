// Package flowdef loads an optional YAML description of a Flow — its steps,
// fields, and bindings — into the live engine types, the same way
// cmd/devshell/dslyaml turns a YAML pipeline description into a dsl.Container:
// parse into a Go-level Document, then build the runtime structures from it.
package flowdef

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"tform/internal/binding"
	"tform/internal/flow"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/refwidget"
	"tform/internal/validation"
	"tform/internal/value"
)

// Document is the parsed form of a flow definition file.
type Document struct {
	Steps []StepDef `yaml:"steps"`
}

// FieldDef describes one text field on a step.
type FieldDef struct {
	ID         string   `yaml:"id"`
	Label      string   `yaml:"label,omitempty"`
	Required   bool     `yaml:"required,omitempty"`
	Candidates []string `yaml:"candidates,omitempty"`
}

// BindingDef declares one binding-graph edge between two fields, resolved
// against the transform registry by name (spec §4.4).
type BindingDef struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Transform string `yaml:"transform"`
}

// StepDef describes one step: its fields, in document order, and the
// bindings that connect them.
type StepDef struct {
	ID       string       `yaml:"id"`
	Prompt   string       `yaml:"prompt"`
	Hint     string       `yaml:"hint,omitempty"`
	Fields   []FieldDef   `yaml:"fields"`
	Bindings []BindingDef `yaml:"bindings,omitempty"`
}

// Parse decodes a single YAML document. Unlike the pipeline DSL's node
// format, a flow definition's fields carry no polymorphic shapes, so a
// direct yaml.Unmarshal into Document is sufficient — there is no `command`/
// `uses`/`with` form-sniffing to do here.
func Parse(in []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return Document{}, fmt.Errorf("flowdef: %w", err)
	}
	return doc, nil
}

// Build turns a parsed Document into a live Flow and its BindingGraph. Every
// field becomes a refwidget.NewTextInput node; a required field gets a
// non-empty validator; candidates (if any) become its completion source.
func Build(doc Document, registry *binding.Registry) (*flow.Flow, *binding.Graph, error) {
	if len(doc.Steps) == 0 {
		return nil, nil, fmt.Errorf("flowdef: document has no steps")
	}
	graph := binding.NewGraph(registry)

	steps := make([]*flow.Step, 0, len(doc.Steps))
	for _, sd := range doc.Steps {
		if sd.ID == "" {
			return nil, nil, fmt.Errorf("flowdef: step is missing an id")
		}
		step := &flow.Step{ID: sd.ID, Prompt: sd.Prompt, Hint: sd.Hint}
		for _, fd := range sd.Fields {
			if fd.ID == "" {
				return nil, nil, fmt.Errorf("flowdef: step %q has a field with no id", sd.ID)
			}
			in := refwidget.NewTextInput(nodeid.ID(fd.ID), fd.Label)
			if fd.Required {
				in.WithValidators(requiredRule)
			}
			if len(fd.Candidates) > 0 {
				candidates := append([]string(nil), fd.Candidates...)
				in.WithCandidates(func(token string) []string { return candidates })
			}
			step.Roots = append(step.Roots, node.Node(in))
		}
		for _, bd := range sd.Bindings {
			if err := graph.Bind(nodeid.ID(bd.From), nodeid.DefaultPort, nodeid.ID(bd.To), nodeid.DefaultPort, bd.Transform); err != nil {
				return nil, nil, fmt.Errorf("flowdef: step %q binding %s->%s: %w", sd.ID, bd.From, bd.To, err)
			}
		}
		steps = append(steps, step)
	}

	return flow.New(steps), graph, nil
}

// requiredRule rejects an empty text value. It is the only built-in rule
// flowdef wires up on its own; anything more specific belongs in a caller's
// own validator, registered after Build returns.
func requiredRule(v value.Value, _ validation.Ctx) []validation.Issue {
	txt, _ := v.AsText()
	if txt == "" {
		return []validation.Issue{{Rule: "required", Message: "this field is required"}}
	}
	return nil
}
