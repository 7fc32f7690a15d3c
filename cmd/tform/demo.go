package main

import (
	"tform/internal/binding"
	"tform/internal/flow"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/refwidget"
	"tform/internal/validation"
	"tform/internal/value"
	"tform/internal/widget"
)

// demoFlow builds a small two-step flow exercising the engine end to end: a
// contact step with a bound tags field, an info overlay that Alt+1 opens
// (Ctrl+O opens the shortcut picker, which lists it; choosing an entry there
// emits a selection event and does not open the overlay), and a
// confirmation step.
func demoFlow() *flow.Flow {
	email := refwidget.NewTextInput("email", "you@example.com")
	email.WithValidators(requiredText)

	tags := refwidget.NewTextInput("tags", "comma, separated, tags")

	sysinfo := refwidget.NewSysInfo("sysinfo")
	info := node.NewComponent("info-overlay", node.Node(sysinfo)).
		MarkOverlayRoot(widget.OverlayMeta{Placement: widget.PlacementAnchored, Mode: widget.Shared})

	contact := &flow.Step{
		ID:       "contact",
		Prompt:   "Contact details",
		Hint:     "Alt+1: system info",
		Roots:    []node.Node{email, tags},
		Overlays: []node.Node{node.Node(info)},
	}

	confirm := &flow.Step{
		ID:     "confirm",
		Prompt: "Review and submit",
		Roots:  []node.Node{refwidget.NewTextInput("confirm-note", "type yes to submit")},
	}

	return flow.New([]*flow.Step{contact, confirm})
}

// demoGraph declares a CsvToList binding from the contact step's tags field
// to the confirmation note. The reducer resolves binding targets only among
// the active step's nodes and the open overlays, so while the contact step
// is active the confirmation note, which lives in the next step, is not
// written by this binding.
func demoGraph(registry *binding.Registry) *binding.Graph {
	g := binding.NewGraph(registry)
	_ = g.Bind(nodeid.ID("tags"), nodeid.DefaultPort, nodeid.ID("confirm-note"), nodeid.DefaultPort, "CsvToList")
	return g
}

func requiredText(v value.Value, _ validation.Ctx) []validation.Issue {
	txt, _ := v.AsText()
	if txt == "" {
		return []validation.Issue{{Rule: "required", Message: "this field is required"}}
	}
	return nil
}
