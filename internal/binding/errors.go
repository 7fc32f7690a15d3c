package binding

import "errors"

var (
	// ErrCycle is returned by Bind when adding an edge would close a cycle.
	// Spec §3: "cycles are a construction error, not a runtime behavior."
	ErrCycle = errors.New("binding graph: cycle detected")

	// ErrUnknownTransform is returned by Bind when transform names an
	// unregistered transformation.
	ErrUnknownTransform = errors.New("binding graph: unknown transform")
)
