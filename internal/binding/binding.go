// Package binding implements the BindingGraph (spec §3, §4.4): explicit
// source -> target value channels with named, pure transformations, the
// only sanctioned mechanism for cross-node value flow.
package binding

import (
	"fmt"
	"strings"

	"tform/internal/nodeid"
	"tform/internal/value"
)

// Transform is a pure Value -> Value function registered by name.
type Transform func(value.Value) (value.Value, error)

// Identity passes the value through unchanged.
func Identity(v value.Value) (value.Value, error) { return v, nil }

// CsvToList splits a Text value on commas, trimming whitespace, into a
// List. Non-Text input is a BindingError (spec §7).
func CsvToList(v value.Value) (value.Value, error) {
	s, ok := v.AsText()
	if !ok {
		return value.None, fmt.Errorf("CsvToList: expected Text, got %s", v.Kind())
	}
	if strings.TrimSpace(s) == "" {
		return value.List(nil), nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return value.List(out), nil
}

// Registry names the built-in transformations plus any extension points a
// caller registers.
type Registry struct {
	byName map[string]Transform
}

// NewRegistry returns a Registry seeded with the built-ins.
func NewRegistry() *Registry {
	r := &Registry{byName: map[string]Transform{
		"Identity":   Identity,
		"CsvToList":  CsvToList,
	}}
	return r
}

// Register adds an extension transform under name, overwriting any
// previous registration (extension points are caller-owned).
func (r *Registry) Register(name string, fn Transform) { r.byName[name] = fn }

// Get looks up a transform by name.
func (r *Registry) Get(name string) (Transform, bool) {
	fn, ok := r.byName[name]
	return fn, ok
}

// endpoint names one side of an edge.
type endpoint struct {
	Node nodeid.ID
	Port nodeid.Port
}

// edge is one source -> target channel.
type edge struct {
	from      endpoint
	to        endpoint
	transform string
}

// Graph is the set of declared binding edges, plus the registry used to
// resolve transform names to functions.
type Graph struct {
	registry *Registry
	edges    map[endpoint][]edge
}

// NewGraph returns an empty Graph backed by registry.
func NewGraph(registry *Registry) *Graph {
	return &Graph{registry: registry, edges: make(map[endpoint][]edge)}
}

// Bind declares an edge from (sourceNode, sourcePort) to (targetNode,
// targetPort) applying the named transform. It fails construction (rather
// than behaving unpredictably at runtime) if transform is unknown or if the
// edge would create a cycle.
func (g *Graph) Bind(sourceNode nodeid.ID, sourcePort nodeid.Port, targetNode nodeid.ID, targetPort nodeid.Port, transform string) error {
	if _, ok := g.registry.Get(transform); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTransform, transform)
	}
	from := endpoint{Node: sourceNode, Port: sourcePort}
	to := endpoint{Node: targetNode, Port: targetPort}

	if g.reaches(to.Node, from.Node) {
		return ErrCycle
	}

	g.edges[from] = append(g.edges[from], edge{from: from, to: to, transform: transform})
	return nil
}

// reaches reports whether a value written at "from" could, via existing
// edges, eventually flow back into "target" — used to reject cycles at
// construction time.
func (g *Graph) reaches(from, target nodeid.ID) bool {
	seen := map[nodeid.ID]bool{}
	var walk func(n nodeid.ID) bool
	walk = func(n nodeid.ID) bool {
		if n == target {
			return true
		}
		if seen[n] {
			return false
		}
		seen[n] = true
		for ep, out := range g.edges {
			if ep.Node != n {
				continue
			}
			for _, e := range out {
				if walk(e.to.Node) {
					return true
				}
			}
		}
		return false
	}
	return walk(from)
}

// Result is one propagated write: the resolved target and the value to set
// there, or the error the transform raised.
type Result struct {
	Target nodeid.ID
	Port   nodeid.Port
	Value  value.Value
	Err    error
}

// Propagate applies every outgoing edge of (sourceNode, sourcePort) to v and
// returns the per-edge results. Writes occur in a single pass: transitive
// propagation requires explicit multi-hop bindings (spec §4.4 — no implicit
// re-execution), so Propagate never recurses into the target's own outgoing
// edges.
func (g *Graph) Propagate(sourceNode nodeid.ID, sourcePort nodeid.Port, v value.Value) []Result {
	from := endpoint{Node: sourceNode, Port: sourcePort}
	edges := g.edges[from]
	results := make([]Result, 0, len(edges))
	for _, e := range edges {
		fn, _ := g.registry.Get(e.transform) // validated at Bind time
		out, err := fn(v)
		results = append(results, Result{Target: e.to.Node, Port: e.to.Port, Value: out, Err: err})
	}
	return results
}
