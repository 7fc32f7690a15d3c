// Package nodeid defines the stable identifier used throughout the engine
// for bindings, overlay references, and focus targets. It is its own
// package, rather than living in internal/node, so that every layer that
// needs to name a node (bindings, overlays, focus, validation) can depend on
// it without depending on the node tree itself.
package nodeid

// ID is a newtype over a string with ordered equality. Typo-tolerance is not
// a design goal: lookups return an explicit absence rather than guessing.
type ID string

// Empty is the zero ID, used to mean "no node" where a pointer would
// otherwise be required.
const Empty ID = ""

// Less gives ID a total order: lexical order of the underlying strings.
func (id ID) Less(other ID) bool { return string(id) < string(other) }

// Port names a named value channel on a node (its "default" output, or a
// named secondary one). Most nodes expose exactly one port, "".
type Port string

// DefaultPort is the port name used when a node exposes a single value.
const DefaultPort Port = ""
