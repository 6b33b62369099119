// Package resolver orders mods by their declared requirements, conflicts
// and load hints.
//
// Resolution is a pure function of the descriptors and the provided names:
// it never performs I/O and keeps no state between calls to Order.
package resolver

import "github.com/bayleafwalker/bindery-modloader/internal/graph"

// Descriptor is the view of a mod the resolver needs.
type Descriptor = graph.Descriptor
