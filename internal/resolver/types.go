package resolver

// Result is the outcome of a successful resolution.
type Result[T Descriptor] struct {
	// Order holds the surviving descriptors, dependencies first.
	Order []T
	// Pruned names the on-demand mods nothing needed, sorted.
	Pruned []string
}

// Names returns the canonical names of r.Order.
func (r Result[T]) Names() []string {
	out := make([]string, 0, len(r.Order))
	for _, d := range r.Order {
		out = append(out, canonical(d))
	}
	return out
}
