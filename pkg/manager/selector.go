package manager

import "context"

// SelectOptions describes which managers should participate in an operation.
type SelectOptions struct {
	// All includes every registered manager regardless of availability.
	// Meant for inventory listings, not for operations that invoke backends.
	All bool
	// Include restricts the selection to these ids; its order becomes the
	// execution/priority order (first listed runs first).
	Include []string
	// Exclude removes these ids. Exclusion is a hard veto: an id named in
	// both lists is excluded.
	Exclude []string
	// Priority is the fallback ordering applied when Include is empty,
	// typically from configuration. Ids not named keep registry order.
	Priority []string
}

// Select turns user intent into the ordered, deduplicated instance list an
// operation will run against. An empty result is not an error; it means
// nothing to do. Unknown ids in Include or Exclude are a usage error reported
// before any dispatch.
func (r *Registry) Select(ctx context.Context, opts SelectOptions) ([]Instance, error) {
	for _, id := range opts.Include {
		if !r.Has(id) {
			return nil, &SelectionError{ID: id, List: "include"}
		}
	}
	for _, id := range opts.Exclude {
		if !r.Has(id) {
			return nil, &SelectionError{ID: id, List: "exclude"}
		}
	}

	candidates := r.ResolveAll(ctx)
	if !opts.All {
		avail := candidates[:0]
		for _, inst := range candidates {
			if inst.Available {
				avail = append(avail, inst)
			}
		}
		candidates = avail
	}

	byID := make(map[string]Instance, len(candidates))
	candidateOrder := make([]string, 0, len(candidates))
	for _, inst := range candidates {
		byID[inst.ID()] = inst
		candidateOrder = append(candidateOrder, inst.ID())
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, id := range opts.Exclude {
		excluded[id] = true
	}

	var order []string
	if len(opts.Include) > 0 {
		order = opts.Include
	} else {
		// Priority ids first, then the remaining candidates in registry
		// order.
		order = append(order, opts.Priority...)
		order = append(order, candidateOrder...)
	}

	seen := make(map[string]bool, len(order))
	var selected []Instance
	for _, id := range order {
		if seen[id] || excluded[id] {
			continue
		}
		seen[id] = true
		if inst, ok := byID[id]; ok {
			selected = append(selected, inst)
		}
	}
	return selected, nil
}
