package enricher

// Registry is the fixed dispatch table of enrichment modules, built once at
// startup. Lookup is by stable id; listing preserves registration order so
// the UI and the default module ordering stay deterministic.
type Registry struct {
	order []string
	byID  map[string]Enricher
}

// NewRegistry builds a registry from the given modules. A duplicate id
// keeps the first registration.
func NewRegistry(enrichers ...Enricher) *Registry {
	r := &Registry{byID: make(map[string]Enricher, len(enrichers))}
	for _, e := range enrichers {
		if _, exists := r.byID[e.ID()]; exists {
			continue
		}
		r.byID[e.ID()] = e
		r.order = append(r.order, e.ID())
	}
	return r
}

// Get returns the module registered under id.
func (r *Registry) Get(id string) (Enricher, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// IDs returns all registered ids in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// AvailableIDs returns the ids of modules whose credentials are configured,
// in registration order. Key-gated modules without keys are left out.
func (r *Registry) AvailableIDs() []string {
	ids := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if r.byID[id].Available() {
			ids = append(ids, id)
		}
	}
	return ids
}

// List returns display descriptors in registration order.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, Describe(r.byID[id]))
	}
	return infos
}
