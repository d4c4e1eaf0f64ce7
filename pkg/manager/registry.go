package manager

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Registry holds all known adapters and answers availability questions for
// the current host. Construct one explicitly at process start and pass it
// into the selector and dispatcher; there is no package-level instance.
type Registry struct {
	mu        sync.Mutex
	adapters  map[string]Adapter
	order     []string // registration order
	instances map[string]Instance
	runner    Runner
	platform  string
}

// NewRegistry creates an empty registry probing with the given runner on the
// current platform.
func NewRegistry(runner Runner) *Registry {
	return &Registry{
		adapters:  make(map[string]Adapter),
		instances: make(map[string]Instance),
		runner:    runner,
		platform:  runtime.GOOS,
	}
}

// SetPlatform overrides the platform used for availability checks. Intended
// for tests and for inventory listings of foreign-platform managers.
func (r *Registry) SetPlatform(goos string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platform = goos
	r.instances = make(map[string]Instance)
}

// Register adds an adapter. Re-registering an id replaces the previous
// adapter and drops its cached instance.
func (r *Registry) Register(a Adapter) {
	id := a.Descriptor().ID
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[id]; !exists {
		r.order = append(r.order, id)
	}
	r.adapters[id] = a
	delete(r.instances, id)
}

// All returns every registered adapter in registration order.
func (r *Registry) All() []Adapter {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Adapter, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.adapters[id])
	}
	return out
}

// IDs returns every registered manager id in registration order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// ByID returns the adapter registered under id.
func (r *Registry) ByID(id string) (Adapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.adapters[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return a, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.adapters[id]
	return ok
}

// Resolve probes the host for the adapter registered under id and returns the
// resulting instance. The probe runs at most once per registry lifetime; the
// result is cached. An unregistered id yields an unavailable instance rather
// than an error, since callers validate ids through the selector.
func (r *Registry) Resolve(ctx context.Context, id string) Instance {
	r.mu.Lock()
	if inst, ok := r.instances[id]; ok {
		r.mu.Unlock()
		return inst
	}
	a, ok := r.adapters[id]
	platform := r.platform
	r.mu.Unlock()

	if !ok {
		return Instance{
			Descriptor: Descriptor{ID: id},
			Reason:     "not registered",
		}
	}

	inst := r.probe(ctx, a, platform)

	r.mu.Lock()
	// Each probe writes only its own slot; a concurrent duplicate probe of
	// the same id produces the same value, so last write wins is fine.
	r.instances[id] = inst
	r.mu.Unlock()
	return inst
}

// ResolveAll resolves every registered adapter concurrently and returns the
// instances in registration order.
func (r *Registry) ResolveAll(ctx context.Context) []Instance {
	ids := r.IDs()
	out := make([]Instance, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(slot int, id string) {
			defer wg.Done()
			out[slot] = r.Resolve(ctx, id)
		}(i, id)
	}
	wg.Wait()
	return out
}

// Supersedes returns the redundant-manager relation declared by the
// registered descriptors: superseding id to superseded ids.
func (r *Registry) Supersedes() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]string)
	for _, id := range r.order {
		d := r.adapters[id].Descriptor()
		if len(d.Supersedes) > 0 {
			out[id] = append([]string(nil), d.Supersedes...)
		}
	}
	return out
}

// probe is the only place that touches the filesystem or spawns a process for
// availability purposes. Probe failures downgrade availability and attach a
// reason; they never surface as errors.
func (r *Registry) probe(ctx context.Context, a Adapter, platform string) Instance {
	d := a.Descriptor()
	inst := Instance{Descriptor: d, Adapter: a}

	// Fast path: a foreign-platform manager is unavailable without spawning
	// anything.
	if !d.SupportsPlatform(platform) {
		inst.Reason = fmt.Sprintf("not supported on %s", platform)
		return inst
	}

	path, err := r.runner.LookPath(d.Binary)
	if err != nil {
		inst.Reason = fmt.Sprintf("%s not found in PATH", d.Binary)
		return inst
	}
	inst.Path = path

	if len(d.VersionQuery) > 0 {
		res, err := r.runner.Run(ctx, Invocation{
			Argv: append([]string{d.Binary}, d.VersionQuery...),
		})
		if err != nil {
			inst.Reason = fmt.Sprintf("version query failed: %v", err)
			return inst
		}
		if res.ExitCode != 0 {
			inst.Reason = fmt.Sprintf("version query exited with status %d", res.ExitCode)
			return inst
		}
		inst.VersionRaw = firstLine(res.Stdout)
		if inst.VersionRaw == "" {
			inst.VersionRaw = firstLine(res.Stderr)
		}
		if v, ok := ParseVersion(inst.VersionRaw); ok {
			inst.Version = v
			if !d.MinVersion.IsZero() && v.Compare(d.MinVersion) < 0 {
				inst.Reason = fmt.Sprintf("version %s is below the minimum supported %s", v, d.MinVersion)
				return inst
			}
		}
	}

	inst.Available = true
	return inst
}
