package manager

// normalize enforces the core's half of the adapter contract on raw parse
// output: every package carries the manager id and a non-empty package id,
// and version strings pass through verbatim. A record with an empty id is
// downgraded to an AdapterError rather than dropped silently.
func normalize(id string, pkgs []Package, errs []AdapterError) ([]Package, []AdapterError) {
	out := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		if p.ID == "" {
			errs = append(errs, AdapterError{
				Manager: id,
				Msg:     "package record without an id",
			})
			continue
		}
		p.Manager = id
		out = append(out, p)
	}
	for i := range errs {
		errs[i].Manager = id
	}
	return out, errs
}
