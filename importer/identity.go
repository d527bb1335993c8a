package importer

// IdentityAssigner maps institution dedup keys to surrogate IDs in first-seen
// order starting at 1. IDs are never reused or renumbered.
type IdentityAssigner struct {
	ids  map[string]int
	next int
}

func NewIdentityAssigner() *IdentityAssigner {
	return &IdentityAssigner{
		ids:  make(map[string]int),
		next: 1,
	}
}

// Resolve returns the ID for key, allocating the next one if key is new.
// created reports whether an allocation happened.
func (a *IdentityAssigner) Resolve(key string) (id int, created bool) {
	if id, ok := a.ids[key]; ok {
		return id, false
	}
	id = a.next
	a.next++
	a.ids[key] = id
	return id, true
}

// Lookup returns the ID already assigned to key, if any.
func (a *IdentityAssigner) Lookup(key string) (int, bool) {
	id, ok := a.ids[key]
	return id, ok
}

// Len returns the number of keys assigned so far.
func (a *IdentityAssigner) Len() int {
	return len(a.ids)
}
