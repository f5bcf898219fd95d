package filter

// Predicate matches call site namespace paths against a set of allowed
// prefixes on segment boundaries.
type Predicate struct {
	prefixes []string
}

// Match reports whether path equals an allowed prefix or continues it with a
// separator. Only the first separator byte is checked; paths handed out by
// the build are always well formed. A nil Predicate matches nothing.
func (p *Predicate) Match(path string) bool {
	if p == nil {
		return false
	}

	for _, prefix := range p.prefixes {
		if len(path) < len(prefix) || path[:len(prefix)] != prefix {
			continue
		}

		if len(path) == len(prefix) || path[len(prefix)] == Separator[0] {
			return true
		}
	}

	return false
}

func (p *Predicate) Prefixes() []string {
	if p == nil {
		return nil
	}

	return append([]string(nil), p.prefixes...)
}
