package filtering

import "strings"

// DomainSet stores exact and wildcard domain entries. Exact entries match
// the domain itself and every subdomain; wildcard entries ("*.example.com")
// match subdomains only.
type DomainSet struct {
	Exact     map[string]struct{}
	Wildcards map[string]struct{}
}

// NewDomainSet creates an empty DomainSet.
func NewDomainSet() *DomainSet {
	return &DomainSet{
		Exact:     make(map[string]struct{}),
		Wildcards: make(map[string]struct{}),
	}
}

// NewDomainSetFrom builds a set from already normalized domains. Entries
// starting with "*." become wildcards.
func NewDomainSetFrom(domains ...string) *DomainSet {
	set := NewDomainSet()
	for _, d := range domains {
		if suffix, ok := strings.CutPrefix(d, "*."); ok {
			set.AddWildcard(normalizeLookupName(suffix))
			continue
		}
		set.AddExact(normalizeLookupName(d))
	}
	return set
}

// AddExact adds an exact domain to the set.
func (s *DomainSet) AddExact(domain string) {
	if domain == "" {
		return
	}
	s.Exact[domain] = struct{}{}
}

// AddWildcard adds a wildcard domain suffix to the set.
func (s *DomainSet) AddWildcard(domain string) {
	if domain == "" {
		return
	}
	s.Wildcards[domain] = struct{}{}
}

// Merge merges another DomainSet into this one.
func (s *DomainSet) Merge(other *DomainSet) {
	if other == nil {
		return
	}
	for domain := range other.Exact {
		s.Exact[domain] = struct{}{}
	}
	for domain := range other.Wildcards {
		s.Wildcards[domain] = struct{}{}
	}
}

// Len returns the number of entries in the set.
func (s *DomainSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Exact) + len(s.Wildcards)
}

// Contains reports whether name is an entry of the set or a subdomain of one.
func (s *DomainSet) Contains(name string) bool {
	_, ok := s.Match(name)
	return ok
}

// Match returns the entry that name falls under. Wildcard entries are
// reported with their "*." prefix.
func (s *DomainSet) Match(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	normalised := normalizeLookupName(name)
	if normalised == "" {
		return "", false
	}
	if _, ok := s.Exact[normalised]; ok {
		return normalised, true
	}
	for suffix := parentDomain(normalised); suffix != ""; suffix = parentDomain(suffix) {
		if _, ok := s.Exact[suffix]; ok {
			return suffix, true
		}
		if _, ok := s.Wildcards[suffix]; ok {
			return "*." + suffix, true
		}
	}
	return "", false
}

func parentDomain(name string) string {
	i := strings.IndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

func normalizeLookupName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.TrimSuffix(trimmed, ".")
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}
