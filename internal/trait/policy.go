package trait

import "sync"

// UsagePolicy holds the inheritance and multiplicity rules for one trait
// type. Inherited controls whether the collector climbs into ancestor suites;
// AllowMultiple controls whether declarations accumulate across levels or the
// nearest level wins.
type UsagePolicy struct {
	Inherited     bool
	AllowMultiple bool
}

// DefaultPolicy is the policy applied when a registration declares none.
func DefaultPolicy() UsagePolicy {
	return UsagePolicy{Inherited: true, AllowMultiple: false}
}

// PolicyResolver caches the effective usage policy per trait type name.
// Resolution is a pure function of the immutable registry, so concurrent
// first lookups may compute redundantly and converge on equivalent values.
type PolicyResolver struct {
	reg   *Registry
	cache sync.Map // trait type name -> UsagePolicy
}

// NewPolicyResolver creates a resolver backed by the given registry.
func NewPolicyResolver(reg *Registry) *PolicyResolver {
	return &PolicyResolver{reg: reg}
}

// Resolve returns the usage policy for the given trait type name, computing
// and caching it on first access. Unregistered names resolve to the default
// policy.
func (p *PolicyResolver) Resolve(traitType string) UsagePolicy {
	if v, ok := p.cache.Load(traitType); ok {
		return v.(UsagePolicy)
	}

	policy := DefaultPolicy()
	if reg, ok := p.reg.Lookup(traitType); ok && reg.Policy != nil {
		policy = *reg.Policy
	}

	actual, _ := p.cache.LoadOrStore(traitType, policy)
	return actual.(UsagePolicy)
}
