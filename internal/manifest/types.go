package manifest

import (
	"fmt"
	"sort"

	"github.com/vk/harnessgo/internal/trait"
)

// Suite is the parsed declaration of one suite: its name, optional base
// suite, and the trait descriptors declared directly on it, in source order.
type Suite struct {
	Name    string
	Extends string
	Traits  []trait.Descriptor
	// File is the manifest the suite was declared in, for error context.
	File string
}

// Index is the loaded, immutable set of suite declarations. It implements
// trait.Source.
type Index struct {
	suites map[string]*Suite
}

// NewIndex builds an index over the given suites. Duplicate suite names are
// an error.
func NewIndex(suites []*Suite) (*Index, error) {
	ix := &Index{suites: make(map[string]*Suite, len(suites))}
	for _, s := range suites {
		if prev, exists := ix.suites[s.Name]; exists {
			return nil, fmt.Errorf("suite %q declared in both %s and %s", s.Name, prev.File, s.File)
		}
		ix.suites[s.Name] = s
	}
	if err := ix.validate(); err != nil {
		return nil, err
	}
	return ix, nil
}

// validate checks that every extends target exists and that the extends
// relation is acyclic.
func (ix *Index) validate() error {
	for name, s := range ix.suites {
		if s.Extends == "" {
			continue
		}
		if _, ok := ix.suites[s.Extends]; !ok {
			return fmt.Errorf("suite %q extends unknown suite %q", name, s.Extends)
		}

		seen := map[string]bool{name: true}
		for cur := s.Extends; cur != ""; {
			if seen[cur] {
				return fmt.Errorf("suite %q participates in an extends cycle", name)
			}
			seen[cur] = true
			cur = ix.suites[cur].Extends
		}
	}
	return nil
}

// ValidateTraitTypes checks every declared trait type against the known set.
// Collection filters by type and silently passes over names it does not
// recognize, so a typo in a manifest has to be caught here, at startup.
func (ix *Index) ValidateTraitTypes(known func(name string) bool) error {
	for _, s := range ix.Suites() {
		for _, d := range s.Traits {
			if !known(d.TraitType) {
				return fmt.Errorf("suite %q (%s) declares unknown trait type %q", s.Name, s.File, d.TraitType)
			}
		}
	}
	return nil
}

// Suites returns all suites sorted by name for deterministic iteration.
func (ix *Index) Suites() []*Suite {
	out := make([]*Suite, 0, len(ix.suites))
	for _, s := range ix.suites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DeclaredOn returns the descriptors declared directly on the named suite,
// excluding ancestors. Implements trait.Source.
func (ix *Index) DeclaredOn(suite string) ([]trait.Descriptor, error) {
	s, ok := ix.suites[suite]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q", suite)
	}
	return s.Traits, nil
}

// BaseOf returns the immediate ancestor of the named suite. Implements
// trait.Source.
func (ix *Index) BaseOf(suite string) (string, bool) {
	s, ok := ix.suites[suite]
	if !ok || s.Extends == "" {
		return "", false
	}
	return s.Extends, true
}
