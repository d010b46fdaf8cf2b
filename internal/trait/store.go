package trait

import "sync"

// Source enumerates the raw trait declarations the harness knows about,
// normally backed by the parsed manifest index.
type Source interface {
	// DeclaredOn returns the descriptors declared directly on the named
	// suite, excluding ancestors, in declaration order. Unknown suites are
	// an error.
	DeclaredOn(suite string) ([]Descriptor, error)
	// BaseOf returns the name of the suite's immediate ancestor, if any.
	BaseOf(suite string) (string, bool)
}

// Store is the per-suite descriptor cache. Declared metadata is immutable for
// the process lifetime, so entries are computed once and never invalidated.
//
// Population uses compute-then-LoadOrStore on a sync.Map: concurrent first
// requests for the same suite may compute redundantly, which is wasted work
// rather than a correctness risk, and reads never block each other. A failing
// Source call leaves the key unpopulated so a later call retries from
// scratch.
type Store struct {
	source Source
	cache  sync.Map // suite name -> []Descriptor
}

// NewStore creates a Store backed by the given source.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// DeclaredTraits returns the descriptors declared directly on the named
// suite, computing and caching them on first access.
func (s *Store) DeclaredTraits(suite string) ([]Descriptor, error) {
	if v, ok := s.cache.Load(suite); ok {
		return v.([]Descriptor), nil
	}

	descs, err := s.source.DeclaredOn(suite)
	if err != nil {
		return nil, err
	}

	actual, _ := s.cache.LoadOrStore(suite, descs)
	return actual.([]Descriptor), nil
}

// BaseOf returns the immediate ancestor of the named suite.
func (s *Store) BaseOf(suite string) (string, bool) {
	return s.source.BaseOf(suite)
}
