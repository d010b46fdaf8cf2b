package trait

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Trait pairs one descriptor with its lazily materialized instance. The
// instance is built at most once, on first access; a materialization failure
// is remembered and returned on every subsequent access but never affects
// sibling traits collected from the same element.
type Trait struct {
	Descriptor Descriptor

	mat  *Materializer
	once sync.Once
	m    *Materialized
	err  error
}

// Instance returns the live trait instance, materializing it on first call.
func (t *Trait) Instance() (any, error) {
	t.once.Do(func() {
		t.m, t.err = t.mat.Materialize(t.Descriptor)
	})
	if t.err != nil {
		return nil, t.err
	}
	return t.m.Instance, nil
}

// ConstructorArguments returns the resolved, converted constructor arguments
// for this trait's descriptor, materializing on first call.
func (t *Trait) ConstructorArguments() ([]any, error) {
	if _, err := t.Instance(); err != nil {
		return nil, err
	}
	return t.m.Args, nil
}

// NamedMember reads a member value by exact, case-sensitive name from the
// materialized instance. A name that does not match a settable member fails
// with *LookupError naming both the member and the instance's type.
func (t *Trait) NamedMember(name string) (any, error) {
	inst, err := t.Instance()
	if err != nil {
		return nil, err
	}
	field := reflect.ValueOf(inst).Elem().FieldByName(name)
	if !field.IsValid() || !field.CanSet() {
		return nil, &LookupError{TypeName: reflect.TypeOf(inst).Elem().String(), Member: name}
	}
	return field.Interface(), nil
}

// Named is the typed form of NamedMember.
func Named[T any](t *Trait, name string) (T, error) {
	var zero T
	v, err := t.NamedMember(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("member %q has type %T, not %T", name, v, zero)
	}
	return typed, nil
}

// Collector assembles the ordered, policy-aware set of traits visible on a
// suite, walking its extends chain.
type Collector struct {
	reg    *Registry
	store  *Store
	policy *PolicyResolver
	mat    *Materializer
}

// NewCollector wires a collector from a registry and a descriptor source.
func NewCollector(reg *Registry, source Source) *Collector {
	return &Collector{
		reg:    reg,
		store:  NewStore(source),
		policy: NewPolicyResolver(reg),
		mat:    NewMaterializer(reg),
	}
}

// Store exposes the underlying descriptor cache, primarily for testing.
func (c *Collector) Store() *Store { return c.store }

// TraitsOf returns the traits of the requested type (or any registered
// subtype of it) visible on the named suite.
//
// Within one hierarchy level the result is sorted ascending by declared trait
// type name using plain byte-wise string comparison; that is the only
// ordering rule and it is never applied across levels. Whether ancestor
// levels contribute at all is decided by the requested type's usage policy:
// an inherited single-valued trait stops climbing at the nearest declaring
// level, an inherited multi-valued trait accumulates every level, descendant
// first. Instances materialize lazily; call Instance on each returned Trait.
func (c *Collector) TraitsOf(suite, traitType string) ([]*Trait, error) {
	if _, ok := c.reg.Lookup(traitType); !ok {
		return nil, fmt.Errorf("unknown trait type %q", traitType)
	}
	return c.collect(suite, traitType)
}

func (c *Collector) collect(suite, traitType string) ([]*Trait, error) {
	descs, err := c.store.DeclaredTraits(suite)
	if err != nil {
		return nil, err
	}

	var local []*Trait
	for _, d := range descs {
		if c.reg.IsSubtype(d.TraitType, traitType) {
			local = append(local, &Trait{Descriptor: d, mat: c.mat})
		}
	}
	sort.SliceStable(local, func(i, j int) bool {
		return local[i].Descriptor.TraitType < local[j].Descriptor.TraitType
	})

	policy := c.policy.Resolve(traitType)
	if policy.Inherited && (policy.AllowMultiple || len(local) == 0) {
		if base, ok := c.store.BaseOf(suite); ok {
			inherited, err := c.collect(base, traitType)
			if err != nil {
				return nil, err
			}
			local = append(local, inherited...)
		}
	}

	return local, nil
}
