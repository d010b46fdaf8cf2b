package trait

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
)

// Constructor is one overload for building a trait instance. Params lists the
// declared parameter type names; overload selection compares them against the
// declared types of a descriptor's arguments, never against the runtime types
// of the resolved values. Fn must be a func whose parameters correspond to
// Params and whose results are a pointer to the trait's struct type plus an
// optional error.
type Constructor struct {
	Params []string
	Fn     any

	params []TypeRef
	fn     reflect.Value
}

// Registration describes one trait type: its qualified name, the Go struct
// type of its instances, constructor overloads, an optional base trait type
// name, and an optional usage policy. A nil Policy means the default
// {Inherited: true, AllowMultiple: false}.
type Registration struct {
	Name   string
	Base   string
	Type   reflect.Type
	Ctors  []Constructor
	Policy *UsagePolicy
}

var errorType = reflect.TypeFor[error]()

// Registry holds all registered trait types and enums for one application
// instance. It is populated during startup and must not be mutated once
// lookups begin; all read paths are safe for concurrent use.
type Registry struct {
	traits      map[string]*Registration
	enums       map[string]*Enum
	enumsByType map[reflect.Type]*Enum
}

// NewRegistry creates and initializes an empty Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		traits:      make(map[string]*Registration),
		enums:       make(map[string]*Enum),
		enumsByType: make(map[reflect.Type]*Enum),
	}
}

// RegisterEnum registers an enumeration under its name. Registering the same
// name or Go type twice is a programmer error and panics.
func (r *Registry) RegisterEnum(e *Enum) {
	if _, exists := r.enums[e.Name]; exists {
		panic(fmt.Sprintf("enum with name '%s' already registered", e.Name))
	}
	if _, exists := r.enumsByType[e.GoType]; exists {
		panic(fmt.Sprintf("enum for Go type '%s' already registered", e.GoType))
	}
	slog.Debug("Registering enum.", "name", e.Name, "goType", e.GoType.String())
	r.enums[e.Name] = e
	r.enumsByType[e.GoType] = e
}

// RegisterTrait registers a trait type. Malformed registrations (duplicate
// name, unresolvable parameter types, constructor signature mismatches) are
// programmer errors and panic, mirroring the fail-fast startup discipline of
// handler registration.
func (r *Registry) RegisterTrait(reg *Registration) {
	if _, exists := r.traits[reg.Name]; exists {
		panic(fmt.Sprintf("trait type with name '%s' already registered", reg.Name))
	}
	if reg.Type == nil || reg.Type.Kind() != reflect.Struct {
		panic(fmt.Sprintf("trait type '%s': Type must be a struct type", reg.Name))
	}

	for i := range reg.Ctors {
		ctor := &reg.Ctors[i]
		ctor.fn = reflect.ValueOf(ctor.Fn)
		if ctor.fn.Kind() != reflect.Func {
			panic(fmt.Sprintf("trait type '%s': constructor %d is not a func", reg.Name, i))
		}
		ft := ctor.fn.Type()
		if ft.NumIn() != len(ctor.Params) {
			panic(fmt.Sprintf("trait type '%s': constructor %d declares %d parameter types but its func takes %d", reg.Name, i, len(ctor.Params), ft.NumIn()))
		}
		switch ft.NumOut() {
		case 1:
			// *T only.
		case 2:
			if ft.Out(1) != errorType {
				panic(fmt.Sprintf("trait type '%s': constructor %d second result must be error", reg.Name, i))
			}
		default:
			panic(fmt.Sprintf("trait type '%s': constructor %d must return *%s or (*%s, error)", reg.Name, i, reg.Type.Name(), reg.Type.Name()))
		}
		if ft.Out(0) != reflect.PointerTo(reg.Type) {
			panic(fmt.Sprintf("trait type '%s': constructor %d must return *%s", reg.Name, i, reg.Type.Name()))
		}
		ctor.params = make([]TypeRef, len(ctor.Params))
		for j, name := range ctor.Params {
			ref, err := r.ResolveType(name)
			if err != nil {
				panic(fmt.Sprintf("trait type '%s': constructor %d parameter %d: %v", reg.Name, i, j, err))
			}
			ctor.params[j] = ref
		}
	}

	slog.Debug("Registering trait type.", "name", reg.Name, "goType", reg.Type.String(), "ctors", len(reg.Ctors))
	r.traits[reg.Name] = reg
}

// TraitNames returns every registered trait type name in sorted order.
func (r *Registry) TraitNames() []string {
	names := make([]string, 0, len(r.traits))
	for name := range r.traits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the registration for a qualified trait type name.
func (r *Registry) Lookup(name string) (*Registration, bool) {
	reg, ok := r.traits[name]
	return reg, ok
}

// EnumForType returns the registered enum whose Go type is t, if any. Used
// when a named-argument target field turns out to be an enum.
func (r *Registry) EnumForType(t reflect.Type) (*Enum, bool) {
	e, ok := r.enumsByType[t]
	return e, ok
}

// IsSubtype reports whether trait type name equals of, or transitively
// declares of as a base. Unknown names are never subtypes of anything.
func (r *Registry) IsSubtype(name, of string) bool {
	for name != "" {
		if name == of {
			return true
		}
		reg, ok := r.traits[name]
		if !ok {
			return false
		}
		name = reg.Base
	}
	return false
}
