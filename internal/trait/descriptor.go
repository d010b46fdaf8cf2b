package trait

import "github.com/zclconf/go-cty/cty"

// Arg is one positional constructor argument as declared in a manifest: the
// raw value plus the declared type reference. TypeName may be empty, in which
// case the declared type is implied from the value itself.
type Arg struct {
	Value    cty.Value
	TypeName string
}

// NamedArg is one named-argument assignment: a member name on the trait's Go
// struct plus the value to assign. Assignments are applied exactly once, in
// declaration order, after construction.
type NamedArg struct {
	Name  string
	Value cty.Value
}

// Descriptor is the immutable record of one trait declaration site. It is
// owned by the Store; one Descriptor exists per physical declaration.
type Descriptor struct {
	// TraitType is the declared trait type name, e.g. "timeout".
	TraitType string
	// Args are the ordered constructor arguments.
	Args []Arg
	// Named are the ordered named-argument assignments.
	Named []NamedArg
	// DeclaredOn is the suite the declaration appears on, kept for error
	// context only.
	DeclaredOn string
}
