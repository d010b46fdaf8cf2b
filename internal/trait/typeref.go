// This file contains the logic for resolving declared type references
// (e.g. "string", "list(number)", or a registered enum name) into TypeRef
// values used for constructor overload selection and value coercion.

package trait

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// TypeRef identifies the declared type of a trait argument. A reference is
// either a concrete cty type, a registered enum, or a list of either.
type TypeRef struct {
	// Name is the canonical spelling, e.g. "number" or "list(severity)".
	Name string
	// CtyType is the concrete cty type for non-enum, non-list references.
	CtyType cty.Type
	// Enum is non-nil when the reference names a registered enum.
	Enum *Enum
	// Elem is non-nil for list references and describes the element type.
	Elem *TypeRef
}

// IsList reports whether the reference is a list type.
func (r TypeRef) IsList() bool { return r.Elem != nil }

// IsAny reports whether the reference is the dynamic "any" type, which
// matches every declared argument type during overload selection.
func (r TypeRef) IsAny() bool { return r.Name == "any" }

// Matches reports whether a declared argument type satisfies this parameter
// type. Matching is by canonical name, with "any" accepting everything.
func (r TypeRef) Matches(arg TypeRef) bool {
	return r.IsAny() || r.Name == arg.Name
}

// ResolveType parses a declared type name into a TypeRef. Primitive names
// (string, number, bool, any) and the list(...) constructor resolve directly;
// any other name must be a registered enum. Unknown names are an error that
// propagates to the caller; nothing is cached for failed resolutions.
func (r *Registry) ResolveType(name string) (TypeRef, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "string":
		return TypeRef{Name: "string", CtyType: cty.String}, nil
	case "number":
		return TypeRef{Name: "number", CtyType: cty.Number}, nil
	case "bool":
		return TypeRef{Name: "bool", CtyType: cty.Bool}, nil
	case "any":
		return TypeRef{Name: "any", CtyType: cty.DynamicPseudoType}, nil
	}

	if inner, ok := strings.CutPrefix(name, "list("); ok && strings.HasSuffix(inner, ")") {
		elem, err := r.ResolveType(strings.TrimSuffix(inner, ")"))
		if err != nil {
			return TypeRef{}, fmt.Errorf("in list element type: %w", err)
		}
		return TypeRef{Name: "list(" + elem.Name + ")", Elem: &elem}, nil
	}

	if enum, ok := r.enums[name]; ok {
		// Enum members travel as their name (string) or underlying value
		// (number), so the wire type stays dynamic.
		return TypeRef{Name: name, CtyType: cty.DynamicPseudoType, Enum: enum}, nil
	}

	return TypeRef{}, fmt.Errorf("unknown type reference %q", name)
}

// impliedTypeRef derives the declared type of an argument that carries no
// explicit annotation from the shape of its raw value.
func impliedTypeRef(v cty.Value) TypeRef {
	t := v.Type()
	switch {
	case t == cty.String:
		return TypeRef{Name: "string", CtyType: cty.String}
	case t == cty.Number:
		return TypeRef{Name: "number", CtyType: cty.Number}
	case t == cty.Bool:
		return TypeRef{Name: "bool", CtyType: cty.Bool}
	case t.IsTupleType() || t.IsListType():
		elem := impliedElement(v)
		return TypeRef{Name: "list(" + elem.Name + ")", Elem: &elem}
	default:
		return TypeRef{Name: "any", CtyType: cty.DynamicPseudoType}
	}
}

// impliedElement picks the element type of a sequence value by inspecting its
// first leaf, descending through nested sequences.
func impliedElement(v cty.Value) TypeRef {
	if v.LengthInt() == 0 {
		return TypeRef{Name: "any", CtyType: cty.DynamicPseudoType}
	}
	it := v.ElementIterator()
	it.Next()
	_, first := it.Element()
	if first.Type().IsTupleType() || first.Type().IsListType() {
		return impliedElement(first)
	}
	return impliedTypeRef(first)
}
