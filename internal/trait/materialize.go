// This file contains the logic for turning one Descriptor into a live trait
// instance: constructor overload selection on declared argument types,
// recursive value coercion, and named-argument assignment.

package trait

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Materialized pairs a live trait instance with its resolved, converted
// constructor arguments.
type Materialized struct {
	// Instance is a pointer to the trait's struct type.
	Instance any
	// Args are the resolved constructor argument values, in declaration
	// order, after all coercion.
	Args []any
}

// Materializer turns descriptors into live instances using the registered
// constructor overloads. It holds no mutable state of its own; materializing
// one descriptor is independent of every other descriptor.
type Materializer struct {
	reg *Registry
}

// NewMaterializer creates a materializer backed by the given registry.
func NewMaterializer(reg *Registry) *Materializer {
	return &Materializer{reg: reg}
}

// Materialize builds a live instance from one descriptor. Overload selection
// compares the descriptor's declared argument types against each
// constructor's declared parameter types; the resolved values' runtime types
// play no part, which keeps selection deterministic when an enum member is
// spelled as its underlying value. Failures are reported as
// *InstantiationError and never affect sibling descriptors.
func (m *Materializer) Materialize(desc Descriptor) (*Materialized, error) {
	reg, ok := m.reg.Lookup(desc.TraitType)
	if !ok {
		return nil, &InstantiationError{TraitType: desc.TraitType, Element: desc.DeclaredOn, Detail: "unknown trait type"}
	}

	declared := make([]TypeRef, len(desc.Args))
	for i, arg := range desc.Args {
		if arg.TypeName == "" {
			declared[i] = impliedTypeRef(arg.Value)
			continue
		}
		ref, err := m.reg.ResolveType(arg.TypeName)
		if err != nil {
			return nil, &InstantiationError{TraitType: desc.TraitType, Element: desc.DeclaredOn, Detail: fmt.Sprintf("argument %d", i), Err: err}
		}
		declared[i] = ref
	}

	ctor := selectConstructor(reg, declared)
	if ctor == nil {
		return nil, &InstantiationError{
			TraitType: desc.TraitType,
			Element:   desc.DeclaredOn,
			Detail:    fmt.Sprintf("no constructor matches declared argument types %v", typeNames(declared)),
		}
	}

	fnType := ctor.fn.Type()
	callArgs := make([]reflect.Value, len(desc.Args))
	resolved := make([]any, len(desc.Args))
	for i, arg := range desc.Args {
		rv, err := m.resolveValue(ctor.params[i], arg.Value, fnType.In(i))
		if err != nil {
			return nil, &InstantiationError{TraitType: desc.TraitType, Element: desc.DeclaredOn, Detail: fmt.Sprintf("argument %d", i), Err: err}
		}
		callArgs[i] = rv
		resolved[i] = rv.Interface()
	}

	results := ctor.fn.Call(callArgs)
	if len(results) == 2 && !results[1].IsNil() {
		return nil, &InstantiationError{TraitType: desc.TraitType, Element: desc.DeclaredOn, Detail: "constructor failed", Err: results[1].Interface().(error)}
	}
	instance := results[0]

	for _, named := range desc.Named {
		field := instance.Elem().FieldByName(named.Name)
		if !field.IsValid() || !field.CanSet() {
			return nil, &InstantiationError{
				TraitType: desc.TraitType,
				Element:   desc.DeclaredOn,
				Detail:    fmt.Sprintf("named argument %q does not match a settable member on %s", named.Name, reg.Type.String()),
			}
		}
		rv, err := m.resolveValue(m.refForGoType(field.Type()), named.Value, field.Type())
		if err != nil {
			return nil, &InstantiationError{TraitType: desc.TraitType, Element: desc.DeclaredOn, Detail: fmt.Sprintf("named argument %q", named.Name), Err: err}
		}
		field.Set(rv)
	}

	return &Materialized{Instance: instance.Interface(), Args: resolved}, nil
}

// selectConstructor returns the first overload whose declared parameter types
// match the declared argument types, or nil.
func selectConstructor(reg *Registration, declared []TypeRef) *Constructor {
	for i := range reg.Ctors {
		ctor := &reg.Ctors[i]
		if len(ctor.params) != len(declared) {
			continue
		}
		matched := true
		for j := range declared {
			if !ctor.params[j].Matches(declared[j]) {
				matched = false
				break
			}
		}
		if matched {
			return ctor
		}
	}
	return nil
}

// resolveValue converts one raw value into a reflect.Value of goType, guided
// by the declared type reference. Enum references go through name or
// underlying-value lookup; list references recursively flatten nested
// sequences into one concrete slice of the target element type; everything
// else is coerced with cty's general conversion and decoded via gocty.
func (m *Materializer) resolveValue(ref TypeRef, val cty.Value, goType reflect.Type) (reflect.Value, error) {
	if val.IsNull() {
		return reflect.Zero(goType), nil
	}

	switch {
	case ref.Enum != nil:
		rv, err := enumValue(ref.Enum, val)
		if err != nil {
			return reflect.Value{}, err
		}
		return fit(rv, goType)

	case ref.IsList():
		if !val.Type().IsTupleType() && !val.Type().IsListType() && !val.Type().IsSetType() {
			return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", val.Type().FriendlyName(), ref.Name)
		}
		leaves := flattenLeaves(val)
		if goType.Kind() != reflect.Slice {
			// Target is 'any': decode into []any.
			out := make([]any, len(leaves))
			for i, leaf := range leaves {
				rv, err := m.resolveValue(*ref.Elem, leaf, anyType)
				if err != nil {
					return reflect.Value{}, fmt.Errorf("in element %d: %w", i, err)
				}
				out[i] = rv.Interface()
			}
			return fit(reflect.ValueOf(out), goType)
		}
		slice := reflect.MakeSlice(goType, len(leaves), len(leaves))
		for i, leaf := range leaves {
			rv, err := m.resolveValue(*ref.Elem, leaf, goType.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("in element %d: %w", i, err)
			}
			slice.Index(i).Set(rv)
		}
		return slice, nil

	case ref.IsAny():
		native, err := ctyToNative(val)
		if err != nil {
			return reflect.Value{}, err
		}
		if native == nil {
			return reflect.Zero(goType), nil
		}
		return fit(reflect.ValueOf(native), goType)

	default:
		if !val.Type().Equals(ref.CtyType) {
			converted, err := convert.Convert(val, ref.CtyType)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ref.Name, err)
			}
			val = converted
		}
		if goType.Kind() == reflect.Interface {
			native, err := ctyToNative(val)
			if err != nil {
				return reflect.Value{}, err
			}
			return fit(reflect.ValueOf(native), goType)
		}
		ptr := reflect.New(goType)
		if err := gocty.FromCtyValue(val, ptr.Interface()); err != nil {
			return reflect.Value{}, fmt.Errorf("cannot decode %s into %s: %w", val.Type().FriendlyName(), goType.String(), err)
		}
		return ptr.Elem(), nil
	}
}

// refForGoType derives the conversion strategy for a named-argument target
// from the field's Go type.
func (m *Materializer) refForGoType(t reflect.Type) TypeRef {
	if e, ok := m.reg.EnumForType(t); ok {
		return TypeRef{Name: e.Name, CtyType: cty.DynamicPseudoType, Enum: e}
	}
	switch t.Kind() {
	case reflect.String:
		return TypeRef{Name: "string", CtyType: cty.String}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeRef{Name: "number", CtyType: cty.Number}
	case reflect.Bool:
		return TypeRef{Name: "bool", CtyType: cty.Bool}
	case reflect.Slice:
		elem := m.refForGoType(t.Elem())
		return TypeRef{Name: "list(" + elem.Name + ")", Elem: &elem}
	default:
		return TypeRef{Name: "any", CtyType: cty.DynamicPseudoType}
	}
}

var anyType = reflect.TypeFor[any]()

// enumValue looks up an enum member from a raw value: a string resolves by
// member name, a number by underlying value.
func enumValue(e *Enum, val cty.Value) (reflect.Value, error) {
	switch val.Type() {
	case cty.String:
		if rv, ok := e.ByName(val.AsString()); ok {
			return rv, nil
		}
		return reflect.Value{}, fmt.Errorf("enum %s has no member named %q", e.Name, val.AsString())
	case cty.Number:
		n, _ := val.AsBigFloat().Int64()
		if rv, ok := e.ByValue(n); ok {
			return rv, nil
		}
		return reflect.Value{}, fmt.Errorf("enum %s has no member with value %d", e.Name, n)
	default:
		return reflect.Value{}, fmt.Errorf("cannot convert %s to enum %s", val.Type().FriendlyName(), e.Name)
	}
}

// flattenLeaves recursively expands nested sequences into the flat list of
// their scalar leaves, preserving order.
func flattenLeaves(val cty.Value) []cty.Value {
	var out []cty.Value
	it := val.ElementIterator()
	for it.Next() {
		_, ev := it.Element()
		t := ev.Type()
		if t.IsTupleType() || t.IsListType() || t.IsSetType() {
			out = append(out, flattenLeaves(ev)...)
			continue
		}
		out = append(out, ev)
	}
	return out
}

// fit adapts a resolved reflect.Value to the exact target type, allowing
// assignability and Go conversions (e.g. an enum's underlying kind).
func fit(rv reflect.Value, goType reflect.Type) (reflect.Value, error) {
	switch {
	case rv.Type() == goType:
		return rv, nil
	case rv.Type().AssignableTo(goType):
		out := reflect.New(goType).Elem()
		out.Set(rv)
		return out, nil
	case rv.Type().ConvertibleTo(goType):
		return rv.Convert(goType), nil
	default:
		return reflect.Value{}, fmt.Errorf("cannot use value of type %s as %s", rv.Type().String(), goType.String())
	}
}

// ctyToNative converts a cty value into a plain Go value for 'any' targets.
// Whole numbers become int64, everything else float64.
func ctyToNative(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	t := val.Type()
	switch {
	case t == cty.String:
		return val.AsString(), nil
	case t == cty.Bool:
		return val.True(), nil
	case t == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			n, _ := bf.Int64()
			return n, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		var out []any
		it := val.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			native, err := ctyToNative(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case t.IsObjectType() || t.IsMapType():
		out := make(map[string]any)
		for k, ev := range val.AsValueMap() {
			native, err := ctyToNative(ev)
			if err != nil {
				return nil, err
			}
			out[k] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", t.FriendlyName())
	}
}

// typeNames extracts the canonical names of a list of type references for
// error messages.
func typeNames(refs []TypeRef) []string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return names
}
