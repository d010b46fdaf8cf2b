package trait

import "reflect"

// Enum describes a registered enumeration: a named Go integer type plus the
// name-to-value table used when a manifest spells a member by name (a string)
// or by its underlying value (a number).
type Enum struct {
	Name   string
	GoType reflect.Type

	byName  map[string]reflect.Value
	byValue map[int64]reflect.Value
}

// NewEnum builds an Enum for a named integer type T from its name-to-value
// table. The table is copied; mutation of the argument after the call has no
// effect.
func NewEnum[T ~int](name string, members map[string]T) *Enum {
	e := &Enum{
		Name:    name,
		GoType:  reflect.TypeFor[T](),
		byName:  make(map[string]reflect.Value, len(members)),
		byValue: make(map[int64]reflect.Value, len(members)),
	}
	for memberName, v := range members {
		rv := reflect.ValueOf(v)
		e.byName[memberName] = rv
		e.byValue[int64(v)] = rv
	}
	return e
}

// ByName looks up a member by its declared name. The match is case-sensitive.
func (e *Enum) ByName(name string) (reflect.Value, bool) {
	v, ok := e.byName[name]
	return v, ok
}

// ByValue looks up a member by its underlying integer value.
func (e *Enum) ByValue(value int64) (reflect.Value, bool) {
	v, ok := e.byValue[value]
	return v, ok
}
