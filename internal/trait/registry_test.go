package trait

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterTraitRejectsMalformedRegistrations(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		reg := newTestRegistry(t)
		assert.PanicsWithValue(t, "trait type with name 'banner' already registered", func() {
			reg.RegisterTrait(&Registration{Name: "banner", Type: reflect.TypeFor[Banner]()})
		})
	})

	t.Run("non-struct type", func(t *testing.T) {
		reg := NewRegistry()
		assert.Panics(t, func() {
			reg.RegisterTrait(&Registration{Name: "x", Type: reflect.TypeFor[int]()})
		})
	})

	t.Run("parameter count mismatch", func(t *testing.T) {
		reg := NewRegistry()
		assert.Panics(t, func() {
			reg.RegisterTrait(&Registration{
				Name: "x",
				Type: reflect.TypeFor[Banner](),
				Ctors: []Constructor{
					{Params: []string{"string", "string"}, Fn: func(s string) *Banner { return nil }},
				},
			})
		})
	})

	t.Run("wrong result type", func(t *testing.T) {
		reg := NewRegistry()
		assert.Panics(t, func() {
			reg.RegisterTrait(&Registration{
				Name: "x",
				Type: reflect.TypeFor[Banner](),
				Ctors: []Constructor{
					{Params: nil, Fn: func() *Paint { return nil }},
				},
			})
		})
	})

	t.Run("second result must be error", func(t *testing.T) {
		reg := NewRegistry()
		assert.Panics(t, func() {
			reg.RegisterTrait(&Registration{
				Name: "x",
				Type: reflect.TypeFor[Banner](),
				Ctors: []Constructor{
					{Params: nil, Fn: func() (*Banner, string) { return nil, "" }},
				},
			})
		})
	})

	t.Run("unresolvable parameter type", func(t *testing.T) {
		reg := NewRegistry()
		assert.Panics(t, func() {
			reg.RegisterTrait(&Registration{
				Name: "x",
				Type: reflect.TypeFor[Banner](),
				Ctors: []Constructor{
					{Params: []string{"mystery"}, Fn: func(s string) *Banner { return nil }},
				},
			})
		})
	})
}

func TestRegisterEnumRejectsDuplicates(t *testing.T) {
	reg := newTestRegistry(t)
	assert.Panics(t, func() {
		reg.RegisterEnum(NewEnum("color", map[string]Color{}))
	})
	assert.Panics(t, func() {
		reg.RegisterEnum(NewEnum("shade", map[string]Color{"dim": ColorBlue}))
	})
}

func TestIsSubtype(t *testing.T) {
	reg := newCollectorRegistry(t)

	assert.True(t, reg.IsSubtype("label", "label"))
	assert.True(t, reg.IsSubtype("badge", "label"))
	assert.False(t, reg.IsSubtype("label", "badge"))
	assert.False(t, reg.IsSubtype("note", "label"))
	assert.False(t, reg.IsSubtype("ghost", "label"))
}

func TestTraitNamesSorted(t *testing.T) {
	reg := newCollectorRegistry(t)
	assert.Equal(t, []string{"badge", "label", "note", "pin"}, reg.TraitNames())
}

func TestEnumLookups(t *testing.T) {
	e := NewEnum("color", map[string]Color{
		"red":  ColorRed,
		"blue": ColorBlue,
	})

	rv, ok := e.ByName("red")
	assert.True(t, ok)
	assert.Equal(t, ColorRed, rv.Interface())

	_, ok = e.ByName("Red")
	assert.False(t, ok, "member lookup is case-sensitive")

	rv, ok = e.ByValue(int64(ColorBlue))
	assert.True(t, ok)
	assert.Equal(t, ColorBlue, rv.Interface())

	_, ok = e.ByValue(99)
	assert.False(t, ok)
}
