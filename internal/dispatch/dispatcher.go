package dispatch

import (
	"reflect"
	"sync"

	"github.com/vk/harnessgo/internal/event"
)

// binding pairs a variant type with the handler invocation bound to it.
type binding struct {
	variant reflect.Type
	invoke  func(event.Message) bool
}

// Dispatcher routes messages to handlers bound by variant type. The zero
// value is not usable; call New.
type Dispatcher struct {
	bindings []binding
	tables   sync.Map // concrete message reflect.Type -> []binding
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// On binds fn to the variant type T, which may be a concrete message pointer
// type or an interface from internal/event. Bindings run in registration
// order on every dispatch, regardless of the dispatching goroutine. All
// bindings must be registered before the first call to Dispatch.
func On[T event.Message](d *Dispatcher, fn func(T) bool) {
	variant := reflect.TypeFor[T]()
	d.bindings = append(d.bindings, binding{
		variant: variant,
		invoke: func(msg event.Message) bool {
			return fn(msg.(T))
		},
	})
}

// table returns the cached ordered binding list for one concrete message
// type, building it on first request. Building is a pure function of the
// immutable binding list, so concurrent first requests may build redundantly
// and converge on equivalent tables; LoadOrStore keeps exactly one.
func (d *Dispatcher) table(concrete reflect.Type) []binding {
	if v, ok := d.tables.Load(concrete); ok {
		return v.([]binding)
	}

	var tbl []binding
	for _, b := range d.bindings {
		if concrete.AssignableTo(b.variant) {
			tbl = append(tbl, b)
		}
	}

	actual, _ := d.tables.LoadOrStore(concrete, tbl)
	return actual.([]binding)
}

// Dispatch runs every handler bound to the message's concrete type, in
// registration order and without short-circuiting, and returns the logical
// AND of their results. A message matching no bindings returns true.
func (d *Dispatcher) Dispatch(msg event.Message) bool {
	ok := true
	for _, b := range d.table(reflect.TypeOf(msg)) {
		if !b.invoke(msg) {
			ok = false
		}
	}
	return ok
}
