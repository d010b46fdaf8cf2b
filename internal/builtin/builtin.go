// Package builtin registers the trait types the harness ships with. The set
// exercises every materialization path: constructor overloads, enum
// arguments, list arguments, named-argument assignment, and non-default
// usage policies.
package builtin

import (
	"fmt"
	"reflect"
	"time"

	"github.com/vk/harnessgo/internal/trait"
)

// Severity ranks how serious a suite's failures are considered.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// OS identifies a platform a suite may be restricted to.
type OS int

const (
	OSLinux OS = iota + 1
	OSDarwin
	OSWindows
)

// Skip marks a suite or case as skipped, optionally with a reason.
type Skip struct {
	Reason string
}

// Timeout bounds how long a case may run.
type Timeout struct {
	Limit time.Duration
}

// Retry re-runs failing cases. Not inherited: a retry budget on a base suite
// says nothing about its descendants.
type Retry struct {
	Attempts int
	Backoff  string
}

// Level attaches a severity ranking.
type Level struct {
	Value  Severity
	Notify bool
}

// Category groups suites for filtering. Multi-valued and inherited.
type Category struct {
	Name string
}

// Tag is a free-form label; every tag also counts as a category.
type Tag struct {
	Name string
}

// Owner records who is responsible for a suite.
type Owner struct {
	Name  string
	Email string
	Slack string
}

// Requires lists external resources a suite needs.
type Requires struct {
	Resources []string
}

// Platforms restricts a suite to a set of operating systems.
type Platforms struct {
	OSes []OS
}

// Register installs the built-in enums and trait types into the registry.
// Called once during application startup, before any lookups.
func Register(reg *trait.Registry) {
	reg.RegisterEnum(trait.NewEnum("severity", map[string]Severity{
		"low":      SeverityLow,
		"medium":   SeverityMedium,
		"high":     SeverityHigh,
		"critical": SeverityCritical,
	}))
	reg.RegisterEnum(trait.NewEnum("os", map[string]OS{
		"linux":   OSLinux,
		"darwin":  OSDarwin,
		"windows": OSWindows,
	}))

	reg.RegisterTrait(&trait.Registration{
		Name: "skip",
		Type: reflect.TypeFor[Skip](),
		Ctors: []trait.Constructor{
			{Params: nil, Fn: func() *Skip { return &Skip{} }},
			{Params: []string{"string"}, Fn: func(reason string) *Skip { return &Skip{Reason: reason} }},
		},
	})

	reg.RegisterTrait(&trait.Registration{
		Name: "timeout",
		Type: reflect.TypeFor[Timeout](),
		Ctors: []trait.Constructor{
			{Params: []string{"string"}, Fn: func(limit string) (*Timeout, error) {
				d, err := time.ParseDuration(limit)
				if err != nil {
					return nil, fmt.Errorf("invalid timeout %q: %w", limit, err)
				}
				return &Timeout{Limit: d}, nil
			}},
			{Params: []string{"number"}, Fn: func(seconds float64) *Timeout {
				return &Timeout{Limit: time.Duration(seconds * float64(time.Second))}
			}},
		},
	})

	reg.RegisterTrait(&trait.Registration{
		Name:   "retry",
		Type:   reflect.TypeFor[Retry](),
		Policy: &trait.UsagePolicy{Inherited: false, AllowMultiple: false},
		Ctors: []trait.Constructor{
			{Params: []string{"number"}, Fn: func(attempts int) *Retry { return &Retry{Attempts: attempts} }},
		},
	})

	reg.RegisterTrait(&trait.Registration{
		Name: "severity",
		Type: reflect.TypeFor[Level](),
		Ctors: []trait.Constructor{
			{Params: []string{"severity"}, Fn: func(v Severity) *Level { return &Level{Value: v} }},
		},
	})

	reg.RegisterTrait(&trait.Registration{
		Name:   "category",
		Type:   reflect.TypeFor[Category](),
		Policy: &trait.UsagePolicy{Inherited: true, AllowMultiple: true},
		Ctors: []trait.Constructor{
			{Params: []string{"string"}, Fn: func(name string) *Category { return &Category{Name: name} }},
		},
	})

	reg.RegisterTrait(&trait.Registration{
		Name:   "tag",
		Base:   "category",
		Type:   reflect.TypeFor[Tag](),
		Policy: &trait.UsagePolicy{Inherited: true, AllowMultiple: true},
		Ctors: []trait.Constructor{
			{Params: []string{"string"}, Fn: func(name string) *Tag { return &Tag{Name: name} }},
		},
	})

	reg.RegisterTrait(&trait.Registration{
		Name: "owner",
		Type: reflect.TypeFor[Owner](),
		Ctors: []trait.Constructor{
			{Params: []string{"string", "string"}, Fn: func(name, email string) *Owner {
				return &Owner{Name: name, Email: email}
			}},
		},
	})

	reg.RegisterTrait(&trait.Registration{
		Name: "requires",
		Type: reflect.TypeFor[Requires](),
		Ctors: []trait.Constructor{
			{Params: []string{"list(string)"}, Fn: func(resources []string) *Requires {
				return &Requires{Resources: resources}
			}},
		},
	})

	reg.RegisterTrait(&trait.Registration{
		Name: "platforms",
		Type: reflect.TypeFor[Platforms](),
		Ctors: []trait.Constructor{
			{Params: []string{"list(os)"}, Fn: func(oses []OS) *Platforms {
				return &Platforms{OSes: oses}
			}},
		},
	})
}
