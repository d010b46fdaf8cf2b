// Package trait implements the metadata core of the harness: turning
// declarative trait declarations on suites into live, typed Go values with
// inheritance-aware collection semantics.
//
// The moving parts, in dependency order:
//
//   - Registry: maps trait type names to their Go struct types, constructor
//     overloads, optional base trait type, registered enums, and usage
//     policies. Populated once at startup, read-only afterwards.
//   - PolicyResolver: per trait-type cache of {Inherited, AllowMultiple}
//     rules, defaulting to {true, false} when a registration declares none.
//   - Store: per-suite cache of the descriptors declared directly on that
//     suite (ancestors excluded), fed by a Source (normally the manifest
//     index).
//   - Materializer: turns one Descriptor into a live instance by selecting a
//     constructor overload on the declared argument types, coercing values
//     (enum name/underlying-value lookup, recursive flattening of nested
//     sequences, cty conversion) and assigning named arguments to exported
//     fields.
//   - Collector: walks a suite's extends chain applying the usage policy to
//     assemble an ordered result, materializing lazily per trait.
//
// All caches assume the declared metadata is immutable for the process
// lifetime: entries are computed once and never invalidated. Population uses
// compute-then-LoadOrStore, so concurrent first requests for the same key may
// compute redundantly but always converge to equivalent cached values.
package trait
