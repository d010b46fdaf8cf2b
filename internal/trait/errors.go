package trait

import "fmt"

// InstantiationError reports that a descriptor could not be turned into a
// live trait instance: no constructor overload matches the declared argument
// types, a value could not be coerced, or a named argument targets a missing
// or non-settable member. It carries enough context for a test author to
// locate the offending declaration.
type InstantiationError struct {
	TraitType string
	Element   string // suite the trait was declared on, if known
	Detail    string
	Err       error
}

func (e *InstantiationError) Error() string {
	where := ""
	if e.Element != "" {
		where = fmt.Sprintf(" declared on %q", e.Element)
	}
	if e.Err != nil {
		return fmt.Sprintf("cannot instantiate trait %q%s: %s: %v", e.TraitType, where, e.Detail, e.Err)
	}
	return fmt.Sprintf("cannot instantiate trait %q%s: %s", e.TraitType, where, e.Detail)
}

func (e *InstantiationError) Unwrap() error { return e.Err }

// LookupError reports that a requested named member does not exist on an
// already materialized trait instance. The match is case-sensitive and exact.
type LookupError struct {
	TypeName string
	Member   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no settable member %q on trait instance of type %s", e.Member, e.TypeName)
}
