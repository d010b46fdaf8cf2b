// Package manifest loads the HCL files that declare suites and the traits
// attached to them, producing the descriptor index consumed by the trait
// subsystem.
//
// A manifest file contains one or more suite blocks:
//
//	suite "checkout" {
//	  extends = "base"
//
//	  trait "timeout" {
//	    args = ["45s"]
//	  }
//
//	  trait "severity" {
//	    args  = ["critical"]
//	    types = ["severity"]
//	    with  = { Notify = true }
//	  }
//	}
//
// The optional types attribute annotates each positional argument with its
// declared type name; without it the declared type is implied from the raw
// value. Named arguments in the with object are applied to exported fields of
// the trait's Go struct, in source order.
//
// The resulting Index implements trait.Source: it enumerates descriptors
// declared directly on a suite and exposes the extends relation the
// inherited-trait collector walks.
package manifest
