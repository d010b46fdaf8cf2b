package manifest

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func parseSuites(t *testing.T, src string) []*Suite {
	t.Helper()
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())

	suites, diags := ParseSuiteFile(context.Background(), hclFile, "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	return suites
}

func parseDiags(t *testing.T, src string) hcl.Diagnostics {
	t.Helper()
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())

	_, diags = ParseSuiteFile(context.Background(), hclFile, "test.hcl")
	return diags
}

func TestParseSuiteFile(t *testing.T) {
	suites := parseSuites(t, `
suite "checkout" {
  extends = "base"

  trait "timeout" {
    args = ["30s"]
  }

  trait "category" {
    args  = ["integration"]
    types = ["string"]
  }
}

suite "base" {
  trait "owner" {
    args = ["payments", "alice"]
    with = {
      Slack = "#payments"
    }
  }
}
`)
	require.Len(t, suites, 2)

	checkout := suites[0]
	assert.Equal(t, "checkout", checkout.Name)
	assert.Equal(t, "base", checkout.Extends)
	assert.Equal(t, "test.hcl", checkout.File)
	require.Len(t, checkout.Traits, 2)

	timeout := checkout.Traits[0]
	assert.Equal(t, "timeout", timeout.TraitType)
	assert.Equal(t, "checkout", timeout.DeclaredOn)
	require.Len(t, timeout.Args, 1)
	assert.Equal(t, cty.StringVal("30s"), timeout.Args[0].Value)
	assert.Empty(t, timeout.Args[0].TypeName)

	category := checkout.Traits[1]
	require.Len(t, category.Args, 1)
	assert.Equal(t, "string", category.Args[0].TypeName)

	base := suites[1]
	assert.Equal(t, "base", base.Name)
	assert.Empty(t, base.Extends)
	require.Len(t, base.Traits, 1)

	owner := base.Traits[0]
	require.Len(t, owner.Args, 2)
	require.Len(t, owner.Named, 1)
	assert.Equal(t, "Slack", owner.Named[0].Name)
	assert.Equal(t, cty.StringVal("#payments"), owner.Named[0].Value)
}

func TestParseNamedArgsPreserveSourceOrder(t *testing.T) {
	suites := parseSuites(t, `
suite "s" {
  trait "owner" {
    with = {
      Zeta  = 1
      Alpha = 2
      Mid   = 3
    }
  }
}
`)
	require.Len(t, suites, 1)
	require.Len(t, suites[0].Traits, 1)

	var names []string
	for _, n := range suites[0].Traits[0].Named {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, names)
}

func TestParseTraitWithoutArguments(t *testing.T) {
	suites := parseSuites(t, `
suite "s" {
  trait "skip" {}
}
`)
	require.Len(t, suites, 1)
	require.Len(t, suites[0].Traits, 1)
	assert.Empty(t, suites[0].Traits[0].Args)
	assert.Empty(t, suites[0].Traits[0].Named)
}

func TestParseDiagnostics(t *testing.T) {
	t.Run("args must be a list", func(t *testing.T) {
		diags := parseDiags(t, `
suite "s" {
  trait "timeout" {
    args = "30s"
  }
}
`)
		require.True(t, diags.HasErrors())
		assert.Contains(t, diags.Error(), "must be a list")
	})

	t.Run("types length mismatch", func(t *testing.T) {
		diags := parseDiags(t, `
suite "s" {
  trait "timeout" {
    args  = ["30s"]
    types = ["string", "number"]
  }
}
`)
		require.True(t, diags.HasErrors())
		assert.Contains(t, diags.Error(), "types")
	})

	t.Run("types without args", func(t *testing.T) {
		diags := parseDiags(t, `
suite "s" {
  trait "timeout" {
    types = ["string"]
  }
}
`)
		require.True(t, diags.HasErrors())
	})

	t.Run("unknown attribute in trait block", func(t *testing.T) {
		diags := parseDiags(t, `
suite "s" {
  trait "timeout" {
    bogus = true
  }
}
`)
		require.True(t, diags.HasErrors())
	})
}

func TestIndexValidation(t *testing.T) {
	t.Run("duplicate suite names", func(t *testing.T) {
		_, err := NewIndex([]*Suite{
			{Name: "s", File: "a.hcl"},
			{Name: "s", File: "b.hcl"},
		})
		require.ErrorContains(t, err, "declared in both")
	})

	t.Run("extends unknown suite", func(t *testing.T) {
		_, err := NewIndex([]*Suite{
			{Name: "child", Extends: "ghost"},
		})
		require.ErrorContains(t, err, "unknown suite")
	})

	t.Run("extends cycle", func(t *testing.T) {
		_, err := NewIndex([]*Suite{
			{Name: "a", Extends: "b"},
			{Name: "b", Extends: "a"},
		})
		require.ErrorContains(t, err, "cycle")
	})

	t.Run("valid chain", func(t *testing.T) {
		ix, err := NewIndex([]*Suite{
			{Name: "grandparent"},
			{Name: "parent", Extends: "grandparent"},
			{Name: "child", Extends: "parent"},
		})
		require.NoError(t, err)

		base, ok := ix.BaseOf("child")
		assert.True(t, ok)
		assert.Equal(t, "parent", base)

		_, ok = ix.BaseOf("grandparent")
		assert.False(t, ok)

		var names []string
		for _, s := range ix.Suites() {
			names = append(names, s.Name)
		}
		assert.Equal(t, []string{"child", "grandparent", "parent"}, names)
	})
}

func TestValidateTraitTypes(t *testing.T) {
	suites := parseSuites(t, `
suite "s" {
  trait "timeout" {
    args = ["30s"]
  }

  trait "tiemout" {
    args = ["30s"]
  }
}
`)
	ix, err := NewIndex(suites)
	require.NoError(t, err)

	known := func(name string) bool { return name == "timeout" }

	err = ix.ValidateTraitTypes(known)
	require.ErrorContains(t, err, `unknown trait type "tiemout"`)
	assert.ErrorContains(t, err, `suite "s"`)
	assert.ErrorContains(t, err, "test.hcl")

	err = ix.ValidateTraitTypes(func(string) bool { return true })
	assert.NoError(t, err)
}

func TestIndexDeclaredOn(t *testing.T) {
	suites := parseSuites(t, `
suite "s" {
  trait "timeout" {
    args = ["30s"]
  }
}
`)
	ix, err := NewIndex(suites)
	require.NoError(t, err)

	descs, err := ix.DeclaredOn("s")
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "timeout", descs[0].TraitType)

	_, err = ix.DeclaredOn("ghost")
	assert.ErrorContains(t, err, "unknown suite")
}
