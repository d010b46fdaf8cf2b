package manifest

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/trait"
	"github.com/zclconf/go-cty/cty"
)

// suiteRootSchema defines the top-level structure of a manifest file,
// expecting one or more 'suite' blocks.
type suiteRootSchema struct {
	Suites []*hclSuite `hcl:"suite,block"`
}

// hclSuite represents a single 'suite' block for decoding purposes.
type hclSuite struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// suiteBodySchema describes the body of a 'suite' block.
var suiteBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "extends"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "trait", LabelNames: []string{"type"}},
	},
}

// traitBodySchema describes the body of a 'trait' block.
var traitBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "args"},
		{Name: "types"},
		{Name: "with"},
	},
}

// ParseSuiteFile decodes an HCL file that contains one or more 'suite'
// blocks into Suite declarations.
func ParseSuiteFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*Suite, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing suite declarations from file", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		return nil, append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
	}

	root := &suiteRootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, root)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	suites := make([]*Suite, 0, len(root.Suites))
	for _, parsed := range root.Suites {
		bodyContent, contentDiags := parsed.Body.Content(suiteBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue // Skip this suite but keep parsing the others.
		}

		suite := &Suite{Name: parsed.Name, File: filePath}

		if attr, exists := bodyContent.Attributes["extends"]; exists {
			exprDiags := gohcl.DecodeExpression(attr.Expr, nil, &suite.Extends)
			allDiags = append(allDiags, exprDiags...)
		}

		for _, block := range bodyContent.Blocks {
			desc, descDiags := parseTraitBlock(block, parsed.Name)
			allDiags = append(allDiags, descDiags...)
			if descDiags.HasErrors() {
				continue
			}
			suite.Traits = append(suite.Traits, desc)
		}

		logger.Debug("Parsed suite declaration", "suite", suite.Name, "traits", len(suite.Traits))
		suites = append(suites, suite)
	}

	return suites, allDiags
}

// parseTraitBlock decodes one 'trait' block into a descriptor.
func parseTraitBlock(block *hcl.Block, suiteName string) (trait.Descriptor, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	desc := trait.Descriptor{
		TraitType:  block.Labels[0],
		DeclaredOn: suiteName,
	}

	content, contentDiags := block.Body.Content(traitBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return desc, diags
	}

	var typeNames []string
	if attr, exists := content.Attributes["types"]; exists {
		exprDiags := gohcl.DecodeExpression(attr.Expr, nil, &typeNames)
		diags = append(diags, exprDiags...)
		if exprDiags.HasErrors() {
			return desc, diags
		}
	}

	if attr, exists := content.Attributes["args"]; exists {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			return desc, diags
		}
		if !val.Type().IsTupleType() && !val.Type().IsListType() {
			return desc, append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid trait arguments",
				Detail:   fmt.Sprintf("args for trait %q must be a list, got %s", desc.TraitType, val.Type().FriendlyName()),
				Subject:  attr.Range.Ptr(),
			})
		}

		it := val.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			desc.Args = append(desc.Args, trait.Arg{Value: ev})
		}

		if len(typeNames) > 0 {
			if len(typeNames) != len(desc.Args) {
				return desc, append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Mismatched trait argument types",
					Detail:   fmt.Sprintf("trait %q declares %d args but %d types", desc.TraitType, len(desc.Args), len(typeNames)),
					Subject:  attr.Range.Ptr(),
				})
			}
			for i := range desc.Args {
				desc.Args[i].TypeName = typeNames[i]
			}
		}
	} else if len(typeNames) > 0 {
		return desc, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Mismatched trait argument types",
			Detail:   fmt.Sprintf("trait %q declares types but no args", desc.TraitType),
		})
	}

	if attr, exists := content.Attributes["with"]; exists {
		named, namedDiags := parseNamedArgs(attr)
		diags = append(diags, namedDiags...)
		desc.Named = named
	}

	return desc, diags
}

// parseNamedArgs decodes the 'with' object into ordered named-argument
// assignments. For native HCL syntax the source order of the object items is
// preserved; for other syntaxes the assignments fall back to name order.
func parseNamedArgs(attr *hcl.Attribute) ([]trait.NamedArg, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if obj, ok := attr.Expr.(*hclsyntax.ObjectConsExpr); ok {
		named := make([]trait.NamedArg, 0, len(obj.Items))
		for _, item := range obj.Items {
			key := objectItemKey(item.KeyExpr)
			if key == "" {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid named argument key",
					Detail:   "named argument keys must be simple identifiers or quoted strings",
					Subject:  item.KeyExpr.Range().Ptr(),
				})
				continue
			}
			val, valDiags := item.ValueExpr.Value(nil)
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			named = append(named, trait.NamedArg{Name: key, Value: val})
		}
		return named, diags
	}

	val, valDiags := attr.Expr.Value(nil)
	diags = append(diags, valDiags...)
	if valDiags.HasErrors() {
		return nil, diags
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid named arguments",
			Detail:   fmt.Sprintf("with must be an object, got %s", val.Type().FriendlyName()),
			Subject:  attr.Range.Ptr(),
		})
	}

	m := val.AsValueMap()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	named := make([]trait.NamedArg, 0, len(names))
	for _, name := range names {
		named = append(named, trait.NamedArg{Name: name, Value: m[name]})
	}
	return named, diags
}

// objectItemKey extracts the literal key of an object item, unwrapping the
// special object-key expression used by native HCL syntax.
func objectItemKey(expr hclsyntax.Expression) string {
	keyExpr, ok := expr.(*hclsyntax.ObjectConsKeyExpr)
	if !ok {
		return ""
	}
	switch kexpr := keyExpr.Wrapped.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(kexpr.Traversal) == 1 {
			return kexpr.Traversal.RootName()
		}
	case *hclsyntax.TemplateExpr:
		if len(kexpr.Parts) == 1 {
			if lit, isLit := kexpr.Parts[0].(*hclsyntax.LiteralValueExpr); isLit && lit.Val.Type().Equals(cty.String) {
				return lit.Val.AsString()
			}
		}
	}
	return ""
}
