package loader

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// hclCatalogFile is the top-level structure of an HCL catalog file.
type hclCatalogFile struct {
	Courses []*hclCourse `hcl:"course,block"`
}

// hclCourse is a single 'course' block for initial decoding.
type hclCourse struct {
	Code string   `hcl:"code,label"`
	Body hcl.Body `hcl:",remain"`
}

// courseBodySchema is the schema for the body of a 'course' block. Both
// attributes are optional at this level so a block missing its title is
// skipped like a short line instead of failing the whole file.
var courseBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "title"},
		{Name: "prereqs"},
	},
}

// ParseHCL decodes an HCL catalog file. Syntax errors and unknown top-level
// blocks fail the file with ErrSourceUnavailable; problems inside a single
// course block skip that course.
func ParseHCL(src []byte, filename string) ([]Record, []Skipped, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("%w: failed to parse HCL file %s: %w", ErrSourceUnavailable, filename, diags)
	}

	var parsed hclCatalogFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("%w: failed to decode HCL file %s: %w", ErrSourceUnavailable, filename, diags)
	}

	var (
		records []Record
		skipped []Skipped
	)
	for _, block := range parsed.Courses {
		line := block.Body.MissingItemRange().Start.Line

		record, err := newRecordFromHCL(block)
		if err != nil {
			skipped = append(skipped, Skipped{Source: filename, Line: line, Err: err})
			continue
		}
		record.Source = filename
		record.Line = line
		records = append(records, record)
	}

	return records, skipped, nil
}

func newRecordFromHCL(block *hclCourse) (Record, error) {
	if err := validateCode(block.Code); err != nil {
		return Record{}, err
	}

	content, diags := block.Body.Content(courseBodySchema)
	if diags.HasErrors() {
		return Record{}, fmt.Errorf("%w: course %q: %w", ErrInvalidRecord, block.Code, diags)
	}

	titleAttr, ok := content.Attributes["title"]
	if !ok {
		return Record{}, fmt.Errorf("%w: course %q has no title", ErrInvalidRecord, block.Code)
	}
	title, diags := evalString(titleAttr.Expr)
	if diags.HasErrors() {
		return Record{}, fmt.Errorf("%w: course %q: %w", ErrInvalidRecord, block.Code, diags)
	}

	var prereqs []string
	if attr, ok := content.Attributes["prereqs"]; ok {
		prereqs, diags = evalStringList(attr.Expr)
		if diags.HasErrors() {
			return Record{}, fmt.Errorf("%w: course %q: %w", ErrInvalidRecord, block.Code, diags)
		}
	}

	return Record{Code: block.Code, Title: title, Prereqs: prereqs}, nil
}

// evalString evaluates expr without variables and converts the result to a
// string. Numbers and bools are accepted and rendered by cty. A null value
// yields "".
func evalString(expr hcl.Expression) (string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	return valueToString(val, expr.Range())
}

// evalStringList evaluates expr as either a single string or a list, set or
// tuple of strings. Null elements are ignored.
func evalStringList(expr hcl.Expression) ([]string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty.IsPrimitiveType():
		s, diags := valueToString(val, expr.Range())
		if diags.HasErrors() {
			return nil, diags
		}
		return []string{s}, nil

	case ty.IsListType(), ty.IsSetType(), ty.IsTupleType():
		out := make([]string, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.IsNull() {
				continue
			}
			s, diags := valueToString(elem, expr.Range())
			if diags.HasErrors() {
				return nil, diags
			}
			out = append(out, s)
		}
		return out, nil

	default:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid prerequisites",
			Detail:   fmt.Sprintf("The 'prereqs' attribute must be a string or a list of strings, not %s.", ty.FriendlyName()),
			Subject:  expr.Range().Ptr(),
		}}
	}
}

func valueToString(val cty.Value, rng hcl.Range) (string, hcl.Diagnostics) {
	if val.IsNull() {
		return "", nil
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil || !str.IsKnown() || str.IsNull() {
		detail := "A string value is required."
		if err != nil {
			detail = fmt.Sprintf("A string value is required: %s.", err)
		}
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   detail,
			Subject:  rng.Ptr(),
		}}
	}
	return str.AsString(), nil
}
