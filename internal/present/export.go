package present

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/courseplan/internal/catalog"
)

// WriteHCL writes cat as a sequence of course blocks, ascending by code.
func WriteHCL(w io.Writer, cat *catalog.Catalog) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, c := range cat.Courses() {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("course", []string{c.Code})
		courseBody := block.Body()
		courseBody.SetAttributeValue("title", cty.StringVal(c.Title))
		if len(c.Prereqs) > 0 {
			vals := make([]cty.Value, 0, len(c.Prereqs))
			for _, p := range c.Prereqs {
				vals = append(vals, cty.StringVal(p))
			}
			courseBody.SetAttributeValue("prereqs", cty.ListVal(vals))
		}
	}

	_, err := w.Write(hclwrite.Format(f.Bytes()))
	return err
}
