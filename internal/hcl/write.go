package hcl

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/litgen/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// WriteSettings writes s as an HCL settings file that Load reads back to the
// same values.
func WriteSettings(w io.Writer, s config.Settings) error {
	exclude, err := gocty.ToCtyValue(s.Exclude, cty.List(cty.String))
	if err != nil {
		return fmt.Errorf("converting exclude list: %w", err)
	}

	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("marker", cty.StringVal(s.Marker))
	body.SetAttributeValue("input_ext", cty.StringVal(s.InputExt))
	body.SetAttributeValue("output_ext", cty.StringVal(s.OutputExt))
	body.SetAttributeValue("runtime_import", cty.StringVal(s.RuntimeImport))
	body.SetAttributeValue("runtime_name", cty.StringVal(s.RuntimeName))
	body.SetAttributeValue("header", cty.StringVal(s.Header))
	body.SetAttributeValue("exclude", exclude)

	_, err = f.WriteTo(w)
	return err
}
