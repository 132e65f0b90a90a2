package keymap

import (
	_ "embed"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed layout.schema.json
var layoutSchemaJSON string

// layoutSchema validates descriptions before decoding. The schema is
// embedded so validation never depends on the filesystem.
var layoutSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("layout.schema.json", strings.NewReader(layoutSchemaJSON)); err != nil {
		panic("keymap: embedded layout schema: " + err.Error())
	}
	s, err := c.Compile("layout.schema.json")
	if err != nil {
		panic("keymap: embedded layout schema: " + err.Error())
	}
	return s
}
