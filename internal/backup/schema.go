package backup

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed backup.schema.json
var schemaJSON []byte

const schemaURL = "schema://portage-backup.json"

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse backup schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add backup schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// validate checks a decoded document against the backup schema.
func validate(doc any) error {
	s, err := compiled()
	if err != nil {
		return err
	}
	return s.Validate(doc)
}
