// Package schema validates serialized scoring results against the
// published JSON Schema before they leave the process.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed scoring.schema.json
var scoringSchema []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func scoring() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(scoringSchema))
		if err != nil {
			compileErr = fmt.Errorf("decode embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("scoring.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("register schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("scoring.schema.json")
	})
	return compiled, compileErr
}

// ValidateScoring checks a serialized scoring result against the schema.
func ValidateScoring(data []byte) error {
	sch, err := scoring()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode scoring document: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("scoring document invalid: %w", err)
	}
	return nil
}
