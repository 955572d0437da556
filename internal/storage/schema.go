package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// todosSchemaURL names the embedded schema inside the compiler.
const todosSchemaURL = "todoapp://schemas/todos.json"

// todosSchema describes the persisted file. Unknown item properties are
// allowed so older binaries can read files written by newer ones. Text and
// Done are accepted alongside the lowercase keys for files written with
// PascalCase field names.
const todosSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "anyOf": [
      {"required": ["text"]},
      {"required": ["Text"]}
    ],
    "properties": {
      "text": {"type": "string"},
      "done": {"type": "boolean"},
      "Text": {"type": "string"},
      "Done": {"type": "boolean"}
    }
  }
}`

var compiledTodosSchema = jsonschema.MustCompileString(todosSchemaURL, todosSchema)

// validateDocument checks that data is JSON and matches todosSchema.
func validateDocument(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parsing json: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("parsing json: trailing data after document")
	}
	if err := compiledTodosSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
