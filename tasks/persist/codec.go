package persist

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mazid79/MemoraTodoApp/errors"
	"github.com/mazid79/MemoraTodoApp/tasks"
)

// rawSchema describes the persisted blob: a JSON array of task records.
// Validating before unmarshalling lets a corrupted blob be reported with
// the offending location instead of a bare decode error.
const rawSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "completed"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"title": {"type": "string"},
			"completed": {"type": "boolean"},
			"dueDate": {"type": "string", "format": "date-time"}
		},
		"additionalProperties": false
	}
}`

var blobSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(rawSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("tasks.schema.json")
}()

// EncodeTasks serializes a task list snapshot into the persisted blob
// format. A nil list encodes as an empty array, never as null.
func EncodeTasks(list []tasks.Task) (string, error) {
	if list == nil {
		list = []tasks.Task{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return "", errors.NewInternalError("failed to encode task list: " + err.Error())
	}

	return string(data), nil
}

// DecodeTasks parses a persisted blob back into a task list. Any failure
// is reported as a corrupt-blob error; callers decide whether that is
// fatal (it is at startup).
func DecodeTasks(blob string) ([]tasks.Task, error) {
	var generic any
	if err := json.Unmarshal([]byte(blob), &generic); err != nil {
		return nil, errors.NewCorruptError("persisted task blob is not valid JSON", map[string]any{
			"error": err.Error(),
		})
	}

	if err := blobSchema.Validate(generic); err != nil {
		return nil, errors.NewCorruptError("persisted task blob has unexpected shape", map[string]any{
			"error": err.Error(),
		})
	}

	var list []tasks.Task
	if err := json.Unmarshal([]byte(blob), &list); err != nil {
		return nil, errors.NewCorruptError("failed to decode task list", map[string]any{
			"error": err.Error(),
		})
	}

	return list, nil
}
