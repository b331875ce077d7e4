package instruction

import (
	"encoding/json"
	"fmt"

	dominst "github.com/kailas-cloud/mediasense/internal/domain/instruction"
)

type templateJSON struct {
	ID          string   `json:"id"`
	Technology  string   `json:"technology"`
	Instruction string   `json:"instruction"`
	StrictRules []string `json:"strict_rules"`
}

func toJSON(t *dominst.Template) templateJSON {
	return templateJSON{
		ID:          t.ID(),
		Technology:  t.Technology(),
		Instruction: t.Instruction(),
		StrictRules: t.StrictRules(),
	}
}

func (j templateJSON) toDomain(fallbackID string) dominst.Template {
	id := j.ID
	if id == "" {
		id = fallbackID
	}
	return dominst.Reconstruct(id, j.Technology, j.Instruction, j.StrictRules)
}

func decodeOne(id, raw string) (dominst.Template, error) {
	var j templateJSON
	if err := json.Unmarshal([]byte(raw), &j); err != nil {
		return dominst.Template{}, fmt.Errorf("unmarshal %s: %w", id, err)
	}
	return j.toDomain(id), nil
}
