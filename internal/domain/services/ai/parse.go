package ai

import (
	"encoding/json"
	"strings"
)

// ExtractObject pulls the first well-formed JSON object out of free-text
// model output and unmarshals it into dest. Tolerates surrounding prose and
// markdown code fences. Returns false when no parsable object is found;
// callers feed their documented fallback on false instead of erroring.
func ExtractObject(content string, dest any) bool {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return false
	}
	content = content[start : end+1]

	return json.Unmarshal([]byte(content), dest) == nil
}
