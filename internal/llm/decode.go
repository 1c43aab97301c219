package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/hjson/hjson-go/v4"
)

// ErrUndecodable is returned when a model response is not JSON even after repair
var ErrUndecodable = errors.New("model response is not valid JSON")

// decodeJSON decodes a structured model response into v. Responses are tried
// as strict JSON, then repaired JSON (truncated output, trailing commas), then
// Hjson (unquoted keys, comments).
func decodeJSON(raw string, v any) error {
	raw = stripCodeFence(raw)

	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}

	// prose without any object or array is never repaired into one
	if !strings.ContainsAny(raw, "{[") {
		return fmt.Errorf("%w: %q", ErrUndecodable, truncate(raw, 200))
	}

	if repaired, err := jsonrepair.RepairJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUndecodable, truncate(raw, 200))
}

// stripCodeFence removes a ```json ... ``` wrapper if present
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
