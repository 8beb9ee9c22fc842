package menu

import (
	"encoding/json"
	"fmt"
	"strings"

	"carte/internal/domain"
)

// RecoverJSON extracts a JSON document from model output. The whole text is
// tried first, then the substring between the first '{' and the last '}'.
// recovered reports whether the fallback was needed.
func RecoverJSON(text string) (data []byte, recovered bool, err error) {
	trimmed := strings.TrimSpace(text)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return []byte(trimmed), false, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, false, fmt.Errorf("%w: no JSON object in output (raw: %s)", domain.ErrInvalidModelOutput, Truncate(trimmed, 200))
	}

	candidate := []byte(trimmed[start : end+1])
	if !json.Valid(candidate) {
		return nil, false, fmt.Errorf("%w: malformed JSON in output (raw: %s)", domain.ErrInvalidModelOutput, Truncate(trimmed, 200))
	}
	return candidate, true, nil
}

// IsParsedMenu reports whether v is an object whose "sections" field is an array.
func IsParsedMenu(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = obj["sections"].([]any)
	return ok
}

// DecodeMenu parses model output into a ParsedMenu.
func DecodeMenu(text string) (*domain.ParsedMenu, bool, error) {
	data, recovered, err := RecoverJSON(text)
	if err != nil {
		return nil, false, err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, recovered, fmt.Errorf("%w: %v", domain.ErrInvalidModelOutput, err)
	}
	if !IsParsedMenu(generic) {
		return nil, recovered, fmt.Errorf("%w: %w", domain.ErrInvalidModelOutput,
			domain.NewValidationError("sections", "must be an array"))
	}

	var m domain.ParsedMenu
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, recovered, fmt.Errorf("%w: %v", domain.ErrInvalidModelOutput, err)
	}
	return &m, recovered, nil
}

// DecodeObject parses model output into dest using the same recovery as DecodeMenu.
func DecodeObject(text string, dest any) (bool, error) {
	data, recovered, err := RecoverJSON(text)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return recovered, fmt.Errorf("%w: %v", domain.ErrInvalidModelOutput, err)
	}
	return recovered, nil
}

// Truncate shortens s to at most maxLen bytes for log and error output.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
