package inference

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError means the completion did not contain a parseable
// JSON object. The raw response rides along so a reviewer can file a bug.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	snippet := e.Raw
	if len(snippet) > 512 {
		snippet = snippet[:512] + fmt.Sprintf("... [truncated, total_length=%d]", len(e.Raw))
	}
	return fmt.Sprintf("inference response malformed, no JSON object found: %s", snippet)
}

// ExtractJSON finds the first balanced brace-delimited substring of s, after
// stripping the markdown fences models like to wrap JSON in. Returns a
// MalformedResponseError when no balanced object exists.
func ExtractJSON(s string) (string, error) {
	raw := s
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return "", &MalformedResponseError{Raw: raw}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1]), nil
			}
		}
	}
	return "", &MalformedResponseError{Raw: raw}
}

// payload is the JSON envelope the model is asked to return.
type payload struct {
	Fields         rawFields `json:"zoho_fields"`
	Comment        string    `json:"zoho_comment"`
	SuggestedReply string    `json:"suggested_reply"`
}

// rawFields tolerates models returning non-string scalars for a field.
type rawFields struct {
	Contact       flexString `json:"contact"`
	DealerName    flexString `json:"dealer_name"`
	DealerID      flexString `json:"dealer_id"`
	Rep           flexString `json:"rep"`
	Category      flexString `json:"category"`
	SubCategory   flexString `json:"sub_category"`
	Syndicator    flexString `json:"syndicator"`
	InventoryType flexString `json:"inventory_type"`
}

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	// Numbers and the like: keep the literal text (dealer ids come back bare).
	*f = flexString(strings.Trim(trimmed, `"`))
	return nil
}

func parsePayload(content string) (payload, error) {
	jsonStr, err := ExtractJSON(content)
	if err != nil {
		return payload{}, err
	}
	var p payload
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return payload{}, &MalformedResponseError{Raw: content}
	}
	return p, nil
}
