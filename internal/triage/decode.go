package triage

import (
	"bytes"
	"encoding/json"
)

// DecodeResponse parses the raw text a provider produced. The text must be a
// single JSON object holding exactly the three string fields; anything else
// is a shape error.
func DecodeResponse(raw []byte) (ClassificationResponse, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ClassificationResponse{}, shapeError("empty response body")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return ClassificationResponse{}, shapeError("response is not a JSON object: %v", err)
	}
	if fields == nil {
		return ClassificationResponse{}, shapeError("response is null")
	}

	for name := range fields {
		if !knownField(name) {
			return ClassificationResponse{}, shapeError("unexpected field %q", name)
		}
	}

	values := make(map[string]string, len(responseFields))
	for _, name := range responseFields {
		v, ok := fields[name]
		if !ok {
			return ClassificationResponse{}, shapeError("missing field %q", name)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return ClassificationResponse{}, shapeError("field %q is null", name)
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ClassificationResponse{}, shapeError("field %q is not a string", name)
		}
		values[name] = s
	}

	return ClassificationResponse{
		Urgency:               values[FieldUrgency],
		RecommendedSpecialist: values[FieldSpecialist],
		Summary:               values[FieldSummary],
	}, nil
}

// ValidateSemantics checks the content of a well-shaped response.
func ValidateSemantics(resp ClassificationResponse) error {
	if !Urgency(resp.Urgency).Valid() {
		return semanticError("urgency %q is not one of LOW, MEDIUM, HIGH, CRITICAL", resp.Urgency)
	}
	return nil
}

func knownField(name string) bool {
	for _, f := range responseFields {
		if f == name {
			return true
		}
	}
	return false
}
