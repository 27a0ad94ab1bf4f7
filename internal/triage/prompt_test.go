package triage

import (
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
)

func TestBuildInstruction(t *testing.T) {
	req, _ := NewRequest(`nyeri "dada" kiri`, i18n.Korean)
	got := BuildInstruction(req)

	for _, want := range []string{`"nyeri \"dada\" kiri"`, "kr (Korean)", "CRITICAL or HIGH", FieldSpecialist} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q:\n%s", want, got)
		}
	}
}

func TestResponseSchema_RequiresAllFields(t *testing.T) {
	schema := ResponseSchema()
	if len(schema.Required) != 3 {
		t.Fatalf("unexpected required list: %v", schema.Required)
	}
	for _, f := range schema.Required {
		prop, ok := schema.Properties[f]
		if !ok || prop.Type != genai.TypeString {
			t.Errorf("field %s must be a string property", f)
		}
	}
}

func TestNewRequest(t *testing.T) {
	if _, err := NewRequest("   ", i18n.English); kindOrEmpty(err) != KindInput {
		t.Errorf("expected input error for blank symptoms, got %v", err)
	}
	if _, err := NewRequest("cough", "fr"); kindOrEmpty(err) != KindInput {
		t.Errorf("expected input error for unsupported language, got %v", err)
	}
}

func kindOrEmpty(err error) ErrorKind {
	k, _ := KindOf(err)
	return k
}
