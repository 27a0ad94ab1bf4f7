package triage

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Response field names. The external service must return exactly these.
const (
	FieldUrgency    = "urgency"
	FieldSpecialist = "recommendedSpecialist"
	FieldSummary    = "summary"
)

var responseFields = []string{FieldUrgency, FieldSpecialist, FieldSummary}

// BuildInstruction renders the single prompt sent to a text-generation
// provider for req.
func BuildInstruction(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Perform a professional clinical triage based on these symptoms: %q.\n", req.SymptomText)
	fmt.Fprintf(&b, "IMPORTANT: You must provide the summary and specialist recommendation in the language specified: %s (%s).\n",
		req.TargetLanguage, req.TargetLanguage.Name())
	b.WriteString("If the symptoms suggest a severe condition, set urgency to CRITICAL or HIGH.\n")
	fmt.Fprintf(&b, "Respond with one JSON object containing exactly these string fields: %s (one of %s, %s, %s, %s), %s, %s.",
		FieldUrgency, UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical, FieldSpecialist, FieldSummary)
	return b.String()
}

// ResponseSchema is the structured-output schema given to providers that
// support one. All three properties are required strings.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			FieldUrgency: {
				Type:        genai.TypeString,
				Description: "LOW, MEDIUM, HIGH, or CRITICAL",
			},
			FieldSpecialist: {
				Type:        genai.TypeString,
				Description: "The type of medical specialist recommended, in the target language.",
			},
			FieldSummary: {
				Type:        genai.TypeString,
				Description: "A brief professional summary of the condition, in the target language.",
			},
		},
		Required: []string{FieldUrgency, FieldSpecialist, FieldSummary},
	}
}
