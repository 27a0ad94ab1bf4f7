package triage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
)

func chatCompletionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
	return string(b)
}

func newOpenAIStub(t *testing.T, handler http.HandlerFunc) *OpenAIClassifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	o, err := NewOpenAIClassifier(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}
	return o
}

func TestOpenAI_Classify(t *testing.T) {
	o := newOpenAIStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Model          string `json:"model"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %q", body.ResponseFormat.Type)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatCompletionBody(`{"urgency":"CRITICAL","recommendedSpecialist":"Cardiologist","summary":"Call emergency services."}`))
	})

	req, _ := NewRequest("crushing chest pain", i18n.English)
	got, err := o.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Urgency != "CRITICAL" {
		t.Errorf("expected CRITICAL, got %s", got.Urgency)
	}
}

func TestOpenAI_ServerErrorIsTransport(t *testing.T) {
	o := newOpenAIStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	})
	req, _ := NewRequest("cough", i18n.English)
	if _, err := o.Classify(context.Background(), req); !errors.Is(err, ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestOpenAI_ExtraFieldIsShape(t *testing.T) {
	o := newOpenAIStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatCompletionBody(`{"urgency":"LOW","recommendedSpecialist":"GP","summary":"ok","confidence":"high"}`))
	})
	req, _ := NewRequest("cough", i18n.English)
	if _, err := o.Classify(context.Background(), req); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}
