package i18n

import (
	"errors"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{
		"id":   Indonesian,
		"en":   English,
		" JP ": Japanese,
		"kr":   Korean,
	}
	for in, want := range cases {
		got, err := ParseLanguage(in)
		if err != nil {
			t.Fatalf("ParseLanguage(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLanguage_Unsupported(t *testing.T) {
	for _, in := range []string{"", "fr", "ja", "ko"} {
		_, err := ParseLanguage(in)
		if !errors.Is(err, ErrUnsupportedLanguage) {
			t.Errorf("ParseLanguage(%q): expected ErrUnsupportedLanguage, got %v", in, err)
		}
	}
}

func TestLanguage_Name(t *testing.T) {
	if English.Name() != "English (US)" {
		t.Errorf("unexpected English name %q", English.Name())
	}
	if Language("xx").Name() != "xx" {
		t.Errorf("unknown language should render its code")
	}
}

func TestCatalog_T(t *testing.T) {
	c := Default()

	if got := c.T(English, "alerts_none"); got != "None" {
		t.Errorf("en alerts_none = %q, want None", got)
	}
	if got := c.T(Indonesian, "alerts_none"); got != "Tidak ada" {
		t.Errorf("id alerts_none = %q, want Tidak ada", got)
	}
}

func TestCatalog_T_FallsBackToDefaultLanguage(t *testing.T) {
	c := Default()

	// Korean has no SOAP labels; the Indonesian string is used.
	if got := c.T(Korean, "soap_plan"); got != "Rencana" {
		t.Errorf("kr soap_plan = %q, want fallback Rencana", got)
	}
	if got := c.T(Language("fr"), "triage"); got != "Triase AI" {
		t.Errorf("unknown language should use fallback table, got %q", got)
	}
}

func TestCatalog_T_MissingKeyReturnsKey(t *testing.T) {
	c := Default()
	if got := c.T(English, "no_such_key"); got != "no_such_key" {
		t.Errorf("missing key = %q, want the key itself", got)
	}
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	tables := map[Language]map[string]string{
		English: {"hello": "Hello"},
	}
	c := NewCatalog(tables, English)
	tables[English]["hello"] = "changed"

	if got := c.T(English, "hello"); got != "Hello" {
		t.Errorf("catalog was mutated through caller map: %q", got)
	}
}

func TestCatalog_EveryLanguageHasFailureNotice(t *testing.T) {
	c := Default()
	for _, lang := range Languages() {
		if got := c.T(lang, "analysis_failed"); got == "analysis_failed" {
			t.Errorf("%s: analysis_failed is untranslated", lang)
		}
	}
	if !c.Has("analysis_failed") {
		t.Error("fallback table should contain analysis_failed")
	}
	if len(c.Keys()) == 0 {
		t.Error("expected keys in fallback table")
	}
}
