package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
)

// RulesClassifier is an offline keyword classifier. It produces the same
// response shape as the remote providers so the rest of the flow is unchanged.
type RulesClassifier struct {
	tiers       []keywordTier
	specialists []specialistRule
}

type keywordTier struct {
	urgency  Urgency
	keywords []string
}

type specialistRule struct {
	specialist string
	keywords   []string
}

// NewRulesClassifier returns a classifier with the built-in English and
// Indonesian keyword sets.
func NewRulesClassifier() *RulesClassifier {
	return &RulesClassifier{
		tiers: []keywordTier{
			{UrgencyCritical, []string{
				"not breathing", "unconscious", "heart attack", "stroke", "severe bleeding",
				"seizure", "anaphylaxis", "overdose", "choking",
				"tidak bernapas", "pingsan", "serangan jantung", "pendarahan hebat", "kejang",
			}},
			{UrgencyHigh, []string{
				"chest pain", "difficulty breathing", "shortness of breath", "high fever",
				"severe pain", "broken bone", "concussion", "allergic reaction",
				"nyeri dada", "sesak napas", "demam tinggi", "sakit parah", "patah tulang",
			}},
			{UrgencyMedium, []string{
				"fever", "vomiting", "diarrhea", "migraine", "burn", "deep cut", "persistent cough",
				"demam", "muntah", "diare", "luka bakar", "batuk terus",
			}},
			{UrgencyLow, []string{
				"sore throat", "runny nose", "rash", "sprain", "minor headache", "cold",
				"sakit tenggorokan", "pilek", "ruam", "keseleo", "pusing ringan",
			}},
		},
		specialists: []specialistRule{
			{"Cardiologist", []string{"chest", "heart", "palpitation", "dada", "jantung", "berdebar"}},
			{"Pulmonologist", []string{"breath", "cough", "lung", "wheez", "napas", "batuk", "paru"}},
			{"Pediatrician", []string{"child", "baby", "infant", "toddler", "anak", "bayi", "balita"}},
		},
	}
}

func (r *RulesClassifier) Name() string { return ProviderRules }

// Classify picks the most urgent tier with a keyword hit. Text matching no
// tier is LOW.
func (r *RulesClassifier) Classify(ctx context.Context, req Request) (ClassificationResponse, error) {
	if err := ctx.Err(); err != nil {
		return ClassificationResponse{}, transportError(err)
	}

	text := strings.ToLower(req.SymptomText)

	urgency := UrgencyLow
	var matched string
	for _, tier := range r.tiers {
		if kw, ok := firstMatch(text, tier.keywords); ok {
			urgency = tier.urgency
			matched = kw
			break
		}
	}

	specialist := DefaultSpecialist
	for _, rule := range r.specialists {
		if _, ok := firstMatch(text, rule.keywords); ok {
			specialist = rule.specialist
			break
		}
	}

	return ClassificationResponse{
		Urgency:               string(urgency),
		RecommendedSpecialist: LocalizeSpecialist(specialist, req.TargetLanguage),
		Summary:               rulesSummary(req.TargetLanguage, urgency, matched),
	}, nil
}

func firstMatch(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// specialistNames translates the specialties the rules classifier and the
// doctor directory know about. Keys are the English names.
var specialistNames = map[string]map[i18n.Language]string{
	DefaultSpecialist: {
		i18n.Indonesian: "Dokter Umum",
		i18n.Japanese:   "一般内科医",
		i18n.Korean:     "일반의",
	},
	"Cardiologist": {
		i18n.Indonesian: "Dokter Spesialis Jantung",
		i18n.Japanese:   "循環器内科医",
		i18n.Korean:     "심장내과 전문의",
	},
	"Pulmonologist": {
		i18n.Indonesian: "Dokter Spesialis Paru",
		i18n.Japanese:   "呼吸器内科医",
		i18n.Korean:     "호흡기내과 전문의",
	},
	"Pediatrician": {
		i18n.Indonesian: "Dokter Spesialis Anak",
		i18n.Japanese:   "小児科医",
		i18n.Korean:     "소아청소년과 전문의",
	},
}

// LocalizeSpecialist returns the English specialty name in lang. English and
// unknown names are returned unchanged.
func LocalizeSpecialist(name string, lang i18n.Language) string {
	if tr, ok := specialistNames[name][lang]; ok {
		return tr
	}
	return name
}

// CanonicalSpecialist maps a specialty name in any supported language back
// to its English name. Unknown names are returned trimmed.
func CanonicalSpecialist(name string) string {
	name = strings.TrimSpace(name)
	for en, tr := range specialistNames {
		if strings.EqualFold(name, en) {
			return en
		}
		for _, v := range tr {
			if strings.EqualFold(name, v) {
				return en
			}
		}
	}
	return name
}

var rulesSummaryTemplates = map[i18n.Language]struct{ matched, plain string }{
	i18n.Indonesian: {"Gejala yang dilaporkan (%s) menunjukkan tingkat urgensi %s.", "Gejala yang dilaporkan menunjukkan tingkat urgensi %s."},
	i18n.English:    {"Reported symptoms (%s) indicate %s urgency.", "Reported symptoms indicate %s urgency."},
	i18n.Japanese:   {"報告された症状（%s）は緊急度%sを示しています。", "報告された症状は緊急度%sを示しています。"},
	i18n.Korean:     {"보고된 증상(%s)은 %s 긴급도를 나타냅니다.", "보고된 증상은 %s 긴급도를 나타냅니다."},
}

func rulesSummary(lang i18n.Language, urgency Urgency, matched string) string {
	tmpl, ok := rulesSummaryTemplates[lang]
	if !ok {
		tmpl = rulesSummaryTemplates[i18n.DefaultLanguage]
	}
	if matched == "" {
		return fmt.Sprintf(tmpl.plain, urgency)
	}
	return fmt.Sprintf(tmpl.matched, matched, urgency)
}
