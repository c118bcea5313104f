package recommend

import q "github.com/kakunje/prakriti/internal/questionnaire"

type healthAdvice struct {
	diet      []string
	lifestyle []string
	herbs     []string
}

var healthByCategory = map[q.Category]healthAdvice{
	q.Vata: {
		diet:      []string{"Warm, cooked meals; include healthy oils; regular meal timings; avoid iced drinks first thing."},
		lifestyle: []string{"Daily warm oil massage (Abhyanga) 5–10 min; grounding morning routine; consistent sleep schedule."},
		herbs:     []string{"Ashwagandha (under clinician guidance), Bala for strength."},
	},
	q.Pitta: {
		diet:      []string{"Cooling foods; reduce spicy, fried and fermented foods; include bitter greens."},
		lifestyle: []string{"Avoid midday heat; cooling pranayama; calm, regular breaks."},
		herbs:     []string{"Amla, Guduchi (clinician review)."},
	},
	q.Kapha: {
		diet:      []string{"Light, warm, slightly astringent foods; reduce dairy & sweets."},
		lifestyle: []string{"Stimulating exercise 30–60 min daily; vary routine; dry massage (udvartana)."},
		herbs:     []string{"Trikatu, Guggulu (clinician supervision)."},
	},
}

var relationshipByCategory = map[q.Category]Tip{
	q.Vata:  {Title: "Stability & routines", Rationale: "Vata benefits from grounding, predictable routines; short daily check-ins help."},
	q.Pitta: {Title: "Cooling communication", Rationale: "Pause before responding and use neutral language during disagreements."},
	q.Kapha: {Title: "Introduce small novelty", Rationale: "Gentle new activities reduce inertia and boost engagement."},
}

var (
	reflectiveListeningTip = Tip{Title: "Reflective listening", Rationale: "Summarize what partner said before giving your view."}
	emotionRegulationTip   = Tip{Title: "Emotion regulation", Rationale: "Use 3-minute breathing or journaling before difficult talks."}
)

// Relationship tip trigger points. Both comparisons are strict.
const (
	LowAgreeableness  = 40
	HighEmotionality  = 60
	neutralTraitValue = 50
)
