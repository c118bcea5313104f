package narrative

import (
	"strings"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/recommend"
	"github.com/kakunje/prakriti/internal/scoring"
)

// Guideline trigger points, in percent.
const (
	stateFocusLevel        = 45
	constitutionFocusLevel = 55
	stateDietLevel         = 40
)

var immediateFocus = map[q.Category]string{
	q.Pitta: "Immediate focus: cool the system — reduce spicy/heavy oils, prefer cooling fruits and regular hydration. Avoid prolonged heat and intense competitive work in the afternoon.",
	q.Vata:  "Immediate focus: ground and regularise — increase warm, nourishing meals, short oil massage (Abhyanga) and a steady sleep/wake rhythm.",
	q.Kapha: "Immediate focus: energise and mobilise — prefer lighter, warming foods, increase daily movement and avoid long naps; introduce stimulating morning routines.",
}

// Pitta is checked first: heat signs take priority over the others.
var focusOrder = []q.Category{q.Pitta, q.Vata, q.Kapha}

var dietLines = map[q.Category]string{
	q.Vata:  "Warm, cooked meals; healthy oils like ghee; soups and stews. Avoid cold/raw foods early morning.",
	q.Pitta: "Cooling foods (cucumber, coconut, sweet fruits), limit spicy and sour items; moderate stimulants.",
	q.Kapha: "Light, warming foods; reduce dairy/sweets; include light spices and morning movement before breakfast.",
}

var routineLines = map[q.Category]string{
	q.Vata:  "Routine: Gentle daily routine — short Abhyanga (oil rub), slow breathing, and 20–35 min grounding movement (walk/yoga).",
	q.Pitta: "Routine: Moderate exercise avoiding peak heat; cooling relaxation after work; evening wind-down.",
	q.Kapha: "Routine: Brisk morning activity, interval-style movement, varied workouts during the week.",
}

var clinicalNotes = map[q.Category]string{
	q.Pitta: "Clinical note: Prioritise cooling and calm — avoid midday intensity for 1–2 weeks and reassess.",
	q.Vata:  "Clinical note: Prioritise routine and grounding — stabilise sleep and meal timings.",
	q.Kapha: "Clinical note: Prioritise movement and lightening measures — increase morning activity and reduce heavy evenings.",
}

const microActions = `Micro-actions (start today):
- Drink 1 glass warm water on waking.
- 2 minutes paced breathing after wake-up.
- One focused 60–90 min work block (use timer).
- Short walk after lunch (5–10 min).
- Light dinner 2+ hours before bed.`

// Guideline writes the personalised multi-paragraph guideline. Paragraphs are
// separated by a blank line.
func Guideline(constitution, state scoring.Distribution, traits scoring.TraitDistribution) string {
	dom := constitution.Dominant()
	cur := state.Dominant()

	parts := []string{
		"You are constitutionally " + dom.String() + "-dominant and currently showing stronger " + cur.String() + " tendencies.",
	}

	focus := "Immediate focus: stabilise digestion and sleep — warm meals, consistent mealtimes, and a short morning movement practice."
	for _, c := range focusOrder {
		if state[c] >= stateFocusLevel || constitution[c] >= constitutionFocusLevel {
			focus = immediateFocus[c]
			break
		}
	}
	parts = append(parts, focus)

	var diet []string
	for _, c := range q.Categories {
		if dom == c || state[c] >= stateDietLevel {
			diet = append(diet, dietLines[c])
		}
	}
	parts = append(parts, "Diet: "+strings.Join(diet, "  "))

	parts = append(parts, routineLines[dom])

	if emotionality, ok := traits[q.Emotionality]; ok && emotionality > recommend.HighEmotionality {
		parts = append(parts, "If anxiety-prone: 3–5 minutes slow exhale breathing each morning; reduce caffeine; small grounding tasks hourly.")
	} else {
		parts = append(parts, "Mind: Keep short daily practices (breath, 5 minutes reflection) and protect sleep hygiene.")
	}

	parts = append(parts, microActions, clinicalNotes[cur])
	return strings.Join(parts, "\n\n")
}
