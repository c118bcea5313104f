// Package narrative produces the plain-language text of a report: the
// summary, the 90-day plan, the one-page checklist and the insight paragraph,
// along with the habit stack, tips, doctor's note and personalised guideline.
package narrative

import (
	"strings"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/recommend"
	"github.com/kakunje/prakriti/internal/scoring"
	"github.com/kakunje/prakriti/internal/template"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Input is everything the synthesizer reads.
type Input struct {
	Name            string
	Constitution    scoring.Distribution
	State           scoring.Distribution
	Traits          scoring.TraitDistribution
	Recommendations recommend.Result
}

// Narrative is the set of generated text artifacts.
type Narrative struct {
	Summary    string `json:"summary"`
	Plan       string `json:"plan"`
	Checklist  string `json:"checklist"`
	Insight    string `json:"insight"`
	HabitStack string `json:"habit_stack"`
	Tips       string `json:"tips"`
	DoctorNote string `json:"doctor_note"`
	Guideline  string `json:"guideline"`
}

// DefaultName is used when the patient has no display name.
const DefaultName = "You"

// stateAdjectives describe how an aggravated state tends to feel.
var stateAdjectives = map[q.Category]string{
	q.Vata:  "scattered & anxious",
	q.Pitta: "hot & impatient",
	q.Kapha: "slow & heavy",
}

var strengths = map[q.Category]string{
	q.Vata:  "creativity, quick thinking and adaptable energy",
	q.Pitta: "focus, drive and clear decision-making",
	q.Kapha: "steadiness, endurance and loyalty",
}

// dosha notes are shared by the insight paragraph and career rationales.
var constitutionNotes = map[q.Category]string{
	q.Vata:  "Your constitutional Vata suggests creativity and flexible thinking — roles that allow variety and autonomy tend to suit well.",
	q.Pitta: "Your constitutional Pitta suggests focus and leadership — roles with clear goals and measurable outcomes fit well.",
	q.Kapha: "Your constitutional Kapha suggests steadiness and reliability — roles with structured progress and team support are favourable.",
}

const (
	summaryTemplate = "{{.Name}} — you have {{.Constitution}}-style strengths: {{.Strengths}}. " +
		"Right now you may feel {{.Adjective}}."

	insightTemplate = "You are primarily {{.Constitution}}. Your natural strengths are {{.Strengths}}. " +
		"{{.Vars.note}} Small daily rituals that respect this nature will compound over the next 90 days."
)

// Plan is the static 90-day plan.
const Plan = `90-day transformation plan (small actions -> identity change):
Day 1: Identity pledge — write one line: 'I am someone who finishes what they start with calm focus.'
Days 1–21: Core daily ritual — warm water, 5–10 min oil rub or warm stretch, two focused 60–90 min blocks.
Weeks 4–12: Publish one small project every 2–3 weeks and get feedback.
Accountability: pick a peer for weekly 2-min check-ins over 12 weeks.
Measure: morning energy 1–5 and sleep time daily; review at day 14, 45, 90.`

// Checklist is the static one-page checklist.
const Checklist = `ONE-PAGE ACTION CHECKLIST
- Morning: warm water + 2 min breathing + 5–10 min oil rub/stretch
- Work: 2 focused blocks (60–90 min each). Timer ON.
- Movement: 25–35 min daily walk / yoga.
- Evening: light dinner by 8 pm; reflect on 2 wins.
- Weekly: share a small project and plan next week (20 min).
- Accountability: weekly check-in with chosen peer for 12 weeks.`

// HabitStack is the static morning-to-evening habit sequence.
const HabitStack = `Life-changing habit stack (15–25 min total):
A) Warm water + 2 min breathing (inhale 4s / exhale 6s).
B) 5–10 min oil massage or 10 min stretching.
C) One 60–90 min focused work block (timer on).
D) Evening reflection: list 2 wins and 1 tomorrow task.`

// Tips are the static momentum tips.
const Tips = `- Reduce decision fatigue: limit morning choices to 3 (clothes/breakfast).
- Ship every week: a tiny deliverable that builds momentum.
- Use '2-minute accountability' with a friend; micro-commitments scale.
- Reassess and tweak after 14 days — small changes compound.`

// DoctorNote closes every report.
const DoctorNote = "Doctor's note: Begin the 'Start today' actions now. Small consistent changes matter more than rare big efforts. " +
	"We will review progress at 2 weeks and refine the plan."

// Synthesize builds the narrative for in. It is a pure function of its input.
func Synthesize(in Input) Narrative {
	dom := in.Constitution.Dominant()
	cur := in.State.Dominant()

	ctx := &template.Context{
		Name:         DisplayName(in.Name),
		Constitution: dom.String(),
		State:        cur.String(),
		Adjective:    stateAdjectives[cur],
		Strengths:    strengths[dom],
		Vars:         map[string]string{"note": constitutionNotes[dom]},
	}

	return Narrative{
		Summary:    template.MustRender(summaryTemplate, ctx),
		Plan:       Plan,
		Checklist:  Checklist,
		Insight:    template.MustRender(insightTemplate, ctx),
		HabitStack: HabitStack,
		Tips:       Tips,
		DoctorNote: DoctorNote,
		Guideline:  Guideline(in.Constitution, in.State, in.Traits),
	}
}

// StateAdjective returns the phrase used for an aggravated category.
func StateAdjective(c q.Category) string {
	return stateAdjectives[c]
}

// DisplayName title-cases a patient name, falling back to DefaultName.
func DisplayName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return DefaultName
	}
	return cases.Title(language.English, cases.NoLower).String(name)
}
