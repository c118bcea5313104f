package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/kakunje/prakriti/internal/assessment"
	"github.com/kakunje/prakriti/internal/narrative"
	q "github.com/kakunje/prakriti/internal/questionnaire"
)

const dateLayout = "2006-01-02"

// Markdown writes the full report.
func Markdown(w io.Writer, r *assessment.Report) error {
	_, err := io.WriteString(w, markdown(r))
	return err
}

func markdown(r *assessment.Report) string {
	var b strings.Builder

	writeHeader(&b, r, "Assessment report")

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "%s\n\n%s\n\n", r.Narrative.Summary, r.Narrative.Insight)

	b.WriteString("## Dosha distribution\n\n")
	b.WriteString("| Dosha | Prakriti % | Vikriti % | Combined % | Severity |\n")
	b.WriteString("|---|---:|---:|---:|---|\n")
	health := r.Recommendations.Health
	for _, c := range q.Categories {
		fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %s |\n",
			c, r.Constitution[c], r.State[c], health.Combined[c],
			narrative.InterpretSeverity(health.Severity[c], r.Thresholds))
	}
	fmt.Fprintf(&b, "\nDominant Prakriti: **%s**. Dominant Vikriti: **%s**.\n\n", r.DominantConstitution, r.DominantState)

	b.WriteString("## Personality\n\n")
	b.WriteString("| Trait | % | Level |\n|---|---:|---|\n")
	for _, t := range q.Traits {
		fmt.Fprintf(&b, "| %s | %.1f | %s |\n", t, r.Traits[t], narrative.InterpretTrait(r.Traits[t]))
	}
	b.WriteString("\n")

	b.WriteString("## Career suggestions\n\n")
	for i, note := range r.CareerNotes {
		fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, note.Label, note.Text)
	}
	b.WriteString("\n")

	b.WriteString("## Relationship tips\n\n")
	for _, tip := range r.Recommendations.Relationship {
		fmt.Fprintf(&b, "- **%s** %s\n", tip.Title, tip.Rationale)
	}
	b.WriteString("\n")

	b.WriteString("## Health\n\n")
	fmt.Fprintf(&b, "- **Diet:** %s\n", strings.Join(health.Diet, "; "))
	fmt.Fprintf(&b, "- **Lifestyle:** %s\n", strings.Join(health.Lifestyle, "; "))
	fmt.Fprintf(&b, "- **Herbs:** %s\n\n", strings.Join(health.Herbs, "; "))

	b.WriteString("## Daily and seasonal routine\n\n")
	fmt.Fprintf(&b, "%s\n\n%s\n\n%s\n\n", r.Profile.DailyRoutine, r.Profile.SeasonalRoutine, r.Profile.AgeGenderTips)

	b.WriteString("## Personal guideline\n\n")
	fmt.Fprintf(&b, "%s\n\n", r.Narrative.Guideline)

	b.WriteString("## Habit stack\n\n")
	writeBlock(&b, r.Narrative.HabitStack)

	b.WriteString("## 90-day plan\n\n")
	writeBlock(&b, r.Narrative.Plan)

	b.WriteString("## Action checklist\n\n")
	writeBlock(&b, r.Narrative.Checklist)

	if r.Fallbacks.Any() {
		b.WriteString("## Data quality\n\n")
		writeFallbacks(&b, r.Fallbacks)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\n%s\n", r.Narrative.DoctorNote)
	return b.String()
}

// Plan writes the one-page action plan.
func Plan(w io.Writer, r *assessment.Report) error {
	var b strings.Builder
	writeHeader(&b, r, "One-page action plan")

	fmt.Fprintf(&b, "%s\n\n", r.Narrative.Summary)
	b.WriteString("## Start today\n\n")
	writeBlock(&b, r.Narrative.Checklist)
	b.WriteString("## Habit stack\n\n")
	writeBlock(&b, r.Narrative.HabitStack)
	b.WriteString("## Keep momentum\n\n")
	fmt.Fprintf(&b, "%s\n\n", r.Narrative.Tips)
	fmt.Fprintf(&b, "---\n\n%s\n", r.Narrative.DoctorNote)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHeader(b *strings.Builder, r *assessment.Report, title string) {
	app := r.App.AppName
	if app == "" {
		app = "Prakriti"
	}
	fmt.Fprintf(b, "# %s: %s\n\n", app, title)

	patient := r.DisplayName()
	if r.Patient.Age > 0 {
		patient += fmt.Sprintf(", %d", r.Patient.Age)
	}
	if r.Patient.Gender != "" {
		patient += fmt.Sprintf(", %s", r.Patient.Gender)
	}
	fmt.Fprintf(b, "- **Patient:** %s\n", patient)
	if r.Assessor != "" {
		fmt.Fprintf(b, "- **Assessor:** %s\n", r.Assessor)
	}
	fmt.Fprintf(b, "- **Date:** %s\n", r.CreatedAt.Format(dateLayout))
	if r.Profile.Season != "" {
		fmt.Fprintf(b, "- **Season:** %s\n", r.Profile.Season)
	}
	if r.ID != "" {
		fmt.Fprintf(b, "- **Assessment:** `%s`\n", r.ID)
	}
	b.WriteString("\n")
}

func writeBlock(b *strings.Builder, text string) {
	fmt.Fprintf(b, "```text\n%s\n```\n\n", strings.TrimRight(text, "\n"))
}

func writeFallbacks(b *strings.Builder, fb assessment.Fallbacks) {
	if n := len(fb.ConstitutionDefaulted) + len(fb.StateDefaulted); n > 0 {
		fmt.Fprintf(b, "- %d unanswered question(s) were scored at the midpoint.\n", n)
	}
	if fb.ConstitutionDegenerate || fb.StateDegenerate {
		b.WriteString("- A distribution had no weighted answers and was shown as equal thirds.\n")
	}
	if fb.NeutralTraits {
		fmt.Fprintf(b, "- Personality items missing (%s); traits shown as neutral 50%%.\n",
			strings.Join(fb.PersonalityMissing, ", "))
	}
	if len(fb.OutOfRange) > 0 {
		fmt.Fprintf(b, "- Answers outside the scale: %s.\n", strings.Join(fb.OutOfRange, ", "))
	}
	if len(fb.UnknownIDs) > 0 {
		fmt.Fprintf(b, "- Ignored unknown answers: %s.\n", strings.Join(fb.UnknownIDs, ", "))
	}
}
