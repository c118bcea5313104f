package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/kakunje/prakriti/internal/assessment"
	"github.com/kakunje/prakriti/internal/narrative"
	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/mattn/go-runewidth"
)

// Table writes a compact plain-text summary for terminals.
func Table(w io.Writer, r *assessment.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  (%s)\n\n", r.DisplayName(), r.CreatedAt.Format(dateLayout))

	health := r.Recommendations.Health
	rows := [][]string{{"Dosha", "Prakriti", "Vikriti", "Combined", "Severity"}}
	for _, c := range q.Categories {
		rows = append(rows, []string{
			c.String(),
			fmt.Sprintf("%.1f%%", r.Constitution[c]),
			fmt.Sprintf("%.1f%%", r.State[c]),
			fmt.Sprintf("%.1f%%", health.Combined[c]),
			health.Severity[c].String(),
		})
	}
	WriteTable(&b, rows)
	b.WriteString("\n")

	rows = [][]string{{"Trait", "Score", "Level"}}
	for _, t := range q.Traits {
		rows = append(rows, []string{t.String(), fmt.Sprintf("%.1f%%", r.Traits[t]), narrative.InterpretTrait(r.Traits[t])})
	}
	WriteTable(&b, rows)
	b.WriteString("\n")

	rows = [][]string{{"Career", "Score"}}
	for _, c := range r.Recommendations.Careers {
		rows = append(rows, []string{truncate(c.Label, 40), fmt.Sprintf("%d", c.Score)})
	}
	WriteTable(&b, rows)
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", r.Narrative.Summary)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTable writes rows as left-aligned columns sized by display width. The
// first row is the header and is underlined.
func WriteTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(widths) && i < len(row)-1 {
				cell = padRight(cell, widths[i])
			}
			cells[i] = cell
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteString("\n")
		if n == 0 {
			total := 0
			for _, wd := range widths {
				total += wd
			}
			b.WriteString(strings.Repeat("─", total+2*(len(widths)-1)))
			b.WriteString("\n")
		}
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// truncate shortens s to width display columns, ending in "…" when cut.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
