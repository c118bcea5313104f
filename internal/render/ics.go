package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kakunje/prakriti/internal/assessment"
)

const (
	icsDateTime  = "20060102T150405"
	followupHour = 9
)

// ICS writes a calendar entry for a follow-up visit days after the report
// date, at 09:00 local to the report's clock. Lines end in CRLF.
func ICS(w io.Writer, r *assessment.Report, days int) error {
	created := r.CreatedAt
	day := created.AddDate(0, 0, days)
	start := time.Date(day.Year(), day.Month(), day.Day(), followupHour, 0, 0, 0, created.Location())

	uid := r.ID
	if uid == "" {
		uid = created.UTC().Format(icsDateTime)
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//prakriti//followup//EN",
		"BEGIN:VEVENT",
		"UID:" + uid + "@prakriti",
		"DTSTAMP:" + created.UTC().Format(icsDateTime) + "Z",
		"DTSTART:" + start.Format(icsDateTime),
		"DTEND:" + start.Add(30*time.Minute).Format(icsDateTime),
		"SUMMARY:" + icsEscape(fmt.Sprintf("Follow-up — %s", r.DisplayName())),
		"DESCRIPTION:Review Ayurveda plan and progress.",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	_, err := io.WriteString(w, strings.Join(lines, "\r\n")+"\r\n")
	return err
}

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

func icsEscape(s string) string {
	return icsEscaper.Replace(s)
}
