// Package render turns an assessment report into the files handed to a
// patient: Markdown and HTML reports, a one-page plan, a follow-up calendar
// entry, a distribution chart, JSON and a terminal table.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/kakunje/prakriti/internal/assessment"
)

// Format names one output kind.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPlan     Format = "plan"
	FormatICS      Format = "ics"
	FormatPNG      Format = "png"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// Formats lists every supported format in bundle order.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatPlan, FormatICS, FormatPNG, FormatJSON, FormatText}

// DefaultFormats is the bundle written when no format is requested.
var DefaultFormats = []Format{FormatMarkdown, FormatHTML, FormatPlan, FormatICS, FormatPNG, FormatJSON}

// DefaultFollowupDays is how far ahead the follow-up reminder is scheduled.
const DefaultFollowupDays = 7

// ErrUnknownFormat is returned for unrecognised format names.
var ErrUnknownFormat = errors.New("unknown output format")

var fileNames = map[Format]string{
	FormatMarkdown: "report.md",
	FormatHTML:     "report.html",
	FormatPlan:     "plan.md",
	FormatICS:      "followup.ics",
	FormatPNG:      "chart.png",
	FormatJSON:     "report.json",
	FormatText:     "report.txt",
}

// Options tunes rendering.
type Options struct {
	// FollowupDays schedules the ICS reminder; zero means DefaultFollowupDays.
	FollowupDays int
}

func (o Options) followupDays() int {
	if o.FollowupDays <= 0 {
		return DefaultFollowupDays
	}
	return o.FollowupDays
}

// ParseFormat converts a flag value to a Format. "markdown" is accepted for md.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "markdown" {
		return FormatMarkdown, nil
	}
	f := Format(s)
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w %q: must be one of %s", ErrUnknownFormat, s, joinFormats(Formats))
	}
	return f, nil
}

// ParseFormats parses a comma-separated list, dropping duplicates. An empty
// list yields DefaultFormats.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return slices.Clone(DefaultFormats), nil
	}
	return out, nil
}

// FileName returns the bundle file name for f.
func FileName(f Format) string {
	return fileNames[f]
}

// Render writes r in format f.
func Render(w io.Writer, f Format, r *assessment.Report, opts Options) error {
	switch f {
	case FormatMarkdown:
		return Markdown(w, r)
	case FormatHTML:
		return HTML(w, r)
	case FormatPlan:
		return Plan(w, r)
	case FormatICS:
		return ICS(w, r, opts.followupDays())
	case FormatPNG:
		return Chart(w, r)
	case FormatJSON:
		return JSON(w, r)
	case FormatText:
		return Table(w, r)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, r *assessment.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func joinFormats(fs []Format) string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
