// Package lifestyle derives the personal context printed alongside a report:
// age group, season and the daily and seasonal routine suggestions.
package lifestyle

import (
	"strings"
	"time"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/scoring"
)

// AgeGroup buckets a patient's age.
type AgeGroup string

const (
	Child      AgeGroup = "child"
	YoungAdult AgeGroup = "young_adult"
	Adult      AgeGroup = "adult"
	OlderAdult AgeGroup = "older_adult"
)

// Gender is the normalised gender used for tips.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// Season is an Indian ritu.
type Season string

const (
	Hemanta       Season = "Hemanta"
	Shishira      Season = "Shishira"
	Vasanta       Season = "Vasanta"
	Grishma       Season = "Grishma"
	Varsha        Season = "Varsha"
	Sharad        Season = "Sharad"
	HemantaSharad Season = "Hemanta/Sharad"
)

// FocusLevel is the state percentage at which a category joins the focus list.
const FocusLevel = 40

// Profile is the personal context for a report.
type Profile struct {
	AgeGroup        AgeGroup     `json:"age_group"`
	Gender          Gender       `json:"gender"`
	Season          Season       `json:"season"`
	Focus           []q.Category `json:"focus"`
	DailyRoutine    string       `json:"daily_routine"`
	SeasonalRoutine string       `json:"seasonal_routine"`
	AgeGenderTips   string       `json:"age_gender_tips"`
}

// Build assembles a Profile.
func Build(age int, gender string, now time.Time, constitution, state scoring.Distribution) Profile {
	group := AgeGroupOf(age)
	g := NormalizeGender(gender)
	season := SeasonOf(now.Month())
	focus := FocusCategories(constitution, state)
	return Profile{
		AgeGroup:        group,
		Gender:          g,
		Season:          season,
		Focus:           focus,
		DailyRoutine:    DailyRoutine(focus),
		SeasonalRoutine: SeasonalRoutine(season, focus),
		AgeGenderTips:   AgeGenderTips(group, g),
	}
}

// AgeGroupOf buckets age: child up to 12, young adult up to 25, adult up to
// 60. Unknown (zero or negative) ages count as children.
func AgeGroupOf(age int) AgeGroup {
	switch {
	case age <= 12:
		return Child
	case age <= 25:
		return YoungAdult
	case age <= 60:
		return Adult
	default:
		return OlderAdult
	}
}

// NormalizeGender maps free text onto male, female or other.
func NormalizeGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "man":
		return Male
	case "f", "female", "woman":
		return Female
	default:
		return Other
	}
}

// SeasonOf returns the approximate ritu for a calendar month.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January:
		return Hemanta
	case time.February:
		return Shishira
	case time.March, time.April:
		return Vasanta
	case time.May, time.June:
		return Grishma
	case time.July, time.August:
		return Varsha
	case time.September, time.October:
		return Sharad
	default:
		return HemantaSharad
	}
}

// FocusCategories lists state categories at or above FocusLevel, in category
// order. When none qualifies the constitutional dominant is used.
func FocusCategories(constitution, state scoring.Distribution) []q.Category {
	var focus []q.Category
	for _, c := range q.Categories {
		if state[c] >= FocusLevel {
			focus = append(focus, c)
		}
	}
	if len(focus) == 0 {
		focus = []q.Category{constitution.Dominant()}
	}
	return focus
}

var dailyLines = map[q.Category]string{
	q.Vata:  "Daily: Wake earlier, warm water on rising, short oil massage (Abhyanga) if possible, simple grounding breath.",
	q.Pitta: "Daily: Avoid heavy midday work close to peak heat; include cooling breaks and calming evenings.",
	q.Kapha: "Daily: Brisk morning movement, lighter breakfasts and reduce late heavy foods.",
}

// DailyRoutine returns the dinacharya suggestion for the focus categories.
func DailyRoutine(focus []q.Category) string {
	var lines []string
	for _, c := range q.Categories {
		if contains(focus, c) {
			lines = append(lines, dailyLines[c])
		}
	}
	if len(lines) == 0 {
		return "Daily: Warm water on waking, 5–10 min movement, regular meals and evening wind-down."
	}
	return strings.Join(lines, " ")
}

var seasonalAddenda = map[q.Category]string{
	q.Vata:  " For Vata tendencies, emphasise warm oils, cooked meals and extra rest.",
	q.Pitta: " For Pitta tendencies, emphasise cooling foods and avoid intense heat exposure.",
	q.Kapha: " For Kapha tendencies, emphasise light meals and more activity.",
}

// SeasonalRoutine returns the ritucharya suggestion for a season and focus.
func SeasonalRoutine(season Season, focus []q.Category) string {
	tip := seasonTip(season)
	for _, c := range q.Categories {
		if contains(focus, c) {
			tip += seasonalAddenda[c]
		}
	}
	return tip
}

func seasonTip(s Season) string {
	switch s {
	case Hemanta, Shishira:
		return "Season (Hemanta/Shishira): Cold/time to keep warm; prefer warm oils, soups, and avoid long cold exposure."
	case Grishma:
		return "Season (Grishma - hot): Cooling foods, lighter meals, increase hydration, avoid mid-day heat."
	case Varsha:
		return "Season (Varsha - monsoon): Favor cooked, dry, well-spiced food; avoid street food; keep digestion strong."
	case Sharad:
		return "Season (Sharad): Gradually transition to slightly lighter foods; morning sun exposure is useful."
	default:
		return "Season: Follow balanced seasonal adjustments — prefer warm cooked food and steady routines."
	}
}

// AgeGenderTips returns the age and gender specific advice.
func AgeGenderTips(group AgeGroup, g Gender) string {
	var tips []string
	switch group {
	case Child:
		tips = append(tips, "For children: small, warm meals, regular sleep; avoid long screen time before bed.")
	case YoungAdult:
		tips = append(tips, "For younger adults: build routine habits, 20–30 min daily movement and consistent sleep.")
	case Adult:
		tips = append(tips, "For adults: steady daily routine, protect sleep, short breaks during work and light evening activity.")
	default:
		tips = append(tips, "For older adults: gentle movements, focus on digestion and warmth, avoid heavy exertion.")
	}
	switch g {
	case Female:
		tips = append(tips, "Women: pay attention to iron-rich warm foods if needed and simple self-care around monthly cycles.")
	case Male:
		tips = append(tips, "Men: ensure balanced protein + warm home-cooked meals and adequate rest when stressed.")
	}
	return strings.Join(tips, " ")
}

func contains(cs []q.Category, c q.Category) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
