package lifestyle

import (
	"strings"
	"testing"
	"time"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func TestAgeGroupOf(t *testing.T) {
	tests := []struct {
		age  int
		want AgeGroup
	}{
		{0, Child}, {12, Child}, {13, YoungAdult}, {25, YoungAdult},
		{26, Adult}, {60, Adult}, {61, OlderAdult},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeGroupOf(tt.age), "age %d", tt.age)
	}
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, Male, NormalizeGender(" M "))
	assert.Equal(t, Female, NormalizeGender("Woman"))
	assert.Equal(t, Other, NormalizeGender(""))
	assert.Equal(t, Other, NormalizeGender("non-binary"))
}

func TestSeasonOf(t *testing.T) {
	want := map[time.Month]Season{
		time.January: Hemanta, time.February: Shishira, time.March: Vasanta, time.April: Vasanta,
		time.May: Grishma, time.June: Grishma, time.July: Varsha, time.August: Varsha,
		time.September: Sharad, time.October: Sharad, time.November: HemantaSharad, time.December: Hemanta,
	}
	for m, s := range want {
		assert.Equal(t, s, SeasonOf(m), m.String())
	}
}

func TestFocusCategories(t *testing.T) {
	constitution := scoring.Distribution{q.Vata: 20, q.Pitta: 30, q.Kapha: 50}

	assert.Equal(t, []q.Category{q.Vata, q.Pitta},
		FocusCategories(constitution, scoring.Distribution{q.Vata: 40, q.Pitta: 41, q.Kapha: 19}))
	assert.Equal(t, []q.Category{q.Kapha},
		FocusCategories(constitution, scoring.Distribution{q.Vata: 39.9, q.Pitta: 30, q.Kapha: 30.1}))
}

func TestDailyAndSeasonalRoutine(t *testing.T) {
	daily := DailyRoutine([]q.Category{q.Kapha, q.Vata})
	assert.True(t, strings.HasPrefix(daily, "Daily: Wake earlier"), "vata line comes first")
	assert.Contains(t, daily, "Brisk morning movement")
	assert.Contains(t, DailyRoutine(nil), "Warm water on waking")

	seasonal := SeasonalRoutine(Grishma, []q.Category{q.Pitta})
	assert.True(t, strings.HasPrefix(seasonal, "Season (Grishma - hot)"))
	assert.True(t, strings.HasSuffix(seasonal, "avoid intense heat exposure."))
	assert.True(t, strings.HasPrefix(SeasonalRoutine(Vasanta, nil), "Season: Follow balanced"))
}

func TestAgeGenderTips(t *testing.T) {
	assert.Equal(t,
		"For adults: steady daily routine, protect sleep, short breaks during work and light evening activity. "+
			"Women: pay attention to iron-rich warm foods if needed and simple self-care around monthly cycles.",
		AgeGenderTips(Adult, Female))
	assert.NotContains(t, AgeGenderTips(Child, Other), "Men:")
}

func TestBuild(t *testing.T) {
	constitution := scoring.Distribution{q.Vata: 50, q.Pitta: 30, q.Kapha: 20}
	state := scoring.Distribution{q.Vata: 30, q.Pitta: 45, q.Kapha: 25}
	now := time.Date(2026, time.July, 4, 10, 0, 0, 0, time.UTC)

	p := Build(34, "f", now, constitution, state)
	assert.Equal(t, Adult, p.AgeGroup)
	assert.Equal(t, Female, p.Gender)
	assert.Equal(t, Varsha, p.Season)
	assert.Equal(t, []q.Category{q.Pitta}, p.Focus)
	assert.Contains(t, p.DailyRoutine, "cooling breaks")
	assert.Contains(t, p.SeasonalRoutine, "monsoon")
}
