package wizard

import (
	"testing"

	"github.com/kakunje/prakriti/internal/intake"
	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormState_Midpoints(t *testing.T) {
	cat := q.Default()
	s := newFormState(cat, "Asha")

	assert.Equal(t, "Asha", s.name)
	require.Len(t, s.constitution, 25)
	require.Len(t, s.state, 20)
	require.Len(t, s.personality, 10)
	assert.Equal(t, 3, *s.constitution["P1"])
	assert.Equal(t, 3, *s.state["V20"])
	assert.Equal(t, 4, *s.personality["O6"])
}

func TestFormState_Sheet(t *testing.T) {
	cat := q.Default()
	s := newFormState(cat, "  Asha Rao ")
	s.age = " 34 "
	s.gender = "Female"
	s.assessor = "Dr. K"
	*s.constitution["P1"] = 5
	*s.personality["E1"] = 7

	sheet, err := s.sheet()
	require.NoError(t, err)

	assert.Equal(t, intake.Patient{Name: "Asha Rao", Age: 34, Gender: "Female"}, sheet.Patient)
	assert.Equal(t, "Dr. K", sheet.Assessor)
	assert.Equal(t, 5, sheet.Constitution["P1"])
	assert.Equal(t, 3, sheet.Constitution["P2"])
	assert.Equal(t, 7, sheet.Personality["E1"])
	assert.Empty(t, sheet.UnknownIDs(cat))
}

func TestFormState_SheetOtherGenderIsBlank(t *testing.T) {
	s := newFormState(q.Default(), "Asha")
	sheet, err := s.sheet()
	require.NoError(t, err)
	assert.Empty(t, sheet.Patient.Gender)
	assert.Zero(t, sheet.Patient.Age)
}

func TestFormState_SheetRejectsMissingName(t *testing.T) {
	_, err := newFormState(q.Default(), "").sheet()
	assert.EqualError(t, err, "patient name is required")
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{"34", false},
		{"120", false},
		{"121", true},
		{"-1", true},
		{"thirty", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateAge(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScaleOptions(t *testing.T) {
	opts := scaleOptions(q.ScaleMin, q.ScaleMax, scaleLabels)
	require.Len(t, opts, 5)
	assert.Equal(t, "1 - Not at all", opts[0].Key)
	assert.Equal(t, 5, opts[4].Value)

	opts = scaleOptions(q.PersonalityMin, q.PersonalityMax, personalityLabels)
	require.Len(t, opts, 7)
	assert.Equal(t, "4 - Neither agree nor disagree", opts[3].Key)

	opts = scaleOptions(1, 2, nil)
	assert.Equal(t, "2", opts[1].Key)
}

func TestBuildForm(t *testing.T) {
	form := buildForm(q.Default(), newFormState(q.Default(), "Asha"))
	require.NotNil(t, form)
}
