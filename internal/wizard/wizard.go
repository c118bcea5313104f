// Package wizard collects an answer sheet interactively in the terminal.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/kakunje/prakriti/internal/intake"
	q "github.com/kakunje/prakriti/internal/questionnaire"
	"golang.org/x/term"
)

// MaxAge bounds the age field.
const MaxAge = 120

var genders = []string{"Female", "Male", "Other"}

var scaleLabels = map[int]string{
	1: "Not at all",
	2: "A little",
	3: "Sometimes",
	4: "Often",
	5: "Very much",
}

var personalityLabels = map[int]string{
	1: "Disagree strongly",
	2: "Disagree moderately",
	3: "Disagree a little",
	4: "Neither agree nor disagree",
	5: "Agree a little",
	6: "Agree moderately",
	7: "Agree strongly",
}

// formState holds the values bound to the form fields.
type formState struct {
	name     string
	age      string
	gender   string
	contact  string
	assessor string

	constitution map[string]*int
	state        map[string]*int
	personality  map[string]*int
}

func newFormState(cat *q.Catalog, initialName string) *formState {
	s := &formState{
		name:         initialName,
		gender:       genders[2],
		constitution: make(map[string]*int, len(cat.Constitution)),
		state:        make(map[string]*int, len(cat.State)),
		personality:  make(map[string]*int, len(cat.Personality)),
	}
	for _, question := range cat.Constitution {
		v := q.ScaleMidpoint
		s.constitution[question.ID] = &v
	}
	for _, question := range cat.State {
		v := q.ScaleMidpoint
		s.state[question.ID] = &v
	}
	for _, it := range cat.Personality {
		v := (q.PersonalityMin + q.PersonalityMax) / 2
		s.personality[it.ID] = &v
	}
	return s
}

// Run asks for patient details and every answer in cat, and returns the
// completed sheet. If initialName is non-empty it pre-populates the name.
func Run(in io.Reader, out io.Writer, cat *q.Catalog, initialName string) (*intake.Sheet, error) {
	state := newFormState(cat, initialName)
	form := buildForm(cat, state).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	return state.sheet()
}

func buildForm(cat *q.Catalog, s *formState) *huh.Form {
	genderOpts := make([]huh.Option[string], 0, len(genders))
	for _, g := range genders {
		genderOpts = append(genderOpts, huh.NewOption(g, g))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Patient name").
				Value(&s.name).
				Validate(validateName),
			huh.NewInput().
				Title("Age").
				Placeholder("34").
				Value(&s.age).
				Validate(validateAge),
			huh.NewSelect[string]().
				Title("Gender").
				Options(genderOpts...).
				Value(&s.gender),
			huh.NewInput().
				Title("Contact").
				Description("Phone or email (optional)").
				Value(&s.contact),
			huh.NewInput().
				Title("Assessor").
				Description("Clinician taking the assessment (optional)").
				Value(&s.assessor),
		).Title("Patient"),
	}

	groups = append(groups, questionGroup("Prakriti: your lifelong nature", cat.Constitution, s.constitution))
	groups = append(groups, questionGroup("Vikriti: how you feel right now", cat.State, s.state))

	fields := make([]huh.Field, 0, len(cat.Personality))
	for _, it := range cat.Personality {
		fields = append(fields, scaleSelect(it.ID, it.Prompt, q.PersonalityMin, q.PersonalityMax, personalityLabels, s.personality[it.ID]))
	}
	groups = append(groups, huh.NewGroup(fields...).Title("Personality: I see myself as..."))

	return huh.NewForm(groups...)
}

func questionGroup(title string, questions []q.Question, values map[string]*int) *huh.Group {
	fields := make([]huh.Field, 0, len(questions))
	for _, question := range questions {
		fields = append(fields, scaleSelect(question.ID, question.Prompt, q.ScaleMin, q.ScaleMax, scaleLabels, values[question.ID]))
	}
	return huh.NewGroup(fields...).Title(title)
}

func scaleSelect(id, prompt string, lo, hi int, labels map[int]string, value *int) *huh.Select[int] {
	return huh.NewSelect[int]().
		Title(fmt.Sprintf("%s. %s", id, prompt)).
		Options(scaleOptions(lo, hi, labels)...).
		Value(value)
}

func scaleOptions(lo, hi int, labels map[int]string) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		label := strconv.Itoa(v)
		if l, ok := labels[v]; ok {
			label = fmt.Sprintf("%d - %s", v, l)
		}
		opts = append(opts, huh.NewOption(label, v))
	}
	return opts
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("patient name is required")
	}
	return nil
}

func validateAge(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxAge {
		return fmt.Errorf("age must be a whole number between 0 and %d", MaxAge)
	}
	return nil
}

func (s *formState) sheet() (*intake.Sheet, error) {
	if err := validateName(s.name); err != nil {
		return nil, err
	}
	if err := validateAge(s.age); err != nil {
		return nil, err
	}
	age, _ := strconv.Atoi(strings.TrimSpace(s.age))

	gender := s.gender
	if gender == "Other" {
		gender = ""
	}
	return &intake.Sheet{
		Patient: intake.Patient{
			Name:    strings.TrimSpace(s.name),
			Age:     age,
			Gender:  gender,
			Contact: strings.TrimSpace(s.contact),
		},
		Assessor:     strings.TrimSpace(s.assessor),
		Constitution: collect(s.constitution),
		State:        collect(s.state),
		Personality:  collect(s.personality),
	}, nil
}

func collect(values map[string]*int) q.Answers {
	out := make(q.Answers, len(values))
	for id, v := range values {
		out[id] = *v
	}
	return out
}
