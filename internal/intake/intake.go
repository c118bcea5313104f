// Package intake reads and writes answer sheets: a patient record plus the
// raw answers for the three question banks, as YAML or JSON.
package intake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for sheet files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported answer sheet format")

// Patient identifies who answered the sheet.
type Patient struct {
	Name    string `mapstructure:"name" yaml:"name" json:"name"`
	Age     int    `mapstructure:"age" yaml:"age,omitempty" json:"age,omitempty"`
	Gender  string `mapstructure:"gender" yaml:"gender,omitempty" json:"gender,omitempty"`
	Contact string `mapstructure:"contact" yaml:"contact,omitempty" json:"contact,omitempty"`
}

// Sheet is one completed questionnaire.
type Sheet struct {
	Patient      Patient   `mapstructure:"patient" yaml:"patient" json:"patient"`
	Assessor     string    `mapstructure:"assessor" yaml:"assessor,omitempty" json:"assessor,omitempty"`
	Constitution q.Answers `mapstructure:"prakriti" yaml:"prakriti" json:"prakriti"`
	State        q.Answers `mapstructure:"vikriti" yaml:"vikriti" json:"vikriti"`
	Personality  q.Answers `mapstructure:"psychometric" yaml:"psychometric" json:"psychometric"`
}

// InvalidSheetError lists schema violations in a sheet.
type InvalidSheetError struct {
	Problems []string
}

func (e *InvalidSheetError) Error() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("answer sheet has %d problem(s):\n  %s", len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// Load reads a sheet from path. The extension selects the format.
func Load(path string) (*Sheet, error) {
	if err := checkExtension(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answer sheet: %w", err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func checkExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return nil
	default:
		return fmt.Errorf("%w: %q (want .yaml, .yml or .json)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses YAML or JSON sheet bytes, validates them against the sheet
// schema and decodes them. Numeric strings such as "4" are accepted as
// answers.
func Decode(data []byte) (*Sheet, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing answer sheet: %w", err)
	}
	if doc == nil {
		return nil, &InvalidSheetError{Problems: []string{"/: empty document"}}
	}
	if problems := validation.ValidateSheet(doc); len(problems) > 0 {
		return nil, &InvalidSheetError{Problems: problems}
	}

	var s Sheet
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding answer sheet: %w", err)
	}
	s.normalize()
	return &s, nil
}

func (s *Sheet) normalize() {
	s.Patient.Name = strings.TrimSpace(s.Patient.Name)
	if s.Constitution == nil {
		s.Constitution = q.Answers{}
	}
	if s.State == nil {
		s.State = q.Answers{}
	}
	if s.Personality == nil {
		s.Personality = q.Answers{}
	}
}

// Encode writes s as YAML.
func Encode(w io.Writer, s *Sheet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding answer sheet: %w", err)
	}
	return enc.Close()
}

// Save writes s to path as YAML.
func Save(path string, s *Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating answer sheet: %w", err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// UnknownIDs lists answered IDs that no question in cat uses, sorted.
func (s *Sheet) UnknownIDs(cat *q.Catalog) []string {
	known := make(map[string]bool)
	for _, question := range cat.Constitution {
		known[question.ID] = true
	}
	for _, question := range cat.State {
		known[question.ID] = true
	}
	for _, it := range cat.Personality {
		known[it.ID] = true
	}

	var unknown []string
	for _, answers := range []q.Answers{s.Constitution, s.State, s.Personality} {
		for id := range answers {
			if !known[id] {
				unknown = append(unknown, id)
			}
		}
	}
	slices.Sort(unknown)
	return unknown
}
