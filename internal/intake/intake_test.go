package intake

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetYAML = `patient:
  name: "  Asha Rao "
  age: "34"
  gender: F
  contact: asha@example.com
assessor: Dr. K
prakriti:
  P1: 4
  P2: "5"
vikriti:
  V1: 2
psychometric:
  E1: 6
  E6: 2
`

func TestDecode_YAML(t *testing.T) {
	s, err := Decode([]byte(sheetYAML))
	require.NoError(t, err)

	assert.Equal(t, Patient{Name: "Asha Rao", Age: 34, Gender: "F", Contact: "asha@example.com"}, s.Patient)
	assert.Equal(t, "Dr. K", s.Assessor)
	assert.Equal(t, q.Answers{"P1": 4, "P2": 5}, s.Constitution)
	assert.Equal(t, q.Answers{"V1": 2}, s.State)
	assert.Equal(t, q.Answers{"E1": 6, "E6": 2}, s.Personality)
}

func TestDecode_JSONWithMissingBanks(t *testing.T) {
	s, err := Decode([]byte(`{"patient": {"name": "Ravi", "age": 61}, "prakriti": {"P1": 3}}`))
	require.NoError(t, err)
	assert.Equal(t, 61, s.Patient.Age)
	assert.Equal(t, q.Answers{"P1": 3}, s.Constitution)
	assert.NotNil(t, s.State)
	assert.Empty(t, s.State)
	assert.NotNil(t, s.Personality)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing patient", "prakriti: {P1: 3}\n", "/: "},
		{"missing name", "patient: {age: 3}\n", "/patient"},
		{"blank name", "patient: {name: \"   \"}\n", "/patient/name"},
		{"word answer", "patient: {name: A}\nprakriti: {P1: four}\n", "/prakriti/P1"},
		{"negative answer", "patient: {name: A}\nvikriti: {V1: -1}\n", "/vikriti/V1"},
		{"empty document", "", "empty document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			var invalid *InvalidSheetError
			require.ErrorAs(t, err, &invalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecode_MalformedYAML(t *testing.T) {
	_, err := Decode([]byte("patient: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing answer sheet")
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.csv")
	require.NoError(t, os.WriteFile(path, []byte("P1,3"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	in := &Sheet{
		Patient:      Patient{Name: "Asha", Age: 34},
		Constitution: q.Answers{"P1": 4, "P10": 2, "P2": 5},
		State:        q.Answers{"V3": 1},
		Personality:  q.Answers{},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncode_NaturalKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Sheet{
		Patient:      Patient{Name: "Asha"},
		Constitution: q.Answers{"P10": 2, "P2": 5, "P1": 4},
	}))
	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("P2:")), bytes.Index([]byte(out), []byte("P10:")))
}

func TestUnknownIDs(t *testing.T) {
	s := &Sheet{
		Constitution: q.Answers{"P1": 3, "P99": 3},
		State:        q.Answers{"X1": 1},
		Personality:  q.Answers{"E1": 4},
	}
	assert.Equal(t, []string{"P99", "X1"}, s.UnknownIDs(q.Default()))
}
