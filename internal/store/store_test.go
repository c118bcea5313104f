package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a store in a temp dir whose clock advances one minute
// per call.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "prakriti.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return s
}

func TestCreateAndGetPatient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &Patient{Name: "Asha Rao", Age: 34, Gender: "F", Contact: "asha@example.com"}
	require.NoError(t, s.CreatePatient(ctx, p))
	assert.Len(t, p.ID, 36)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.GetPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestCreatePatient_RequiresName(t *testing.T) {
	s := newTestStore(t)
	err := s.CreatePatient(context.Background(), &Patient{Name: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestGetPatient_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetPatient(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListPatients_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		require.NoError(t, s.CreatePatient(ctx, &Patient{Name: name}))
	}

	patients, err := s.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, "Third", patients[0].Name)
	assert.Equal(t, "First", patients[2].Name)
}

func TestListPatients_SubSecondOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 9, 0, 5, 0, time.UTC)
	stamps := []time.Time{base, base.Add(100 * time.Millisecond)}
	s.now = func() time.Time {
		next := stamps[0]
		stamps = stamps[1:]
		return next
	}

	first := &Patient{Name: "On the second"}
	second := &Patient{Name: "A tenth later"}
	require.NoError(t, s.CreatePatient(ctx, first))
	require.NoError(t, s.CreatePatient(ctx, second))

	var stored []string
	rows, err := s.db.QueryContext(ctx, `SELECT created_at FROM patients ORDER BY created_at`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		stored = append(stored, v)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"2026-03-01T09:00:05.000000000Z", "2026-03-01T09:00:05.100000000Z"}, stored)

	list, err := s.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, base.Add(100*time.Millisecond), list[0].CreatedAt)
}

func TestSaveAndGetAssessment_CompressesReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &Patient{Name: "Asha"}
	require.NoError(t, s.CreatePatient(ctx, p))

	report := json.RawMessage(`{"summary":"` + strings.Repeat("steady routine ", 200) + `"}`)
	a := &Assessment{
		PatientID:    p.ID,
		Assessor:     "Dr. K",
		Constitution: q.Vata,
		State:        q.Pitta,
		Report:       report,
	}
	require.NoError(t, s.SaveAssessment(ctx, a))
	require.NotEmpty(t, a.ID)

	var stored []byte
	require.NoError(t, s.db.QueryRow(`SELECT report FROM assessments WHERE id = ?`, a.ID).Scan(&stored))
	assert.Less(t, len(stored), len(report))

	got, err := s.GetAssessment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.PatientID, got.PatientID)
	assert.Equal(t, "Dr. K", got.Assessor)
	assert.Equal(t, q.Vata, got.Constitution)
	assert.Equal(t, q.Pitta, got.State)
	assert.Equal(t, a.CreatedAt, got.CreatedAt)
	assert.JSONEq(t, string(report), string(got.Report))
}

func TestSaveAssessment_UnknownPatient(t *testing.T) {
	s := newTestStore(t)
	err := s.SaveAssessment(context.Background(), &Assessment{
		PatientID:    "nobody",
		Constitution: q.Kapha,
		State:        q.Kapha,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetAssessment_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetAssessment(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListAssessments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	asha := &Patient{Name: "Asha"}
	ravi := &Patient{Name: "Ravi"}
	require.NoError(t, s.CreatePatient(ctx, asha))
	require.NoError(t, s.CreatePatient(ctx, ravi))

	for _, pid := range []string{asha.ID, ravi.ID, asha.ID} {
		require.NoError(t, s.SaveAssessment(ctx, &Assessment{
			PatientID:    pid,
			Constitution: q.Vata,
			State:        q.Kapha,
			Report:       json.RawMessage(`{}`),
		}))
	}

	all, err := s.ListAssessments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, asha.ID, all[0].PatientID)
	assert.Nil(t, all[0].Report, "listings omit the report")

	mine, err := s.ListAssessments(ctx, asha.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[0].CreatedAt.After(mine[1].CreatedAt))

	none, err := s.ListAssessments(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prakriti.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	p := &Patient{Name: "Asha"}
	require.NoError(t, s1.CreatePatient(ctx, p))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
}

func TestOpen_DriverError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) {
		return nil, errors.New("driver unavailable")
	}

	_, err := Open(filepath.Join(t.TempDir(), "prakriti.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "driver unavailable")
}
