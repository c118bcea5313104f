// Package store persists patients and their assessment reports in SQLite.
package store

//go:generate go tool mockgen -destination=mock_store/mock_store.go -package=mock_store github.com/kakunje/prakriti/internal/store Repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an ID does not match any stored record.
var ErrNotFound = errors.New("not found")

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Patient is a stored patient record.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Assessment is a stored evaluation. Report holds the full report JSON; the
// dominant categories are kept alongside it for listings.
type Assessment struct {
	ID           string          `json:"id"`
	PatientID    string          `json:"patient_id"`
	Assessor     string          `json:"assessor,omitempty"`
	Constitution q.Category      `json:"constitution"`
	State        q.Category      `json:"state"`
	CreatedAt    time.Time       `json:"created_at"`
	Report       json.RawMessage `json:"report,omitempty"`
}

// Repository provides access to stored patients and assessments.
type Repository interface {
	// CreatePatient stores p, assigning its ID and CreatedAt when unset.
	CreatePatient(ctx context.Context, p *Patient) error
	// GetPatient returns ErrNotFound for unknown IDs.
	GetPatient(ctx context.Context, id string) (*Patient, error)
	// ListPatients returns every patient, newest first.
	ListPatients(ctx context.Context) ([]Patient, error)
	// SaveAssessment stores a, assigning its ID and CreatedAt when unset.
	SaveAssessment(ctx context.Context, a *Assessment) error
	// GetAssessment returns ErrNotFound for unknown IDs.
	GetAssessment(ctx context.Context, id string) (*Assessment, error)
	// ListAssessments returns assessments without their report, newest
	// first. An empty patientID lists all of them.
	ListAssessments(ctx context.Context, patientID string) ([]Assessment, error)
}

// Store is the SQLite-backed Repository.
type Store struct {
	db  *sql.DB
	now func() time.Time

	enc *zstd.Encoder
	dec *zstd.Decoder
}

var _ Repository = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: zstd decoder: %w", err)
	}

	s := &Store{db: db, now: time.Now, enc: enc, dec: dec}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close releases the database and codecs.
func (s *Store) Close() error {
	s.dec.Close()
	if err := s.enc.Close(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS patients (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			age        INTEGER NOT NULL DEFAULT 0,
			gender     TEXT NOT NULL DEFAULT '',
			contact    TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS assessments (
			id           TEXT PRIMARY KEY,
			patient_id   TEXT NOT NULL REFERENCES patients(id),
			assessor     TEXT NOT NULL DEFAULT '',
			constitution TEXT NOT NULL,
			state        TEXT NOT NULL,
			report       BLOB,
			created_at   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_assessments_patient ON assessments(patient_id, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) CreatePatient(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("store: patient name is required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO patients (id, name, age, gender, contact, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Age, p.Gender, p.Contact, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("store: insert patient: %w", err)
	}
	return nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*Patient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, age, gender, contact, created_at FROM patients WHERE id = ?`, id)
	p, err := scanPatient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("patient %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get patient: %w", err)
	}
	return p, nil
}

func (s *Store) ListPatients(ctx context.Context) ([]Patient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, age, gender, contact, created_at FROM patients ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list patients: %w", err)
	}
	defer rows.Close()

	var out []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan patient: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) SaveAssessment(ctx context.Context, a *Assessment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	var payload []byte
	if len(a.Report) > 0 {
		payload = s.enc.EncodeAll(a.Report, nil)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, patient_id, assessor, constitution, state, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PatientID, a.Assessor, string(a.Constitution), string(a.State), payload, formatTime(a.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return fmt.Errorf("patient %q: %w", a.PatientID, ErrNotFound)
		}
		return fmt.Errorf("store: insert assessment: %w", err)
	}
	return nil
}

func (s *Store) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, patient_id, assessor, constitution, state, created_at, report FROM assessments WHERE id = ?`, id)

	var (
		a       Assessment
		created string
		payload []byte
		cons    string
		state   string
	)
	err := row.Scan(&a.ID, &a.PatientID, &a.Assessor, &cons, &state, &created, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assessment %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get assessment: %w", err)
	}
	a.Constitution, a.State = q.Category(cons), q.Category(state)
	if a.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		report, err := s.dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("store: decompress report %q: %w", id, err)
		}
		a.Report = report
	}
	return &a, nil
}

func (s *Store) ListAssessments(ctx context.Context, patientID string) ([]Assessment, error) {
	query := `SELECT id, patient_id, assessor, constitution, state, created_at FROM assessments`
	var args []any
	if patientID != "" {
		query += ` WHERE patient_id = ?`
		args = append(args, patientID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var (
			a       Assessment
			created string
			cons    string
			state   string
		)
		if err := rows.Scan(&a.ID, &a.PatientID, &a.Assessor, &cons, &state, &created); err != nil {
			return nil, fmt.Errorf("store: scan assessment: %w", err)
		}
		a.Constitution, a.State = q.Category(cons), q.Category(state)
		if a.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPatient(row scanner) (*Patient, error) {
	var (
		p       Patient
		created string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return &p, nil
}

// timeLayout keeps a fixed-width fraction so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: bad timestamp %q: %w", s, err)
	}
	return t, nil
}
