// Package webapi implements the JSON HTTP API: evaluating answer sheets,
// browsing stored patients and assessments and listing the questions.
package webapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kakunje/prakriti/internal/assessment"
	"github.com/kakunje/prakriti/internal/intake"
	"github.com/kakunje/prakriti/internal/metrics"
	"github.com/kakunje/prakriti/internal/scoring"
	"github.com/kakunje/prakriti/internal/store"
	"go.uber.org/zap"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// MaxSheetBytes bounds the size of a posted answer sheet.
const MaxSheetBytes = 1 << 20

// Options configures the handlers.
type Options struct {
	// Strict is the default for evaluations that do not pass ?strict=.
	Strict  bool
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Now is the clock used to stamp reports. Nil means time.Now.
	Now func() time.Time
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	repo    store.Repository
	engine  *assessment.Engine
	strict  bool
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewHandlers creates handlers over repo and engine.
func NewHandlers(repo store.Repository, engine *assessment.Engine, opts Options) *Handlers {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handlers{
		repo:    repo,
		engine:  engine,
		strict:  opts.Strict,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		now:     opts.Now,
	}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleQuestions returns the question banks the engine scores against.
func (h *Handlers) HandleQuestions(w http.ResponseWriter, _ *http.Request) {
	cat := h.engine.Rules().Questions
	writeJSON(w, http.StatusOK, QuestionsResponse{
		Prakriti:     cat.Constitution,
		Vikriti:      cat.State,
		Psychometric: cat.Personality,
	})
}

// HandleCreateAssessment evaluates a posted answer sheet, stores the patient
// and report, and returns the report. ?patient_id= attaches the assessment
// to an existing patient; ?strict= overrides the strict default.
func (h *Handlers) HandleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	strict := h.strict
	if v := r.URL.Query().Get("strict"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "strict must be a boolean")
			return
		}
		strict = b
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxSheetBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "answer sheet too large")
		return
	}
	sheet, err := intake.Decode(body)
	if err != nil {
		h.observeFailure(metrics.OutcomeInvalid, start)
		var invalid *intake.InvalidSheetError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:    "invalid answer sheet",
				Code:     http.StatusBadRequest,
				Problems: invalid.Problems,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	patient, err := h.resolvePatient(r, sheet)
	if err != nil {
		h.observeFailure(metrics.OutcomeError, start)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "patient not found")
		} else {
			h.logger.Error("resolving patient", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	report, err := h.engine.Evaluate(ctx, sheet, assessment.Options{Strict: strict, Now: h.now()})
	if err != nil {
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			h.observeFailure(metrics.OutcomeInvalid, start)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.observeFailure(metrics.OutcomeError, start)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if patient.ID == "" {
		if err := h.repo.CreatePatient(ctx, patient); err != nil {
			h.observeFailure(metrics.OutcomeError, start)
			h.logger.Error("creating patient", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	report.ID = uuid.NewString()
	report.PatientID = patient.ID

	payload, err := json.Marshal(report)
	if err != nil {
		h.observeFailure(metrics.OutcomeError, start)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.repo.SaveAssessment(ctx, &store.Assessment{
		ID:           report.ID,
		PatientID:    patient.ID,
		Assessor:     report.Assessor,
		Constitution: report.DominantConstitution,
		State:        report.DominantState,
		CreatedAt:    report.CreatedAt,
		Report:       payload,
	}); err != nil {
		h.observeFailure(metrics.OutcomeError, start)
		h.logger.Error("saving assessment", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveReport(report, time.Since(start))
	}
	h.logger.Info("assessment created",
		zap.String("id", report.ID),
		zap.String("patient_id", patient.ID),
		zap.Strings("fallbacks", report.Fallbacks.Kinds()))

	w.Header().Set("Location", "/api/assessments/"+report.ID)
	writeRawJSON(w, http.StatusCreated, payload)
}

func (h *Handlers) resolvePatient(r *http.Request, sheet *intake.Sheet) (*store.Patient, error) {
	if id := r.URL.Query().Get("patient_id"); id != "" {
		return h.repo.GetPatient(r.Context(), id)
	}
	return &store.Patient{
		Name:    sheet.Patient.Name,
		Age:     sheet.Patient.Age,
		Gender:  sheet.Patient.Gender,
		Contact: sheet.Patient.Contact,
	}, nil
}

// HandleAssessment returns a stored report.
func (h *Handlers) HandleAssessment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "assessment id is required")
		return
	}

	a, err := h.repo.GetAssessment(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, err, "assessment not found")
		return
	}
	if len(a.Report) == 0 {
		writeJSON(w, http.StatusOK, toSummary(*a))
		return
	}
	writeRawJSON(w, http.StatusOK, a.Report)
}

// HandleAssessments lists every stored assessment, newest first.
func (h *Handlers) HandleAssessments(w http.ResponseWriter, r *http.Request) {
	h.listAssessments(w, r, "")
}

// HandlePatients lists stored patients, newest first.
func (h *Handlers) HandlePatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.repo.ListPatients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if patients == nil {
		patients = []store.Patient{}
	}
	writeJSON(w, http.StatusOK, patients)
}

// HandlePatient returns one patient.
func (h *Handlers) HandlePatient(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.GetPatient(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err, "patient not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandlePatientAssessments lists one patient's assessments, newest first.
func (h *Handlers) HandlePatientAssessments(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.repo.GetPatient(r.Context(), id); err != nil {
		h.writeRepoError(w, err, "patient not found")
		return
	}
	h.listAssessments(w, r, id)
}

func (h *Handlers) listAssessments(w http.ResponseWriter, r *http.Request, patientID string) {
	list, err := h.repo.ListAssessments(r.Context(), patientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]AssessmentSummary, 0, len(list))
	for _, a := range list {
		out = append(out, toSummary(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) writeRepoError(w http.ResponseWriter, err error, notFound string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFound)
		return
	}
	h.logger.Error("repository error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handlers) observeFailure(outcome string, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveFailure(outcome, time.Since(start))
	}
}

func toSummary(a store.Assessment) AssessmentSummary {
	return AssessmentSummary{
		ID:           a.ID,
		PatientID:    a.PatientID,
		Assessor:     a.Assessor,
		Constitution: a.Constitution,
		State:        a.State,
		Timestamp:    a.CreatedAt,
	}
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/questions", h.HandleQuestions)
	mux.HandleFunc("POST /api/assessments", h.HandleCreateAssessment)
	mux.HandleFunc("GET /api/assessments", h.HandleAssessments)
	mux.HandleFunc("GET /api/assessments/{id}", h.HandleAssessment)
	mux.HandleFunc("GET /api/patients", h.HandlePatients)
	mux.HandleFunc("GET /api/patients/{id}", h.HandlePatient)
	mux.HandleFunc("GET /api/patients/{id}/assessments", h.HandlePatientAssessments)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
