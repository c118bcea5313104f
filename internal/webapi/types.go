package webapi

import (
	"time"

	q "github.com/kakunje/prakriti/internal/questionnaire"
)

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Code     int      `json:"code"`
	Problems []string `json:"problems,omitempty"`
}

// AssessmentSummary is one row of an assessment listing.
type AssessmentSummary struct {
	ID           string     `json:"id"`
	PatientID    string     `json:"patientId"`
	Assessor     string     `json:"assessor,omitempty"`
	Constitution q.Category `json:"prakriti"`
	State        q.Category `json:"vikriti"`
	Timestamp    time.Time  `json:"timestamp"`
}

// QuestionsResponse lists the question banks in use.
type QuestionsResponse struct {
	Prakriti     []q.Question `json:"prakriti"`
	Vikriti      []q.Question `json:"vikriti"`
	Psychometric []q.Item     `json:"psychometric"`
}
