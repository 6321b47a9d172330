package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/alexanderramin/cmcplan/internal/logging"
)

// ModalityResponse is one entry of GET /api/v1/modalities.
type ModalityResponse struct {
	Label        string `json:"label"`
	Key          string `json:"key"`
	Deliverables int    `json:"deliverables"`
}

// StageResponse is one entry of GET /api/v1/stages.
type StageResponse struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// RowResponse is a checklist row as served over HTTP.
type RowResponse struct {
	Key         string `json:"key"`
	Category    string `json:"category"`
	Deliverable string `json:"deliverable"`
	Details     string `json:"details"`
	Relevance   string `json:"relevance"`
	Rigor       string `json:"rigor"`
	Selected    bool   `json:"selected"`
}

// CountsResponse mirrors domain.Counts.
type CountsResponse struct {
	Required    int `json:"required"`
	Recommended int `json:"recommended"`
	Defer       int `json:"defer"`
}

// ChecklistResponse is the body of GET /api/v1/checklist.
type ChecklistResponse struct {
	Modality string         `json:"modality"`
	Stage    string         `json:"stage"`
	Rows     []RowResponse  `json:"rows"`
	Counts   CountsResponse `json:"counts"`
}

// ExportRequest is the body of POST /api/v1/export/{format}. ShowDetails
// defaults to true when omitted.
type ExportRequest struct {
	Modality     string          `json:"modality"`
	Stage        string          `json:"stage"`
	RequiredOnly bool            `json:"required_only"`
	ShowDetails  *bool           `json:"show_details,omitempty"`
	Selection    map[string]bool `json:"selection,omitempty"`
}

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func toChecklistResponse(resp *contract.ChecklistResponse) ChecklistResponse {
	rows := make([]RowResponse, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		rows = append(rows, RowResponse{
			Key:         r.Key(),
			Category:    r.Category,
			Deliverable: r.Deliverable,
			Details:     r.Details,
			Relevance:   string(r.Relevance),
			Rigor:       string(r.Rigor),
			Selected:    r.Selected,
		})
	}
	return ChecklistResponse{
		Modality: string(resp.Modality),
		Stage:    string(resp.Stage),
		Rows:     rows,
		Counts: CountsResponse{
			Required:    resp.Counts.Required,
			Recommended: resp.Counts.Recommended,
			Defer:       resp.Counts.Defer,
		},
	}
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownModality),
		errors.Is(err, domain.ErrUnknownStage),
		errors.Is(err, domain.ErrUnknownFormat),
		errors.Is(err, domain.ErrUnknownDeliverable),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

// writeError answers with an error body. Server errors are logged through the
// request logger and their detail is withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed", slog.Any("error", err))
		detail = ""
	}
	writeJSON(w, r, status, ErrorResponse{
		Status: status,
		Title:  http.StatusText(status),
		Detail: detail,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response", slog.Any("error", err))
	}
}
