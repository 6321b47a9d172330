package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/cmcplan/internal/export"
	"github.com/alexanderramin/cmcplan/internal/service"
	"github.com/alexanderramin/cmcplan/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := template.DefaultStore()
	require.NoError(t, err)
	svc := service.NewChecklistService(store, func() time.Time { return testTime })
	return NewRouter(NewHandler(svc), nil)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

func do(t *testing.T, h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestLiveness(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestModalities(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/modalities", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[[]ModalityResponse](t, rec)
	assert.Equal(t, []ModalityResponse{
		{Label: "Cell Therapy (Autologous TCR/CAR)", Key: "cell", Deliverables: 13},
		{Label: "Gene Therapy (AAV/LVV)", Key: "gene", Deliverables: 7},
		{Label: "Monoclonal Antibody (mAb)", Key: "mab", Deliverables: 8},
	}, got)
}

func TestStages(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/stages", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[[]StageResponse](t, rec)
	assert.Equal(t, []StageResponse{
		{Label: "Pre-IND / IND-enabling", Slug: "pre-ind"},
		{Label: "Phase 1", Slug: "phase-1"},
		{Label: "Phase 2/3 (Pivotal)", Slug: "phase-2-3"},
		{Label: "BLA / MAA", Slug: "bla-maa"},
	}, got)
}

func TestChecklist(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/checklist?modality=gene&stage=pre-ind", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decode[ChecklistResponse](t, rec)
	assert.Equal(t, "Gene Therapy (AAV/LVV)", got.Modality)
	assert.Equal(t, "Pre-IND / IND-enabling", got.Stage)
	require.Len(t, got.Rows, 7)
	assert.Equal(t, CountsResponse{Required: 3, Recommended: 4}, got.Counts)

	first := got.Rows[0]
	assert.Equal(t, "Analytical/Vector release panel", first.Key)
	assert.Equal(t, "required", first.Relevance)
	assert.True(t, first.Selected)
}

func TestChecklist_RequiredOnly(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/checklist?modality=mab&stage=phase-1&required_only=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[ChecklistResponse](t, rec)
	assert.Len(t, got.Rows, 7)
	assert.Equal(t, CountsResponse{Required: 7}, got.Counts)
}

func TestChecklist_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
		detail string
	}{
		{"unknown modality", "/api/v1/checklist?modality=vaccine&stage=phase-1", "unknown modality"},
		{"missing modality", "/api/v1/checklist?stage=phase-1", "unknown modality"},
		{"unknown stage", "/api/v1/checklist?modality=mab&stage=phase-4", "unknown stage"},
		{"bad bool", "/api/v1/checklist?modality=mab&stage=phase-1&required_only=maybe", "required_only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestRouter(t), http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			got := decode[ErrorResponse](t, rec)
			assert.Equal(t, http.StatusBadRequest, got.Status)
			assert.Equal(t, "Bad Request", got.Title)
			assert.Contains(t, got.Detail, tt.detail)
		})
	}
}

func TestExport_CSV(t *testing.T) {
	body := jsonBody(t, ExportRequest{Modality: "mab", Stage: "phase-1"})
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/export/csv", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		`attachment; filename="CMC_Milestones_Monoclonal Antibody (mAb)_Phase 1_2026-10-19.csv"`,
		rec.Header().Get("Content-Disposition"))

	rows, err := export.ParseCSV(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, rows, 7)
}

func TestExport_MarkdownWithoutDetails(t *testing.T) {
	noDetails := false
	body := jsonBody(t, ExportRequest{Modality: "gene", Stage: "bla-maa", ShowDetails: &noDetails})
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/export/md", body)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/markdown", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "_BLA / MAA_2026-10-19.md")
	assert.Contains(t, rec.Body.String(), "# CMC Milestone Checklist — Gene Therapy (AAV/LVV) — BLA / MAA")
	assert.NotContains(t, rec.Body.String(), "Titer, potency")
}

func TestExport_SelectionAndFallback(t *testing.T) {
	router := newTestRouter(t)

	sel := map[string]bool{"Manufacturing & Quality Systems/PPQ & APV strategy (phase-appropriate)": true}
	rec := do(t, router, http.MethodPost, "/api/v1/export/csv",
		jsonBody(t, ExportRequest{Modality: "mab", Stage: "phase-1", Selection: sel}))
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err := export.ParseCSV(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, rows, 8, "required defaults plus the selected recommended row")

	listRec := do(t, router, http.MethodGet, "/api/v1/checklist?modality=mab&stage=phase-1", nil)
	list := decode[ChecklistResponse](t, listRec)
	none := map[string]bool{}
	for _, r := range list.Rows {
		none[r.Key] = false
	}
	rec = do(t, router, http.MethodPost, "/api/v1/export/csv",
		jsonBody(t, ExportRequest{Modality: "mab", Stage: "phase-1", Selection: none}))
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err = export.ParseCSV(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, rows, 8, "empty selection falls back to every visible row")
}

func TestExport_BadInput(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/export/pdf", jsonBody(t, ExportRequest{Modality: "mab", Stage: "phase-1"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Detail, "unknown export format")

	rec = do(t, router, http.MethodPost, "/api/v1/export/csv", bytes.NewBufferString("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Detail, "invalid JSON body")

	rec = do(t, router, http.MethodPost, "/api/v1/export/csv", jsonBody(t, ExportRequest{Modality: "vaccine", Stage: "phase-1"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownSelectionKey(t *testing.T) {
	router := newTestRouter(t)
	sel := map[string]bool{"Analytical/Nope": true}

	rec := do(t, router, http.MethodPost, "/api/v1/export/csv",
		jsonBody(t, ExportRequest{Modality: "mab", Stage: "phase-1", Selection: sel}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decode[ErrorResponse](t, rec)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Contains(t, got.Detail, "unknown deliverable")
	assert.Contains(t, got.Detail, "Analytical/Nope")
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v2/anything", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
