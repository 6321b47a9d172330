package httpapi

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/cmcplan/internal/checklist"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/alexanderramin/cmcplan/internal/export"
	"github.com/alexanderramin/cmcplan/internal/service"
)

// maxJSONBodyBytes caps export request bodies.
const maxJSONBodyBytes = 1 << 20

// Handler serves the checklist API on top of the service layer.
type Handler struct {
	svc service.ChecklistService
}

func NewHandler(svc service.ChecklistService) *Handler {
	return &Handler{svc: svc}
}

// Liveness always reports ok while the process serves requests.
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Modalities(w http.ResponseWriter, r *http.Request) {
	mods := h.svc.Modalities(r.Context())
	out := make([]ModalityResponse, 0, len(mods))
	for _, m := range mods {
		out = append(out, ModalityResponse{Label: string(m.Modality), Key: m.Key, Deliverables: m.Deliverables})
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) Stages(w http.ResponseWriter, r *http.Request) {
	stages := domain.Stages()
	out := make([]StageResponse, 0, len(stages))
	for _, s := range stages {
		out = append(out, StageResponse{Label: string(s), Slug: s.Slug()})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// Checklist serves GET /api/v1/checklist?modality=&stage=&required_only=.
func (h *Handler) Checklist(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := contract.NewChecklistRequest(q.Get("modality"), q.Get("stage"))
	if raw := q.Get("required_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: required_only must be a boolean, got %q", errBadRequest, raw))
			return
		}
		req.ShowOnlyRequired = v
	}

	resp, err := h.svc.Checklist(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toChecklistResponse(resp))
}

// Export serves POST /api/v1/export/{format} and streams back one artifact
// as an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body ExportRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err))
		return
	}

	req := contract.NewExportRequest(body.Modality, body.Stage)
	req.ShowOnlyRequired = body.RequiredOnly
	if body.ShowDetails != nil {
		req.ShowDetails = *body.ShowDetails
	}
	if body.Selection != nil {
		req.Selection = checklist.Selection(body.Selection)
	}
	req.Formats = []export.Format{format}

	resp, err := h.svc.Export(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	artifact := resp.Artifacts[0]
	w.Header().Set("Content-Type", artifact.MIMEType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": artifact.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}
