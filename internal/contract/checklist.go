package contract

import (
	"github.com/alexanderramin/cmcplan/internal/checklist"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/alexanderramin/cmcplan/internal/export"
)

// ModalityInfo describes one modality of the loaded template store.
type ModalityInfo struct {
	Modality     domain.Modality
	Key          string
	Deliverables int
}

// ChecklistRequest carries raw boundary input; the service resolves and
// validates Modality and Stage before building.
type ChecklistRequest struct {
	SessionID        string
	Modality         string
	Stage            string
	ShowOnlyRequired bool
	Selection        checklist.Selection
}

func NewChecklistRequest(modality, stage string) ChecklistRequest {
	return ChecklistRequest{
		Modality: modality,
		Stage:    stage,
	}
}

// ChecklistResponse holds the rows offered to the user, with Selected
// reflecting the request's selection, and counts over those rows.
type ChecklistResponse struct {
	Modality domain.Modality
	Stage    domain.Stage
	Rows     []domain.ChecklistRow
	Counts   domain.Counts
}

type ExportRequest struct {
	SessionID        string
	Modality         string
	Stage            string
	ShowOnlyRequired bool
	ShowDetails      bool
	Selection        checklist.Selection
	Formats          []export.Format
}

// NewExportRequest defaults to both formats with details shown.
func NewExportRequest(modality, stage string) ExportRequest {
	return ExportRequest{
		Modality:    modality,
		Stage:       stage,
		ShowDetails: true,
		Formats:     export.Formats(),
	}
}

type ExportResponse struct {
	Modality  domain.Modality
	Stage     domain.Stage
	Rows      []domain.ChecklistRow
	Artifacts []export.Artifact
}
