package contract

import (
	"github.com/alexanderramin/cmcplan/internal/checklist"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/alexanderramin/cmcplan/internal/export"
	"github.com/google/uuid"
)

// Session is the per-user UI state of one checklist run. It is owned by the
// surface driving it and passed explicitly into every service call.
type Session struct {
	ID               string
	Modality         domain.Modality
	Stage            domain.Stage
	ShowOnlyRequired bool
	ShowDetails      bool
	Selection        checklist.Selection
}

// NewSession starts a session with details shown and no toggles.
func NewSession(m domain.Modality, s domain.Stage) *Session {
	return &Session{
		ID:          uuid.New().String(),
		Modality:    m,
		Stage:       s,
		ShowDetails: true,
		Selection:   checklist.Selection{},
	}
}

// SetModality switches modality and discards toggles, since rows are rebuilt.
func (s *Session) SetModality(m domain.Modality) {
	if s.Modality == m {
		return
	}
	s.Modality = m
	s.Selection = checklist.Selection{}
}

// SetStage switches stage and discards toggles.
func (s *Session) SetStage(st domain.Stage) {
	if s.Stage == st {
		return
	}
	s.Stage = st
	s.Selection = checklist.Selection{}
}

func (s *Session) ChecklistRequest() ChecklistRequest {
	return ChecklistRequest{
		SessionID:        s.ID,
		Modality:         string(s.Modality),
		Stage:            string(s.Stage),
		ShowOnlyRequired: s.ShowOnlyRequired,
		Selection:        s.Selection,
	}
}

// ExportRequest builds an export of the session; no formats means all.
func (s *Session) ExportRequest(formats ...export.Format) ExportRequest {
	if len(formats) == 0 {
		formats = export.Formats()
	}
	return ExportRequest{
		SessionID:        s.ID,
		Modality:         string(s.Modality),
		Stage:            string(s.Stage),
		ShowOnlyRequired: s.ShowOnlyRequired,
		ShowDetails:      s.ShowDetails,
		Selection:        s.Selection,
		Formats:          formats,
	}
}
