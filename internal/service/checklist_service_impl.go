package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cmcplan/internal/checklist"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/alexanderramin/cmcplan/internal/export"
)

// Catalog is the template store surface the checklist service needs.
type Catalog interface {
	checklist.TemplateSource
	Modalities() []domain.Modality
	Alias(m domain.Modality) string
	ResolveModality(input string) (domain.Modality, error)
}

type checklistService struct {
	catalog  Catalog
	now      func() time.Time
	observer UseCaseObserver
}

// NewChecklistService wires the checklist use cases. now supplies the export
// date; nil means time.Now.
func NewChecklistService(catalog Catalog, now func() time.Time, observers ...UseCaseObserver) ChecklistService {
	if now == nil {
		now = time.Now
	}
	return &checklistService{
		catalog:  catalog,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *checklistService) Modalities(ctx context.Context) []contract.ModalityInfo {
	mods := s.catalog.Modalities()
	out := make([]contract.ModalityInfo, 0, len(mods))
	for _, m := range mods {
		info := contract.ModalityInfo{Modality: m, Key: s.catalog.Alias(m)}
		if templates, err := s.catalog.TemplatesFor(m); err == nil {
			info.Deliverables = len(templates)
		}
		out = append(out, info)
	}
	return out
}

func (s *checklistService) Checklist(ctx context.Context, req contract.ChecklistRequest) (resp *contract.ChecklistResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"modality":      req.Modality,
		"stage":         req.Stage,
		"required_only": req.ShowOnlyRequired,
	}
	if req.SessionID != "" {
		fields["session_id"] = req.SessionID
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "checklist",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var (
		modality domain.Modality
		stage    domain.Stage
		rows     []domain.ChecklistRow
	)
	modality, stage, rows, err = s.build(req.Modality, req.Stage)
	if err != nil {
		return nil, err
	}

	if err = validateSelection(rows, req.Selection); err != nil {
		return nil, err
	}

	visible := req.Selection.Apply(checklist.Visible(rows, req.ShowOnlyRequired))
	fields["row_count"] = len(visible)

	return &contract.ChecklistResponse{
		Modality: modality,
		Stage:    stage,
		Rows:     visible,
		Counts:   checklist.Tally(visible),
	}, nil
}

func (s *checklistService) Export(ctx context.Context, req contract.ExportRequest) (resp *contract.ExportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"modality":      req.Modality,
		"stage":         req.Stage,
		"required_only": req.ShowOnlyRequired,
		"show_details":  req.ShowDetails,
	}
	if req.SessionID != "" {
		fields["session_id"] = req.SessionID
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "export",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	// Normalize into a fresh slice; the caller's formats stay untouched.
	requested := req.Formats
	if len(requested) == 0 {
		requested = export.Formats()
	}
	formats := make([]export.Format, len(requested))
	for i, f := range requested {
		if formats[i], err = export.ParseFormat(string(f)); err != nil {
			return nil, err
		}
	}

	var (
		modality domain.Modality
		stage    domain.Stage
		rows     []domain.ChecklistRow
	)
	modality, stage, rows, err = s.build(req.Modality, req.Stage)
	if err != nil {
		return nil, err
	}

	if err = validateSelection(rows, req.Selection); err != nil {
		return nil, err
	}

	set := checklist.ExportSet(rows, req.ShowOnlyRequired, req.Selection)
	fields["row_count"] = len(set)

	opts := export.Options{
		Modality:    modality,
		Stage:       stage,
		ShowDetails: req.ShowDetails,
		Date:        s.now(),
	}
	artifacts := make([]export.Artifact, 0, len(formats))
	for _, f := range formats {
		var a export.Artifact
		a, err = export.Render(f, set, opts)
		if err != nil {
			return nil, fmt.Errorf("rendering %s export: %w", f, err)
		}
		artifacts = append(artifacts, a)
	}
	fields["formats"] = len(artifacts)

	return &contract.ExportResponse{
		Modality:  modality,
		Stage:     stage,
		Rows:      set,
		Artifacts: artifacts,
	}, nil
}

// validateSelection rejects toggles for rows the checklist does not have.
// rows must be the full build, so toggles on filtered-out rows still pass.
func validateSelection(rows []domain.ChecklistRow, sel checklist.Selection) error {
	if unknown := sel.UnknownKeys(rows); len(unknown) > 0 {
		return fmt.Errorf("%w: %q", domain.ErrUnknownDeliverable, unknown[0])
	}
	return nil
}

// build resolves boundary input and runs the checklist builder.
func (s *checklistService) build(rawModality, rawStage string) (domain.Modality, domain.Stage, []domain.ChecklistRow, error) {
	modality, err := s.catalog.ResolveModality(rawModality)
	if err != nil {
		return "", "", nil, err
	}
	stage, err := domain.ParseStage(rawStage)
	if err != nil {
		return "", "", nil, err
	}
	rows, err := checklist.Build(s.catalog, modality, stage)
	if err != nil {
		return "", "", nil, err
	}
	return modality, stage, rows, nil
}
