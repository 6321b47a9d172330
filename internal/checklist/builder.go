package checklist

import (
	"fmt"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

// TemplateSource is the read side of the template store used by Build.
type TemplateSource interface {
	TemplatesFor(m domain.Modality) ([]domain.DeliverableTemplate, error)
	MetadataFor(t domain.DeliverableTemplate, stage domain.Stage) (domain.PhaseMeta, error)
}

// Build projects the deliverables of modality onto stage and returns the rows
// in canonical order. A freshly built row is selected iff it is required.
// A modality with no deliverables yields an empty, non-nil slice.
func Build(src TemplateSource, modality domain.Modality, stage domain.Stage) ([]domain.ChecklistRow, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStage, stage)
	}

	templates, err := src.TemplatesFor(modality)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ChecklistRow, 0, len(templates))
	for _, t := range templates {
		meta, err := src.MetadataFor(t, stage)
		if err != nil {
			return nil, fmt.Errorf("building %s checklist: %w", modality, err)
		}
		rows = append(rows, domain.ChecklistRow{
			Category:    t.Category,
			Deliverable: t.Item,
			Details:     t.Detail,
			Relevance:   meta.Relevance,
			Rigor:       meta.Rigor,
			Selected:    meta.Relevance == domain.RelevanceRequired,
		})
	}

	CanonicalSort(rows)
	return rows, nil
}
