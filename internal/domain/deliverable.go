package domain

import "fmt"

// PhaseMeta is the relevance and rigor of a deliverable at one stage.
type PhaseMeta struct {
	Relevance Relevance
	Rigor     Rigor
}

// DeliverableTemplate is one authored checklist entry.
type DeliverableTemplate struct {
	Category string
	Item     string
	Detail   string
	PhaseMap map[Stage]PhaseMeta
}

// Phase returns the metadata for stage. A stage missing from the phase map is
// an authoring error and is reported, never defaulted.
func (d DeliverableTemplate) Phase(stage Stage) (PhaseMeta, error) {
	meta, ok := d.PhaseMap[stage]
	if !ok {
		return PhaseMeta{}, fmt.Errorf("%w: %q has no entry for %q", ErrUnknownStage, d.Item, stage)
	}
	return meta, nil
}

// Key is the row identity of the deliverable within its modality.
func (d DeliverableTemplate) Key() string {
	return RowKey(d.Category, d.Item)
}

// RowKey builds the identity used to key user selections.
func RowKey(category, item string) string {
	return category + "/" + item
}
