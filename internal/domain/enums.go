package domain

import (
	"fmt"
	"strings"
)

type Relevance string

const (
	RelevanceRequired    Relevance = "required"
	RelevanceRecommended Relevance = "recommended"
	RelevanceDefer       Relevance = "defer"
)

// ValidRelevances is the canonical set of accepted relevance strings.
var ValidRelevances = map[Relevance]bool{
	RelevanceRequired: true, RelevanceRecommended: true, RelevanceDefer: true,
}

// Rigor is the expected maturity of a deliverable at a stage. Datasets may
// use labels beyond the three below.
type Rigor string

const (
	RigorExploratory Rigor = "exploratory"
	RigorQualified   Rigor = "qualified"
	RigorValidated   Rigor = "validated"
)

// Modality is the display label of a therapeutic modality. The valid set is
// whatever the loaded template store defines.
type Modality string

// Stage is a development stage. The value is the display label and is used
// verbatim in exports and file names.
type Stage string

const (
	StagePreIND  Stage = "Pre-IND / IND-enabling"
	StagePhase1  Stage = "Phase 1"
	StagePhase23 Stage = "Phase 2/3 (Pivotal)"
	StageBLA     Stage = "BLA / MAA"
)

// stageSlugs holds the short keys accepted at the CLI and HTTP boundary and
// used as phase keys in dataset files.
var stageSlugs = map[Stage]string{
	StagePreIND:  "pre-ind",
	StagePhase1:  "phase-1",
	StagePhase23: "phase-2-3",
	StageBLA:     "bla-maa",
}

// Stages returns every stage in development order.
func Stages() []Stage {
	return []Stage{StagePreIND, StagePhase1, StagePhase23, StageBLA}
}

// Slug returns the short key for s, or "" for an unknown stage.
func (s Stage) Slug() string {
	return stageSlugs[s]
}

// Valid reports whether s is one of the four stages.
func (s Stage) Valid() bool {
	_, ok := stageSlugs[s]
	return ok
}

// ParseStage accepts a stage label (case-insensitive) or its slug.
func ParseStage(input string) (Stage, error) {
	in := strings.TrimSpace(input)
	for _, s := range Stages() {
		if strings.EqualFold(in, string(s)) || strings.EqualFold(in, s.Slug()) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, input)
}
