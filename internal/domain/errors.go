package domain

import "errors"

var (
	// ErrUnknownModality is returned when a modality is not defined by the
	// loaded template store.
	ErrUnknownModality = errors.New("unknown modality")

	// ErrUnknownStage is returned when a stage is not one of the four stages
	// or is missing from a deliverable's phase map.
	ErrUnknownStage = errors.New("unknown stage")

	// ErrUnknownDeliverable is returned when a selection names a row that the
	// modality does not define.
	ErrUnknownDeliverable = errors.New("unknown deliverable")

	// ErrUnknownFormat is returned for an export format other than csv or md.
	ErrUnknownFormat = errors.New("unknown export format")
)
