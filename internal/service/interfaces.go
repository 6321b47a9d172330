package service

import (
	"context"

	"github.com/alexanderramin/cmcplan/internal/contract"
)

type ChecklistService interface {
	Modalities(ctx context.Context) []contract.ModalityInfo
	Checklist(ctx context.Context, req contract.ChecklistRequest) (*contract.ChecklistResponse, error)
	Export(ctx context.Context, req contract.ExportRequest) (*contract.ExportResponse, error)
}
