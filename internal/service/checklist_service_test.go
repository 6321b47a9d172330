package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/cmcplan/internal/checklist"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/alexanderramin/cmcplan/internal/export"
	"github.com/alexanderramin/cmcplan/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver captures use-case events for assertions.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, observers ...UseCaseObserver) ChecklistService {
	t.Helper()
	store, err := template.DefaultStore()
	require.NoError(t, err)
	return NewChecklistService(store, func() time.Time { return fixedNow }, observers...)
}

func TestChecklistService_Modalities(t *testing.T) {
	svc := newTestService(t)

	mods := svc.Modalities(context.Background())
	require.Len(t, mods, 3)
	assert.Equal(t, contract.ModalityInfo{Modality: "Cell Therapy (Autologous TCR/CAR)", Key: "cell", Deliverables: 13}, mods[0])
	assert.Equal(t, contract.ModalityInfo{Modality: "Gene Therapy (AAV/LVV)", Key: "gene", Deliverables: 7}, mods[1])
	assert.Equal(t, contract.ModalityInfo{Modality: "Monoclonal Antibody (mAb)", Key: "mab", Deliverables: 8}, mods[2])
}

func TestChecklistService_Checklist_ResolvesAliases(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Checklist(context.Background(), contract.NewChecklistRequest("gene", "pre-ind"))
	require.NoError(t, err)
	assert.Equal(t, domain.Modality("Gene Therapy (AAV/LVV)"), resp.Modality)
	assert.Equal(t, domain.StagePreIND, resp.Stage)
	assert.Len(t, resp.Rows, 7)
	assert.Equal(t, domain.Counts{Required: 3, Recommended: 4}, resp.Counts)
}

func TestChecklistService_Checklist_RequiredOnlyCellBLA(t *testing.T) {
	svc := newTestService(t)

	req := contract.NewChecklistRequest("Cell Therapy (Autologous TCR/CAR)", "BLA / MAA")
	req.ShowOnlyRequired = true
	resp, err := svc.Checklist(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, resp.Rows, 13)
	assert.Equal(t, domain.Counts{Required: 13}, resp.Counts)
}

func TestChecklistService_Checklist_CountsFollowFilter(t *testing.T) {
	svc := newTestService(t)

	req := contract.NewChecklistRequest("mab", "phase-1")
	resp, err := svc.Checklist(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{Required: 7, Recommended: 1}, resp.Counts)

	req.ShowOnlyRequired = true
	resp, err = svc.Checklist(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{Required: 7}, resp.Counts)
}

func TestChecklistService_Checklist_AppliesSelection(t *testing.T) {
	svc := newTestService(t)

	req := contract.NewChecklistRequest("mab", "phase-1")
	req.Selection = checklist.Selection{"Manufacturing & Quality Systems/PPQ & APV strategy (phase-appropriate)": true}
	resp, err := svc.Checklist(context.Background(), req)
	require.NoError(t, err)

	last := resp.Rows[len(resp.Rows)-1]
	assert.Equal(t, domain.RelevanceRecommended, last.Relevance)
	assert.True(t, last.Selected)
}

func TestChecklistService_Checklist_RejectsBadInput(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Checklist(context.Background(), contract.NewChecklistRequest("vaccine", "phase-1"))
	assert.ErrorIs(t, err, domain.ErrUnknownModality)

	_, err = svc.Checklist(context.Background(), contract.NewChecklistRequest("mab", "phase-4"))
	assert.ErrorIs(t, err, domain.ErrUnknownStage)
}

func TestChecklistService_Export_BothArtifacts(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Export(context.Background(), contract.NewExportRequest("mab", "phase-1"))
	require.NoError(t, err)
	require.Len(t, resp.Artifacts, 2)

	csvArt, mdArt := resp.Artifacts[0], resp.Artifacts[1]
	assert.Equal(t, "CMC_Milestones_Monoclonal Antibody (mAb)_Phase 1_2026-10-19.csv", csvArt.FileName)
	assert.Equal(t, "text/csv", csvArt.MIMEType)
	assert.Equal(t, "CMC_Milestones_Monoclonal Antibody (mAb)_Phase 1_2026-10-19.md", mdArt.FileName)
	assert.Equal(t, "text/markdown", mdArt.MIMEType)

	// Default selection exports the seven required rows.
	assert.Len(t, resp.Rows, 7)
	parsed, err := export.ParseCSV(csvArt.Data)
	require.NoError(t, err)
	assert.Len(t, parsed, 7)
}

func TestChecklistService_Export_FallbackWhenAllUnchecked(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	list, err := svc.Checklist(ctx, contract.NewChecklistRequest("Monoclonal Antibody (mAb)", "Phase 1"))
	require.NoError(t, err)

	req := contract.NewExportRequest("Monoclonal Antibody (mAb)", "Phase 1")
	req.Selection = checklist.Selection{}
	for _, r := range list.Rows {
		req.Selection[r.Key()] = false
	}

	resp, err := svc.Export(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Rows, len(list.Rows))
	for i := range list.Rows {
		assert.Equal(t, list.Rows[i].Key(), resp.Rows[i].Key())
	}
}

func TestChecklistService_Export_SingleFormat(t *testing.T) {
	svc := newTestService(t)

	req := contract.NewExportRequest("gene", "bla-maa")
	req.Formats = []export.Format{export.FormatMarkdown}
	req.ShowDetails = false

	resp, err := svc.Export(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Artifacts, 1)
	assert.Equal(t, export.FormatMarkdown, resp.Artifacts[0].Format)
	assert.NotContains(t, string(resp.Artifacts[0].Data), "Titer, potency")
	assert.Contains(t, string(resp.Artifacts[0].Data), "# CMC Milestone Checklist — Gene Therapy (AAV/LVV) — BLA / MAA")
}

func TestChecklistService_Export_UnknownFormat(t *testing.T) {
	svc := newTestService(t)

	req := contract.NewExportRequest("gene", "bla-maa")
	req.Formats = []export.Format{"pdf"}
	_, err := svc.Export(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestChecklistService_Export_NormalizesFormatSpelling(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		raw  export.Format
		want export.Format
		ext  string
	}{
		{"CSV", export.FormatCSV, ".csv"},
		{"markdown", export.FormatMarkdown, ".md"},
		{" Md ", export.FormatMarkdown, ".md"},
	}
	for _, tt := range tests {
		t.Run(string(tt.raw), func(t *testing.T) {
			req := contract.NewExportRequest("mab", "phase-1")
			req.Formats = []export.Format{tt.raw}

			resp, err := svc.Export(context.Background(), req)
			require.NoError(t, err)
			require.Len(t, resp.Artifacts, 1)
			assert.Equal(t, tt.want, resp.Artifacts[0].Format)
			assert.True(t, strings.HasSuffix(resp.Artifacts[0].FileName, tt.ext), resp.Artifacts[0].FileName)
			assert.Equal(t, []export.Format{tt.raw}, req.Formats, "caller slice is not rewritten")
		})
	}
}

func TestChecklistService_RejectsUnknownSelectionKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sel := checklist.Selection{"Analytical/Nope": true}

	req := contract.NewChecklistRequest("mab", "phase-1")
	req.Selection = sel
	_, err := svc.Checklist(ctx, req)
	require.ErrorIs(t, err, domain.ErrUnknownDeliverable)
	assert.Contains(t, err.Error(), "Analytical/Nope")

	exportReq := contract.NewExportRequest("mab", "phase-1")
	exportReq.Selection = sel
	_, err = svc.Export(ctx, exportReq)
	assert.ErrorIs(t, err, domain.ErrUnknownDeliverable)
}

func TestChecklistService_SelectionOnFilteredRowIsKnown(t *testing.T) {
	svc := newTestService(t)

	req := contract.NewChecklistRequest("mab", "phase-1")
	req.ShowOnlyRequired = true
	req.Selection = checklist.Selection{"Manufacturing & Quality Systems/PPQ & APV strategy (phase-appropriate)": true}
	resp, err := svc.Checklist(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 7)
}

func TestChecklistService_Export_DateRecomputedPerCall(t *testing.T) {
	store, err := template.DefaultStore()
	require.NoError(t, err)

	day := fixedNow
	svc := NewChecklistService(store, func() time.Time { return day })

	first, err := svc.Export(context.Background(), contract.NewExportRequest("mab", "phase-1"))
	require.NoError(t, err)
	day = day.AddDate(0, 0, 1)
	second, err := svc.Export(context.Background(), contract.NewExportRequest("mab", "phase-1"))
	require.NoError(t, err)

	assert.Contains(t, first.Artifacts[0].FileName, "2026-10-19")
	assert.Contains(t, second.Artifacts[0].FileName, "2026-10-20")
}

func TestChecklistService_ObservesUseCases(t *testing.T) {
	rec := &recordingObserver{}
	svc := newTestService(t, nil, rec)
	ctx := context.Background()

	req := contract.NewChecklistRequest("mab", "phase-1")
	req.SessionID = "sess-1"
	_, err := svc.Checklist(ctx, req)
	require.NoError(t, err)

	_, err = svc.Export(ctx, contract.NewExportRequest("vaccine", "phase-1"))
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	assert.Equal(t, "checklist", rec.events[0].Name)
	assert.True(t, rec.events[0].Success)
	assert.Equal(t, "sess-1", rec.events[0].Fields["session_id"])
	assert.Equal(t, 8, rec.events[0].Fields["row_count"])

	assert.Equal(t, "export", rec.events[1].Name)
	assert.False(t, rec.events[1].Success)
	assert.ErrorIs(t, rec.events[1].Err, domain.ErrUnknownModality)
	_, hasSession := rec.events[1].Fields["session_id"]
	assert.False(t, hasSession)
}
