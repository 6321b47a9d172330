package cli

import (
	"testing"

	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/alexanderramin/cmcplan/internal/teatest"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with access to checklistModel state.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the checklist model for modality and stage and sizes
// the terminal.
func NewTestDriver(t *testing.T, app *App, modality, stage string) *TestDriver {
	t.Helper()

	m, err := newChecklistModel(t.Context(), app, modality, stage)
	require.NoError(t, err)
	return &TestDriver{Driver: teatest.New(t, m, teatest.WithSize(120, 40))}
}

func (d *TestDriver) model() *checklistModel {
	return d.Model.(*checklistModel)
}

// Rows returns the rows in display order.
func (d *TestDriver) Rows() []domain.ChecklistRow {
	return d.model().rows
}

func (d *TestDriver) Cursor() int {
	return d.model().cursor
}

func (d *TestDriver) Counts() domain.Counts {
	return d.model().counts
}

// Screen returns the view without ANSI styling.
func (d *TestDriver) Screen() string {
	return stripANSI(d.View())
}
