package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cmcplan/internal/checklist"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/domain"
)

// selectionFlags are the row toggles accepted by export.
type selectionFlags struct {
	selectKeys   []string
	deselectKeys []string
	deselectAll  bool
}

func (f selectionFlags) empty() bool {
	return len(f.selectKeys) == 0 && len(f.deselectKeys) == 0 && !f.deselectAll
}

// resolveSelection turns row-key flags into a Selection, rejecting keys that
// do not name a deliverable of the modality at this stage.
func resolveSelection(ctx context.Context, app *App, modality, stage string, flags selectionFlags) (checklist.Selection, error) {
	if flags.empty() {
		return nil, nil
	}

	all, err := app.Checklist.Checklist(ctx, contract.NewChecklistRequest(modality, stage))
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(all.Rows))
	for _, r := range all.Rows {
		known[r.Key()] = true
	}

	sel := checklist.Selection{}
	if flags.deselectAll {
		for key := range known {
			sel[key] = false
		}
	}
	apply := func(keys []string, v bool) error {
		for _, key := range keys {
			if !known[key] {
				return fmt.Errorf("%w key %q (keys look like %q)", domain.ErrUnknownDeliverable, key, exampleKey(all))
			}
			sel[key] = v
		}
		return nil
	}
	if err := apply(flags.deselectKeys, false); err != nil {
		return nil, err
	}
	if err := apply(flags.selectKeys, true); err != nil {
		return nil, err
	}
	return sel, nil
}

func exampleKey(resp *contract.ChecklistResponse) string {
	if len(resp.Rows) == 0 {
		return "Category/Deliverable"
	}
	return resp.Rows[0].Key()
}
