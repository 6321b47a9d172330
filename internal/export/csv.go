package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slices"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

// CSVHeader is the fixed column set of a CSV export.
var CSVHeader = []string{"Category", "Deliverable", "Details", "Relevance", "Rigor"}

// CSV serializes rows in the order received, header first. Fields containing
// commas, quotes or newlines are quoted.
func CSV(rows []domain.ChecklistRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Category, r.Deliverable, r.Details, string(r.Relevance), string(r.Rigor)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row %q: %w", r.Key(), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseCSV reads a CSV export back into rows. Selected is left false.
func ParseCSV(data []byte) ([]domain.ChecklistRow, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading csv: missing header")
	}
	if !slices.Equal(records[0], CSVHeader) {
		return nil, fmt.Errorf("reading csv: unexpected header %v", records[0])
	}

	rows := make([]domain.ChecklistRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, domain.ChecklistRow{
			Category:    rec[0],
			Deliverable: rec[1],
			Details:     rec[2],
			Relevance:   domain.Relevance(rec[3]),
			Rigor:       domain.Rigor(rec[4]),
		})
	}
	return rows, nil
}
