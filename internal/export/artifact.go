package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// Formats returns every export format in the order artifacts are produced.
func Formats() []Format {
	return []Format{FormatCSV, FormatMarkdown}
}

// ParseFormat accepts "csv", "md" or "markdown".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, s)
}

// MIMEType returns the content type of the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatMarkdown:
		return "text/markdown"
	}
	return "application/octet-stream"
}

// Artifact is one downloadable export file.
type Artifact struct {
	Format   Format
	FileName string
	MIMEType string
	Data     []byte
}

// FileName builds CMC_Milestones_{modality}_{stage}_{YYYY-MM-DD}.{ext}.
// Labels are substituted verbatim, spaces and slashes included.
func FileName(modality domain.Modality, stage domain.Stage, date time.Time, f Format) string {
	return fmt.Sprintf("CMC_Milestones_%s_%s_%s.%s", modality, stage, date.Format(time.DateOnly), f)
}

var pathUnsafe = strings.NewReplacer("/", "-", `\`, "-")

// SafeFileName replaces path separators so a verbatim export name can be
// written as a single file.
func SafeFileName(name string) string {
	return pathUnsafe.Replace(name)
}

// Options controls how rows are rendered.
type Options struct {
	Modality    domain.Modality
	Stage       domain.Stage
	ShowDetails bool
	Date        time.Time
}

// Render produces the artifact for one format.
func Render(f Format, rows []domain.ChecklistRow, opts Options) (Artifact, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatCSV:
		data, err = CSV(rows)
		if err != nil {
			return Artifact{}, err
		}
	case FormatMarkdown:
		data = Markdown(opts.Modality, opts.Stage, rows, opts.ShowDetails)
	default:
		return Artifact{}, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, f)
	}

	return Artifact{
		Format:   f,
		FileName: FileName(opts.Modality, opts.Stage, opts.Date, f),
		MIMEType: f.MIMEType(),
		Data:     data,
	}, nil
}
