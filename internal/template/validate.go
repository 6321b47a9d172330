package template

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

// ValidateSchema checks a DatasetSchema for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateSchema(schema *DatasetSchema) []error {
	if schema == nil {
		return []error{errors.New("dataset is nil")}
	}

	var errs []error

	if err := validateVersion(schema.Version); err != nil {
		errs = append(errs, err)
	}
	if len(schema.Modalities) == 0 {
		errs = append(errs, fmt.Errorf("at least one modality is required"))
	}

	labels := map[string]bool{}
	keys := map[string]bool{}
	for i, m := range schema.Modalities {
		if m.Label == "" {
			errs = append(errs, fmt.Errorf("modality[%d]: label is required", i))
		}
		if m.Key == "" {
			errs = append(errs, fmt.Errorf("modality[%d]: key is required", i))
		}
		if m.Label != "" && labels[m.Label] {
			errs = append(errs, fmt.Errorf("modality[%d]: duplicate label %q", i, m.Label))
		}
		if m.Key != "" && keys[m.Key] {
			errs = append(errs, fmt.Errorf("modality[%d]: duplicate key %q", i, m.Key))
		}
		labels[m.Label] = true
		keys[m.Key] = true

		errs = append(errs, validateDeliverables(i, m.Deliverables)...)
	}

	return errs
}

// SchemaMajorVersion is the dataset format major version this build reads.
const SchemaMajorVersion = "1"

func validateVersion(v string) error {
	if v == "" {
		return errors.New("version is required")
	}
	major, _, _ := strings.Cut(v, ".")
	if major != SchemaMajorVersion {
		return fmt.Errorf("unsupported version %q (want %s.x)", v, SchemaMajorVersion)
	}
	return nil
}

func validateDeliverables(mi int, deliverables []DeliverableConfig) []error {
	var errs []error

	rowKeys := map[string]bool{}
	for j, d := range deliverables {
		prefix := fmt.Sprintf("modality[%d].deliverable[%d]", mi, j)
		if d.Category == "" {
			errs = append(errs, fmt.Errorf("%s: category is required", prefix))
		}
		if d.Item == "" {
			errs = append(errs, fmt.Errorf("%s: item is required", prefix))
		}
		key := domain.RowKey(d.Category, d.Item)
		if rowKeys[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate deliverable %q", prefix, key))
		}
		rowKeys[key] = true

		// Every stage must be authored; a missing phase is never defaulted.
		for _, stage := range domain.Stages() {
			p, ok := d.Phases[stage.Slug()]
			if !ok {
				errs = append(errs, fmt.Errorf("%s: missing phase %q", prefix, stage.Slug()))
				continue
			}
			if !domain.ValidRelevances[domain.Relevance(p.Relevance)] {
				errs = append(errs, fmt.Errorf("%s: phase %q: invalid relevance %q", prefix, stage.Slug(), p.Relevance))
			}
			if p.Rigor == "" {
				errs = append(errs, fmt.Errorf("%s: phase %q: rigor is required", prefix, stage.Slug()))
			}
		}
		var unknown []string
		for slug := range d.Phases {
			if !knownSlug(slug) {
				unknown = append(unknown, slug)
			}
		}
		sort.Strings(unknown)
		for _, slug := range unknown {
			errs = append(errs, fmt.Errorf("%s: unknown phase %q", prefix, slug))
		}
	}

	return errs
}

func knownSlug(slug string) bool {
	for _, s := range domain.Stages() {
		if s.Slug() == slug {
			return true
		}
	}
	return false
}
