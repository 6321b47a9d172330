package template

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/cmcplan/internal/domain"
)

// Store holds the deliverable dataset keyed by modality. It is immutable
// after construction and safe for concurrent use.
type Store struct {
	modalities []domain.Modality
	aliases    map[domain.Modality]string
	templates  map[domain.Modality][]domain.DeliverableTemplate
}

// NewStore validates and merges the given datasets. A modality label or key
// defined by more than one dataset is an error.
func NewStore(schemas ...*DatasetSchema) (*Store, error) {
	s := &Store{
		aliases:   make(map[domain.Modality]string),
		templates: make(map[domain.Modality][]domain.DeliverableTemplate),
	}
	keys := make(map[string]domain.Modality)

	for i, schema := range schemas {
		if errs := ValidateSchema(schema); len(errs) > 0 {
			return nil, fmt.Errorf("dataset %d is invalid: %w", i, errors.Join(errs...))
		}
		for _, mc := range schema.Modalities {
			m := domain.Modality(mc.Label)
			if _, dup := s.templates[m]; dup {
				return nil, fmt.Errorf("dataset %d: modality %q already defined", i, mc.Label)
			}
			if other, dup := keys[mc.Key]; dup {
				return nil, fmt.Errorf("dataset %d: modality key %q already used by %q", i, mc.Key, other)
			}
			keys[mc.Key] = m

			s.modalities = append(s.modalities, m)
			s.aliases[m] = mc.Key
			s.templates[m] = convertDeliverables(mc.Deliverables)
		}
	}

	return s, nil
}

// DefaultStore loads the embedded reference dataset.
func DefaultStore() (*Store, error) {
	ref, err := ReferenceSchema()
	if err != nil {
		return nil, err
	}
	return NewStore(ref)
}

// LoadStore loads the embedded reference dataset plus every *.yaml and *.yml
// file in dir, in file name order. An empty dir or a missing directory yields
// the reference dataset alone.
func LoadStore(dir string) (*Store, error) {
	ref, err := ReferenceSchema()
	if err != nil {
		return nil, err
	}
	schemas := []*DatasetSchema{ref}

	if dir != "" {
		var paths []string
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("listing datasets: %w", err)
			}
			paths = append(paths, matches...)
		}
		sort.Strings(paths)

		for _, path := range paths {
			schema, err := LoadSchema(path)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
			}
			schemas = append(schemas, schema)
		}
	}

	return NewStore(schemas...)
}

// Modalities returns every modality in dataset order.
func (s *Store) Modalities() []domain.Modality {
	out := make([]domain.Modality, len(s.modalities))
	copy(out, s.modalities)
	return out
}

// Alias returns the short key for m, or "" if m is not defined.
func (s *Store) Alias(m domain.Modality) string {
	return s.aliases[m]
}

// TemplatesFor returns the deliverables of modality m in authored order.
func (s *Store) TemplatesFor(m domain.Modality) ([]domain.DeliverableTemplate, error) {
	templates, ok := s.templates[m]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownModality, m)
	}
	out := make([]domain.DeliverableTemplate, len(templates))
	for i, t := range templates {
		t.PhaseMap = maps.Clone(t.PhaseMap)
		out[i] = t
	}
	return out, nil
}

// MetadataFor resolves the relevance and rigor of t at stage.
func (s *Store) MetadataFor(t domain.DeliverableTemplate, stage domain.Stage) (domain.PhaseMeta, error) {
	return t.Phase(stage)
}

// ResolveModality maps boundary input to a modality. It accepts the exact
// label, the label in any case, or the short key.
func (s *Store) ResolveModality(input string) (domain.Modality, error) {
	in := strings.TrimSpace(input)
	if _, ok := s.templates[domain.Modality(in)]; ok {
		return domain.Modality(in), nil
	}
	for _, m := range s.modalities {
		if strings.EqualFold(in, string(m)) || strings.EqualFold(in, s.aliases[m]) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownModality, input)
}

func convertDeliverables(configs []DeliverableConfig) []domain.DeliverableTemplate {
	out := make([]domain.DeliverableTemplate, 0, len(configs))
	for _, c := range configs {
		phases := make(map[domain.Stage]domain.PhaseMeta, len(c.Phases))
		for _, stage := range domain.Stages() {
			p, ok := c.Phases[stage.Slug()]
			if !ok {
				continue
			}
			phases[stage] = domain.PhaseMeta{
				Relevance: domain.Relevance(p.Relevance),
				Rigor:     domain.Rigor(p.Rigor),
			}
		}
		out = append(out, domain.DeliverableTemplate{
			Category: c.Category,
			Item:     c.Item,
			Detail:   c.Detail,
			PhaseMap: phases,
		})
	}
	return out
}
