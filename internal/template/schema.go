package template

// DatasetSchema is the top-level YAML dataset structure.
type DatasetSchema struct {
	Version    string           `yaml:"version"`
	Modalities []ModalityConfig `yaml:"modalities"`
}

type ModalityConfig struct {
	Key          string              `yaml:"key"`   // short alias, e.g. "mab"
	Label        string              `yaml:"label"` // display label, used verbatim in exports
	Deliverables []DeliverableConfig `yaml:"deliverables"`
}

type DeliverableConfig struct {
	Category string                 `yaml:"category"`
	Item     string                 `yaml:"item"`
	Detail   string                 `yaml:"detail,omitempty"`
	Phases   map[string]PhaseConfig `yaml:"phases"` // keyed by stage slug
}

type PhaseConfig struct {
	Relevance string `yaml:"relevance"`
	Rigor     string `yaml:"rigor"`
}
