package domain

// ChecklistRow is a deliverable projected onto one stage.
type ChecklistRow struct {
	Category    string
	Deliverable string
	Details     string
	Relevance   Relevance
	Rigor       Rigor
	Selected    bool
}

func (r ChecklistRow) Key() string {
	return RowKey(r.Category, r.Deliverable)
}

// Counts tallies rows by relevance.
type Counts struct {
	Required    int
	Recommended int
	Defer       int
}

func (c Counts) Total() int {
	return c.Required + c.Recommended + c.Defer
}
