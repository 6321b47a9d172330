package cli

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/alexanderramin/cmcplan/internal/checklist"
	"github.com/alexanderramin/cmcplan/internal/cli/formatter"
	"github.com/alexanderramin/cmcplan/internal/contract"
	"github.com/alexanderramin/cmcplan/internal/domain"
	"github.com/alexanderramin/cmcplan/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// checklistLoadedMsg carries rebuilt rows after a filter, modality or stage change.
type checklistLoadedMsg struct {
	resp *contract.ChecklistResponse
	err  error
}

// exportDoneMsg reports the files written by an export.
type exportDoneMsg struct {
	resp  *contract.ExportResponse
	paths []string
	err   error
}

type checklistKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Required key.Binding
	Details  key.Binding
	Modality key.Binding
	Stage    key.Binding
	Export   key.Binding
	Quit     key.Binding
}

func defaultChecklistKeys() checklistKeyMap {
	return checklistKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Required: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "required only")),
		Details:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
		Modality: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "modality")),
		Stage:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stage")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// checklistModel is the interactive checklist. Rows are shown grouped by
// category; toggles live in the session and survive filter changes.
type checklistModel struct {
	svc        service.ChecklistService
	session    *contract.Session
	modalities []domain.Modality
	aliases    map[domain.Modality]string
	exportDir  string
	keys       checklistKeyMap

	rows   []domain.ChecklistRow
	counts domain.Counts
	cursor int

	status string
	err    error
	width  int
	height int
}

// newChecklistModel resolves modality and stage and builds the first rows,
// so bad input fails before the program starts.
func newChecklistModel(ctx context.Context, app *App, modality, stage string) (*checklistModel, error) {
	resp, err := app.Checklist.Checklist(ctx, contract.NewChecklistRequest(modality, stage))
	if err != nil {
		return nil, err
	}

	infos := app.Checklist.Modalities(ctx)
	mods := make([]domain.Modality, 0, len(infos))
	aliases := make(map[domain.Modality]string, len(infos))
	for _, info := range infos {
		mods = append(mods, info.Modality)
		aliases[info.Modality] = info.Key
	}

	m := &checklistModel{
		svc:        app.Checklist,
		session:    contract.NewSession(resp.Modality, resp.Stage),
		modalities: mods,
		aliases:    aliases,
		exportDir:  app.config().Export.Dir,
		keys:       defaultChecklistKeys(),
	}
	m.setRows(resp)
	return m, nil
}

func (m *checklistModel) ShortHelp() []key.Binding {
	k := m.keys
	return []key.Binding{k.Toggle, k.Required, k.Details, k.Modality, k.Stage, k.Export, k.Quit}
}

func (m *checklistModel) Init() tea.Cmd {
	return nil
}

// reload rebuilds rows from the session. The request is captured here so the
// command never reads session state concurrently with Update.
func (m *checklistModel) reload() tea.Cmd {
	svc := m.svc
	req := m.session.ChecklistRequest()
	req.Selection = maps.Clone(req.Selection)
	return func() tea.Msg {
		resp, err := svc.Checklist(context.Background(), req)
		return checklistLoadedMsg{resp: resp, err: err}
	}
}

func (m *checklistModel) exportCmd() tea.Cmd {
	svc := m.svc
	dir := m.exportDir
	req := m.session.ExportRequest()
	req.Selection = maps.Clone(req.Selection)
	return func() tea.Msg {
		resp, err := svc.Export(context.Background(), req)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		paths, err := writeArtifacts(dir, resp.Artifacts)
		return exportDoneMsg{resp: resp, paths: paths, err: err}
	}
}

func (m *checklistModel) setRows(resp *contract.ChecklistResponse) {
	m.rows = checklist.Flatten(checklist.GroupByCategory(resp.Rows))
	m.counts = resp.Counts
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case checklistLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setRows(msg.resp)
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Exported %d deliverables to %s", len(msg.resp.Rows), strings.Join(msg.paths, ", "))
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *checklistModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if len(m.rows) == 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		m.session.Selection.Toggle(row)
		m.rows[m.cursor].Selected = m.session.Selection.IsSelected(row)
		m.status = ""

	case key.Matches(msg, m.keys.Required):
		m.session.ShowOnlyRequired = !m.session.ShowOnlyRequired
		return m, m.reload()

	case key.Matches(msg, m.keys.Details):
		m.session.ShowDetails = !m.session.ShowDetails

	case key.Matches(msg, m.keys.Modality):
		if len(m.modalities) < 2 {
			return m, nil
		}
		m.session.SetModality(nextModality(m.modalities, m.session.Modality))
		m.cursor = 0
		m.status = ""
		return m, m.reload()

	case key.Matches(msg, m.keys.Stage):
		m.session.SetStage(nextStage(m.session.Stage))
		m.cursor = 0
		m.status = ""
		return m, m.reload()

	case key.Matches(msg, m.keys.Export):
		m.status = "Exporting..."
		return m, m.exportCmd()
	}
	return m, nil
}

func nextModality(mods []domain.Modality, current domain.Modality) domain.Modality {
	for i, m := range mods {
		if m == current {
			return mods[(i+1)%len(mods)]
		}
	}
	return mods[0]
}

func nextStage(current domain.Stage) domain.Stage {
	stages := domain.Stages()
	for i, s := range stages {
		if s == current {
			return stages[(i+1)%len(stages)]
		}
	}
	return stages[0]
}

func (m *checklistModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.Header("CMC Milestone Checklist"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s   %s\n",
		formatter.ModalityBadge(m.session.Modality, m.aliases[m.session.Modality]),
		formatter.StageBadge(m.session.Stage),
		m.filterBadges(),
	))
	b.WriteString("\n")

	body, focus := m.bodyLines()
	for _, line := range window(body, focus, m.bodyHeight()) {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n  " + formatter.CountsCaption(m.counts) + "\n")
	if m.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString("  " + formatter.StyleGreen.Render(m.status) + "\n")
	}

	hints := make([]string, 0, len(m.ShortHelp()))
	for _, kb := range m.ShortHelp() {
		hints = append(hints, formatter.Dim(kb.Help().Key+": "+kb.Help().Desc))
	}
	b.WriteString("\n  " + strings.Join(hints, formatter.Dim(" • ")) + "\n")
	return b.String()
}

func (m *checklistModel) filterBadges() string {
	var badges []string
	if m.session.ShowOnlyRequired {
		badges = append(badges, formatter.StyleYellow.Render("[required only]"))
	}
	if m.session.ShowDetails {
		badges = append(badges, formatter.Dim("[details]"))
	}
	return strings.Join(badges, " ")
}

// bodyLines renders the grouped rows and returns the line index of the cursor.
func (m *checklistModel) bodyLines() ([]string, int) {
	if len(m.rows) == 0 {
		return []string{"  " + formatter.Dim("No deliverables match the current filter.")}, 0
	}

	var lines []string
	focus := 0
	category := ""
	for i, r := range m.rows {
		if i == 0 || r.Category != category {
			category = r.Category
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, "  "+formatter.StyleHeader.Render(category))
		}

		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
			focus = len(lines)
		}
		lines = append(lines, fmt.Sprintf("  %s%s %s  %s  %s",
			cursor,
			formatter.Checkbox(r.Selected),
			nameStyle.Render(r.Deliverable),
			formatter.RelevancePill(r.Relevance),
			formatter.RigorBadge(r.Rigor),
		))
		if m.session.ShowDetails && r.Details != "" {
			lines = append(lines, "        "+formatter.Dim(m.wrapDetails(r.Details)))
		}
	}
	return lines, focus
}

func (m *checklistModel) wrapDetails(s string) string {
	if m.width <= 12 {
		return s
	}
	return formatter.Truncate(s, m.width-10)
}

// bodyHeight is the number of row lines that fit beside the header and
// footer, or 0 when the terminal size is unknown.
func (m *checklistModel) bodyHeight() int {
	const chrome = 10
	if m.height <= chrome {
		return 0
	}
	return m.height - chrome
}

// window returns at most height lines of lines keeping focus visible. A
// height of 0 returns every line.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	start = max(start, 0)
	start = min(start, len(lines)-height)
	return lines[start : start+height]
}
