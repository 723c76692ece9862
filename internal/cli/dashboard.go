package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/export"
	"github.com/alexanderramin/canteiro/internal/store"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// ── keys ─────────────────────────────────────────────────────────────────────

type dashboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Search  key.Binding
	Status  key.Binding
	Filter  key.Binding
	Clear   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Status, k.Filter, k.Clear, k.Refresh, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

var dashboardKeys = dashboardKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Status:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
	Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ── messages ─────────────────────────────────────────────────────────────────

// storeChangedMsg signals a session transition. Handling it re-arms the watch.
type storeChangedMsg struct{}

// dashboardRefreshMsg re-reads the session without touching the watch.
type dashboardRefreshMsg struct{}

func waitForStore(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// ── model ────────────────────────────────────────────────────────────────────

type dashboardMode int

const (
	modeBrowse dashboardMode = iota
	modeSearch
	modeFilterForm
)

// filterFormValues backs the filter form fields.
type filterFormValues struct {
	status     string
	contractor string
	leaders    string
	from       string
	to         string
	agenda     string
}

// dashboardModel renders the live project board of the session provisioned
// in its context.
type dashboardModel struct {
	ctx         context.Context
	updates     <-chan struct{}
	unsubscribe func()
	now         func() time.Time
	loc         *time.Location

	state   store.State
	visible []domain.Project
	cursor  int

	mode       dashboardMode
	search     textinput.Model
	form       *huh.Form
	formValues *filterFormValues
	help       help.Model
	err        error

	width  int
	height int
}

func newDashboardModel(ctx context.Context, now func() time.Time, loc *time.Location) dashboardModel {
	updates, cancel := store.FromContext(ctx).Subscribe()

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name or order number"
	ti.CharLimit = 80

	m := dashboardModel{
		ctx:         ctx,
		updates:     updates,
		unsubscribe: cancel,
		now:         now,
		loc:         loc,
		search:      ti,
		help:        help.New(),
	}
	m.refresh()
	return m
}

func (m dashboardModel) session() *store.Session {
	return store.FromContext(m.ctx)
}

func (m *dashboardModel) refresh() {
	sess := m.session()
	m.state = sess.State()
	m.visible = sess.Filtered(m.now())
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m *dashboardModel) applyFilters(c tracking.Criteria) {
	m.session().Dispatch(store.SetFilters{Criteria: c})
	m.refresh()
}

func (m dashboardModel) selected() (*domain.Project, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil, false
	}
	return &m.visible[m.cursor], true
}

func (m dashboardModel) Init() tea.Cmd {
	return waitForStore(m.updates)
}

// ── update ───────────────────────────────────────────────────────────────────

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case storeChangedMsg:
		m.refresh()
		return m, waitForStore(m.updates)
	case dashboardRefreshMsg:
		m.refresh()
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeFilterForm:
		return m.updateForm(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		return m.updateBrowse(k)
	}
	return m, nil
}

func (m dashboardModel) quit() (tea.Model, tea.Cmd) {
	m.unsubscribe()
	return m, tea.Quit
}

func (m dashboardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, dashboardKeys.Quit):
		return m.quit()
	case key.Matches(msg, dashboardKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, dashboardKeys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, dashboardKeys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.state.Filters.Query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, dashboardKeys.Status):
		c := m.state.Filters
		c.Status = nextStatus(c.Status)
		m.applyFilters(c)
	case key.Matches(msg, dashboardKeys.Filter):
		return m.openFilterForm()
	case key.Matches(msg, dashboardKeys.Clear):
		m.err = nil
		m.search.SetValue("")
		m.applyFilters(tracking.Criteria{})
	case key.Matches(msg, dashboardKeys.Refresh):
		return m, func() tea.Msg { return dashboardRefreshMsg{} }
	}
	return m, nil
}

// nextStatus cycles no filter, then each status in display order.
func nextStatus(cur domain.Status) domain.Status {
	if cur == "" {
		return domain.Statuses[0]
	}
	i := slices.Index(domain.Statuses, cur)
	if i < 0 || i == len(domain.Statuses)-1 {
		return ""
	}
	return domain.Statuses[i+1]
}

func (m dashboardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEnter:
			m.mode = modeBrowse
			m.search.Blur()
			return m, nil
		case tea.KeyEsc:
			m.mode = modeBrowse
			m.search.Blur()
			m.search.SetValue("")
			c := m.state.Filters
			c.Query = ""
			m.applyFilters(c)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := strings.TrimSpace(m.search.Value()); q != m.state.Filters.Query {
		c := m.state.Filters
		c.Query = q
		m.applyFilters(c)
	}
	return m, cmd
}

func (m dashboardModel) openFilterForm() (tea.Model, tea.Cmd) {
	c := m.state.Filters
	v := &filterFormValues{
		status:     string(c.Status),
		contractor: c.Contractor,
		leaders:    strings.Join(c.Leader, ", "),
		from:       formatDay(c.DateFrom, m.loc),
		to:         formatDay(c.DateTo, m.loc),
		agenda:     formatDay(c.AgendaDate, m.loc),
	}
	m.formValues = v
	m.form = newFilterForm(v, contractorNames(m.state.Projects))
	m.mode = modeFilterForm
	return m, m.form.Init()
}

func (m dashboardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEsc:
			m.closeForm()
			return m, nil
		}
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		c, err := m.formValues.criteria(m.state.Filters.Query, m.loc)
		m.err = err
		if err == nil {
			m.applyFilters(c)
		}
		m.closeForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *dashboardModel) closeForm() {
	m.mode = modeBrowse
	m.form = nil
	m.formValues = nil
}

func newFilterForm(v *filterFormValues, contractors []string) *huh.Form {
	statusOpts := []huh.Option[string]{huh.NewOption("Any", "")}
	for _, st := range domain.Statuses {
		statusOpts = append(statusOpts, huh.NewOption(string(st), string(st)))
	}
	contractorOpts := []huh.Option[string]{huh.NewOption("Any", "")}
	for _, name := range contractors {
		contractorOpts = append(contractorOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&v.status),
			huh.NewSelect[string]().
				Title("Contractor").
				Options(contractorOpts...).
				Value(&v.contractor),
			huh.NewInput().
				Title("Leaders").
				Description("Comma-separated; any one matches").
				Value(&v.leaders),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start from").
				Placeholder("YYYY-MM-DD").
				Validate(validateOptionalDate).
				Value(&v.from),
			huh.NewInput().
				Title("Start until").
				Placeholder("YYYY-MM-DD").
				Validate(validateOptionalDate).
				Value(&v.to),
			huh.NewInput().
				Title("Agenda day").
				Placeholder("YYYY-MM-DD").
				Validate(validateOptionalDate).
				Value(&v.agenda),
		),
	).WithTheme(canteiroHuhTheme()).WithShowHelp(false)
}

// criteria converts the form values, keeping the search query untouched.
func (v *filterFormValues) criteria(query string, loc *time.Location) (tracking.Criteria, error) {
	c := tracking.Criteria{
		Query:      query,
		Status:     domain.Status(v.status),
		Contractor: strings.TrimSpace(v.contractor),
	}
	for _, l := range strings.Split(v.leaders, ",") {
		if l = strings.TrimSpace(l); l != "" {
			c.Leader = append(c.Leader, l)
		}
	}

	var err error
	if c.DateFrom, err = parseDay(v.from, loc, false); err != nil {
		return tracking.Criteria{}, err
	}
	if c.DateTo, err = parseDay(v.to, loc, true); err != nil {
		return tracking.Criteria{}, err
	}
	if c.AgendaDate, err = parseDay(v.agenda, loc, false); err != nil {
		return tracking.Criteria{}, err
	}
	return c, nil
}

func formatDay(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(dateLayout)
}

func contractorNames(projects []domain.Project) []string {
	var names []string
	for _, p := range projects {
		if p.Contractor != "" && !slices.Contains(names, p.Contractor) {
			names = append(names, p.Contractor)
		}
	}
	slices.Sort(names)
	return names
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardChromeLines is the space taken by everything but the table body.
const dashboardChromeLines = 18

func (m dashboardModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + formatter.StyleHeader.Render("CANTEIRO") + "  " + m.userLine() + "\n\n")

	if m.mode == modeFilterForm && m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n  " + formatter.Dim("enter next · esc cancel") + "\n")
		return b.String()
	}

	if m.state.Loading {
		b.WriteString("  " + formatter.Dim("Loading projects…") + "\n")
		return b.String()
	}

	now := m.now()
	sum := tracking.Summarize(m.visible, now, m.loc)
	b.WriteString("  " + formatter.FormatSummary(sum.ByStatus, sum.Total) + "\n")
	b.WriteString("  " + formatter.Dim(fmt.Sprintf("%d critical · %d created today · %d completed today",
		sum.Critical, sum.ProjectsCreated, sum.ProjectsCompleted)) + "\n")
	b.WriteString("  " + m.filterLine() + "\n")
	if m.mode == modeSearch {
		b.WriteString("  " + m.search.View() + "\n")
	}
	if m.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		if len(m.state.Projects) == 0 {
			b.WriteString("  " + formatter.Dim("No projects yet.") + "\n")
		} else {
			b.WriteString("  " + formatter.Dim("No projects match the filters.") + "\n")
		}
	} else {
		b.WriteString(m.renderTable(now))
		b.WriteString("\n")
		if p, ok := m.selected(); ok {
			b.WriteString(m.renderDetail(p, now))
		}
	}

	b.WriteString("\n  " + m.help.View(dashboardKeys) + "\n")
	return b.String()
}

func (m dashboardModel) userLine() string {
	u := m.state.User
	if u == nil {
		return formatter.Dim("no user")
	}
	return formatter.Bold(u.Email) + formatter.Dim(" ("+string(u.Role)+")")
}

func (m dashboardModel) filterLine() string {
	c := m.state.Filters
	if c.IsZero() {
		return formatter.Dim("No filters")
	}

	var parts []string
	if c.Query != "" {
		parts = append(parts, fmt.Sprintf("search %q", c.Query))
	}
	if c.Status != "" {
		parts = append(parts, formatter.StatusBadge(c.Status))
	}
	if c.Contractor != "" {
		parts = append(parts, "contractor "+c.Contractor)
	}
	if c.OrderNumber != "" {
		parts = append(parts, "order "+c.OrderNumber)
	}
	if len(c.Leader) > 0 {
		parts = append(parts, "leader "+strings.Join(c.Leader, "|"))
	}
	if c.DateFrom != nil || c.DateTo != nil {
		parts = append(parts, fmt.Sprintf("start %s..%s", formatDay(c.DateFrom, m.loc), formatDay(c.DateTo, m.loc)))
	}
	if c.AgendaDate != nil {
		parts = append(parts, "agenda "+formatDay(c.AgendaDate, m.loc))
	}
	return formatter.Dim("Filters: ") + strings.Join(parts, formatter.Dim(" · "))
}

// window returns the slice bounds of rows that fit on screen, keeping the
// cursor visible.
func (m dashboardModel) window() (int, int) {
	n := len(m.visible)
	if m.height <= 0 {
		return 0, n
	}
	size := max(3, m.height-dashboardChromeLines)
	if n <= size {
		return 0, n
	}
	start := max(0, m.cursor-size/2)
	if start+size > n {
		start = n - size
	}
	return start, start + size
}

func (m dashboardModel) renderTable(now time.Time) string {
	headers := []string{"", "ID", "", "NAME", "ORDER", "CONTRACTOR", "STATUS", "PROGRESS", "DUE"}
	start, end := m.window()

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		p := &m.visible[i]
		marker := " "
		if i == m.cursor {
			marker = formatter.StyleGreen.Render("▸")
		}
		rows = append(rows, []string{
			marker,
			p.DisplayID(),
			formatter.CriticalMark(p.Critical),
			p.Name,
			formatter.OrDash(p.OrderNumber),
			formatter.OrDash(p.Contractor),
			formatter.StatusBadge(tracking.Classify(p, now).Status),
			formatter.RenderProgress(p.Progress, tracking.PredictProgress(p, now), 10),
			formatter.DueStyled(p.EstimatedCompletionDate, now, m.loc),
		})
	}

	out := formatter.RenderTable(headers, rows, 28)
	if start > 0 || end < len(m.visible) {
		out += "\n  " + formatter.Dim(fmt.Sprintf("%d-%d of %d", start+1, end, len(m.visible)))
	}
	return out
}

func (m dashboardModel) renderDetail(p *domain.Project, now time.Time) string {
	var b strings.Builder

	b.WriteString("  " + formatter.Bold(p.Name) + "  " + formatter.StatusBadge(tracking.Classify(p, now).Status) + "\n")
	b.WriteString("  " + formatter.Dim("Leaders   ") + formatter.JoinOrDash(p.Leader) + "\n")
	b.WriteString("  " + formatter.Dim("Window    ") +
		formatter.OrDash(export.FormatDateTime(p.StartDate, m.loc)) + " → " + formatter.OrDash(export.FormatDateTime(p.EstimatedCompletionDate, m.loc)) + "\n")

	clearances := fmt.Sprintf("%d/%d", p.ClearedCount(), len(domain.Checkpoints))
	if last, ok := latestClearance(p); ok && !p.IsComplete() {
		since := tracking.FormatElapsed(last, now)
		text := since.Text
		if since.IsOverdue {
			text = formatter.StyleRed.Render(text)
		}
		clearances += formatter.Dim("  since last ") + text
	}
	b.WriteString("  " + formatter.Dim("Cleared   ") + clearances + "\n")

	if a, ok := p.LatestAgenda(); ok {
		b.WriteString("  " + formatter.Dim("Agenda    ") + export.FormatDate(&a.Date, m.loc) + "\n")
	}
	if n := len(p.ActivitySummary); n > 0 {
		b.WriteString("  " + formatter.Dim("Activity  ") + p.ActivitySummary[n-1].Text + "\n")
	}
	return b.String()
}

func latestClearance(p *domain.Project) (time.Time, bool) {
	var last time.Time
	for _, t := range p.Clearances {
		if t.After(last) {
			last = t
		}
	}
	return last, !last.IsZero()
}

// ── command ──────────────────────────────────────────────────────────────────

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the live project board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, app)
		},
	}
}

func runDashboard(cmd *cobra.Command, app *App) error {
	email, err := app.currentUser()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess, err := app.Sync.Start(ctx, email)
	if err != nil {
		return err
	}
	ctx = store.WithSession(ctx, sess)

	p := tea.NewProgram(newDashboardModel(ctx, app.now, app.loc()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}
