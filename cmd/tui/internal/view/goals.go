package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/davidmns/centavo/internal/money"
	"github.com/davidmns/centavo/internal/savings"
)

type goalsState int

const (
	goalsStateBrowse goalsState = iota
	goalsStateDistribute
	goalsStateAllocate
)

type GoalsModel struct {
	CommonModel
	savingsService *savings.Service

	state goalsState
	table table.Model
	goals []savings.Goal
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount    string
	formAvailable string
}

func NewGoalsModel(savingsSvc *savings.Service) GoalsModel {
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Target", Width: 12},
		{Title: "Saved", Width: 12},
		{Title: "Remaining", Width: 12},
		{Title: "Progress", Width: 10},
		{Title: "Deadline", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return GoalsModel{
		savingsService: savingsSvc,
		table:          t,
	}
}

func (m GoalsModel) Title() string { return "Savings Goals" }
func (m GoalsModel) ShortHelp() string {
	if m.state != goalsStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | d: distribute | a: allocate | r: refresh"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadGoalsCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadGoalsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.goals = msg.goals
		m.refreshTable()
		return m, nil

	case goalsSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		m.state = goalsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadGoalsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == goalsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m GoalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadGoalsCmd()
		case "d":
			return m.enterDistributeMode()
		case "a":
			return m.enterAllocateMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m GoalsModel) enterDistributeMode() (tea.Model, tea.Cmd) {
	if len(m.goals) == 0 {
		m.status = "No goals to distribute over"
		return m, nil
	}

	m.formAmount = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount to distribute").
				Placeholder("600.00").
				Value(&m.formAmount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = goalsStateDistribute
	m.table.Blur()
	return m, m.form.Init()
}

func (m GoalsModel) enterAllocateMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.goals) {
		return m, nil
	}

	m.formAmount = ""
	m.formAvailable = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewInput().
				Key("available").
				Title("Available balance").
				Value(&m.formAvailable).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = goalsStateAllocate
	m.table.Blur()
	return m, m.form.Init()
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = goalsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == goalsStateDistribute {
		return m, m.distributeCmd()
	}

	return m, m.allocateCmd()
}

func (m GoalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state != goalsStateBrowse && m.form != nil {
		title := "Distribute Savings"
		if m.state == goalsStateAllocate {
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.goals) {
				title = fmt.Sprintf("Allocate to %s", m.goals[idx].Name)
			}
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func validateAmount(s string) error {
	v, err := money.ParseAmount(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid amount")
	}
	if v <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

func (m *GoalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.goals))
	for _, g := range m.goals {
		rows = append(rows, table.Row{
			g.Name,
			money.Format(g.TargetAmount),
			money.Format(g.CurrentAmount),
			money.Format(g.Remaining()),
			fmt.Sprintf("%.0f%%", g.Progress()*100),
			FormatDate(g.Deadline),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadGoalsMsg struct {
	goals []savings.Goal
	err   error
}

func (m GoalsModel) loadGoalsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		goals, err := m.savingsService.List(ctx)
		return loadGoalsMsg{goals: goals, err: err}
	}
}

type goalsSaveMsg struct {
	status string
	err    error
}

func (m GoalsModel) distributeCmd() tea.Cmd {
	amount, err := money.ParseAmount(strings.TrimSpace(m.formAmount))
	if err != nil {
		return func() tea.Msg { return goalsSaveMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.savingsService.Distribute(ctx, amount); err != nil {
			return goalsSaveMsg{err: err}
		}

		return goalsSaveMsg{status: fmt.Sprintf("Distributed %s across goals", money.Format(amount))}
	}
}

func (m GoalsModel) allocateCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.goals) {
		return nil
	}

	g := m.goals[idx]

	amount, err := money.ParseAmount(strings.TrimSpace(m.formAmount))
	if err != nil {
		return func() tea.Msg { return goalsSaveMsg{err: err} }
	}

	available, err := money.ParseAmount(strings.TrimSpace(m.formAvailable))
	if err != nil {
		return func() tea.Msg { return goalsSaveMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.savingsService.Allocate(ctx, g.ID, amount, available)
		if err != nil {
			return goalsSaveMsg{err: err}
		}

		return goalsSaveMsg{status: fmt.Sprintf("%s now at %s", updated.Name, money.Format(updated.CurrentAmount))}
	}
}
