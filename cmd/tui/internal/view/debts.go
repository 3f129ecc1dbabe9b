package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/davidmns/centavo/internal/debt"
	"github.com/davidmns/centavo/internal/money"
)

type debtsState int

const (
	debtsStateBrowse debtsState = iota
	debtsStatePay
)

type DebtsModel struct {
	CommonModel
	debtService *debt.Service

	state debtsState
	table table.Model
	debts []debt.Debt
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount string
	formType   string
}

func NewDebtsModel(debtSvc *debt.Service) DebtsModel {
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Due", Width: 12},
		{Title: "Urgency", Width: 10},
		{Title: "Balance", Width: 12},
		{Title: "Rate", Width: 8},
		{Title: "Min", Width: 10},
		{Title: "Payoff", Width: 12},
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

	return DebtsModel{
		debtService: debtSvc,
		table:       t,
	}
}

func (m DebtsModel) Title() string { return "Debts" }
func (m DebtsModel) ShortHelp() string {
	if m.state == debtsStatePay {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | p: record payment | r: refresh"
}

func (m DebtsModel) Init() tea.Cmd {
	return m.loadDebtsCmd()
}

func (m DebtsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDebtsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.debts = msg.debts
		m.refreshTable()
		return m, nil

	case paySaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error recording payment: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Recorded %s payment of %s", msg.payment.Type, money.Format(msg.payment.Amount))
		}
		m.state = debtsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadDebtsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case debtsStateBrowse:
		return m.updateBrowse(msg)
	case debtsStatePay:
		return m.updatePay(msg)
	}

	return m, nil
}

func (m DebtsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadDebtsCmd()
		case "p":
			return m.enterPayMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m DebtsModel) enterPayMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.debts) {
		return m, nil
	}

	d := m.debts[idx]
	m.formAmount = fmt.Sprintf("%.2f", d.MinimumPayment)
	m.formType = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := money.ParseAmount(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("invalid amount")
					}
					if v <= 0 {
						return fmt.Errorf("amount must be positive")
					}
					if v > d.RemainingAmount {
						return fmt.Errorf("amount exceeds remaining balance")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Payment Type").
				Options(
					huh.NewOption("Auto-detect", ""),
					huh.NewOption("Minimum", string(debt.PaymentMinimum)),
					huh.NewOption("Extra", string(debt.PaymentExtra)),
					huh.NewOption("Payoff", string(debt.PaymentPayoff)),
				).
				Value(&m.formType),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = debtsStatePay
	m.table.Blur()
	return m, m.form.Init()
}

func (m DebtsModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = debtsStateBrowse
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

	return m, m.payCmd()
}

func (m DebtsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading debts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == debtsStatePay && m.form != nil {
		idx := m.table.Cursor()
		name := ""
		balance := ""
		if idx >= 0 && idx < len(m.debts) {
			name = m.debts[idx].Name
			balance = money.Format(m.debts[idx].RemainingAmount)
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Record Payment\n\n%s (balance %s)\n\n%s", name, balance, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *DebtsModel) refreshTable() {
	now := time.Now()

	rows := make([]table.Row, 0, len(m.debts))
	for _, d := range m.debts {
		rows = append(rows, table.Row{
			d.Name,
			FormatDate(d.DueDate),
			d.UrgencyAt(now).String(),
			money.Format(d.RemainingAmount),
			FormatRate(d.InterestRate),
			money.Format(d.MinimumPayment),
			FormatPayoff(debt.Project(d)),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadDebtsMsg struct {
	debts []debt.Debt
	err   error
}

func (m DebtsModel) loadDebtsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		debts, err := m.debtService.List(ctx, time.Now())
		return loadDebtsMsg{debts: debts, err: err}
	}
}

type paySaveMsg struct {
	payment debt.Payment
	err     error
}

func (m DebtsModel) payCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.debts) {
		return nil
	}

	d := m.debts[idx]
	amount, err := money.ParseAmount(strings.TrimSpace(m.formAmount))
	if err != nil {
		return func() tea.Msg { return paySaveMsg{err: err} }
	}

	payType := debt.PaymentType(m.formType)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, record, err := m.debtService.Pay(ctx, d.ID, debt.PaymentParams{
			Amount: amount,
			Type:   payType,
		}, time.Now())

		return paySaveMsg{payment: record, err: err}
	}
}
