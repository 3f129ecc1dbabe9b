package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/debt"
	"github.com/davidmns/centavo/internal/money"
)

type StatsModel struct {
	CommonModel
	debtService *debt.Service

	incomeInput textinput.Model

	stats    *debt.Statistics
	priority *debt.Debt
	debts    []debt.Debt

	loading bool
	status  string
}

func NewStatsModel(debtSvc *debt.Service) StatsModel {
	in := textinput.New()
	in.Placeholder = "3000.00"
	in.CharLimit = 12
	in.Width = 14
	in.Prompt = "Monthly income: "
	in.Focus()

	return StatsModel{
		debtService: debtSvc,
		incomeInput: in,
		status:      "Enter monthly income and press Enter",
	}
}

func (m StatsModel) Title() string     { return "Debt Statistics" }
func (m StatsModel) ShortHelp() string { return "Enter: compute | Esc: back" }

func (m StatsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			income, err := money.ParseAmount(strings.TrimSpace(m.incomeInput.Value()))
			if err != nil || income < 0 {
				m.status = "Invalid income amount"
				return m, nil
			}

			m.loading = true
			return m, m.loadStatsCmd(income)
		}

	case loadStatsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.stats = &msg.stats
		m.priority = msg.priority
		m.debts = msg.debts
		m.status = ""
		return m, nil
	}

	m.incomeInput, cmd = m.incomeInput.Update(msg)

	return m, cmd
}

func (m StatsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Computing statistics...")
	}

	var b strings.Builder

	b.WriteString(m.incomeInput.View())
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	if m.stats != nil {
		b.WriteString(fmt.Sprintf(
			"Total debt:           %s\n"+
				"Minimum payments:     %s /mo\n"+
				"Monthly interest:     %s\n"+
				"Debt-to-income:       %.1f%% (%s)\n",
			money.Format(m.stats.TotalDebt),
			money.Format(m.stats.TotalMinimumPayments),
			money.Format(m.stats.TotalMonthlyInterest),
			m.stats.DebtToIncomeRatio,
			riskLabel(m.stats.Risk),
		))

		if m.priority != nil {
			b.WriteString(fmt.Sprintf("\nPay off first: %s (%s)\n",
				m.priority.Name, money.Format(m.priority.RemainingAmount)))
		}

		if len(m.stats.Projections) > 0 {
			names := make(map[uuid.UUID]string, len(m.debts))
			for _, d := range m.debts {
				names[d.ID] = d.Name
			}

			b.WriteString("\nProjections under minimum payments:\n")

			for _, p := range m.stats.Projections {
				b.WriteString(fmt.Sprintf("  %-22s %s\n", names[p.DebtID], FormatPayoff(p)))
			}
		}
	}

	b.WriteString("\n(Enter to recompute, Esc to back)")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func riskLabel(r debt.Risk) string {
	color := "42"

	switch r {
	case debt.RiskModerate:
		color = "214"
	case debt.RiskHigh:
		color = "196"
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r))
}

type loadStatsMsg struct {
	stats    debt.Statistics
	priority *debt.Debt
	debts    []debt.Debt
	err      error
}

func (m StatsModel) loadStatsCmd(income float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stats, err := m.debtService.Statistics(ctx, income)
		if err != nil {
			return loadStatsMsg{err: err}
		}

		debts, err := m.debtService.List(ctx, time.Now())
		if err != nil {
			return loadStatsMsg{err: err}
		}

		var priority *debt.Debt
		if d, ok, err := m.debtService.Priority(ctx); err == nil && ok {
			priority = &d
		}

		return loadStatsMsg{stats: stats, priority: priority, debts: debts}
	}
}
