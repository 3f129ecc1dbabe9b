package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davidmns/centavo/internal/money"
	"github.com/davidmns/centavo/internal/savings"
)

type PlanModel struct {
	CommonModel
	savingsService *savings.Service

	plan    *savings.Plan
	loading bool
	err     error
}

func NewPlanModel(savingsSvc *savings.Service) PlanModel {
	return PlanModel{
		savingsService: savingsSvc,
		loading:        true,
	}
}

func (m PlanModel) Title() string     { return "Savings Plan" }
func (m PlanModel) ShortHelp() string { return "r: refresh | Esc: back" }

func (m PlanModel) Init() tea.Cmd {
	return m.loadPlanCmd()
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadPlanCmd()
		}

	case loadPlanMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.plan = &msg.plan
		}
	}

	return m, nil
}

func (m PlanModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading plan...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	p := m.plan

	content := fmt.Sprintf(
		"This month\n\n"+
			"Income:               %s\n"+
			"Expenses:             %s\n"+
			"Available to save:    %s\n"+
			"Recommended savings:  %s (%.0f%% of income)\n\n"+
			"(r to refresh, Esc to back)",
		money.Format(p.TotalIncome),
		money.Format(p.TotalExpenses),
		money.Format(p.AvailableForSavings),
		money.Format(p.RecommendedSavings),
		p.SavingsPercentage,
	)

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type loadPlanMsg struct {
	plan savings.Plan
	err  error
}

func (m PlanModel) loadPlanCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		plan, err := m.savingsService.MonthlyPlan(ctx, time.Now())
		return loadPlanMsg{plan: plan, err: err}
	}
}
