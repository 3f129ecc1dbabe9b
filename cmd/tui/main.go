package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/davidmns/centavo/cmd/tui/internal/view"
	"github.com/davidmns/centavo/internal/budget"
	budgetStore "github.com/davidmns/centavo/internal/budget/store"
	"github.com/davidmns/centavo/internal/config"
	"github.com/davidmns/centavo/internal/database"
	"github.com/davidmns/centavo/internal/debt"
	debtStore "github.com/davidmns/centavo/internal/debt/store"
	"github.com/davidmns/centavo/internal/savings"
	savingsStore "github.com/davidmns/centavo/internal/savings/store"
)

type model struct {
	debtService    *debt.Service
	savingsService *savings.Service
	budgetService  *budget.Service

	currentView View

	debtsView view.DebtsModel
	goalsView view.GoalsModel
	statsView view.StatsModel
	planView  view.PlanModel
}

type View int

const (
	ViewMenu  View = 0
	ViewDebts View = 1
	ViewGoals View = 2
	ViewStats View = 3
	ViewPlan  View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	budgetSvc := budget.NewService(budgetStore.New(db))
	debtSvc := debt.NewService(debtStore.New(db), nil)
	savingsSvc := savings.NewService(savingsStore.New(db), budgetSvc)

	return model{
		debtService:    debtSvc,
		savingsService: savingsSvc,
		budgetService:  budgetSvc,
		currentView:    ViewMenu,
		debtsView:      view.NewDebtsModel(debtSvc),
		goalsView:      view.NewGoalsModel(savingsSvc),
		statsView:      view.NewStatsModel(debtSvc),
		planView:       view.NewPlanModel(savingsSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDebts
				m.debtsView = view.NewDebtsModel(m.debtService)

				return m, m.debtsView.Init()
			case "2":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.savingsService)

				return m, m.goalsView.Init()
			case "3":
				m.currentView = ViewStats
				m.statsView = view.NewStatsModel(m.debtService)

				return m, m.statsView.Init()
			case "4":
				m.currentView = ViewPlan
				m.planView = view.NewPlanModel(m.savingsService)

				return m, m.planView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDebts:
		var newModel tea.Model
		newModel, cmd = m.debtsView.Update(msg)
		m.debtsView = newModel.(view.DebtsModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewPlan:
		var newModel tea.Model
		newModel, cmd = m.planView.Update(msg)
		m.planView = newModel.(view.PlanModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Centavo TUI\n\n" +
				"1. Debts\n" +
				"2. Savings Goals\n" +
				"3. Debt Statistics\n" +
				"4. Savings Plan\n\n" +
				"q. Quit",
		)
	case ViewDebts:
		return m.debtsView.View()
	case ViewGoals:
		return m.goalsView.View()
	case ViewStats:
		return m.statsView.View()
	case ViewPlan:
		return m.planView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
