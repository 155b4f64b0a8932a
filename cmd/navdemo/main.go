// Command navdemo is a minimal terminal program exercising navstate's
// graph, guard, guided-flow and lifecycle machinery end to end: an
// unauthenticated user hits a guarded "settings" destination, gets
// pended-and-redirected to a login screen, and [l] signs in and resumes
// the pending request; with nothing pending, [l] starts a two-step
// onboarding guided flow instead.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tuicore/navstate/pkg/navstate/flow"
	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/state"
	"github.com/tuicore/navstate/pkg/navstate/store"
	"github.com/tuicore/navstate/pkg/navstate/telemetry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(2).
			PaddingRight(2)

	routeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AF78E")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	pendStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B731"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

func buildTables(authed *bool) (*graph.Table, error) {
	home := &graph.Destination{Name: "home", Route: "home"}
	onboardStep1 := &graph.Destination{Name: "onboard-profile", Route: "profile"}
	onboardStep2 := &graph.Destination{Name: "onboard-notify", Route: "notifications"}

	secure := &graph.Spec{
		ID:    "secure",
		Entry: graph.EntrySpec{DestinationName: "settings"},
		Destinations: []*graph.Destination{
			{Name: "settings", Route: "settings"},
		},
		Guard: func(ctx context.Context, to graph.Target, from *graph.Target) graph.GuardResult {
			if *authed {
				return graph.Allow()
			}
			return graph.PendAndRedirectTo("login", map[string]interface{}{
				"reason": "settings requires sign-in",
			}, "Sign in to continue")
		},
	}

	root := &graph.Spec{
		ID:    "root",
		Entry: graph.EntrySpec{DestinationName: "home"},
		Destinations: []*graph.Destination{
			home,
			{Name: "login", Route: "login"},
			onboardStep1,
			onboardStep2,
		},
		Graphs: []*graph.Spec{secure},
	}
	return graph.Build(root)
}

func buildFlowRegistry() *flow.Registry {
	reg := flow.NewRegistry()
	reg.Register(&flow.Definition{
		FlowID: "onboarding",
		Steps: []intent.FlowStep{
			{Route: "root/profile"},
			{Route: "root/notifications"},
		},
		OnComplete: func(ctx context.Context, accessor intent.StoreAccessor) *intent.Batch {
			return intent.NewBatch(intent.NavigateTo("home", state.Params{}, true))
		},
		ClearPolicy: intent.ClearSpecific,
	})
	return reg
}

type model struct {
	store   *store.Store
	authed  bool
	status  string
	flowing bool
}

func newModel() model {
	authed := false
	tables, err := buildTables(&authed)
	if err != nil {
		panic(err)
	}
	st, err := store.New(tables,
		store.WithFlowRegistry(buildFlowRegistry()),
		store.WithErrorReporter(telemetry.NewConsoleReporter(false)),
	)
	if err != nil {
		panic(err)
	}
	return model{store: st, authed: authed}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.status = "navigating to settings..."
			return m, m.store.Cmd(context.Background(), intent.NewBatch(intent.NavigateTo("secure/settings", state.Params{}, false)))
		case "l":
			if m.store.CurrentState().PendingNavigation != nil {
				m.authed = true
				m.status = "signed in, resuming pending navigation..."
				return m, func() tea.Msg {
					outcome, err := m.store.ResumePendingNavigation(context.Background())
					return store.TransactionMsg{Outcome: outcome, Err: err}
				}
			}
			m.status = "starting onboarding flow..."
			m.flowing = true
			return m, m.flowCmd(m.store.StartGuidedFlow)
		case "n":
			if m.flowing {
				m.status = "advancing onboarding flow..."
				return m, m.flowCmd(m.store.NextStep)
			}
		case "b":
			m.status = "navigating home..."
			return m, m.store.Cmd(context.Background(), intent.NewBatch(intent.NavigateTo("home", state.Params{}, true)))
		}
	case store.TransactionMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("error: %v", msg.Err)
			return m, nil
		}
		m.status = fmt.Sprintf("outcome: %s", msg.Outcome.Kind)
		if m.store.CurrentState().ActiveGuidedFlow == nil {
			m.flowing = false
		}
		return m, m.store.EndTransitionAfter(3e8) // 300ms ANIMATING window
	case store.TransitionElapsedMsg:
		return m, nil
	}
	return m, nil
}

// flowCmd adapts a guided-flow method (StartGuidedFlow/NextStep, both
// taking a context and params) into a tea.Cmd.
func (m model) flowCmd(step func(context.Context, string, state.Params) (state.Outcome, error)) tea.Cmd {
	return func() tea.Msg {
		outcome, err := step(context.Background(), "onboarding", state.Params{})
		return store.TransactionMsg{Outcome: outcome, Err: err}
	}
}

func (m model) View() string {
	s := m.store.CurrentState()
	cur := s.Current()

	b := titleStyle.Render("navstate demo") + "\n\n"
	b += "current route: " + routeStyle.Render(cur.Destination.Name) + "\n"
	b += fmt.Sprintf("authed: %v   transition: %s   depth: %d\n", m.authed, s.TransitionState, s.NavigationDepth())

	if s.PendingNavigation != nil {
		b += pendStyle.Render(fmt.Sprintf("pending: %s (%s)", s.PendingNavigation.Route, s.PendingNavigation.DisplayHint)) + "\n"
	}
	if s.ActiveGuidedFlow != nil {
		b += fmt.Sprintf("guided flow %q: step %d/%d\n", s.ActiveGuidedFlow.FlowID, s.ActiveGuidedFlow.CurrentStep+1, s.ActiveGuidedFlow.TotalSteps)
	}
	if m.status != "" {
		b += "\n" + hintStyle.Render(m.status) + "\n"
	}

	b += "\n" + footerStyle.Render("[s] settings (guarded)  [l] sign in / start onboarding  [n] next step  [b] home  [q] quit")
	return b
}

func main() {
	p := tea.NewProgram(newModel())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "navdemo: ", err)
		os.Exit(1)
	}
}
