// Package tui is the terminal front-end for a trainer session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/deck"
	"github.com/lox/tripledraw/internal/drill"
	"github.com/lox/tripledraw/internal/strategy"
	"github.com/lox/tripledraw/internal/trainer"
)

const sidebarWidth = 28

// Model is the Bubble Tea model for a practice session
type Model struct {
	session *trainer.Session
	logger  *log.Logger
	reload  func() (*strategy.Set, error)

	history  viewport.Model
	entries  []string
	feedback *trainer.Feedback
	status   string
	err      error

	width    int
	height   int
	quitting bool
}

// New creates a model over an existing session
func New(session *trainer.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")
	return &Model{
		session: session,
		logger:  logger.WithPrefix("tui"),
		history: vp,
	}
}

// WithReload enables the l key, which swaps in the set returned by fn
func (m *Model) WithReload(fn func() (*strategy.Set, error)) *Model {
	m.reload = fn
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Err returns the error that stopped the session, if any
func (m *Model) Err() error {
	return m.err
}

// History returns the decision log, oldest first
func (m *Model) History() []string {
	return m.entries
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "r", "f":
			m.answer(msg.String())
		case "enter", " ", "n":
			m.next()
		case "d":
			m.startDrill()
		case "x":
			m.exitDrill()
		case "l":
			m.reloadStrategy()
		default:
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		}
		if m.err != nil {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) answer(key string) {
	if m.session.Answered() {
		m.status = "Press enter for the next hand"
		return
	}
	action, err := classifier.ParseAction(key)
	if err != nil {
		m.status = err.Error()
		return
	}
	fb, err := m.session.RecordAction(action)
	if err != nil {
		m.err = err
		return
	}
	m.feedback = &fb
	m.status = ""

	verdict := SuccessStyle.Render("✓")
	if !fb.Correct {
		verdict = ErrorStyle.Render("✗")
	}
	prefix := ""
	if fb.Deal.Drill {
		prefix = "[drill] "
	}
	m.addEntry(fmt.Sprintf("%s %s%s %s: %s → %s (%s)", verdict, prefix, fb.Deal.Position,
		fb.Deal.Hand.Notation(), fb.Chosen, fb.Result.Action, fb.Result.Category))
}

func (m *Model) next() {
	if !m.session.Answered() {
		m.status = "Choose r (raise) or f (fold) first"
		return
	}
	wasDrilling := m.session.State().Mode == drill.DrillActive
	if err := m.session.Next(); err != nil {
		m.err = err
		return
	}
	m.feedback = nil
	st := m.session.State()
	if wasDrilling && st.Mode == drill.Learning {
		m.status = fmt.Sprintf("Drill complete: %d/%d correct", st.LastReview.Correct, st.LastReview.Reviewed)
		m.addEntry(InfoStyle.Render(m.status))
	} else {
		m.status = ""
	}
}

func (m *Model) startDrill() {
	ok, err := m.session.StartDrill()
	if err != nil {
		m.err = err
		return
	}
	if !ok {
		m.status = "No mistakes to drill yet"
		return
	}
	m.feedback = nil
	m.status = fmt.Sprintf("Drilling %d mistakes", len(m.session.State().Drill.Pool))
	m.addEntry(InfoStyle.Render(m.status))
}

func (m *Model) exitDrill() {
	if m.session.State().Mode != drill.DrillActive {
		return
	}
	if err := m.session.ExitDrill(); err != nil {
		m.err = err
		return
	}
	m.feedback = nil
	m.status = "Left drill mode"
}

func (m *Model) reloadStrategy() {
	if m.reload == nil {
		return
	}
	set, err := m.reload()
	if err == nil {
		err = m.session.ReloadStrategy(set)
	}
	if err != nil {
		m.logger.Warn("Strategy reload failed", "error", err)
		m.status = "Reload failed: " + err.Error()
		return
	}
	m.status = "Loaded strategy " + set.Name
	m.addEntry(InfoStyle.Render(m.status))
}

func (m *Model) addEntry(entry string) {
	m.entries = append(m.entries, entry)
	m.history.SetContent(strings.Join(m.entries, "\n"))
	m.history.GotoBottom()
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	main := m.renderMain()
	mainWidth := max(m.width-sidebarWidth-4, 1)
	mainPane := PaneStyle.Width(mainWidth).Render(main)

	sidebar := PaneStyle.Width(sidebarWidth).Height(max(lipgloss.Height(mainPane)-2, 1)).Render(m.renderSidebar())
	top := lipgloss.JoinHorizontal(lipgloss.Top, mainPane, sidebar)

	m.history.Width = max(m.width-2, 1)
	m.history.Height = max(m.height-lipgloss.Height(top)-3, 1)
	historyPane := PaneStyle.Width(m.width - 2).Render(m.history.View())

	return lipgloss.JoinVertical(lipgloss.Left, top, historyPane,
		InfoStyle.Render("r raise • f fold • enter next • d drill • x exit drill • l reload • q quit"))
}

func (m *Model) renderMain() string {
	var b strings.Builder
	deal := m.session.Current()

	if deal.Drill {
		b.WriteString(DrillHeaderStyle.Render(fmt.Sprintf("DRILL %d/%d", deal.DrillIndex+1, deal.DrillSize)))
	} else {
		b.WriteString(HeaderStyle.Render("2-7 TRIPLE DRAW"))
	}
	b.WriteString("\n\n")
	b.WriteString(HandInfoStyle.Render("Position: " + deal.Position))
	b.WriteString("\n\n")
	b.WriteString(formatHand(deal.Hand))
	b.WriteString("\n\n")

	if fb := m.feedback; fb != nil {
		if fb.Correct {
			b.WriteString(SuccessStyle.Render("Correct: " + fb.Result.Action.String()))
		} else {
			b.WriteString(ErrorStyle.Render(fmt.Sprintf("Wrong: you chose %s, correct is %s", fb.Chosen, fb.Result.Action)))
		}
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fb.Result.Category))
		b.WriteString("\n")
		b.WriteString(fb.Result.Explanation)
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("rule: " + fb.Result.Rule))
	} else {
		b.WriteString("Raise or fold?")
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(WarningStyle.Render(m.status))
	}
	return b.String()
}

func (m *Model) renderSidebar() string {
	st := m.session.State()
	var b strings.Builder
	b.WriteString(HandInfoStyle.Render("Score"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Hands:    %d\n", st.Score.Played)
	fmt.Fprintf(&b, "Correct:  %d\n", st.Score.Correct)
	fmt.Fprintf(&b, "Mistakes: %d\n", len(st.Mistakes))
	if st.Mode == drill.DrillActive {
		b.WriteString("\n")
		b.WriteString(HandInfoStyle.Render("Drill"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Reviewed: %d\n", st.Drill.Review.Reviewed)
		fmt.Fprintf(&b, "Correct:  %d\n", st.Drill.Review.Correct)
	} else if st.HasLastReview {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Last drill: %d/%d", st.LastReview.Correct, st.LastReview.Reviewed)))
	}
	return b.String()
}

func formatHand(h deck.Hand) string {
	cards := make([]string, 0, deck.HandSize)
	for _, c := range h {
		if c.IsRed() {
			cards = append(cards, RedCardStyle.Render(c.String()))
		} else {
			cards = append(cards, BlackCardStyle.Render(c.String()))
		}
	}
	return strings.Join(cards, " ")
}
