package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/speed/internal/deck"
	"github.com/lox/speed/internal/game"
)

// Options configures the terminal UI
type Options struct {
	// ComputerDelay makes the computer move on its own at this interval.
	// Zero leaves the computer to the "2" menu command.
	ComputerDelay time.Duration
	Clock         quartz.Clock
	TestMode      bool
}

// Model is the Bubble Tea model for a game of Speed
type Model struct {
	game          *game.Game
	logger        *log.Logger
	clock         quartz.Clock
	computerDelay time.Duration

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// computerTickMsg fires when the computer is due to move in auto-play
type computerTickMsg struct{}

// NewModel deals a new game with gameOpts and wraps it in a UI model. The
// model subscribes to the game's events to fill its log.
func NewModel(logger *log.Logger, opts Options, gameOpts ...game.Option) (*Model, error) {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		logger:        logger.WithPrefix("tui"),
		clock:         opts.Clock,
		computerDelay: opts.ComputerDelay,
		logViewport:   vp,
		input:         ti,
		focusedPane:   1,
		testMode:      opts.TestMode,
	}

	bus := game.NewEventBus()
	bus.Subscribe(m)

	allOpts := []game.Option{game.WithClock(opts.Clock), game.WithLogger(logger)}
	allOpts = append(allOpts, gameOpts...)
	allOpts = append(allOpts, game.WithEventBus(bus))
	g, err := game.New(allOpts...)
	if err != nil {
		return nil, err
	}
	m.game = g
	m.logger = m.logger.With("game", g.ID())
	m.AddLogEntry(InfoStyle.Render("Type help for commands"))
	return m, nil
}

// Game returns the game being played
func (m *Model) Game() *game.Game {
	return m.game
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	if m.computerDelay > 0 {
		return tea.Batch(textinput.Blink, m.scheduleComputer())
	}
	return textinput.Blink
}

func (m *Model) scheduleComputer() tea.Cmd {
	clock, delay := m.clock, m.computerDelay
	return func() tea.Msg {
		timer := clock.NewTimer(delay, "tui", "computer")
		<-timer.C
		return computerTickMsg{}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case computerTickMsg:
		if m.game.IsOver() {
			return m, nil
		}
		m.autoComputerMove()
		if m.game.IsOver() {
			return m, nil
		}
		return m, m.scheduleComputer()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				cmd := m.HandleInput(m.input.Value())
				m.input.SetValue("")
				if cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(m.renderLogPane())
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

func (m *Model) renderSidebarPane() string {
	var content strings.Builder
	g := m.game

	content.WriteString(HeaderStyle.Render(" SPEED "))
	content.WriteString("\n\n")

	left, right := g.MiddleCards()
	piles := lipgloss.JoinHorizontal(lipgloss.Top,
		PileStyle.Render(formatCard(left)),
		" ",
		PileStyle.Render(formatCard(right)))
	content.WriteString(piles)
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render("  left    right"))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("Computer: %d cards\n", g.CardsLeft(game.Computer)))
	content.WriteString(fmt.Sprintf("You: %d cards (%d in reserve)\n",
		g.CardsLeft(game.Human), g.ReserveSize(game.Human)))
	content.WriteString(InfoStyle.Render(fmt.Sprintf("Plays: %d  Burns: %d", g.Turns(), g.Burns())))
	return content.String()
}

func (m *Model) renderActionPane() string {
	var content strings.Builder

	content.WriteString(HandInfoStyle.Render("Hand: "))
	content.WriteString(formatHand(m.game.ActiveHand(game.Human)))
	content.WriteString("\n")
	content.WriteString(m.renderPrompt())
	content.WriteString("\n")

	m.input.Placeholder = m.placeholder()
	content.WriteString(m.input.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

func (m *Model) renderPrompt() string {
	switch phase := m.game.Phase(); phase {
	case game.AwaitingMenuChoice:
		labels := make([]string, 0, len(game.MenuChoices))
		for _, choice := range game.MenuChoices {
			labels = append(labels, fmt.Sprintf("[%d] %s", int(choice), choice))
		}
		return ActionsStyle.Render(strings.Join(labels, "  "))
	case game.AwaitingCardLeft, game.AwaitingCardRight:
		side := game.Left
		if phase == game.AwaitingCardRight {
			side = game.Right
		}
		return ActionsStyle.Render(fmt.Sprintf("Which card for the %s pile? (0-%d, b to go back)",
			side, len(m.game.ActiveHand(game.Human))-1))
	default:
		return SuccessStyle.Render("Game over")
	}
}

func (m *Model) placeholder() string {
	switch m.game.Phase() {
	case game.AwaitingMenuChoice:
		return "0-3"
	case game.AwaitingCardLeft, game.AwaitingCardRight:
		return "card number"
	default:
		return "Enter to exit"
	}
}

// OnEvent renders game events into the log
func (m *Model) OnEvent(event game.GameEvent) {
	text := game.FormatEvent(event)
	switch event.(type) {
	case game.PlacementRejectedEvent:
		m.addStyledEntry(ErrorStyle, text)
	case game.ForcedBurnEvent:
		m.addStyledEntry(WarningStyle, text)
	case game.GameOverEvent:
		m.addStyledEntry(SuccessStyle, text)
	default:
		m.AddLogEntry(text)
	}
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.appendEntry(entry, entry)
}

func (m *Model) addStyledEntry(style lipgloss.Style, text string) {
	m.appendEntry(style.Render(text), text)
}

func (m *Model) appendEntry(rendered, plain string) {
	m.gameLog = append(m.gameLog, rendered)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, plain)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// GetCapturedLog returns the captured log entries without styling (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}

// Quitting reports whether the model has asked the program to exit
func (m *Model) Quitting() bool {
	return m.quitting
}

func formatCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.Short())
	}
	return BlackCardStyle.Render(c.Short())
}

func formatHand(cards []deck.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("(empty)")
	}
	parts := make([]string, 0, len(cards))
	for i, c := range cards {
		parts = append(parts, fmt.Sprintf("%d:%s", i, formatCard(c)))
	}
	return strings.Join(parts, "  ")
}

// Run starts the Bubble Tea program on the alternate screen and blocks until
// the player exits
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
