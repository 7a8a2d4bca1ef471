package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/speed/internal/game"
)

// commandHandler handles a word command typed at any prompt
type commandHandler func(m *Model) tea.Cmd

var commands = map[string]commandHandler{
	"help":    (*Model).handleHelp,
	"?":       (*Model).handleHelp,
	"hand":    (*Model).handleShowHand,
	"history": (*Model).handleHistory,
	"b":       (*Model).handleBack,
	"back":    (*Model).handleBack,
	"q":       (*Model).handleQuit,
	"quit":    (*Model).handleQuit,
}

// HandleInput processes one line typed by the player. Numbers answer the
// current prompt; words are commands available at any time.
func (m *Model) HandleInput(input string) tea.Cmd {
	input = strings.TrimSpace(input)

	if m.game.IsOver() {
		m.quitting = true
		return tea.Quit
	}

	if handler, ok := commands[strings.ToLower(input)]; ok {
		return handler(m)
	}

	switch m.game.Phase() {
	case game.AwaitingCardLeft, game.AwaitingCardRight:
		return m.handleCard(input)
	default:
		return m.handleMenu(input)
	}
}

func (m *Model) handleMenu(input string) tea.Cmd {
	choice, err := game.ParseMenuChoice(input)
	if err != nil {
		m.showError(fmt.Errorf("%w (enter 0-3, or help)", err))
		return nil
	}

	out, err := m.game.SubmitMenuChoice(choice)
	if err != nil {
		m.showError(err)
		return nil
	}

	switch out.Kind {
	case game.OutcomeAwaitingCard:
		m.logger.Debug("Pile chosen", "pile", out.Pile)
	case game.OutcomeExited:
		m.AddLogEntry("Goodbye!")
		m.quitting = true
		return tea.Quit
	}
	return m.afterMove()
}

func (m *Model) handleCard(input string) tea.Cmd {
	index, err := game.ParseCardChoice(input)
	if err != nil {
		m.showError(err)
		return nil
	}

	if _, err := m.game.SubmitCardChoice(index); err != nil {
		// rejected placements are already in the log via the event bus
		if !errors.Is(err, game.ErrIllegalPlacement) {
			m.showError(err)
		}
		return nil
	}
	return m.afterMove()
}

// autoComputerMove makes the computer's timed move. It holds back while only
// the player can play so the log is not flooded with passes, and keeps any
// pile the player had already chosen.
func (m *Model) autoComputerMove() {
	g := m.game
	if len(g.Playable(game.Computer)) == 0 && len(g.Playable(game.Human)) > 0 {
		return
	}

	pending := g.Phase()
	if _, err := g.ComputerTurn(); err != nil {
		m.showError(err)
		return
	}
	if !g.IsOver() {
		switch pending {
		case game.AwaitingCardLeft:
			_, _ = g.SubmitMenuChoice(game.ChooseLeft)
		case game.AwaitingCardRight:
			_, _ = g.SubmitMenuChoice(game.ChooseRight)
		}
	}
	m.afterMove()
}

func (m *Model) afterMove() tea.Cmd {
	winner, ok := m.game.Winner()
	if !ok {
		return nil
	}
	if winner == game.Human {
		m.addStyledEntry(SuccessStyle, "You win! Press Enter to exit.")
	} else {
		m.addStyledEntry(ErrorStyle, "The computer wins. Press Enter to exit.")
	}
	m.logger.Info("Game finished", "winner", winner, "turns", m.game.Turns())
	return nil
}

func (m *Model) showError(err error) {
	m.logger.Debug("Command failed", "error", err)
	m.addStyledEntry(ErrorStyle, err.Error())
}

func (m *Model) handleHelp() tea.Cmd {
	m.AddLogEntry("Play a card one rank above or below a pile's top card. Ace and King are neighbours.")
	m.AddLogEntry("  0 / 1   choose the left / right pile, then enter a card number")
	m.AddLogEntry("  2       let the computer move")
	m.AddLogEntry("  3       exit")
	m.AddLogEntry("  b       go back to the menu after choosing a pile")
	m.AddLogEntry("  hand    show your hand")
	m.AddLogEntry("  history show every move so far")
	return nil
}

func (m *Model) handleShowHand() tea.Cmd {
	hand := m.game.ActiveHand(game.Human)
	parts := make([]string, 0, len(hand))
	for i, c := range hand {
		parts = append(parts, fmt.Sprintf("%d:%s", i, c.Short()))
	}
	m.AddLogEntry(fmt.Sprintf("Your hand: %s (%d in reserve)",
		strings.Join(parts, " "), m.game.ReserveSize(game.Human)))
	return nil
}

func (m *Model) handleHistory() tea.Cmd {
	history := m.game.History()
	if len(history) == 0 {
		m.AddLogEntry("No moves yet")
		return nil
	}
	for _, record := range history {
		m.AddLogEntry(record.String())
	}
	return nil
}

func (m *Model) handleBack() tea.Cmd {
	m.game.CancelCardChoice()
	return nil
}

func (m *Model) handleQuit() tea.Cmd {
	_, _ = m.game.SubmitMenuChoice(game.Exit)
	m.quitting = true
	return tea.Quit
}
