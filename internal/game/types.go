package game

import "fmt"

// Seat identifies one of the two sides at the table
type Seat int

const (
	Human Seat = iota
	Computer
)

// String returns the display name of the seat
func (s Seat) String() string {
	switch s {
	case Human:
		return "Player"
	case Computer:
		return "Computer"
	default:
		return "Unknown"
	}
}

// Opponent returns the other seat
func (s Seat) Opponent() Seat {
	if s == Human {
		return Computer
	}
	return Human
}

// PileSide identifies one of the two center piles
type PileSide int

const (
	Left PileSide = iota
	Right
)

// String returns the string representation of the pile side
func (p PileSide) String() string {
	switch p {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Phase is the state of the game's turn state machine
type Phase int

const (
	AwaitingMenuChoice Phase = iota
	AwaitingCardLeft
	AwaitingCardRight
	PlayerWon
	ComputerWon
	Exited
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case AwaitingMenuChoice:
		return "awaiting menu choice"
	case AwaitingCardLeft:
		return "awaiting card for left pile"
	case AwaitingCardRight:
		return "awaiting card for right pile"
	case PlayerWon:
		return "player won"
	case ComputerWon:
		return "computer won"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further moves can be made
func (p Phase) IsTerminal() bool {
	return p == PlayerWon || p == ComputerWon || p == Exited
}

// MenuChoice is a top-level command from the terminal menu
type MenuChoice int

const (
	ChooseLeft   MenuChoice = 0
	ChooseRight  MenuChoice = 1
	ComputerMove MenuChoice = 2
	Exit         MenuChoice = 3
)

// String returns the menu label for the choice
func (m MenuChoice) String() string {
	switch m {
	case ChooseLeft:
		return "Play on left pile"
	case ChooseRight:
		return "Play on right pile"
	case ComputerMove:
		return "Let computer move"
	case Exit:
		return "Exit"
	default:
		return fmt.Sprintf("MenuChoice(%d)", int(m))
	}
}

// MenuChoices lists the valid menu choices in display order
var MenuChoices = []MenuChoice{ChooseLeft, ChooseRight, ComputerMove, Exit}

// ChoiceFor returns the menu choice that targets side
func ChoiceFor(side PileSide) MenuChoice {
	if side == Right {
		return ChooseRight
	}
	return ChooseLeft
}
