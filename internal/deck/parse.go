package deck

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseCard parses a compact card such as "A♠", "as", "10h" or "Td"
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	suitRune, size := utf8.DecodeLastRuneInString(s)
	suit, err := parseSuit(suitRune)
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}

	rank, err := parseRank(s[:len(s)-size])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}

	return NewCard(suit, rank), nil
}

// ParseCards parses a list of cards separated by spaces or commas
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 'c', 'C', '♣':
		return Clubs, nil
	case 'h', 'H', '♥':
		return Hearts, nil
	case 's', 'S', '♠':
		return Spades, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	default:
		return 0, fmt.Errorf("invalid suit %q", r)
	}
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A", "1":
		return Ace, nil
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	default:
		return 0, fmt.Errorf("invalid rank %q", s)
	}
}
