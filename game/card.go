package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Rank is the face value of a card. Aces are high.
type Rank uint8

const (
	Two   Rank = 2
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Suit has no effect on play.
type Suit uint8

const (
	Spades Suit = iota
	Clubs
	Diamonds
	Hearts
)

// NumSuits and NumRanks describe a standard deck.
const (
	NumSuits = 4
	NumRanks = 13
	DeckSize = NumSuits * NumRanks
)

var suitLetters = [NumSuits]string{"s", "c", "d", "h"}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// String renders a card as value-suit, e.g. "10-s" or "q-h".
func (c Card) String() string {
	var value string
	switch c.Rank {
	case Jack:
		value = "j"
	case Queen:
		value = "q"
	case King:
		value = "k"
	case Ace:
		value = "a"
	default:
		value = strconv.Itoa(int(c.Rank))
	}
	suit := "?"
	if int(c.Suit) < NumSuits {
		suit = suitLetters[c.Suit]
	}
	return value + "-" + suit
}

// ParseCard is the inverse of Card.String.
func ParseCard(s string) (Card, error) {
	value, suit, ok := strings.Cut(strings.ToLower(s), "-")
	if !ok {
		return Card{}, fmt.Errorf("invalid card %q: missing separator", s)
	}

	var rank Rank
	switch value {
	case "j":
		rank = Jack
	case "q":
		rank = Queen
	case "k":
		rank = King
	case "a":
		rank = Ace
	default:
		n, err := strconv.Atoi(value)
		if err != nil || n < int(Two) || n > 10 {
			return Card{}, fmt.Errorf("invalid card %q: bad value", s)
		}
		rank = Rank(n)
	}

	for i, letter := range suitLetters {
		if letter == suit {
			return Card{Rank: rank, Suit: Suit(i)}, nil
		}
	}
	return Card{}, fmt.Errorf("invalid card %q: bad suit", s)
}
