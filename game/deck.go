package game

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck is returned when drawing from an empty draw pile.
var ErrEmptyDeck = errors.New("draw pile is empty")

// Deck is either the full 52-card deck or one player's stack.
// The last element of the draw pile is the top card. Spoils hold
// cards won since the last shuffle.
type Deck struct {
	cards  []Card
	spoils []Card
}

// NewDeck returns all 52 cards in canonical order: ranks ascending,
// suits s, c, d, h within a rank.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Hearts; suit++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return &Deck{cards: cards}
}

// NewDeckFromCards builds a draw pile from cards, last card on top.
func NewDeckFromCards(cards ...Card) *Deck {
	pile := make([]Card, len(cards))
	copy(pile, cards)
	return &Deck{cards: pile}
}

// Shuffle merges any spoils into the draw pile and permutes it uniformly.
func (d *Deck) Shuffle(rng *rand.Rand) {
	if len(d.spoils) > 0 {
		d.cards = append(d.cards, d.spoils...)
		d.spoils = d.spoils[:0]
	}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Split shuffles the deck and hands the second half to a new Deck.
// The receiver keeps the first half.
func (d *Deck) Split(rng *rand.Rand) *Deck {
	d.Shuffle(rng)
	half := len(d.cards) / 2

	other := &Deck{cards: make([]Card, len(d.cards)-half)}
	copy(other.cards, d.cards[half:])
	d.cards = d.cards[:half:half]
	return other
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, nil
}

// AddToSpoils stores won cards until the next shuffle.
func (d *Deck) AddToSpoils(cards ...Card) {
	d.spoils = append(d.spoils, cards...)
}

// Len returns the number of cards in the draw pile.
func (d *Deck) Len() int { return len(d.cards) }

// SpoilsLen returns the number of cards waiting in spoils.
func (d *Deck) SpoilsLen() int { return len(d.spoils) }

// Size returns draw pile plus spoils.
func (d *Deck) Size() int { return len(d.cards) + len(d.spoils) }

// Cards returns a copy of the draw pile, bottom first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Spoils returns a copy of the spoils.
func (d *Deck) Spoils() []Card {
	out := make([]Card, len(d.spoils))
	copy(out, d.spoils)
	return out
}
