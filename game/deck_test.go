package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck()

	if d.Len() != DeckSize {
		t.Fatalf("deck has %d cards, want %d", d.Len(), DeckSize)
	}
	if d.SpoilsLen() != 0 {
		t.Errorf("new deck has %d spoils, want 0", d.SpoilsLen())
	}

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		if seen[c] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}

	cards := d.Cards()
	if cards[0] != (Card{Rank: Two, Suit: Spades}) {
		t.Errorf("first card = %s, want 2-s", cards[0])
	}
	if cards[DeckSize-1] != (Card{Rank: Ace, Suit: Hearts}) {
		t.Errorf("last card = %s, want a-h", cards[DeckSize-1])
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		d := NewDeck()
		d.Shuffle(rng)

		if d.Len() != DeckSize {
			t.Fatalf("shuffled deck has %d cards", d.Len())
		}
		counts := make(map[Card]int)
		for _, c := range d.Cards() {
			counts[c]++
		}
		for _, c := range NewDeck().Cards() {
			if counts[c] != 1 {
				t.Fatalf("card %s appears %d times after shuffle", c, counts[c])
			}
		}
	}
}

func TestShuffleMergesSpoils(t *testing.T) {
	d := NewDeckFromCards(Card{Rank: 5, Suit: Clubs})
	d.AddToSpoils(Card{Rank: 9, Suit: Hearts}, Card{Rank: Ace, Suit: Spades})

	d.Shuffle(rand.New(rand.NewSource(1)))

	if d.Len() != 3 || d.SpoilsLen() != 0 {
		t.Errorf("after shuffle pile=%d spoils=%d, want 3 and 0", d.Len(), d.SpoilsLen())
	}
}

func TestShuffleTopCardSpread(t *testing.T) {
	// Every card should reach the top at least once over many shuffles.
	rng := rand.New(rand.NewSource(99))
	tops := make(map[Card]int)
	for i := 0; i < 5000; i++ {
		d := NewDeck()
		d.Shuffle(rng)
		top, _ := d.Draw()
		tops[top]++
	}
	if len(tops) != DeckSize {
		t.Errorf("only %d distinct top cards over 5000 shuffles", len(tops))
	}
}

func TestSplit(t *testing.T) {
	d := NewDeck()
	other := d.Split(rand.New(rand.NewSource(3)))

	if d.Len() != 26 || other.Len() != 26 {
		t.Fatalf("split sizes = %d/%d, want 26/26", d.Len(), other.Len())
	}

	seen := make(map[Card]bool)
	for _, c := range append(d.Cards(), other.Cards()...) {
		if seen[c] {
			t.Errorf("card %s in both halves", c)
		}
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Errorf("halves hold %d distinct cards, want %d", len(seen), DeckSize)
	}
}

func TestDraw(t *testing.T) {
	bottom := Card{Rank: 3, Suit: Diamonds}
	top := Card{Rank: King, Suit: Spades}
	d := NewDeckFromCards(bottom, top)

	c, err := d.Draw()
	if err != nil || c != top {
		t.Errorf("Draw() = %s, %v; want %s", c, err, top)
	}
	c, err = d.Draw()
	if err != nil || c != bottom {
		t.Errorf("Draw() = %s, %v; want %s", c, err, bottom)
	}
	if _, err = d.Draw(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("Draw() on empty pile err = %v, want ErrEmptyDeck", err)
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{Card{Rank: 2, Suit: Spades}, "2-s"},
		{Card{Rank: 10, Suit: Clubs}, "10-c"},
		{Card{Rank: Jack, Suit: Diamonds}, "j-d"},
		{Card{Rank: Queen, Suit: Hearts}, "q-h"},
		{Card{Rank: King, Suit: Spades}, "k-s"},
		{Card{Rank: Ace, Suit: Clubs}, "a-c"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.card, got, tt.want)
		}
		parsed, err := ParseCard(tt.want)
		if err != nil || parsed != tt.card {
			t.Errorf("ParseCard(%q) = %v, %v", tt.want, parsed, err)
		}
	}

	for _, bad := range []string{"", "11-s", "1-s", "a-x", "ks"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}
