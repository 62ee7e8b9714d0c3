package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidRules is returned by Rules.Validate.
var ErrInvalidRules = errors.New("invalid war rules")

// Rules configures one game of War
type Rules struct {
	WarDeposit int  // Cards each player adds face down per escalation
	Reduction  bool // Remove scheduled ranks from play as rounds resolve
	MaxFlips   int  // Safety cap, 0 = unlimited
}

// DefaultRules is stock War: one card down per tie, no reduction.
func DefaultRules() Rules {
	return Rules{WarDeposit: 1}
}

// Validate checks the rules are playable.
func (r Rules) Validate() error {
	if r.WarDeposit < 1 {
		return fmt.Errorf("%w: war deposit must be positive, got %d", ErrInvalidRules, r.WarDeposit)
	}
	if r.MaxFlips < 0 {
		return fmt.Errorf("%w: max flips must not be negative, got %d", ErrInvalidRules, r.MaxFlips)
	}
	return nil
}

// Phase tracks where a game is within a round.
type Phase uint8

const (
	PhaseAwaitingFlip Phase = iota
	PhaseComparing
	PhaseWarEscalating
	PhaseResolved
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingFlip:
		return "awaiting_flip"
	case PhaseComparing:
		return "comparing"
	case PhaseWarEscalating:
		return "war_escalating"
	case PhaseResolved:
		return "resolved"
	case PhaseTerminated:
		return "terminated"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// WarGame represents the game state for War
type WarGame struct {
	Player1 *Deck
	Player2 *Deck
	Rules   Rules
	Phase   Phase

	Flips       int // Lockstep flips, one card from each player
	Rounds      int // Resolved rounds
	Wars        int // Tie escalations across the game
	MaxWarDepth int
	Removed     int // Cards taken out by the reduction rule
	Capped      bool

	queue *ReductionQueue
	rng   *rand.Rand
	pile  []Card
	loser int
}

// RoundOutcome describes one top-level round
type RoundOutcome struct {
	Winner     int // 1 or 2, 0 if the round was abandoned
	PileSize   int // Cards awarded to the winner
	WarDepth   int
	Removed    bool
	Terminated bool
}

// WarResult contains game outcome
type WarResult struct {
	Winner      int // Player left holding cards, 0 when capped
	Flips       int
	Rounds      int
	Wars        int
	MaxWarDepth int
	Removed     int
	Capped      bool
}

// NewWarGame deals a freshly shuffled deck between two players.
func NewWarGame(rules Rules, seed int64) *WarGame {
	rng := rand.New(rand.NewSource(seed))
	player1 := NewDeck()
	player2 := player1.Split(rng)
	return NewWarGameFromDecks(rules, player1, player2, rng)
}

// NewWarGameFromDecks starts a game from prepared stacks.
func NewWarGameFromDecks(rules Rules, player1, player2 *Deck, rng *rand.Rand) *WarGame {
	return &WarGame{
		Player1: player1,
		Player2: player2,
		Rules:   rules,
		Phase:   PhaseAwaitingFlip,
		queue:   NewReductionQueue(),
		rng:     rng,
		pile:    make([]Card, 0, DeckSize),
	}
}

// Queue exposes the reduction schedule.
func (g *WarGame) Queue() *ReductionQueue { return g.queue }

// TotalCards counts both players' cards. Between rounds it equals
// DeckSize minus the cards removed by reduction.
func (g *WarGame) TotalCards() int {
	return g.Player1.Size() + g.Player2.Size()
}

// IsGameOver checks if game has ended
func (g *WarGame) IsGameOver() bool {
	return g.Phase == PhaseTerminated
}

// draw takes the top card, reshuffling spoils into an empty pile first.
func (g *WarGame) draw(d *Deck) (Card, bool) {
	card, err := d.Draw()
	if errors.Is(err, ErrEmptyDeck) {
		d.Shuffle(g.rng)
		card, err = d.Draw()
	}
	return card, err == nil
}

// refill reshuffles an empty draw pile from spoils. It reports false,
// recording the loser, when a player has nothing left to refill from.
func (g *WarGame) refill() bool {
	for i, d := range []*Deck{g.Player1, g.Player2} {
		if d.Len() > 0 {
			continue
		}
		d.Shuffle(g.rng)
		if d.Len() == 0 {
			g.loser = i + 1
			return false
		}
	}
	return true
}

// flip turns one card from each player.
func (g *WarGame) flip() (Card, Card, bool) {
	if g.Rules.MaxFlips > 0 && g.Flips >= g.Rules.MaxFlips {
		g.Capped = true
		return Card{}, Card{}, false
	}
	c1, ok := g.draw(g.Player1)
	if !ok {
		g.loser = 1
		return Card{}, Card{}, false
	}
	c2, ok := g.draw(g.Player2)
	if !ok {
		g.loser = 2
		return Card{}, Card{}, false
	}
	g.Flips++
	return c1, c2, true
}

// resolve plays flips until the comparison cards differ. It returns the
// round winner and the pile at stake, or false if a player ran out.
func (g *WarGame) resolve() (winner int, pile []Card, depth int, ok bool) {
	g.Phase = PhaseAwaitingFlip
	c1, c2, ok := g.flip()
	if !ok {
		return 0, nil, 0, false
	}
	pile = append(g.pile[:0], c1, c2)
	g.Phase = PhaseComparing

	for c1.Rank == c2.Rank {
		g.Phase = PhaseWarEscalating
		depth++
		for i := 0; i < g.Rules.WarDeposit; i++ {
			d1, d2, ok := g.flip()
			if !ok {
				return 0, nil, depth, false
			}
			pile = append(pile, d1, d2)
		}
		if c1, c2, ok = g.flip(); !ok {
			return 0, nil, depth, false
		}
		pile = append(pile, c1, c2)
		g.Phase = PhaseComparing
	}

	if c1.Rank > c2.Rank {
		return 1, pile, depth, true
	}
	return 2, pile, depth, true
}

// PlayRound plays one round, including any wars it triggers.
func (g *WarGame) PlayRound() RoundOutcome {
	if g.Phase == PhaseTerminated {
		return RoundOutcome{Terminated: true}
	}

	winner, pile, depth, ok := g.resolve()
	g.Wars += depth
	if depth > g.MaxWarDepth {
		g.MaxWarDepth = depth
	}
	// Both players must be able to continue before the pile is paid out.
	// A player who spent their last card ends the game here and the pile
	// leaves play.
	if !ok || !g.refill() {
		g.Phase = PhaseTerminated
		return RoundOutcome{WarDepth: depth, Terminated: true}
	}

	removed := false
	if g.Rules.Reduction {
		pile, removed = g.queue.reduce(pile)
		if removed {
			g.Removed++
		}
	}

	if winner == 1 {
		g.Player1.AddToSpoils(pile...)
	} else {
		g.Player2.AddToSpoils(pile...)
	}
	g.pile = pile[:0]
	g.Rounds++
	g.Phase = PhaseResolved

	return RoundOutcome{
		Winner:   winner,
		PileSize: len(pile),
		WarDepth: depth,
		Removed:  removed,
	}
}

// Play runs the game until a player cannot refill an empty pile.
func (g *WarGame) Play() WarResult {
	for !g.IsGameOver() {
		g.PlayRound()
	}
	return g.Result()
}

// Result summarizes the game so far.
func (g *WarGame) Result() WarResult {
	winner := 0
	switch g.loser {
	case 1:
		winner = 2
	case 2:
		winner = 1
	}
	return WarResult{
		Winner:      winner,
		Flips:       g.Flips,
		Rounds:      g.Rounds,
		Wars:        g.Wars,
		MaxWarDepth: g.MaxWarDepth,
		Removed:     g.Removed,
		Capped:      g.Capped,
	}
}

// PlayWarGame plays a complete game
func PlayWarGame(rules Rules, seed int64) WarResult {
	return NewWarGame(rules, seed).Play()
}
