package game

// ReductionQueue is the fixed schedule of ranks removed from play under the
// reduction rule: four of each rank, lowest first. The position only moves
// forward, and only when a card is actually removed.
type ReductionQueue struct {
	ranks []Rank
	pos   int
}

// NewReductionQueue returns a fresh 52-entry schedule.
func NewReductionQueue() *ReductionQueue {
	ranks := make([]Rank, 0, DeckSize)
	for rank := Two; rank <= Ace; rank++ {
		for i := 0; i < NumSuits; i++ {
			ranks = append(ranks, rank)
		}
	}
	return &ReductionQueue{ranks: ranks}
}

// Front returns the next rank to remove, or false once exhausted.
func (q *ReductionQueue) Front() (Rank, bool) {
	if q.pos >= len(q.ranks) {
		return 0, false
	}
	return q.ranks[q.pos], true
}

// Pop advances past the front entry.
func (q *ReductionQueue) Pop() {
	if q.pos < len(q.ranks) {
		q.pos++
	}
}

// Position is the number of entries consumed so far.
func (q *ReductionQueue) Position() int { return q.pos }

// Remaining is the number of entries left.
func (q *ReductionQueue) Remaining() int { return len(q.ranks) - q.pos }

// reduce removes at most one card matching the front rank from pile.
// A pile without a match leaves the queue where it is; the schedule can
// stall on a rank that never reappears.
func (q *ReductionQueue) reduce(pile []Card) ([]Card, bool) {
	front, ok := q.Front()
	if !ok {
		return pile, false
	}
	for i, card := range pile {
		if card.Rank == front {
			q.Pop()
			return append(pile[:i], pile[i+1:]...), true
		}
	}
	return pile, false
}
