package sevenhandpoker

import "sort"

// Card is a two-character code: rank then suit, e.g. "AS" (ace of
// spades), "TD" (ten of diamonds).
type Card string

const (
	rankOrder = "23456789TJQKA"
	suitOrder = "SHDC"
)

// NewDeck returns all 52 cards in canonical order.
func NewDeck() []Card {
	deck := make([]Card, 0, len(rankOrder)*len(suitOrder))
	for _, s := range suitOrder {
		for _, r := range rankOrder {
			deck = append(deck, Card(string(r)+string(s)))
		}
	}
	return deck
}

// IsValid reports whether c is a well-formed card code.
func (c Card) IsValid() bool {
	return len(c) == 2 && rankValue(c) > 0 && suitIndex(c) >= 0
}

// rankValue maps a card's rank to 2..14 (ace high), or -1 when malformed.
func rankValue(c Card) int {
	if len(c) != 2 {
		return -1
	}
	for i := 0; i < len(rankOrder); i++ {
		if rankOrder[i] == c[0] {
			return i + 2
		}
	}
	return -1
}

func suitIndex(c Card) int {
	if len(c) != 2 {
		return -1
	}
	for i := 0; i < len(suitOrder); i++ {
		if suitOrder[i] == c[1] {
			return i
		}
	}
	return -1
}

// Hand categories from weakest to strongest. Straights and flushes need a
// full five-card hand; the other categories apply to any hand size.
const (
	categoryHighCard = iota
	categoryPair
	categoryTwoPair
	categoryThreeOfAKind
	categoryStraight
	categoryFlush
	categoryFullHouse
	categoryFourOfAKind
	categoryStraightFlush
)

// handRank is a comparable summary of a hand: its category plus the rank
// tiebreaks in decreasing significance.
type handRank struct {
	category int
	tiebreak []int
}

// rankGroup is a set of equal-ranked cards within a hand.
type rankGroup struct{ count, rank int }

// evaluate summarizes a hand of 1..5 cards.
func evaluate(cards []Card) handRank {
	counts := make(map[int]int, len(cards))
	for _, c := range cards {
		counts[rankValue(c)]++
	}

	// Group ranks by multiplicity, strongest group first.
	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{count: count, rank: rank})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	flush := isFlush(cards)
	straightHigh := straightHighCard(cards)

	switch {
	case flush && straightHigh > 0:
		return handRank{category: categoryStraightFlush, tiebreak: []int{straightHigh}}
	case groups[0].count == 4:
		return handRank{category: categoryFourOfAKind, tiebreak: groupRanks(groups)}
	case groups[0].count == 3 && len(groups) > 1 && groups[1].count == 2:
		return handRank{category: categoryFullHouse, tiebreak: groupRanks(groups)}
	case flush:
		return handRank{category: categoryFlush, tiebreak: groupRanks(groups)}
	case straightHigh > 0:
		return handRank{category: categoryStraight, tiebreak: []int{straightHigh}}
	case groups[0].count == 3:
		return handRank{category: categoryThreeOfAKind, tiebreak: groupRanks(groups)}
	case groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2:
		return handRank{category: categoryTwoPair, tiebreak: groupRanks(groups)}
	case groups[0].count == 2:
		return handRank{category: categoryPair, tiebreak: groupRanks(groups)}
	default:
		return handRank{category: categoryHighCard, tiebreak: groupRanks(groups)}
	}
}

func groupRanks(groups []rankGroup) []int {
	ranks := make([]int, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
	}
	return ranks
}

func isFlush(cards []Card) bool {
	if len(cards) != 5 {
		return false
	}
	for _, c := range cards[1:] {
		if suitIndex(c) != suitIndex(cards[0]) {
			return false
		}
	}
	return true
}

// straightHighCard returns the high card of a five-card straight, or 0.
// The wheel (A 2 3 4 5) counts as a five-high straight.
func straightHighCard(cards []Card) int {
	if len(cards) != 5 {
		return 0
	}
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = rankValue(c)
	}
	sort.Ints(ranks)
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			// Allow the ace to play low in A 2 3 4 5.
			if i == len(ranks)-1 && ranks[i] == 14 && ranks[0] == 2 {
				return 5
			}
			return 0
		}
	}
	return ranks[len(ranks)-1]
}

// CompareHands orders two presented hands: 1 when a beats b, -1 when b
// beats a, 0 on an exact tie. Categories compare first, then the rank
// tiebreaks; when one tiebreak list is a prefix of the other, the hand
// with more deciding cards wins.
func CompareHands(a, b []Card) int {
	ra, rb := evaluate(a), evaluate(b)
	if ra.category != rb.category {
		if ra.category > rb.category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(ra.tiebreak) && i < len(rb.tiebreak); i++ {
		if ra.tiebreak[i] != rb.tiebreak[i] {
			if ra.tiebreak[i] > rb.tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	if len(ra.tiebreak) != len(rb.tiebreak) {
		if len(ra.tiebreak) > len(rb.tiebreak) {
			return 1
		}
		return -1
	}
	return 0
}

// pickCards removes the given cards from a copy of the hand. Returns false
// when any card is not present (duplicates must be present that many
// times).
func pickCards(hand []Card, cards []Card) ([]Card, bool) {
	remain := append([]Card(nil), hand...)
	for _, card := range cards {
		found := -1
		for i, h := range remain {
			if h == card {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		remain = append(remain[:found], remain[found+1:]...)
	}
	return remain, true
}
