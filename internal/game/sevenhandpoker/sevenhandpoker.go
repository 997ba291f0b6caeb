// Package sevenhandpoker implements Seven Hand Poker: two players fight
// over seven fields by secretly presenting sets of one to five cards. A
// presented set is placed face-down on a field chosen by the opponent;
// when both players hold the same field, the sets open and the better
// poker hand takes it. Three adjacent fields, or a majority of all seven,
// wins the game.
package sevenhandpoker

import (
	"math/rand"

	"telegram-boardgame-bot/internal/engine"
)

// Name is the catalog key for this game.
const Name = "sevenhandpoker"

const (
	numFields       = 7
	initialHandSize = 7
	maxPresentSize  = 5
	drawPerPresent  = 3
)

// Field is one player's card set on a field. Unopened sets are hidden
// information: opponents may only learn their size.
type Field struct {
	Cards  []Card `json:"cards"`
	Opened bool   `json:"opened"`
}

// FieldRow is one of the seven contested fields. A missing slot means the
// player has not placed there yet. Winner is nil while undecided; it lists
// both players on a split.
type FieldRow struct {
	Slots  map[engine.PlayerID]*Field `json:"slots"`
	Winner []engine.PlayerID          `json:"winner,omitempty"`
}

// Presented is a pending presentation: cards offered by one player,
// waiting for the opponent to choose a field.
type Presented struct {
	Player engine.PlayerID `json:"player"`
	Cards  []Card          `json:"cards"`
}

// GameState is the authoritative game state. Deck, hands and unopened
// field contents are hidden; projections expose only sizes of what a
// player must not see.
type GameState struct {
	Deck      []Card                     `json:"deck"`
	Hands     map[engine.PlayerID][]Card `json:"hands"`
	Fields    []FieldRow                 `json:"fields"`
	Presented *Presented                 `json:"presented,omitempty"`
}

// Definition returns the rule definition for Seven Hand Poker.
func Definition() *engine.GameDefinition {
	return &engine.GameDefinition{
		Name:  Name,
		Setup: setup,
		Moves: map[string]engine.MoveFunc{
			"presentCards":   movePresentCards,
			"choosePosition": moveChoosePosition,
		},
		Turn:       engine.TurnConfig{MoveLimit: 1},
		EndIf:      endIf,
		PlayerView: playerView,
	}
}

func setup(numPlayers int) engine.State {
	deck := NewDeck()
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	hands := make(map[engine.PlayerID][]Card, numPlayers)
	for i := 0; i < numPlayers; i++ {
		p := engine.PlayerByIndex(i)
		hands[p] = append([]Card(nil), deck[:initialHandSize]...)
		deck = deck[initialHandSize:]
	}

	fields := make([]FieldRow, numFields)
	for i := range fields {
		fields[i] = FieldRow{Slots: make(map[engine.PlayerID]*Field, numPlayers)}
	}

	return GameState{
		Deck:   deck,
		Hands:  hands,
		Fields: fields,
	}
}

// clone deep-copies the state so move functions stay pure.
func (st GameState) clone() GameState {
	next := GameState{
		Deck:   append([]Card(nil), st.Deck...),
		Hands:  make(map[engine.PlayerID][]Card, len(st.Hands)),
		Fields: make([]FieldRow, len(st.Fields)),
	}
	for p, hand := range st.Hands {
		next.Hands[p] = append([]Card(nil), hand...)
	}
	for i, row := range st.Fields {
		copied := FieldRow{
			Slots:  make(map[engine.PlayerID]*Field, len(row.Slots)),
			Winner: append([]engine.PlayerID(nil), row.Winner...),
		}
		for p, field := range row.Slots {
			if field == nil {
				continue
			}
			copied.Slots[p] = &Field{
				Cards:  append([]Card(nil), field.Cards...),
				Opened: field.Opened,
			}
		}
		next.Fields[i] = copied
	}
	if st.Presented != nil {
		next.Presented = &Presented{
			Player: st.Presented.Player,
			Cards:  append([]Card(nil), st.Presented.Cards...),
		}
	}
	return next
}

// movePresentCards takes 1..5 cards out of the current player's hand and
// offers them face-down, then draws up to three replacements from the
// deck. Invalid while another presentation is still pending.
func movePresentCards(s engine.State, ctx engine.Context, args []any) (engine.State, error) {
	st := s.(GameState)
	if len(args) != 1 {
		return nil, engine.ErrInvalidMove
	}
	cards, ok := args[0].([]Card)
	if !ok {
		return nil, engine.ErrInvalidMove
	}
	if st.Presented != nil {
		return nil, engine.ErrInvalidMove
	}
	if len(cards) < 1 || len(cards) > maxPresentSize {
		return nil, engine.ErrInvalidMove
	}
	remain, ok := pickCards(st.Hands[ctx.CurrentPlayer], cards)
	if !ok {
		return nil, engine.ErrInvalidMove
	}

	next := st.clone()
	next.Presented = &Presented{
		Player: ctx.CurrentPlayer,
		Cards:  append([]Card(nil), cards...),
	}
	for i := 0; i < drawPerPresent && len(next.Deck) > 0; i++ {
		remain = append(remain, next.Deck[len(next.Deck)-1])
		next.Deck = next.Deck[:len(next.Deck)-1]
	}
	next.Hands[ctx.CurrentPlayer] = remain
	return next, nil
}

// moveChoosePosition places the opponent's pending presentation on a field
// of the current player's choice. When the current player already holds
// that field, both sets open and the field is scored.
func moveChoosePosition(s engine.State, ctx engine.Context, args []any) (engine.State, error) {
	st := s.(GameState)
	if len(args) != 1 {
		return nil, engine.ErrInvalidMove
	}
	position, ok := args[0].(int)
	if !ok || position < 0 || position >= numFields {
		return nil, engine.ErrInvalidMove
	}
	if st.Presented == nil || st.Presented.Player == ctx.CurrentPlayer {
		return nil, engine.ErrInvalidMove
	}
	presenter := st.Presented.Player
	if st.Fields[position].Slots[presenter] != nil {
		return nil, engine.ErrInvalidMove
	}

	next := st.clone()
	placed := &Field{Cards: append([]Card(nil), st.Presented.Cards...)}
	next.Fields[position].Slots[presenter] = placed
	next.Presented = nil

	if mine := next.Fields[position].Slots[ctx.CurrentPlayer]; mine != nil {
		mine.Opened = true
		placed.Opened = true

		switch CompareHands(mine.Cards, placed.Cards) {
		case 1:
			next.Fields[position].Winner = []engine.PlayerID{ctx.CurrentPlayer}
		case -1:
			next.Fields[position].Winner = []engine.PlayerID{presenter}
		default:
			next.Fields[position].Winner = []engine.PlayerID{ctx.CurrentPlayer, presenter}
		}
	}
	return next, nil
}

func endIf(s engine.State, ctx engine.Context) *engine.Outcome {
	st := s.(GameState)

	var streakWinners []engine.PlayerID
	for i := 0; i < ctx.NumPlayers; i++ {
		p := engine.PlayerByIndex(i)
		if hasThreeInARow(st, p) {
			streakWinners = append(streakWinners, p)
		}
	}
	if len(streakWinners) > 1 {
		return &engine.Outcome{Draw: true}
	}
	if len(streakWinners) == 1 {
		return &engine.Outcome{Winner: streakWinners[0]}
	}

	for _, row := range st.Fields {
		if row.Winner == nil {
			return nil
		}
	}

	// All fields decided: majority wins.
	best, bestWins, tied := engine.Spectator, -1, false
	for i := 0; i < ctx.NumPlayers; i++ {
		p := engine.PlayerByIndex(i)
		wins := countFieldWins(st, p)
		switch {
		case wins > bestWins:
			best, bestWins, tied = p, wins, false
		case wins == bestWins:
			tied = true
		}
	}
	if tied {
		return &engine.Outcome{Draw: true}
	}
	return &engine.Outcome{Winner: best}
}

func hasThreeInARow(st GameState, player engine.PlayerID) bool {
	for start := 0; start+2 < numFields; start++ {
		won := true
		for i := start; i <= start+2; i++ {
			if !fieldWonBy(st.Fields[i], player) {
				won = false
				break
			}
		}
		if won {
			return true
		}
	}
	return false
}

func fieldWonBy(row FieldRow, player engine.PlayerID) bool {
	for _, w := range row.Winner {
		if w == player {
			return true
		}
	}
	return false
}

func countFieldWins(st GameState, player engine.PlayerID) int {
	wins := 0
	for _, row := range st.Fields {
		if fieldWonBy(row, player) {
			wins++
		}
	}
	return wins
}
