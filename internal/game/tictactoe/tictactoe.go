// Package tictactoe implements the classic 3x3 tic-tac-toe game on top of
// the turn-based engine.
package tictactoe

import (
	"telegram-boardgame-bot/internal/engine"
)

// Name is the catalog key for this game.
const Name = "tictactoe"

const (
	boardSize = 9
	emptyCell = engine.PlayerID("")
)

// winLines are the eight winning cell triples: rows, columns, diagonals.
var winLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// GameState is the full board. Cells hold the owning player's id, or the
// empty id for free cells. Everything is public, so the state itself
// doubles as the per-player view.
type GameState struct {
	Cells []engine.PlayerID `json:"cells"`
}

// Definition returns the rule definition for tic-tac-toe.
func Definition() *engine.GameDefinition {
	return &engine.GameDefinition{
		Name:  Name,
		Setup: setup,
		Moves: map[string]engine.MoveFunc{
			"cell": moveCell,
		},
		Turn:  engine.TurnConfig{MoveLimit: 1},
		EndIf: endIf,
		PlayerView: func(s engine.State, _ engine.Context, _ engine.PlayerID) any {
			return s
		},
	}
}

func setup(_ int) engine.State {
	return GameState{Cells: make([]engine.PlayerID, boardSize)}
}

func moveCell(s engine.State, ctx engine.Context, args []any) (engine.State, error) {
	st := s.(GameState)
	if len(args) != 1 {
		return nil, engine.ErrInvalidMove
	}
	id, ok := args[0].(int)
	if !ok || id < 0 || id >= len(st.Cells) {
		return nil, engine.ErrInvalidMove
	}
	if st.Cells[id] != emptyCell {
		return nil, engine.ErrInvalidMove
	}

	cells := append([]engine.PlayerID(nil), st.Cells...)
	cells[id] = ctx.CurrentPlayer
	return GameState{Cells: cells}, nil
}

func endIf(s engine.State, ctx engine.Context) *engine.Outcome {
	st := s.(GameState)
	for i := 0; i < ctx.NumPlayers; i++ {
		p := engine.PlayerByIndex(i)
		if isVictory(st.Cells, p) {
			return &engine.Outcome{Winner: p}
		}
	}
	for _, c := range st.Cells {
		if c == emptyCell {
			return nil
		}
	}
	return &engine.Outcome{Draw: true}
}

func isVictory(cells []engine.PlayerID, player engine.PlayerID) bool {
	for _, line := range winLines {
		if cells[line[0]] == player && cells[line[1]] == player && cells[line[2]] == player {
			return true
		}
	}
	return false
}
