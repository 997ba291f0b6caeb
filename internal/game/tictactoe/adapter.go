package tictactoe

import (
	"fmt"
	"strconv"
	"strings"

	"telegram-boardgame-bot/internal/engine"
	"telegram-boardgame-bot/internal/game"
)

// Adapter renders the board as text and parses "<row> <col>" moves with
// 1-based coordinates. An optional leading "cell" token is accepted.
type Adapter struct{}

var validPlayers = game.ExactPlayers(2)

// ValidNumPlayers reports whether the game can start with n players.
func (Adapter) ValidNumPlayers(n int) bool {
	return validPlayers(n)
}

// TransformMoveCommand parses coordinates into a cell move.
func (Adapter) TransformMoveCommand(raw []string) *game.MoveSpec {
	if len(raw) > 0 && raw[0] == "cell" {
		raw = raw[1:]
	}
	if len(raw) != 2 {
		return nil
	}
	row, err := strconv.Atoi(raw[0])
	if err != nil {
		return nil
	}
	col, err := strconv.Atoi(raw[1])
	if err != nil {
		return nil
	}
	if row < 1 || row > 3 || col < 1 || col > 3 {
		return nil
	}
	return &game.MoveSpec{
		Name: "cell",
		Args: []any{(row-1)*3 + (col - 1)},
	}
}

// StateText renders the board as a three-line grid of o, x and _.
func (Adapter) StateText(v game.View) string {
	st := v.State.(GameState)
	marks := make([]string, len(st.Cells))
	for i, c := range st.Cells {
		marks[i] = mark(c)
	}
	var b strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(marks[row*3:row*3+3], " "))
	}
	return b.String()
}

// GameoverText renders the terminal result, or "" while running.
func (Adapter) GameoverText(v game.View) string {
	if v.Gameover == nil {
		return ""
	}
	if v.Gameover.Draw {
		return "DRAW!"
	}
	return fmt.Sprintf("WINNER: %s !!", mark(v.Gameover.Winner))
}

func mark(p engine.PlayerID) string {
	switch p {
	case engine.PlayerByIndex(0):
		return "o"
	case engine.PlayerByIndex(1):
		return "x"
	default:
		return "_"
	}
}
