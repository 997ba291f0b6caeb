package sevenhandpoker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"telegram-boardgame-bot/internal/engine"
	"telegram-boardgame-bot/internal/game"
)

func TestTransformMoveCommand(t *testing.T) {
	adapter := Adapter{}

	tests := []struct {
		name string
		raw  []string
		want *game.MoveSpec
	}{
		{
			"present single card",
			[]string{"present", "AS"},
			&game.MoveSpec{Name: "presentCards", Args: []any{[]Card{"AS"}}},
		},
		{
			"present uppercases input",
			[]string{"present", "as", "kd"},
			&game.MoveSpec{Name: "presentCards", Args: []any{[]Card{"AS", "KD"}}},
		},
		{
			"place first field",
			[]string{"place", "1"},
			&game.MoveSpec{Name: "choosePosition", Args: []any{0}},
		},
		{
			"place last field",
			[]string{"place", "7"},
			&game.MoveSpec{Name: "choosePosition", Args: []any{6}},
		},
		{"present malformed card", []string{"present", "A"}, nil},
		{"place zero", []string{"place", "0"}, nil},
		{"place beyond range", []string{"place", "8"}, nil},
		{"place not a number", []string{"place", "x"}, nil},
		{"place extra args", []string{"place", "1", "2"}, nil},
		{"unknown verb", []string{"draw", "1"}, nil},
		{"missing args", []string{"present"}, nil},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.TransformMoveCommand(tt.raw))
		})
	}
}

func TestStateText(t *testing.T) {
	adapter := Adapter{}

	view := PlayerView{
		DeckSize:  10,
		HandSizes: map[engine.PlayerID]int{"0": 5, "1": 6},
		MyHand:    []Card{"2S", "3S"},
		Fields: []FieldRowView{
			{Slots: map[engine.PlayerID]*SlotView{
				"0": {Opened: true, CardCount: 2, Cards: []Card{"AS", "AD"}},
				"1": {CardCount: 3},
			}, Winner: []engine.PlayerID{"0"}},
			{Slots: map[engine.PlayerID]*SlotView{}},
		},
		Presented: &PresentedView{Player: "0", CardCount: 2},
	}

	got := adapter.StateText(game.View{State: view})
	want := "deck: 10 cards | p0 hand: 5 | p1 hand: 6\n" +
		"field 1: p0 [AS AD] p1 [3 hidden] => p0\n" +
		"field 2: -\n" +
		"p0 presents 2 card(s)\n" +
		"your hand: 2S 3S"
	assert.Equal(t, want, got)
}

func TestGameoverText(t *testing.T) {
	adapter := Adapter{}

	assert.Equal(t, "", adapter.GameoverText(game.View{}))
	assert.Equal(t, "DRAW!", adapter.GameoverText(game.View{Gameover: &engine.Outcome{Draw: true}}))
	assert.Equal(t, "WINNER: p1 !!", adapter.GameoverText(game.View{Gameover: &engine.Outcome{Winner: "1"}}))
}

func TestValidNumPlayers(t *testing.T) {
	adapter := Adapter{}
	assert.False(t, adapter.ValidNumPlayers(1))
	assert.True(t, adapter.ValidNumPlayers(2))
	assert.False(t, adapter.ValidNumPlayers(3))
}
