package sevenhandpoker

import "telegram-boardgame-bot/internal/engine"

// SlotView is a player's sight of one field slot. Cards are present only
// when the slot is opened or belongs to the viewing player; everyone else
// learns just the count.
type SlotView struct {
	Opened    bool   `json:"opened"`
	CardCount int    `json:"cardCount"`
	Cards     []Card `json:"cards,omitempty"`
}

// FieldRowView is a player's sight of one contested field.
type FieldRowView struct {
	Slots  map[engine.PlayerID]*SlotView `json:"slots"`
	Winner []engine.PlayerID             `json:"winner,omitempty"`
}

// PresentedView is a player's sight of a pending presentation: the
// presenter and the set size for everyone, the cards themselves only for
// the presenter.
type PresentedView struct {
	Player    engine.PlayerID `json:"player"`
	CardCount int             `json:"cardCount"`
	Cards     []Card          `json:"cards,omitempty"`
}

// PlayerView is the full projection for one player (or a spectator, who
// sees only the public part).
type PlayerView struct {
	DeckSize  int                     `json:"deckSize"`
	HandSizes map[engine.PlayerID]int `json:"handSizes"`
	MyHand    []Card                  `json:"myHand,omitempty"`
	Fields    []FieldRowView          `json:"fields"`
	Presented *PresentedView          `json:"presented,omitempty"`
}

func playerView(s engine.State, _ engine.Context, player engine.PlayerID) any {
	st := s.(GameState)

	view := PlayerView{
		DeckSize:  len(st.Deck),
		HandSizes: make(map[engine.PlayerID]int, len(st.Hands)),
		Fields:    make([]FieldRowView, len(st.Fields)),
	}
	for p, hand := range st.Hands {
		view.HandSizes[p] = len(hand)
	}
	if player != engine.Spectator {
		view.MyHand = append([]Card(nil), st.Hands[player]...)
	}

	for i, row := range st.Fields {
		rowView := FieldRowView{
			Slots:  make(map[engine.PlayerID]*SlotView, len(row.Slots)),
			Winner: append([]engine.PlayerID(nil), row.Winner...),
		}
		for p, field := range row.Slots {
			if field == nil {
				continue
			}
			slot := &SlotView{
				Opened:    field.Opened,
				CardCount: len(field.Cards),
			}
			if field.Opened || p == player {
				slot.Cards = append([]Card(nil), field.Cards...)
			}
			rowView.Slots[p] = slot
		}
		view.Fields[i] = rowView
	}

	if st.Presented != nil {
		view.Presented = &PresentedView{
			Player:    st.Presented.Player,
			CardCount: len(st.Presented.Cards),
		}
		if st.Presented.Player == player {
			view.Presented.Cards = append([]Card(nil), st.Presented.Cards...)
		}
	}

	return view
}
