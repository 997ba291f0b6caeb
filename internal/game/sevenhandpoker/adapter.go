package sevenhandpoker

import (
	"fmt"
	"strconv"
	"strings"

	"telegram-boardgame-bot/internal/engine"
	"telegram-boardgame-bot/internal/game"
)

// Adapter parses "present <cards…>" and "place <field>" commands and
// renders the projected view as chat text.
type Adapter struct{}

var validPlayers = game.ExactPlayers(2)

// ValidNumPlayers reports whether the game can start with n players.
func (Adapter) ValidNumPlayers(n int) bool {
	return validPlayers(n)
}

// TransformMoveCommand parses raw chat arguments into an engine move.
// Cards are given as rank+suit codes, e.g. "present AS KD"; fields are
// 1-based, e.g. "place 3".
func (Adapter) TransformMoveCommand(raw []string) *game.MoveSpec {
	if len(raw) < 2 {
		return nil
	}
	switch raw[0] {
	case "present":
		cards := make([]Card, 0, len(raw)-1)
		for _, code := range raw[1:] {
			card := Card(strings.ToUpper(code))
			if !card.IsValid() {
				return nil
			}
			cards = append(cards, card)
		}
		return &game.MoveSpec{Name: "presentCards", Args: []any{cards}}
	case "place":
		if len(raw) != 2 {
			return nil
		}
		position, err := strconv.Atoi(raw[1])
		if err != nil || position < 1 || position > numFields {
			return nil
		}
		return &game.MoveSpec{Name: "choosePosition", Args: []any{position - 1}}
	default:
		return nil
	}
}

// StateText renders the projected view: deck and hand sizes, the seven
// fields, the pending presentation, and the viewer's own hand when the
// projection includes one.
func (Adapter) StateText(v game.View) string {
	view := v.State.(PlayerView)

	var b strings.Builder
	fmt.Fprintf(&b, "deck: %d cards", view.DeckSize)
	for i := 0; i < len(view.HandSizes); i++ {
		p := engine.PlayerByIndex(i)
		fmt.Fprintf(&b, " | p%s hand: %d", p, view.HandSizes[p])
	}

	for i, row := range view.Fields {
		fmt.Fprintf(&b, "\nfield %d:", i+1)
		empty := true
		for j := 0; j < len(view.HandSizes); j++ {
			p := engine.PlayerByIndex(j)
			slot, ok := row.Slots[p]
			if !ok {
				continue
			}
			empty = false
			fmt.Fprintf(&b, " p%s %s", p, slotText(slot))
		}
		if empty {
			b.WriteString(" -")
		}
		if len(row.Winner) == 2 {
			b.WriteString(" => split")
		} else if len(row.Winner) == 1 {
			fmt.Fprintf(&b, " => p%s", row.Winner[0])
		}
	}

	if view.Presented != nil {
		fmt.Fprintf(&b, "\np%s presents %d card(s)", view.Presented.Player, view.Presented.CardCount)
		if len(view.Presented.Cards) > 0 {
			fmt.Fprintf(&b, ": %s", cardsText(view.Presented.Cards))
		}
	}
	if len(view.MyHand) > 0 {
		fmt.Fprintf(&b, "\nyour hand: %s", cardsText(view.MyHand))
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
	return fmt.Sprintf("WINNER: p%s !!", v.Gameover.Winner)
}

func slotText(slot *SlotView) string {
	if slot.Opened || len(slot.Cards) > 0 {
		return "[" + cardsText(slot.Cards) + "]"
	}
	return fmt.Sprintf("[%d hidden]", slot.CardCount)
}

func cardsText(cards []Card) string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = string(c)
	}
	return strings.Join(codes, " ")
}
