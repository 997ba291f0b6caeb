// Package game defines the catalog contract between the engine and
// concrete games: each game registers a rule definition plus a
// presentation adapter that translates chat input into move commands and
// renders projected views back to text. Adding a new game only requires
// providing both halves and registering them at startup.
package game

import "telegram-boardgame-bot/internal/engine"

// MoveSpec is the adapter's translation of raw chat arguments into a
// concrete move command for the engine.
type MoveSpec struct {
	Name string
	Args []any
}

// View is what presentation adapters render from. State carries the
// per-player projection produced by the engine, never the raw internal
// state, so rendering cannot leak hidden information.
type View struct {
	State    any
	Gameover *engine.Outcome
}

// PresentationAdapter is the text-facing half of a game. Adapters hold no
// state and operate only on projected views.
type PresentationAdapter interface {
	// ValidNumPlayers reports whether the game can start with n players.
	ValidNumPlayers(n int) bool

	// TransformMoveCommand parses raw chat arguments into a MoveSpec.
	// A nil return means the input is unparsable for this game.
	TransformMoveCommand(raw []string) *MoveSpec

	// StateText renders the projected view as chat text.
	StateText(v View) string

	// GameoverText renders the terminal result, or "" while the game is
	// still running.
	GameoverText(v View) string
}

// ExactPlayers returns a player-count predicate accepting exactly n.
func ExactPlayers(n int) func(int) bool {
	return func(got int) bool { return got == n }
}

// PlayersBetween returns a player-count predicate accepting lo..hi inclusive.
func PlayersBetween(lo, hi int) func(int) bool {
	return func(got int) bool { return got >= lo && got <= hi }
}

// OneOfPlayers returns a player-count predicate accepting any listed count.
func OneOfPlayers(ns ...int) func(int) bool {
	return func(got int) bool {
		for _, n := range ns {
			if got == n {
				return true
			}
		}
		return false
	}
}
