// Package engine implements the generic turn-based game reducer: a pure
// state machine that advances (state, context) pairs on player moves,
// tracks turn rotation, and detects termination. Concrete games plug in
// through a GameDefinition; the engine knows nothing about any particular
// game's rules.
package engine

import "strconv"

// PlayerID identifies a player within a single game instance. It is a
// stable string numeral "0".."N-1" indexing the session's join order.
// The empty PlayerID denotes a spectator.
type PlayerID string

// Spectator is the projection target for observers that hold no seat.
const Spectator PlayerID = ""

// PlayerByIndex converts a seat index into its PlayerID.
func PlayerByIndex(i int) PlayerID {
	return PlayerID(strconv.Itoa(i))
}

// Index returns the seat index of the player, or -1 for a spectator or a
// malformed id.
func (p PlayerID) Index() int {
	if p == Spectator {
		return -1
	}
	i, err := strconv.Atoi(string(p))
	if err != nil || i < 0 {
		return -1
	}
	return i
}

// State is the game-specific portion of a game instance. The engine treats
// it as opaque; only the game's own move functions inspect it.
type State = any

// Outcome is the terminal result of a game: either a single winner or a
// draw. Once recorded in a Context it is never cleared.
type Outcome struct {
	Winner PlayerID `json:"winner,omitempty"`
	Draw   bool     `json:"draw,omitempty"`
}

// Context is the engine-owned bookkeeping that travels alongside the game
// state: whose turn it is, how many moves they have made, and whether the
// game has ended. It is mutated only by Apply.
type Context struct {
	NumPlayers         int
	Turn               int
	CurrentPlayer      PlayerID
	CurrentPlayerMoves int
	Phase              string
	Gameover           *Outcome
}

// NewContext builds the initial context for a freshly started game.
func NewContext(numPlayers int) Context {
	return Context{
		NumPlayers:    numPlayers,
		Turn:          0,
		CurrentPlayer: PlayerByIndex(0),
	}
}

// MoveFunc applies one named move to the state. It must be pure: identical
// inputs always yield the identical result. A move that is well-formed but
// illegal under the game's rules returns ErrInvalidMove; the engine then
// leaves state and context untouched.
type MoveFunc func(s State, ctx Context, args []any) (State, error)

// TurnConfig controls turn rotation.
type TurnConfig struct {
	// MoveLimit is how many accepted moves a player makes before the turn
	// passes to the next player. Must be at least 1.
	MoveLimit int
}

// GameDefinition is the declarative rule set for one game. Definitions are
// registered once at startup and never modified afterwards.
type GameDefinition struct {
	// Name is the catalog key for this game.
	Name string

	// Setup produces the initial state for the given number of players.
	Setup func(numPlayers int) State

	// Moves maps move names to their transition functions.
	Moves map[string]MoveFunc

	Turn TurnConfig

	// EndIf inspects the state after every accepted move and returns a
	// non-nil Outcome when the game is over.
	EndIf func(s State, ctx Context) *Outcome

	// PlayerView derives the projection a given player (or Spectator) is
	// entitled to see. When nil, the default redaction based on Secrets
	// applies; see Project.
	PlayerView func(s State, ctx Context, player PlayerID) any

	// Secrets lists state field names that must never appear in a
	// projection built without a custom PlayerView.
	Secrets []string
}
