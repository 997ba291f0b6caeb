package engine

import (
	"errors"
	"fmt"
)

// Rejection errors returned by Apply. All of them leave the submitted
// (state, context) pair untouched.
var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrInvalidMove  = errors.New("invalid move")
)

// MoveCommand is one player's attempt to advance the game.
type MoveCommand struct {
	Player PlayerID
	Name   string
	Args   []any
}

// Apply advances the game by one move. It rejects moves on finished games,
// moves from anyone but the current player, and moves the game's rules
// declare invalid. On success it bumps the move counter, rotates the turn
// once the player's move limit is reached, and records the outcome if the
// game's termination predicate fires.
//
// Apply is deterministic and has no side effects beyond its return values;
// the caller owns persisting the new pair. A move name that is not a key of
// the definition's Moves map indicates a catalog wiring bug, not user
// input, and panics.
func Apply(def *GameDefinition, s State, ctx Context, cmd MoveCommand) (State, Context, error) {
	if ctx.Gameover != nil {
		return s, ctx, ErrGameFinished
	}
	if cmd.Player != ctx.CurrentPlayer {
		return s, ctx, ErrNotYourTurn
	}

	move, ok := def.Moves[cmd.Name]
	if !ok {
		panic(fmt.Sprintf("engine: game %q has no move %q", def.Name, cmd.Name))
	}

	next, err := move(s, ctx, cmd.Args)
	if err != nil {
		return s, ctx, err
	}

	ctx.CurrentPlayerMoves++
	if ctx.CurrentPlayerMoves >= def.Turn.MoveLimit {
		ctx.CurrentPlayer = PlayerByIndex((ctx.CurrentPlayer.Index() + 1) % ctx.NumPlayers)
		ctx.CurrentPlayerMoves = 0
		ctx.Turn++
	}

	if def.EndIf != nil {
		if outcome := def.EndIf(next, ctx); outcome != nil {
			ctx.Gameover = outcome
		}
	}

	return next, ctx, nil
}
