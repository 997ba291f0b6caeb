// Property-based tests for the reducer's turn-machine invariants.
package engine

import (
	"testing"

	"pgregory.net/rapid"
)

// TestApplyTurnInvariantsProperty checks that after any accepted move the
// current player index stays below the player count and the per-player
// move counter stays below the move limit, with the turn number never
// decreasing.
func TestApplyTurnInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numPlayers := rapid.IntRange(2, 4).Draw(t, "numPlayers")
		moveLimit := rapid.IntRange(1, 3).Draw(t, "moveLimit")
		numMoves := rapid.IntRange(1, 40).Draw(t, "numMoves")

		def := counterDef(moveLimit, 1<<30)
		ctx := NewContext(numPlayers)
		state := def.Setup(numPlayers)

		prevTurn := ctx.Turn
		for i := 0; i < numMoves; i++ {
			n := rapid.IntRange(0, 5).Draw(t, "amount")

			var err error
			state, ctx, err = Apply(def, state, ctx, add(ctx.CurrentPlayer, n))
			if err != nil {
				t.Fatalf("unexpected rejection: %v", err)
			}

			idx := ctx.CurrentPlayer.Index()
			if idx < 0 || idx >= numPlayers {
				t.Fatalf("current player %q out of range for %d players", ctx.CurrentPlayer, numPlayers)
			}
			if ctx.CurrentPlayerMoves < 0 || ctx.CurrentPlayerMoves >= moveLimit {
				t.Fatalf("move counter %d outside [0, %d)", ctx.CurrentPlayerMoves, moveLimit)
			}
			if ctx.Turn < prevTurn {
				t.Fatalf("turn went backwards: %d -> %d", prevTurn, ctx.Turn)
			}
			prevTurn = ctx.Turn
		}
	})
}

// TestApplyRejectionIdempotenceProperty checks that resubmitting the same
// invalid command rejects with the same error and never mutates the
// submitted pair.
func TestApplyRejectionIdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numPlayers := rapid.IntRange(2, 4).Draw(t, "numPlayers")
		def := counterDef(1, 1<<30)
		ctx := NewContext(numPlayers)
		state := def.Setup(numPlayers)

		// Either the wrong player or an amount the rules reject.
		var cmd MoveCommand
		if rapid.Bool().Draw(t, "wrongPlayer") {
			other := rapid.IntRange(1, numPlayers-1).Draw(t, "other")
			cmd = add(PlayerByIndex(other), 1)
		} else {
			cmd = add(ctx.CurrentPlayer, -1)
		}

		s1, c1, err1 := Apply(def, state, ctx, cmd)
		s2, c2, err2 := Apply(def, state, ctx, cmd)

		if err1 == nil || err2 == nil {
			t.Fatalf("expected rejections, got %v and %v", err1, err2)
		}
		if err1 != err2 {
			t.Fatalf("rejection reasons differ: %v vs %v", err1, err2)
		}
		if s1 != state || s2 != state {
			t.Fatalf("rejection mutated state")
		}
		if c1 != ctx || c2 != ctx {
			t.Fatalf("rejection mutated context")
		}
	})
}

// TestTerminationMonotonicityProperty drives a game to its end and checks
// that every later move is rejected without touching state or context.
func TestTerminationMonotonicityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		target := rapid.IntRange(1, 20).Draw(t, "target")
		def := counterDef(1, target)
		ctx := NewContext(2)
		state := def.Setup(2)

		for ctx.Gameover == nil {
			var err error
			state, ctx, err = Apply(def, state, ctx, add(ctx.CurrentPlayer, 1))
			if err != nil {
				t.Fatalf("unexpected rejection before termination: %v", err)
			}
		}

		extraMoves := rapid.IntRange(1, 5).Draw(t, "extraMoves")
		for i := 0; i < extraMoves; i++ {
			player := PlayerByIndex(rapid.IntRange(0, 1).Draw(t, "player"))
			s, c, err := Apply(def, state, ctx, add(player, 1))
			if err != ErrGameFinished {
				t.Fatalf("expected ErrGameFinished, got %v", err)
			}
			if s != state || c != ctx {
				t.Fatalf("terminal state was mutated")
			}
		}
	})
}
