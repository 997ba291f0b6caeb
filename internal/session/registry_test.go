package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-boardgame-bot/internal/game"
	"telegram-boardgame-bot/internal/game/tictactoe"
)

func newTestRegistry(t *testing.T, autoDestroy bool) *Registry {
	t.Helper()
	catalog := game.NewCatalog()
	require.NoError(t, catalog.Register(tictactoe.Definition(), tictactoe.Adapter{}))
	return NewRegistry(catalog, autoDestroy, zerolog.Nop())
}

func TestCreate(t *testing.T) {
	r := newTestRegistry(t, false)

	assert.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)
	assert.Equal(t, ReasonAlreadyCreated, r.Create(tictactoe.Name, "chan", "bob").Reason)
	assert.Equal(t, ReasonInvalidGameName, r.Create("chess", "other", "alice").Reason)

	// Channels are independent.
	assert.True(t, r.Create(tictactoe.Name, "other", "alice").OK)
}

func TestJoinAndLeave(t *testing.T) {
	r := newTestRegistry(t, false)

	assert.Equal(t, ReasonNotCreated, r.Join("chan", "bob").Reason)

	require.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)
	assert.Equal(t, ReasonAlreadyJoined, r.Join("chan", "alice").Reason)
	assert.True(t, r.Join("chan", "bob").OK)
	assert.Equal(t, ReasonAlreadyJoined, r.Join("chan", "bob").Reason)

	assert.Equal(t, ReasonNotJoined, r.Leave("chan", "carol").Reason)
	assert.True(t, r.Leave("chan", "alice").OK)

	info, res := r.GetSessionInfo("chan")
	require.True(t, res.OK)
	assert.Equal(t, []string{"bob"}, info.UserIDs)
}

func TestJoinAndLeaveAfterStart(t *testing.T) {
	r := newTestRegistry(t, false)
	require.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)
	require.True(t, r.Join("chan", "bob").OK)
	require.True(t, r.Start("chan", "alice").OK)

	assert.Equal(t, ReasonAlreadyStarted, r.Join("chan", "carol").Reason)
	assert.Equal(t, ReasonAlreadyStarted, r.Leave("chan", "bob").Reason)
}

func TestStart(t *testing.T) {
	r := newTestRegistry(t, false)

	assert.Equal(t, ReasonNotCreated, r.Start("chan", "alice").Reason)

	require.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)
	assert.Equal(t, ReasonNumPlayerInvalid, r.Start("chan", "alice").Reason)

	require.True(t, r.Join("chan", "bob").OK)
	res := r.Start("chan", "alice")
	require.True(t, res.OK)
	assert.Equal(t, "_ _ _\n_ _ _\n_ _ _", res.StateText)
	assert.Empty(t, res.GameoverText)

	assert.Equal(t, ReasonAlreadyStarted, r.Start("chan", "alice").Reason)
}

func TestProcessMove(t *testing.T) {
	r := newTestRegistry(t, false)

	assert.Equal(t, ReasonNotStarted, r.ProcessMove("chan", "alice", []string{"1", "1"}).Reason)

	require.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)
	assert.Equal(t, ReasonNotStarted, r.ProcessMove("chan", "alice", []string{"1", "1"}).Reason)

	require.True(t, r.Join("chan", "bob").OK)
	require.True(t, r.Start("chan", "alice").OK)

	assert.Equal(t, ReasonNotJoined, r.ProcessMove("chan", "carol", []string{"1", "1"}).Reason)
	assert.Equal(t, ReasonInvalidArgs, r.ProcessMove("chan", "alice", []string{"nope"}).Reason)

	res := r.ProcessMove("chan", "alice", []string{"1", "1"})
	require.True(t, res.OK)
	assert.Equal(t, "o _ _\n_ _ _\n_ _ _", res.StateText)
	assert.Empty(t, res.GameoverText)

	// Out of turn, occupied cell: both surface as invalid moves and leave
	// the board untouched.
	assert.Equal(t, ReasonInvalidMove, r.ProcessMove("chan", "alice", []string{"2", "2"}).Reason)
	assert.Equal(t, ReasonInvalidMove, r.ProcessMove("chan", "bob", []string{"1", "1"}).Reason)

	board := r.Render("chan", "")
	require.True(t, board.OK)
	assert.Equal(t, "o _ _\n_ _ _\n_ _ _", board.StateText)
}

func playTopRowWin(t *testing.T, r *Registry) RenderResult {
	t.Helper()
	require.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)
	require.True(t, r.Join("chan", "bob").OK)
	require.True(t, r.Start("chan", "alice").OK)

	moves := []struct {
		user string
		raw  []string
	}{
		{"alice", []string{"1", "1"}},
		{"bob", []string{"3", "1"}},
		{"alice", []string{"1", "2"}},
		{"bob", []string{"3", "2"}},
		{"alice", []string{"1", "3"}},
	}
	var res RenderResult
	for _, m := range moves {
		res = r.ProcessMove("chan", m.user, m.raw)
		require.True(t, res.OK, "move %v by %s failed: %s", m.raw, m.user, res.Reason)
	}
	return res
}

func TestProcessMoveFinishesGame(t *testing.T) {
	r := newTestRegistry(t, false)
	res := playTopRowWin(t, r)

	assert.Equal(t, "o o o\n_ _ _\nx x _", res.StateText)
	assert.Equal(t, "WINNER: o !!", res.GameoverText)

	// The finished session stays until destroyed; further moves bounce.
	assert.Equal(t, ReasonInvalidMove, r.ProcessMove("chan", "bob", []string{"2", "2"}).Reason)

	info, ok := r.GetSessionInfo("chan")
	require.True(t, ok.OK)
	assert.True(t, info.Finished)
}

func TestProcessMoveAutoDestroysFinishedGame(t *testing.T) {
	r := newTestRegistry(t, true)
	res := playTopRowWin(t, r)
	assert.Equal(t, "WINNER: o !!", res.GameoverText)

	_, result := r.GetSessionInfo("chan")
	assert.Equal(t, ReasonNotCreated, result.Reason)
}

func TestRender(t *testing.T) {
	r := newTestRegistry(t, false)

	assert.Equal(t, ReasonNotStarted, r.Render("chan", "").Reason)

	require.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)
	assert.Equal(t, ReasonNotStarted, r.Render("chan", "").Reason)

	require.True(t, r.Join("chan", "bob").OK)
	require.True(t, r.Start("chan", "alice").OK)

	assert.True(t, r.Render("chan", "").OK)
	assert.True(t, r.Render("chan", "bob").OK)
	assert.Equal(t, ReasonNotJoined, r.Render("chan", "carol").Reason)
}

func TestDestroy(t *testing.T) {
	r := newTestRegistry(t, false)

	assert.Equal(t, ReasonNotCreated, r.Destroy("chan", "alice").Reason)

	require.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)
	assert.True(t, r.Destroy("chan", "alice").OK)

	// The channel is free for a fresh session.
	assert.True(t, r.Create(tictactoe.Name, "chan", "bob").OK)
}

func TestGetSessionInfo(t *testing.T) {
	r := newTestRegistry(t, false)
	require.True(t, r.Create(tictactoe.Name, "chan", "alice").OK)

	info, res := r.GetSessionInfo("chan")
	require.True(t, res.OK)
	assert.Equal(t, "chan", info.ChannelID)
	assert.Equal(t, tictactoe.Name, info.GameName)
	assert.Equal(t, "alice", info.CreatedBy)
	assert.Equal(t, LifecycleCreated, info.Lifecycle)

	require.True(t, r.Join("chan", "bob").OK)
	require.True(t, r.Start("chan", "alice").OK)
	require.True(t, r.ProcessMove("chan", "alice", []string{"2", "2"}).OK)

	info, res = r.GetSessionInfo("chan")
	require.True(t, res.OK)
	assert.Equal(t, LifecycleStarted, info.Lifecycle)
	assert.Equal(t, "1", string(info.CurrentPlayer))
	assert.False(t, info.Finished)
}

func TestConcurrentJoins(t *testing.T) {
	r := newTestRegistry(t, false)
	require.True(t, r.Create(tictactoe.Name, "chan", "owner").OK)

	const joiners = 32
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := r.Join("chan", fmt.Sprintf("user-%d", i))
			if !res.OK {
				t.Errorf("join %d failed: %s", i, res.Reason)
			}
		}(i)
	}
	wg.Wait()

	info, res := r.GetSessionInfo("chan")
	require.True(t, res.OK)
	assert.Len(t, info.UserIDs, joiners+1)
}
