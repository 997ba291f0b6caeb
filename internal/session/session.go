// Package session hosts one game instance per chat channel and governs
// its lifecycle: create, join, leave, start, move, destroy. The channel id
// is the sole identity key; all mutation on a channel is serialized.
package session

import "telegram-boardgame-bot/internal/engine"

// Lifecycle is a session's position in its create/start/destroy life.
type Lifecycle int

const (
	LifecycleCreated Lifecycle = iota
	LifecycleStarted
	LifecycleDestroyed
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleCreated:
		return "created"
	case LifecycleStarted:
		return "started"
	case LifecycleDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Session is one channel's game across its full lifecycle. State and
// Context are set on start and then only replaced atomically by accepted
// moves.
type Session struct {
	ChannelID string
	GameName  string
	CreatedBy string
	UserIDs   []string
	Lifecycle Lifecycle

	State   engine.State
	Context engine.Context
}

// playerIndex resolves a user to their seat, or -1 when not joined.
func (s *Session) playerIndex(userID string) int {
	for i, id := range s.UserIDs {
		if id == userID {
			return i
		}
	}
	return -1
}

// Info is a read-only snapshot of a session for callers outside the
// registry.
type Info struct {
	ChannelID     string
	GameName      string
	CreatedBy     string
	UserIDs       []string
	Lifecycle     Lifecycle
	Turn          int
	CurrentPlayer engine.PlayerID
	Finished      bool
}
