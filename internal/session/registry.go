package session

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"telegram-boardgame-bot/internal/engine"
	"telegram-boardgame-bot/internal/game"
	"telegram-boardgame-bot/internal/pkg/lock"
)

// Registry maps channel ids to sessions. Every operation is keyed by
// channel and serialized per channel, so concurrent callers on the same
// channel never tear a read-modify-write; different channels proceed in
// parallel.
type Registry struct {
	catalog     *game.Catalog
	locks       *lock.ChannelLock
	autoDestroy bool
	logger      zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a registry backed by the given catalog. When
// autoDestroyFinished is set, a session is removed as soon as a move ends
// its game; otherwise finished sessions stay until an explicit Destroy.
func NewRegistry(catalog *game.Catalog, autoDestroyFinished bool, logger zerolog.Logger) *Registry {
	return &Registry{
		catalog:     catalog,
		locks:       lock.NewChannelLock(),
		autoDestroy: autoDestroyFinished,
		logger:      logger,
		sessions:    make(map[string]*Session),
	}
}

func (r *Registry) get(channelID string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[channelID]
}

func (r *Registry) put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ChannelID] = s
}

func (r *Registry) remove(channelID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[channelID]; !ok {
		return false
	}
	delete(r.sessions, channelID)
	return true
}

// Create opens a new session for the channel with the caller as its first
// player.
func (r *Registry) Create(gameName, channelID, userID string) Result {
	var res Result
	r.locks.WithLock(channelID, func() {
		if r.get(channelID) != nil {
			res = failed(ReasonAlreadyCreated)
			return
		}
		if _, ok := r.catalog.Get(gameName); !ok {
			res = failed(ReasonInvalidGameName)
			return
		}
		r.put(&Session{
			ChannelID: channelID,
			GameName:  gameName,
			CreatedBy: userID,
			UserIDs:   []string{userID},
			Lifecycle: LifecycleCreated,
		})
		r.logger.Info().
			Str("channel", channelID).
			Str("game", gameName).
			Str("user", userID).
			Msg("session created")
		res = succeeded()
	})
	return res
}

// Join adds a user to a session that has not started yet.
func (r *Registry) Join(channelID, userID string) Result {
	var res Result
	r.locks.WithLock(channelID, func() {
		s := r.get(channelID)
		switch {
		case s == nil:
			res = failed(ReasonNotCreated)
		case s.Lifecycle == LifecycleStarted:
			res = failed(ReasonAlreadyStarted)
		case s.playerIndex(userID) >= 0:
			res = failed(ReasonAlreadyJoined)
		default:
			s.UserIDs = append(s.UserIDs, userID)
			res = succeeded()
		}
	})
	return res
}

// Leave removes a user from a session that has not started yet. The
// relative order of the remaining users is preserved.
func (r *Registry) Leave(channelID, userID string) Result {
	var res Result
	r.locks.WithLock(channelID, func() {
		s := r.get(channelID)
		switch {
		case s == nil:
			res = failed(ReasonNotCreated)
		case s.Lifecycle == LifecycleStarted:
			res = failed(ReasonAlreadyStarted)
		default:
			i := s.playerIndex(userID)
			if i < 0 {
				res = failed(ReasonNotJoined)
				return
			}
			s.UserIDs = append(s.UserIDs[:i], s.UserIDs[i+1:]...)
			res = succeeded()
		}
	})
	return res
}

// Start begins the game: validates the player count, builds the initial
// state and context, and renders the opening board.
func (r *Registry) Start(channelID, userID string) RenderResult {
	var res RenderResult
	r.locks.WithLock(channelID, func() {
		s := r.get(channelID)
		if s == nil {
			res.Reason = ReasonNotCreated
			return
		}
		if s.Lifecycle == LifecycleStarted {
			res.Reason = ReasonAlreadyStarted
			return
		}
		entry := r.entry(s)
		if !entry.Adapter.ValidNumPlayers(len(s.UserIDs)) {
			res.Reason = ReasonNumPlayerInvalid
			return
		}

		s.State = entry.Def.Setup(len(s.UserIDs))
		s.Context = engine.NewContext(len(s.UserIDs))
		s.Lifecycle = LifecycleStarted

		r.logger.Info().
			Str("channel", channelID).
			Str("game", s.GameName).
			Int("players", len(s.UserIDs)).
			Msg("game started")

		res.OK = true
		res.StateText, res.GameoverText = r.render(entry, s, engine.Spectator)
	})
	return res
}

// Destroy removes the session unconditionally. Restricting who may destroy
// is the caller's policy, not the registry's.
func (r *Registry) Destroy(channelID, userID string) Result {
	var res Result
	r.locks.WithLock(channelID, func() {
		if !r.remove(channelID) {
			res = failed(ReasonNotCreated)
			return
		}
		r.logger.Info().
			Str("channel", channelID).
			Str("user", userID).
			Msg("session destroyed")
		res = succeeded()
	})
	return res
}

// ProcessMove resolves the caller's seat, translates the raw arguments via
// the game's presentation adapter, and runs the engine. On success the
// session's (state, context) pair is replaced atomically and the returned
// rendering is the spectator-safe view for the channel.
func (r *Registry) ProcessMove(channelID, userID string, raw []string) RenderResult {
	var res RenderResult
	r.locks.WithLock(channelID, func() {
		s := r.get(channelID)
		if s == nil || s.Lifecycle != LifecycleStarted {
			res.Reason = ReasonNotStarted
			return
		}
		seat := s.playerIndex(userID)
		if seat < 0 {
			res.Reason = ReasonNotJoined
			return
		}
		entry := r.entry(s)

		spec := entry.Adapter.TransformMoveCommand(raw)
		if spec == nil {
			res.Reason = ReasonInvalidArgs
			return
		}

		cmd := engine.MoveCommand{
			Player: engine.PlayerByIndex(seat),
			Name:   spec.Name,
			Args:   spec.Args,
		}
		state, ctx, err := engine.Apply(entry.Def, s.State, s.Context, cmd)
		if err != nil {
			r.logger.Debug().
				Str("channel", channelID).
				Str("user", userID).
				Str("move", spec.Name).
				Err(err).
				Msg("move rejected")
			res.Reason = ReasonInvalidMove
			return
		}
		s.State, s.Context = state, ctx

		res.OK = true
		res.StateText, res.GameoverText = r.render(entry, s, engine.Spectator)

		if ctx.Gameover != nil {
			r.logger.Info().
				Str("channel", channelID).
				Str("game", s.GameName).
				Int("turns", ctx.Turn).
				Msg("game finished")
			if r.autoDestroy {
				r.remove(channelID)
			}
		}
	})
	return res
}

// Render re-renders the current game. An empty userID requests the
// spectator view; a non-empty one must belong to a joined player and
// yields that player's private view.
func (r *Registry) Render(channelID, userID string) RenderResult {
	var res RenderResult
	r.locks.WithLock(channelID, func() {
		s := r.get(channelID)
		if s == nil || s.Lifecycle != LifecycleStarted {
			res.Reason = ReasonNotStarted
			return
		}
		player := engine.Spectator
		if userID != "" {
			seat := s.playerIndex(userID)
			if seat < 0 {
				res.Reason = ReasonNotJoined
				return
			}
			player = engine.PlayerByIndex(seat)
		}
		entry := r.entry(s)
		res.OK = true
		res.StateText, res.GameoverText = r.render(entry, s, player)
	})
	return res
}

// GetSessionInfo returns a snapshot of the channel's session.
func (r *Registry) GetSessionInfo(channelID string) (Info, Result) {
	var (
		info Info
		res  Result
	)
	r.locks.WithLock(channelID, func() {
		s := r.get(channelID)
		if s == nil {
			res = failed(ReasonNotCreated)
			return
		}
		info = Info{
			ChannelID: s.ChannelID,
			GameName:  s.GameName,
			CreatedBy: s.CreatedBy,
			UserIDs:   append([]string(nil), s.UserIDs...),
			Lifecycle: s.Lifecycle,
		}
		if s.Lifecycle == LifecycleStarted {
			info.Turn = s.Context.Turn
			info.CurrentPlayer = s.Context.CurrentPlayer
			info.Finished = s.Context.Gameover != nil
		}
		res = succeeded()
	})
	return info, res
}

// entry resolves a session's catalog entry. A session referencing an
// unregistered game is a wiring defect, not user input.
func (r *Registry) entry(s *Session) game.Entry {
	entry, ok := r.catalog.Get(s.GameName)
	if !ok {
		panic(fmt.Sprintf("session: game %q of channel %q is not in the catalog", s.GameName, s.ChannelID))
	}
	return entry
}

func (r *Registry) render(entry game.Entry, s *Session, player engine.PlayerID) (stateText, gameoverText string) {
	view := game.View{
		State:    engine.Project(entry.Def, s.State, s.Context, player),
		Gameover: s.Context.Gameover,
	}
	return entry.Adapter.StateText(view), entry.Adapter.GameoverText(view)
}
