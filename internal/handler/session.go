// Package handler provides Telegram bot command handlers. Handlers
// translate chat commands into session registry operations and map the
// registry's reason codes back to user-facing messages.
package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-boardgame-bot/internal/config"
	"telegram-boardgame-bot/internal/game"
	"telegram-boardgame-bot/internal/session"
)

// SessionHandler handles game session commands for a chat.
type SessionHandler struct {
	cfg      *config.Config
	sessions *session.Registry
	catalog  *game.Catalog
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(cfg *config.Config, sessions *session.Registry, catalog *game.Catalog) *SessionHandler {
	return &SessionHandler{
		cfg:      cfg,
		sessions: sessions,
		catalog:  catalog,
	}
}

// channelID keys sessions by the Telegram chat.
func channelID(c tele.Context) string {
	return strconv.FormatInt(c.Chat().ID, 10)
}

func userID(c tele.Context) string {
	return strconv.FormatInt(c.Sender().ID, 10)
}

// reasonText maps every registry reason to a user-facing message. The
// switch is exhaustive over session.Reason; a new reason without a message
// here is a bug we want to hear about loudly.
func reasonText(r session.Reason) string {
	switch r {
	case session.ReasonAlreadyCreated:
		return "a game already exists in this chat, finish it with /endgame first"
	case session.ReasonInvalidGameName:
		return "unknown game, see /games for what's available"
	case session.ReasonNotCreated:
		return "no game in this chat, create one with /newgame"
	case session.ReasonAlreadyStarted:
		return "the game has already started"
	case session.ReasonAlreadyJoined:
		return "you already joined this game"
	case session.ReasonNotJoined:
		return "you are not part of this game"
	case session.ReasonNumPlayerInvalid:
		return "wrong number of players for this game"
	case session.ReasonNotStarted:
		return "no running game in this chat, start one with /begin"
	case session.ReasonInvalidArgs:
		return "could not understand that move, check the game's move format"
	case session.ReasonInvalidMove:
		return "that move is not allowed right now"
	default:
		log.Error().Str("reason", string(r)).Msg("Unmapped failure reason")
		return "something went wrong"
	}
}

// HandleGames handles the /games command.
func (h *SessionHandler) HandleGames(c tele.Context) error {
	names := h.catalog.Names()
	if len(names) == 0 {
		return c.Reply("no games are available")
	}
	return c.Reply("available games:\n" + strings.Join(names, "\n"))
}

// HandleNewGame handles /newgame <game>.
func (h *SessionHandler) HandleNewGame(c tele.Context) error {
	if c.Sender() == nil || c.Chat() == nil {
		return nil
	}
	args := c.Args()
	if len(args) != 1 {
		return c.Reply("usage: /newgame <game>\nsee /games for the list")
	}

	res := h.sessions.Create(args[0], channelID(c), userID(c))
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	return c.Reply(fmt.Sprintf("🎲 %s created. others can /join, then the table starts with /begin", args[0]))
}

// HandleJoin handles the /join command.
func (h *SessionHandler) HandleJoin(c tele.Context) error {
	if c.Sender() == nil || c.Chat() == nil {
		return nil
	}
	res := h.sessions.Join(channelID(c), userID(c))
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	return c.Reply("✅ you're in")
}

// HandleLeave handles the /leave command.
func (h *SessionHandler) HandleLeave(c tele.Context) error {
	if c.Sender() == nil || c.Chat() == nil {
		return nil
	}
	res := h.sessions.Leave(channelID(c), userID(c))
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	return c.Reply("👋 you left the game")
}

// HandleBegin handles the /begin command, starting the created game.
func (h *SessionHandler) HandleBegin(c tele.Context) error {
	if c.Sender() == nil || c.Chat() == nil {
		return nil
	}
	res := h.sessions.Start(channelID(c), userID(c))
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	return c.Reply("▶️ game on!\n" + res.StateText)
}

// HandleMove handles /move <args…>. The reply carries the spectator-safe
// rendering; private hands go through /hand.
func (h *SessionHandler) HandleMove(c tele.Context) error {
	if c.Sender() == nil || c.Chat() == nil {
		return nil
	}
	res := h.sessions.ProcessMove(channelID(c), userID(c), c.Args())
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	text := res.StateText
	if res.GameoverText != "" {
		text += "\n🏁 " + res.GameoverText
	}
	return c.Reply(text)
}

// HandleBoard handles the /board command with the public view.
func (h *SessionHandler) HandleBoard(c tele.Context) error {
	if c.Chat() == nil {
		return nil
	}
	res := h.sessions.Render(channelID(c), "")
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	text := res.StateText
	if res.GameoverText != "" {
		text += "\n🏁 " + res.GameoverText
	}
	return c.Reply(text)
}

// HandleHand handles the /hand command. The player's private view is sent
// as a direct message so hidden cards never land in the group chat.
func (h *SessionHandler) HandleHand(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || c.Chat() == nil {
		return nil
	}
	res := h.sessions.Render(channelID(c), userID(c))
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	if _, err := c.Bot().Send(sender, res.StateText); err != nil {
		log.Debug().Err(err).Int64("user_id", sender.ID).Msg("Failed to DM private view")
		return c.Reply("❌ I can't message you directly, /start me in a private chat first")
	}
	if c.Chat().Type != tele.ChatPrivate {
		return c.Reply("📬 sent you your hand privately")
	}
	return nil
}

// HandleEndGame handles the /endgame command. Destroying a session is
// restricted to its creator and configured admins; the registry itself
// leaves authorization to us.
func (h *SessionHandler) HandleEndGame(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || c.Chat() == nil {
		return nil
	}
	ch := channelID(c)
	info, res := h.sessions.GetSessionInfo(ch)
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	if info.CreatedBy != userID(c) && !h.cfg.IsAdmin(sender.ID) {
		return c.Reply("❌ only the game's creator can end it")
	}
	if res := h.sessions.Destroy(ch, userID(c)); !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	return c.Reply("🗑 game ended")
}

// HandleStatus handles the /status command.
func (h *SessionHandler) HandleStatus(c tele.Context) error {
	if c.Chat() == nil {
		return nil
	}
	info, res := h.sessions.GetSessionInfo(channelID(c))
	if !res.OK {
		return c.Reply("❌ " + reasonText(res.Reason))
	}
	text := fmt.Sprintf("game: %s\nplayers: %d\nlifecycle: %s", info.GameName, len(info.UserIDs), info.Lifecycle)
	if info.Lifecycle == session.LifecycleStarted && !info.Finished {
		text += fmt.Sprintf("\nturn %d, player %s to move", info.Turn, info.CurrentPlayer)
	}
	return c.Reply(text)
}
