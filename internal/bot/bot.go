// Package bot provides the Telegram bot initialization and handler registration.
package bot

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-boardgame-bot/internal/config"
	"telegram-boardgame-bot/internal/game"
	"telegram-boardgame-bot/internal/handler"
	"telegram-boardgame-bot/internal/session"
)

const helpText = `I host turn-based games in this chat.

/games - list available games
/newgame <game> - open a table
/join - take a seat
/leave - give up your seat
/begin - start the game
/move <args...> - make your move
/board - show the public board
/hand - DM you your private hand
/status - who's turn is it?
/endgame - end the game (creator only)`

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot            *tele.Bot
	cfg            *config.Config
	sessions       *session.Registry
	catalog        *game.Catalog
	sessionHandler *handler.SessionHandler
}

// Dependencies holds all the dependencies needed by the bot handlers.
type Dependencies struct {
	Config   *config.Config
	Sessions *session.Registry
	Catalog  *game.Catalog
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:      teleBot,
		cfg:      deps.Config,
		sessions: deps.Sessions,
		catalog:  deps.Catalog,
	}

	b.sessionHandler = handler.NewSessionHandler(deps.Config, deps.Sessions, deps.Catalog)

	b.registerMiddleware()
	b.registerHandlers()

	return b, nil
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(WhitelistMiddleware(b.cfg))
	b.bot.Use(LoggingMiddleware())
}

// registerHandlers registers all command handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/help", b.handleStart)

	b.bot.Handle("/games", b.sessionHandler.HandleGames)
	b.bot.Handle("/newgame", b.sessionHandler.HandleNewGame)
	b.bot.Handle("/join", b.sessionHandler.HandleJoin)
	b.bot.Handle("/leave", b.sessionHandler.HandleLeave)
	b.bot.Handle("/begin", b.sessionHandler.HandleBegin)
	b.bot.Handle("/move", b.sessionHandler.HandleMove)
	b.bot.Handle("/board", b.sessionHandler.HandleBoard)
	b.bot.Handle("/hand", b.sessionHandler.HandleHand)
	b.bot.Handle("/status", b.sessionHandler.HandleStatus)
	b.bot.Handle("/endgame", b.sessionHandler.HandleEndGame)
}

// handleStart replies with usage help.
func (b *Bot) handleStart(c tele.Context) error {
	return c.Reply(helpText)
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
