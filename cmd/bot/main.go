// Package main is the entry point for the Telegram board-game bot.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"telegram-boardgame-bot/internal/bot"
	"telegram-boardgame-bot/internal/config"
	"telegram-boardgame-bot/internal/game"
	"telegram-boardgame-bot/internal/game/sevenhandpoker"
	"telegram-boardgame-bot/internal/game/tictactoe"
	"telegram-boardgame-bot/internal/session"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Build the game catalog
	catalog := game.NewCatalog()

	if cfg.Games.IsGameEnabled(tictactoe.Name) {
		if err := catalog.Register(tictactoe.Definition(), tictactoe.Adapter{}); err != nil {
			log.Fatal().Err(err).Msg("Failed to register tictactoe")
		}
	}
	if cfg.Games.IsGameEnabled(sevenhandpoker.Name) {
		if err := catalog.Register(sevenhandpoker.Definition(), sevenhandpoker.Adapter{}); err != nil {
			log.Fatal().Err(err).Msg("Failed to register sevenhandpoker")
		}
	}

	log.Info().
		Int("game_count", catalog.Count()).
		Strs("games", catalog.Names()).
		Msg("Games registered")

	// Session registry, one game per chat channel
	sessions := session.NewRegistry(catalog, cfg.Session.AutoDestroyFinished, log.Logger)

	// Initialize bot
	deps := &bot.Dependencies{
		Config:   cfg,
		Sessions: sessions,
		Catalog:  catalog,
	}
	telegramBot, err := bot.New(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}
