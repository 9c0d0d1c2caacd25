package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
)

// Serve polls Telegram for updates until ctx is cancelled.
func Serve(ctx context.Context, token string, h *Handler) error {
	if token == "" {
		return errors.New("telegram bot token is not set")
	}

	b, err := bot.New(token, bot.WithDefaultHandler(h.BotHandler()))
	if err != nil {
		return fmt.Errorf("error creating bot: %w", err)
	}

	h.log.Info().Msg("telegram bot started")
	b.Start(ctx)
	h.Wait()
	h.log.Info().Msg("telegram bot stopped")
	return nil
}
