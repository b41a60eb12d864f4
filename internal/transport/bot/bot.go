package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/myselfshravan/SponsorCatcher/internal/transport/bot/handler"
	"github.com/myselfshravan/SponsorCatcher/pkg/contextx"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const longPollTimeout = 60

// Bot is the operator command surface over Telegram: status, events, stop.
// It answers the configured owner chat and nobody else.
type Bot struct {
	bot        *telego.Bot
	botHandler *th.BotHandler
}

func New(
	token string,
	ownerChatID int64,
	watch handler.WatchControl,
	events handler.EventTail,
) (*Bot, error) {
	tgBot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	updates, err := tgBot.UpdatesViaLongPolling(context.Background(), &telego.GetUpdatesParams{
		Timeout: longPollTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(tgBot, updates)
	if err != nil {
		return nil, fmt.Errorf("th.NewBotHandler: %w", err)
	}

	handler.New(watch, events).RegisterRoutes(botHandler, ownerChatID)

	return &Bot{
		bot:        tgBot,
		botHandler: botHandler,
	}, nil
}

// Run blocks until the context ends, then winds the update handler down.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.botHandler.Start(); err != nil {
			logger(ctx).Error("botHandler.Start", logx.Error(err))
		}
	}()

	<-ctx.Done()

	if err := b.botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	return ctx.Err()
}
