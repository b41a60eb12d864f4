package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/patrickmn/go-cache"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/internal/worker"
	"github.com/myselfshravan/SponsorCatcher/pkg/contextx"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// A keyword that flaps between available and sold out would otherwise ping
// the chat on every cycle.
const availabilityMuteWindow = 10 * time.Minute

// AlertBot pushes availability hits and terminal attempt outcomes to a
// Telegram chat.
type AlertBot struct {
	bot    *telego.Bot
	chatID int64
	seen   *cache.Cache
}

func NewAlertBot(token string, chatID int64) (*AlertBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &AlertBot{
		bot:    bot,
		chatID: chatID,
		seen:   cache.New(availabilityMuteWindow, time.Minute),
	}, nil
}

// Run consumes alerts until the channel closes or the context ends.
func (b *AlertBot) Run(ctx context.Context, alerts <-chan worker.Alert) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case alert, ok := <-alerts:
			if !ok {
				return nil
			}

			if err := b.send(ctx, alert); err != nil {
				logger(ctx).Error("failed to send alert", logx.Error(err))
			}
		}
	}
}

func (b *AlertBot) send(ctx context.Context, alert worker.Alert) error {
	switch alert.Kind {
	case worker.AlertAvailability:
		return b.sendAvailability(ctx, alert)
	case worker.AlertOutcome:
		return b.sendOutcome(ctx, alert.Outcome)
	default:
		return nil
	}
}

func (b *AlertBot) sendAvailability(ctx context.Context, alert worker.Alert) error {
	key := strings.ToLower(alert.Keyword)
	if _, muted := b.seen.Get(key); muted {
		return nil
	}

	b.seen.SetDefault(key, struct{}{})

	text := fmt.Sprintf(
		"🎯 <b>Sponsorship available!</b>\n\n"+
			"<b>Keyword:</b> %s\n"+
			"Attempting to claim it now.",
		alert.Keyword,
	)

	return b.SendText(ctx, text)
}

// sendOutcome announces terminal outcomes only. Recoverable misses stay in
// the logs, a stopped run needs no push either.
func (b *AlertBot) sendOutcome(ctx context.Context, outcome entity.Outcome) error {
	var text string

	switch outcome.Kind {
	case entity.OutcomeSuccess:
		text = fmt.Sprintf(
			"✅ <b>Order submitted!</b>\n\n"+
				"<b>Item:</b> %s\n"+
				"<b>Total:</b> %s",
			outcome.Title,
			totalOrUnknown(outcome.Total),
		)
	case entity.OutcomeAwaitingManualSubmit:
		text = fmt.Sprintf(
			"🛒 <b>Cart is ready, finish the order manually.</b>\n\n"+
				"<b>Item:</b> %s\n"+
				"<b>Total:</b> %s",
			outcome.Title,
			totalOrUnknown(outcome.Total),
		)
	case entity.OutcomeSessionError:
		text = "⚠️ <b>Session problem, the watcher needs attention.</b>\n\n" + outcome.Warning
	default:
		return nil
	}

	return b.SendText(ctx, text)
}

// SendText sends an HTML-formatted message to the configured chat.
func (b *AlertBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func totalOrUnknown(total string) string {
	if total == "" {
		return "unknown"
	}

	return total
}
