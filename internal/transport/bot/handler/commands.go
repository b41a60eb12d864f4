package handler

import (
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/myselfshravan/SponsorCatcher/internal/worker"
)

const eventTailLimit = 10

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, strings.Join([]string{
		"<b>sponsorcatcher</b>",
		"",
		"/status - where the watch is right now",
		"/events - recent progress events",
		"/stop - stop the watch and shut down",
	}, "\n"))
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	status := h.watch.Status()

	lines := []string{
		fmt.Sprintf("📊 <b>Watch %s</b>", stateBadge(status.State)),
		fmt.Sprintf("Run: <code>%s</code>", status.RunID),
		fmt.Sprintf("Cycles: %d, every %s", status.Cycles, status.Interval),
	}

	if status.AffinityHint != "" {
		lines = append(lines, "Affinity: "+html.EscapeString(status.AffinityHint))
	}

	if len(status.Blocklist) > 0 {
		lines = append(lines, "Blocked: "+html.EscapeString(strings.Join(status.Blocklist, ", ")))
	}

	if status.LastOutcome != nil {
		lines = append(lines, fmt.Sprintf("Last outcome: %s", status.LastOutcome.Kind))
	}

	return h.sendHTML(ctx, msg.Chat.ID, strings.Join(lines, "\n"))
}

func (h *Handler) OnEvents(ctx *th.Context, msg telego.Message) error {
	events := h.events.Tail(eventTailLimit)
	if len(events) == 0 {
		return h.send(ctx, msg.Chat.ID, "no events yet")
	}

	lines := make([]string, 0, len(events))
	for _, event := range events {
		lines = append(lines, fmt.Sprintf(
			"%s <i>%s</i> %s",
			event.At.Format("15:04:05"),
			event.Stage,
			html.EscapeString(event.Message),
		))
	}

	return h.sendHTML(ctx, msg.Chat.ID, strings.Join(lines, "\n"))
}

func (h *Handler) OnStop(ctx *th.Context, msg telego.Message) error {
	if !h.watch.IsRunning() {
		return h.send(ctx, msg.Chat.ID, "the watch is not running")
	}

	// Confirm before stopping: stopping the watch winds the whole
	// process down, including this bot.
	if err := h.send(ctx, msg.Chat.ID, "stopping the watch"); err != nil {
		return err
	}

	h.watch.Stop()

	return nil
}

func stateBadge(state string) string {
	switch state {
	case worker.StateWatching:
		return "🟢 " + state
	case worker.StateAttempting:
		return "🛒 " + state
	case worker.StateStopped:
		return "🔴 " + state
	default:
		return state
	}
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})

	return err
}
