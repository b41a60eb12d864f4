package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// OwnerOnly drops every update that did not come from the operator chat.
// Strangers get no reply at all, the bot stays silent for them.
func OwnerOnly(chatID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if update.Message == nil || update.Message.Chat.ID != chatID {
			return nil
		}

		return ctx.Next(update)
	}
}
