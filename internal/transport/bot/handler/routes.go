package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/myselfshravan/SponsorCatcher/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, ownerChatID int64) {
	owner := bh.Group(th.AnyMessage())
	owner.Use(middleware.OwnerOnly(ownerChatID))

	owner.HandleMessage(h.OnStart, th.CommandEqual("start"))
	owner.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	owner.HandleMessage(h.OnEvents, th.CommandEqual("events"))
	owner.HandleMessage(h.OnStop, th.CommandEqual("stop"))
}
