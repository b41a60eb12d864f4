package handler

import (
	"github.com/myselfshravan/SponsorCatcher/internal/domain/service/booking"
	"github.com/myselfshravan/SponsorCatcher/internal/worker"
)

// WatchControl is the slice of the monitor the bot commands drive.
type WatchControl interface {
	Status() worker.Status
	Stop()
	IsRunning() bool
}

// EventTail hands out the newest progress events.
type EventTail interface {
	Tail(limit int) []booking.Event
}

type Handler struct {
	watch  WatchControl
	events EventTail
}

func New(watch WatchControl, events EventTail) *Handler {
	return &Handler{
		watch:  watch,
		events: events,
	}
}
