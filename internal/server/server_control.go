package server

import (
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/service/booking"
	"github.com/myselfshravan/SponsorCatcher/internal/worker"
	"github.com/myselfshravan/SponsorCatcher/pkg/errcodes"
	"github.com/myselfshravan/SponsorCatcher/pkg/httpx/reply"
)

const defaultEventLimit = 50

type monitorControl interface {
	Status() worker.Status
	Stop()
	IsRunning() bool
}

type eventTail interface {
	Tail(limit int) []booking.Event
}

// ControlServer exposes the running watch over HTTP: inspect it, read its
// event tail, stop it.
type ControlServer struct {
	monitor monitorControl
	events  eventTail
}

func NewControlServer(monitor monitorControl, events eventTail) ControlServer {
	return ControlServer{
		monitor: monitor,
		events:  events,
	}
}

func (s ControlServer) getV1Status(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTStatus(s.monitor.Status()))

	return nil
}

func (s ControlServer) getV1Events(w http.ResponseWriter, r *http.Request) error {
	limit := defaultEventLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return failure.NewInvalidArgumentError(
				"limit must be a positive integer",
				failure.WithCode(errcodes.InvalidRunRequest),
				failure.WithDescription("limit must be a positive integer"),
			)
		}

		limit = parsed
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTEvents(s.events.Tail(limit)))

	return nil
}

func (s ControlServer) postV1Stop(w http.ResponseWriter, _ *http.Request) error {
	if !s.monitor.IsRunning() {
		return failure.NewConflictError(
			"watch loop is not running",
			failure.WithCode(errcodes.RunNotActive),
			failure.WithDescription("watch loop is not running"),
		)
	}

	// Stop blocks until the loop winds down, which is quick: the loop
	// wakes at least once a second.
	s.monitor.Stop()

	reply.Accepted(w)

	return nil
}
