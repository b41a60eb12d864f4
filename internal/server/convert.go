package server

import (
	"time"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/service/booking"
	"github.com/myselfshravan/SponsorCatcher/internal/worker"
	"github.com/myselfshravan/SponsorCatcher/pkg/lox"
	"github.com/myselfshravan/SponsorCatcher/pkg/rest"
)

func newRESTStatus(status worker.Status) rest.Status {
	out := rest.Status{
		State:        status.State,
		RunID:        status.RunID,
		StartedAt:    status.StartedAt,
		Cycles:       status.Cycles,
		IntervalSec:  int(status.Interval / time.Second),
		AffinityHint: status.AffinityHint,
		Blocklist:    status.Blocklist,
	}

	if out.Blocklist == nil {
		out.Blocklist = []string{}
	}

	if status.LastOutcome != nil {
		outcome := newRESTOutcome(*status.LastOutcome)
		out.LastOutcome = &outcome
	}

	return out
}

func newRESTOutcome(outcome entity.Outcome) rest.Outcome {
	return rest.Outcome{
		Kind:    string(outcome.Kind),
		Keyword: outcome.Keyword,
		Title:   outcome.Title,
		Total:   outcome.Total,
		At:      outcome.At,
	}
}

func newRESTEvents(events []booking.Event) rest.Events {
	return rest.Events{
		Events: lox.Map(events, func(event booking.Event) rest.Event {
			return rest.Event{
				At:      event.At,
				Stage:   string(event.Stage),
				Message: event.Message,
			}
		}),
	}
}
