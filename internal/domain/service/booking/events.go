package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/myselfshravan/SponsorCatcher/pkg/contextx"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

// Stage names the orchestration step an event belongs to. Stages follow the
// attempt's state machine plus the monitor's outer cycle.
type Stage string

const (
	StageMonitor    Stage = "monitor"
	StageLogin      Stage = "login"
	StageSearch     Stage = "search"
	StageProbe      Stage = "probe"
	StageAddToCart  Stage = "add_to_cart"
	StageCartReview Stage = "cart_review"
	StageReconcile  Stage = "reconcile"
	StageCheckout   Stage = "checkout"
	StagePayment    Stage = "payment"
	StageSubmit     Stage = "submit"
	StageOutcome    Stage = "outcome"
)

// Event is one human-readable progress notification. The stream is one-way:
// the orchestrator only ever emits, it never reads anything back.
type Event struct {
	At      time.Time `json:"at"`
	RunID   string    `json:"runId"`
	Stage   Stage     `json:"stage"`
	Keyword string    `json:"keyword,omitempty"`
	Message string    `json:"message"`
}

type Sink interface {
	Emit(event Event)
}

type SinkFunc func(event Event)

func (f SinkFunc) Emit(event Event) {
	f(event)
}

type multiSink []Sink

func (m multiSink) Emit(event Event) {
	for _, sink := range m {
		sink.Emit(event)
	}
}

// MultiSink fans one event out to every sink, in order, on the caller's
// goroutine. Sinks that may block should buffer internally.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

// NopSink drops everything.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// LogSink mirrors events into the context logger.
func LogSink(ctx context.Context) Sink {
	return SinkFunc(func(event Event) {
		logger(ctx).Info(
			event.Message,
			slog.String(logx.FieldStage, string(event.Stage)),
			slog.String(logx.FieldKeyword, event.Keyword),
			slog.String(logx.FieldRunID, event.RunID),
		)
	})
}

func runIDString(ctx context.Context) string {
	runID, _ := contextx.RunIDFromContext(ctx) //nolint:errcheck // empty id is fine
	return runID.String()
}

func (s *Service) emit(ctx context.Context, stage Stage, keyword, format string, args ...any) {
	s.sink.Emit(Event{
		At:      time.Now(),
		RunID:   runIDString(ctx),
		Stage:   stage,
		Keyword: keyword,
		Message: fmt.Sprintf(format, args...),
	})
}
