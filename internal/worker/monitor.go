package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/service/booking"
	"github.com/myselfshravan/SponsorCatcher/pkg/contextx"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
	"github.com/myselfshravan/SponsorCatcher/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Monitor states as reported by Status.
const (
	StateIdle       = "idle"
	StateWatching   = "watching"
	StateAttempting = "attempting"
	StateStopped    = "stopped"
)

const defaultInterval = 30 * time.Second

// AlertKind tags what an Alert announces.
type AlertKind string

const (
	AlertAvailability AlertKind = "availability"
	AlertOutcome      AlertKind = "outcome"
)

// Alert is what the monitor pushes to the notification channel: either a
// keyword that just came available or a finished attempt.
type Alert struct {
	Kind    AlertKind
	Keyword string
	Outcome entity.Outcome
	At      time.Time
}

// Status is a point-in-time snapshot of the monitor for the control API.
type Status struct {
	State        string
	RunID        string
	StartedAt    time.Time
	Cycles       int
	Interval     time.Duration
	AffinityHint string
	Blocklist    []string
	LastOutcome  *entity.Outcome
}

// Monitor polls the storefront on an interval, running a lightweight probe
// pass each cycle and a full reservation attempt only when a probe reports
// availability. It stops on its own once an attempt ends terminally.
type Monitor struct {
	svc      *booking.Service
	interval time.Duration
	alerts   chan<- Alert

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	done       chan struct{}
	wg         sync.WaitGroup

	state        string
	runID        string
	startedAt    time.Time
	cycles       int
	affinityHint string
	blocklist    []string
	lastOutcome  *entity.Outcome
}

func NewMonitor(svc *booking.Service, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Monitor{
		svc:      svc,
		interval: interval,
		state:    StateIdle,
	}
}

// WithAlerts routes availability and outcome alerts to the channel. Sends
// never block the watch loop: when the channel is full the alert is
// dropped.
func (m *Monitor) WithAlerts(alerts chan<- Alert) *Monitor {
	m.alerts = alerts

	return m
}

// Start launches the watch loop in its own goroutine. A second Start while
// running is refused.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isRunning {
		return errors.New("monitor is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	runID := xid.New().String()
	runCtx = contextx.WithRunID(runCtx, contextx.RunID(runID))

	done := make(chan struct{})

	m.cancelFunc = cancel
	m.isRunning = true
	m.done = done
	m.state = StateWatching
	m.runID = runID
	m.startedAt = time.Now()
	m.cycles = 0
	m.lastOutcome = nil

	m.wg.Add(1)

	go func() {
		defer m.wg.Done()
		defer close(done)
		defer func() {
			m.mu.Lock()
			m.isRunning = false
			m.cancelFunc = nil
			m.state = StateStopped
			m.mu.Unlock()
		}()

		if err := m.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(runCtx).Error("monitor stopped", logx.Error(err))
		}
	}()

	return nil
}

// Stop cancels the watch loop and waits for it to wind down.
func (m *Monitor) Stop() {
	m.mu.Lock()

	if !m.isRunning {
		m.mu.Unlock()

		return
	}

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.mu.Unlock()

	m.wg.Wait()
}

func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.isRunning
}

// Done is closed when the loop from the most recent Start winds down,
// whether it stopped on a terminal outcome or was cancelled. Before the
// first Start the returned channel is nil and blocks forever.
func (m *Monitor) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.done
}

// Status returns the last snapshot the loop published.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := Status{
		State:        m.state,
		RunID:        m.runID,
		StartedAt:    m.startedAt,
		Cycles:       m.cycles,
		Interval:     m.interval,
		AffinityHint: m.affinityHint,
		Blocklist:    append([]string(nil), m.blocklist...),
	}

	if m.lastOutcome != nil {
		outcome := *m.lastOutcome
		status.LastOutcome = &outcome
	}

	return status
}

// Run drives watch cycles until the context ends or an attempt finishes
// terminally. Callers that want the background form use Start.
func (m *Monitor) Run(ctx context.Context) error {
	logger(ctx).Info(
		"monitor started",
		slog.String(logx.FieldRunID, m.runID),
		slog.Duration("interval", m.interval),
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		metrics.MonitorCyclesTotal.Inc()
		m.bumpCycle()

		keyword, found := m.svc.ProbePass(ctx)
		m.publishRunState()

		if found {
			m.sendAlert(ctx, Alert{Kind: AlertAvailability, Keyword: keyword, At: time.Now()})

			outcome := m.attempt(ctx)

			m.sendAlert(ctx, Alert{Kind: AlertOutcome, Keyword: outcome.Keyword, Outcome: outcome, At: time.Now()})

			if outcome.Kind.Terminal() {
				logger(ctx).Info(
					"monitor finished",
					slog.String(logx.FieldRunID, m.runID),
					slog.String(logx.FieldOutcome, string(outcome.Kind)),
				)

				return nil
			}
		}

		if err := m.sleep(ctx); err != nil {
			return err
		}
	}
}

func (m *Monitor) attempt(ctx context.Context) entity.Outcome {
	m.setState(StateAttempting)

	outcome := m.svc.Attempt(ctx)

	m.mu.Lock()
	m.state = StateWatching
	m.lastOutcome = &outcome
	m.mu.Unlock()

	m.publishRunState()

	return outcome
}

// publishRunState copies blocklist and affinity out of the run state while
// still on the loop goroutine, so Status never touches it concurrently.
func (m *Monitor) publishRunState() {
	state := m.svc.State()
	blocklist := state.Blocklist()
	affinity := state.AffinityHint()

	m.mu.Lock()
	m.blocklist = blocklist
	m.affinityHint = affinity
	m.mu.Unlock()
}

func (m *Monitor) bumpCycle() {
	m.mu.Lock()
	m.cycles++
	m.mu.Unlock()
}

func (m *Monitor) setState(state string) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

func (m *Monitor) sendAlert(ctx context.Context, alert Alert) {
	if m.alerts == nil {
		return
	}

	select {
	case m.alerts <- alert:
	default:
		logger(ctx).Warn("alert channel full, dropping alert", slog.String("kind", string(alert.Kind)))
	}
}

// sleep waits out the polling interval in one-second slices so a Stop is
// honored quickly even on long intervals.
func (m *Monitor) sleep(ctx context.Context) error {
	remaining := m.interval

	for remaining > 0 {
		slice := time.Second
		if remaining < slice {
			slice = remaining
		}

		timer := time.NewTimer(slice)

		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}

		remaining -= slice
	}

	return nil
}
