package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/myselfshravan/SponsorCatcher/internal/config"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/service/booking"
	"github.com/myselfshravan/SponsorCatcher/internal/infrastructure/notifier"
	"github.com/myselfshravan/SponsorCatcher/internal/infrastructure/persistence"
	"github.com/myselfshravan/SponsorCatcher/internal/infrastructure/storefront"
	"github.com/myselfshravan/SponsorCatcher/internal/server"
	"github.com/myselfshravan/SponsorCatcher/internal/transport/bot"
	"github.com/myselfshravan/SponsorCatcher/internal/worker"
	"github.com/myselfshravan/SponsorCatcher/pkg/application/connectors"
	"github.com/myselfshravan/SponsorCatcher/pkg/application/modules"
	"github.com/myselfshravan/SponsorCatcher/pkg/contextx"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
	"github.com/myselfshravan/SponsorCatcher/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	alertBuffer       = 16
	readHeaderTimeout = 10 * time.Second
)

// Options is what the CLI decides per invocation, everything else comes
// from the environment and the booking file.
type Options struct {
	BookingPath string
	Name        string
	Version     string
}

// Watch runs the full watch mode: the monitor loop plus the control,
// probe and metric servers. It returns when the watch ends on its own,
// is stopped over the API, or the context is cancelled.
func Watch(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, bookingCfg, err := loadConfigs(opts.BookingPath)
	if err != nil {
		return err
	}

	session, err := storefront.NewSession(cfg.Storefront)
	if err != nil {
		return fmt.Errorf("storefront.NewSession: %w", err)
	}

	tail := server.NewTailSink(0)

	svc := newBookingService(session, bookingCfg).
		WithSink(booking.MultiSink(booking.LogSink(ctx), tail))

	if cfg.Postgres.Enabled() {
		pg := newPostgres(cfg.Postgres)
		defer pg.Close(ctx)

		db := pg.Client(ctx)
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("db.PingContext: %w", err)
		}

		svc.WithRecorder(persistence.NewAttemptJournal(db))
	}

	monitor := worker.NewMonitor(svc, bookingCfg.Monitoring.Interval())

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Bot.Enabled() {
		alertBot, err := notifier.NewAlertBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewAlertBot: %w", err)
		}

		alerts := make(chan worker.Alert, alertBuffer)
		monitor.WithAlerts(alerts)

		g.Go(func() error {
			if err := alertBot.Run(ctx, alerts); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("alertBot.Run: %w", err)
			}

			return nil
		})

		commandBot, err := bot.New(cfg.Bot.Token, cfg.Bot.ChatID, monitor, tail)
		if err != nil {
			return fmt.Errorf("bot.New: %w", err)
		}

		g.Go(func() error {
			if err := commandBot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("commandBot.Run: %w", err)
			}

			return nil
		})
	}

	runServers(ctx, g, cfg.Servers, opts, monitor, tail)

	if err := monitor.Start(ctx); err != nil {
		cancel()
		_ = g.Wait() //nolint:errcheck // the start failure is the error that matters

		return fmt.Errorf("monitor.Start: %w", err)
	}

	// The servers outlive the loop only until it finishes: a terminal
	// outcome or a stop over the API winds the whole process down.
	g.Go(func() error {
		select {
		case <-ctx.Done():
			monitor.Stop()
		case <-monitor.Done():
			cancel()
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// RunOnce performs a single reservation attempt and returns its outcome.
func RunOnce(ctx context.Context, opts Options) (entity.Outcome, error) {
	cfg, bookingCfg, err := loadConfigs(opts.BookingPath)
	if err != nil {
		return entity.Outcome{}, err
	}

	session, err := storefront.NewSession(cfg.Storefront)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("storefront.NewSession: %w", err)
	}

	svc := newBookingService(session, bookingCfg).
		WithSink(booking.LogSink(ctx))

	if cfg.Postgres.Enabled() {
		pg := newPostgres(cfg.Postgres)
		defer pg.Close(ctx)

		db := pg.Client(ctx)
		if err := db.PingContext(ctx); err != nil {
			return entity.Outcome{}, fmt.Errorf("db.PingContext: %w", err)
		}

		svc.WithRecorder(persistence.NewAttemptJournal(db))
	}

	ctx = contextx.WithRunID(ctx, contextx.RunID(xid.New().String()))

	return svc.Attempt(ctx), nil
}

func loadConfigs(bookingPath string) (config.Config, config.Booking, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, config.Booking{}, fmt.Errorf("config.Load: %w", err)
	}

	bookingCfg, err := config.LoadBooking(bookingPath)
	if err != nil {
		return config.Config{}, config.Booking{}, fmt.Errorf("config.LoadBooking: %w", err)
	}

	return cfg, bookingCfg, nil
}

func newBookingService(session *storefront.Session, bookingCfg config.Booking) *booking.Service {
	return booking.NewService(session, booking.Params{
		Candidates:      entity.CandidatesFromKeywords(bookingCfg.SearchKeywords),
		Payment:         bookingCfg.Payment,
		AuthorizeSubmit: bookingCfg.Monitoring.AutoSubmit,
	})
}

func newPostgres(cfg config.Postgres) *connectors.Postgres {
	return &connectors.Postgres{
		DSN:             cfg.DSN,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
}

func runServers(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Servers,
	opts Options,
	monitor *worker.Monitor,
	tail *server.TailSink,
) {
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, cfg.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.LogFieldMaxLen),
		middlewarex.Recovery,
	)

	server.NewServer(server.NewControlServer(monitor, tail)).RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTPListenAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          opts.Name,
		Version:       opts.Version,
		ListenAddress: cfg.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.MetricListenAddress}.Run(ctx, g)

	logger(ctx).Info("control api ready", slog.String("address", cfg.HTTPListenAddress))
}
