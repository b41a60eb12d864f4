package booking

import (
	"context"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/value"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

// Params is the per-run configuration the orchestrator core needs. The
// candidate list is expected to be non-empty and de-duplicated, config
// loading enforces that before the service is built.
type Params struct {
	Candidates      []entity.Candidate
	Payment         value.PaymentDetails
	AuthorizeSubmit bool
}

// Service runs reservation attempts over one storefront session. It owns all
// mutable run state and must only ever be driven from a single goroutine.
type Service struct {
	session  StorefrontSession
	state    *RunState
	sink     Sink
	recorder OutcomeRecorder
	probe    AvailabilityProbe

	candidates      []entity.Candidate
	payment         value.PaymentDetails
	authorizeSubmit bool
}

func NewService(session StorefrontSession, params Params) *Service {
	return &Service{
		session:         session,
		state:           NewRunState(),
		sink:            NopSink{},
		probe:           NewAvailabilityProbe(session),
		candidates:      params.Candidates,
		payment:         params.Payment,
		authorizeSubmit: params.AuthorizeSubmit,
	}
}

func (s *Service) WithSink(sink Sink) *Service {
	s.sink = sink
	return s
}

func (s *Service) WithRecorder(recorder OutcomeRecorder) *Service {
	s.recorder = recorder
	return s
}

// State exposes the run state for same-goroutine readers (the worker that
// drives the service). Cross-goroutine readers must use worker snapshots.
func (s *Service) State() *RunState {
	return s.state
}

func (s *Service) record(ctx context.Context, outcome entity.Outcome) {
	if s.recorder == nil {
		return
	}

	runID := runIDString(ctx)

	if err := s.recorder.RecordOutcome(ctx, runID, outcome); err != nil {
		logger(ctx).Error("recorder.RecordOutcome", logx.Error(err))
	}
}
