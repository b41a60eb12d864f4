package booking

import (
	"context"
	"log/slog"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
	"github.com/myselfshravan/SponsorCatcher/pkg/metrics"
)

const (
	defaultRevealAttempts  = 8
	defaultStagnationLimit = 2
)

// AvailabilityProbe answers "is this candidate buyable right now" for one
// keyword. Every fault on the way collapses to NotFound: the probe never
// raises past its own boundary.
type AvailabilityProbe struct {
	session         StorefrontSession
	revealAttempts  int
	stagnationLimit int
}

func NewAvailabilityProbe(session StorefrontSession) AvailabilityProbe {
	return AvailabilityProbe{
		session:         session,
		revealAttempts:  defaultRevealAttempts,
		stagnationLimit: defaultStagnationLimit,
	}
}

// Check searches for the keyword and locates its card, paging through
// lazily rendered catalog sections when the first locate misses. Paging
// stops early once the catalog stops growing.
func (p AvailabilityProbe) Check(ctx context.Context, keyword string) (entity.Availability, entity.CardRef) {
	if err := p.session.Search(ctx, keyword); err != nil {
		logger(ctx).Warn(
			"search failed, treating candidate as absent",
			slog.String(logx.FieldKeyword, keyword),
			logx.Error(err),
		)
		return entity.AvailabilityNotFound, entity.CardRef{}
	}

	card, found := p.session.FindCandidate(ctx, keyword)

	stagnant := 0

	for attempt := 0; !found && attempt < p.revealAttempts; attempt++ {
		if ctx.Err() != nil {
			return entity.AvailabilityNotFound, entity.CardRef{}
		}

		if p.session.RevealMore(ctx) {
			stagnant = 0
		} else {
			stagnant++
			if stagnant >= p.stagnationLimit {
				break
			}
		}

		card, found = p.session.FindCandidate(ctx, keyword)
	}

	if !found {
		return entity.AvailabilityNotFound, entity.CardRef{}
	}

	if !p.session.IsAvailable(ctx, card) {
		return entity.AvailabilitySoldOut, card
	}

	return entity.AvailabilityAvailable, card
}

// ProbePass is the monitor's lightweight sweep: probe the ranked candidates
// in order, without touching the cart, and report the first available one.
// A hit is stored as the affinity hint so the follow-up attempt tries it
// first.
func (s *Service) ProbePass(ctx context.Context) (string, bool) {
	for _, candidate := range RankCandidates(s.candidates, s.state) {
		if ctx.Err() != nil {
			return "", false
		}

		availability, _ := s.probe.Check(ctx, candidate.Keyword)

		s.emit(ctx, StageProbe, candidate.Keyword, "probe %q: %s", candidate.Keyword, availability)
		metrics.ProbesTotal.WithLabelValues(availability.String()).Inc()

		if availability == entity.AvailabilityAvailable {
			s.state.SetAffinityHint(candidate.Keyword)
			metrics.LastAvailableAt.SetToCurrentTime()

			return candidate.Keyword, true
		}
	}

	return "", false
}
