package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/pkg/metrics"
)

// Attempt drives one full reservation pass: login once, iterate ranked
// candidates until one lands in the cart, reconcile the cart, then cross the
// submission gate. There is no retry inside an attempt, a failed step ends it
// and the monitor decides whether to go again.
func (s *Service) Attempt(ctx context.Context) entity.Outcome {
	outcome := s.attempt(ctx)
	outcome.At = time.Now()

	s.emit(ctx, StageOutcome, outcome.Keyword, "attempt finished: %s", outcome.Kind)
	metrics.AttemptsTotal.WithLabelValues(string(outcome.Kind)).Inc()
	s.record(ctx, outcome)

	return outcome
}

func (s *Service) attempt(ctx context.Context) entity.Outcome {
	if ctx.Err() != nil {
		return entity.Outcome{Kind: entity.OutcomeCancelled}
	}

	if err := s.ensureLoggedIn(ctx); err != nil {
		return entity.Outcome{
			Kind:    entity.OutcomeSessionError,
			Warning: err.Error(),
		}
	}

	if ctx.Err() != nil {
		return entity.Outcome{Kind: entity.OutcomeCancelled}
	}

	chosen, card, ok := s.claimFirstAvailable(ctx)
	if !ok {
		if ctx.Err() != nil {
			return entity.Outcome{Kind: entity.OutcomeCancelled}
		}

		return entity.Outcome{Kind: entity.OutcomeNoEligibleProduct}
	}

	title := s.session.TitleOf(ctx, card)
	price := s.session.PriceOf(ctx, card)
	s.emit(ctx, StageAddToCart, chosen.Keyword, "added %q (%s) to cart", title, price)

	card = s.relocateChosen(ctx, chosen, card)

	if !s.session.GoToCartReview(ctx, card) {
		s.emit(ctx, StageCartReview, chosen.Keyword, "could not open cart review")

		return entity.Outcome{
			Kind:    entity.OutcomeCheckoutNavigationFailed,
			Keyword: chosen.Keyword,
			Title:   title,
		}
	}

	if s.reconcileCart(ctx) == ReconcilePersists {
		return entity.Outcome{
			Kind:    entity.OutcomeCartSoldOutPersists,
			Keyword: chosen.Keyword,
			Title:   title,
		}
	}

	if !s.session.ProceedToCheckout(ctx) {
		s.emit(ctx, StageCheckout, chosen.Keyword, "could not proceed to checkout")

		return entity.Outcome{
			Kind:    entity.OutcomeCheckoutNavigationFailed,
			Keyword: chosen.Keyword,
			Title:   title,
		}
	}

	return s.passSubmissionGate(ctx, chosen, title)
}

// ensureLoggedIn performs the login exactly once per run. Later attempts in
// the same run reuse the session.
func (s *Service) ensureLoggedIn(ctx context.Context) error {
	if s.state.LoggedIn() {
		return nil
	}

	s.emit(ctx, StageLogin, "", "logging in")

	if err := s.session.Login(ctx); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}

	s.state.MarkLoggedIn()
	s.emit(ctx, StageLogin, "", "logged in")

	return nil
}

// claimFirstAvailable walks the ranked candidates and stops at the first one
// that both probes available and actually lands in the cart. Catalog-level
// NotFound and SoldOut results never blocklist anything here, those flags
// can be transient, only cart reconciliation is trusted to block keywords.
func (s *Service) claimFirstAvailable(ctx context.Context) (entity.Candidate, entity.CardRef, bool) {
	ranked := RankCandidates(s.candidates, s.state)
	if len(ranked) == 0 {
		s.emit(ctx, StageSearch, "", "no eligible candidates remain")
		return entity.Candidate{}, entity.CardRef{}, false
	}

	for _, candidate := range ranked {
		if ctx.Err() != nil {
			return entity.Candidate{}, entity.CardRef{}, false
		}

		s.emit(ctx, StageSearch, candidate.Keyword, "trying %q", candidate.Keyword)

		availability, card := s.probe.Check(ctx, candidate.Keyword)

		switch availability {
		case entity.AvailabilityNotFound:
			s.emit(ctx, StageProbe, candidate.Keyword, "%q not found in catalog", candidate.Keyword)
			continue
		case entity.AvailabilitySoldOut:
			s.emit(ctx, StageProbe, candidate.Keyword, "%q is sold out at catalog level", candidate.Keyword)
			continue
		case entity.AvailabilityAvailable:
			s.emit(ctx, StageProbe, candidate.Keyword, "%q is available", candidate.Keyword)
		}

		if !s.session.AddToCart(ctx, card) {
			s.emit(ctx, StageAddToCart, candidate.Keyword, "add to cart failed for %q, trying next", candidate.Keyword)
			continue
		}

		// First success wins, remaining candidates are not evaluated.
		return candidate, card, true
	}

	return entity.Candidate{}, entity.CardRef{}, false
}

// relocateChosen re-finds the chosen card after the add, the catalog view
// may have re-rendered and stale refs would misdirect the cart navigation.
// Falls back to whatever card the storefront shows as selected, and keeps
// the original ref when both lookups miss.
func (s *Service) relocateChosen(ctx context.Context, chosen entity.Candidate, card entity.CardRef) entity.CardRef {
	if relocated, ok := s.session.FindCandidate(ctx, chosen.Keyword); ok {
		return relocated
	}

	if selected, ok := s.session.FindAnySelectedCard(ctx); ok {
		s.emit(ctx, StageCartReview, chosen.Keyword, "re-locate by keyword missed, using selected card")
		return selected
	}

	return card
}
