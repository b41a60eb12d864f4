package booking

import (
	"context"
	"strings"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
)

// passSubmissionGate fills the payment form, reads the total back and either
// places the order or leaves it for a human. Filling always happens once an
// attempt gets this far, submitting requires the explicit authorization flag.
// The two are kept apart as a safety boundary against unintended purchases.
func (s *Service) passSubmissionGate(ctx context.Context, chosen entity.Candidate, title string) entity.Outcome {
	s.emit(ctx, StagePayment, chosen.Keyword, "filling payment form, card %s", s.payment.Masked())

	if err := s.session.FillPaymentForm(ctx, s.payment); err != nil {
		s.emit(ctx, StagePayment, chosen.Keyword, "payment form could not be committed")

		return entity.Outcome{
			Kind:    entity.OutcomeSessionError,
			Keyword: chosen.Keyword,
			Title:   title,
			Warning: err.Error(),
		}
	}

	total := s.session.OrderTotal(ctx)
	if total == "" {
		s.emit(ctx, StagePayment, chosen.Keyword, "order total not shown")
	} else {
		s.emit(ctx, StagePayment, chosen.Keyword, "order total: %s", total)
	}

	warning := s.advisoryWarning(ctx)
	if warning != "" {
		s.emit(ctx, StagePayment, chosen.Keyword, "validation warning: %s", warning)
	}

	if !s.authorizeSubmit {
		s.emit(ctx, StageSubmit, chosen.Keyword, "submit not authorized, leaving order for manual review")

		return entity.Outcome{
			Kind:    entity.OutcomeAwaitingManualSubmit,
			Keyword: chosen.Keyword,
			Title:   title,
			Total:   total,
			Warning: warning,
		}
	}

	if !s.session.SubmitOrder(ctx) {
		s.emit(ctx, StageSubmit, chosen.Keyword, "order submit failed")

		return entity.Outcome{
			Kind:    entity.OutcomeSubmitFailed,
			Keyword: chosen.Keyword,
			Title:   title,
			Total:   total,
			Warning: warning,
		}
	}

	s.emit(ctx, StageSubmit, chosen.Keyword, "order submitted: %q, total %s", title, total)

	return entity.Outcome{
		Kind:    entity.OutcomeSuccess,
		Keyword: chosen.Keyword,
		Title:   title,
		Total:   total,
	}
}

// advisoryWarning combines the local completeness check with the form's own
// validation summary. It never aborts anything, the storefront has the final
// say at submit time.
func (s *Service) advisoryWarning(ctx context.Context) string {
	var parts []string

	if missing := s.payment.MissingFields(); len(missing) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(missing, ", "))
	}

	if s.session.HasValidationError(ctx) {
		parts = append(parts, "form shows a validation error")
	}

	return strings.Join(parts, "; ")
}
