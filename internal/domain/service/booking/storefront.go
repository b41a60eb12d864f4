package booking

import (
	"context"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/value"
	"github.com/myselfshravan/SponsorCatcher/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// StorefrontSession is the automation capability the orchestrator drives.
// Boolean results collapse every underlying fault: a false/absent answer is
// indistinguishable from a failed lookup on purpose, the orchestrator never
// sees raw transport errors from these calls. Login and FillPaymentForm are
// the exception, their failures invalidate the whole session.
type StorefrontSession interface {
	Login(ctx context.Context) error

	Search(ctx context.Context, keyword string) error
	FindCandidate(ctx context.Context, keyword string) (entity.CardRef, bool)
	RevealMore(ctx context.Context) bool
	IsAvailable(ctx context.Context, card entity.CardRef) bool
	AddToCart(ctx context.Context, card entity.CardRef) bool
	TitleOf(ctx context.Context, card entity.CardRef) string
	PriceOf(ctx context.Context, card entity.CardRef) string

	FindAnySelectedCard(ctx context.Context) (entity.CardRef, bool)
	GoToCartReview(ctx context.Context, card entity.CardRef) bool

	CartHasSoldOutWarning(ctx context.Context) bool
	CartSoldOutItemNames(ctx context.Context) []string
	CartWarningText(ctx context.Context) string
	RemoveCartItems(ctx context.Context, names []string) []string
	ProceedToCheckout(ctx context.Context) bool

	FillPaymentForm(ctx context.Context, details value.PaymentDetails) error
	OrderTotal(ctx context.Context) string
	HasValidationError(ctx context.Context) bool
	SubmitOrder(ctx context.Context) bool
}

// OutcomeRecorder persists terminal attempt outcomes. Implementations must
// tolerate being handed the same run id repeatedly.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, runID string, outcome entity.Outcome) error
}
