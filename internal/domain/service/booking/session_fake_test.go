package booking_test

import (
	"context"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/service/booking"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/value"
)

// fakeSession is a scripted storefront: behavior per keyword is set up by
// the test, every interesting call is recorded for assertions.
type fakeSession struct {
	availability map[string]entity.Availability
	addOK        map[string]bool

	loginErr  error
	searchErr error

	loginCalls  int
	searchCalls []string
	findCalls   []string
	addCalls    []string
	revealCalls int
	revealGrow  int

	selectedCard   entity.CardRef
	hasSelected    bool
	goToCartOK     bool
	proceedOK      bool
	cartWarning    bool
	warningCleared bool
	soldOutNames   []string
	warningText    string
	removedNames   []string

	fillErr       error
	fillCalls     int
	filledDetails value.PaymentDetails
	total         string
	validationErr bool
	submitOK      bool
	submitCalls   int
}

var _ booking.StorefrontSession = (*fakeSession)(nil)

// newFakeSession returns a session where the checkout path succeeds and the
// catalog is empty, tests script candidates on top.
func newFakeSession() *fakeSession {
	return &fakeSession{
		availability: make(map[string]entity.Availability),
		addOK:        make(map[string]bool),
		goToCartOK:   true,
		proceedOK:    true,
		total:        "$1,500.00",
		submitOK:     true,
	}
}

func (f *fakeSession) available(keyword string, addSucceeds bool) *fakeSession {
	f.availability[keyword] = entity.AvailabilityAvailable
	f.addOK[keyword] = addSucceeds

	return f
}

func (f *fakeSession) soldOut(keyword string) *fakeSession {
	f.availability[keyword] = entity.AvailabilitySoldOut
	return f
}

func (f *fakeSession) cardFor(keyword string) entity.CardRef {
	return entity.CardRef{
		ProductID: keyword,
		Title:     keyword + " Sponsorship",
		Price:     "$1,500.00",
	}
}

func (f *fakeSession) Login(context.Context) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakeSession) Search(_ context.Context, keyword string) error {
	f.searchCalls = append(f.searchCalls, keyword)
	return f.searchErr
}

func (f *fakeSession) FindCandidate(_ context.Context, keyword string) (entity.CardRef, bool) {
	f.findCalls = append(f.findCalls, keyword)

	if _, ok := f.availability[keyword]; !ok {
		return entity.CardRef{}, false
	}

	return f.cardFor(keyword), true
}

func (f *fakeSession) RevealMore(context.Context) bool {
	f.revealCalls++

	if f.revealGrow > 0 {
		f.revealGrow--
		return true
	}

	return false
}

func (f *fakeSession) IsAvailable(_ context.Context, card entity.CardRef) bool {
	return f.availability[card.ProductID] == entity.AvailabilityAvailable
}

func (f *fakeSession) AddToCart(_ context.Context, card entity.CardRef) bool {
	f.addCalls = append(f.addCalls, card.ProductID)
	return f.addOK[card.ProductID]
}

func (f *fakeSession) TitleOf(_ context.Context, card entity.CardRef) string {
	return card.Title
}

func (f *fakeSession) PriceOf(_ context.Context, card entity.CardRef) string {
	return card.Price
}

func (f *fakeSession) FindAnySelectedCard(context.Context) (entity.CardRef, bool) {
	return f.selectedCard, f.hasSelected
}

func (f *fakeSession) GoToCartReview(context.Context, entity.CardRef) bool {
	return f.goToCartOK
}

func (f *fakeSession) CartHasSoldOutWarning(context.Context) bool {
	if f.removedNames != nil && f.warningCleared {
		return false
	}

	return f.cartWarning
}

func (f *fakeSession) CartSoldOutItemNames(context.Context) []string {
	return f.soldOutNames
}

func (f *fakeSession) CartWarningText(context.Context) string {
	return f.warningText
}

func (f *fakeSession) RemoveCartItems(_ context.Context, names []string) []string {
	f.removedNames = append([]string{}, names...)
	return f.removedNames
}

func (f *fakeSession) ProceedToCheckout(context.Context) bool {
	return f.proceedOK
}

func (f *fakeSession) FillPaymentForm(_ context.Context, details value.PaymentDetails) error {
	f.fillCalls++
	f.filledDetails = details

	return f.fillErr
}

func (f *fakeSession) OrderTotal(context.Context) string {
	return f.total
}

func (f *fakeSession) HasValidationError(context.Context) bool {
	return f.validationErr
}

func (f *fakeSession) SubmitOrder(context.Context) bool {
	f.submitCalls++
	return f.submitOK
}
