package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/value"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

// ProceedToCheckout clicks through from the cart to the payment page. True
// only when the payment form actually rendered, an empty cart keeps the
// portal on the cart page.
func (s *Session) ProceedToCheckout(ctx context.Context) bool {
	if s.doc == nil {
		return false
	}

	button := s.doc.Find(".btn-cart-checkout").First()
	if button.Length() == 0 {
		return false
	}

	if err := s.click(ctx, button, nil); err != nil {
		logger(ctx).Warn("checkout navigation failed", logx.Error(err))

		return false
	}

	return s.doc.Find("input[id$='_txtCCNumber']").Length() > 0
}

// FillPaymentForm stages the card details for the submit postback. The
// portal's payment page is plain form state, nothing travels until a button
// posts the form back.
func (s *Session) FillPaymentForm(ctx context.Context, details value.PaymentDetails) error {
	_ = ctx

	if s.doc == nil {
		return errNoPage
	}

	inputs := []struct {
		suffix string
		value  string
	}{
		{"_txtName", details.NameOnCard},
		{"_txtCCNumber", details.CardNumber},
		{"_txtCVV", details.CVV},
		{"_txtCCZip", details.BillingZip},
		{"_txtCCEmail", details.ConfirmationEmail},
	}

	for _, field := range inputs {
		input := s.doc.Find("input[id$='" + field.suffix + "']").First()

		name, ok := input.Attr("name")
		if !ok {
			return fmt.Errorf("payment input %s: %w", field.suffix, errElementMissing)
		}

		s.stage(name, field.value)
	}

	dropdowns := []struct {
		suffix string
		value  string
	}{
		{"_ddlCCExpireMonth", details.ExpMonth},
		{"_ddlCCExpireYear", details.ExpYear},
	}

	for _, field := range dropdowns {
		dropdown := s.doc.Find("select[id$='" + field.suffix + "']").First()

		name, ok := dropdown.Attr("name")
		if !ok {
			return fmt.Errorf("payment dropdown %s: %w", field.suffix, errElementMissing)
		}

		s.stage(name, matchingOption(dropdown, field.value))
	}

	s.stageCreditCardChoice()

	return nil
}

// OrderTotal reads the order summary total. Empty when the portal did not
// render one.
func (s *Session) OrderTotal(ctx context.Context) string {
	_ = ctx

	if s.doc == nil {
		return ""
	}

	return strings.TrimSpace(s.doc.Find("[id$='_lblTotal']").First().Text())
}

// HasValidationError reports whether the page shows a filled danger alert.
func (s *Session) HasValidationError(ctx context.Context) bool {
	_ = ctx

	if s.doc == nil {
		return false
	}

	alert := s.doc.Find(".alert.alert-danger").First()
	if alert.Length() == 0 {
		return false
	}

	return strings.TrimSpace(alert.Text()) != ""
}

// SubmitOrder posts the payment form through the portal's submit control.
// True when the portal accepted the order and moved off without raising a
// validation alert.
func (s *Session) SubmitOrder(ctx context.Context) bool {
	if s.doc == nil {
		return false
	}

	link := linkWithText(s.doc.Selection, "Submit Your Order")
	if link == nil {
		return false
	}

	if err := s.click(ctx, link, nil); err != nil {
		logger(ctx).Warn("order submit failed", logx.Error(err))

		return false
	}

	return !s.HasValidationError(ctx)
}

// stageCreditCardChoice picks the credit card payment option when the page
// offers one and it is not already selected.
func (s *Session) stageCreditCardChoice() {
	radio := s.doc.Find("#rdoCredit").First()
	if radio.Length() == 0 {
		return
	}

	name, ok := radio.Attr("name")
	if !ok {
		return
	}

	s.stage(name, attrOr(radio, "value", "on"))
}

// matchingOption maps a configured value onto the dropdown's real option
// values, tolerating the usual zero-padding mismatch between config and
// markup.
func matchingOption(dropdown *goquery.Selection, want string) string {
	want = strings.TrimSpace(want)

	candidates := []string{want, strings.TrimLeft(want, "0")}
	if len(want) == 1 {
		candidates = append(candidates, "0"+want)
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}

		if dropdown.Find("option[value='"+candidate+"']").Length() > 0 {
			return candidate
		}
	}

	return want
}
