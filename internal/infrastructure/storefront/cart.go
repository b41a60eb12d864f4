package storefront

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

// GoToCartReview follows the selected card's review link into the cart
// page.
func (s *Session) GoToCartReview(ctx context.Context, card entity.CardRef) bool {
	el := s.cardByRef(card)
	if el == nil {
		return false
	}

	link := linkWithText(el, "Checkout")
	if link == nil {
		return false
	}

	if err := s.click(ctx, link, nil); err != nil {
		logger(ctx).Warn("cart review navigation failed", logx.Error(err))

		return false
	}

	return true
}

// CartHasSoldOutWarning reports whether the cart page shows the sold-out
// alert with actual content in it.
func (s *Session) CartHasSoldOutWarning(ctx context.Context) bool {
	_ = ctx

	return s.cartWarning() != nil
}

// CartSoldOutItemNames returns the item names the warning lists. Empty when
// the portal rendered the warning as free text instead of a list.
func (s *Session) CartSoldOutItemNames(ctx context.Context) []string {
	_ = ctx

	warning := s.cartWarning()
	if warning == nil {
		return nil
	}

	var names []string

	warning.Find("li").Each(func(_ int, item *goquery.Selection) {
		if name := strings.TrimSpace(item.Text()); name != "" {
			names = append(names, name)
		}
	})

	return names
}

// CartWarningText returns the warning's raw copy for free-text parsing.
func (s *Session) CartWarningText(ctx context.Context) string {
	_ = ctx

	warning := s.cartWarning()
	if warning == nil {
		return ""
	}

	return strings.TrimSpace(warning.Text())
}

// RemoveCartItems removes the named rows from the cart and returns the
// subset it actually removed.
func (s *Session) RemoveCartItems(ctx context.Context, names []string) []string {
	removed := make([]string, 0, len(names))

	for _, name := range names {
		if s.removeCartItem(ctx, name) {
			removed = append(removed, name)
		}
	}

	return removed
}

func (s *Session) removeCartItem(ctx context.Context, name string) bool {
	row := s.cartRow(name)
	if row == nil {
		return false
	}

	remove := row.Find("a[id$='_lnkRemove']").First()
	if remove.Length() == 0 {
		remove = row.Find(".btn.red").First()
	}

	if remove.Length() == 0 {
		return false
	}

	if err := s.click(ctx, remove, nil); err != nil {
		logger(ctx).Warn("cart item removal failed", slog.String("item", name), logx.Error(err))

		return false
	}

	return s.cartRow(name) == nil
}

// cartWarning returns the sold-out alert when it is rendered and not empty.
// The portal keeps the div in the markup with display:none when nothing is
// sold out.
func (s *Session) cartWarning() *goquery.Selection {
	if s.doc == nil {
		return nil
	}

	warning := s.doc.Find(".alert.alert-warning").First()
	if warning.Length() == 0 {
		return nil
	}

	if style, ok := warning.Attr("style"); ok && strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none") {
		return nil
	}

	if strings.TrimSpace(warning.Text()) == "" {
		return nil
	}

	return warning
}

func (s *Session) cartRow(name string) *goquery.Selection {
	if s.doc == nil {
		return nil
	}

	var found *goquery.Selection

	s.doc.Find(".cart-item").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		rowName := strings.TrimSpace(row.Find(".cart-item-name").First().Text())
		if rowName == "" {
			rowName = strings.TrimSpace(row.Find("h4").First().Text())
		}

		if strings.EqualFold(rowName, name) || containsFold(rowName, name) {
			found = row

			return false
		}

		return true
	})

	return found
}

// linkWithText finds an a.btn.green within scope whose text mentions the
// given phrase.
func linkWithText(scope *goquery.Selection, text string) *goquery.Selection {
	var found *goquery.Selection

	scope.Find("a.btn.green").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if strings.Contains(link.Text(), text) {
			found = link

			return false
		}

		return true
	})

	return found
}
