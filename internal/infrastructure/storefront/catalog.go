package storefront

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

// Search opens the sponsor catalog and runs a keyword search through the
// page's own search control.
func (s *Session) Search(ctx context.Context, keyword string) error {
	if err := s.get(ctx, sponsorPath); err != nil {
		return fmt.Errorf("open sponsor page: %w", err)
	}

	input := s.doc.Find(".input-group input.form-control").First()

	name, ok := input.Attr("name")
	if !ok {
		return fmt.Errorf("search input: %w", errElementMissing)
	}

	fields := url.Values{}
	fields.Set(name, keyword)

	button := s.doc.Find(".input-group .btn.green").First()

	if err := s.click(ctx, button, fields); err != nil {
		return fmt.Errorf("run search: %w", err)
	}

	return nil
}

// FindCandidate scans the result cards for a title containing the keyword.
func (s *Session) FindCandidate(ctx context.Context, keyword string) (entity.CardRef, bool) {
	_ = ctx

	card := s.findCard(keyword)
	if card == nil {
		return entity.CardRef{}, false
	}

	return cardRef(card), true
}

// FindAnySelectedCard returns the first card the portal marks as in-cart.
func (s *Session) FindAnySelectedCard(ctx context.Context) (entity.CardRef, bool) {
	_ = ctx

	if s.doc == nil {
		return entity.CardRef{}, false
	}

	card := s.doc.Find(".pricing.selected").First()
	if card.Length() == 0 {
		return entity.CardRef{}, false
	}

	return cardRef(card), true
}

// RevealMore asks the catalog for the next slice of results. True only when
// fresh cards actually showed up.
func (s *Session) RevealMore(ctx context.Context) bool {
	if s.doc == nil {
		return false
	}

	before := s.doc.Find(".pricing").Length()

	more := s.doc.Find("a[id$='_lnkLoadMore']").First()
	if more.Length() == 0 {
		more = s.doc.Find(".pagination li:not(.disabled) a[id$='_lnkNext']").First()
	}

	if more.Length() == 0 {
		return false
	}

	if err := s.click(ctx, more, nil); err != nil {
		logger(ctx).Warn("reveal more failed", logx.Error(err))

		return false
	}

	return s.doc.Find(".pricing").Length() > before
}

// IsAvailable reports whether the card can still be added to the cart: no
// sold-out ribbon and a live add button.
func (s *Session) IsAvailable(ctx context.Context, card entity.CardRef) bool {
	_ = ctx

	el := s.cardByRef(card)
	if el == nil {
		return false
	}

	if el.Find(".product-sold-out").Length() > 0 {
		return false
	}

	return el.HasClass("selected") || el.Find(".pricing-footer .btn.green").Length() > 0
}

// AddToCart clicks the card's add button. A card the portal already marks
// as selected counts as added.
func (s *Session) AddToCart(ctx context.Context, card entity.CardRef) bool {
	el := s.cardByRef(card)
	if el == nil {
		return false
	}

	if el.HasClass("selected") {
		return true
	}

	button := el.Find(".pricing-footer .btn.green").First()

	if err := s.click(ctx, button, nil); err != nil {
		logger(ctx).Warn("add to cart failed", logx.Error(err))

		return false
	}

	refreshed := s.cardByRef(card)

	return refreshed != nil && refreshed.HasClass("selected")
}

// TitleOf reads the card's current title, falling back to the captured one
// when the card left the page.
func (s *Session) TitleOf(ctx context.Context, card entity.CardRef) string {
	_ = ctx

	if el := s.cardByRef(card); el != nil {
		if title := cardTitle(el); title != "" {
			return title
		}
	}

	return card.Title
}

// PriceOf reads the card's current price tag the same way.
func (s *Session) PriceOf(ctx context.Context, card entity.CardRef) string {
	_ = ctx

	if el := s.cardByRef(card); el != nil {
		if price := strings.TrimSpace(el.Find(".pricing-head h4").First().Text()); price != "" {
			return price
		}
	}

	return card.Price
}

func (s *Session) findCard(keyword string) *goquery.Selection {
	if s.doc == nil {
		return nil
	}

	var found *goquery.Selection

	s.doc.Find(".pricing").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if containsFold(cardTitle(card), keyword) {
			found = card

			return false
		}

		return true
	})

	return found
}

// cardByRef re-locates a card after a postback replaced the document.
// Matches by product id, then add-button target, then exact title.
func (s *Session) cardByRef(ref entity.CardRef) *goquery.Selection {
	if s.doc == nil {
		return nil
	}

	var found *goquery.Selection

	s.doc.Find(".pricing").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if cardMatches(card, ref) {
			found = card

			return false
		}

		return true
	})

	return found
}

func cardMatches(card *goquery.Selection, ref entity.CardRef) bool {
	if id, ok := card.Attr("data-product-id"); ok && id != "" && id == ref.ProductID {
		return true
	}

	if ref.AddTarget != "" {
		button := card.Find(".pricing-footer .btn.green").First()
		if target, _, ok := postBackTarget(button); ok && target == ref.AddTarget {
			return true
		}
	}

	title := cardTitle(card)

	return title != "" && strings.EqualFold(title, ref.Title)
}

func cardRef(card *goquery.Selection) entity.CardRef {
	ref := entity.CardRef{
		Title:    cardTitle(card),
		Price:    strings.TrimSpace(card.Find(".pricing-head h4").First().Text()),
		Selected: card.HasClass("selected"),
		SoldOut:  card.Find(".product-sold-out").Length() > 0,
	}

	if id, ok := card.Attr("data-product-id"); ok {
		ref.ProductID = id
	}

	if target, _, ok := postBackTarget(card.Find(".pricing-footer .btn.green").First()); ok {
		ref.AddTarget = target
	}

	if ref.ProductID == "" {
		ref.ProductID = ref.AddTarget
	}

	if ref.ProductID == "" {
		ref.ProductID = ref.Title
	}

	return ref
}

func cardTitle(card *goquery.Selection) string {
	return strings.TrimSpace(card.Find(".pricing-head h3").First().Text())
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
