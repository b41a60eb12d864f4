package booking

import (
	"context"
	"strings"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/pkg/metrics"
)

// ReconcileResult is what the cart looked like after conflict handling.
type ReconcileResult int

const (
	// ReconcileClean means no sold-out warning was present at all.
	ReconcileClean ReconcileResult = iota
	// ReconcileResolved means a conflict was found and removing the dead
	// rows cleared it.
	ReconcileResolved
	// ReconcilePersists means the warning survived the removal, the cart
	// cannot be trusted and the attempt has to stop.
	ReconcilePersists
)

// reconcileCart handles sold-out conflicts that only show up at cart review:
// items can die between "add to cart" and "review" when other buyers are
// faster. Matched keywords are blocklisted for the rest of the run, this is
// the only place the blocklist grows.
func (s *Service) reconcileCart(ctx context.Context) ReconcileResult {
	if !s.session.CartHasSoldOutWarning(ctx) {
		return ReconcileClean
	}

	s.emit(ctx, StageReconcile, "", "cart reports a sold-out conflict")

	names := s.session.CartSoldOutItemNames(ctx)
	if len(names) == 0 {
		// Best-effort fallback: no structured listing, parse the warning
		// text itself.
		names = ParseSoldOutNames(s.session.CartWarningText(ctx))
	}

	for _, keyword := range MatchKeywords(names, s.candidates) {
		s.state.Block(keyword)
		s.emit(ctx, StageReconcile, keyword, "%q confirmed unavailable, blocklisted for this run", keyword)
	}

	metrics.BlocklistSize.Set(float64(len(s.state.Blocklist())))

	if len(names) > 0 {
		removed := s.session.RemoveCartItems(ctx, names)
		s.emit(ctx, StageReconcile, "", "removed %d of %d sold-out cart rows", len(removed), len(names))
	}

	if s.session.CartHasSoldOutWarning(ctx) {
		s.emit(ctx, StageReconcile, "", "sold-out warning persists after removal")
		return ReconcilePersists
	}

	return ReconcileResolved
}

// MatchKeywords maps sold-out display names back to configured keywords: a
// keyword matches when its text is a case-insensitive substring of a name.
// Each keyword is reported once, in candidate order.
func MatchKeywords(names []string, candidates []entity.Candidate) []string {
	var matched []string

	seen := make(map[string]struct{}, len(candidates))

	for _, candidate := range candidates {
		keyword := strings.ToLower(candidate.Keyword)
		if keyword == "" {
			continue
		}

		if _, dup := seen[keyword]; dup {
			continue
		}

		for _, name := range names {
			if strings.Contains(strings.ToLower(name), keyword) {
				seen[keyword] = struct{}{}
				matched = append(matched, candidate.Keyword)

				break
			}
		}
	}

	return matched
}

// ParseSoldOutNames extracts item names from a free-text warning. When the
// text spans multiple lines the first one is a header ("The following items
// are sold out:") and is dropped, a single line is taken as the item itself.
func ParseSoldOutNames(text string) []string {
	var lines []string

	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) > 1 {
		lines = lines[1:]
	}

	return lines
}
