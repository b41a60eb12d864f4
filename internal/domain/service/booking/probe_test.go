package booking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/service/booking"
)

func TestAvailabilityProbeCheck(t *testing.T) {
	rq := require.New(t)

	t.Run("available candidate", func(*testing.T) {
		session := newFakeSession().available("Gold", true)
		probe := booking.NewAvailabilityProbe(session)

		availability, card := probe.Check(context.Background(), "Gold")

		rq.Equal(entity.AvailabilityAvailable, availability)
		rq.False(card.Zero())
		rq.Equal("Gold Sponsorship", card.Title)
	})

	t.Run("sold out candidate", func(*testing.T) {
		session := newFakeSession().soldOut("Gold")
		probe := booking.NewAvailabilityProbe(session)

		availability, _ := probe.Check(context.Background(), "Gold")

		rq.Equal(entity.AvailabilitySoldOut, availability)
	})

	t.Run("search fault collapses to not found", func(*testing.T) {
		session := newFakeSession().available("Gold", true)
		session.searchErr = errors.New("portal timeout")
		probe := booking.NewAvailabilityProbe(session)

		availability, card := probe.Check(context.Background(), "Gold")

		rq.Equal(entity.AvailabilityNotFound, availability)
		rq.True(card.Zero())
	})

	t.Run("reveal paging stops on stagnation", func(*testing.T) {
		session := newFakeSession()
		probe := booking.NewAvailabilityProbe(session)

		availability, _ := probe.Check(context.Background(), "Gold")

		rq.Equal(entity.AvailabilityNotFound, availability)
		// Catalog never grows, paging gives up after two stagnant reveals
		// instead of burning the full retry budget.
		rq.Equal(2, session.revealCalls)
	})

	t.Run("reveal paging keeps going while catalog grows", func(*testing.T) {
		session := newFakeSession()
		session.revealGrow = 7
		probe := booking.NewAvailabilityProbe(session)

		availability, _ := probe.Check(context.Background(), "Gold")

		rq.Equal(entity.AvailabilityNotFound, availability)
		// 7 growing reveals, then stagnation cuts in; the retry budget of 8
		// bounds the total.
		rq.Equal(8, session.revealCalls)
	})
}

func TestProbePassSetsAffinityHint(t *testing.T) {
	rq := require.New(t)

	session := newFakeSession()
	session.soldOut("Gold")
	session.available("Silver", true)

	svc := newService(session, []string{"Gold", "Silver", "Bronze"}, false)

	keyword, found := svc.ProbePass(context.Background())

	rq.True(found)
	rq.Equal("Silver", keyword)
	rq.Equal("Silver", svc.State().AffinityHint())
	// The pass stops at the first hit, Bronze is left alone.
	rq.NotContains(session.searchCalls, "Bronze")
}

func TestProbePassNoAvailability(t *testing.T) {
	rq := require.New(t)

	session := newFakeSession()
	session.soldOut("Gold")

	svc := newService(session, []string{"Gold", "Silver"}, false)

	keyword, found := svc.ProbePass(context.Background())

	rq.False(found)
	rq.Empty(keyword)
	rq.Empty(svc.State().AffinityHint())
}
