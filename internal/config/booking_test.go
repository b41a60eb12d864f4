package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/myselfshravan/SponsorCatcher/internal/config"
)

func writeBookingFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "booking.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadBooking(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	path := writeBookingFile(t, `
search_keywords:
  - Gold
  - Silver
payment:
  name_on_card: Ada Lovelace
  card_number: "4111111111111111"
  cvv: "123"
  exp_month: "12"
  exp_year: "2030"
  billing_zip: "94107"
  confirmation_email: ada@example.com
monitoring:
  interval_seconds: 45
  auto_submit: true
`)

	booking, err := config.LoadBooking(path)
	rq.NoError(err)

	rq.Equal([]string{"Gold", "Silver"}, booking.SearchKeywords)
	rq.Equal("Ada Lovelace", booking.Payment.NameOnCard)
	rq.Equal("4111111111111111", booking.Payment.CardNumber)
	rq.True(booking.Payment.Complete())
	rq.True(booking.Monitoring.AutoSubmit)
	rq.Equal(45*time.Second, booking.Monitoring.Interval())
}

func TestLoadBookingNormalizesKeywords(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	path := writeBookingFile(t, `
search_keywords:
  - "  Gold  "
  - gold
  - ""
  - Silver
  - GOLD
`)

	booking, err := config.LoadBooking(path)
	rq.NoError(err)
	rq.Equal([]string{"Gold", "Silver"}, booking.SearchKeywords)
}

func TestLoadBookingRejectsEmptyKeywords(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	path := writeBookingFile(t, `
search_keywords: []
monitoring:
  interval_seconds: 30
`)

	_, err := config.LoadBooking(path)
	rq.Error(err)
}

func TestLoadBookingMissingFile(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	_, err := config.LoadBooking(filepath.Join(t.TempDir(), "absent.yaml"))
	rq.Error(err)
}

func TestMonitoringInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{name: "default when unset", seconds: 0, want: 30 * time.Second},
		{name: "default when negative", seconds: -10, want: 30 * time.Second},
		{name: "floored", seconds: 2, want: 5 * time.Second},
		{name: "floor boundary", seconds: 5, want: 5 * time.Second},
		{name: "as configured", seconds: 120, want: 120 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			monitoring := config.Monitoring{IntervalSeconds: tt.seconds}
			rq.Equal(tt.want, monitoring.Interval())
		})
	}
}
