package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/value"
)

const (
	// MinimumInterval is the polling floor, faster cycles would hammer the
	// storefront for no benefit.
	MinimumInterval = 5 * time.Second

	defaultIntervalSeconds = 30
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// Booking is the per-run behavior file: which sponsorships to chase, the
// payment details to fill, and how to poll.
type Booking struct {
	SearchKeywords []string             `yaml:"search_keywords" validate:"required,min=1"`
	Payment        value.PaymentDetails `yaml:"payment"`
	Monitoring     Monitoring           `yaml:"monitoring"`
}

type Monitoring struct {
	IntervalSeconds int  `yaml:"interval_seconds"`
	AutoSubmit      bool `yaml:"auto_submit"`
}

// Interval returns the polling interval with the floor applied.
func (m Monitoring) Interval() time.Duration {
	seconds := m.IntervalSeconds
	if seconds <= 0 {
		seconds = defaultIntervalSeconds
	}

	interval := time.Duration(seconds) * time.Second
	if interval < MinimumInterval {
		return MinimumInterval
	}

	return interval
}

// LoadBooking reads and normalizes the booking YAML: keywords are trimmed
// and de-duplicated case-insensitively, order preserved.
func LoadBooking(path string) (Booking, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Booking{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var booking Booking

	if err := yaml.Unmarshal(raw, &booking); err != nil {
		return Booking{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	booking.SearchKeywords = normalizeKeywords(booking.SearchKeywords)

	if err := validate.Struct(booking); err != nil {
		return Booking{}, fmt.Errorf("validate.Struct: %w", err)
	}

	return booking, nil
}

func normalizeKeywords(keywords []string) []string {
	trimmed := make([]string, 0, len(keywords))

	for _, keyword := range keywords {
		if k := strings.TrimSpace(keyword); k != "" {
			trimmed = append(trimmed, k)
		}
	}

	return lo.UniqBy(trimmed, strings.ToLower)
}
