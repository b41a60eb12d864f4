package persistence

import (
	"time"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
)

// attemptOutcomeSchema maps one attempt_outcomes row.
type attemptOutcomeSchema struct {
	ID         int64     `db:"id"`
	RunID      string    `db:"run_id"`
	Kind       string    `db:"kind"`
	Keyword    string    `db:"keyword"`
	Title      string    `db:"title"`
	Total      string    `db:"total"`
	Warning    string    `db:"warning"`
	OccurredAt time.Time `db:"occurred_at"`
}

func (s attemptOutcomeSchema) toDomain() entity.Outcome {
	return entity.Outcome{
		Kind:    entity.OutcomeKind(s.Kind),
		Keyword: s.Keyword,
		Title:   s.Title,
		Total:   s.Total,
		Warning: s.Warning,
		At:      s.OccurredAt,
	}
}
