package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/myselfshravan/SponsorCatcher/internal/domain"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
	"github.com/myselfshravan/SponsorCatcher/pkg/errcodes"
	"github.com/myselfshravan/SponsorCatcher/pkg/lox"
)

// AttemptJournal keeps a durable trail of finished attempts. The run state
// itself (blocklist, affinity) is deliberately not persisted, it belongs to
// a single process run.
type AttemptJournal struct {
	db *sqlx.DB
}

func NewAttemptJournal(db *sqlx.DB) *AttemptJournal {
	return &AttemptJournal{db: db}
}

// withTx runs fn inside a transaction.
func (j *AttemptJournal) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := j.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// RecordOutcome appends a finished attempt to the journal.
func (j *AttemptJournal) RecordOutcome(ctx context.Context, runID string, outcome entity.Outcome) error {
	return j.withTx(ctx, func(tx *sqlx.Tx) error {
		occurredAt := outcome.At
		if occurredAt.IsZero() {
			occurredAt = time.Now()
		}

		query := `
			INSERT INTO attempt_outcomes (run_id, kind, keyword, title, total, warning, occurred_at)
			VALUES (:run_id, :kind, :keyword, :title, :total, :warning, :occurred_at)`

		params := map[string]any{
			"run_id":      runID,
			"kind":        string(outcome.Kind),
			"keyword":     outcome.Keyword,
			"title":       outcome.Title,
			"total":       outcome.Total,
			"warning":     outcome.Warning,
			"occurred_at": occurredAt,
		}

		if _, err := tx.NamedExecContext(ctx, query, params); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert outcome")
		}

		return nil
	})
}

// ListByRun returns a run's outcomes oldest first.
func (j *AttemptJournal) ListByRun(ctx context.Context, runID string) ([]entity.Outcome, error) {
	query := `
		SELECT id, run_id, kind, keyword, title, total, warning, occurred_at
		FROM attempt_outcomes
		WHERE run_id = $1
		ORDER BY occurred_at, id`

	var schemas []attemptOutcomeSchema
	if err := j.db.SelectContext(ctx, &schemas, query, runID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list outcomes")
	}

	return lox.Map(schemas, attemptOutcomeSchema.toDomain), nil
}

// LastOutcome returns a run's most recent outcome.
func (j *AttemptJournal) LastOutcome(ctx context.Context, runID string) (entity.Outcome, error) {
	query := `
		SELECT id, run_id, kind, keyword, title, total, warning, occurred_at
		FROM attempt_outcomes
		WHERE run_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT 1`

	var schema attemptOutcomeSchema
	if err := j.db.GetContext(ctx, &schema, query, runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Outcome{}, domain.NewError(errcodes.RunNotFound, "no outcomes for run")
		}

		return entity.Outcome{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get outcome")
	}

	return schema.toDomain(), nil
}

// PruneBefore drops journal rows older than the cutoff and reports how many
// went away.
func (j *AttemptJournal) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var pruned int64

	err := j.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM attempt_outcomes WHERE occurred_at < $1`, cutoff)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to prune journal")
		}

		pruned, err = res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}

		return nil
	})

	return pruned, err
}
