package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionmag-backend/internal/domains/vote/model"
	"fashionmag-backend/internal/shared/apperror"
	"fashionmag-backend/pkg/database"
)

const foreignKeyViolation = "23503"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Record(ctx context.Context, talentID uuid.UUID, voterID string) (int, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int, error) {
		tag, err := tx.Exec(ctx, `
			INSERT INTO votes (talent_id, voter_id, created_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (talent_id, voter_id) DO NOTHING
		`, talentID, voterID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return 0, apperror.NotFound("talent")
			}
			return 0, fmt.Errorf("failed to insert vote: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return 0, model.NewDuplicateVoteError()
		}

		// Only approved talents accept votes; a concurrent revoke rolls the insert back
		var count int
		err = tx.QueryRow(ctx, `
			UPDATE talents SET vote_count = vote_count + 1
			WHERE id = $1 AND status = 'approved'
			RETURNING vote_count
		`, talentID).Scan(&count)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, apperror.NotFound("talent")
			}
			return 0, fmt.Errorf("failed to increment vote count: %w", err)
		}
		return count, nil
	})
}

func (r *postgresRepository) Count(ctx context.Context, talentID uuid.UUID) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM votes WHERE talent_id = $1`, talentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) Total(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM votes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

// PurgeTalent is normally a no-op after the talents row cascade.
func (r *postgresRepository) PurgeTalent(ctx context.Context, talentID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM votes WHERE talent_id = $1`, talentID); err != nil {
		return fmt.Errorf("failed to purge votes: %w", err)
	}
	return nil
}

func (r *postgresRepository) Reconcile(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE talents t SET vote_count = c.n
		FROM (
			SELECT tl.id, COUNT(v.voter_id) AS n
			FROM talents tl
			LEFT JOIN votes v ON v.talent_id = tl.id
			GROUP BY tl.id
		) c
		WHERE t.id = c.id AND t.vote_count <> c.n
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile vote counts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
