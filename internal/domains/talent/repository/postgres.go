package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"fashionmag-backend/internal/domains/talent/model"
)

const uniqueViolation = "23505"

const talentColumns = `
	id, name, email, password_hash, phone, instagram_id, category, bio,
	profile_image, portfolio_images, video_url, video_seconds, video_size_bytes,
	status, rank, vote_count, agreed_to_terms, agreed_at, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// CREATE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, t *model.Talent) error {
	query := `
		INSERT INTO talents (` + talentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	url, seconds, size := videoColumns(t.PortfolioVideo)

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Name,
		t.Email,
		t.PasswordHash,
		t.Phone,
		t.InstagramID,
		t.Category,
		t.Bio,
		t.ProfileImage,
		pq.Array(nonNil(t.PortfolioImages)),
		url,
		seconds,
		size,
		t.Status,
		t.Rank,
		t.VoteCount,
		t.AgreedToTerms,
		t.AgreedAt,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.NewEmailTakenError()
		}
		return fmt.Errorf("failed to create talent: %w", err)
	}
	return nil
}

// ========================================
// READ
// ========================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Talent, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+talentColumns+` FROM talents WHERE id = $1`, id)
	t, err := scanTalent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewTalentNotFoundError()
		}
		return nil, fmt.Errorf("failed to get talent: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.Talent, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+talentColumns+` FROM talents WHERE lower(email) = $1`, model.NormalizeEmail(email))
	t, err := scanTalent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewTalentNotFoundError()
		}
		return nil, fmt.Errorf("failed to get talent by email: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.Filter) ([]*model.Talent, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + talentColumns + ` FROM talents`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rank ASC, created_at ASC, id ASC"

	return r.query(ctx, query, args...)
}

func (r *postgresRepository) ListByStatus(ctx context.Context, status model.Status) ([]*model.Talent, error) {
	return r.query(ctx,
		`SELECT `+talentColumns+` FROM talents WHERE status = $1 ORDER BY created_at ASC, id ASC`,
		status,
	)
}

func (r *postgresRepository) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM talents GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count talents: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Status]int)
	for rows.Next() {
		var (
			status model.Status
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan talent count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) UpdateProfile(ctx context.Context, t *model.Talent) error {
	url, seconds, size := videoColumns(t.PortfolioVideo)
	tag, err := r.pool.Exec(ctx, `
		UPDATE talents SET
			name = $2, phone = $3, instagram_id = $4, category = $5, bio = $6,
			profile_image = $7, portfolio_images = $8,
			video_url = $9, video_seconds = $10, video_size_bytes = $11,
			updated_at = NOW()
		WHERE id = $1
	`,
		t.ID,
		t.Name,
		t.Phone,
		t.InstagramID,
		t.Category,
		t.Bio,
		t.ProfileImage,
		pq.Array(nonNil(t.PortfolioImages)),
		url,
		seconds,
		size,
	)
	return r.checkAffected(tag, err, "update talent")
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE talents SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	return r.checkAffected(tag, err, "update talent status")
}

func (r *postgresRepository) UpdateRank(ctx context.Context, id uuid.UUID, rank int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE talents SET rank = $2, updated_at = NOW() WHERE id = $1`,
		id, rank,
	)
	return r.checkAffected(tag, err, "update talent rank")
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE talents SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	return r.checkAffected(tag, err, "update talent password")
}

// Delete removes the talent; votes go with it through ON DELETE CASCADE.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM talents WHERE id = $1`, id)
	return r.checkAffected(tag, err, "delete talent")
}

// ========================================
// HELPERS
// ========================================

func (r *postgresRepository) checkAffected(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewTalentNotFoundError()
	}
	return nil
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]*model.Talent, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list talents: %w", err)
	}
	defer rows.Close()

	talents := make([]*model.Talent, 0)
	for rows.Next() {
		t, err := scanTalent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan talent: %w", err)
		}
		talents = append(talents, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate talents: %w", err)
	}
	return talents, nil
}

func scanTalent(row pgx.Row) (*model.Talent, error) {
	var (
		t       model.Talent
		images  []string
		url     *string
		seconds *int
		size    *int64
	)
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Email,
		&t.PasswordHash,
		&t.Phone,
		&t.InstagramID,
		&t.Category,
		&t.Bio,
		&t.ProfileImage,
		pq.Array(&images),
		&url,
		&seconds,
		&size,
		&t.Status,
		&t.Rank,
		&t.VoteCount,
		&t.AgreedToTerms,
		&t.AgreedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.PortfolioImages = nonNil(images)
	if url != nil {
		t.PortfolioVideo = &model.Video{URL: *url}
		if seconds != nil {
			t.PortfolioVideo.DurationSeconds = *seconds
		}
		if size != nil {
			t.PortfolioVideo.SizeBytes = *size
		}
	}
	return &t, nil
}

func videoColumns(v *model.Video) (*string, *int, *int64) {
	if v == nil {
		return nil, nil, nil
	}
	return &v.URL, &v.DurationSeconds, &v.SizeBytes
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
