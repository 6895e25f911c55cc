package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"fashionmag-backend/internal/domains/analytics/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// target column per event type
var targetColumns = map[model.EventType]string{
	model.EventTalentView: "talent_id",
	model.EventPartyView:  "party_id",
	model.EventAdClick:    "ad_id",
}

func (r *postgresRepository) Insert(ctx context.Context, e *model.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO analytics_events
			(id, event_type, page, talent_id, party_id, ad_id, session_id, user_agent, referrer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, e.ID, string(e.Type), e.Page, e.TalentID, e.PartyID, e.AdID, e.SessionID, e.UserAgent, e.Referrer, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}
	return nil
}

func (r *postgresRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analytics_events WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count analytics events: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) UniqueSessionsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT session_id) FROM analytics_events WHERE created_at >= $1
	`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count unique sessions: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) TopTargets(ctx context.Context, t model.EventType, limit int) ([]model.TargetCount, error) {
	column, ok := targetColumns[t]
	if !ok {
		return nil, fmt.Errorf("event type %q has no target", t)
	}

	rows, err := r.pool.Query(ctx, topTargetsSQL(column), string(t), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank %s targets: %w", t, err)
	}
	defer rows.Close()

	var out []model.TargetCount
	for rows.Next() {
		var tc model.TargetCount
		if err := rows.Scan(&tc.ID, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan target count: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func topTargetsSQL(column string) string {
	return "SELECT " + column + ", COUNT(*) AS n FROM analytics_events" +
		" WHERE event_type = $1 AND " + column + " IS NOT NULL" +
		" GROUP BY " + column +
		" ORDER BY n DESC, " + column + " ASC LIMIT $2"
}

func (r *postgresRepository) Recent(ctx context.Context, limit int) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_type, page, talent_id, party_id, ad_id, session_id, user_agent, referrer, created_at
		FROM analytics_events
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent events: %w", err)
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		var (
			e                       model.Event
			eventType               string
			talentID, partyID, adID *uuid.UUID
		)
		err := rows.Scan(&e.ID, &eventType, &e.Page, &talentID, &partyID, &adID,
			&e.SessionID, &e.UserAgent, &e.Referrer, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Type = model.EventType(eventType)
		e.TalentID, e.PartyID, e.AdID = talentID, partyID, adID
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *postgresRepository) DailyCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM analytics_events
		WHERE created_at >= $1
		GROUP BY day
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count daily views: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("failed to scan daily views: %w", err)
		}
		out[day] = n
	}
	return out, rows.Err()
}

func (r *postgresRepository) PurgeBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM analytics_events WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge analytics events: %w", err)
	}
	return tag.RowsAffected(), nil
}
