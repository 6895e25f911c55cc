package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"fashionmag-backend/internal/domains/content/model"
	"fashionmag-backend/pkg/database"
)

// table maps one entry kind onto its SQL table. columns starts with id and
// ends with created_at, updated_at; values and scan follow the same order.
type table struct {
	name      string
	columns   []string
	orderBy   string
	hasActive bool
	values    func(model.Entry) []interface{}
	scan      func(pgx.Row) (model.Entry, error)
}

var tables = map[model.Kind]table{
	model.KindHero: {
		name:    "hero_slides",
		columns: []string{"id", "title", "subtitle", "category_label", "image", "sort_order", "created_at", "updated_at"},
		orderBy: "sort_order ASC, id ASC",
		values: func(e model.Entry) []interface{} {
			h := e.(*model.HeroSlide)
			return []interface{}{h.ID, h.Title, h.Subtitle, h.CategoryLabel, h.Image, h.Order, h.CreatedAt, h.UpdatedAt}
		},
		scan: func(row pgx.Row) (model.Entry, error) {
			var h model.HeroSlide
			err := row.Scan(&h.ID, &h.Title, &h.Subtitle, &h.CategoryLabel, &h.Image, &h.Order, &h.CreatedAt, &h.UpdatedAt)
			return &h, err
		},
	},
	model.KindAdvertisement: {
		name:      "advertisements",
		columns:   []string{"id", "title", "link", "image", "sort_order", "is_active", "created_at", "updated_at"},
		orderBy:   "sort_order ASC, id ASC",
		hasActive: true,
		values: func(e model.Entry) []interface{} {
			a := e.(*model.Advertisement)
			return []interface{}{a.ID, a.Title, a.Link, a.Image, a.Order, a.IsActive, a.CreatedAt, a.UpdatedAt}
		},
		scan: func(row pgx.Row) (model.Entry, error) {
			var a model.Advertisement
			err := row.Scan(&a.ID, &a.Title, &a.Link, &a.Image, &a.Order, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
			return &a, err
		},
	},
	model.KindPartyEvent: {
		name: "party_events",
		columns: []string{
			"id", "title", "venue", "event_date", "description", "image",
			"entry_code", "booking_info", "contact", "is_active", "created_at", "updated_at",
		},
		orderBy:   "created_at DESC, id ASC",
		hasActive: true,
		values: func(e model.Entry) []interface{} {
			p := e.(*model.PartyEvent)
			return []interface{}{
				p.ID, p.Title, p.Venue, p.EventDate, p.Description, p.Image,
				p.EntryCode, p.BookingInfo, p.Contact, p.IsActive, p.CreatedAt, p.UpdatedAt,
			}
		},
		scan: func(row pgx.Row) (model.Entry, error) {
			var p model.PartyEvent
			err := row.Scan(
				&p.ID, &p.Title, &p.Venue, &p.EventDate, &p.Description, &p.Image,
				&p.EntryCode, &p.BookingInfo, &p.Contact, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			)
			return &p, err
		},
	},
	model.KindContestWinner: {
		name: "contest_winners",
		columns: []string{
			"id", "title", "winner_name", "category", "description", "images",
			"talent_id", "is_active", "created_at", "updated_at",
		},
		orderBy:   "created_at DESC, id ASC",
		hasActive: true,
		values: func(e model.Entry) []interface{} {
			w := e.(*model.ContestWinner)
			images := w.Images
			if images == nil {
				images = []string{}
			}
			return []interface{}{
				w.ID, w.Title, w.WinnerName, w.Category, w.Description, pq.Array(images),
				w.TalentID, w.IsActive, w.CreatedAt, w.UpdatedAt,
			}
		},
		scan: func(row pgx.Row) (model.Entry, error) {
			var (
				w      model.ContestWinner
				images []string
			)
			err := row.Scan(
				&w.ID, &w.Title, &w.WinnerName, &w.Category, &w.Description, pq.Array(&images),
				&w.TalentID, &w.IsActive, &w.CreatedAt, &w.UpdatedAt,
			)
			w.Images = images
			if w.Images == nil {
				w.Images = []string{}
			}
			return &w, err
		},
	},
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func tableFor(kind model.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("no table for content kind %q", kind)
	}
	return t, nil
}

func (t table) selectSQL() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t table) insertSQL() string {
	placeholders := make([]string, len(t.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))
}

// updateSQL sets every column but id and created_at; the arguments are values() as is.
func (t table) updateSQL() string {
	var sets []string
	for i, col := range t.columns {
		if col == "id" || col == "created_at" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", t.name, strings.Join(sets, ", "))
}

// =====================================================
// WRITE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, e model.Entry, limit int) error {
	t, err := tableFor(e.Kind())
	if err != nil {
		return err
	}

	if limit <= 0 {
		if _, err := r.pool.Exec(ctx, t.insertSQL(), t.values(e)...); err != nil {
			return fmt.Errorf("failed to create %s: %w", e.Kind(), err)
		}
		return nil
	}

	// The table lock serialises concurrent creates so the count stays accurate
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "LOCK TABLE "+t.name+" IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return fmt.Errorf("failed to lock %s: %w", t.name, err)
		}

		var n int
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(&n); err != nil {
			return fmt.Errorf("failed to count %s: %w", t.name, err)
		}
		if n >= limit {
			return capacityError(e.Kind(), limit)
		}

		if _, err := tx.Exec(ctx, t.insertSQL(), t.values(e)...); err != nil {
			return fmt.Errorf("failed to create %s: %w", e.Kind(), err)
		}
		return nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, e model.Entry) error {
	t, err := tableFor(e.Kind())
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, t.updateSQL(), t.values(e)...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", e.Kind(), err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(e.Kind())
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, kind model.Kind, id uuid.UUID) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, "DELETE FROM "+t.name+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(kind)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresRepository) Get(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Entry, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	e, err := t.scan(r.pool.QueryRow(ctx, t.selectSQL()+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(kind)
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, kind model.Kind, activeOnly bool) ([]model.Entry, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := t.selectSQL()
	if activeOnly && t.hasActive {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY " + t.orderBy

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer rows.Close()

	entries := make([]model.Entry, 0)
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", kind, err)
	}
	return entries, nil
}

func (r *postgresRepository) Count(ctx context.Context, kind model.Kind, activeOnly bool) (int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	query := "SELECT COUNT(*) FROM " + t.name
	if activeOnly && t.hasActive {
		query += " WHERE is_active = TRUE"
	}

	var n int
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", kind, err)
	}
	return n, nil
}
