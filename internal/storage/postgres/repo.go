package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/landaireal/landai-rent/internal/domain"
)

// DB is the slice of pgxpool.Pool the repo uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

const propertyColumns = `title_en, title_ar, description_en, description_ar, type, category,
  location, price, area, image_url, features, is_featured`

const insertPropertySQL = `
INSERT INTO properties (` + propertyColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, created_at
`

const insertInquirySQL = `
INSERT INTO inquiries (name, email, phone, message, property_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`

const selectPropertySQL = `SELECT id, ` + propertyColumns + `, created_at FROM properties`

var schema = []string{`
CREATE TABLE IF NOT EXISTS properties (
  id             SERIAL PRIMARY KEY,
  title_en       TEXT        NOT NULL,
  title_ar       TEXT        NOT NULL,
  description_en TEXT        NOT NULL,
  description_ar TEXT        NOT NULL,
  type           TEXT        NOT NULL,
  category       TEXT        NOT NULL,
  location       TEXT        NOT NULL,
  price          INTEGER     NOT NULL,
  area           INTEGER     NOT NULL,
  image_url      TEXT        NOT NULL,
  features       JSONB,
  is_featured    BOOLEAN     NOT NULL DEFAULT false,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`, `
CREATE TABLE IF NOT EXISTS inquiries (
  id          SERIAL PRIMARY KEY,
  name        TEXT        NOT NULL,
  email       TEXT        NOT NULL,
  phone       TEXT        NOT NULL,
  message     TEXT        NOT NULL,
  property_id INTEGER,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

type Repo struct{ db DB }

func New(db DB) (*Repo, error) {
	if db == nil {
		return nil, fmt.Errorf("postgres repo: db cannot be nil")
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres migrate: %w", err)
		}
	}
	return nil
}

func featuresArg(v []string) any {
	if v == nil {
		return nil
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// id and created_at come back from the same statement that inserts the row.
func (r *Repo) CreateProperty(ctx context.Context, in domain.PropertyInput) (domain.Property, error) {
	p := domain.Property{PropertyInput: in}
	err := r.db.QueryRow(ctx, insertPropertySQL,
		in.TitleEn, in.TitleAr,
		in.DescriptionEn, in.DescriptionAr,
		in.Type, in.Category,
		in.Location,
		in.Price, in.Area,
		in.ImageURL,
		featuresArg(in.Features),
		in.IsFeatured,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return domain.Property{}, fmt.Errorf("insert property: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p.Clone(), nil
}

func (r *Repo) CreateInquiry(ctx context.Context, in domain.InquiryInput) (domain.Inquiry, error) {
	q := domain.Inquiry{InquiryInput: in}
	err := r.db.QueryRow(ctx, insertInquirySQL, in.Name, in.Email, in.Phone, in.Message, in.PropertyID).
		Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("insert inquiry: %w", err)
	}
	q.CreatedAt = q.CreatedAt.UTC()
	return q, nil
}

func (r *Repo) GetProperty(ctx context.Context, id int64) (domain.Property, bool, error) {
	p, err := scanProperty(r.db.QueryRow(ctx, selectPropertySQL+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, false, nil
		}
		return domain.Property{}, false, fmt.Errorf("get property %d: %w", id, err)
	}
	return p, true, nil
}

func (r *Repo) GetProperties(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.db.Query(ctx, selectPropertySQL+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	out := []domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("list properties: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return out, nil
}

func scanProperty(row pgx.Row) (domain.Property, error) {
	var p domain.Property
	var features []byte
	if err := row.Scan(
		&p.ID,
		&p.TitleEn, &p.TitleAr,
		&p.DescriptionEn, &p.DescriptionAr,
		&p.Type, &p.Category,
		&p.Location,
		&p.Price, &p.Area,
		&p.ImageURL,
		&features,
		&p.IsFeatured,
		&p.CreatedAt,
	); err != nil {
		return domain.Property{}, err
	}
	if features != nil {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return domain.Property{}, fmt.Errorf("property %d features: %w", p.ID, err)
		}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}
