// Package sqlstore is the database/sql storage backend. It serves MySQL and
// SQLite, which share placeholder syntax and LastInsertId.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/landaireal/landai-rent/internal/domain"
)

type Dialect struct {
	Name   string // also the database/sql driver name
	schema []string
}

var (
	MySQL  = Dialect{Name: "mysql", schema: mysqlSchema}
	SQLite = Dialect{Name: "sqlite", schema: sqliteSchema}
)

// timestamps are written as text so both engines store exactly what we return
const tsLayout = "2006-01-02 15:04:05.000000"

func valJSON(v []string) any {
	if v == nil {
		return nil
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

// ceilMicro rounds up to the column precision so a stored createdAt is never
// earlier than the moment the insert was requested.
func ceilMicro(t time.Time) time.Time {
	r := t.Truncate(time.Microsecond)
	if r.Before(t) {
		r = r.Add(time.Microsecond)
	}
	return r.UTC()
}

type Repo struct {
	db  *sql.DB
	d   Dialect
	now func() time.Time
}

func New(db *sql.DB, d Dialect) *Repo { return &Repo{db: db, d: d, now: time.Now} }

func (r *Repo) Dialect() Dialect { return r.d }

// Migrate creates the tables when missing. Each statement runs on its own so
// the DSN doesn't need multiStatements.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range r.d.schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s migrate: %w", r.d.Name, err)
		}
	}
	return nil
}

func (r *Repo) CreateProperty(ctx context.Context, in domain.PropertyInput) (domain.Property, error) {
	created := ceilMicro(r.now())
	res, err := r.db.ExecContext(ctx, insertPropertySQL,
		in.TitleEn,
		in.TitleAr,
		in.DescriptionEn,
		in.DescriptionAr,
		in.Type,
		in.Category,
		in.Location,
		in.Price,
		in.Area,
		in.ImageURL,
		valJSON(in.Features),
		in.IsFeatured,
		created.Format(tsLayout),
	)
	if err != nil {
		return domain.Property{}, fmt.Errorf("insert property: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Property{}, fmt.Errorf("insert property: %w", err)
	}
	p := domain.Property{ID: id, PropertyInput: in, CreatedAt: created}
	return p.Clone(), nil
}

func (r *Repo) CreateInquiry(ctx context.Context, in domain.InquiryInput) (domain.Inquiry, error) {
	created := ceilMicro(r.now())
	res, err := r.db.ExecContext(ctx, insertInquirySQL,
		in.Name,
		in.Email,
		in.Phone,
		in.Message,
		valInt64(in.PropertyID),
		created.Format(tsLayout),
	)
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("insert inquiry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("insert inquiry: %w", err)
	}
	return domain.Inquiry{ID: id, InquiryInput: in, CreatedAt: created}, nil
}

func (r *Repo) GetProperty(ctx context.Context, id int64) (domain.Property, bool, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, getPropertySQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Property{}, false, nil
		}
		return domain.Property{}, false, fmt.Errorf("get property %d: %w", id, err)
	}
	return p, true, nil
}

func (r *Repo) GetProperties(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, listPropertiesSQL)
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

type scanner interface{ Scan(dest ...any) error }

func scanProperty(s scanner) (domain.Property, error) {
	var p domain.Property
	var features sql.NullString
	var created dbTime
	if err := s.Scan(
		&p.ID,
		&p.TitleEn, &p.TitleAr,
		&p.DescriptionEn, &p.DescriptionAr,
		&p.Type, &p.Category,
		&p.Location,
		&p.Price, &p.Area,
		&p.ImageURL,
		&features,
		&p.IsFeatured,
		&created,
	); err != nil {
		return domain.Property{}, err
	}
	if features.Valid {
		if err := json.Unmarshal([]byte(features.String), &p.Features); err != nil {
			return domain.Property{}, fmt.Errorf("property %d features: %w", p.ID, err)
		}
	}
	p.CreatedAt = created.Time
	return p, nil
}

// dbTime accepts whatever the driver hands back for a timestamp column.
type dbTime struct{ time.Time }

var tsLayouts = []string{tsLayout, "2006-01-02 15:04:05.999999999", time.RFC3339Nano}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		return errors.New("timestamp is NULL")
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range tsLayouts {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = v.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", s)
}
