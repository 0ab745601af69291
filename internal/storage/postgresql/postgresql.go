package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"xr_archive/internal/storage"
)

const slotTable = "archive_slots"

type Storage struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func New(ctx context.Context, storagePath string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

func (s *Storage) Stop() {
	s.db.Close()
}

// Migrate создаёт таблицу слотов, если её ещё нет
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS archive_slots (
			name TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Slot одна строка таблицы archive_slots со всем списком записей
type Slot struct {
	s    *Storage
	name string
}

func (s *Storage) Slot(name string) *Slot {
	return &Slot{s: s, name: name}
}

func (slot *Slot) Load(ctx context.Context) ([]byte, error) {
	const op = "storage.postgresql.Slot.Load"

	query, args, err := slot.s.sb.Select("data").
		From(slotTable).
		Where(sq.Eq{"name": slot.name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var data []byte
	if err := slot.s.db.QueryRow(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrSlotEmpty)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

func (slot *Slot) Save(ctx context.Context, data []byte) error {
	const op = "storage.postgresql.Slot.Save"

	query, args, err := slot.s.sb.Insert(slotTable).
		Columns("name", "data", "updated_at").
		Values(slot.name, string(data), time.Now().UTC()).
		Suffix("ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := slot.s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
