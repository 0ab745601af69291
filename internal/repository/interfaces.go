package repository

import (
	"context"

	"xr_archive/internal/domain/models"
)

// Slot единственное хранилище всего списка записей.
// Если значение ещё не записано, Load возвращает storage.ErrSlotEmpty.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Sink получает изменения списка. Reset заменяет список целиком.
type Sink interface {
	Reset(records []models.Record)
	Upsert(rec models.Record)
	Remove(id string)
}
