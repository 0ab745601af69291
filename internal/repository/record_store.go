package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"xr_archive/internal/domain/models"
	"xr_archive/internal/lib/logger/sl"
	"xr_archive/internal/metrics"
	"xr_archive/internal/storage"
)

var (
	ErrNotLoaded = errors.New("record store is not loaded")
	ErrEmptyID   = errors.New("record id is empty")
)

// RecordStore локальный вариант архива: весь список хранится в одном слоте
// и переписывается целиком при каждом изменении.
type RecordStore struct {
	log      *slog.Logger
	slot     Slot
	defaults []models.Record

	mu      sync.Mutex
	sink    Sink
	records []models.Record
}

func NewRecordStore(log *slog.Logger, slot Slot) *RecordStore {
	return &RecordStore{
		log:      log,
		slot:     slot,
		defaults: models.DefaultRecords(),
	}
}

// Load читает слот и отдаёт список в sink. Пустой или повреждённый слот
// заменяется записями по умолчанию, это не ошибка.
func (s *RecordStore) Load(ctx context.Context, sink Sink) error {
	const op = "repository.RecordStore.Load"

	log := s.log.With(
		slog.String("op", op),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	switch {
	case errors.Is(err, storage.ErrSlotEmpty):
		log.Info("slot is empty, using default records")
		records = cloneAll(s.defaults)
	case err != nil:
		log.Warn("failed to read slot, using default records", sl.Err(err))
		records = cloneAll(s.defaults)
	}

	s.sink = sink
	s.records = records
	sink.Reset(cloneAll(records))

	log.Info("records loaded", slog.Int("count", len(records)))

	return nil
}

func (s *RecordStore) read(ctx context.Context) ([]models.Record, error) {
	data, err := s.slot.Load(ctx)
	if err != nil {
		return nil, err
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.Record{}
	}

	return records, nil
}

// Publish заменяет запись с тем же id на месте или добавляет её в начало,
// сохраняет список и только потом сообщает sink.
func (s *RecordStore) Publish(ctx context.Context, rec models.Record) error {
	const op = "repository.RecordStore.Publish"

	if rec.ID == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sink == nil {
		return fmt.Errorf("%s: %w", op, ErrNotLoaded)
	}

	next := upsert(s.records, rec.Clone())
	if err := s.persist(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.records = next
	s.sink.Upsert(rec.Clone())

	return nil
}

// Delete убирает запись и сохраняет список. Отсутствующий id не ошибка.
func (s *RecordStore) Delete(ctx context.Context, id string) error {
	const op = "repository.RecordStore.Delete"

	if id == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sink == nil {
		return fmt.Errorf("%s: %w", op, ErrNotLoaded)
	}

	next := remove(s.records, id)
	if err := s.persist(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.records = next
	s.sink.Remove(id)

	return nil
}

// Teardown отключает sink, после этого изменения ему не доставляются
func (s *RecordStore) Teardown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sink = nil

	return nil
}

func (s *RecordStore) persist(ctx context.Context, records []models.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	if err := s.slot.Save(ctx, data); err != nil {
		metrics.StoreWritesTotal.WithLabelValues("error").Inc()
		s.log.Error("failed to save records", slog.Int("count", len(records)), sl.Err(err))
		return err
	}

	metrics.StoreWritesTotal.WithLabelValues("ok").Inc()

	return nil
}

func upsert(records []models.Record, rec models.Record) []models.Record {
	out := make([]models.Record, 0, len(records)+1)
	replaced := false
	for _, r := range records {
		if r.ID == rec.ID {
			out = append(out, rec)
			replaced = true
			continue
		}
		out = append(out, r)
	}
	if !replaced {
		out = append([]models.Record{rec}, out...)
	}
	return out
}

func remove(records []models.Record, id string) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func cloneAll(records []models.Record) []models.Record {
	out := make([]models.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
