package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"xr_archive/internal/domain/models"
	"xr_archive/internal/lib/logger/sl"
)

var ErrRecordNotFound = errors.New("record not found")

type Status string

const (
	StatusSyncing Status = "syncing"
	StatusLive    Status = "live"
)

type View string

const (
	ViewArchive View = "archive"
	ViewDetail  View = "detail"
)

// Backend принимает изменения архива. Результат записи возвращается
// в сервис через Reset/Upsert/Remove, а не через возвращаемое значение.
type Backend interface {
	Publish(ctx context.Context, rec models.Record) error
	Delete(ctx context.Context, id string) error
}

// State снимок состояния для наблюдателей
type State struct {
	Status   Status          `json:"status"`
	View     View            `json:"view"`
	Records  []models.Record `json:"records"`
	Selected *models.Record  `json:"selected,omitempty"`
}

// ArchiveService держит упорядоченный список записей, статус синхронизации
// и выбранную запись. Список меняется только через методы Sink.
type ArchiveService struct {
	log     *slog.Logger
	backend Backend

	mu       sync.RWMutex
	records  []models.Record
	status   Status
	selected *models.Record

	watchMu   sync.Mutex
	watchers  map[int]func(State)
	nextWatch int
}

func NewArchiveService(log *slog.Logger, backend Backend) *ArchiveService {
	return &ArchiveService{
		log:      log,
		backend:  backend,
		records:  []models.Record{},
		status:   StatusSyncing,
		watchers: make(map[int]func(State)),
	}
}

// Reset заменяет список целиком
func (s *ArchiveService) Reset(records []models.Record) {
	s.mu.Lock()
	s.records = make([]models.Record, 0, len(records))
	for _, r := range records {
		s.records = append(s.records, r.Clone())
	}
	if s.selected != nil {
		if i := s.indexOf(s.selected.ID); i >= 0 {
			rec := s.records[i].Clone()
			s.selected = &rec
		} else {
			s.selected = nil
		}
	}
	s.status = StatusLive
	s.mu.Unlock()

	s.notify()
}

// Upsert заменяет запись с тем же id на месте или добавляет её в начало
func (s *ArchiveService) Upsert(rec models.Record) {
	s.mu.Lock()
	rec = rec.Clone()
	if i := s.indexOf(rec.ID); i >= 0 {
		s.records[i] = rec
	} else {
		s.records = append([]models.Record{rec}, s.records...)
	}
	if s.selected != nil && s.selected.ID == rec.ID {
		sel := rec.Clone()
		s.selected = &sel
	}
	s.status = StatusLive
	s.mu.Unlock()

	s.notify()
}

// Remove убирает запись; если она была открыта, вид возвращается к архиву
func (s *ArchiveService) Remove(id string) {
	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.records = append(s.records[:i:i], s.records[i+1:]...)
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()

	s.notify()
}

func (s *ArchiveService) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Open выбирает запись и переключает вид на детальный
func (s *ArchiveService) Open(rec models.Record) {
	s.mu.Lock()
	sel := rec.Clone()
	s.selected = &sel
	s.mu.Unlock()

	s.notify()
}

// OpenByID выбирает запись из текущего списка
func (s *ArchiveService) OpenByID(id string) (models.Record, error) {
	const op = "archive_service.OpenByID"

	rec, err := s.Get(id)
	if err != nil {
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}

	s.Open(rec)

	return rec, nil
}

func (s *ArchiveService) GoHome() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()

	s.notify()
}

// Create проверяет запись и передаёт её бэкенду. Список обновится,
// когда бэкенд вызовет Upsert.
func (s *ArchiveService) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	const op = "archive_service.Create"

	return s.commit(ctx, op, rec)
}

// Update работает как Create и дополнительно выбирает обновлённую запись
func (s *ArchiveService) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	const op = "archive_service.Update"

	committed, err := s.commit(ctx, op, rec)
	if err != nil {
		return models.Record{}, err
	}

	s.Open(committed)

	return committed, nil
}

func (s *ArchiveService) commit(ctx context.Context, op string, rec models.Record) (models.Record, error) {
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", rec.ID),
	)

	if err := rec.Validate(); err != nil {
		log.Warn("record rejected", sl.Err(err))
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}

	rec = rec.WithGalleryFallback()
	if rec.Hotspots == nil {
		rec.Hotspots = []models.Hotspot{}
	}

	if err := s.backend.Publish(ctx, rec); err != nil {
		log.Error("failed to publish record", sl.Err(err))
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("record committed")

	return rec, nil
}

// Delete передаёт удаление бэкенду и возвращает вид к архиву
func (s *ArchiveService) Delete(ctx context.Context, id string) error {
	const op = "archive_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	if err := s.backend.Delete(ctx, id); err != nil {
		log.Error("failed to delete record", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.GoHome()

	log.Info("record deleted")

	return nil
}

func (s *ArchiveService) Get(id string) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.records[i].Clone(), nil
	}

	return models.Record{}, ErrRecordNotFound
}

func (s *ArchiveService) Records() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

func (s *ArchiveService) Selected() *models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected == nil {
		return nil
	}
	rec := s.selected.Clone()
	return &rec
}

func (s *ArchiveService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

func (s *ArchiveService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Status:  s.status,
		View:    ViewArchive,
		Records: make([]models.Record, len(s.records)),
	}
	for i, r := range s.records {
		st.Records[i] = r.Clone()
	}
	if s.selected != nil {
		rec := s.selected.Clone()
		st.Selected = &rec
		st.View = ViewDetail
	}
	return st
}

// Watch подписывает fn на изменения состояния. fn вызывается синхронно
// и не должна блокироваться. Возвращает функцию отписки.
func (s *ArchiveService) Watch(fn func(State)) func() {
	s.watchMu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = fn
	s.watchMu.Unlock()

	return func() {
		s.watchMu.Lock()
		delete(s.watchers, id)
		s.watchMu.Unlock()
	}
}

func (s *ArchiveService) notify() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if len(s.watchers) == 0 {
		return
	}

	st := s.State()
	for _, fn := range s.watchers {
		fn(st)
	}
}
