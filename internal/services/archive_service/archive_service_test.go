package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"xr_archive/internal/domain/models"
	"xr_archive/internal/repository"
	services "xr_archive/internal/services/archive_service"
	filestorage "xr_archive/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Publish(ctx context.Context, rec models.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockBackend) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
}

func record(id, title string) models.Record {
	return models.Record{
		ID:        id,
		Title:     title,
		MainImage: "https://img/" + id + ".jpg",
		Gallery:   []string{"https://img/" + id + ".jpg"},
		Hotspots:  []models.Hotspot{},
	}
}

func ids(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestArchiveService_StatusIsMonotonic(t *testing.T) {
	svc := services.NewArchiveService(newLogger(), new(MockBackend))

	assert.Equal(t, services.StatusSyncing, svc.Status())

	svc.Upsert(record("a", "A"))
	assert.Equal(t, services.StatusLive, svc.Status())

	svc.Remove("a")
	svc.Reset(nil)
	assert.Equal(t, services.StatusLive, svc.Status())
	assert.Empty(t, svc.Records())
}

func TestArchiveService_TombstoneAloneKeepsSyncing(t *testing.T) {
	svc := services.NewArchiveService(newLogger(), new(MockBackend))

	svc.Remove("deleted-elsewhere")
	assert.Equal(t, services.StatusSyncing, svc.Status())

	svc.Upsert(record("a", "A"))
	assert.Equal(t, services.StatusLive, svc.Status())
}

func TestArchiveService_ReplaceOrPrepend(t *testing.T) {
	svc := services.NewArchiveService(newLogger(), new(MockBackend))

	svc.Upsert(record("a", "A"))
	svc.Upsert(record("b", "B"))
	svc.Upsert(record("c", "C"))
	assert.Equal(t, []string{"c", "b", "a"}, ids(svc.Records()))

	svc.Upsert(record("b", "B2"))
	got := svc.Records()
	assert.Equal(t, []string{"c", "b", "a"}, ids(got))
	assert.Equal(t, "B2", got[1].Title)

	svc.Remove("missing")
	assert.Len(t, svc.Records(), 3)
}

func TestArchiveService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("missing main image is rejected before the backend", func(t *testing.T) {
		backend := new(MockBackend)
		svc := services.NewArchiveService(newLogger(), backend)

		_, err := svc.Create(ctx, models.Record{ID: "x", Title: "No image"})

		assert.ErrorIs(t, err, models.ErrMainImageRequired)
		backend.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		assert.Empty(t, svc.Records())
	})

	t.Run("gallery falls back to main image", func(t *testing.T) {
		backend := new(MockBackend)
		svc := services.NewArchiveService(newLogger(), backend)

		backend.On("Publish", mock.Anything, mock.MatchedBy(func(r models.Record) bool {
			return len(r.Gallery) == 1 && r.Gallery[0] == "https://img/loft.jpg"
		})).Return(nil).Once()

		rec, err := svc.Create(ctx, models.Record{ID: "loft", Title: "Loft", MainImage: "https://img/loft.jpg"})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://img/loft.jpg"}, rec.Gallery)
		assert.NotNil(t, rec.Hotspots)
		backend.AssertExpectations(t)
	})

	t.Run("list is not touched until the backend reports back", func(t *testing.T) {
		backend := new(MockBackend)
		svc := services.NewArchiveService(newLogger(), backend)
		backend.On("Publish", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, record("a", "A"))
		require.NoError(t, err)
		assert.Empty(t, svc.Records())
		assert.Equal(t, services.StatusSyncing, svc.Status())
	})

	t.Run("backend error is returned", func(t *testing.T) {
		backend := new(MockBackend)
		svc := services.NewArchiveService(newLogger(), backend)
		backend.On("Publish", mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))

		_, err := svc.Create(ctx, record("a", "A"))
		assert.Error(t, err)
	})
}

func TestArchiveService_UpdateSelects(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackend)
	svc := services.NewArchiveService(newLogger(), backend)
	svc.Upsert(record("a", "A"))

	backend.On("Publish", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		svc.Upsert(args.Get(1).(models.Record))
	})

	updated := record("a", "A2")
	_, err := svc.Update(ctx, updated)
	require.NoError(t, err)

	sel := svc.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "A2", sel.Title)
	assert.Equal(t, services.ViewDetail, svc.State().View)
	assert.Equal(t, "A2", svc.Records()[0].Title)
}

func TestArchiveService_DeleteGoesHome(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackend)
	svc := services.NewArchiveService(newLogger(), backend)
	svc.Upsert(record("a", "A"))
	svc.Upsert(record("b", "B"))

	_, err := svc.OpenByID("a")
	require.NoError(t, err)

	backend.On("Delete", mock.Anything, "a").Return(nil).Run(func(args mock.Arguments) {
		svc.Remove("a")
	})

	require.NoError(t, svc.Delete(ctx, "a"))

	assert.Nil(t, svc.Selected())
	assert.Equal(t, services.ViewArchive, svc.State().View)
	assert.Equal(t, []string{"b"}, ids(svc.Records()))
}

func TestArchiveService_OpenAndGoHome(t *testing.T) {
	svc := services.NewArchiveService(newLogger(), new(MockBackend))
	svc.Upsert(record("a", "A"))

	_, err := svc.OpenByID("missing")
	assert.ErrorIs(t, err, services.ErrRecordNotFound)
	assert.Nil(t, svc.Selected())

	svc.Open(record("a", "A"))
	require.NotNil(t, svc.Selected())

	svc.Upsert(record("a", "A from peer"))
	assert.Equal(t, "A from peer", svc.Selected().Title)

	svc.GoHome()
	assert.Nil(t, svc.Selected())
}

func TestArchiveService_RemoteRemovalClearsSelection(t *testing.T) {
	svc := services.NewArchiveService(newLogger(), new(MockBackend))
	svc.Upsert(record("a", "A"))
	svc.Open(record("a", "A"))

	svc.Remove("a")

	assert.Nil(t, svc.Selected())
}

func TestArchiveService_Watch(t *testing.T) {
	svc := services.NewArchiveService(newLogger(), new(MockBackend))

	var mu sync.Mutex
	var states []services.State
	unsubscribe := svc.Watch(func(st services.State) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, st)
	})

	svc.Upsert(record("a", "A"))
	svc.Open(record("a", "A"))

	unsubscribe()
	svc.GoHome()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, states, 2)
	assert.Equal(t, services.StatusLive, states[0].Status)
	assert.Equal(t, []string{"a"}, ids(states[0].Records))
	assert.Equal(t, services.ViewDetail, states[1].View)
}

func TestArchiveService_WithRecordStore(t *testing.T) {
	ctx := context.Background()
	slot := filestorage.NewSlot(filepath.Join(t.TempDir(), "archive.json"))

	store := repository.NewRecordStore(newLogger(), slot)
	svc := services.NewArchiveService(newLogger(), store)
	require.NoError(t, store.Load(ctx, svc))

	assert.Equal(t, services.StatusLive, svc.Status())
	assert.Equal(t, []string{"nordic-silence", "zenith-penthouse"}, ids(svc.Records()))

	_, err := svc.Create(ctx, models.Record{ID: "custom-1", Title: "Loft", MainImage: "https://img/loft.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"custom-1", "nordic-silence", "zenith-penthouse"}, ids(svc.Records()))

	require.NoError(t, svc.Delete(ctx, "nordic-silence"))

	reloaded := services.NewArchiveService(newLogger(), store)
	require.NoError(t, repository.NewRecordStore(newLogger(), slot).Load(ctx, reloaded))
	assert.Equal(t, []string{"custom-1", "zenith-penthouse"}, ids(reloaded.Records()))
	assert.Equal(t, []string{"https://img/loft.jpg"}, reloaded.Records()[0].Gallery)
}
