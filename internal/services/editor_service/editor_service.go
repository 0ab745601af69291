package services

import (
	"context"
	"fmt"
	"log/slog"

	"xr_archive/internal/domain/models"
	"xr_archive/internal/lib/idgen"
	"xr_archive/internal/lib/logger/sl"
)

const (
	DefaultTitle       = "Untitled Space"
	DefaultSubtitle    = "Custom Entry"
	DefaultDescription = "No description provided."
	DefaultComposition = "Architectural shot"
	DefaultCamera      = "Professional Setup, 8k resolution"
	DefaultNegative    = "blur, noise, messy, distorted, low quality"
)

type Archive interface {
	Create(ctx context.Context, rec models.Record) (models.Record, error)
	Update(ctx context.Context, rec models.Record) (models.Record, error)
}

type HotspotSuggester interface {
	SuggestHotspots(ctx context.Context, title, description string, prompts models.PromptSet) []models.Hotspot
}

// EditorService собирает запись из формы и передаёт её в архив
type EditorService struct {
	log     *slog.Logger
	archive Archive
	ai      HotspotSuggester
	newID   idgen.Generator
}

func NewEditorService(log *slog.Logger, archive Archive, ai HotspotSuggester, newID idgen.Generator) *EditorService {
	if newID == nil {
		newID = idgen.TimeBased("custom-", nil)
	}

	return &EditorService{
		log:     log,
		archive: archive,
		ai:      ai,
		newID:   newID,
	}
}

// Submit создаёт новую запись (initial == nil) или обновляет initial.
// Без главного изображения ничего не происходит, даже запрос к AI.
func (s *EditorService) Submit(ctx context.Context, draft models.Draft, initial *models.Record) (models.Record, error) {
	const op = "editor_service.Submit"

	log := s.log.With(
		slog.String("op", op),
	)

	if draft.MainImage == "" {
		log.Warn("draft rejected, main image is missing")
		return models.Record{}, fmt.Errorf("%s: %w", op, models.ErrMainImageRequired)
	}

	prompts := models.PromptSet{
		Lighting:    draft.LightingPrompt(),
		Composition: orDefault(draft.SpaceStructure, DefaultComposition),
		Materials:   draft.MaterialsPrompt(),
		Camera:      DefaultCamera,
		Negative:    DefaultNegative,
	}

	hotspots := []models.Hotspot{}
	id := ""
	if initial != nil {
		prompts.Camera = orDefault(initial.Prompts.Camera, DefaultCamera)
		prompts.Negative = orDefault(initial.Prompts.Negative, DefaultNegative)
		if initial.Hotspots != nil {
			hotspots = append(hotspots, initial.Hotspots...)
		}
		id = initial.ID
	}
	if id == "" {
		id = s.newID()
	}

	if initial == nil || initial.Title != draft.Title {
		if suggested := s.ai.SuggestHotspots(ctx, draft.Title, draft.Description, prompts); len(suggested) > 0 {
			hotspots = suggested
		}
	}

	rec := models.Record{
		ID:          id,
		Title:       orDefault(draft.Title, DefaultTitle),
		Subtitle:    orDefault(draft.Subtitle, DefaultSubtitle),
		Description: orDefault(draft.Description, DefaultDescription),
		MainImage:   draft.MainImage,
		Gallery:     append([]string(nil), draft.Gallery...),
		Hotspots:    hotspots,
		Prompts:     prompts,
	}
	rec = rec.WithGalleryFallback()

	log = log.With(slog.String("id", rec.ID))

	var (
		committed models.Record
		err       error
	)
	if initial == nil {
		committed, err = s.archive.Create(ctx, rec)
	} else {
		committed, err = s.archive.Update(ctx, rec)
	}
	if err != nil {
		log.Error("failed to commit record", sl.Err(err))
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("record submitted", slog.Bool("created", initial == nil), slog.Int("hotspots", len(rec.Hotspots)))

	return committed, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
