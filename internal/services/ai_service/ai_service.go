package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"xr_archive/internal/domain/models"
	"xr_archive/internal/lib/idgen"
	"xr_archive/internal/lib/logger/sl"
	"xr_archive/internal/metrics"

	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"
)

// NoCredentialMessage возвращается из Refine вместо текста, когда ключ не задан
const NoCredentialMessage = "AI refinement is unavailable: no API key is configured."

const (
	refineTemperature  = 0.7
	hotspotSuggestions = 3
)

// Generator отправляет один запрос генеративной модели и возвращает текст ответа
type Generator interface {
	Generate(ctx context.Context, prompt string, opts models.GenerateOptions) (string, error)
}

type Option func(*AIService)

// WithIDGenerator задаёт генератор id для предложенных хотспотов
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *AIService) {
		s.newID = gen
	}
}

// WithBreakerSettings заменяет настройки circuit breaker
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(s *AIService) {
		s.breaker = st
	}
}

// AIService фасад над генеративной моделью: уточнение промпта и
// предложение хотспотов. Без ключа (gen == nil) оба метода деградируют.
type AIService struct {
	log     *slog.Logger
	gen     Generator
	cache   *cache.Cache
	breaker gobreaker.Settings
	cb      *gobreaker.CircuitBreaker
	newID   idgen.Generator
}

func NewAIService(log *slog.Logger, gen Generator, cacheTTL time.Duration, opts ...Option) *AIService {
	s := &AIService{
		log:     log,
		gen:     gen,
		cache:   cache.New(cacheTTL, 2*cacheTTL),
		breaker: defaultBreakerSettings(),
		newID:   idgen.TimeBased("generated-", nil),
	}

	for _, opt := range opts {
		opt(s)
	}

	st := s.breaker
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn("circuit breaker state changed",
			slog.String("name", name),
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	}
	s.cb = gobreaker.NewCircuitBreaker(st)

	return s
}

func defaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// Enabled сообщает, настроен ли ключ
func (s *AIService) Enabled() bool {
	return s.gen != nil
}

// Refine переписывает базовый промпт с учётом намерения пользователя.
// Каждый вызов идёт в модель, повторный запрос даёт новый вариант.
// Последний удачный ответ хранится в кэше и отдаётся только пока
// circuit breaker отклоняет вызовы. Без ключа возвращает
// NoCredentialMessage и nil.
func (s *AIService) Refine(ctx context.Context, basePrompt, userIntent string) (string, error) {
	const op = "ai_service.Refine"

	log := s.log.With(
		slog.String("op", op),
	)

	if s.gen == nil {
		metrics.AIRequestsTotal.WithLabelValues("refine", "no_credential").Inc()
		log.Warn("refine requested without credential")
		return NoCredentialMessage, nil
	}

	key := basePrompt + "\x00" + userIntent

	temperature := float32(refineTemperature)
	text, err := s.generate(ctx, refinePrompt(basePrompt, userIntent), models.GenerateOptions{
		Temperature: &temperature,
	})
	if err != nil {
		if cached, ok := s.cache.Get(key); ok && IsUnavailable(err) {
			metrics.AIRequestsTotal.WithLabelValues("refine", "fallback").Inc()
			log.Warn("model unavailable, returning last refinement", sl.Err(err))
			return cached.(string), nil
		}
		metrics.AIRequestsTotal.WithLabelValues("refine", "error").Inc()
		log.Error("failed to refine prompt", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	metrics.AIRequestsTotal.WithLabelValues("refine", "ok").Inc()
	s.cache.SetDefault(key, text)

	return text, nil
}

// SuggestHotspots предлагает хотспоты для записи. Никогда не возвращает
// ошибку: любой сбой даёт пустой список.
func (s *AIService) SuggestHotspots(ctx context.Context, title, description string, prompts models.PromptSet) []models.Hotspot {
	const op = "ai_service.SuggestHotspots"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", title),
	)

	if s.gen == nil {
		metrics.AIRequestsTotal.WithLabelValues("hotspots", "no_credential").Inc()
		log.Debug("hotspot suggestion skipped, no credential")
		return []models.Hotspot{}
	}

	prompt, err := hotspotPrompt(title, description, prompts)
	if err != nil {
		log.Error("failed to build hotspot prompt", sl.Err(err))
		return []models.Hotspot{}
	}

	text, err := s.generate(ctx, prompt, models.GenerateOptions{Schema: hotspotSchema()})
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues("hotspots", "error").Inc()
		log.Error("failed to suggest hotspots", sl.Err(err))
		return []models.Hotspot{}
	}

	hotspots, err := s.parseHotspots(text)
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues("hotspots", "parse_error").Inc()
		log.Error("failed to parse hotspots", sl.Err(err))
		return []models.Hotspot{}
	}

	metrics.AIRequestsTotal.WithLabelValues("hotspots", "ok").Inc()
	log.Info("hotspots suggested", slog.Int("count", len(hotspots)))

	return hotspots
}

// generate проводит вызов через circuit breaker. Результат, пришедший
// после отмены ctx, отбрасывается.
func (s *AIService) generate(ctx context.Context, prompt string, opts models.GenerateOptions) (string, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.gen.Generate(ctx, prompt, opts)
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", err
	}

	return res.(string), nil
}

type suggestedHotspot struct {
	Label       string  `json:"label"`
	Description string  `json:"description"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

func (s *AIService) parseHotspots(text string) ([]models.Hotspot, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "[]"
	}

	var items []suggestedHotspot
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, err
	}

	base := s.newID()
	out := make([]models.Hotspot, 0, len(items))
	for i, it := range items {
		out = append(out, models.Hotspot{
			ID:          base + "-" + strconv.Itoa(i),
			X:           it.X,
			Y:           it.Y,
			Label:       it.Label,
			Description: it.Description,
		})
	}

	return out, nil
}

func refinePrompt(basePrompt, userIntent string) string {
	return "As a world-class interior photographer and AI prompt engineer, refine the following base prompt based on the user's intent.\n" +
		"Base: " + basePrompt + "\n" +
		"User Intent: " + userIntent + "\n\n" +
		"Format the response as a high-quality, structured AI generation prompt focusing on lighting, camera settings, and material realism."
}

func hotspotPrompt(title, description string, prompts models.PromptSet) (string, error) {
	encoded, err := json.Marshal(prompts)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Analyze this interior design project and suggest %d logical \"interactive hotspots\" for a high-end visual archive.\n"+
		"Project: %s\n"+
		"Description: %s\n"+
		"Prompts: %s\n\n"+
		"Assign each hotspot a 'label' (e.g., 'Hand-crafted Oak Table'), a professional 'description', and logical 'x' and 'y' percentage coordinates (0-100) where such an item would likely be positioned in a standard architectural composition.\n\n"+
		"Return exactly a JSON array of objects.",
		hotspotSuggestions, title, description, encoded), nil
}

func hotspotSchema() *models.Schema {
	return &models.Schema{
		Type: models.SchemaArray,
		Items: &models.Schema{
			Type: models.SchemaObject,
			Properties: map[string]*models.Schema{
				"label":       {Type: models.SchemaString},
				"description": {Type: models.SchemaString},
				"x":           {Type: models.SchemaNumber},
				"y":           {Type: models.SchemaNumber},
			},
			Required: []string{"label", "description", "x", "y"},
		},
	}
}

// IsUnavailable сообщает, что вызов отклонён открытым circuit breaker
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
