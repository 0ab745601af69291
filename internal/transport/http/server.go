package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"xr_archive/internal/domain/models"
	"xr_archive/internal/lib/logger/sl"
	ai "xr_archive/internal/services/ai_service"
	archive "xr_archive/internal/services/archive_service"
	"xr_archive/internal/storage"
	"xr_archive/internal/transport/http/dto"
	"xr_archive/internal/transport/http/dto/request"
	"xr_archive/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"

	_ "xr_archive/docs"
)

type ArchiveService interface {
	State() archive.State
	Status() archive.Status
	Get(id string) (models.Record, error)
	OpenByID(id string) (models.Record, error)
	GoHome()
	Delete(ctx context.Context, id string) error
	Watch(fn func(archive.State)) func()
}

type EditorService interface {
	Submit(ctx context.Context, draft models.Draft, initial *models.Record) (models.Record, error)
}

type AIService interface {
	Enabled() bool
	Refine(ctx context.Context, basePrompt, userIntent string) (string, error)
	SuggestHotspots(ctx context.Context, title, description string, prompts models.PromptSet) []models.Hotspot
}

type ImageService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, inline bool) (*models.Image, error)
}

type Routers struct {
	log            *slog.Logger
	ArchiveService ArchiveService
	EditorService  EditorService
	AIService      AIService
	ImageService   ImageService
}

func NewRouter(log *slog.Logger, archiveService ArchiveService, editorService EditorService, aiService AIService, imageService ImageService) *Routers {
	return &Routers{
		log:            log,
		ArchiveService: archiveService,
		EditorService:  editorService,
		AIService:      aiService,
		ImageService:   imageService,
	}
}

// ListRecords godoc
// @Summary Список записей архива
// @Description Возвращает упорядоченный список, статус синхронизации и выбранную запись
// @Tags records
// @Produce json
// @Success 200 {object} response.Response{data=archive.State}
// @Router /api/v1/records [get]
func (r *Routers) ListRecords(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(r.ArchiveService.State()))
}

// OpenRecord godoc
// @Summary Открыть запись
// @Description Выбирает запись и переключает вид на детальный
// @Tags records
// @Produce json
// @Param id path string true "ID записи"
// @Success 200 {object} response.Response{data=models.Record}
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /api/v1/records/{id} [get]
func (r *Routers) OpenRecord(c echo.Context) error {
	const op = "http.routers.OpenRecord"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	rec, err := r.ArchiveService.OpenByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, archive.ErrRecordNotFound) {
			log.Warn("record not found")
			return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
		}
		log.Error("failed to open record", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(rec))
}

// GoHome godoc
// @Summary Вернуться к архиву
// @Tags records
// @Produce json
// @Success 200 {object} response.Response{data=archive.State}
// @Router /api/v1/home [post]
func (r *Routers) GoHome(c echo.Context) error {
	r.ArchiveService.GoHome()

	return c.JSON(http.StatusOK, response.SuccessResponse(r.ArchiveService.State()))
}

// GetStatus godoc
// @Summary Статус синхронизации
// @Description Статус синхронизации архива и доступность AI (задан ли ключ)
// @Tags records
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /api/v1/status [get]
func (r *Routers) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.StatusResponse{
		Status:    string(r.ArchiveService.Status()),
		AIEnabled: r.AIService.Enabled(),
	})
}

// CreateRecord godoc
// @Summary Создать запись
// @Description Собирает запись из формы редактора, при наличии ключа запрашивает хотспоты у AI
// @Tags records
// @Accept json
// @Produce json
// @Param request body dto.RecordRequest true "Форма редактора"
// @Success 201 {object} response.Response{data=models.Record}
// @Failure 400 {object} response.ErrorResponse "Нет главного изображения"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/records [post]
func (r *Routers) CreateRecord(c echo.Context) error {
	const op = "http.routers.CreateRecord"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.RecordRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	rec, err := r.EditorService.Submit(c.Request().Context(), req.ToDomain(), nil)
	if err != nil {
		return r.commitError(c, log, err)
	}

	log.Info("record created", slog.String("id", rec.ID))

	return c.JSON(http.StatusCreated, response.SuccessResponse(rec))
}

// UpdateRecord godoc
// @Summary Изменить запись
// @Description Хотспоты пересчитываются только при смене заголовка
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "ID записи"
// @Param request body dto.RecordRequest true "Форма редактора"
// @Success 200 {object} response.Response{data=models.Record}
// @Failure 400 {object} response.ErrorResponse "Нет главного изображения"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /api/v1/records/{id} [put]
func (r *Routers) UpdateRecord(c echo.Context) error {
	const op = "http.routers.UpdateRecord"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	initial, err := r.ArchiveService.Get(c.Param("id"))
	if err != nil {
		log.Warn("record not found")
		return c.JSON(http.StatusNotFound, response.ErrRecordNotFound)
	}

	var req dto.RecordRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	rec, err := r.EditorService.Submit(c.Request().Context(), req.ToDomain(), &initial)
	if err != nil {
		return r.commitError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(rec))
}

func (r *Routers) commitError(c echo.Context, log *slog.Logger, err error) error {
	if errors.Is(err, models.ErrMainImageRequired) {
		log.Warn("record rejected", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrMainImageRequired)
	}

	log.Error("failed to commit record", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// DeleteRecord godoc
// @Summary Удалить запись
// @Description Удаление отсутствующей записи не ошибка
// @Tags records
// @Produce json
// @Param id path string true "ID записи"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/records/{id} [delete]
func (r *Routers) DeleteRecord(c echo.Context) error {
	const op = "http.routers.DeleteRecord"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	if err := r.ArchiveService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		log.Error("failed to delete record", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("record deleted"))
}

// RefinePrompt godoc
// @Summary Уточнить промпт
// @Description Без ключа возвращает текст с сообщением об отсутствии ключа
// @Tags ai
// @Accept json
// @Produce json
// @Param request body request.RefineRequest true "Базовый промпт и намерение"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 502 {object} response.ErrorResponse "Ошибка AI-сервиса"
// @Failure 503 {object} response.ErrorResponse "AI-сервис временно недоступен"
// @Router /api/v1/ai/refine [post]
func (r *Routers) RefinePrompt(c echo.Context) error {
	const op = "http.routers.RefinePrompt"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.RefineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	text, err := r.AIService.Refine(c.Request().Context(), req.BasePrompt, req.UserIntent)
	if err != nil {
		if ai.IsUnavailable(err) {
			return c.JSON(http.StatusServiceUnavailable, response.ErrAIUnavailable)
		}
		log.Error("failed to refine prompt", sl.Err(err))
		return c.JSON(http.StatusBadGateway, response.ErrorResponseWithDetails("ai_error", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{"text": text}))
}

// SuggestHotspots godoc
// @Summary Предложить хотспоты
// @Description Любой сбой AI даёт пустой список
// @Tags ai
// @Accept json
// @Produce json
// @Param request body request.HotspotsRequest true "Данные записи"
// @Success 200 {object} response.Response{data=[]models.Hotspot}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Router /api/v1/ai/hotspots [post]
func (r *Routers) SuggestHotspots(c echo.Context) error {
	var req request.HotspotsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	hotspots := r.AIService.SuggestHotspots(c.Request().Context(), req.Title, req.Description, req.Prompts)

	return c.JSON(http.StatusOK, response.SuccessResponse(hotspots))
}

// UploadImage godoc
// @Summary Загрузка изображения
// @Description Сохраняет изображение и возвращает URL; inline=true возвращает data URL
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение"
// @Param inline formData boolean false "Вернуть data URL вместо сохранения"
// @Success 201 {object} response.Response{data=models.Image}
// @Failure 400 {object} response.ErrorResponse "Некорректные входные данные"
// @Failure 413 {object} response.ErrorResponse "Превышен максимальный размер файла"
// @Failure 415 {object} response.ErrorResponse "Неподдерживаемый тип файла"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/images [post]
func (r *Routers) UploadImage(c echo.Context) error {
	const op = "http.routers.UploadImage"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	inline := false
	if v := c.FormValue("inline"); v != "" {
		inline, err = strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "inline must be a boolean"))
		}
	}

	image, err := r.ImageService.UploadImage(c.Request().Context(), file, inline)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		case errors.Is(err, storage.ErrInvalidFileType):
			return c.JSON(http.StatusUnsupportedMediaType, response.ErrInvalidFileType)
		case models.IsImageValidationError(err):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_image", err.Error()))
		}
		log.Error("failed to upload image", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(image))
}

// Health godoc
// @Summary Проверка доступности
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.MessageResponse("ok"))
}
