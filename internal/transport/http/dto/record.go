package dto

import (
	"xr_archive/internal/domain/models"
)

// RecordRequest форма редактора для создания и изменения записи
type RecordRequest struct {
	Title           string   `json:"title"`           // Заголовок, по умолчанию "Untitled Space"
	Subtitle        string   `json:"subtitle"`        // Подзаголовок
	Description     string   `json:"description"`     // Описание
	MainImage       string   `json:"mainImage"`       // URL или data URL, обязателен
	Gallery         []string `json:"gallery"`         // Пустая галерея заменяется главным изображением
	SpaceStructure  string   `json:"spaceStructure"`  // Композиция
	ColorPalette    string   `json:"colorPalette"`    // Палитра и материалы
	LightingShadows string   `json:"lightingShadows"` // Свет и тени
	Atmosphere      string   `json:"atmosphere"`      // Настроение
	Keywords        string   `json:"keywords"`        // Ключевые слова
}

// ToDomain преобразует DTO в черновик редактора
func (r *RecordRequest) ToDomain() models.Draft {
	return models.Draft{
		Title:           r.Title,
		Subtitle:        r.Subtitle,
		Description:     r.Description,
		MainImage:       r.MainImage,
		Gallery:         r.Gallery,
		SpaceStructure:  r.SpaceStructure,
		ColorPalette:    r.ColorPalette,
		LightingShadows: r.LightingShadows,
		Atmosphere:      r.Atmosphere,
		Keywords:        r.Keywords,
	}
}

type StatusResponse struct {
	Status    string `json:"status" example:"live"`
	AIEnabled bool   `json:"ai_enabled" example:"true"`
}
