package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrMainImageRequired = errors.New("main image is required")

var validate = validator.New()

// Hotspot точка-аннотация поверх главного изображения.
// X и Y задаются в процентах (0-100), но диапазон не проверяется:
// значения за пределами просто рисуются вне холста.
type Hotspot struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

// PromptSet рецепт генерации изображения
type PromptSet struct {
	Lighting    string `json:"lighting"`
	Composition string `json:"composition"`
	Materials   string `json:"materials"`
	Camera      string `json:"camera"`
	Negative    string `json:"negative"`
}

// Record представляет один кейс архива
type Record struct {
	ID          string    `json:"id"`                            // Стабильный идентификатор, не меняется после создания
	Title       string    `json:"title"`                         // Заголовок
	Subtitle    string    `json:"subtitle"`                      // Подзаголовок
	Description string    `json:"description"`                   // Описание
	MainImage   string    `json:"mainImage" validate:"required"` // URL или data URL главного изображения
	Gallery     []string  `json:"gallery"`                       // Дополнительные кадры
	Hotspots    []Hotspot `json:"hotspots"`                      // Аннотации поверх MainImage
	Prompts     PromptSet `json:"prompts"`                       // Рецепт генерации
}

// Validate проверяет запись перед коммитом
func (r Record) Validate() error {
	const op = "models.Record.Validate"

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "MainImage" {
					return fmt.Errorf("%s: %w", op, ErrMainImageRequired)
				}
			}
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// WithGalleryFallback возвращает копию записи, у которой галерея
// содержит хотя бы главное изображение.
func (r Record) WithGalleryFallback() Record {
	out := r.Clone()
	if len(out.Gallery) == 0 && out.MainImage != "" {
		out.Gallery = []string{out.MainImage}
	}
	return out
}

// Clone делает глубокую копию записи
func (r Record) Clone() Record {
	out := r
	if r.Gallery != nil {
		out.Gallery = append([]string(nil), r.Gallery...)
	}
	if r.Hotspots != nil {
		out.Hotspots = append([]Hotspot(nil), r.Hotspots...)
	}
	return out
}
