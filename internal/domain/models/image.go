package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Image загруженное изображение, готовое к подстановке в MainImage или Gallery
type Image struct {
	OriginalFilename string    `json:"original_filename"`
	StoragePath      string    `json:"storage_path,omitempty"` // Пусто для inline-изображений
	URL              string    `json:"url"`                    // Публичный URL или data URL
	FileSize         int64     `json:"file_size"`
	MimeType         string    `json:"mime_type"`
	CreatedAt        time.Time `json:"created_at"`
}

// Validate проверяет корректность данных изображения
func (m *Image) Validate() error {
	var validationErrors []string

	if m.OriginalFilename == "" {
		validationErrors = append(validationErrors, "original filename is required")
	}
	if len(m.OriginalFilename) > 255 {
		validationErrors = append(validationErrors, "original filename must be 255 characters or less")
	}
	if m.URL == "" {
		validationErrors = append(validationErrors, "url is required")
	}
	if m.FileSize <= 0 {
		validationErrors = append(validationErrors, "file size must be positive")
	}
	if !strings.HasPrefix(m.MimeType, "image/") {
		validationErrors = append(validationErrors,
			fmt.Sprintf("invalid mime type '%s', must be image/*", m.MimeType))
	}

	if len(validationErrors) > 0 {
		return &ImageValidationError{
			Errors: validationErrors,
		}
	}

	return nil
}

// ImageValidationError кастомный тип ошибки для валидации
type ImageValidationError struct {
	Errors []string
}

func (e *ImageValidationError) Error() string {
	return fmt.Sprintf("image validation failed: %s", strings.Join(e.Errors, "; "))
}

// IsImageValidationError проверяет, является ли ошибка ошибкой валидации
func IsImageValidationError(err error) bool {
	var verr *ImageValidationError
	return errors.As(err, &verr)
}
