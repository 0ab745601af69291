package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"xr_archive/internal/domain/models"
	"xr_archive/internal/lib/idgen"
	"xr_archive/internal/lib/logger/sl"
	"xr_archive/internal/storage"
	filestorage "xr_archive/internal/storage/filestorage"
)

const imagesDir = "images"

type ImageService struct {
	log         *slog.Logger
	fileStorage filestorage.FileStorage
	maxSize     int64
	newName     idgen.Generator
}

func NewImageService(log *slog.Logger, fileStorage filestorage.FileStorage, maxSize int64) *ImageService {
	return &ImageService{
		log:         log,
		fileStorage: fileStorage,
		maxSize:     maxSize,
		newName:     idgen.UUID(""),
	}
}

// UploadImage принимает изображение для MainImage или Gallery.
// inline == true возвращает data URL и ничего не пишет на диск.
func (s *ImageService) UploadImage(ctx context.Context, file *multipart.FileHeader, inline bool) (*models.Image, error) {
	const op = "image_service.UploadImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filename", file.Filename),
		slog.Bool("inline", inline),
	)

	if s.maxSize > 0 && file.Size > s.maxSize {
		log.Warn("image rejected", slog.Int64("size", file.Size))
		return nil, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}

	mimeType, err := detectMimeType(file)
	if err != nil {
		log.Error("failed to read image", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		log.Warn("image rejected", slog.String("mime_type", mimeType))
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidFileType)
	}

	image := &models.Image{
		OriginalFilename: file.Filename,
		FileSize:         file.Size,
		MimeType:         mimeType,
		CreatedAt:        time.Now().UTC(),
	}

	if inline {
		data, err := readAll(file)
		if err != nil {
			log.Error("failed to read image", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		image.FileSize = int64(len(data))
		image.URL = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	} else {
		name := s.newName() + strings.ToLower(filepath.Ext(file.Filename))
		filePath, size, err := s.fileStorage.Save(ctx, file, imagesDir, name)
		if err != nil {
			log.Error("failed to save image", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		image.StoragePath = filePath
		image.FileSize = size
		image.URL = s.fileStorage.URL(filePath)
	}

	if err := image.Validate(); err != nil {
		if image.StoragePath != "" {
			_ = s.fileStorage.Delete(ctx, image.StoragePath)
		}
		log.Error("image validation failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image uploaded", slog.Int64("size", image.FileSize))

	return image, nil
}

// detectMimeType берёт Content-Type части формы, а если его нет,
// определяет тип по первым байтам файла.
func detectMimeType(file *multipart.FileHeader) (string, error) {
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct, nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	return http.DetectContentType(head[:n]), nil
}

func readAll(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
