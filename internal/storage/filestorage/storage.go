package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage хранилище загруженных изображений
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath, name string) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	URL(relativePath string) string
	BaseDir() string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Каталог с файлами, например "./uploads"
	baseURL string // Публичный префикс, например "http://localhost:8080/uploads"
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	const op = "storage.filestorage.NewLocalFileStorage"

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save копирует файл под именем name в подкаталог subPath и возвращает
// относительный путь. Если копирование прервано, частичный файл удаляется.
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath, name string) (string, int64, error) {
	const op = "storage.filestorage.Save"

	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	if name == "" {
		name = filepath.Base(file.Filename)
	}
	relPath := filepath.Join(subPath, name)
	fullPath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", 0, fmt.Errorf("%s: failed to create directories: %w", op, err)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("%s: failed to open source file: %w", op, err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("%s: failed to create destination file: %w", op, err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(fullPath)
			return "", 0, fmt.Errorf("%s: failed to copy file: %w", op, copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(fullPath)
		return "", 0, ctx.Err()
	}

	return relPath, size, nil
}

func (s *LocalFileStorage) Delete(_ context.Context, filePath string) error {
	return os.Remove(filepath.Join(s.baseDir, filePath))
}

// URL собирает публичный адрес файла
func (s *LocalFileStorage) URL(relativePath string) string {
	parts := strings.Split(filepath.ToSlash(relativePath), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.baseURL + "/" + strings.Join(parts, "/")
}

func (s *LocalFileStorage) BaseDir() string {
	return s.baseDir
}
