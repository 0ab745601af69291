package storage

import "errors"

var (
	ErrSlotEmpty   = errors.New("slot is empty")
	ErrorNoSuchKey = errors.New("no such key")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
