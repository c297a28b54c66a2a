// Package upload validates and stores task attachments on the local
// filesystem, assigning collision-resistant stored filenames.
package upload

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxFileSize is the upload size ceiling.
const MaxFileSize = 5 * 1024 * 1024 // 5 MiB

// Upload errors.
var (
	// ErrUnsupportedMediaType is returned for files outside the allow-list.
	ErrUnsupportedMediaType = errors.New("only image and common document files are allowed")

	// ErrPayloadTooLarge is returned for files above MaxFileSize.
	ErrPayloadTooLarge = errors.New("file exceeds the maximum allowed size")

	// ErrEmptyFile is returned when no file content was provided.
	ErrEmptyFile = errors.New("file upload failed or file is missing")
)

// allowedMimeTypes is the fixed allow-list of declared content types:
// common image and document formats.
var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},

	"application/pdf": {},
	"text/plain":      {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
}

// Service stores attachments under a single directory. The stored
// filename is generated server-side; the declared filename contributes
// only its extension, which defeats path traversal and overwrites.
type Service struct {
	dir    string
	logger *slog.Logger
}

// NewService creates an upload Service rooted at dir, creating the
// directory if needed.
func NewService(dir string, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Service{
		dir:    dir,
		logger: log.With(slog.String("component", "upload_service")),
	}, nil
}

// Store validates and persists an uploaded file, returning the stored
// filename. Returns ErrUnsupportedMediaType, ErrPayloadTooLarge, or
// ErrEmptyFile on rejection.
func (s *Service) Store(data []byte, declaredMimeType, declaredFilename string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	if len(data) > MaxFileSize {
		return "", ErrPayloadTooLarge
	}

	mimeType := strings.ToLower(strings.TrimSpace(declaredMimeType))
	// Strip any media-type parameters (e.g. "text/plain; charset=utf-8").
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return "", ErrUnsupportedMediaType
	}

	storedName := storedFilename(declaredFilename)
	path := filepath.Join(s.dir, storedName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("failed to write uploaded file",
			"error", err,
			"stored_filename", storedName)
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	s.logger.Info("file stored",
		"stored_filename", storedName,
		"size_bytes", len(data),
		"mime_type", mimeType)
	return storedName, nil
}

// Remove deletes a stored file by its stored filename. Removing a file
// that is already gone is not an error.
func (s *Service) Remove(storedName string) error {
	// Stored names are server-generated; reject anything path-like anyway.
	if storedName == "" || storedName != filepath.Base(storedName) {
		return fmt.Errorf("invalid stored filename %q", storedName)
	}

	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// storedFilename builds a collision-resistant name: a timestamp plus a
// random suffix, keeping only the extension of the declared filename.
func storedFilename(declaredFilename string) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Timestamp alone still avoids traversal; collisions become
		// possible only within the same millisecond.
		binary.BigEndian.PutUint32(b[:], uint32(time.Now().UnixNano()))
	}
	suffix := binary.BigEndian.Uint32(b[:]) % 1_000_000_000

	ext := filepath.Ext(filepath.Base(declaredFilename))
	return fmt.Sprintf("file-%d-%d%s", time.Now().UnixMilli(), suffix, ext)
}
