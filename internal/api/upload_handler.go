package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Fakhri-abraar/taskdeck/internal/api/shared"
	"github.com/Fakhri-abraar/taskdeck/internal/service/upload"
)

// UploadHandler handles attachment uploads.
type UploadHandler struct {
	uploads *upload.Service
	logger  *slog.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads *upload.Service, log *slog.Logger) *UploadHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UploadHandler{
		uploads: uploads,
		logger:  log.With(slog.String("component", "upload_handler")),
	}
}

// Upload handles POST /files/upload. The file arrives as the multipart
// form field "file"; the declared content type comes from the part header.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := principalFromRequest(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Cap the whole request body slightly above the file ceiling so the
	// multipart framing itself fits.
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFileSize+64*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			HandleAPIError(w, r, upload.ErrPayloadTooLarge, "")
			return
		}
		HandleAPIError(w, r, upload.ErrEmptyFile, "")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.Warn("failed to close uploaded file", "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			HandleAPIError(w, r, upload.ErrPayloadTooLarge, "")
			return
		}
		h.logger.Error("failed to read uploaded file", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	storedName, err := h.uploads.Store(data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UploadResponse{
		ImagePath: storedName,
		Message:   "File uploaded successfully",
	})
}
