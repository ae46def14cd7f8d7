package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cafe-site/internal/model"
	"cafe-site/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// multipartOverhead is allowed on top of the file size for the other form
// fields and part headers.
const multipartOverhead = 1 << 20

// multipartMemory is how much of an upload is buffered in memory before the
// rest spills to a temporary file.
const multipartMemory = 8 << 20

// GalleryHandler handles gallery-related HTTP requests.
type GalleryHandler struct {
	service  service.GalleryService
	maxBytes int64
	logger   zerolog.Logger
}

// NewGalleryHandler creates a new gallery handler. Request bodies larger than
// maxBytes plus form overhead are cut off.
func NewGalleryHandler(service service.GalleryService, maxBytes int64, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "gallery").Logger(),
	}
}

// List handles GET /api/gallery requests, optionally filtered by ?type=.
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), model.GalleryType(r.URL.Query().Get("type")))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve gallery", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Upload handles multipart POST /api/admin/gallery requests. The media file is
// read from the "file" field; "caption" and "sortOrder" are optional.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, model.ErrCodeValidationFailed, "upload is too large", h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid multipart form", h.logger)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn().Err(err).Msg("failed to remove multipart temp files")
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "file is required", h.logger)
		return
	}
	defer file.Close()

	sortOrder := 0
	if raw := r.FormValue("sortOrder"); raw != "" {
		sortOrder, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid sortOrder", h.logger)
			return
		}
	}

	upload := model.GalleryUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Caption:     r.FormValue("caption"),
		SortOrder:   sortOrder,
	}

	item, err := h.service.Upload(r.Context(), upload, file)
	if err != nil {
		writeServiceError(w, err, "failed to upload media", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/admin/gallery/{id} requests.
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.GalleryUpdateRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err, "failed to update gallery item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/admin/gallery/{id} requests.
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "failed to delete gallery item", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
