package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	s3infra "github.com/friskytrails/api/internal/infrastructure/s3"
	"github.com/friskytrails/api/internal/pkg/id"
)

// maxUploadBytes caps a single media upload at 10 MiB.
const maxUploadBytes = 10 << 20

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadHandler handles admin media uploads to object storage.
type UploadHandler struct {
	store objectStore
}

func NewUploadHandler(store objectStore) *UploadHandler { return &UploadHandler{store: store} }

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contentType := s3infra.DetectContentType(header.Filename)
	if contentType == "application/octet-stream" {
		writeError(w, http.StatusBadRequest, "only jpg, png and webp images are accepted")
		return
	}

	key := fmt.Sprintf("media/%s-%s", id.New(), header.Filename)
	if _, err := h.store.Upload(r.Context(), key, file, contentType); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "file uploaded", map[string]string{"key": key})
}

func (h *UploadHandler) GetURL(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}
	url, err := h.store.PresignedURL(r.Context(), key, 15*time.Minute)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", map[string]string{"url": url})
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}
	if err := h.store.Delete(r.Context(), key); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "file deleted", nil)
}
