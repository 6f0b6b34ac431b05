package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/blood-heros/apiserver/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	maxImageBytes      = 5 << 20
	maxMultipartMemory = maxImageBytes + 1<<20
	formFieldImage     = "image"
	imageRoutePrefix   = "/images/"
)

// MediaHandler stores and serves uploaded images.
type MediaHandler struct {
	storage *storage.Storage
	responder
}

func NewMediaHandler(store *storage.Storage, logger logrus.FieldLogger) *MediaHandler {
	return &MediaHandler{storage: store, responder: responder{logger: logger}}
}

func (h *MediaHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Pattern: "/uploads/images", Access: Authenticated, Handler: h.UploadImage},
		{Method: http.MethodGet, Pattern: "/images/{name}", Access: Public, Handler: h.GetImage},
		{Method: http.MethodDelete, Pattern: "/uploads/images/{name}", Access: AdminOnly, Handler: h.DeleteImage},
	}
}

// UploadResponse locates a stored image.
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (h *MediaHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartMemory)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile(formFieldImage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	data, err := readFileLimited(file, maxImageBytes)
	_ = file.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "uploaded file is not an image")
		return
	}

	key, err := h.storage.PutImage(r.Context(), header.Filename, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		h.fail(w, r, err, "image", "failed to store image")
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{Key: key, URL: imageURL(key)})
}

func (h *MediaHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	obj, err := h.storage.GetImage(r.Context(), imageKey(r))
	if err != nil {
		h.fail(w, r, err, "image", "failed to fetch image")
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, obj.Body)
}

func (h *MediaHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.DeleteImage(r.Context(), imageKey(r)); err != nil {
		h.fail(w, r, err, "image", "failed to delete image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func imageKey(r *http.Request) string {
	return strings.TrimPrefix(imageRoutePrefix, "/") + chi.URLParam(r, "name")
}

func imageURL(key string) string {
	return "/" + key
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	if len(data) == 0 {
		return nil, errors.New("uploaded file is empty")
	}
	return data, nil
}
