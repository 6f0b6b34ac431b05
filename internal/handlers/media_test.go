package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blood-heros/apiserver/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type memoryObjects map[string]storage.Object

func (m memoryObjects) EnsureBucket(ctx context.Context) error { return nil }
func (m memoryObjects) Bucket() string                         { return "test" }
func (m memoryObjects) Close() error                           { return nil }

func (m memoryObjects) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m[key] = storage.Object{Body: io.NopCloser(bytes.NewReader(data)), ContentType: contentType, Size: size}
	return nil
}

func (m memoryObjects) Get(ctx context.Context, key string) (storage.Object, error) {
	obj, ok := m[key]
	if !ok {
		return storage.Object{}, storage.ErrObjectNotFound
	}
	return obj, nil
}

func (m memoryObjects) Delete(ctx context.Context, key string) error {
	delete(m, key)
	return nil
}

func mediaRouter(objects memoryObjects) *chi.Mux {
	log, _ := test.NewNullLogger()
	pass := func(next http.Handler) http.Handler { return next }
	r := chi.NewRouter()
	Mount(r, NewMediaHandler(storage.NewStorage(objects), log).Routes(), Gates{Authenticate: pass, Authorize: pass})
	return r
}

func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadServeDeleteImage(t *testing.T) {
	objects := memoryObjects{}
	r := mediaRouter(objects)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "image", "avatar.png", pngHeader))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, objects, resp.Key)
	assert.Equal(t, "/"+resp.Key, resp.URL)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/uploads"+resp.URL, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, objects)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsNonImages(t *testing.T) {
	r := mediaRouter(memoryObjects{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "image", "notes.txt", []byte("plain text, not an image")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "file", "avatar.png", pngHeader))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "image", "empty.png", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadFileLimited(t *testing.T) {
	_, err := readFileLimited(bytes.NewReader(make([]byte, 11)), 10)
	assert.EqualError(t, err, "uploaded file too large")

	data, err := readFileLimited(bytes.NewReader([]byte("abc")), 10)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}
