package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/internal/storage"
	"github.com/blood-heros/apiserver/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBloodGroup(t *testing.T) {
	tests := map[string]string{
		"":     "",
		"A ":   "A+",
		"AB ":  "AB+",
		"O+":   "O+",
		"O-":   "O-",
		" B- ": "B-",
		"A+ ":  "A+",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeBloodGroup(in), "%q", in)
	}
}

func TestFailMapsErrorsToStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	rs := responder{logger: log}

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{&services.ValidationError{Message: "email is required"}, http.StatusBadRequest, "email is required"},
		{fmt.Errorf("lookup: %w", store.ErrInvalidID), http.StatusBadRequest, "invalid blog id"},
		{storage.ErrInvalidKey, http.StatusBadRequest, "invalid blog id"},
		{store.ErrNotFound, http.StatusNotFound, "blog not found"},
		{storage.ErrObjectNotFound, http.StatusNotFound, "blog not found"},
		{store.ErrDuplicate, http.StatusConflict, "blog already exists"},
		{errors.New("connection reset"), http.StatusInternalServerError, "failed to load blog"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/all-blogs", nil)
		rs.fail(rec, req, tt.err, "blog", "failed to load blog")

		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.message, body.Error)
	}

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "/all-blogs", entry.Data["path"])
}

func TestDecodeJSON(t *testing.T) {
	var dst map[string]any

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, decodeJSON(rec, req, &dst, true))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, decodeJSON(rec, req, &dst, false), io.EOF)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com"}`))
	require.NoError(t, decodeJSON(rec, req, &dst, false))
	assert.Equal(t, "a@example.com", dst["email"])

	big := `{"x":"` + strings.Repeat("a", maxJSONBody) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	assert.Error(t, decodeJSON(rec, req, &dst, false))
}
