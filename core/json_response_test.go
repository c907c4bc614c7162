package core_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/notify/core"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes body with status", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, core.WriteJSON(rec, http.StatusOK, map[string]int{"count": 3}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"count":3}`, rec.Body.String())
	})

	t.Run("nil body writes status only", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, core.WriteJSON(rec, http.StatusNoContent, nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("http error keeps status and code", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, core.WriteError(rec, core.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body struct {
			Error core.ErrorDetail `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body.Error.Code)
		assert.Equal(t, "Not Found", body.Error.Message)
	})

	t.Run("custom message survives", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := core.ErrBadRequest.WithMessage("unknown filter value")
		require.NoError(t, core.WriteError(rec, err))

		var body struct {
			Error core.ErrorDetail `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "bad_request", body.Error.Code)
		assert.Equal(t, "unknown filter value", body.Error.Message)
	})

	t.Run("unknown error becomes internal without leaking", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, core.WriteError(rec, errors.New("pg: connection refused")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
		assert.Contains(t, rec.Body.String(), "internal_error")
	})
}
