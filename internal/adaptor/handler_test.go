package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthhive/internal/apperr"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation fields", apperr.Validation("bad input", map[string]string{"email": "Invalid email format"}), http.StatusBadRequest},
		{"validation plain", fmt.Errorf("%w: invalid order id", apperr.ErrValidation), http.StatusBadRequest},
		{"unauthenticated", fmt.Errorf("%w: missing token", apperr.ErrUnauthenticated), http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("%w: admin role required", apperr.ErrForbidden), http.StatusForbidden},
		{"not found", fmt.Errorf("%w: order not found", apperr.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: order payment already confirmed", apperr.ErrConflict), http.StatusConflict},
		{"internal", fmt.Errorf("%w: failed to list orders", apperr.ErrInternal), http.StatusInternalServerError},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleServiceError(w, zap.NewNop(), tc.err, "fetch orders")
			require.Equal(t, tc.code, w.Code)
		})
	}
}

func TestHandleServiceErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	handleServiceError(w, zap.NewNop(), errors.New("pq: relation orders does not exist"), "fetch orders")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "relation")
	require.Contains(t, w.Body.String(), "Failed to fetch orders")
}

func TestHandleServiceErrorReturnsFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	handleServiceError(w, zap.NewNop(), apperr.Validation("bad input", map[string]string{"quantity": "Minimum value is 1"}), "update quantity")

	var body struct {
		Status bool              `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.False(t, body.Status)
	require.Equal(t, "Minimum value is 1", body.Errors["quantity"])
}

func TestDecodeBody(t *testing.T) {
	type payload struct {
		Quantity int `json:"quantity"`
	}

	t.Run("valid", func(t *testing.T) {
		var dst payload
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"quantity":3}`))
		w := httptest.NewRecorder()
		require.True(t, decodeBody(w, r, &dst, false))
		require.Equal(t, 3, dst.Quantity)
	})

	t.Run("empty optional", func(t *testing.T) {
		var dst payload
		r := httptest.NewRequest(http.MethodPut, "/", http.NoBody)
		w := httptest.NewRecorder()
		require.True(t, decodeBody(w, r, &dst, true))
	})

	t.Run("empty required", func(t *testing.T) {
		var dst payload
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		w := httptest.NewRecorder()
		require.False(t, decodeBody(w, r, &dst, false))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		var dst payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":`))
		w := httptest.NewRecorder()
		require.False(t, decodeBody(w, r, &dst, false))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
