package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound("client_not_found", "Client not found"), http.StatusNotFound},
		{"rejected", ErrRejected("time_conflict", "Time slot not available"), http.StatusBadRequest},
		{"validation", ErrInvalid("invalid_request", "bad"), http.StatusBadRequest},
		{"forbidden", ErrForbidden("forbidden", "no"), http.StatusForbidden},
		{"wrapped", fmt.Errorf("tx: %w", ErrNotFound("payment_not_found", "")), http.StatusNotFound},
		{"exclusion", &pgconn.PgError{Code: "23P01"}, http.StatusBadRequest},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusOf(tc.err))
		})
	}
}

func TestFromError_HidesInternalText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), `"error_code":"internal_error"`)
}

func TestFromError_Business(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, ErrRejected("client_blocked", "Client is blocked due to no-shows"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error_code":"client_blocked","message":"Client is blocked due to no-shows"}`, w.Body.String())
}
