package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

func TestRespondError_MapeaSentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("client_id: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("invoice number %q: %w", "INV-1", domain.ErrDuplicate), http.StatusConflict},
		{domain.ErrEmailAlreadyExists, http.StatusConflict},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrEmailDisabled, http.StatusServiceUnavailable},
		{errors.New("conexión perdida"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })

		resp, rerr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, rerr)
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
	}
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "items[0].discount_type", fieldPath("CreateInvoiceRequest.items[0].discount_type"))
	assert.Equal(t, "email", fieldPath("email"))
}
