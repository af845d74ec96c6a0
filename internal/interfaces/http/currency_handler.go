package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/pkg/currency"
)

// ListCurrencies godoc
// @Summary      Monedas soportadas
// @Tags         currencies
// @Produce      json
// @Success      200  {array}  currency.Currency
// @Router       /api/currencies [get]
func ListCurrencies(c *fiber.Ctx) error {
	return c.JSON(currency.All())
}
