package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoicing"
)

const dateLayout = "2006-01-02"

// parseDate acepta fecha simple (2006-01-02) o RFC3339; el resultado se trunca al día.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD o RFC3339", domain.ErrInvalidInput, field)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// toLineItems convierte las líneas del body. Montos inválidos valen cero; tipo vacío = percentage.
func toLineItems(in []dto.LineItemRequest) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(in))
	for i, r := range in {
		dt := r.DiscountType
		if dt == "" {
			dt = entity.DiscountPercentage
		}
		if !entity.IsValidDiscountType(dt) {
			return nil, fmt.Errorf("%w: items[%d].discount_type inválido", domain.ErrInvalidInput, i)
		}
		items = append(items, entity.LineItem{
			Description:  strings.TrimSpace(r.Description),
			Quantity:     r.Quantity,
			UnitPrice:    r.UnitPrice.Decimal(),
			Discount:     r.Discount.Decimal(),
			DiscountType: dt,
			TaxRate:      r.TaxRate.Decimal(),
			Position:     i,
		})
	}
	return items, nil
}

func toLineTotalsResponse(t invoicing.LineTotals) dto.LineTotalsResponse {
	return dto.LineTotalsResponse{
		Subtotal:       t.Subtotal,
		DiscountAmount: t.DiscountAmount,
		AfterDiscount:  t.AfterDiscount,
		TaxAmount:      t.TaxAmount,
		Total:          t.Total,
	}
}

func toTotalsResponse(t invoicing.InvoiceTotals) dto.InvoiceTotalsResponse {
	return dto.InvoiceTotalsResponse{
		Subtotal:      t.Subtotal,
		TotalDiscount: t.TotalDiscount,
		TotalTax:      t.TotalTax,
		Total:         t.Total,
	}
}

// toInvoiceResponse arma la respuesta con totales; withLineTotals agrega el cálculo por línea.
func toInvoiceResponse(inv *entity.Invoice, withLineTotals bool) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	items := make([]dto.LineItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		li := dto.LineItemResponse{
			ID:           it.ID,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Discount:     it.Discount,
			DiscountType: it.DiscountType,
			TaxRate:      it.TaxRate,
			Position:     it.Position,
		}
		if withLineTotals {
			lt := toLineTotalsResponse(invoicing.LineItemTotal(it))
			li.Totals = &lt
		}
		items = append(items, li)
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		ClientID:      inv.ClientID,
		CompanyID:     inv.CompanyID,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate.Format(dateLayout),
		DueDate:       inv.DueDate.Format(dateLayout),
		Currency:      inv.Currency,
		Status:        inv.Status,
		Notes:         inv.Notes,
		Template:      inv.Template,
		Items:         items,
		Totals:        toTotalsResponse(invoicing.InvoiceTotal(inv)),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		Phone:     c.Phone,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
