// Package invoicing calcula los totales de facturas a partir de sus líneas.
//
// Es la única implementación del cálculo: editor, listados, dashboard, PDF y correo
// consumen estas funciones para que las cifras coincidan en todas las superficies.
// Las funciones son puras, no modifican sus argumentos y pueden invocarse en paralelo.
package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// LineTotals desglose del aporte de una línea.
type LineTotals struct {
	Subtotal       decimal.Decimal // quantity × unitPrice
	DiscountAmount decimal.Decimal
	AfterDiscount  decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal // afterDiscount + taxAmount
}

// InvoiceTotals cifras de una factura completa.
// Se cumple siempre Total == Subtotal - TotalDiscount + TotalTax.
type InvoiceTotals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	Total         decimal.Decimal
}

// percentOf devuelve amount × rate / 100. Dividir por 100 es un corrimiento decimal exacto.
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Shift(-2)
}

// LineItemTotal calcula subtotal, descuento, impuesto y total de una línea en una sola pasada.
// Un descuento fijo mayor que el subtotal produce montos negativos: no se recorta.
func LineItemTotal(item entity.LineItem) LineTotals {
	subtotal := decimal.NewFromInt(item.Quantity).Mul(item.UnitPrice)

	discount := item.Discount
	if item.DiscountType == entity.DiscountPercentage {
		discount = percentOf(subtotal, item.Discount)
	}

	after := subtotal.Sub(discount)
	tax := percentOf(after, item.TaxRate)

	return LineTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		AfterDiscount:  after,
		TaxAmount:      tax,
		Total:          after.Add(tax),
	}
}

// Aggregate suma las líneas de una factura. Sin líneas, todas las cifras son cero.
func Aggregate(items []entity.LineItem) InvoiceTotals {
	var subtotal, discount, tax decimal.Decimal
	for _, item := range items {
		lt := LineItemTotal(item)
		subtotal = subtotal.Add(lt.Subtotal)
		discount = discount.Add(lt.DiscountAmount)
		tax = tax.Add(lt.TaxAmount)
	}
	return InvoiceTotals{
		Subtotal:      subtotal,
		TotalDiscount: discount,
		TotalTax:      tax,
		// Total sale de los mismos acumulados para que la identidad sea exacta.
		Total: subtotal.Sub(discount).Add(tax),
	}
}

// InvoiceTotal atajo para Aggregate(inv.Items).
func InvoiceTotal(inv *entity.Invoice) InvoiceTotals {
	if inv == nil {
		return Aggregate(nil)
	}
	return Aggregate(inv.Items)
}
