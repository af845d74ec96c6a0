// Package pdf genera el PDF de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + contacto  │  INVOICE N° + estado         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: cliente            │  Fecha emisión / vencimiento │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | P.Unit | Desc. | Imp. | Monto   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuestos / TOTAL           │
//	│  NOTAS                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorDefault = &props.Color{Red: 59, Green: 130, Blue: 246} // #3B82F6
	colorClassic = &props.Color{Red: 31, Green: 41, Blue: 55}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	formatter *currency.Formatter
}

// NewMarotoPDFGenerator construye el generador; formatter nil usa inglés.
func NewMarotoPDFGenerator(formatter *currency.Formatter) *MarotoPDFGenerator {
	if formatter == nil {
		formatter = currency.NewFormatter("")
	}
	return &MarotoPDFGenerator{formatter: formatter}
}

// layout datos de render compartidos por las secciones.
type layout struct {
	doc     billing.InvoiceDocument
	code    string
	color   *props.Color
	money   func(decimal.Decimal) string
	company entity.Company
	client  entity.Client
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc billing.InvoiceDocument) ([]byte, error) {
	if doc.Invoice == nil {
		return nil, fmt.Errorf("pdf: factura nil")
	}
	l := layout{doc: doc, code: currency.NormalizeCode(doc.Invoice.Currency)}
	l.money = func(d decimal.Decimal) string { return g.formatter.Format(d, l.code) }
	if doc.Company != nil {
		l.company = *doc.Company
	}
	if doc.Client != nil {
		l.client = *doc.Client
	}
	l.color = colorDefault
	if doc.Invoice.Template == entity.TemplateClassic {
		l.color = colorClassic
	} else if c, ok := parseHexColor(l.company.PrimaryColor); ok {
		l.color = c
	}

	author := nonEmpty(l.company.CompanyName, "Invoice")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+doc.Invoice.InvoiceNumber, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(l.headerRow())
	m.AddRows(line.NewRow(2, props.Line{Color: l.color, Thickness: 0.6}))
	m.AddRows(l.billToRow())
	m.AddRows(line.NewRow(2, props.Line{Color: l.color, Thickness: 0.3}))

	m.AddRows(l.tableHeaderRow())
	m.AddRows(l.tableItemRows()...)

	m.AddRows(line.NewRow(2, props.Line{Color: l.color, Thickness: 0.3}))
	m.AddRows(l.totalsRow())
	m.AddRows(l.notesRows()...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa emisora (izq) y número + estado (der).
func (l layout) headerRow() core.Row {
	inv := l.doc.Invoice
	contact := strings.Join(nonEmptyParts(l.company.Email, l.company.Phone), "  |  ")
	return row.New(24).Add(
		col.New(7).Add(
			text.New(nonEmpty(l.company.CompanyName, "Your Company"), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: l.color, Top: 1,
			}),
			text.New(l.company.Address, props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New(contact, props.Text{Size: 8, Top: 13, Color: colorGray}),
			text.New(taxLine(l.company.TaxID), props.Text{Size: 8, Top: 17, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Right, Color: l.color, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 10,
			}),
			text.New(strings.ToUpper(inv.Status), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

// billToRow: cliente (izq) y fechas (der).
func (l layout) billToRow() core.Row {
	inv := l.doc.Invoice
	return row.New(22).Add(
		col.New(7).Add(
			text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: l.color, Top: 1}),
			text.New(nonEmpty(l.client.Name, "Unknown Client"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(l.client.Email, props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(l.client.Address, props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Issue date: "+inv.IssueDate.Format("2006-01-02"), props.Text{
				Size: 9, Align: align.Right, Top: 6,
			}),
			text.New("Due date: "+inv.DueDate.Format("2006-01-02"), props.Text{
				Size: 9, Align: align.Right, Top: 11,
			}),
			text.New("Currency: "+l.code, props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo del color de la empresa.
func (l layout) tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 4, align.Left),
		h("Qty", 1, align.Center),
		h("Unit price", 2, align.Right),
		h("Discount", 2, align.Right),
		h("Tax", 1, align.Center),
		h("Amount", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: l.color})
}

// tableItemRows: una fila por línea; Amount es el total de la línea con impuesto.
func (l layout) tableItemRows() []core.Row {
	inv := l.doc.Invoice
	rows := make([]core.Row, 0, len(inv.Items))
	for i, it := range inv.Items {
		lt := lineTotalsAt(l.doc.Lines, i, it)
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(nonEmpty(it.Description, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.FormatInt(it.Quantity, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(discountLabel(it, l.money), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.TaxRate.String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.money(lt.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func (l layout) totalsRow() core.Row {
	t := l.doc.Totals
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(28).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Discount:", 6),
			label("Tax:", 11),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: l.color, Right: 2, Top: 17}),
		),
		col.New(3).Add(
			value(l.money(t.Subtotal), 1),
			value("-"+l.money(t.TotalDiscount), 6),
			value(l.money(t.TotalTax), 11),
			text.New(l.money(t.Total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: l.color, Right: 1, Top: 17}),
		),
	)
}

// notesRows: notas de la factura, si hay.
func (l layout) notesRows() []core.Row {
	notes := strings.TrimSpace(l.doc.Invoice.Notes)
	if notes == "" {
		return nil
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("NOTES", props.Text{Style: fontstyle.Bold, Size: 8, Color: l.color, Top: 1}),
		)),
		row.New(14).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// lineTotalsAt usa el total precalculado de la línea i; si falta lo calcula.
func lineTotalsAt(lines []invoicing.LineTotals, i int, it entity.LineItem) invoicing.LineTotals {
	if i < len(lines) {
		return lines[i]
	}
	return invoicing.LineItemTotal(it)
}

func discountLabel(it entity.LineItem, money func(decimal.Decimal) string) string {
	if it.Discount.IsZero() {
		return "-"
	}
	if it.DiscountType == entity.DiscountPercentage {
		return it.Discount.String() + "%"
	}
	return money(it.Discount)
}

func taxLine(taxID string) string {
	if taxID == "" {
		return ""
	}
	return "Tax ID: " + taxID
}

// parseHexColor convierte "#RRGGBB" en props.Color.
func parseHexColor(s string) (*props.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	return &props.Color{Red: int(v >> 16 & 0xFF), Green: int(v >> 8 & 0xFF), Blue: int(v & 0xFF)}, true
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonEmptyParts(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
