package billing

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta fn dentro de una transacción con repos de facturas y empresas
// (cabecera, líneas y reserva del número de factura van juntas).
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		companyRepo repository.CompanyRepository,
	) error) error
}

// SummaryInvalidator descarta el resumen de dashboard cacheado de un usuario.
type SummaryInvalidator interface {
	Invalidate(userID string)
}

// InvoiceDocument datos ya calculados para renderizar una factura.
// Company y Client pueden ser nil (factura sin empresa o con cliente eliminado).
type InvoiceDocument struct {
	Invoice *entity.Invoice
	Company *entity.Company
	Client  *entity.Client
	Lines   []invoicing.LineTotals // mismo orden que Invoice.Items
	Totals  invoicing.InvoiceTotals
}

// InvoicePDFGenerator genera el PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// Attachment archivo adjunto de un correo.
type Attachment struct {
	Filename string
	Content  []byte
}

// InvoiceEmail mensaje de envío de factura; el adaptador arma el HTML con estos campos.
type InvoiceEmail struct {
	To             string
	Subject        string
	CompanyName    string
	ClientName     string
	InvoiceNumber  string
	FormattedTotal string
	DueDate        string
	InvoiceURL     string
	Attachment     Attachment
}

// InvoiceMailer envía facturas por correo. Enabled=false si no hay proveedor configurado.
type InvoiceMailer interface {
	Enabled() bool
	SendInvoice(ctx context.Context, msg InvoiceEmail) (messageID string, err error)
}
