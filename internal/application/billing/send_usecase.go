package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

const (
	defaultCompanyName = "Your Company"
	defaultClientName  = "Customer"
)

// SendInvoiceUseCase envía la factura por correo con el PDF adjunto.
type SendInvoiceUseCase struct {
	pdf         *PDFUseCase
	generator   InvoicePDFGenerator
	mailer      InvoiceMailer
	invoiceRepo repository.InvoiceRepository
	cache       SummaryInvalidator
	formatter   *currency.Formatter
}

// NewSendInvoiceUseCase construye el caso de uso. cache puede ser nil.
func NewSendInvoiceUseCase(
	pdf *PDFUseCase,
	generator InvoicePDFGenerator,
	mailer InvoiceMailer,
	invoiceRepo repository.InvoiceRepository,
	cache SummaryInvalidator,
	formatter *currency.Formatter,
) *SendInvoiceUseCase {
	if formatter == nil {
		formatter = currency.NewFormatter("")
	}
	return &SendInvoiceUseCase{
		pdf:         pdf,
		generator:   generator,
		mailer:      mailer,
		invoiceRepo: invoiceRepo,
		cache:       cache,
		formatter:   formatter,
	}
}

// Send genera el PDF, lo envía al cliente (o a in.To) y pasa la factura de draft a sent.
//
// Retorna domain.ErrEmailDisabled si no hay proveedor de correo configurado y
// domain.ErrInvalidInput si no hay destinatario.
func (uc *SendInvoiceUseCase) Send(ctx context.Context, userID, invoiceID string, in dto.SendInvoiceRequest) (*dto.SendInvoiceResponse, error) {
	if uc.mailer == nil || !uc.mailer.Enabled() {
		return nil, domain.ErrEmailDisabled
	}
	doc, err := uc.pdf.LoadDocument(userID, invoiceID)
	if err != nil {
		return nil, err
	}
	inv := doc.Invoice

	to := strings.TrimSpace(in.To)
	if to == "" && doc.Client != nil {
		to = doc.Client.Email
	}
	if to == "" {
		return nil, fmt.Errorf("%w: la factura no tiene cliente con email; indique 'to'", domain.ErrInvalidInput)
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("send: generar pdf: %w", err)
	}

	companyName := defaultCompanyName
	if doc.Company != nil && doc.Company.CompanyName != "" {
		companyName = doc.Company.CompanyName
	}
	clientName := defaultClientName
	if doc.Client != nil && doc.Client.Name != "" {
		clientName = doc.Client.Name
	}

	msgID, err := uc.mailer.SendInvoice(ctx, InvoiceEmail{
		To:             to,
		Subject:        fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, companyName),
		CompanyName:    companyName,
		ClientName:     clientName,
		InvoiceNumber:  inv.InvoiceNumber,
		FormattedTotal: uc.formatter.Format(doc.Totals.Total, currency.NormalizeCode(inv.Currency)),
		DueDate:        inv.DueDate.Format(dateLayout),
		InvoiceURL:     in.InvoiceURL,
		Attachment:     Attachment{Filename: PDFFilename(inv), Content: pdfBytes},
	})
	if err != nil {
		return nil, fmt.Errorf("send: enviar correo: %w", err)
	}

	if inv.Status == entity.InvoiceStatusDraft {
		inv.Status = entity.InvoiceStatusSent
		inv.UpdatedAt = time.Now()
		if err := uc.invoiceRepo.Update(inv); err != nil {
			return nil, fmt.Errorf("send: actualizar estado: %w", err)
		}
		if uc.cache != nil {
			uc.cache.Invalidate(userID)
		}
	}

	return &dto.SendInvoiceResponse{
		InvoiceID: inv.ID,
		To:        to,
		MessageID: msgID,
		Status:    inv.Status,
	}, nil
}
