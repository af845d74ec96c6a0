package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// PDFUseCase genera la representación PDF de una factura del usuario.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		generator:   generator,
	}
}

// PDFFilename nombre del archivo descargado o adjunto: Invoice-<número>.pdf.
func PDFFilename(inv *entity.Invoice) string {
	return fmt.Sprintf("Invoice-%s.pdf", inv.InvoiceNumber)
}

// LoadDocument reúne factura, empresa emisora y cliente, y calcula los totales.
//
// Retorna domain.ErrNotFound si la factura no existe o no pertenece al usuario.
func (uc *PDFUseCase) LoadDocument(userID, invoiceID string) (InvoiceDocument, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return InvoiceDocument{}, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil || inv.UserID != userID {
		return InvoiceDocument{}, domain.ErrNotFound
	}

	var company *entity.Company
	if inv.CompanyID != "" {
		company, err = uc.companyRepo.GetByID(inv.CompanyID)
	} else {
		company, err = uc.companyRepo.GetPrimary(userID)
	}
	if err != nil {
		return InvoiceDocument{}, fmt.Errorf("pdf: obtener empresa: %w", err)
	}

	var client *entity.Client
	if inv.ClientID != "" {
		client, err = uc.clientRepo.GetByID(inv.ClientID)
		if err != nil {
			return InvoiceDocument{}, fmt.Errorf("pdf: obtener cliente: %w", err)
		}
	}

	lines := make([]invoicing.LineTotals, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, invoicing.LineItemTotal(it))
	}
	return InvoiceDocument{
		Invoice: inv,
		Company: company,
		Client:  client,
		Lines:   lines,
		Totals:  invoicing.Aggregate(inv.Items),
	}, nil
}

// DownloadInvoicePDF genera el PDF y devuelve (bytes, nombre de archivo).
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	doc, err := uc.LoadDocument(userID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, PDFFilename(doc.Invoice), nil
}
