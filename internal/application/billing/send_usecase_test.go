package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/testutil"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

type stubPDF struct {
	docs []billing.InvoiceDocument
}

func (s *stubPDF) GenerateInvoicePDF(_ context.Context, doc billing.InvoiceDocument) ([]byte, error) {
	s.docs = append(s.docs, doc)
	return []byte("%PDF-1.4 stub"), nil
}

type stubMailer struct {
	enabled bool
	err     error
	sent    []billing.InvoiceEmail
}

func (m *stubMailer) Enabled() bool { return m.enabled }

func (m *stubMailer) SendInvoice(_ context.Context, msg billing.InvoiceEmail) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, msg)
	return "msg_123", nil
}

type sendFixture struct {
	invoices  *testutil.InvoiceRepo
	clients   *testutil.ClientRepo
	companies *testutil.CompanyRepo
	pdf       *stubPDF
	mailer    *stubMailer
	uc        *billing.SendInvoiceUseCase
}

func newSendFixture(t *testing.T, status string) (*sendFixture, *entity.Invoice) {
	t.Helper()
	f := &sendFixture{
		invoices:  testutil.NewInvoiceRepo(),
		clients:   testutil.NewClientRepo(),
		companies: testutil.NewCompanyRepo(),
		pdf:       &stubPDF{},
		mailer:    &stubMailer{enabled: true},
	}
	require.NoError(t, f.companies.Create(&entity.Company{ID: "co-1", UserID: userID, CompanyName: "Acme", IsPrimary: true}))
	require.NoError(t, f.clients.Create(&entity.Client{ID: "cl-1", UserID: userID, Name: "Globex", Email: "ap@globex.test"}))
	inv := &entity.Invoice{
		ID: "inv-1", UserID: userID, ClientID: "cl-1", InvoiceNumber: "INV-1001",
		IssueDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), DueDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Currency: "USD", Status: status,
		Items: []entity.LineItem{{Quantity: 2, UnitPrice: decimal.NewFromInt(50), DiscountType: entity.DiscountPercentage}},
	}
	require.NoError(t, f.invoices.Create(inv))

	pdfUC := billing.NewPDFUseCase(f.invoices, f.companies, f.clients, f.pdf)
	f.uc = billing.NewSendInvoiceUseCase(pdfUC, f.pdf, f.mailer, f.invoices, nil, currency.NewFormatter("en"))
	return f, inv
}

func TestSend_EnviaConAdjuntoYMarcaEnviada(t *testing.T) {
	f, inv := newSendFixture(t, entity.InvoiceStatusDraft)

	resp, err := f.uc.Send(context.Background(), userID, inv.ID, dto.SendInvoiceRequest{})
	require.NoError(t, err)

	assert.Equal(t, "ap@globex.test", resp.To)
	assert.Equal(t, "msg_123", resp.MessageID)
	assert.Equal(t, entity.InvoiceStatusSent, resp.Status)

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "Invoice INV-1001 from Acme", msg.Subject)
	assert.Equal(t, "Invoice-INV-1001.pdf", msg.Attachment.Filename)
	assert.Equal(t, "$100.00", msg.FormattedTotal)
	assert.Equal(t, "2025-03-31", msg.DueDate)
	assert.NotEmpty(t, msg.Attachment.Content)

	stored, err := f.invoices.GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, stored.Status)
}

func TestSend_DestinatarioExplicitoYEstadoPagadoSeConserva(t *testing.T) {
	f, inv := newSendFixture(t, entity.InvoiceStatusPaid)

	resp, err := f.uc.Send(context.Background(), userID, inv.ID, dto.SendInvoiceRequest{To: "otro@globex.test"})
	require.NoError(t, err)
	assert.Equal(t, "otro@globex.test", resp.To)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status)
}

func TestSend_CorreoDeshabilitado(t *testing.T) {
	f, inv := newSendFixture(t, entity.InvoiceStatusDraft)
	f.mailer.enabled = false

	_, err := f.uc.Send(context.Background(), userID, inv.ID, dto.SendInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrEmailDisabled)
	assert.Empty(t, f.pdf.docs)
}

func TestSend_ErrorDelProveedorNoCambiaEstado(t *testing.T) {
	f, inv := newSendFixture(t, entity.InvoiceStatusDraft)
	f.mailer.err = errors.New("resend caído")

	_, err := f.uc.Send(context.Background(), userID, inv.ID, dto.SendInvoiceRequest{})
	require.Error(t, err)

	stored, err := f.invoices.GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, stored.Status)
}

func TestSend_FacturaAjena(t *testing.T) {
	f, inv := newSendFixture(t, entity.InvoiceStatusDraft)
	_, err := f.uc.Send(context.Background(), "otro", inv.ID, dto.SendInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadInvoicePDF_DocumentoCalculado(t *testing.T) {
	f, inv := newSendFixture(t, entity.InvoiceStatusDraft)
	pdfUC := billing.NewPDFUseCase(f.invoices, f.companies, f.clients, f.pdf)

	data, name, err := pdfUC.DownloadInvoicePDF(context.Background(), userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice-INV-1001.pdf", name)
	assert.NotEmpty(t, data)

	require.Len(t, f.pdf.docs, 1)
	doc := f.pdf.docs[0]
	require.NotNil(t, doc.Company)
	assert.Equal(t, "Acme", doc.Company.CompanyName, "sin company_id usa la principal")
	require.NotNil(t, doc.Client)
	require.Len(t, doc.Lines, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(doc.Totals.Total))
}
