package analytics

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/testutil"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

const userID = "u-1"

type mapCache struct {
	data map[string]*dto.DashboardSummaryDTO
	sets int
}

func (c *mapCache) Get(userID string) (*dto.DashboardSummaryDTO, bool) {
	s, ok := c.data[userID]
	return s, ok
}

func (c *mapCache) Set(userID string, s *dto.DashboardSummaryDTO) {
	c.sets++
	c.data[userID] = s
}

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// seed crea una factura de una línea con total = amount (sin descuento ni impuesto).
func seed(t *testing.T, repo *testutil.InvoiceRepo, n int, code, status, clientID string, issue time.Time, amount int64) {
	t.Helper()
	require.NoError(t, repo.Create(&entity.Invoice{
		UserID:        userID,
		ClientID:      clientID,
		InvoiceNumber: "INV-" + strconv.Itoa(n),
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 0, 30),
		Currency:      code,
		Status:        status,
		CreatedAt:     fixedNow.Add(time.Duration(n) * time.Minute),
		Items: []entity.LineItem{{
			Quantity: 1, UnitPrice: decimal.NewFromInt(amount), DiscountType: entity.DiscountPercentage,
		}},
	}))
}

func newDashboard(invoices *testutil.InvoiceRepo, clients *testutil.ClientRepo, cache SummaryCache) *DashboardUseCase {
	uc := NewDashboardUseCase(invoices, clients, cache, currency.NewFormatter("en"))
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestGetSummary_MonedasSeparadas(t *testing.T) {
	invoices := testutil.NewInvoiceRepo()
	clients := testutil.NewClientRepo()
	require.NoError(t, clients.Create(&entity.Client{ID: "cl-1", UserID: userID, Name: "Globex"}))

	march := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	seed(t, invoices, 1, "USD", entity.InvoiceStatusPaid, "cl-1", march, 100)
	seed(t, invoices, 2, "EUR", entity.InvoiceStatusPaid, "cl-1", jan, 50)
	seed(t, invoices, 3, "EUR", entity.InvoiceStatusSent, "", march, 30)
	seed(t, invoices, 4, "USD", entity.InvoiceStatusOverdue, "borrado", jan, 20)
	seed(t, invoices, 5, "USD", entity.InvoiceStatusDraft, "cl-1", march, 999)
	seed(t, invoices, 6, "USD", entity.InvoiceStatusPaid, "cl-1", march, 5)

	s, err := newDashboard(invoices, clients, nil).GetSummary(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 6, s.TotalInvoices)

	// revenue: orden de aparición en la lista (más recientes primero): USD (6), EUR (2), USD (1)
	require.Len(t, s.Revenue.ByCurrency, 2)
	assert.Equal(t, "USD", s.Revenue.ByCurrency[0].Currency)
	assert.True(t, decimal.NewFromInt(105).Equal(s.Revenue.ByCurrency[0].Amount))
	assert.Equal(t, "EUR", s.Revenue.ByCurrency[1].Currency)
	assert.True(t, decimal.NewFromInt(50).Equal(s.Revenue.ByCurrency[1].Amount))
	assert.Equal(t, "USD", s.Revenue.PrimaryCurrency)
	assert.Equal(t, "$105.00 + €50.00", s.Revenue.Formatted)

	// pending usa la moneda principal de revenue para el número de la tarjeta
	assert.Equal(t, "USD", s.Pending.PrimaryCurrency)
	assert.True(t, decimal.NewFromInt(20).Equal(s.Pending.PrimaryAmount))
	assert.Len(t, s.Pending.ByCurrency, 2)

	// pagadas con emisión en marzo: 100 + 5 USD
	require.Len(t, s.PaidThisMonth.ByCurrency, 1)
	assert.True(t, decimal.NewFromInt(105).Equal(s.PaidThisMonth.PrimaryAmount))

	require.Len(t, s.RecentInvoices, 5)
	assert.Equal(t, "INV-6", s.RecentInvoices[0].InvoiceNumber)
	assert.Equal(t, "Globex", s.RecentInvoices[0].ClientName)
	assert.Equal(t, "Unknown Client", s.RecentInvoices[2].ClientName, "cliente eliminado")
	assert.Equal(t, "Unknown Client", s.RecentInvoices[3].ClientName, "sin cliente")
	assert.Equal(t, "$5.00", s.RecentInvoices[0].Formatted)
}

func TestGetSummary_SinFacturas(t *testing.T) {
	s, err := newDashboard(testutil.NewInvoiceRepo(), testutil.NewClientRepo(), nil).GetSummary(context.Background(), userID)
	require.NoError(t, err)

	assert.Zero(t, s.TotalInvoices)
	assert.Equal(t, "USD", s.Revenue.PrimaryCurrency)
	assert.True(t, s.Revenue.PrimaryAmount.IsZero())
	assert.Equal(t, "$0.00", s.Revenue.Formatted)
	assert.Empty(t, s.Revenue.ByCurrency)
	assert.Empty(t, s.RecentInvoices)
}

func TestGetSummary_UsaCache(t *testing.T) {
	invoices := testutil.NewInvoiceRepo()
	cache := &mapCache{data: map[string]*dto.DashboardSummaryDTO{}}
	uc := newDashboard(invoices, testutil.NewClientRepo(), cache)

	first, err := uc.GetSummary(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	invoices.Err = errors.New("no debería consultarse")
	second, err := uc.GetSummary(context.Background(), userID)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestGetSummary_ErrorDeRepositorio(t *testing.T) {
	invoices := testutil.NewInvoiceRepo()
	invoices.Err = errors.New("db caída")

	_, err := newDashboard(invoices, testutil.NewClientRepo(), nil).GetSummary(context.Background(), userID)
	assert.Error(t, err)
}
