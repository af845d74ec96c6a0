// Package analytics contiene los casos de uso del dashboard de facturación.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

const (
	dashboardRecentInvoices = 5 // filas en la tabla de facturas recientes
	unknownClientName       = "Unknown Client"
)

// SummaryCache caché por usuario del resumen ya calculado.
type SummaryCache interface {
	Get(userID string) (*dto.DashboardSummaryDTO, bool)
	Set(userID string, summary *dto.DashboardSummaryDTO)
}

// DashboardUseCase arma el resumen de facturación del usuario.
//
// Los montos se agrupan por moneda con invoicing.GroupByCurrency; nunca se suman entre monedas.
type DashboardUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	cache       SummaryCache
	formatter   *currency.Formatter
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	cache SummaryCache,
	formatter *currency.Formatter,
) *DashboardUseCase {
	if formatter == nil {
		formatter = currency.NewFormatter("")
	}
	return &DashboardUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		cache:       cache,
		formatter:   formatter,
		now:         time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO del usuario.
//
// Dos lecturas en paralelo:
//  1. facturas del usuario con líneas (más recientes primero)
//  2. clientes del usuario, para los nombres de la tabla de recientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	if uc.cache != nil {
		if s, ok := uc.cache.Get(userID); ok {
			return s, nil
		}
	}

	type invoicesResult struct {
		list []*entity.Invoice
		err  error
	}
	type clientsResult struct {
		list []*entity.Client
		err  error
	}
	invCh := make(chan invoicesResult, 1)
	cliCh := make(chan clientsResult, 1)

	go func() {
		list, err := uc.invoiceRepo.ListByUser(userID, repository.InvoiceFilter{})
		invCh <- invoicesResult{list, err}
	}()
	go func() {
		list, err := uc.clientRepo.ListByUser(userID)
		cliCh <- clientsResult{list, err}
	}()

	var invRes invoicesResult
	var cliRes clientsResult
	for i := 0; i < 2; i++ {
		select {
		case invRes = <-invCh:
		case cliRes = <-cliCh:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if invRes.err != nil {
		return nil, fmt.Errorf("dashboard: facturas: %w", invRes.err)
	}
	if cliRes.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", cliRes.err)
	}

	summary := uc.build(invRes.list, cliRes.list)
	if uc.cache != nil {
		uc.cache.Set(userID, summary)
	}
	return summary, nil
}

// build calcula las métricas. invoices debe venir ordenado de más reciente a más antiguo.
func (uc *DashboardUseCase) build(invoices []*entity.Invoice, clients []*entity.Client) *dto.DashboardSummaryDTO {
	now := uc.now()

	paid := lo.Filter(invoices, func(inv *entity.Invoice, _ int) bool {
		return inv.Status == entity.InvoiceStatusPaid
	})
	pending := lo.Filter(invoices, func(inv *entity.Invoice, _ int) bool {
		return inv.IsPending()
	})
	paidThisMonth := lo.Filter(paid, func(inv *entity.Invoice, _ int) bool {
		return inv.IssueDate.Year() == now.Year() && inv.IssueDate.Month() == now.Month()
	})

	revenue := invoicing.GroupByCurrency(paid)
	// Las tarjetas de un solo número usan la moneda principal de revenue.
	primary, _ := revenue.Primary()

	names := lo.SliceToMap(clients, func(c *entity.Client) (string, string) { return c.ID, c.Name })
	recent := make([]dto.RecentInvoiceDTO, 0, dashboardRecentInvoices)
	for _, inv := range lo.Slice(invoices, 0, dashboardRecentInvoices) {
		name, ok := names[inv.ClientID]
		if !ok || name == "" {
			name = unknownClientName
		}
		code := currency.NormalizeCode(inv.Currency)
		total := invoicing.InvoiceTotal(inv).Total
		recent = append(recent, dto.RecentInvoiceDTO{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			ClientName:    name,
			Status:        inv.Status,
			Currency:      code,
			IssueDate:     inv.IssueDate.Format("2006-01-02"),
			Total:         total,
			Formatted:     uc.formatter.Format(total, code),
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalInvoices:  len(invoices),
		Revenue:        uc.moneyStat(revenue, primary),
		Pending:        uc.moneyStat(invoicing.GroupByCurrency(pending), primary),
		PaidThisMonth:  uc.moneyStat(invoicing.GroupByCurrency(paidThisMonth), primary),
		RecentInvoices: recent,
	}
}

// moneyStat convierte los acumulados en la tarjeta; PrimaryAmount es el balde de primary.
func (uc *DashboardUseCase) moneyStat(totals invoicing.CurrencyTotals, primary string) dto.MoneyStatDTO {
	byCurrency := make([]dto.CurrencyAmountDTO, 0, len(totals.Codes))
	parts := make([]currency.Breakdown, 0, len(totals.Codes))
	for _, code := range totals.Codes {
		amount := totals.Amount(code)
		byCurrency = append(byCurrency, dto.CurrencyAmountDTO{Currency: code, Amount: amount})
		parts = append(parts, currency.Breakdown{Code: code, Amount: amount})
	}
	return dto.MoneyStatDTO{
		ByCurrency:      byCurrency,
		PrimaryCurrency: primary,
		PrimaryAmount:   totals.Amount(primary),
		Formatted:       uc.formatter.FormatBreakdown(parts, primary),
	}
}
