package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/analytics"
	"github.com/jhoicas/Facturador-api/internal/application/auth"
	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/usecase"
	apphttp "github.com/jhoicas/Facturador-api/internal/interfaces/http"
	"github.com/jhoicas/Facturador-api/internal/testutil"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

type stubPDF struct{}

func (stubPDF) GenerateInvoicePDF(context.Context, billing.InvoiceDocument) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

type disabledMailer struct{}

func (disabledMailer) Enabled() bool { return false }
func (disabledMailer) SendInvoice(context.Context, billing.InvoiceEmail) (string, error) {
	return "", nil
}

type testAPI struct {
	app      *fiber.App
	invoices *testutil.InvoiceRepo
	token    string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	invoices := testutil.NewInvoiceRepo()
	clients := testutil.NewClientRepo()
	companies := testutil.NewCompanyRepo()
	users := testutil.NewUserRepo()
	tx := &testutil.TxRunner{Invoices: invoices, Companies: companies}
	cache := &testutil.Invalidator{}
	formatter := currency.NewFormatter("en")

	pdfUC := billing.NewPDFUseCase(invoices, companies, clients, stubPDF{})
	deps := apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ClientUC:    billing.NewClientUseCase(clients, cache),
		CompanyUC:   usecase.NewCompanyUseCase(companies, tx),
		InvoiceUC:   billing.NewInvoiceUseCase(invoices, clients, companies, tx, cache, formatter),
		PDFUC:       pdfUC,
		SendUC:      billing.NewSendInvoiceUseCase(pdfUC, stubPDF{}, disabledMailer{}, invoices, cache, formatter),
		DashboardUC: analytics.NewDashboardUseCase(invoices, clients, nil, formatter),
		JWTSecret:   testJWTSecret,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testAPI{app: app, invoices: invoices, token: bearer(t, testUserID)}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, withToken bool) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set("Authorization", a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decodeMap(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m), string(b))
	return m
}

var scenarioInvoice = fiber.Map{
	"issue_date": "2025-03-01",
	"due_date":   "2025-03-31",
	"items": []fiber.Map{
		{"description": "Consulting", "quantity": 40, "unit_price": "85.50", "discount": "10", "discount_type": "percentage", "tax_rate": "19"},
		{"description": "Setup", "quantity": 1, "unit_price": 500, "discount": "50", "discount_type": "fixed", "tax_rate": "0"},
	},
}

func (a *testAPI) createCompany(t *testing.T) {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/api/settings", fiber.Map{"company_name": "Acme", "invoice_prefix": "INV"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}

func (a *testAPI) createInvoice(t *testing.T) map[string]any {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/api/invoices", scenarioInvoice, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	return decodeMap(t, body)
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestAuth_RegistroLoginYUsuarioActual(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do(t, http.MethodPost, "/api/auth/register", fiber.Map{"email": "Ana@Acme.test", "password": "supersecreta"}, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = api.do(t, http.MethodPost, "/api/auth/register", fiber.Map{"email": "ana@acme.test", "password": "supersecreta"}, false)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = api.do(t, http.MethodPost, "/api/auth/login", fiber.Map{"email": "ana@acme.test", "password": "supersecreta"}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	login := decodeMap(t, body)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)

	api.token = "Bearer " + token
	resp, body = api.do(t, http.MethodGet, "/api/auth/user", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "ana@acme.test", decodeMap(t, body)["email"])
}

func TestAuth_LoginPasswordIncorrecta_401(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/auth/register", fiber.Map{"email": "ana@acme.test", "password": "supersecreta"}, false)

	resp, body := api.do(t, http.MethodPost, "/api/auth/login", fiber.Map{"email": "ana@acme.test", "password": "otra-cosa"}, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeMap(t, body)["code"])
}

func TestRutasProtegidas_SinToken_401(t *testing.T) {
	api := newTestAPI(t)
	for _, path := range []string{"/api/clients", "/api/invoices", "/api/dashboard/summary", "/api/settings"} {
		resp, _ := api.do(t, http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestCurrencies_Publico(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodGet, "/api/currencies", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]string
	require.NoError(t, json.Unmarshal(body, &list))
	require.NotEmpty(t, list)
	assert.Equal(t, "USD", list[0]["code"])
}

// ── Settings / clientes ───────────────────────────────────────────────────────

func TestSettings_SinEmpresa404_LuegoCreaYActualiza(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodGet, "/api/settings", nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	api.createCompany(t)

	resp, body := api.do(t, http.MethodPost, "/api/settings", fiber.Map{"company_name": "Acme SAS"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Acme SAS", decodeMap(t, body)["company_name"])
}

func TestClients_ValidacionConDetalles(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do(t, http.MethodPost, "/api/clients", fiber.Map{"name": "Globex", "email": "no-es-email"}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	m := decodeMap(t, body)
	assert.Equal(t, "VALIDATION", m["code"])
	details, _ := m["details"].(map[string]any)
	assert.Contains(t, details, "email")
}

func TestClients_BodyMalformado_400(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/clients", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", api.token)

	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClients_CRUD(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do(t, http.MethodPost, "/api/clients", fiber.Map{"name": "Globex", "email": "ap@globex.test"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	id := decodeMap(t, body)["id"].(string)

	resp, body = api.do(t, http.MethodPatch, "/api/clients/"+id, fiber.Map{"phone": "555-0101"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "555-0101", decodeMap(t, body)["phone"])

	resp, _ = api.do(t, http.MethodDelete, "/api/clients/"+id, nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/clients/"+id, nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ── Facturas ──────────────────────────────────────────────────────────────────

func TestInvoices_CreaConNumeroYTotales(t *testing.T) {
	api := newTestAPI(t)
	api.createCompany(t)

	inv := api.createInvoice(t)
	assert.Equal(t, "INV-1001", inv["invoice_number"])
	assert.Equal(t, "draft", inv["status"])
	assert.Equal(t, "USD", inv["currency"])
	totals := inv["totals"].(map[string]any)
	assert.Equal(t, "4112.82", totals["total"])
	assert.Equal(t, "3920", totals["subtotal"])

	inv2 := api.createInvoice(t)
	assert.Equal(t, "INV-1002", inv2["invoice_number"])
}

func TestInvoices_NumeroDuplicado_409(t *testing.T) {
	api := newTestAPI(t)
	api.createCompany(t)

	body := fiber.Map{"invoice_number": "A-1", "issue_date": "2025-03-01", "due_date": "2025-03-31"}
	resp, _ := api.do(t, http.MethodPost, "/api/invoices", body, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, out := api.do(t, http.MethodPost, "/api/invoices", body, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeMap(t, out)["code"])
}

func TestInvoices_SinFechas_400(t *testing.T) {
	api := newTestAPI(t)

	resp, out := api.do(t, http.MethodPost, "/api/invoices", fiber.Map{"items": []fiber.Map{}}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	details, _ := decodeMap(t, out)["details"].(map[string]any)
	assert.Contains(t, details, "issue_date")
	assert.Contains(t, details, "due_date")
}

func TestInvoices_DetalleConTotalesPorLineaY404(t *testing.T) {
	api := newTestAPI(t)
	api.createCompany(t)
	id := api.createInvoice(t)["id"].(string)

	resp, body := api.do(t, http.MethodGet, "/api/invoices/"+id, nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decodeMap(t, body)["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)["totals"].(map[string]any)
	assert.Equal(t, "3662.82", first["total"])

	resp, _ = api.do(t, http.MethodGet, "/api/invoices/no-existe", nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoices_CambioDeEstadoYFiltro(t *testing.T) {
	api := newTestAPI(t)
	api.createCompany(t)
	id := api.createInvoice(t)["id"].(string)
	api.createInvoice(t)

	resp, _ := api.do(t, http.MethodPatch, "/api/invoices/"+id+"/status", fiber.Map{"status": "cobrada"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := api.do(t, http.MethodPatch, "/api/invoices/"+id+"/status", fiber.Map{"status": "paid"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = api.do(t, http.MethodGet, "/api/invoices?status=paid", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])
}

func TestInvoices_Preview(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do(t, http.MethodPost, "/api/invoices/preview", fiber.Map{
		"currency": "usd",
		"items":    scenarioInvoice["items"],
	}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	m := decodeMap(t, body)
	assert.Equal(t, "USD", m["currency"])
	assert.Equal(t, "4112.82", m["totals"].(map[string]any)["total"])
	assert.Len(t, m["lines"], 2)
	assert.Equal(t, 0, api.invoices.Len(), "preview no guarda nada")
}

func TestInvoices_DescargaPDF(t *testing.T) {
	api := newTestAPI(t)
	api.createCompany(t)
	id := api.createInvoice(t)["id"].(string)

	resp, body := api.do(t, http.MethodGet, "/api/invoices/"+id+"/pdf", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice-INV-1001.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestInvoices_EnvioSinCorreoConfigurado_503(t *testing.T) {
	api := newTestAPI(t)
	api.createCompany(t)
	id := api.createInvoice(t)["id"].(string)

	resp, body := api.do(t, http.MethodPost, "/api/invoices/"+id+"/send", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "EMAIL_DISABLED", decodeMap(t, body)["code"])
}

func TestInvoices_Eliminar(t *testing.T) {
	api := newTestAPI(t)
	api.createCompany(t)
	id := api.createInvoice(t)["id"].(string)

	resp, _ := api.do(t, http.MethodDelete, "/api/invoices/"+id, nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, api.invoices.Len())
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func TestDashboard_Resumen(t *testing.T) {
	api := newTestAPI(t)
	api.createCompany(t)
	id := api.createInvoice(t)["id"].(string)
	api.do(t, http.MethodPatch, "/api/invoices/"+id+"/status", fiber.Map{"status": "paid"}, true)

	resp, body := api.do(t, http.MethodGet, "/api/dashboard/summary", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	m := decodeMap(t, body)
	assert.EqualValues(t, 1, m["total_invoices"])
	revenue := m["revenue"].(map[string]any)
	assert.Equal(t, "USD", revenue["primary_currency"])
	assert.Equal(t, "4112.82", revenue["primary_amount"])
	formatted, _ := revenue["formatted"].(string)
	assert.True(t, strings.HasPrefix(formatted, "$"), formatted)
	assert.True(t, strings.HasSuffix(formatted, ".82"), formatted)
}
