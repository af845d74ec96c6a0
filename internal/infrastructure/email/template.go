package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
)

var invoiceHTML = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto;">
  <h2 style="margin-bottom: 4px;">{{.CompanyName}}</h2>
  <p>Hello {{.ClientName}},</p>
  <p>Please find attached invoice <strong>{{.InvoiceNumber}}</strong>.</p>
  <table style="border-collapse: collapse; margin: 16px 0;">
    <tr><td style="padding: 4px 16px 4px 0;">Amount due</td><td><strong>{{.FormattedTotal}}</strong></td></tr>
    <tr><td style="padding: 4px 16px 4px 0;">Due date</td><td>{{.DueDate}}</td></tr>
  </table>
  {{if .InvoiceURL}}<p><a href="{{.InvoiceURL}}" style="background: #3B82F6; color: #ffffff; padding: 10px 16px; border-radius: 4px; text-decoration: none;">View invoice</a></p>{{end}}
  <p>Thank you for your business.</p>
</body>
</html>`))

// renderInvoiceHTML cuerpo HTML; html/template escapa los datos del cliente y la empresa.
func renderInvoiceHTML(msg billing.InvoiceEmail) (string, error) {
	var buf bytes.Buffer
	if err := invoiceHTML.Execute(&buf, msg); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}

func renderInvoiceText(msg billing.InvoiceEmail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", msg.ClientName)
	fmt.Fprintf(&b, "Please find attached invoice %s from %s.\n\n", msg.InvoiceNumber, msg.CompanyName)
	fmt.Fprintf(&b, "Amount due: %s\nDue date: %s\n", msg.FormattedTotal, msg.DueDate)
	if msg.InvoiceURL != "" {
		fmt.Fprintf(&b, "\nView invoice: %s\n", msg.InvoiceURL)
	}
	b.WriteString("\nThank you for your business.\n")
	return b.String()
}
