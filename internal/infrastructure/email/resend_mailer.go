// Package email envío de facturas por correo usando Resend (github.com/resend/resend-go/v2).
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
)

var _ billing.InvoiceMailer = (*ResendMailer)(nil)

// ErrDisabled se devuelve al intentar enviar con el cliente deshabilitado.
var ErrDisabled = errors.New("email: cliente deshabilitado")

// Config configuración del cliente de correo.
type Config struct {
	Enabled     bool
	APIKey      string
	FromAddress string
	ReplyTo     string
}

// sender subconjunto de resend.EmailsSvc que usamos; permite reemplazarlo en tests.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendMailer implementa billing.InvoiceMailer sobre la API de Resend.
type ResendMailer struct {
	emails      sender
	enabled     bool
	fromAddress string
	replyTo     string
}

// NewResendMailer crea el mailer. Sin API key o remitente queda deshabilitado.
func NewResendMailer(cfg Config) *ResendMailer {
	if !cfg.Enabled || cfg.APIKey == "" || cfg.FromAddress == "" {
		return &ResendMailer{enabled: false}
	}
	client := resend.NewClient(cfg.APIKey)
	return &ResendMailer{
		emails:      client.Emails,
		enabled:     true,
		fromAddress: cfg.FromAddress,
		replyTo:     cfg.ReplyTo,
	}
}

// Enabled indica si hay proveedor configurado.
func (m *ResendMailer) Enabled() bool {
	return m.enabled
}

// SendInvoice arma el HTML y el texto plano y envía el correo con el PDF adjunto.
func (m *ResendMailer) SendInvoice(ctx context.Context, msg billing.InvoiceEmail) (string, error) {
	if !m.enabled {
		return "", ErrDisabled
	}
	html, err := renderInvoiceHTML(msg)
	if err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    m.fromAddress,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    html,
		Text:    renderInvoiceText(msg),
	}
	if m.replyTo != "" {
		params.ReplyTo = m.replyTo
	}
	if len(msg.Attachment.Content) > 0 {
		params.Attachments = []*resend.Attachment{{
			Content:     msg.Attachment.Content,
			Filename:    msg.Attachment.Filename,
			ContentType: "application/pdf",
		}}
	}

	sent, err := m.emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}
